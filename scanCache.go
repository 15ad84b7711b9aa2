package main

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultScanCacheSize = 4096

type scanCacheEntry struct {
	contentHash uint64
	exports     []Export
}

// ScanCache keeps scanner results per file path. An entry is only returned
// while the file content hashes to the same value it was stored with.
type ScanCache struct {
	entries *lru.Cache[string, scanCacheEntry]
}

func NewScanCache(size int) (*ScanCache, error) {
	if size <= 0 {
		size = defaultScanCacheSize
	}
	entries, err := lru.New[string, scanCacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create scan cache: %w", err)
	}
	return &ScanCache{entries: entries}, nil
}

func (c *ScanCache) Get(filePath string, content []byte) ([]Export, bool) {
	entry, ok := c.entries.Get(filePath)
	if !ok || entry.contentHash != xxhash.Sum64(content) {
		return nil, false
	}
	return slices.Clone(entry.exports), true
}

func (c *ScanCache) Put(filePath string, content []byte, exports []Export) {
	c.entries.Add(filePath, scanCacheEntry{
		contentHash: xxhash.Sum64(content),
		exports:     slices.Clone(exports),
	})
}

func (c *ScanCache) Invalidate(filePath string) {
	c.entries.Remove(filePath)
}

func (c *ScanCache) Len() int {
	return c.entries.Len()
}
