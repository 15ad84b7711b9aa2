package main

import (
	"context"
	"errors"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type ScanOptions struct {
	Scanner   *ExportScanner    // default: built-in parser
	Cache     *ScanCache        // optional
	Annotator *Annotator        // optional, nil leaves exports unannotated
	Workspace *WorkspaceContext // optional, attributes files to workspace packages
}

type FileExports struct {
	FilePath string            `json:"filePath"`
	Package  string            `json:"package,omitempty"`
	Exports  []AnnotatedExport `json:"exports"`
}

type ScanFailure struct {
	FilePath string `json:"filePath"`
	Error    string `json:"error"`
	// Missing names come from the parser, anything else is an IO error
	MissingName bool `json:"missingName,omitempty"`
}

type ScanReport struct {
	Files    []FileExports `json:"files"`
	Failures []ScanFailure `json:"failures,omitempty"`
}

// Exports flattens the report in file order.
func (r *ScanReport) Exports() []AnnotatedExport {
	exports := []AnnotatedExport{}
	for _, file := range r.Files {
		exports = append(exports, file.Exports...)
	}
	return exports
}

// ScanFiles reads and scans every path. A file that cannot be read or scanned
// is reported in Failures and the remaining files are still scanned.
func ScanFiles(ctx context.Context, filePaths []string, opts ScanOptions) (*ScanReport, error) {
	scanner := opts.Scanner
	if scanner == nil {
		scanner = NewExportScanner()
	}

	report := &ScanReport{
		Files:    make([]FileExports, 0, len(filePaths)),
		Failures: []ScanFailure{},
	}
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Limit concurrency to avoid memory spikes
	maxConcurrency := runtime.GOMAXPROCS(0) * 2
	sem := make(chan struct{}, maxConcurrency)

	var cancelled error
	for _, filePath := range filePaths {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
		case sem <- struct{}{}:
		}
		if cancelled != nil {
			break
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileExports, failure := scanFile(scanner, path, opts)

			mu.Lock()
			defer mu.Unlock()
			if failure != nil {
				report.Failures = append(report.Failures, *failure)
				return
			}
			report.Files = append(report.Files, fileExports)
		}(filePath)
	}

	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	slices.SortFunc(report.Files, func(a, b FileExports) int {
		return strings.Compare(a.FilePath, b.FilePath)
	})
	slices.SortFunc(report.Failures, func(a, b ScanFailure) int {
		return strings.Compare(a.FilePath, b.FilePath)
	})
	return report, nil
}

func scanFile(scanner *ExportScanner, filePath string, opts ScanOptions) (FileExports, *ScanFailure) {
	logger := log.WithField("file", filePath)

	// filePath is internal-normalized (forward slashes); convert to OS-native for file IO
	content, err := os.ReadFile(DenormalizePathForOS(filePath))
	if err != nil {
		logger.WithError(err).Warn("skipping unreadable file")
		return FileExports{}, &ScanFailure{FilePath: filePath, Error: err.Error()}
	}

	exports, cached := []Export(nil), false
	if opts.Cache != nil {
		exports, cached = opts.Cache.Get(filePath, content)
	}
	if !cached {
		exports, err = scanner.ScanExports(filePath, content)
		if err != nil {
			var missingName *MissingExportNameError
			isMissingName := errors.As(err, &missingName)
			logger.WithFields(logrus.Fields{"error": err}).Warn("skipping file that failed to scan")
			return FileExports{}, &ScanFailure{FilePath: filePath, Error: err.Error(), MissingName: isMissingName}
		}
		if opts.Cache != nil {
			opts.Cache.Put(filePath, content, exports)
		}
	}
	logger.WithFields(logrus.Fields{"exports": len(exports), "cached": cached}).Debug("scanned")

	result := FileExports{
		FilePath: filePath,
		Exports:  opts.Annotator.Annotate(exports),
	}
	if opts.Workspace != nil {
		if pkg, ok := opts.Workspace.PackageForFile(filePath); ok {
			result.Package = pkg
		}
	}
	return result, nil
}
