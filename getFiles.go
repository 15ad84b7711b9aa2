package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var sourceExtensions = map[string]struct{}{
	".ts":  {},
	".tsx": {},
	".mts": {},
	".cts": {},
	".js":  {},
	".jsx": {},
	".cjs": {},
	".mjs": {},
}

// Directories never scanned, regardless of .gitignore
var alwaysSkippedDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
}

func hasSourceExtension(name string) bool {
	_, ok := sourceExtensions[filepath.Ext(name)]
	return ok
}

func parseGitIgnore(fileContent string, dirPath string) []PathMatcher {
	lines := strings.Split(fileContent, "\n")

	sanitizedLines := []string{}
	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		// negations are not supported, keeping the file in the result is the safe side
		if len(trimmedLine) > 0 && !strings.HasPrefix(trimmedLine, "#") && !strings.HasPrefix(trimmedLine, "!") {
			sanitizedLines = append(sanitizedLines, trimmedLine)
		}
	}

	matchers := make([]PathMatcher, 0, len(sanitizedLines))
	for _, line := range sanitizedLines {
		lineMatchers, err := CreatePathMatchers([]string{line}, dirPath)
		if err != nil {
			log.WithError(err).Debugf("skipping .gitignore entry in %s", dirPath)
			continue
		}
		matchers = append(matchers, lineMatchers...)
	}
	return matchers
}

// FindAndProcessGitIgnoreFilesUpToRepoRoot collects .gitignore matchers from
// dirPath up to the directory containing .git.
func FindAndProcessGitIgnoreFilesUpToRepoRoot(dirPath string) []PathMatcher {
	matchers := []PathMatcher{}
	currentDir := filepath.Clean(dirPath)
	for {
		if content, err := os.ReadFile(filepath.Join(currentDir, ".gitignore")); err == nil {
			matchers = append(matchers, parseGitIgnore(string(content), currentDir)...)
		}

		if gitDir, err := os.Stat(filepath.Join(currentDir, ".git")); err == nil && gitDir.IsDir() {
			// found git root
			return matchers
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			return matchers
		}
		currentDir = parent
	}
}

func GetFiles(directory string, existingFiles []string, parentMatchers []PathMatcher) []string {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return existingFiles
	}

	for _, entry := range entries {
		entryName := entry.Name()
		entryFilePath := filepath.Join(directory, entryName)

		if entry.IsDir() {
			if _, skipped := alwaysSkippedDirs[entryName]; skipped {
				continue
			}
			if MatchesAnyPathMatcher(entryFilePath, parentMatchers) {
				continue
			}
			// The cwd .gitignore is part of parentMatchers already, nested ones are picked up here
			ignoreMatchers := parentMatchers
			if gitignoreFile, err := os.ReadFile(filepath.Join(entryFilePath, ".gitignore")); err == nil {
				if nested := parseGitIgnore(string(gitignoreFile), entryFilePath); len(nested) > 0 {
					ignoreMatchers = append(slices.Clone(parentMatchers), nested...)
				}
			}
			existingFiles = GetFiles(entryFilePath, existingFiles, ignoreMatchers)
			continue
		}

		if hasSourceExtension(entryName) && !MatchesAnyPathMatcher(entryFilePath, parentMatchers) {
			// store internal normalized path (forward slashes)
			existingFiles = append(existingFiles, NormalizePathForInternal(entryFilePath))
		}
	}

	return existingFiles
}

// DiscoverFiles lists scannable source files under cwd. include restricts the
// result when not empty, exclude and .gitignore entries remove files.
func DiscoverFiles(cwd string, include []string, exclude []string) ([]string, error) {
	excludeMatchers, err := CreatePathMatchers(exclude, cwd)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}
	includeMatchers, err := CreatePathMatchers(include, cwd)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}

	ignoreMatchers := append(excludeMatchers, FindAndProcessGitIgnoreFilesUpToRepoRoot(cwd)...)
	files := GetFiles(filepath.Clean(cwd), []string{}, ignoreMatchers)

	if len(includeMatchers) > 0 {
		files = slices.DeleteFunc(files, func(filePath string) bool {
			return !MatchesAnyPathMatcher(filePath, includeMatchers)
		})
	}

	slices.Sort(files)
	return files, nil
}
