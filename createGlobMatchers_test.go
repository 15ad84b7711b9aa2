package main

import (
	"testing"
)

func mustCreatePathMatchers(t *testing.T, patterns []string, root string) []PathMatcher {
	t.Helper()
	matchers, err := CreatePathMatchers(patterns, root)
	if err != nil {
		t.Fatalf("CreatePathMatchers(%v) failed: %v", patterns, err)
	}
	return matchers
}

func TestPathMatching(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		filePath string
		matches  bool
	}{
		{"Directory with dot and trailing slash in root dir", ".next/", "/fs/root/.next/static/file.js", true},
		{"Directory with dot without slash in root dir", ".next", "/fs/root/.next/static/file.js", true},
		{"Directory with dot without trailing slash in sub dir", ".next", "/fs/root/sub/sub2/.next/static/file.js", true},
		{"Directory with dot with trailing slash in sub dir", ".next/", "/fs/root/sub/sub2/.next/static/file.js", true},
		{"Filename in root dir", "file.js", "/fs/root/file.js", true},
		{"Filename in sub dir", "file.js", "/fs/root/sub/sub2/file.js", true},
		{"Extension glob for file in root dir", "**/*.log", "/fs/root/data.log", true},
		{"Extension glob for file in sub dir", "**/*.log", "/fs/root/data/sub/file.log", true},
		{"Anchored entry matches at root", "/dist", "/fs/root/dist", true},
		{"Directory glob", "src/**", "/fs/root/src/a/b.ts", true},
		{"Should not match nested dir/file pattern without wildcards", "bin/file", "/fs/root/data/bin/file", false},
		{"Should not match dir/file by part of the name", "logs", "/fs/root/data/my-logs", false},
		{"Should not match other extension", "**/*.test.ts", "/fs/root/src/a.ts", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchers := mustCreatePathMatchers(t, []string{tt.pattern}, "/fs/root/")
			if got := MatchesAnyPathMatcher(tt.filePath, matchers); got != tt.matches {
				t.Errorf(`Pattern "%s" matching path "%s" = %v, want %v`, tt.pattern, tt.filePath, got, tt.matches)
			}
		})
	}
}

func TestPathMatchingRootWithoutTrailingSlash(t *testing.T) {
	matchers := mustCreatePathMatchers(t, []string{"src/*.ts"}, "/fs/root")
	if !MatchesAnyPathMatcher("/fs/root/src/a.ts", matchers) {
		t.Errorf("Expected pattern to match relative to root without trailing slash")
	}
}

func TestCreatePathMatchersInvalidPattern(t *testing.T) {
	if _, err := CreatePathMatchers([]string{"src/[a"}, "/fs/root"); err == nil {
		t.Errorf("Expected error for unterminated character class")
	}
}

func TestParseGitIgnore(t *testing.T) {
	content := "# build output\ndist/\n\n!keep.js\nnode_modules\n*.log\n"
	matchers := parseGitIgnore(content, "/fs/root")

	if !MatchesAnyPathMatcher("/fs/root/dist/index.js", matchers) {
		t.Errorf("Expected dist/ to be ignored")
	}
	if !MatchesAnyPathMatcher("/fs/root/pkg/debug.log", matchers) {
		t.Errorf("Expected *.log to be ignored")
	}
	if MatchesAnyPathMatcher("/fs/root/keep.js", matchers) {
		t.Errorf("Negated entries must not become ignore entries")
	}
	if MatchesAnyPathMatcher("/fs/root/src/index.ts", matchers) {
		t.Errorf("Expected src/index.ts not to be ignored")
	}
}
