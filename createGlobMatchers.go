package main

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// PathMatcher matches file paths against one include/exclude or .gitignore
// pattern, relative to the directory the pattern was declared in.
type PathMatcher struct {
	pattern glob.Glob
	source  string
	root    string
	// Plain names without `/` or `*` match a file or directory of that name at
	// any depth, like .gitignore entries
	matchesByName bool
}

func CreatePathMatchers(patterns []string, patternsRoot string) ([]PathMatcher, error) {
	matchers := make([]PathMatcher, 0, len(patterns))
	rootNorm := NormalizePathForInternal(patternsRoot)
	if rootNorm != "" && !strings.HasSuffix(rootNorm, "/") {
		rootNorm = rootNorm + "/"
	}

	for _, raw := range patterns {
		pattern := NormalizeGlobPattern(raw)
		matchesByName := !strings.Contains(pattern, "/") && !strings.Contains(pattern, "*")

		if strings.HasSuffix(pattern, "/") && !strings.Contains(pattern, "*") {
			// entry with `/` suffix matches whole directory recursively
			pattern = "**" + pattern + "**"
		}
		// a leading `/` anchors the entry to patternsRoot, which every pattern already is
		pattern = strings.TrimPrefix(pattern, "/")

		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern '%s': %w", raw, err)
		}
		matchers = append(matchers, PathMatcher{
			pattern:       g,
			source:        pattern,
			root:          rootNorm,
			matchesByName: matchesByName,
		})

		// `**/` requires at least one directory with this glob library, so
		// `**/*.log` would miss `file.log` in the root directory
		if strings.HasPrefix(pattern, "**/") {
			rootLevel := strings.TrimPrefix(pattern, "**/")
			g, err := glob.Compile(rootLevel)
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern '%s': %w", raw, err)
			}
			matchers = append(matchers, PathMatcher{pattern: g, source: rootLevel, root: rootNorm})
		}
	}
	return matchers, nil
}

func (m PathMatcher) Match(filePath string) bool {
	rel := strings.TrimPrefix(NormalizePathForInternal(filePath), m.root)
	if m.pattern.Match(rel) {
		return true
	}
	if !m.matchesByName {
		return false
	}
	return rel == m.source ||
		strings.HasSuffix(rel, "/"+m.source) ||
		strings.HasPrefix(rel, m.source+"/") ||
		strings.Contains(rel, "/"+m.source+"/")
}

func MatchesAnyPathMatcher(filePath string, matchers []PathMatcher) bool {
	for _, matcher := range matchers {
		if matcher.Match(filePath) {
			return true
		}
	}
	return false
}
