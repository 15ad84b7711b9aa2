package main

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
)

func writeFixtureFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		assert.NilError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
		assert.NilError(t, os.WriteFile(fullPath, []byte(content), 0644))
	}
}

func relativePaths(root string, files []string) []string {
	relative := make([]string, 0, len(files))
	for _, file := range files {
		relative = append(relative, ToRelativePath(root, file))
	}
	return relative
}

func newFixtureRepo(t *testing.T) string {
	root := t.TempDir()
	// .git stops the .gitignore lookup at the fixture root
	assert.NilError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	writeFixtureFiles(t, root, map[string]string{
		".gitignore":                "dist/\n*.generated.ts\n",
		"src/index.ts":              "export * from './utils'",
		"src/utils.ts":              "export const a = 1",
		"src/component.tsx":         "export default function Component() {}",
		"src/component.test.tsx":    "test('x', () => {})",
		"src/schema.generated.ts":   "export const schema = {}",
		"src/styles.css":            ".a {}",
		"src/legacy/old.js":         "module.exports = {}",
		"src/legacy/.gitignore":     "ignored.mjs\n",
		"src/legacy/ignored.mjs":    "export const x = 1",
		"dist/index.js":             "export const built = 1",
		"node_modules/pkg/index.js": "export const dep = 1",
	})
	return root
}

func TestDiscoverFiles(t *testing.T) {
	root := newFixtureRepo(t)

	t.Run("all source files", func(t *testing.T) {
		files, err := DiscoverFiles(root, nil, nil)
		assert.NilError(t, err)
		assert.DeepEqual(t, relativePaths(root, files), []string{
			"src/component.test.tsx",
			"src/component.tsx",
			"src/index.ts",
			"src/legacy/old.js",
			"src/utils.ts",
		})
	})

	t.Run("with include and exclude", func(t *testing.T) {
		files, err := DiscoverFiles(root, []string{"src/**"}, []string{"**/*.test.*", "src/legacy/"})
		assert.NilError(t, err)
		assert.DeepEqual(t, relativePaths(root, files), []string{
			"src/component.tsx",
			"src/index.ts",
			"src/utils.ts",
		})
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := DiscoverFiles(root, []string{"src/[a"}, nil)
		assert.ErrorContains(t, err, "include")
	})
}

func TestFindAndProcessGitIgnoreFilesUpToRepoRoot(t *testing.T) {
	root := newFixtureRepo(t)

	matchers := FindAndProcessGitIgnoreFilesUpToRepoRoot(filepath.Join(root, "src"))
	assert.Assert(t, MatchesAnyPathMatcher(filepath.Join(root, "dist", "index.js"), matchers))
	assert.Assert(t, !MatchesAnyPathMatcher(filepath.Join(root, "src", "index.ts"), matchers))
}
