package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/golden"
)

func newSmokeProject(t *testing.T) string {
	t.Helper()
	color.NoColor = true

	root := t.TempDir()
	assert.NilError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
	writeFixtureFiles(t, root, map[string]string{
		configFileName: `{
			"configVersion": "1.0",
			// legacy hooks win over presets
			"overrides": [{"pattern": "src/legacy.ts", "priority": 1}]
		}`,
		"src/my-utils.ts": "export const formatDate = () => ''\nexport type { Options as FormatOptions } from './types'\n",
		"src/index.ts":    "export { formatDate as format } from './my-utils'\nexport * from './types'\n",
		"src/button.tsx":  "export default function Button() { return null }\n",
		"src/types.ts":    "export interface Options { locale: string }\n",
		"src/legacy.ts":   "export function useState() {}\n",
		"src/parse.ts":    "import { a } from './a'\nexport { a as b }\n",
	})
	return root
}

func openSmokeProject(t *testing.T, root string, files ...string) *Project {
	t.Helper()
	project, err := OpenProject(ProjectSettings{Cwd: root, Exclude: []string{"src/parse.ts"}, Files: files})
	assert.NilError(t, err)
	return project
}

func TestScanCmd(t *testing.T) {
	root := newSmokeProject(t)

	var output bytes.Buffer
	err := scanCmdFn(context.Background(), &output, openSmokeProject(t, root), false)

	assert.NilError(t, err)
	golden.Assert(t, output.String(), "scan.golden")
}

func TestScanCmdJSON(t *testing.T) {
	root := newSmokeProject(t)

	var output bytes.Buffer
	err := scanCmdFn(context.Background(), &output, openSmokeProject(t, root, "src/my-utils.ts"), true)

	assert.NilError(t, err)
	golden.Assert(t, output.String(), "scan-json.golden")
}

func TestLookupCmd(t *testing.T) {
	root := newSmokeProject(t)

	var output bytes.Buffer
	err := lookupCmdFn(context.Background(), &output, openSmokeProject(t, root), "useState", false, false)

	assert.NilError(t, err)
	golden.Assert(t, output.String(), "lookup.golden")
}

func TestLookupCmdNoCandidates(t *testing.T) {
	root := newSmokeProject(t)

	var output bytes.Buffer
	err := lookupCmdFn(context.Background(), &output, openSmokeProject(t, root), "missing", false, false)

	assert.NilError(t, err)
	assert.Equal(t, output.String(), "No exports found for 'missing'\n")
}

func TestPresetsCmd(t *testing.T) {
	root := newSmokeProject(t)

	t.Run("forms", func(t *testing.T) {
		var output bytes.Buffer
		assert.NilError(t, presetsCmdFn(&output, DefaultPresets(), "", false))
		golden.Assert(t, output.String(), "presets.golden")
	})

	t.Run("through root command", func(t *testing.T) {
		var output bytes.Buffer
		rootCmd.SetOut(&output)
		rootCmd.SetArgs([]string{"presets", "react", "--cwd", root})
		defer rootCmd.SetArgs(nil)

		assert.NilError(t, rootCmd.ExecuteContext(context.Background()))
		assert.Equal(t, output.String(), "useState\nuseCallback\nuseMemo\nuseEffect\nuseRef\nuseContext\nuseReducer\n")
	})

	t.Run("unknown form", func(t *testing.T) {
		var output bytes.Buffer
		err := presetsCmdFn(&output, DefaultPresets(), "svelte", false)
		assert.ErrorContains(t, err, "unknown preset 'svelte'")
	})
}

func TestDebugParseFileCmd(t *testing.T) {
	root := newSmokeProject(t)

	var output bytes.Buffer
	err := debugParseFileCmdFn(&output, filepath.Join(root, "src", "parse.ts"))

	assert.NilError(t, err)
	golden.Assert(t, output.String(), "debug-parse-file.golden")
}

func TestConfigInitCmd(t *testing.T) {
	root := t.TempDir()

	var output bytes.Buffer
	assert.NilError(t, configInitCmdFn(&output, root))
	assert.Assert(t, strings.HasPrefix(output.String(), "Created "+filepath.Join(root, configFileName)))

	_, err := LoadConfig(root)
	assert.NilError(t, err)
}
