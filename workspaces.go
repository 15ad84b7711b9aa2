package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

type PackageJsonConfig struct {
	Name       string      `json:"name"`
	Version    string      `json:"version"`
	Workspaces interface{} `json:"workspaces"` // can be []string or { packages: []string }
}

type WorkspacePackage struct {
	Name string `json:"name"`
	Dir  string `json:"dir"`
}

// WorkspaceContext knows the packages of a npm/yarn/pnpm workspace, so scanned
// files can be attributed to the package an importer would name.
type WorkspaceContext struct {
	WorkspaceRoot string
	PackageToPath map[string]string
}

func NewWorkspaceContext(root string) *WorkspaceContext {
	return &WorkspaceContext{
		WorkspaceRoot: root,
		PackageToPath: make(map[string]string),
	}
}

// DetectWorkspace walks up from cwd looking for a package.json with workspaces
// or a pnpm-workspace.yaml. Returns nil outside of a workspace.
func DetectWorkspace(cwd string) *WorkspaceContext {
	currentDir := NormalizePathForInternal(filepath.Clean(cwd))
	for {
		pkgJsonPath := filepath.Join(currentDir, "package.json")
		if content, err := os.ReadFile(pkgJsonPath); err == nil {
			var pkgJson map[string]interface{}
			if err := json.Unmarshal(jsonc.ToJSON(content), &pkgJson); err == nil {
				if len(workspacePatterns(pkgJson["workspaces"])) > 0 {
					return NewWorkspaceContext(currentDir)
				}
			}
		}

		pnpmWorkspacePath := filepath.Join(currentDir, "pnpm-workspace.yaml")
		if _, err := os.Stat(pnpmWorkspacePath); err == nil {
			return NewWorkspaceContext(currentDir)
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}
	return nil
}

// workspacePatterns accepts a non-empty array or an object with a "packages" array.
func workspacePatterns(workspaces interface{}) []string {
	var patterns []string
	var list []interface{}
	if l, ok := workspaces.([]interface{}); ok {
		list = l
	} else if obj, ok := workspaces.(map[string]interface{}); ok {
		if packages, ok := obj["packages"].([]interface{}); ok {
			list = packages
		}
	}
	for _, v := range list {
		if s, ok := v.(string); ok {
			patterns = append(patterns, s)
		}
	}
	return patterns
}

func (ctx *WorkspaceContext) FindWorkspacePackages(excludeFilePatterns []PathMatcher) {
	root := DenormalizePathForOS(ctx.WorkspaceRoot)
	var patterns []string

	if content, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		var pkgJson PackageJsonConfig
		if err := json.Unmarshal(jsonc.ToJSON(content), &pkgJson); err == nil {
			patterns = workspacePatterns(pkgJson.Workspaces)
		}
	}

	if len(patterns) == 0 {
		if pnpmContent, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml")); err == nil {
			var pnpmWorkspace struct {
				Packages []string `yaml:"packages"`
			}
			if err := yaml.Unmarshal(pnpmContent, &pnpmWorkspace); err == nil {
				patterns = append(patterns, pnpmWorkspace.Packages...)
			}
		}
	}

	type positivePattern struct {
		basePath string
		isDeep   bool
		isDir    bool
	}

	var positive []positivePattern
	var negative []glob.Glob

	for _, pattern := range patterns {
		if strings.HasPrefix(pattern, "!") {
			cleanP := NormalizeGlobPattern(strings.TrimPrefix(pattern, "!"))
			if g, err := glob.Compile(cleanP, '/'); err == nil {
				negative = append(negative, g)
			}
			continue
		}

		switch {
		case pattern == "*":
			positive = append(positive, positivePattern{basePath: "", isDir: true})
		case strings.HasSuffix(pattern, "/**"):
			positive = append(positive, positivePattern{basePath: strings.TrimSuffix(pattern, "/**"), isDeep: true})
		case strings.HasSuffix(pattern, "/*"):
			positive = append(positive, positivePattern{basePath: strings.TrimSuffix(pattern, "/*"), isDir: true})
		default:
			positive = append(positive, positivePattern{basePath: pattern})
		}
	}

	candidateDirs := make(map[string]bool)

	for _, pos := range positive {
		fullBasePath := filepath.Join(root, DenormalizePathForOS(pos.basePath))

		if pos.isDeep {
			// Recursive walk, stop at package.json
			ctx.walkForPackages(fullBasePath, excludeFilePatterns, candidateDirs)
		} else if pos.isDir {
			// One star: check immediate subdirectories
			entries, err := os.ReadDir(fullBasePath)
			if err != nil {
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() {
					dirPath := filepath.Join(fullBasePath, entry.Name())
					if _, err := os.Stat(filepath.Join(dirPath, "package.json")); err == nil {
						candidateDirs[NormalizePathForInternal(dirPath)] = true
					}
				}
			}
		} else {
			if _, err := os.Stat(filepath.Join(fullBasePath, "package.json")); err == nil {
				candidateDirs[NormalizePathForInternal(fullBasePath)] = true
			}
		}
	}

	for dirPath := range candidateDirs {
		rel, err := filepath.Rel(root, DenormalizePathForOS(dirPath))
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if rel == "." || rel == "" {
			continue
		}

		isExcluded := false
		for _, g := range negative {
			if g.Match(rel) {
				isExcluded = true
				break
			}
		}

		if !isExcluded {
			ctx.processPossiblePackage(dirPath)
		}
	}
}

func (ctx *WorkspaceContext) walkForPackages(basePath string, excludeFilePatterns []PathMatcher, candidateDirs map[string]bool) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == "package.json" {
			// Stop recursing in this branch
			candidateDirs[NormalizePathForInternal(basePath)] = true
			return
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			name := entry.Name()
			if name == ".git" || name == ".idea" || name == ".vscode" || name == "node_modules" {
				continue
			}

			dirPath := filepath.Join(basePath, name)
			if MatchesAnyPathMatcher(dirPath, excludeFilePatterns) {
				continue
			}

			ctx.walkForPackages(dirPath, excludeFilePatterns, candidateDirs)
		}
	}
}

func (ctx *WorkspaceContext) processPossiblePackage(path string) {
	content, err := os.ReadFile(filepath.Join(DenormalizePathForOS(path), "package.json"))
	if err != nil {
		return
	}

	var config PackageJsonConfig
	if err := json.Unmarshal(jsonc.ToJSON(content), &config); err != nil {
		return
	}

	if config.Name == "" {
		return
	}

	ctx.PackageToPath[config.Name] = NormalizePathForInternal(path)
}

// Packages returns the discovered packages sorted by directory.
func (ctx *WorkspaceContext) Packages() []WorkspacePackage {
	packages := make([]WorkspacePackage, 0, len(ctx.PackageToPath))
	for name, dir := range ctx.PackageToPath {
		packages = append(packages, WorkspacePackage{Name: name, Dir: dir})
	}
	slices.SortFunc(packages, func(a, b WorkspacePackage) int {
		return strings.Compare(a.Dir, b.Dir)
	})
	return packages
}

// PackageForFile returns the name of the innermost workspace package containing filePath.
func (ctx *WorkspaceContext) PackageForFile(filePath string) (string, bool) {
	filePath = NormalizePathForInternal(filePath)
	bestName, bestLen := "", -1
	for name, dir := range ctx.PackageToPath {
		prefix := strings.TrimSuffix(dir, "/") + "/"
		if strings.HasPrefix(filePath, prefix) && len(prefix) > bestLen {
			bestName, bestLen = name, len(prefix)
		}
	}
	return bestName, bestLen >= 0
}
