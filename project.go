package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ProjectSettings are the command line inputs of a project. Empty Include and
// Exclude fall back to the config file values.
type ProjectSettings struct {
	Cwd              string
	ConfigPath       string
	Include          []string
	Exclude          []string
	Workspaces       bool
	WorkspacesForced bool     // Workspaces was set explicitly and beats the config value
	Files            []string // Explicit files to scan instead of discovering them
}

// Project ties configuration, presets and scan state of one working directory together.
type Project struct {
	Cwd     string
	Config  *AutoImportConfig
	Presets *PresetTable

	include         []string
	exclude         []string
	excludeMatchers []PathMatcher
	files           []string
	annotator       *Annotator
	workspace       *WorkspaceContext
	cache           *ScanCache
}

func OpenProject(settings ProjectSettings) (*Project, error) {
	cwd := NormalizePathForInternal(filepath.Clean(settings.Cwd))

	var config *AutoImportConfig
	var err error
	if settings.ConfigPath != "" {
		config, err = LoadConfig(joinWithCwd(cwd, settings.ConfigPath))
	} else {
		config, err = FindConfig(cwd)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if config == nil {
		config = &AutoImportConfig{}
	}

	project := &Project{
		Cwd:     cwd,
		Config:  config,
		include: config.Include,
		exclude: config.Exclude,
	}
	if len(settings.Include) > 0 {
		project.include = settings.Include
	}
	if len(settings.Exclude) > 0 {
		project.exclude = settings.Exclude
	}
	for _, file := range settings.Files {
		project.files = append(project.files, joinWithCwd(cwd, file))
	}

	project.Presets = DefaultPresets()
	if config.PresetsFile != "" {
		custom, err := LoadPresetsFile(joinWithCwd(cwd, config.PresetsFile))
		if err != nil {
			return nil, err
		}
		if project.Presets, err = project.Presets.With(custom...); err != nil {
			return nil, fmt.Errorf("%s: %w", config.PresetsFile, err)
		}
	}

	if project.annotator, err = NewAnnotator(config.Overrides, cwd); err != nil {
		return nil, err
	}
	if project.excludeMatchers, err = CreatePathMatchers(project.exclude, cwd); err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	workspaces := config.Workspaces
	if settings.WorkspacesForced {
		workspaces = settings.Workspaces
	}
	if workspaces {
		project.workspace = DetectWorkspace(DenormalizePathForOS(cwd))
		if project.workspace == nil {
			log.WithField("cwd", cwd).Warn("no workspace found, files will not be attributed to packages")
		} else {
			project.workspace.FindWorkspacePackages(project.excludeMatchers)
			log.WithFields(logrus.Fields{
				"root":     project.workspace.WorkspaceRoot,
				"packages": len(project.workspace.PackageToPath),
			}).Debug("workspace detected")
		}
	}

	if project.cache, err = NewScanCache(defaultScanCacheSize); err != nil {
		return nil, err
	}

	return project, nil
}

func joinWithCwd(cwd string, path string) string {
	if filepath.IsAbs(path) {
		return NormalizePathForInternal(filepath.Clean(path))
	}
	return NormalizePathForInternal(filepath.Join(DenormalizePathForOS(cwd), path))
}

func (p *Project) ExcludeMatchers() []PathMatcher {
	return p.excludeMatchers
}

// Files lists the files a scan covers. Discovery runs on every call so files
// created since the last scan are picked up.
func (p *Project) Files() ([]string, error) {
	if len(p.files) > 0 {
		return p.files, nil
	}
	return DiscoverFiles(DenormalizePathForOS(p.Cwd), p.include, p.exclude)
}

// Scan scans the project files, reusing cached results of unchanged files.
func (p *Project) Scan(ctx context.Context) (*ScanReport, error) {
	files, err := p.Files()
	if err != nil {
		return nil, err
	}
	log.WithField("files", len(files)).Debug("scanning")
	return ScanFiles(ctx, files, ScanOptions{
		Cache:     p.cache,
		Annotator: p.annotator,
		Workspace: p.workspace,
	})
}

// Invalidate drops cached results of the given files.
func (p *Project) Invalidate(filePaths []string) {
	for _, filePath := range filePaths {
		p.cache.Invalidate(NormalizePathForInternal(filePath))
	}
}

func (p *Project) BuildIndex(ctx context.Context) (*ExportIndex, error) {
	report, err := p.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return BuildExportIndex(report.Exports(), p.Presets, p.annotator), nil
}
