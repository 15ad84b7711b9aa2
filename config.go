package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/jsonc"
)

// AutoImportConfig is the content of auto-import.config.json. Command line
// flags take precedence over these values.
type AutoImportConfig struct {
	Schema        string         `json:"$schema,omitempty"`
	ConfigVersion string         `json:"configVersion,omitempty"`
	Include       []string       `json:"include,omitempty"` // Glob patterns of files to scan (default: all source files)
	Exclude       []string       `json:"exclude,omitempty"` // Glob patterns excluded on top of .gitignore
	PresetsFile   string         `json:"presetsFile,omitempty"`
	Workspaces    bool           `json:"workspaces,omitempty"`
	Overrides     []OverrideRule `json:"overrides,omitempty"`
}

var configFileName = "auto-import.config.json"

const currentConfigVersion = "1.0"

var supportedConfigVersions = ">= 1.0, < 2.0"

// LoadConfig loads the configuration from the specified path.
// configPath can be a specific file path or a directory containing auto-import.config.json.
func LoadConfig(configPath string) (*AutoImportConfig, error) {
	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return nil, err
	}

	actualPath := configPath
	if fileInfo.IsDir() {
		actualPath = filepath.Join(configPath, configFileName)
	}

	content, err := os.ReadFile(actualPath)
	if err != nil {
		return nil, err
	}

	config, err := ParseConfig(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", actualPath, err)
	}
	return config, nil
}

// FindConfig returns the config in dir, or nil when dir has none.
func FindConfig(dir string) (*AutoImportConfig, error) {
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return LoadConfig(path)
}

func ParseConfig(content []byte) (*AutoImportConfig, error) {
	var config AutoImportConfig
	if err := json.Unmarshal(jsonc.ToJSON(content), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.ConfigVersion != "" {
		if err := checkConfigVersion(config.ConfigVersion); err != nil {
			return nil, err
		}
	}

	for i, p := range config.Include {
		if err := validatePattern(p); err != nil {
			return nil, fmt.Errorf("include[%d]: %w", i, err)
		}
	}
	for i, p := range config.Exclude {
		if err := validatePattern(p); err != nil {
			return nil, fmt.Errorf("exclude[%d]: %w", i, err)
		}
	}
	for i, rule := range config.Overrides {
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("overrides[%d]: %w", i, err)
		}
	}

	return &config, nil
}

func checkConfigVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid configVersion '%s': %w", version, err)
	}
	constraint, err := semver.NewConstraint(supportedConfigVersions)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("unsupported configVersion '%s', supported versions: %s", version, supportedConfigVersions)
	}
	return nil
}

func validatePattern(pattern string) error {
	if len(pattern) >= 2 && pattern[0] == '.' && (pattern[1] == '/' || pattern[1] == '\\') {
		return fmt.Errorf("pattern '%s' starts with './' or '.\\', which is not allowed. Use paths that starts with file or directory name", pattern)
	}
	if len(pattern) >= 3 && pattern[0] == '.' && pattern[1] == '.' && (pattern[2] == '/' || pattern[2] == '\\') {
		return fmt.Errorf("pattern '%s' starts with '../' or '..\\', which is not allowed. Use paths that starts with file or directory name", pattern)
	}
	return nil
}

// initConfigFileCore creates the config file without printing results.
// At a monorepo root the config enables workspace scanning.
func initConfigFileCore(cwd string) (string, *AutoImportConfig, error) {
	configPath := filepath.Join(cwd, configFileName)
	if _, err := os.Stat(configPath); err == nil {
		return "", nil, fmt.Errorf("config file already exists at %s", configPath)
	}

	config := &AutoImportConfig{
		ConfigVersion: currentConfigVersion,
		Exclude:       []string{"**/*.test.*", "**/*.spec.*"},
	}

	if monorepoCtx := DetectWorkspace(cwd); monorepoCtx != nil {
		if StandardiseDirPath(cwd) == StandardiseDirPath(monorepoCtx.WorkspaceRoot) {
			config.Workspaces = true
		}
	}

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, append(configJSON, '\n'), 0644); err != nil {
		return "", nil, fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, config, nil
}
