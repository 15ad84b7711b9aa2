package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var (
	currentDir, _ = os.Getwd()
	verbose       bool
	rootCmd       = &cobra.Command{
		Use:   "auto-import",
		Short: "Collect the exports auto-import can offer for a JavaScript/TypeScript project",
		Long: `Scans JavaScript and TypeScript sources for the symbols they export and
combines them with import presets of common packages, so identifiers can be
matched to the modules that provide them.`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

var docsCmd = &cobra.Command{
	Use:   "doc-gen",
	Short: "Generate CLI documentation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return doc.GenMarkdownTree(rootCmd, "./docs")
	},
}

// ---------------- shared flags ----------------

var (
	projectCwd        string
	projectConfigPath string
	projectInclude    []string
	projectExclude    []string
	projectWorkspaces bool
	outputJSON        bool
)

func addProjectFlags(command *cobra.Command) {
	command.Flags().StringVarP(&projectCwd, "cwd", "c", currentDir,
		"Working directory for the command")
	command.Flags().StringVar(&projectConfigPath, "config", "",
		"Path to auto-import.config.json (default: <cwd>/auto-import.config.json when present)")
	command.Flags().StringSliceVar(&projectInclude, "include", []string{},
		"Only scan files matching these glob patterns")
	command.Flags().StringSliceVar(&projectExclude, "exclude", []string{},
		"Exclude files matching these glob patterns")
	command.Flags().BoolVar(&projectWorkspaces, "workspaces", false,
		"Attribute files to the workspace packages they belong to")
	command.Flags().BoolVar(&outputJSON, "json", false,
		"Print results as JSON")
}

func projectSettingsFromFlags(cmd *cobra.Command, files []string) ProjectSettings {
	return ProjectSettings{
		Cwd:              ResolveAbsoluteCwd(projectCwd),
		ConfigPath:       projectConfigPath,
		Include:          projectInclude,
		Exclude:          projectExclude,
		Workspaces:       projectWorkspaces,
		WorkspacesForced: cmd.Flags().Changed("workspaces"),
		Files:            files,
	}
}

// ---------------- scan ----------------
var (
	scanWatch bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "List the exports of project files",
	Long: `Scans the given files, or every source file under the working directory,
and lists the symbols each of them exports.`,
	Example: "auto-import scan --include='src/**' --exclude='**/*.test.ts'",
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := OpenProject(projectSettingsFromFlags(cmd, args))
		if err != nil {
			return err
		}
		if scanWatch {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchCmdFn(ctx, cmd.OutOrStdout(), project, outputJSON)
		}
		return scanCmdFn(cmd.Context(), cmd.OutOrStdout(), project, outputJSON)
	},
}

func printScanReport(out io.Writer, project *Project, report *ScanReport, asJSON bool) error {
	if asJSON {
		return writeJSON(out, RelativeScanReport(report, project.Cwd))
	}
	return FormatScanReport(out, report, project.Cwd)
}

func scanCmdFn(ctx context.Context, out io.Writer, project *Project, asJSON bool) error {
	report, err := project.Scan(ctx)
	if err != nil {
		return err
	}
	return printScanReport(out, project, report, asJSON)
}

func watchCmdFn(ctx context.Context, out io.Writer, project *Project, asJSON bool) error {
	if err := scanCmdFn(ctx, out, project, asJSON); err != nil {
		return err
	}

	watcher, err := NewSourceWatcher(defaultWatchDebounce, project.ExcludeMatchers(), func(changed []string) {
		log.WithField("files", len(changed)).Info("rescanning changed files")
		project.Invalidate(changed)
		report, err := project.Scan(ctx)
		if err != nil {
			log.WithError(err).Error("rescan failed")
			return
		}
		if err := printScanReport(out, project, report, asJSON); err != nil {
			log.WithError(err).Error("failed to print scan report")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	log.WithField("cwd", project.Cwd).Info("watching for changes")
	return watcher.Run(ctx, DenormalizePathForOS(project.Cwd))
}

// ---------------- lookup ----------------
var (
	lookupDts bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <identifier>",
	Short: "List the modules that export an identifier",
	Long: `Lists every scanned export and preset import matching the identifier,
highest priority first. Disabled exports are left out.`,
	Example: "auto-import lookup useState",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := OpenProject(projectSettingsFromFlags(cmd, nil))
		if err != nil {
			return err
		}
		return lookupCmdFn(cmd.Context(), cmd.OutOrStdout(), project, args[0], lookupDts, outputJSON)
	},
}

func lookupCmdFn(ctx context.Context, out io.Writer, project *Project, identifier string, dts bool, asJSON bool) error {
	index, err := project.BuildIndex(ctx)
	if err != nil {
		return err
	}
	candidates := index.Candidates(identifier, dts)
	if asJSON {
		return writeJSON(out, relativeExports(candidates, project.Cwd))
	}
	return FormatCandidates(out, identifier, candidates, project.Cwd)
}

// ---------------- presets ----------------
var presetsCmd = &cobra.Command{
	Use:   "presets [form]",
	Short: "List import presets",
	Long: `Without arguments lists the forms of every available preset. With a form,
lists the imports that preset provides.`,
	Example: "auto-import presets react",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, err := OpenProject(projectSettingsFromFlags(cmd, nil))
		if err != nil {
			return err
		}
		form := ""
		if len(args) == 1 {
			form = args[0]
		}
		return presetsCmdFn(cmd.OutOrStdout(), project.Presets, form, outputJSON)
	},
}

func presetsCmdFn(out io.Writer, presets *PresetTable, form string, asJSON bool) error {
	if form == "" {
		if asJSON {
			return writeJSON(out, presets.Forms())
		}
		return FormatPresetForms(out, presets)
	}

	preset, ok := presets.Lookup(form)
	if !ok {
		return fmt.Errorf("unknown preset '%s', available presets: %v", form, presets.Forms())
	}
	if asJSON {
		return writeJSON(out, preset)
	}
	return FormatPreset(out, preset)
}

// ---------------- config ----------------
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage auto-import.config.json",
}

var configInitCwd string

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create auto-import.config.json with defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitCmdFn(cmd.OutOrStdout(), ResolveAbsoluteCwd(configInitCwd))
	},
}

func configInitCmdFn(out io.Writer, cwd string) error {
	configPath, config, err := initConfigFileCore(cwd)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created %s\n", configPath)
	if config.Workspaces {
		fmt.Fprintln(out, "Workspace root detected, workspace packages will be attributed")
	}
	return nil
}

// ---------------- debug-parse-file ----------------
var (
	debugFile    string
	debugFileCwd string
)

var debugParseFileCmd = &cobra.Command{
	Use:    "debug-parse-file",
	Short:  "Debug: Show parser events for a single file",
	Long:   `Development tool to inspect how the parser processes a specific file.`,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd := ResolveAbsoluteCwd(debugFileCwd)
		return debugParseFileCmdFn(cmd.OutOrStdout(), filepath.Join(cwd, debugFile))
	},
}

func debugParseFileCmdFn(out io.Writer, filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	imports, exports := ParseModuleEvents(content, content)
	_, err = fmt.Fprintln(out, string(StringifyModuleEvents(imports, exports)))
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log debug information to stderr")

	// scan flags
	addProjectFlags(scanCmd)
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false,
		"Keep running and rescan files when they change")

	// lookup flags
	addProjectFlags(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupDts, "dts", false,
		"Leave out exports disabled for declaration files")

	// presets flags
	addProjectFlags(presetsCmd)

	// config flags
	configInitCmd.Flags().StringVarP(&configInitCwd, "cwd", "c", currentDir,
		"Directory to create the config file in")
	configCmd.AddCommand(configInitCmd)

	// debug-parse-file flags
	debugParseFileCmd.Flags().StringVarP(&debugFile, "file", "f", "",
		"File to parse")
	debugParseFileCmd.Flags().StringVarP(&debugFileCwd, "cwd", "c", currentDir,
		"Working directory for the command")
	debugParseFileCmd.MarkFlagRequired("file")

	// add commands
	rootCmd.AddCommand(scanCmd, lookupCmd, presetsCmd, configCmd, debugParseFileCmd, docsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
