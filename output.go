package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

var (
	fileHeader  = color.New(color.Bold).SprintFunc()
	typeMarker  = color.New(color.FgCyan).SprintFunc()
	failureText = color.New(color.FgYellow).SprintFunc()
	mutedText   = color.New(color.Faint).SprintFunc()
)

func writeJSON(w io.Writer, value any) error {
	jsonData, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func exportDetails(export AnnotatedExport) string {
	details := []string{export.Form.String()}
	if export.LocalName != "" && export.LocalName != export.ExportedName {
		details = append(details, "local "+export.LocalName)
	}
	if export.IsTypeOnly {
		details = append(details, typeMarker("type from "+export.TypeOriginLabel))
	}
	if export.Priority != 0 {
		details = append(details, fmt.Sprintf("priority %d", export.Priority))
	}
	if export.Alias != "" {
		details = append(details, "as "+export.Alias)
	}
	if export.IsDisabled() {
		details = append(details, mutedText("disabled"))
	}
	return strings.Join(details, ", ")
}

func relativeExports(exports []AnnotatedExport, cwd string) []AnnotatedExport {
	relative := make([]AnnotatedExport, len(exports))
	for i, export := range exports {
		export.SourcePath = ToRelativePath(cwd, export.SourcePath)
		relative[i] = export
	}
	return relative
}

// RelativeScanReport copies report with every path made relative to cwd.
func RelativeScanReport(report *ScanReport, cwd string) *ScanReport {
	relative := &ScanReport{
		Files:    make([]FileExports, 0, len(report.Files)),
		Failures: make([]ScanFailure, 0, len(report.Failures)),
	}
	for _, file := range report.Files {
		relative.Files = append(relative.Files, FileExports{
			FilePath: ToRelativePath(cwd, file.FilePath),
			Package:  file.Package,
			Exports:  relativeExports(file.Exports, cwd),
		})
	}
	for _, failure := range report.Failures {
		failure.FilePath = ToRelativePath(cwd, failure.FilePath)
		relative.Failures = append(relative.Failures, failure)
	}
	return relative
}

// FormatScanReport renders the report with paths relative to cwd.
func FormatScanReport(w io.Writer, report *ScanReport, cwd string) error {
	exportsCount := 0
	for _, file := range report.Files {
		header := ToRelativePath(cwd, file.FilePath)
		if file.Package != "" {
			header += " (" + file.Package + ")"
		}
		fmt.Fprintln(w, fileHeader(header))

		if len(file.Exports) == 0 {
			fmt.Fprintln(w, mutedText("  (no exports)"))
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, export := range file.Exports {
			fmt.Fprintf(tw, "  %s\t%s\n", export.ExportedName, exportDetails(export))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		exportsCount += len(file.Exports)
	}

	for _, failure := range report.Failures {
		fmt.Fprintf(w, "%s %s: %s\n", failureText("skipped"), ToRelativePath(cwd, failure.FilePath), failure.Error)
	}

	_, err := fmt.Fprintf(w, "\n%d files, %d exports, %d skipped\n", len(report.Files), exportsCount, len(report.Failures))
	return err
}

// FormatCandidates renders lookup results, one candidate per line.
func FormatCandidates(w io.Writer, identifier string, candidates []AnnotatedExport, cwd string) error {
	if len(candidates) == 0 {
		_, err := fmt.Fprintf(w, "No exports found for '%s'\n", identifier)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, candidate := range candidates {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", candidate.ExportedName, ToRelativePath(cwd, candidate.SourcePath), exportDetails(candidate))
	}
	return tw.Flush()
}

func FormatPresetForms(w io.Writer, presets *PresetTable) error {
	for _, form := range presets.Forms() {
		preset, _ := presets.Lookup(form)
		if _, err := fmt.Fprintf(w, "%s %s\n", fileHeader(form), mutedText(fmt.Sprintf("(%d imports)", len(preset.Imports)))); err != nil {
			return err
		}
	}
	return nil
}

func FormatPreset(w io.Writer, preset Preset) error {
	for _, name := range preset.Imports {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}
