package main

import (
	"cmp"
	"slices"
)

// ExportIndex groups exports by the identifier an importer would write.
// It lists candidates only; picking one is left to the caller.
type ExportIndex struct {
	byIdentifier map[string][]AnnotatedExport
}

// BuildExportIndex indexes scanned exports and every preset import. Preset
// exports go through annotator as well, matched on their form name.
func BuildExportIndex(scanned []AnnotatedExport, presets *PresetTable, annotator *Annotator) *ExportIndex {
	index := &ExportIndex{byIdentifier: make(map[string][]AnnotatedExport)}
	for _, export := range scanned {
		index.add(export)
	}
	if presets != nil {
		for _, export := range annotator.Annotate(presets.Exports()) {
			index.add(export)
		}
	}
	return index
}

func identifierOf(export AnnotatedExport) string {
	if export.Alias != "" {
		return export.Alias
	}
	return export.ExportedName
}

func (idx *ExportIndex) add(export AnnotatedExport) {
	identifier := identifierOf(export)
	idx.byIdentifier[identifier] = append(idx.byIdentifier[identifier], export)
}

func (idx *ExportIndex) Len() int {
	return len(idx.byIdentifier)
}

// Candidates returns the enabled exports for identifier ordered by priority,
// highest first, then by source. With dts set, exports excluded from
// declaration files are dropped as well.
func (idx *ExportIndex) Candidates(identifier string, dts bool) []AnnotatedExport {
	candidates := []AnnotatedExport{}
	for _, export := range idx.byIdentifier[identifier] {
		if export.IsDisabled() || (dts && export.IsDtsDisabled()) {
			continue
		}
		candidates = append(candidates, export)
	}
	slices.SortStableFunc(candidates, func(a, b AnnotatedExport) int {
		if a.Priority != b.Priority {
			return cmp.Compare(b.Priority, a.Priority)
		}
		if a.SourcePath != b.SourcePath {
			return cmp.Compare(a.SourcePath, b.SourcePath)
		}
		return cmp.Compare(a.LocalName, b.LocalName)
	})
	return candidates
}
