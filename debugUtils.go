package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// StringifyModuleEvents dumps raw parser output for debug-parse-file.
func StringifyModuleEvents(imports []ImportEvent, exports []ExportEvent) []byte {
	type eventsForJson struct {
		Imports []ImportEvent `json:"imports"`
		Exports []ExportEvent `json:"exports"`
	}
	if imports == nil {
		imports = []ImportEvent{}
	}
	if exports == nil {
		exports = []ExportEvent{}
	}
	jsonData, _ := json.MarshalIndent(eventsForJson{Imports: imports, Exports: exports}, "", "  ")
	return jsonData
}

// StringifyExports returns one line per export, sorted, for comparing scans
// without depending on event order.
func StringifyExports(exports []Export) string {
	lines := make([]string, 0, len(exports))
	for _, e := range exports {
		line := fmt.Sprintf("%s %s=%s from %s", e.Form, e.LocalName, e.ExportedName, e.SourcePath)
		if e.IsTypeOnly {
			line += " type:" + e.TypeOriginLabel
		}
		lines = append(lines, line)
	}
	sort.Strings(lines)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
