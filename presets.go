package main

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Preset lists the symbols importable from a package whose source is not scanned.
type Preset struct {
	Form    string   `json:"form" yaml:"form"`
	Imports []string `json:"imports" yaml:"imports"`
}

// Exports converts the preset into records shaped like scanner output, with
// the form as source path.
func (p Preset) Exports() []Export {
	exports := make([]Export, 0, len(p.Imports))
	for _, name := range p.Imports {
		exports = append(exports, Export{
			SourcePath:   p.Form,
			ExportedName: name,
			LocalName:    name,
			Form:         NamedExport,
		})
	}
	return exports
}

// PresetTable maps a form to its preset. It is never mutated after
// construction; With returns a new table.
type PresetTable struct {
	presets map[string]Preset
	forms   []string // registration order
}

func NewPresetTable(presets ...Preset) (*PresetTable, error) {
	table := &PresetTable{
		presets: make(map[string]Preset, len(presets)),
		forms:   make([]string, 0, len(presets)),
	}
	for _, preset := range presets {
		if preset.Form == "" {
			return nil, fmt.Errorf("preset with imports %v has an empty form", preset.Imports)
		}
		if _, exists := table.presets[preset.Form]; exists {
			return nil, fmt.Errorf("duplicate preset form %q", preset.Form)
		}
		table.add(preset)
	}
	return table, nil
}

func (t *PresetTable) add(preset Preset) {
	if _, exists := t.presets[preset.Form]; !exists {
		t.forms = append(t.forms, preset.Form)
	}
	t.presets[preset.Form] = Preset{Form: preset.Form, Imports: slices.Clone(preset.Imports)}
}

// Lookup returns the preset registered for form. There is no fallback preset.
func (t *PresetTable) Lookup(form string) (Preset, bool) {
	preset, ok := t.presets[form]
	if !ok {
		return Preset{}, false
	}
	return Preset{Form: preset.Form, Imports: slices.Clone(preset.Imports)}, true
}

func (t *PresetTable) Forms() []string {
	return slices.Clone(t.forms)
}

func (t *PresetTable) Len() int {
	return len(t.forms)
}

// With returns a copy of the table where presets replace entries of the same form.
func (t *PresetTable) With(presets ...Preset) (*PresetTable, error) {
	next := &PresetTable{
		presets: make(map[string]Preset, len(t.presets)+len(presets)),
		forms:   make([]string, 0, len(t.forms)+len(presets)),
	}
	for _, form := range t.forms {
		next.add(t.presets[form])
	}
	for _, preset := range presets {
		if preset.Form == "" {
			return nil, fmt.Errorf("preset with imports %v has an empty form", preset.Imports)
		}
		next.add(preset)
	}
	return next, nil
}

// Exports flattens every preset into export records, in registration order.
func (t *PresetTable) Exports() []Export {
	var exports []Export
	for _, form := range t.forms {
		exports = append(exports, t.presets[form].Exports()...)
	}
	return exports
}

func ReactPreset() Preset {
	return Preset{
		Form: "react",
		Imports: []string{
			"useState",
			"useCallback",
			"useMemo",
			"useEffect",
			"useRef",
			"useContext",
			"useReducer",
		},
	}
}

func VuePreset() Preset {
	return Preset{
		Form: "vue",
		Imports: []string{
			"ref",
			"reactive",
			"computed",
			"watch",
			"watchEffect",
			"onMounted",
			"onUnmounted",
			"nextTick",
			"defineComponent",
		},
	}
}

// DefaultPresets builds the table of built-in presets. Each call returns a new table.
func DefaultPresets() *PresetTable {
	table, err := NewPresetTable(ReactPreset(), VuePreset())
	if err != nil {
		panic(err)
	}
	return table
}

type presetsFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresetsFile reads user presets from a YAML document of the form
//
//	presets:
//	  - form: my-lib
//	    imports: [a, b]
func LoadPresetsFile(path string) ([]Preset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file presetsFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse presets file %s: %w", path, err)
	}
	for i, preset := range file.Presets {
		if preset.Form == "" {
			return nil, fmt.Errorf("%s: presets[%d].form is required", path, i)
		}
	}
	return file.Presets, nil
}
