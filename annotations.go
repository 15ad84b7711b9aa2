package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ExportAnnotation carries the fields the scanner never sets. They come from
// override rules merged after scanning.
type ExportAnnotation struct {
	Priority               int    `json:"priority"`
	Disabled               *bool  `json:"disabled,omitempty"`
	DtsDeclarationDisabled *bool  `json:"dtsDisabled,omitempty"`
	DeclarationKind        string `json:"declarationKind,omitempty"`
	Alias                  string `json:"as,omitempty"`
}

type AnnotatedExport struct {
	Export
	ExportAnnotation
}

func (e AnnotatedExport) IsDisabled() bool {
	return e.Disabled != nil && *e.Disabled
}

func (e AnnotatedExport) IsDtsDisabled() bool {
	return e.DtsDeclarationDisabled != nil && *e.DtsDeclarationDisabled
}

var declarationKinds = []string{"function", "class", "const", "let", "var", "enum", "type", "interface", "namespace"}

// OverrideRule sets annotation fields on exports whose source matches Pattern
// and, when Names is not empty, whose exported name is listed.
type OverrideRule struct {
	Pattern         string   `json:"pattern"`
	Names           []string `json:"names,omitempty"`
	Priority        *int     `json:"priority,omitempty"`
	Disabled        *bool    `json:"disabled,omitempty"`
	DtsDisabled     *bool    `json:"dtsDisabled,omitempty"`
	DeclarationKind string   `json:"declarationKind,omitempty"`
	Alias           string   `json:"alias,omitempty"`
}

func (r OverrideRule) Validate() error {
	if err := validatePattern(r.Pattern); err != nil {
		return err
	}
	if r.DeclarationKind != "" && !slices.Contains(declarationKinds, r.DeclarationKind) {
		return fmt.Errorf("unknown declarationKind '%s', expected one of: %s", r.DeclarationKind, strings.Join(declarationKinds, ", "))
	}
	if r.Alias != "" && len(r.Names) != 1 {
		return fmt.Errorf("alias '%s' requires exactly one entry in names", r.Alias)
	}
	return nil
}

type compiledOverrideRule struct {
	rule    OverrideRule
	pattern glob.Glob // nil matches every source
}

// Annotator applies override rules in order; a later rule wins for every field it sets.
type Annotator struct {
	root  string
	rules []compiledOverrideRule
}

// NewAnnotator compiles rules whose patterns are relative to root. Sources
// outside root (preset forms, for instance) are matched as-is.
func NewAnnotator(rules []OverrideRule, root string) (*Annotator, error) {
	rootNorm := NormalizePathForInternal(root)
	if rootNorm != "" && !strings.HasSuffix(rootNorm, "/") {
		rootNorm += "/"
	}
	annotator := &Annotator{root: rootNorm, rules: make([]compiledOverrideRule, 0, len(rules))}
	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("overrides[%d]: %w", i, err)
		}
		compiled := compiledOverrideRule{rule: rule}
		if rule.Pattern != "" {
			g, err := glob.Compile(NormalizeGlobPattern(rule.Pattern), '/')
			if err != nil {
				return nil, fmt.Errorf("overrides[%d].pattern: %w", i, err)
			}
			compiled.pattern = g
		}
		annotator.rules = append(annotator.rules, compiled)
	}
	return annotator, nil
}

func (a *Annotator) matches(rule compiledOverrideRule, export Export) bool {
	if len(rule.rule.Names) > 0 && !slices.Contains(rule.rule.Names, export.ExportedName) {
		return false
	}
	if rule.pattern == nil {
		return true
	}
	source := strings.TrimPrefix(NormalizePathForInternal(export.SourcePath), a.root)
	return rule.pattern.Match(source)
}

// Annotate pairs every export with its annotation. A nil Annotator yields the
// zero annotation: priority 0 and every optional field unset.
func (a *Annotator) Annotate(exports []Export) []AnnotatedExport {
	annotated := make([]AnnotatedExport, 0, len(exports))
	for _, export := range exports {
		item := AnnotatedExport{Export: export}
		if a != nil {
			for _, rule := range a.rules {
				if a.matches(rule, export) {
					applyOverride(&item.ExportAnnotation, rule.rule)
				}
			}
		}
		annotated = append(annotated, item)
	}
	return annotated
}

func applyOverride(annotation *ExportAnnotation, rule OverrideRule) {
	if rule.Priority != nil {
		annotation.Priority = *rule.Priority
	}
	if rule.Disabled != nil {
		disabled := *rule.Disabled
		annotation.Disabled = &disabled
	}
	if rule.DtsDisabled != nil {
		dtsDisabled := *rule.DtsDisabled
		annotation.DtsDeclarationDisabled = &dtsDisabled
	}
	if rule.DeclarationKind != "" {
		annotation.DeclarationKind = rule.DeclarationKind
	}
	if rule.Alias != "" {
		annotation.Alias = rule.Alias
	}
}
