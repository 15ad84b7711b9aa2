package main

import (
	"errors"
	"fmt"
)

// Export is one symbol a file makes available to importers.
type Export struct {
	SourcePath   string     `json:"from"`
	ExportedName string     `json:"name"`
	LocalName    string     `json:"localName"` // Key of the export mapping, differs from ExportedName for `as` aliases
	Form         ExportForm `json:"form"`
	IsTypeOnly   bool       `json:"type,omitempty"`
	// PascalCase file stem, set for type-only exports only
	TypeOriginLabel string `json:"typeFrom,omitempty"`
}

var ErrMissingExportName = errors.New("export event has no name")

// MissingExportNameError is returned when the event parser reports a default,
// declaration or namespace export without the name that form requires.
type MissingExportNameError struct {
	FilePath string
	Form     ExportForm
}

func (e *MissingExportNameError) Error() string {
	return fmt.Sprintf("%s: %s export event has no name", e.FilePath, e.Form)
}

func (e *MissingExportNameError) Unwrap() error {
	return ErrMissingExportName
}

// ExportScanner turns file content into Export records using Parser.
type ExportScanner struct {
	Parser EventParser
}

func NewExportScanner() *ExportScanner {
	return &ExportScanner{Parser: ModuleEventParser{}}
}

// ScanExports scans content with the built-in parser. filePath is only used
// for naming and does not have to exist.
func ScanExports(filePath string, content []byte) ([]Export, error) {
	return NewExportScanner().ScanExports(filePath, content)
}

func (s *ExportScanner) ScanExports(filePath string, content []byte) ([]Export, error) {
	_, events := s.Parser.ParseModuleEvents(nil, content)
	typeOrigin := TypeOriginLabel(filePath)

	exports := make([]Export, 0, len(events))
	for _, event := range events {
		switch event.Form {
		case DefaultExport:
			if event.DefaultName == "" {
				return nil, &MissingExportNameError{FilePath: filePath, Form: event.Form}
			}
			exports = append(exports, Export{
				SourcePath:   filePath,
				ExportedName: event.DefaultName,
				LocalName:    event.DefaultName,
				Form:         event.Form,
			})
		case TypeExport:
			for _, binding := range event.TypeNamedExports {
				if binding.Exported == "" {
					continue
				}
				exports = append(exports, Export{
					SourcePath:      filePath,
					ExportedName:    binding.Exported,
					LocalName:       binding.Local,
					Form:            event.Form,
					IsTypeOnly:      true,
					TypeOriginLabel: typeOrigin,
				})
			}
		case DeclarationExport, NamespaceExport:
			if event.Name == "" {
				return nil, &MissingExportNameError{FilePath: filePath, Form: event.Form}
			}
			exports = append(exports, Export{
				SourcePath:   filePath,
				ExportedName: event.Name,
				LocalName:    event.Name,
				Form:         event.Form,
			})
		case NamedExport:
			for _, binding := range event.NamedExports {
				if binding.Exported == "" {
					continue
				}
				exports = append(exports, Export{
					SourcePath:   filePath,
					ExportedName: binding.Exported,
					LocalName:    binding.Local,
					Form:         event.Form,
				})
			}
		}
	}

	return exports, nil
}
