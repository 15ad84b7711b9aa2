package main

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type ExportForm uint8

const (
	DefaultExport ExportForm = iota
	NamedExport
	TypeExport
	NamespaceExport
	DeclarationExport
)

var exportFormNames = [...]string{"default", "named", "type", "namespace", "declaration"}

func (f ExportForm) String() string {
	if int(f) < len(exportFormNames) {
		return exportFormNames[f]
	}
	return "unknown"
}

func (f ExportForm) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ExportBinding is one entry of an export list: the local name (or the name in the
// re-exported module) and the name importers see.
type ExportBinding struct {
	Local    string `json:"local"`
	Exported string `json:"exported"`
}

// ExportEvent describes a single export statement. Which payload field is set
// depends on Form: DefaultName for default exports, Name for namespace and
// declaration exports, NamedExports and TypeNamedExports for list exports.
type ExportEvent struct {
	Form             ExportForm      `json:"form"`
	Name             string          `json:"name,omitempty"`
	DefaultName      string          `json:"defaultName,omitempty"`
	NamedExports     []ExportBinding `json:"namedExports,omitempty"`
	TypeNamedExports []ExportBinding `json:"typeNamedExports,omitempty"`
	Specifier        string          `json:"specifier,omitempty"` // set for re-exports (`... from 'mod'`)
	Start            uint32          `json:"start"`               // Byte offset of the `export` keyword
	End              uint32          `json:"end"`                 // Byte offset where parsing of the statement stopped
}

type ImportBinding struct {
	Imported string `json:"imported"` // "default" for default imports, "*" for namespace
	Local    string `json:"local"`
	IsType   bool   `json:"isType,omitempty"`
}

type ImportEvent struct {
	Specifier      string          `json:"specifier"`
	Bindings       []ImportBinding `json:"bindings,omitempty"`
	IsTypeOnly     bool            `json:"isTypeOnly,omitempty"`
	IsReexport     bool            `json:"isReexport,omitempty"` // true for `export ... from 'mod'`
	SpecifierStart uint32          `json:"specifierStart"`
	SpecifierEnd   uint32          `json:"specifierEnd"`
}

// EventParser turns module source text into import and export events.
// A nil input means the corresponding half is not requested.
type EventParser interface {
	ParseModuleEvents(importsCode []byte, exportsCode []byte) ([]ImportEvent, []ExportEvent)
}

// ModuleEventParser is the built-in EventParser. It is stateless and safe for
// concurrent use.
type ModuleEventParser struct{}

func (ModuleEventParser) ParseModuleEvents(importsCode []byte, exportsCode []byte) ([]ImportEvent, []ExportEvent) {
	return ParseModuleEvents(importsCode, exportsCode)
}

// ParseModuleEvents scans importsCode for import events and exportsCode for
// export events. Only top-level statements produce events; malformed code
// yields fewer events, never an error.
func ParseModuleEvents(importsCode []byte, exportsCode []byte) ([]ImportEvent, []ExportEvent) {
	var imports []ImportEvent
	var exports []ExportEvent

	if importsCode != nil {
		state := parseState{code: importsCode, n: len(importsCode), collectImports: true}
		state.run()
		imports = state.imports
	}
	if exportsCode != nil {
		state := parseState{code: exportsCode, n: len(exportsCode), collectExports: true}
		state.run()
		exports = state.exports
	}

	return imports, exports
}

func isWhiteSpace(char byte) bool {
	return (char == ' ' || char == '\t' || char == '\n' || char == '\r')
}

// skipSpaces skips spaces, tabs, and newlines, returns new index
func skipSpaces(code []byte, i int) int {
	for i < len(code) && isWhiteSpace(code[i]) {
		i++
	}
	return i
}

func isByteIdentifierChar(char byte) bool {
	// 0-9 || A-Z || a-z || _ || $
	return (char >= 48 && char <= 57) || (char >= 65 && char <= 90) || (char >= 97 && char <= 122) || char == 95 || char == 36
}

const (
	zeroWidthNonJoiner = '\u200c'
	zeroWidthJoiner    = '\u200d'
)

// identifierCharLen returns the byte length of the identifier character at i,
// or 0 when there is none. Digits, marks and joiners only count as continuation.
func identifierCharLen(code []byte, i int, continuation bool) int {
	if i >= len(code) {
		return 0
	}
	if code[i] < utf8.RuneSelf {
		if isByteIdentifierChar(code[i]) {
			return 1
		}
		return 0
	}
	r, size := utf8.DecodeRune(code[i:])
	switch {
	case unicode.IsLetter(r) || unicode.Is(unicode.Nl, r):
		return size
	case continuation && (unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) ||
		r == zeroWidthNonJoiner || r == zeroWidthJoiner):
		return size
	}
	return 0
}

func hasPrefixAt(code []byte, i int, s string) bool {
	if i < 0 || i+len(s) > len(code) {
		return false
	}
	for j := 0; j < len(s); j++ {
		if code[i+j] != s[j] {
			return false
		}
	}
	return true
}

func hasWordAt(code []byte, i int, s string) bool {
	if !hasPrefixAt(code, i, s) {
		return false
	}
	end := i + len(s)
	return identifierCharLen(code, end, true) == 0
}

// parseStringLiteral extracts the string literal at position i (' or ")
func parseStringLiteral(code []byte, i int) (string, int, int, int) {
	quote := code[i]
	i++
	start := i
	for i < len(code) && code[i] != quote && code[i] != '\n' {
		i++
	}
	if i >= len(code) || code[i] != quote {
		return "", i, 0, 0
	}
	return string(code[start:i]), i + 1, start, i
}

// skipToStringEnd skips to the end of a string literal. Quoted strings end at
// an unescaped newline, template literals may span lines.
func skipToStringEnd(code []byte, start int, quote byte) int {
	i := start + 1
	for i < len(code) {
		if code[i] == quote || (quote != '`' && code[i] == '\n') {
			return i
		}
		if code[i] == '\\' && i+1 < len(code) {
			i += 2
		} else {
			i++
		}
	}
	return i
}

// skipLineComment skips to the end of a line comment
func skipLineComment(code []byte, start int) int {
	i := start + 2
	for i < len(code) && code[i] != '\n' {
		i++
	}
	return i
}

// skipBlockComment skips to the end of a block comment
func skipBlockComment(code []byte, start int) int {
	i := start + 2
	for i+1 < len(code) && !(code[i] == '*' && code[i+1] == '/') {
		i++
	}
	if i+1 < len(code) {
		i += 2
	} else {
		i = len(code)
	}
	return i
}

// skipSpacesAndComments skips whitespace, line comments, and block comments
func skipSpacesAndComments(code []byte, i int) int {
	n := len(code)
	for i < n {
		i = skipSpaces(code, i)
		if i+1 < n && code[i] == '/' && code[i+1] == '/' {
			i = skipLineComment(code, i)
			continue
		}
		if i+1 < n && code[i] == '/' && code[i+1] == '*' {
			i = skipBlockComment(code, i)
			continue
		}
		break
	}
	return i
}

// skipOptionalSemicolon skips whitespace (spaces/tabs only) then `;` if present.
// Returns position after `;` if found, or the original position i if not.
func skipOptionalSemicolon(code []byte, i int) int {
	n := len(code)
	j := i
	for j < n && (code[j] == ' ' || code[j] == '\t') {
		j++
	}
	if j < n && code[j] == ';' {
		return j + 1
	}
	return i
}

// parseIdentifier extracts a single identifier token starting at position i.
// Returns the identifier string, next position, and byte offsets (start, end).
func parseIdentifier(code []byte, i int) (name string, next int, start int, end int) {
	if identifierCharLen(code, i, false) == 0 {
		return "", i, i, i
	}
	start = i
	for {
		size := identifierCharLen(code, i, true)
		if size == 0 {
			break
		}
		i += size
	}
	return string(code[start:i]), i, start, i
}

// parseModuleExportName parses an identifier or a string literal name as used in
// `export { "a-b" as c }`. next == i means nothing was parsed.
func parseModuleExportName(code []byte, i int) (string, int) {
	if i < len(code) && (code[i] == '"' || code[i] == '\'') {
		name, next, _, _ := parseStringLiteral(code, i)
		if name == "" {
			return "", i
		}
		return name, next
	}
	name, next, _, _ := parseIdentifier(code, i)
	return name, next
}

// parseFromClause parses an optional `from 'specifier'` starting at i.
// Returns an empty specifier and the original position when there is none.
func parseFromClause(code []byte, i int) (specifier string, specStart int, specEnd int, next int) {
	j := skipSpacesAndComments(code, i)
	if !hasWordAt(code, j, "from") {
		return "", 0, 0, i
	}
	j = skipSpacesAndComments(code, j+4)
	if j < len(code) && (code[j] == '"' || code[j] == '\'') {
		spec, after, start, end := parseStringLiteral(code, j)
		if spec != "" {
			return spec, start, end, after
		}
	}
	return "", 0, 0, j
}

// skipExpression advances over an expression and stops at the first byte from
// stops found outside of brackets, strings and comments, or at an unmatched
// closing bracket.
func skipExpression(code []byte, i int, stops string) int {
	n := len(code)
	depth := 0
	ctx := lexContext{last: '='}
	for i < n {
		b := code[i]
		if depth == 0 && strings.IndexByte(stops, b) >= 0 {
			return i
		}
		if isWhiteSpace(b) {
			i++
			continue
		}
		if b == '/' && i+1 < n && code[i+1] == '/' {
			i = skipLineComment(code, i)
			continue
		}
		if b == '/' && i+1 < n && code[i+1] == '*' {
			i = skipBlockComment(code, i)
			continue
		}
		if next, ok := skipLiteralAt(code, i, ctx, 0); ok {
			i = next
			ctx = lexContext{last: '"'}
			continue
		}
		switch b {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return i
			}
			depth--
		}
		if word, next, _, _ := parseIdentifier(code, i); word != "" {
			i = next
			ctx = lexContext{last: 'a', word: word}
			continue
		}
		ctx.see(code, i)
		i++
	}
	return i
}

// skipTypeAnnotation advances over a `: Type` annotation of a variable
// declarator, stopping at the initializer `=`, a declarator `,`, or the end of
// the statement. Angle brackets count as nesting so `Map<K, V>` is one type.
func skipTypeAnnotation(code []byte, i int) int {
	n := len(code)
	depth := 0
	for i < n {
		b := code[i]
		if depth == 0 {
			if b == '=' && !(i+1 < n && code[i+1] == '>') {
				return i
			}
			if b == ',' || b == ';' || b == '\n' || b == '\r' {
				return i
			}
		}
		switch b {
		case '\'', '"', '`':
			i = skipToStringEnd(code, i, b)
			if i < n {
				i++
			}
			continue
		case '/':
			if i+1 < n && code[i+1] == '/' {
				i = skipLineComment(code, i)
				continue
			}
			if i+1 < n && code[i+1] == '*' {
				i = skipBlockComment(code, i)
				continue
			}
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return i
			}
			depth--
		case '>':
			if i > 0 && code[i-1] == '=' {
				break
			}
			if depth > 0 {
				depth--
			}
		}
		i++
	}
	return i
}

// parseBindingPattern collects the names bound by a declarator target:
// an identifier, an object pattern or an array pattern.
func parseBindingPattern(code []byte, i int) ([]string, int) {
	if i >= len(code) {
		return nil, i
	}
	switch code[i] {
	case '{':
		return parseObjectPattern(code, i)
	case '[':
		return parseArrayPattern(code, i)
	}
	name, next, _, _ := parseIdentifier(code, i)
	if name == "" {
		return nil, i
	}
	return []string{name}, next
}

func parseObjectPattern(code []byte, i int) ([]string, int) {
	n := len(code)
	names := []string{}
	i++ // skip '{'
	for i < n {
		i = skipSpacesAndComments(code, i)
		if i >= n {
			break
		}
		if code[i] == '}' {
			return names, i + 1
		}
		if code[i] == ',' {
			i++
			continue
		}
		if hasPrefixAt(code, i, "...") {
			j := skipSpacesAndComments(code, i+3)
			rest, next := parseBindingPattern(code, j)
			if next == j {
				return names, next
			}
			names = append(names, rest...)
			i = next
			continue
		}

		key := ""
		switch {
		case code[i] == '"' || code[i] == '\'':
			_, next, _, _ := parseStringLiteral(code, i)
			if next == i {
				return names, i
			}
			i = next
		case code[i] == '[':
			i = skipExpression(code, i+1, "]")
			if i < n {
				i++
			}
		default:
			var next int
			key, next, _, _ = parseIdentifier(code, i)
			if key == "" {
				return names, i
			}
			i = next
		}

		i = skipSpacesAndComments(code, i)
		if i < n && code[i] == ':' {
			j := skipSpacesAndComments(code, i+1)
			value, next := parseBindingPattern(code, j)
			if next == j {
				return names, next
			}
			names = append(names, value...)
			i = skipSpacesAndComments(code, next)
		} else if key != "" {
			names = append(names, key)
		}
		if i < n && code[i] == '=' {
			i = skipExpression(code, i+1, ",}")
		}
	}
	return names, i
}

func parseArrayPattern(code []byte, i int) ([]string, int) {
	n := len(code)
	names := []string{}
	i++ // skip '['
	for i < n {
		i = skipSpacesAndComments(code, i)
		if i >= n {
			break
		}
		if code[i] == ']' {
			return names, i + 1
		}
		if code[i] == ',' {
			i++
			continue
		}
		j := i
		if hasPrefixAt(code, j, "...") {
			j = skipSpacesAndComments(code, j+3)
		}
		element, next := parseBindingPattern(code, j)
		if next == j {
			return names, next
		}
		names = append(names, element...)
		i = skipSpacesAndComments(code, next)
		if i < n && code[i] == '=' {
			i = skipExpression(code, i+1, ",]")
		}
	}
	return names, i
}

// exportEntry is a parsed `{ ... }` list entry.
type exportEntry struct {
	ExportBinding
	IsType bool
}

// parseExportBindings parses `{ A, B as C, type D, "e-f" as g }` with code[i] == '{'.
func parseExportBindings(code []byte, i int, isWholeStatementType bool) ([]exportEntry, int) {
	n := len(code)
	entries := make([]exportEntry, 0, 4)
	i++ // skip '{'
	for i < n {
		i = skipSpacesAndComments(code, i)
		if i >= n {
			break
		}
		if code[i] == '}' {
			return entries, i + 1
		}
		if code[i] == ',' {
			i++
			continue
		}

		isType := isWholeStatementType
		// Inline `type` modifier, but not `{ type as X }` which exports a binding named `type`
		if hasWordAt(code, i, "type") {
			k := skipSpacesAndComments(code, i+4)
			if k < n && (identifierCharLen(code, k, false) > 0 || code[k] == '"' || code[k] == '\'') && !hasWordAt(code, k, "as") {
				isType = true
				i = k
			}
		}

		local, next := parseModuleExportName(code, i)
		if next == i {
			i++
			continue
		}
		i = skipSpacesAndComments(code, next)

		exported := local
		if hasWordAt(code, i, "as") {
			k := skipSpacesAndComments(code, i+2)
			alias, aliasNext := parseModuleExportName(code, k)
			if aliasNext != k {
				exported = alias
				i = aliasNext
			}
		}

		entries = append(entries, exportEntry{
			ExportBinding: ExportBinding{Local: local, Exported: exported},
			IsType:        isType,
		})
	}
	return entries, i
}

var nonNameDefaultWords = map[string]struct{}{
	"new": {}, "this": {}, "await": {}, "typeof": {}, "void": {}, "delete": {},
	"null": {}, "true": {}, "false": {}, "yield": {}, "super": {},
}

// isBareIdentifierEnd reports whether the identifier ending at i is a whole
// expression, as in `export default foo;`.
func isBareIdentifierEnd(code []byte, i int) bool {
	n := len(code)
	for i < n && (code[i] == ' ' || code[i] == '\t') {
		i++
	}
	if i >= n {
		return true
	}
	if code[i] == ';' || code[i] == '\n' || code[i] == '\r' || code[i] == '}' {
		return true
	}
	return i+1 < n && code[i] == '/' && (code[i+1] == '/' || code[i+1] == '*')
}

// declaredName reads the name of `function [*] Name` or `class Name` starting
// right after the keyword. Anonymous declarations give "".
func declaredName(code []byte, i int) (string, int) {
	n := len(code)
	i = skipSpacesAndComments(code, i)
	if i < n && code[i] == '*' {
		i = skipSpacesAndComments(code, i+1)
	}
	name, next, _, _ := parseIdentifier(code, i)
	if name == "" || name == "extends" || name == "implements" {
		return "", i
	}
	return name, next
}

type parseState struct {
	code           []byte
	n              int
	collectImports bool
	collectExports bool
	imports        []ImportEvent
	exports        []ExportEvent
}

func (s *parseState) addExport(event ExportEvent) {
	if s.collectExports {
		s.exports = append(s.exports, event)
	}
}

func (s *parseState) addImport(event ImportEvent) {
	if s.collectImports {
		s.imports = append(s.imports, event)
	}
}

func (s *parseState) run() {
	code := s.code
	n := s.n
	i := 0
	depth := 0 // brace depth: static import/export can only appear at depth 0

	var ctx lexContext

	for i < n {
		b := code[i]
		switch {
		case isWhiteSpace(b):
			i++
			continue
		case b == '/' && i+1 < n && code[i+1] == '/':
			i = skipLineComment(code, i)
			continue
		case b == '/' && i+1 < n && code[i+1] == '*':
			i = skipBlockComment(code, i)
			continue
		case b == '\'' || b == '"' || b == '`' || b == '/' || b == '<':
			if next, ok := skipLiteralAt(code, i, ctx, 0); ok {
				i = next
				ctx = lexContext{last: '"'}
				continue
			}
		case b == '{':
			depth++
		case b == '}':
			if depth > 0 {
				depth--
			}
		case b >= utf8.RuneSelf || isByteIdentifierChar(b):
			start := i
			word, next, _, _ := parseIdentifier(code, i)
			if word == "" {
				// non-identifier rune such as an emoji
				_, size := utf8.DecodeRune(code[i:])
				i += size
				ctx = lexContext{last: '"'}
				continue
			}
			i = next
			ctx = lexContext{last: 'a', word: word}
			// Member access like `module.export` is not a statement
			if depth > 0 || (start > 0 && code[start-1] == '.') {
				continue
			}
			switch word {
			case "export":
				i = s.parseExportStatement(start, next)
				ctx = contextBefore(code, i)
			case "import":
				if s.collectImports {
					i = s.parseImportStatement(next)
					ctx = contextBefore(code, i)
				}
			}
			continue
		}
		ctx.see(code, i)
		i++
	}
}

func (s *parseState) parseExportStatement(start int, i int) int {
	code, n := s.code, s.n
	i = skipSpacesAndComments(code, i)
	if i >= n {
		return i
	}

	switch code[i] {
	case '*':
		return s.parseStarExport(start, i+1, false)
	case '{':
		return s.parseBraceExport(start, i, false)
	}

	word, next, _, _ := parseIdentifier(code, i)
	switch word {
	case "":
		// `export = foo` and other non-ESM forms
		return i
	case "default":
		return s.parseDefaultExport(start, next)
	case "type":
		j := skipSpacesAndComments(code, next)
		if j < n && code[j] == '{' {
			return s.parseBraceExport(start, j, true)
		}
		if j < n && code[j] == '*' {
			return s.parseStarExport(start, j+1, true)
		}
	case "import":
		// `export import A = B.C`
		j := skipSpacesAndComments(code, next)
		name, nameEnd, _, _ := parseIdentifier(code, j)
		k := skipSpacesAndComments(code, nameEnd)
		if name != "" && k < n && code[k] == '=' {
			s.addExport(ExportEvent{Form: DeclarationExport, Name: name, Start: uint32(start), End: uint32(nameEnd)})
			return nameEnd
		}
		return next
	}

	return s.parseDeclarationExport(start, i)
}

// parseDeclarationExport handles `export [declare] <declaration>`.
func (s *parseState) parseDeclarationExport(start int, i int) int {
	code := s.code
	j := i
	for {
		word, next, _, _ := parseIdentifier(code, j)
		switch word {
		case "declare", "abstract", "async":
			j = skipSpacesAndComments(code, next)
			continue
		case "function", "class":
			name, nameEnd := declaredName(code, next)
			if name == "" {
				return nameEnd
			}
			s.addExport(ExportEvent{Form: DeclarationExport, Name: name, Start: uint32(start), End: uint32(nameEnd)})
			return nameEnd
		case "enum", "namespace", "module":
			k := skipSpacesAndComments(code, next)
			name, nameEnd, _, _ := parseIdentifier(code, k)
			if name == "" {
				return k
			}
			s.addExport(ExportEvent{Form: DeclarationExport, Name: name, Start: uint32(start), End: uint32(nameEnd)})
			return nameEnd
		case "type", "interface":
			k := skipSpacesAndComments(code, next)
			name, nameEnd, _, _ := parseIdentifier(code, k)
			if name == "" {
				return k
			}
			s.addExport(ExportEvent{
				Form:             TypeExport,
				TypeNamedExports: []ExportBinding{{Local: name, Exported: name}},
				Start:            uint32(start),
				End:              uint32(nameEnd),
			})
			return nameEnd
		case "const":
			k := skipSpacesAndComments(code, next)
			if hasWordAt(code, k, "enum") {
				j = k
				continue
			}
			return s.parseVariableDeclarators(start, k)
		case "let", "var":
			return s.parseVariableDeclarators(start, skipSpacesAndComments(code, next))
		default:
			return next
		}
	}
}

// parseVariableDeclarators emits one declaration event per bound name in
// `a = 1, { b, c: d } = obj, [e] = arr`.
func (s *parseState) parseVariableDeclarators(start int, j int) int {
	code, n := s.code, s.n
	first := true
	for j < n {
		names, next := parseBindingPattern(code, j)
		if next == j || len(names) == 0 {
			return next
		}
		if !first && !isDeclaratorEnd(code, next) {
			// `new Map<string, number>()` and similar: the comma was not a declarator separator
			return j
		}
		first = false
		for _, name := range names {
			s.addExport(ExportEvent{Form: DeclarationExport, Name: name, Start: uint32(start), End: uint32(next)})
		}

		j = skipSpacesAndComments(code, next)
		if j < n && code[j] == '!' {
			j = skipSpacesAndComments(code, j+1)
		}
		if j < n && code[j] == ':' {
			j = skipTypeAnnotation(code, j+1)
		}
		if j < n && code[j] == '=' {
			j = skipSpacesAndComments(code, j+1)
			j = skipExpression(code, j, ",;\n\r")
		}
		if j < n && code[j] == ',' {
			j = skipSpacesAndComments(code, j+1)
			continue
		}
		return j
	}
	return j
}

func isDeclaratorEnd(code []byte, i int) bool {
	n := len(code)
	for i < n && (code[i] == ' ' || code[i] == '\t') {
		i++
	}
	if i >= n {
		return true
	}
	return strings.IndexByte("=:,;!\n\r", code[i]) >= 0
}

func (s *parseState) parseDefaultExport(start int, i int) int {
	code := s.code
	j := skipSpacesAndComments(code, i)
	name := ""
	end := j

	word, next, _, _ := parseIdentifier(code, j)
	switch word {
	case "async":
		k := skipSpacesAndComments(code, next)
		if hasWordAt(code, k, "function") {
			name, end = declaredName(code, k+len("function"))
		}
	case "abstract":
		k := skipSpacesAndComments(code, next)
		if hasWordAt(code, k, "class") {
			name, end = declaredName(code, k+len("class"))
		}
	case "function", "class", "interface":
		name, end = declaredName(code, next)
	case "":
	default:
		if _, isKeyword := nonNameDefaultWords[word]; !isKeyword && isBareIdentifierEnd(code, next) {
			name = word
			end = next
		}
	}

	if name == "" {
		name = "default"
	}
	s.addExport(ExportEvent{Form: DefaultExport, DefaultName: name, Start: uint32(start), End: uint32(end)})
	return end
}

// parseBraceExport handles `export [type] { ... } [from 'mod']`, code[i] == '{'.
func (s *parseState) parseBraceExport(start int, i int, isWholeStatementType bool) int {
	code := s.code
	entries, next := parseExportBindings(code, i, isWholeStatementType)
	specifier, specStart, specEnd, end := parseFromClause(code, next)
	end = skipOptionalSemicolon(code, end)

	var values, types []ExportBinding
	for _, entry := range entries {
		if entry.IsType {
			types = append(types, entry.ExportBinding)
		} else {
			values = append(values, entry.ExportBinding)
		}
	}

	if len(values) > 0 {
		s.addExport(ExportEvent{Form: NamedExport, NamedExports: values, Specifier: specifier, Start: uint32(start), End: uint32(end)})
	}
	if len(types) > 0 {
		s.addExport(ExportEvent{Form: TypeExport, TypeNamedExports: types, Specifier: specifier, Start: uint32(start), End: uint32(end)})
	}

	if specifier != "" {
		bindings := make([]ImportBinding, 0, len(entries))
		for _, entry := range entries {
			bindings = append(bindings, ImportBinding{Imported: entry.Local, Local: entry.Exported, IsType: entry.IsType})
		}
		s.addImport(ImportEvent{
			Specifier:      specifier,
			Bindings:       bindings,
			IsTypeOnly:     len(entries) > 0 && len(values) == 0,
			IsReexport:     true,
			SpecifierStart: uint32(specStart),
			SpecifierEnd:   uint32(specEnd),
		})
	}
	return end
}

// parseStarExport handles `export [type] * [as name] from 'mod'`, i is right after `*`.
func (s *parseState) parseStarExport(start int, i int, isWholeStatementType bool) int {
	code := s.code
	j := skipSpacesAndComments(code, i)
	name := ""
	if hasWordAt(code, j, "as") {
		k := skipSpacesAndComments(code, j+2)
		alias, next := parseModuleExportName(code, k)
		if next != k {
			name = alias
			j = next
		}
	}

	specifier, specStart, specEnd, end := parseFromClause(code, j)
	end = skipOptionalSemicolon(code, end)

	if name != "" {
		if isWholeStatementType {
			s.addExport(ExportEvent{
				Form:             TypeExport,
				TypeNamedExports: []ExportBinding{{Local: "*", Exported: name}},
				Specifier:        specifier,
				Start:            uint32(start),
				End:              uint32(end),
			})
		} else {
			s.addExport(ExportEvent{Form: NamespaceExport, Name: name, Specifier: specifier, Start: uint32(start), End: uint32(end)})
		}
	}

	if specifier != "" {
		var bindings []ImportBinding
		if name != "" {
			bindings = []ImportBinding{{Imported: "*", Local: name, IsType: isWholeStatementType}}
		}
		s.addImport(ImportEvent{
			Specifier:      specifier,
			Bindings:       bindings,
			IsTypeOnly:     isWholeStatementType,
			IsReexport:     true,
			SpecifierStart: uint32(specStart),
			SpecifierEnd:   uint32(specEnd),
		})
	}
	return end
}

// parseImportStatement handles static imports, i is right after `import`.
func (s *parseState) parseImportStatement(i int) int {
	code, n := s.code, s.n
	j := skipSpacesAndComments(code, i)
	if j >= n {
		return j
	}
	// Dynamic `import(...)` and `import.meta` are expressions
	if code[j] == '(' || code[j] == '.' {
		return j
	}

	if code[j] == '"' || code[j] == '\'' {
		specifier, next, specStart, specEnd := parseStringLiteral(code, j)
		if specifier != "" {
			s.addImport(ImportEvent{Specifier: specifier, SpecifierStart: uint32(specStart), SpecifierEnd: uint32(specEnd)})
		}
		return next
	}

	isTypeOnly := false
	if hasWordAt(code, j, "type") {
		k := skipSpacesAndComments(code, j+4)
		// `import type from 'mod'` is a default import named `type`
		if spec, _, _, _ := parseFromClause(code, k); !hasWordAt(code, k, "from") || spec == "" {
			isTypeOnly = true
			j = k
		}
	}

	var bindings []ImportBinding
	if identifierCharLen(code, j, false) > 0 && !hasWordAt(code, j, "from") {
		name, next, _, _ := parseIdentifier(code, j)
		k := skipSpacesAndComments(code, next)
		if k < n && code[k] == '=' {
			// `import A = require('mod')` / `import A = B.C`
			return k
		}
		bindings = append(bindings, ImportBinding{Imported: "default", Local: name, IsType: isTypeOnly})
		j = k
		if j < n && code[j] == ',' {
			j = skipSpacesAndComments(code, j+1)
		}
	}

	if j < n && code[j] == '*' {
		k := skipSpacesAndComments(code, j+1)
		if hasWordAt(code, k, "as") {
			k = skipSpacesAndComments(code, k+2)
			name, next, _, _ := parseIdentifier(code, k)
			if name != "" {
				bindings = append(bindings, ImportBinding{Imported: "*", Local: name, IsType: isTypeOnly})
				k = next
			}
		}
		j = k
	} else if j < n && code[j] == '{' {
		entries, next := parseExportBindings(code, j, isTypeOnly)
		for _, entry := range entries {
			bindings = append(bindings, ImportBinding{Imported: entry.Local, Local: entry.Exported, IsType: entry.IsType})
		}
		j = next
	}

	specifier, specStart, specEnd, end := parseFromClause(code, j)
	if specifier == "" {
		return end
	}

	if !isTypeOnly && len(bindings) > 0 {
		allTypes := true
		for _, binding := range bindings {
			if !binding.IsType {
				allTypes = false
				break
			}
		}
		isTypeOnly = allTypes
	}

	s.addImport(ImportEvent{
		Specifier:      specifier,
		Bindings:       bindings,
		IsTypeOnly:     isTypeOnly,
		SpecifierStart: uint32(specStart),
		SpecifierEnd:   uint32(specEnd),
	})
	return skipOptionalSemicolon(code, end)
}
