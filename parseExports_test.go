package main

import (
	"testing"

	"gotest.tools/v3/assert"
)

func parseExportsOnly(code string) []ExportEvent {
	_, exports := ParseModuleEvents(nil, []byte(code))
	for i := range exports {
		exports[i].Start, exports[i].End = 0, 0
	}
	return exports
}

func TestParseExportEvents(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected []ExportEvent
	}{
		{
			name:     "default identifier",
			code:     "const foo = 1;\nexport default foo;",
			expected: []ExportEvent{{Form: DefaultExport, DefaultName: "foo"}},
		},
		{
			name:     "default named function",
			code:     "export default function Foo() { return 1 }",
			expected: []ExportEvent{{Form: DefaultExport, DefaultName: "Foo"}},
		},
		{
			name:     "default async function",
			code:     "export default async function load() {}",
			expected: []ExportEvent{{Form: DefaultExport, DefaultName: "load"}},
		},
		{
			name:     "default arrow function is anonymous",
			code:     "export default () => 1",
			expected: []ExportEvent{{Form: DefaultExport, DefaultName: "default"}},
		},
		{
			name:     "default anonymous class with extends",
			code:     "export default class extends Base {}",
			expected: []ExportEvent{{Form: DefaultExport, DefaultName: "default"}},
		},
		{
			name:     "default call expression is anonymous",
			code:     "export default defineConfig({ a: 1 })",
			expected: []ExportEvent{{Form: DefaultExport, DefaultName: "default"}},
		},
		{
			name: "named list with alias",
			code: "export { a, b as c };",
			expected: []ExportEvent{{
				Form:         NamedExport,
				NamedExports: []ExportBinding{{Local: "a", Exported: "a"}, {Local: "b", Exported: "c"}},
			}},
		},
		{
			name: "named list with inline type entry",
			code: "export { a, type B }",
			expected: []ExportEvent{
				{Form: NamedExport, NamedExports: []ExportBinding{{Local: "a", Exported: "a"}}},
				{Form: TypeExport, TypeNamedExports: []ExportBinding{{Local: "B", Exported: "B"}}},
			},
		},
		{
			name: "binding named type",
			code: "export { type as kind }",
			expected: []ExportEvent{
				{Form: NamedExport, NamedExports: []ExportBinding{{Local: "type", Exported: "kind"}}},
			},
		},
		{
			name: "type-only list",
			code: "export type { X as Y };",
			expected: []ExportEvent{
				{Form: TypeExport, TypeNamedExports: []ExportBinding{{Local: "X", Exported: "Y"}}},
			},
		},
		{
			name: "re-export list",
			code: "export { x as default, y } from './mod'",
			expected: []ExportEvent{{
				Form:         NamedExport,
				NamedExports: []ExportBinding{{Local: "x", Exported: "default"}, {Local: "y", Exported: "y"}},
				Specifier:    "./mod",
			}},
		},
		{
			name:     "namespace re-export",
			code:     "export * as ns from './ns';",
			expected: []ExportEvent{{Form: NamespaceExport, Name: "ns", Specifier: "./ns"}},
		},
		{
			name: "type namespace re-export",
			code: "export type * as types from './types';",
			expected: []ExportEvent{
				{Form: TypeExport, TypeNamedExports: []ExportBinding{{Local: "*", Exported: "types"}}, Specifier: "./types"},
			},
		},
		{
			name: "declarations",
			code: `export function foo() {}
export async function bar() {}
export class Baz {}
export abstract class Qux {}
export enum Color { Red }
export const enum Size { S }
export namespace NS {}
export declare const flag: boolean;`,
			expected: []ExportEvent{
				{Form: DeclarationExport, Name: "foo"},
				{Form: DeclarationExport, Name: "bar"},
				{Form: DeclarationExport, Name: "Baz"},
				{Form: DeclarationExport, Name: "Qux"},
				{Form: DeclarationExport, Name: "Color"},
				{Form: DeclarationExport, Name: "Size"},
				{Form: DeclarationExport, Name: "NS"},
				{Form: DeclarationExport, Name: "flag"},
			},
		},
		{
			name: "multiple declarators",
			code: "export const a = 1, b = call(1, 2), c: Map<string, number> = new Map();",
			expected: []ExportEvent{
				{Form: DeclarationExport, Name: "a"},
				{Form: DeclarationExport, Name: "b"},
				{Form: DeclarationExport, Name: "c"},
			},
		},
		{
			name: "destructuring declarators",
			code: "export const { a, b: renamed, ...rest } = obj, [first, , third = 3] = list;",
			expected: []ExportEvent{
				{Form: DeclarationExport, Name: "a"},
				{Form: DeclarationExport, Name: "renamed"},
				{Form: DeclarationExport, Name: "rest"},
				{Form: DeclarationExport, Name: "first"},
				{Form: DeclarationExport, Name: "third"},
			},
		},
		{
			name: "type alias and interface",
			code: "export type Props = { a: string }\nexport interface State { b: number }",
			expected: []ExportEvent{
				{Form: TypeExport, TypeNamedExports: []ExportBinding{{Local: "Props", Exported: "Props"}}},
				{Form: TypeExport, TypeNamedExports: []ExportBinding{{Local: "State", Exported: "State"}}},
			},
		},
		{
			name: "string literal export names",
			code: `export { "a-b" as ab, c as "c-d" }`,
			expected: []ExportEvent{{
				Form:         NamedExport,
				NamedExports: []ExportBinding{{Local: "a-b", Exported: "ab"}, {Local: "c", Exported: "c-d"}},
			}},
		},
		{
			name: "non-ascii identifiers",
			code: "export const café = 1\nexport const π = 3\nexport function Ünïcode() {}\nexport { a\u200db }",
			expected: []ExportEvent{
				{Form: DeclarationExport, Name: "café"},
				{Form: DeclarationExport, Name: "π"},
				{Form: DeclarationExport, Name: "Ünïcode"},
				{Form: NamedExport, NamedExports: []ExportBinding{{Local: "a\u200db", Exported: "a\u200db"}}},
			},
		},
		{
			name: "apostrophe in jsx text",
			code: "export function A() { return <p>Don't stop</p> }\nexport function B() {}\nexport const c = 'x'",
			expected: []ExportEvent{
				{Form: DeclarationExport, Name: "A"},
				{Form: DeclarationExport, Name: "B"},
				{Form: DeclarationExport, Name: "c"},
			},
		},
		{
			name: "jsx initializer with nested expressions",
			code: `export const List = () => (
  <ul className="it's">
    {items.map(i => <li key={i}>It's {i}</li>)}
    <br />
  </ul>
)
export const after = 1`,
			expected: []ExportEvent{
				{Form: DeclarationExport, Name: "List"},
				{Form: DeclarationExport, Name: "after"},
			},
		},
		{
			name: "quote in regex literal",
			code: "const r = /'/\nconst q = /[/\"]/g.test(s)\nexport const y = 1",
			expected: []ExportEvent{{Form: DeclarationExport, Name: "y"}},
		},
		{
			name:     "unterminated string ends at newline",
			code:     "const s = 'it\nexport const w = 1",
			expected: []ExportEvent{{Form: DeclarationExport, Name: "w"}},
		},
		{
			name: "generic arrow functions are not jsx",
			code: "export const id = <T,>(x: T) => x\nexport const f = <T>(x: T): T => x\nexport type G<T> = T\nexport const g = 1",
			expected: []ExportEvent{
				{Form: DeclarationExport, Name: "id"},
				{Form: DeclarationExport, Name: "f"},
				{Form: TypeExport, TypeNamedExports: []ExportBinding{{Local: "G", Exported: "G"}}},
				{Form: DeclarationExport, Name: "g"},
			},
		},
		{
			name: "division is not a regex",
			code: "const ratio = width / height / 'x'.length\nexport const k = 1",
			expected: []ExportEvent{{Form: DeclarationExport, Name: "k"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, parseExportsOnly(tt.code), tt.expected)
		})
	}
}

func TestParseExportEventsIgnoresNonStatements(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "star re-export has no export event", code: "export * from './all'"},
		{name: "inside string", code: `const s = "export const fake = 1";`},
		{name: "inside template", code: "const s = `export default fake`;"},
		{name: "inside line comment", code: "// export const fake = 1"},
		{name: "inside block comment", code: "/* export { fake } */"},
		{name: "inside jsx text", code: "const el = <p>export const fake = 1</p>"},
		{name: "inside regex", code: "const re = /export const fake = 1/"},
		{name: "nested in function body", code: "function f() { export const fake = 1 }"},
		{name: "member access", code: "module.export = 1"},
		{name: "commonjs assignment", code: "export = foo"},
		{name: "empty file", code: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, len(parseExportsOnly(tt.code)), 0)
		})
	}
}

func TestParseExportEventOffsets(t *testing.T) {
	code := "import a from 'a'\nexport default a;\n"
	_, exports := ParseModuleEvents(nil, []byte(code))

	assert.Equal(t, len(exports), 1)
	assert.Equal(t, exports[0].Start, uint32(18))
	assert.Equal(t, string(code[exports[0].Start:exports[0].End]), "export default a")
}

func TestParseImportEvents(t *testing.T) {
	code := `import React, { useState, type FC } from 'react';
import type { Props } from "./types";
import * as path from 'node:path'
import './side-effect.css'
const lazy = import('./lazy')
export { helper } from './helper'
export * from './all'
`
	imports, exports := ParseModuleEvents([]byte(code), nil)
	assert.Assert(t, exports == nil)

	for i := range imports {
		imports[i].SpecifierStart, imports[i].SpecifierEnd = 0, 0
	}

	expected := []ImportEvent{
		{
			Specifier: "react",
			Bindings: []ImportBinding{
				{Imported: "default", Local: "React"},
				{Imported: "useState", Local: "useState"},
				{Imported: "FC", Local: "FC", IsType: true},
			},
		},
		{
			Specifier:  "./types",
			Bindings:   []ImportBinding{{Imported: "Props", Local: "Props", IsType: true}},
			IsTypeOnly: true,
		},
		{
			Specifier: "node:path",
			Bindings:  []ImportBinding{{Imported: "*", Local: "path"}},
		},
		{Specifier: "./side-effect.css"},
		{
			Specifier:  "./helper",
			Bindings:   []ImportBinding{{Imported: "helper", Local: "helper"}},
			IsReexport: true,
		},
		{Specifier: "./all", IsReexport: true},
	}
	assert.DeepEqual(t, imports, expected)
}

func TestParseImportSpecifierOffsets(t *testing.T) {
	code := []byte("import { a } from './a'")
	imports, _ := ParseModuleEvents(code, nil)

	assert.Equal(t, len(imports), 1)
	assert.Equal(t, string(code[imports[0].SpecifierStart:imports[0].SpecifierEnd]), "./a")
}
