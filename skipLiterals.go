package main

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// Deeper JSX trees are treated as plain text
const maxJSXNesting = 64

// lexContext remembers the last significant token so `/` and `<` can be told
// apart from division and comparison.
type lexContext struct {
	last byte   // last punctuator, 'a' for a word, '"' for any other operand
	word string // set when last == 'a'
}

var expressionKeywords = map[string]struct{}{
	"return": {}, "typeof": {}, "case": {}, "do": {}, "else": {}, "in": {},
	"instanceof": {}, "new": {}, "delete": {}, "void": {}, "throw": {},
	"yield": {}, "await": {}, "of": {}, "default": {},
}

// allowsExpression reports whether an operand may start after the last token.
func (c lexContext) allowsExpression() bool {
	if c.last == 'a' {
		_, ok := expressionKeywords[c.word]
		return ok
	}
	return c.last == 0 || strings.IndexByte("(,=:[!&|?{};+-*%~^", c.last) >= 0
}

func (c *lexContext) see(code []byte, i int) {
	c.word = ""
	if code[i] == '>' && i > 0 && code[i-1] == '=' {
		// arrow body
		c.last = '='
		return
	}
	c.last = code[i]
}

// contextBefore rebuilds the context from the token that ends right before i.
func contextBefore(code []byte, i int) lexContext {
	j := i
	for j > 0 && isWhiteSpace(code[j-1]) {
		j--
	}
	if j == 0 {
		return lexContext{}
	}
	end := j
	for j > 0 && (code[j-1] >= utf8.RuneSelf || isByteIdentifierChar(code[j-1])) {
		j--
	}
	if j < end {
		return lexContext{last: 'a', word: string(code[j:end])}
	}
	var ctx lexContext
	ctx.see(code, end-1)
	return ctx
}

// skipLiteralAt skips a string, template, regex or JSX literal starting at i.
// ok is false when nothing could be skipped there.
func skipLiteralAt(code []byte, i int, ctx lexContext, nesting int) (int, bool) {
	switch code[i] {
	case '\'', '"', '`':
		end := skipToStringEnd(code, i, code[i])
		if end < len(code) {
			end++
		}
		return end, true
	case '/':
		if ctx.allowsExpression() {
			return skipRegexLiteral(code, i)
		}
	case '<':
		if ctx.allowsExpression() {
			return skipJSXElement(code, i, nesting)
		}
	}
	return i, false
}

func skipRegexLiteral(code []byte, i int) (int, bool) {
	n := len(code)
	inClass := false
	for j := i + 1; j < n; j++ {
		switch c := code[j]; {
		case c == '\\':
			j++
		case c == '\n' || c == '\r':
			return i, false
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			j++
			for j < n && isByteIdentifierChar(code[j]) {
				j++
			}
			return j, true
		}
	}
	return i, false
}

// skipJSXName skips a tag or attribute name such as `div`, `Foo.Bar`,
// `data-id` or `xlink:href`.
func skipJSXName(code []byte, i int) int {
	if identifierCharLen(code, i, false) == 0 {
		return i
	}
	for i < len(code) {
		if size := identifierCharLen(code, i, true); size > 0 {
			i += size
			continue
		}
		if c := code[i]; c == '-' || c == ':' || c == '.' {
			i++
			continue
		}
		break
	}
	return i
}

// skipJSXElement skips an element or fragment starting at the `<` at i,
// including its children. Anything that is not well-formed JSX, like the
// generic in `<T>(x: T) => x`, is rejected.
func skipJSXElement(code []byte, i int, nesting int) (int, bool) {
	n := len(code)
	if nesting > maxJSXNesting {
		return i, false
	}
	j := i + 1
	if j < n && code[j] == '>' {
		j++
	} else {
		nameEnd := skipJSXName(code, j)
		if nameEnd == j {
			return i, false
		}
		j = nameEnd

	attributes:
		for {
			j = skipSpacesAndComments(code, j)
			if j >= n {
				return i, false
			}
			switch {
			case code[j] == '/' && j+1 < n && code[j+1] == '>':
				return j + 2, true
			case code[j] == '>':
				j++
				break attributes
			case code[j] == '{':
				end, ok := skipJSXExpression(code, j, nesting)
				if !ok {
					return i, false
				}
				j = end
			default:
				nameEnd := skipJSXName(code, j)
				if nameEnd == j {
					return i, false
				}
				j = skipSpacesAndComments(code, nameEnd)
				if j >= n || code[j] != '=' {
					continue
				}
				j = skipSpacesAndComments(code, j+1)
				if j >= n {
					return i, false
				}
				var end int
				ok := true
				switch code[j] {
				case '"', '\'':
					end = bytes.IndexByte(code[j+1:], code[j])
					ok = end >= 0
					end += j + 2
				case '{':
					end, ok = skipJSXExpression(code, j, nesting)
				case '<':
					end, ok = skipJSXElement(code, j, nesting+1)
				default:
					ok = false
				}
				if !ok {
					return i, false
				}
				j = end
			}
		}
	}

	for j < n {
		switch code[j] {
		case '{':
			end, ok := skipJSXExpression(code, j, nesting)
			if !ok {
				return i, false
			}
			j = end
		case '<':
			k := skipSpacesAndComments(code, j+1)
			if k < n && code[k] == '/' {
				end := bytes.IndexByte(code[k:], '>')
				if end < 0 {
					return i, false
				}
				return k + end + 1, true
			}
			end, ok := skipJSXElement(code, j, nesting+1)
			if !ok {
				return i, false
			}
			j = end
		case '>', '}':
			// not allowed in JSX text
			return i, false
		default:
			j++
		}
	}
	return i, false
}

// skipJSXExpression skips a `{...}` container inside JSX.
func skipJSXExpression(code []byte, i int, nesting int) (int, bool) {
	n := len(code)
	depth := 0
	ctx := lexContext{last: '{'}
	for j := i; j < n; {
		b := code[j]
		switch {
		case isWhiteSpace(b):
			j++
			continue
		case b == '/' && j+1 < n && code[j+1] == '/':
			j = skipLineComment(code, j)
			continue
		case b == '/' && j+1 < n && code[j+1] == '*':
			j = skipBlockComment(code, j)
			continue
		case b == '{':
			depth++
		case b == '}':
			depth--
			if depth == 0 {
				return j + 1, true
			}
		default:
			if end, ok := skipLiteralAt(code, j, ctx, nesting+1); ok {
				j = end
				ctx = lexContext{last: '"'}
				continue
			}
			if word, next, _, _ := parseIdentifier(code, j); word != "" {
				j = next
				ctx = lexContext{last: 'a', word: word}
				continue
			}
		}
		ctx.see(code, j)
		j++
	}
	return i, false
}
