package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"
)

var osSeparator = string(os.PathSeparator)

// NormalizePathForInternal converts any OS path into a canonical internal
// representation using forward slashes and cleaned path components.
// Examples:
// - "C:\\project\\src\\file.ts" -> "C:/project/src/file.ts"
// - "./a/../b/" -> "b"
func NormalizePathForInternal(p string) string {
	if runtime.GOOS != "windows" {
		return p
	}
	if p == "" {
		return ""
	}
	cleaned := filepath.Clean(p)
	s := filepath.ToSlash(cleaned)
	// Trim trailing slash except when path is root like "/" or "C:/"
	if len(s) > 1 && strings.HasSuffix(s, "/") {
		s = strings.TrimRight(s, "/")
	}
	return s
}

// DenormalizePathForOS converts an internal forward-slash path back to the
// OS-native representation for os.* calls.
func DenormalizePathForOS(internal string) string {
	if runtime.GOOS != "windows" {
		return internal
	}
	if internal == "" {
		return ""
	}
	return filepath.FromSlash(internal)
}

// NormalizeGlobPattern normalizes glob pattern separators to forward slashes.
func NormalizeGlobPattern(pattern string) string {
	if runtime.GOOS != "windows" {
		return pattern
	}
	if pattern == "" {
		return ""
	}
	return strings.ReplaceAll(pattern, "\\\\", "/")
}

func StandardiseDirPath(cwd string) string {
	if cwd == "" || string(cwd[len(cwd)-1]) == osSeparator {
		return cwd
	}
	return cwd + osSeparator
}

func ResolveAbsoluteCwd(cwd string) string {
	if filepath.IsAbs(cwd) {
		return StandardiseDirPath(cwd)
	}
	binaryExecDir, _ := os.Getwd()
	return StandardiseDirPath(filepath.Join(binaryExecDir, cwd))
}

// ToRelativePath returns filePath relative to cwd when it is inside cwd, and
// filePath unchanged otherwise. Output uses forward slashes.
func ToRelativePath(cwd string, filePath string) string {
	rel, err := filepath.Rel(DenormalizePathForOS(cwd), DenormalizePathForOS(filePath))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(filePath)
	}
	return filepath.ToSlash(rel)
}

// FileStem returns the file name of filePath without its last extension.
func FileStem(filePath string) string {
	base := filepath.Base(filePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		// dotfiles like `.eslintrc` have no extension to strip
		return base
	}
	return stem
}

// ToPascalCase joins `-` and `_` separated segments, upper-casing the first
// letter of each. Names without separators are returned unchanged.
func ToPascalCase(s string) string {
	if !strings.ContainsAny(s, "-_") {
		return s
	}
	segments := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	var b strings.Builder
	b.Grow(len(s))
	for _, segment := range segments {
		r, size := utf8.DecodeRuneInString(segment)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(segment[size:])
	}
	return b.String()
}

// TypeOriginLabel is the label attached to type-only exports of filePath.
func TypeOriginLabel(filePath string) string {
	return ToPascalCase(FileStem(filePath))
}
