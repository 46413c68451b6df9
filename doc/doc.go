// Package doc extracts documentation from brace-form source files and
// formats the call signatures the validator enforces.
//
// Extraction works on raw source, before comments are stripped. The rule
// is simple: consecutive # lines immediately before a def (no blank line
// gap) are attached as the doc comment for that function. The first
// comment block before any code is the file's own doc.
package doc

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the file extension of brace-form sources.
const Ext = ".cpy"

// FileDoc holds all extracted documentation for a single source file.
type FileDoc struct {
	Path  string
	Doc   string // file-level doc (first # block before any code)
	Funcs []FuncDoc
}

// FuncDoc describes a documented function.
type FuncDoc struct {
	Name   string
	Params []string // parameter names, with defaults as written
	Doc    string
	Line   int // 1-based line number of the def
}

// Signature renders the def line of f.
func (f FuncDoc) Signature() string {
	return "def " + f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

// ExtractFile reads a source file and extracts all documentation.
func ExtractFile(path string) (*FileDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(string(data), path), nil
}

// ExtractDir extracts every source file in dir (non-recursive) and merges
// their functions, sorted by name. File-level docs are dropped.
func ExtractDir(dir string) (*FileDoc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	result := &FileDoc{Path: dir}
	for _, e := range entries {
		if e.IsDir() || !IsSourceFile(e.Name()) {
			continue
		}
		fd, err := ExtractFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		result.Funcs = append(result.Funcs, fd.Funcs...)
	}
	sort.SliceStable(result.Funcs, func(i, j int) bool { return result.Funcs[i].Name < result.Funcs[j].Name })
	return result, nil
}

// Extract scans raw source and returns its documentation.
func Extract(src, path string) *FileDoc {
	fd := &FileDoc{Path: path}
	src = strings.ReplaceAll(src, "\r\n", "\n")

	var block []string
	seenCode := false
	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			block = append(block, strings.TrimPrefix(trimmed[1:], " "))
			continue
		}

		if trimmed == "" {
			if len(block) > 0 && !seenCode {
				fd.Doc = strings.Join(block, "\n")
				seenCode = true
			}
			block = nil
			continue
		}

		if !seenCode && len(block) > 0 && !isDef(trimmed) {
			fd.Doc = strings.Join(block, "\n")
		}
		seenCode = true

		if isDef(trimmed) {
			if name, params := parseDef(trimmed); name != "" {
				fd.Funcs = append(fd.Funcs, FuncDoc{
					Name:   name,
					Params: params,
					Doc:    strings.Join(block, "\n"),
					Line:   i + 1,
				})
			}
		}
		block = nil
	}
	return fd
}

// isDef matches the def keyword in any letter case.
func isDef(line string) bool {
	return len(line) > 4 && strings.EqualFold(line[:4], "def ")
}

// parseDef extracts the function name and parameters from a def line
// such as "def move(x, y=0):".
func parseDef(line string) (string, []string) {
	rest := strings.TrimSpace(line[4:])
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return "", nil
	}
	name := strings.TrimSpace(rest[:open])
	paramStr := rest[open+1:]
	if end := strings.IndexByte(paramStr, ')'); end >= 0 {
		paramStr = paramStr[:end]
	}
	var params []string
	for _, p := range strings.Split(paramStr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			params = append(params, p)
		}
	}
	return name, params
}

// IsSourceFile reports whether name has the brace-form source extension.
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, Ext)
}

// LookupFunc finds a documented function by name.
func LookupFunc(fd *FileDoc, name string) (FuncDoc, bool) {
	for _, f := range fd.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return FuncDoc{}, false
}

// FuncNames lists the functions of fd in declaration order.
func FuncNames(fd *FileDoc) []string {
	names := make([]string, len(fd.Funcs))
	for i, f := range fd.Funcs {
		names[i] = f.Name
	}
	return names
}
