package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/tablegen/internal/ports/secondary"
)

var (
	classDecl = regexp.MustCompile(`\bclass\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:<[^>{]*>)?\s*:\s*([^{]+)\{`)
	tableAttr = regexp.MustCompile(`\[\s*(?:[A-Za-z_][A-Za-z0-9_.]*\.)?Table(?:Attribute)?\s*\(\s*(?:Name\s*=\s*)?"([^"]*)"`)
)

var skippedDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	"node_modules": true,
	".git":         true,
	".vs":          true,
}

// EntityScanner implements secondary.EntityScanner by reading C# sources.
// A class is an entity when its base class is one of the configured base types.
type EntityScanner struct {
	baseTypes map[string]bool
}

// NewEntityScanner creates a scanner recognizing the given base types.
func NewEntityScanner(baseTypes []string) *EntityScanner {
	if len(baseTypes) == 0 {
		baseTypes = []string{"Entity"}
	}
	set := make(map[string]bool, len(baseTypes))
	for _, b := range baseTypes {
		set[b] = true
	}
	return &EntityScanner{baseTypes: set}
}

// Scan walks every .cs file under root.
func (s *EntityScanner) Scan(ctx context.Context, root string) ([]secondary.EntityRecord, error) {
	var entities []secondary.EntityRecord

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".cs") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		entities = append(entities, s.parse(string(content), filepath.ToSlash(rel))...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// parse extracts entity classes from one source file. The table name is taken
// from the nearest [Table("...")] attribute between the previous class and
// this one.
func (s *EntityScanner) parse(src, source string) []secondary.EntityRecord {
	classes := classDecl.FindAllStringSubmatchIndex(src, -1)
	attrs := tableAttr.FindAllStringSubmatchIndex(src, -1)

	var entities []secondary.EntityRecord
	prev := 0
	for _, m := range classes {
		name := src[m[2]:m[3]]
		bases := src[m[4]:m[5]]

		table := ""
		for _, a := range attrs {
			if a[0] >= prev && a[0] < m[0] {
				table = src[a[2]:a[3]]
			}
		}
		prev = m[1]

		if !s.baseTypes[baseClass(bases)] {
			continue
		}
		entities = append(entities, secondary.EntityRecord{ClassName: name, TableName: table, Source: source})
	}
	return entities
}

// baseClass returns the unqualified, non-generic name of the first entry of a
// C# base list.
func baseClass(bases string) string {
	end := len(bases)
	depth := 0
loop:
	for i, r := range bases {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				end = i
				break loop
			}
		}
	}

	fields := strings.Fields(bases[:end])
	if len(fields) == 0 {
		return ""
	}
	first := fields[0]
	if i := strings.IndexByte(first, '<'); i >= 0 {
		first = first[:i]
	}
	if i := strings.LastIndexByte(first, '.'); i >= 0 {
		first = first[i+1:]
	}
	return first
}

var _ secondary.EntityScanner = (*EntityScanner)(nil)
