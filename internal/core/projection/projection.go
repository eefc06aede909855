// Package projection turns ordered column definitions into the field and
// initializer blocks inserted into artifact templates.
// This is part of the Functional Core - no I/O, only pure functions.
package projection

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/tablegen/internal/core/metadata"
)

// ClassIndent is the class declaration level in generated C#.
const ClassIndent = "    "

const (
	memberIndent = "        "     // class member level in generated C#
	ctorIndent   = "            " // constructor body level in generated C#
	vueTempInd   = "                    "
	vueItemInd   = "                   "
	vueInputInd  = "                     "
)

// Projection holds the blocks produced for one artifact.
// For C# artifacts Fields is the property list and Init the constructor body.
// For the Vue view Fields is the dialog form-item markup and Init the temp
// object initializer.
type Projection struct {
	Fields string
	Init   string
}

// SortColumns returns the columns ordered by Sort descending.
// Ties keep their input order. The input slice is not modified.
func SortColumns(columns []metadata.ColumnDefinition) []metadata.ColumnDefinition {
	sorted := make([]metadata.ColumnDefinition, len(columns))
	copy(sorted, columns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sort > sorted[j].Sort
	})
	return sorted
}

// Retained returns the sorted columns that take part in the given artifact.
// Key columns never do; the Vue view additionally drops non-editable columns.
func Retained(columns []metadata.ColumnDefinition, kind metadata.ArtifactKind) []metadata.ColumnDefinition {
	var out []metadata.ColumnDefinition
	for _, c := range SortColumns(columns) {
		if c.IsKey {
			continue
		}
		if kind == metadata.KindVueView && !c.IsEdit {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Project builds the blocks for one artifact kind. Kinds that do not iterate
// columns get an empty Projection.
func Project(columns []metadata.ColumnDefinition, kind metadata.ArtifactKind) Projection {
	switch kind {
	case metadata.KindEntity:
		retained := Retained(columns, kind)
		return Projection{
			Fields: propertyBlock(retained),
			Init:   constructionBlock(retained),
		}
	case metadata.KindEditRequest:
		return Projection{Fields: propertyBlock(Retained(columns, kind))}
	case metadata.KindVueView:
		retained := Retained(columns, kind)
		return Projection{
			Fields: dialogBlock(retained),
			Init:   tempBlock(retained),
		}
	default:
		return Projection{}
	}
}

// RenderType returns the declared type of a column, marking it nullable when
// the column is optional. Strings are implicitly nullable and never marked.
func RenderType(c metadata.ColumnDefinition) string {
	t := c.EntityType
	if !c.IsRequired && !IsStringType(t) && !strings.HasSuffix(t, "?") {
		return t + "?"
	}
	return t
}

// IsStringType reports whether the semantic type is the string type.
func IsStringType(entityType string) bool {
	return entityType == "string" || entityType == "System.String"
}

var zeroValues = map[string]string{
	"bool":           "false",
	"System.Boolean": "false",
}

func init() {
	for _, numeric := range []string{
		"int", "long", "short", "byte", "sbyte", "uint", "ulong", "ushort",
		"decimal", "double", "float",
		"System.Int32", "System.Int64", "System.Int16", "System.Byte", "System.SByte",
		"System.UInt32", "System.UInt64", "System.UInt16",
		"System.Decimal", "System.Double", "System.Single",
	} {
		zeroValues[numeric] = "0"
	}
}

// DefaultValue returns the zero-value literal for a semantic type, or "" when
// the type has no literal default or is unknown. Unknown types are not an error.
func DefaultValue(entityType string) string {
	return zeroValues[entityType]
}

// CamelCase lower-cases the first character of name.
func CamelCase(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}

// DocComment renders a C# summary comment whose continuation lines carry
// indent. The first line carries no indent; the template positions it.
func DocComment(text, indent string) string {
	return "/// <summary>\n" +
		indent + "///" + text + "\n" +
		indent + "/// </summary>"
}

func propertyBlock(columns []metadata.ColumnDefinition) string {
	entries := make([]string, 0, len(columns))
	for _, c := range columns {
		entries = append(entries, DocComment(c.Comment, memberIndent)+"\n"+
			memberIndent+fmt.Sprintf("public %s %s { get; set; }", RenderType(c), c.EntityName))
	}
	return strings.Join(entries, "\n\n"+memberIndent)
}

func constructionBlock(columns []metadata.ColumnDefinition) string {
	var lines []string
	for _, c := range columns {
		def := DefaultValue(c.EntityType)
		if def == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("this.%s=%s;", c.EntityName, def))
	}
	return strings.Join(lines, "\n"+ctorIndent)
}

func tempBlock(columns []metadata.ColumnDefinition) string {
	var b strings.Builder
	for _, c := range columns {
		value := "''"
		if c.EditType == "bool" {
			value = "false"
		}
		fmt.Fprintf(&b, "%s%s: %s, //%s\n", vueTempInd, CamelCase(c.ColumnName), value, c.Comment)
	}
	b.WriteString(vueTempInd + "nothing:''  //placeholder emitted by the generator, safe to remove\n")
	return b.String()
}

func dialogBlock(columns []metadata.ColumnDefinition) string {
	var b strings.Builder
	for _, c := range columns {
		name := CamelCase(c.ColumnName)
		fmt.Fprintf(&b, "%s<el-form-item size=\"small\" :label=\"'%s'\" prop=\"%s\" v-if=\"Object.keys(temp).indexOf('%s')>=0\">\n",
			vueItemInd, c.Comment, name, name)
		if c.EditType == "bool" {
			fmt.Fprintf(&b, "%s<el-switch v-model=\"temp.%s\" ></el-switch>\n", vueInputInd, name)
		} else {
			fmt.Fprintf(&b, "%s<el-input v-model=\"temp.%s\"></el-input>\n", vueInputInd, name)
		}
		b.WriteString(vueItemInd + "</el-form-item>\n\n")
	}
	return b.String()
}
