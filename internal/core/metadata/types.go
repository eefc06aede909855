// Package metadata contains the table and column definitions consumed by the
// generator, plus the pure validation guards evaluated before generation.
package metadata

import "time"

// TableDefinition identifies one generation unit.
type TableDefinition struct {
	ID              string
	TableName       string
	ClassName       string
	ModuleCode      string
	ModuleName      string
	Namespace       string
	Folder          string
	Comment         string
	DetailTableName string
	DetailComment   string
	TypeID          string
	TypeName        string

	CreateTime     time.Time
	CreateUserID   string
	CreateUserName string
	UpdateTime     time.Time
	UpdateUserID   string
	UpdateUserName string
}

// ColumnDefinition is one physical column bound to a TableDefinition via TableID.
type ColumnDefinition struct {
	ID         string
	TableID    string
	ColumnName string
	EntityName string
	Comment    string
	ColumnType string
	EntityType string
	MaxLength  int
	IsKey      bool
	IsRequired bool
	IsEdit     bool
	IsInsert   bool
	IsList     bool
	EditType   string
	Sort       int
}

// ArtifactKind identifies one generated output file type.
type ArtifactKind string

// Artifact kinds
const (
	KindEntity       ArtifactKind = "entity"
	KindBusiness     ArtifactKind = "business"
	KindQueryRequest ArtifactKind = "query-request"
	KindEditRequest  ArtifactKind = "edit-request"
	KindController   ArtifactKind = "controller"
	KindVueView      ArtifactKind = "vue-view"
	KindVueAPI       ArtifactKind = "vue-api"
)

// AllKinds lists every artifact kind in generation order.
var AllKinds = []ArtifactKind{
	KindEntity,
	KindBusiness,
	KindQueryRequest,
	KindEditRequest,
	KindController,
	KindVueView,
	KindVueAPI,
}

// ApplyDefaults returns a copy of t with ClassName and ModuleCode defaulted
// to TableName when unset.
func ApplyDefaults(t TableDefinition) TableDefinition {
	if t.ClassName == "" {
		t.ClassName = t.TableName
	}
	if t.ModuleCode == "" {
		t.ModuleCode = t.TableName
	}
	return t
}

// ApplyColumnDefaults returns a copy of columns with EntityName defaulted to
// ColumnName when unset. The input slice is not modified.
func ApplyColumnDefaults(columns []ColumnDefinition) []ColumnDefinition {
	out := make([]ColumnDefinition, len(columns))
	for i, c := range columns {
		if c.EntityName == "" {
			c.EntityName = c.ColumnName
		}
		out[i] = c
	}
	return out
}
