// Package yamlstore reads table metadata from a YAML document.
package yamlstore

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/example/tablegen/internal/ports/secondary"
)

// Document is the on-disk layout of a metadata file.
type Document struct {
	Tables []Table `yaml:"tables"`
}

// Table is one table definition with its columns.
type Table struct {
	ID              string   `yaml:"id"`
	TableName       string   `yaml:"table_name"`
	ClassName       string   `yaml:"class_name"`
	ModuleCode      string   `yaml:"module_code"`
	ModuleName      string   `yaml:"module_name"`
	Namespace       string   `yaml:"namespace"`
	Folder          string   `yaml:"folder"`
	Comment         string   `yaml:"comment"`
	DetailTableName string   `yaml:"detail_table_name"`
	DetailComment   string   `yaml:"detail_comment"`
	TypeID          string   `yaml:"type_id"`
	TypeName        string   `yaml:"type_name"`
	Columns         []Column `yaml:"columns"`
}

// Column is one column definition. Edit, insert and list flags default to true.
type Column struct {
	ID         string `yaml:"id"`
	ColumnName string `yaml:"column_name"`
	EntityName string `yaml:"entity_name"`
	Comment    string `yaml:"comment"`
	ColumnType string `yaml:"column_type"`
	EntityType string `yaml:"entity_type"`
	MaxLength  int    `yaml:"max_length"`
	IsKey      bool   `yaml:"is_key"`
	IsRequired bool   `yaml:"is_required"`
	IsEdit     *bool  `yaml:"is_edit"`
	IsInsert   *bool  `yaml:"is_insert"`
	IsList     *bool  `yaml:"is_list"`
	EditType   string `yaml:"edit_type"`
	Sort       int    `yaml:"sort"`
}

// TableRepository implements secondary.TableRepository over a YAML file
// read once at open.
type TableRepository struct {
	tables map[string]Table
}

// Open reads and parses the metadata file at path.
func Open(path string) (*TableRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}
	return Parse(data)
}

// Parse builds a repository from YAML content. Unknown fields are rejected.
func Parse(data []byte) (*TableRepository, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	tables := make(map[string]Table, len(doc.Tables))
	for i, t := range doc.Tables {
		if t.ID == "" {
			return nil, fmt.Errorf("table %d (%s) has no id", i, t.TableName)
		}
		if _, dup := tables[t.ID]; dup {
			return nil, fmt.Errorf("duplicate table id %s", t.ID)
		}
		tables[t.ID] = t
	}
	return &TableRepository{tables: tables}, nil
}

// GetTable retrieves a table definition by its ID.
func (r *TableRepository) GetTable(ctx context.Context, id string) (*secondary.TableRecord, error) {
	t, ok := r.tables[id]
	if !ok {
		return nil, nil
	}
	return &secondary.TableRecord{
		ID:              t.ID,
		TableName:       t.TableName,
		ClassName:       t.ClassName,
		ModuleCode:      t.ModuleCode,
		ModuleName:      t.ModuleName,
		Namespace:       t.Namespace,
		Folder:          t.Folder,
		Comment:         t.Comment,
		DetailTableName: t.DetailTableName,
		DetailComment:   t.DetailComment,
		TypeID:          t.TypeID,
		TypeName:        t.TypeName,
	}, nil
}

// ListColumns retrieves the column definitions of a table in document order.
func (r *TableRepository) ListColumns(ctx context.Context, tableID string) ([]*secondary.ColumnRecord, error) {
	t, ok := r.tables[tableID]
	if !ok {
		return nil, nil
	}

	columns := make([]*secondary.ColumnRecord, 0, len(t.Columns))
	for i, c := range t.Columns {
		id := c.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", t.ID, i+1)
		}
		columns = append(columns, &secondary.ColumnRecord{
			ID:         id,
			TableID:    t.ID,
			ColumnName: c.ColumnName,
			EntityName: c.EntityName,
			Comment:    c.Comment,
			ColumnType: c.ColumnType,
			EntityType: c.EntityType,
			MaxLength:  c.MaxLength,
			IsKey:      c.IsKey,
			IsRequired: c.IsRequired,
			IsEdit:     flag(c.IsEdit),
			IsInsert:   flag(c.IsInsert),
			IsList:     flag(c.IsList),
			EditType:   c.EditType,
			Sort:       c.Sort,
		})
	}
	return columns, nil
}

func flag(b *bool) bool {
	return b == nil || *b
}
