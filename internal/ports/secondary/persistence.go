// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// TableRepository defines the secondary port for reading table metadata.
// Lookups of unknown IDs return nil with no error.
type TableRepository interface {
	// GetTable retrieves a table definition by its ID.
	GetTable(ctx context.Context, id string) (*TableRecord, error)

	// ListColumns retrieves the column definitions of a table, in storage order.
	ListColumns(ctx context.Context, tableID string) ([]*ColumnRecord, error)
}

// TableRecord represents a table definition as stored in persistence.
type TableRecord struct {
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
	CreateTime      time.Time
	CreateUserID    string
	CreateUserName  string
	UpdateTime      time.Time
	UpdateUserID    string
	UpdateUserName  string
}

// ColumnRecord represents a column definition as stored in persistence.
type ColumnRecord struct {
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

// EntityRecord is an entity already present in the generated solution.
type EntityRecord struct {
	ClassName string
	TableName string
	Source    string // file or store the entry came from
}

// EntityIndex defines the secondary port for the generated-entity index.
type EntityIndex interface {
	// Snapshot returns the entities currently known to the index.
	Snapshot(ctx context.Context) ([]EntityRecord, error)
}

// EntityIndexStore is an EntityIndex whose contents can be replaced.
type EntityIndexStore interface {
	EntityIndex

	// Replace swaps the stored entities for the given set.
	Replace(ctx context.Context, entities []EntityRecord) error
}

// EntityScanner defines the secondary port for discovering entities in source files.
type EntityScanner interface {
	// Scan walks the solution and returns every entity class found.
	Scan(ctx context.Context, root string) ([]EntityRecord, error)
}
