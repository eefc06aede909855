// Package module contains the duplicate-module guard.
// Guards are pure functions that evaluate preconditions without side effects.
package module

import (
	"fmt"

	"github.com/example/tablegen/internal/core/metadata"
)

// GeneratedEntity is one already-materialized entity type.
type GeneratedEntity struct {
	ClassName string // type name
	TableName string // declared storage-table name; empty when undeclared
	Source    string // where it was discovered (file path, registry, ...)
}

// Index is a point-in-time snapshot of the generated entities.
// It only sees what its source had materialized when the snapshot was taken.
type Index struct {
	Entities []GeneratedEntity
}

// HasClass reports whether an entity with the given type name exists.
func (i Index) HasClass(name string) bool {
	for _, e := range i.Entities {
		if e.ClassName == name {
			return true
		}
	}
	return false
}

// HasTable reports whether an entity declares the given storage-table name.
func (i Index) HasTable(name string) bool {
	for _, e := range i.Entities {
		if e.TableName != "" && e.TableName == name {
			return true
		}
	}
	return false
}

// CheckModuleContext provides context for the duplicate-module guard.
type CheckModuleContext struct {
	ModuleCode string
	Index      Index
}

// CheckExistsModule evaluates whether a module code is free to generate.
// Rules:
// - No entity type may already be named ModuleCode
// - No entity may already declare ModuleCode as its storage table
func CheckExistsModule(ctx CheckModuleContext) metadata.GuardResult {
	if ctx.Index.HasClass(ctx.ModuleCode) {
		return metadata.GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("module %q already has a generated entity, cannot generate it again", ctx.ModuleCode),
			Kind:    metadata.ErrDuplicateModule,
		}
	}

	if ctx.Index.HasTable(ctx.ModuleCode) {
		return metadata.GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("table %q is already mapped by a generated entity, cannot generate it again", ctx.ModuleCode),
			Kind:    metadata.ErrDuplicateModule,
		}
	}

	return metadata.GuardResult{Allowed: true}
}
