// Package sqlite_test contains integration tests for the SQL repositories.
//
// This file is the single point where the database schema is loaded for
// tests. Setup goes through db.GetSchemaSQL() so test tables never drift from
// the schema the adapters run against.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/tablegen/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// a second pooled connection would see a different in-memory database
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedTable inserts a table definition and returns its ID.
func seedTable(t *testing.T, db *sql.DB, id, tableName string) string {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO builder_tables (id, table_name, class_name, module_code, module_name, namespace, comment)
		VALUES (?, ?, 'Order', 'OrderApp', 'OrderMgmt', 'App.Order', 'Customer orders')`,
		id, tableName,
	)
	if err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return id
}

// seedColumn inserts a column definition.
func seedColumn(t *testing.T, db *sql.DB, id, tableID, name, entityType string, isKey, isRequired bool, sort int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO builder_table_columns (id, table_id, column_name, entity_type, is_key, is_required, sort)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, tableID, name, entityType, isKey, isRequired, sort,
	)
	if err != nil {
		t.Fatalf("failed to seed column: %v", err)
	}
}
