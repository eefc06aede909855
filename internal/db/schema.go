package db

// SchemaSQL is the SQLite schema for tablegen databases.
//
// This is the single source of truth for the schema. Repository tests load it
// through GetSchemaSQL() instead of declaring their own tables, so a column
// referenced by adapter code but missing here fails the tests immediately.
//
// The builder tables mirror the metadata kept by the code-generator
// management screens; tablegen only reads them. generated_entities caches the
// result of `tablegen index refresh`.
const SchemaSQL = `
-- Table definitions
CREATE TABLE IF NOT EXISTS builder_tables (
	id TEXT PRIMARY KEY,
	table_name TEXT NOT NULL,
	class_name TEXT,
	module_code TEXT,
	module_name TEXT,
	namespace TEXT,
	folder TEXT,
	comment TEXT,
	detail_table_name TEXT,
	detail_comment TEXT,
	type_id TEXT,
	type_name TEXT,
	create_time DATETIME DEFAULT CURRENT_TIMESTAMP,
	create_user_id TEXT,
	create_user_name TEXT,
	update_time DATETIME,
	update_user_id TEXT,
	update_user_name TEXT
);

-- Column definitions
CREATE TABLE IF NOT EXISTS builder_table_columns (
	id TEXT PRIMARY KEY,
	table_id TEXT NOT NULL,
	column_name TEXT NOT NULL,
	entity_name TEXT,
	comment TEXT,
	column_type TEXT,
	entity_type TEXT,
	max_length INTEGER NOT NULL DEFAULT 0,
	is_key INTEGER NOT NULL DEFAULT 0,
	is_required INTEGER NOT NULL DEFAULT 0,
	is_edit INTEGER NOT NULL DEFAULT 1,
	is_insert INTEGER NOT NULL DEFAULT 1,
	is_list INTEGER NOT NULL DEFAULT 1,
	edit_type TEXT,
	sort INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (table_id) REFERENCES builder_tables(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_builder_table_columns_table ON builder_table_columns(table_id);

-- Generated-entity manifest
CREATE TABLE IF NOT EXISTS generated_entities (
	class_name TEXT NOT NULL,
	table_name TEXT,
	source TEXT,
	scanned_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_generated_entities_class ON generated_entities(class_name);
`

// GetSchemaSQL returns the authoritative schema for tests and fresh databases.
func GetSchemaSQL() string {
	return SchemaSQL
}
