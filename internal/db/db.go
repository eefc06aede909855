// Package db opens the databases used by tablegen and owns their schema.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Supported metadata drivers.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// Open opens a metadata database. SQLite databases get the schema applied so
// a fresh file is immediately usable; MySQL databases are only read.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(dsn)
	case DriverMySQL:
		return openMySQL(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// OpenManifest opens the SQLite file that caches the generated-entity
// manifest, creating its directory and schema as needed.
func OpenManifest(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}
	return openSQLite(path)
}

func openSQLite(dsn string) (*sql.DB, error) {
	conn, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}

func openMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	// audit columns are scanned into time values
	cfg.ParseTime = true

	conn, err := sql.Open(DriverMySQL, cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, nil
}

// InitSchema applies the schema to an SQLite connection. It is idempotent.
func InitSchema(conn *sql.DB) error {
	_, err := conn.Exec(SchemaSQL)
	return err
}
