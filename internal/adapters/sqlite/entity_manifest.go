package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tablegen/internal/ports/secondary"
)

// EntityManifest implements secondary.EntityIndexStore with SQLite.
// It caches the entities found by the last index refresh.
type EntityManifest struct {
	db *sql.DB
}

// NewEntityManifest creates a new SQLite generated-entity manifest.
func NewEntityManifest(db *sql.DB) *EntityManifest {
	return &EntityManifest{db: db}
}

// Snapshot returns the stored entities ordered by class name.
func (m *EntityManifest) Snapshot(ctx context.Context) ([]secondary.EntityRecord, error) {
	rows, err := m.db.QueryContext(ctx,
		"SELECT class_name, table_name, source FROM generated_entities ORDER BY class_name ASC, source ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	defer rows.Close()

	var entities []secondary.EntityRecord
	for rows.Next() {
		var (
			record            secondary.EntityRecord
			tableName, source sql.NullString
		)
		if err := rows.Scan(&record.ClassName, &tableName, &source); err != nil {
			return nil, fmt.Errorf("failed to scan manifest entry: %w", err)
		}
		record.TableName = tableName.String
		record.Source = source.String
		entities = append(entities, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate manifest: %w", err)
	}

	return entities, nil
}

// Replace swaps the stored entities for the given set in one transaction.
func (m *EntityManifest) Replace(ctx context.Context, entities []secondary.EntityRecord) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM generated_entities"); err != nil {
		return fmt.Errorf("failed to clear manifest: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO generated_entities (class_name, table_name, source) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entities {
		var tableName sql.NullString
		if e.TableName != "" {
			tableName = sql.NullString{String: e.TableName, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, e.ClassName, tableName, e.Source); err != nil {
			return fmt.Errorf("failed to insert %s: %w", e.ClassName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit manifest: %w", err)
	}
	return nil
}
