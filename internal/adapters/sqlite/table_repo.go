// Package sqlite contains database/sql implementations of repository interfaces.
// The queries use only portable SQL and '?' bind variables, so they run on
// both the sqlite3 and mysql drivers.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tablegen/internal/ports/secondary"
)

// TableRepository implements secondary.TableRepository with SQL.
type TableRepository struct {
	db *sql.DB
}

// NewTableRepository creates a new SQL table-metadata repository.
func NewTableRepository(db *sql.DB) *TableRepository {
	return &TableRepository{db: db}
}

// GetTable retrieves a table definition by its ID.
func (r *TableRepository) GetTable(ctx context.Context, id string) (*secondary.TableRecord, error) {
	var (
		className, moduleCode, moduleName, namespace sql.NullString
		folder, comment, detailTable, detailComment  sql.NullString
		typeID, typeName                             sql.NullString
		createUserID, createUserName                 sql.NullString
		updateUserID, updateUserName                 sql.NullString
		createTime, updateTime                       sql.NullTime
	)

	record := &secondary.TableRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, table_name, class_name, module_code, module_name, namespace, folder, comment,
			detail_table_name, detail_comment, type_id, type_name,
			create_time, create_user_id, create_user_name, update_time, update_user_id, update_user_name
		FROM builder_tables WHERE id = ?`,
		id,
	).Scan(&record.ID, &record.TableName, &className, &moduleCode, &moduleName, &namespace, &folder, &comment,
		&detailTable, &detailComment, &typeID, &typeName,
		&createTime, &createUserID, &createUserName, &updateTime, &updateUserID, &updateUserName)

	if err == sql.ErrNoRows {
		return nil, nil // Return nil, nil for "not found" to distinguish from errors
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	record.ClassName = className.String
	record.ModuleCode = moduleCode.String
	record.ModuleName = moduleName.String
	record.Namespace = namespace.String
	record.Folder = folder.String
	record.Comment = comment.String
	record.DetailTableName = detailTable.String
	record.DetailComment = detailComment.String
	record.TypeID = typeID.String
	record.TypeName = typeName.String
	record.CreateTime = createTime.Time
	record.CreateUserID = createUserID.String
	record.CreateUserName = createUserName.String
	record.UpdateTime = updateTime.Time
	record.UpdateUserID = updateUserID.String
	record.UpdateUserName = updateUserName.String

	return record, nil
}

// ListColumns retrieves the column definitions of a table in storage order.
// Sorting for rendering is done by the projection engine.
func (r *TableRepository) ListColumns(ctx context.Context, tableID string) ([]*secondary.ColumnRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, table_id, column_name, entity_name, comment, column_type, entity_type, max_length,
			is_key, is_required, is_edit, is_insert, is_list, edit_type, sort
		FROM builder_table_columns WHERE table_id = ? ORDER BY id ASC`,
		tableID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	var columns []*secondary.ColumnRecord
	for rows.Next() {
		var entityName, comment, columnType, entityType, editType sql.NullString

		record := &secondary.ColumnRecord{}
		err := rows.Scan(&record.ID, &record.TableID, &record.ColumnName, &entityName, &comment, &columnType,
			&entityType, &record.MaxLength, &record.IsKey, &record.IsRequired, &record.IsEdit, &record.IsInsert,
			&record.IsList, &editType, &record.Sort)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}

		record.EntityName = entityName.String
		record.Comment = comment.String
		record.ColumnType = columnType.String
		record.EntityType = entityType.String
		record.EditType = editType.String

		columns = append(columns, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate columns: %w", err)
	}

	return columns, nil
}
