package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createDatabase = `
INSERT INTO tenant_databases (id, tenant_id, name)
VALUES ($1, $2, $3)
RETURNING id, tenant_id, name, created_at
`

// CreateDatabase inserts a tenant-owned logical database.
func (q *Queries) CreateDatabase(ctx context.Context, id, tenantID pgtype.UUID, name string) (TenantDatabase, error) {
	var d TenantDatabase
	err := q.db.QueryRow(ctx, createDatabase, id, tenantID, name).
		Scan(&d.ID, &d.TenantID, &d.Name, &d.CreatedAt)
	return d, err
}

const getDatabase = `
SELECT id, tenant_id, name, created_at
FROM tenant_databases
WHERE id = $1
`

func (q *Queries) GetDatabase(ctx context.Context, id pgtype.UUID) (TenantDatabase, error) {
	var d TenantDatabase
	err := q.db.QueryRow(ctx, getDatabase, id).
		Scan(&d.ID, &d.TenantID, &d.Name, &d.CreatedAt)
	return d, err
}

const listDatabases = `
SELECT id, tenant_id, name, created_at
FROM tenant_databases
WHERE tenant_id = $1
ORDER BY name
`

func (q *Queries) ListDatabases(ctx context.Context, tenantID pgtype.UUID) ([]TenantDatabase, error) {
	rows, err := q.db.Query(ctx, listDatabases, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TenantDatabase
	for rows.Next() {
		var d TenantDatabase
		if err := rows.Scan(&d.ID, &d.TenantID, &d.Name, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CreateTableParams holds the insert arguments for a table definition.
type CreateTableParams struct {
	ID            pgtype.UUID
	DatabaseID    pgtype.UUID
	Name          string
	Description   pgtype.Text
	IsProtected   bool
	ProtectedKind pgtype.Text
}

const createTable = `
INSERT INTO tables (id, database_id, name, description, is_protected, protected_kind)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, database_id, name, description, is_protected, protected_kind, created_at
`

func (q *Queries) CreateTable(ctx context.Context, arg CreateTableParams) (Table, error) {
	var t Table
	err := q.db.QueryRow(ctx, createTable,
		arg.ID, arg.DatabaseID, arg.Name, arg.Description, arg.IsProtected, arg.ProtectedKind).
		Scan(&t.ID, &t.DatabaseID, &t.Name, &t.Description, &t.IsProtected, &t.ProtectedKind, &t.CreatedAt)
	return t, err
}

const getTable = `
SELECT id, database_id, name, description, is_protected, protected_kind, created_at
FROM tables
WHERE id = $1
`

func (q *Queries) GetTable(ctx context.Context, id pgtype.UUID) (Table, error) {
	var t Table
	err := q.db.QueryRow(ctx, getTable, id).
		Scan(&t.ID, &t.DatabaseID, &t.Name, &t.Description, &t.IsProtected, &t.ProtectedKind, &t.CreatedAt)
	return t, err
}

const listTables = `
SELECT id, database_id, name, description, is_protected, protected_kind, created_at
FROM tables
WHERE database_id = $1
ORDER BY name
`

func (q *Queries) ListTables(ctx context.Context, databaseID pgtype.UUID) ([]Table, error) {
	rows, err := q.db.Query(ctx, listTables, databaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Table
	for rows.Next() {
		var t Table
		if err := rows.Scan(&t.ID, &t.DatabaseID, &t.Name, &t.Description, &t.IsProtected, &t.ProtectedKind, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const deleteTable = `
DELETE FROM tables
WHERE id = $1
`

// DeleteTable removes a table definition. Rows, cells, and columns go with it
// via ON DELETE CASCADE.
func (q *Queries) DeleteTable(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteTable, id)
	return tag.RowsAffected(), err
}

// CreateColumnParams holds the insert arguments for a column definition.
type CreateColumnParams struct {
	ID               pgtype.UUID
	TableID          pgtype.UUID
	Name             string
	ColumnType       string
	SemanticTag      pgtype.Text
	Required         bool
	IsUnique         bool
	IsPrimary        bool
	AutoIncrement    bool
	DefaultValue     pgtype.Text
	CustomOptions    []string
	ReferenceTableID pgtype.UUID
	Ord              int32
	IsLocked         bool
}

const createColumn = `
INSERT INTO columns (
	id, table_id, name, column_type, semantic_tag, required, is_unique,
	is_primary, auto_increment, default_value, custom_options,
	reference_table_id, ord, is_locked
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id, table_id, name, column_type, semantic_tag, required, is_unique,
	is_primary, auto_increment, default_value, custom_options,
	reference_table_id, ord, is_locked
`

func (q *Queries) CreateColumn(ctx context.Context, arg CreateColumnParams) (Column, error) {
	var c Column
	err := q.db.QueryRow(ctx, createColumn,
		arg.ID, arg.TableID, arg.Name, arg.ColumnType, arg.SemanticTag,
		arg.Required, arg.IsUnique, arg.IsPrimary, arg.AutoIncrement,
		arg.DefaultValue, ToPgTextArray(arg.CustomOptions), arg.ReferenceTableID, arg.Ord, arg.IsLocked).
		Scan(&c.ID, &c.TableID, &c.Name, &c.ColumnType, &c.SemanticTag,
			&c.Required, &c.IsUnique, &c.IsPrimary, &c.AutoIncrement,
			&c.DefaultValue, &c.CustomOptions, &c.ReferenceTableID, &c.Ord, &c.IsLocked)
	return c, err
}

const getColumn = `
SELECT id, table_id, name, column_type, semantic_tag, required, is_unique,
	is_primary, auto_increment, default_value, custom_options,
	reference_table_id, ord, is_locked
FROM columns
WHERE id = $1
`

func (q *Queries) GetColumn(ctx context.Context, id pgtype.UUID) (Column, error) {
	var c Column
	err := q.db.QueryRow(ctx, getColumn, id).
		Scan(&c.ID, &c.TableID, &c.Name, &c.ColumnType, &c.SemanticTag,
			&c.Required, &c.IsUnique, &c.IsPrimary, &c.AutoIncrement,
			&c.DefaultValue, &c.CustomOptions, &c.ReferenceTableID, &c.Ord, &c.IsLocked)
	return c, err
}

const listColumns = `
SELECT id, table_id, name, column_type, semantic_tag, required, is_unique,
	is_primary, auto_increment, default_value, custom_options,
	reference_table_id, ord, is_locked
FROM columns
WHERE table_id = $1
ORDER BY ord, name
`

func (q *Queries) ListColumns(ctx context.Context, tableID pgtype.UUID) ([]Column, error) {
	rows, err := q.db.Query(ctx, listColumns, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.ID, &c.TableID, &c.Name, &c.ColumnType, &c.SemanticTag,
			&c.Required, &c.IsUnique, &c.IsPrimary, &c.AutoIncrement,
			&c.DefaultValue, &c.CustomOptions, &c.ReferenceTableID, &c.Ord, &c.IsLocked); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

const updateColumnType = `
UPDATE columns
SET column_type = $2, custom_options = $3
WHERE id = $1
`

func (q *Queries) UpdateColumnType(ctx context.Context, id pgtype.UUID, columnType string, customOptions []string) error {
	_, err := q.db.Exec(ctx, updateColumnType, id, columnType, ToPgTextArray(customOptions))
	return err
}

const deleteColumn = `
DELETE FROM columns
WHERE id = $1
`

func (q *Queries) DeleteColumn(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteColumn, id)
	return tag.RowsAffected(), err
}
