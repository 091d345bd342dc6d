package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createRow = `
INSERT INTO rows (table_id)
VALUES ($1)
RETURNING id, table_id, created_at
`

func (q *Queries) CreateRow(ctx context.Context, tableID pgtype.UUID) (Row, error) {
	var r Row
	err := q.db.QueryRow(ctx, createRow, tableID).Scan(&r.ID, &r.TableID, &r.CreatedAt)
	return r, err
}

const getRow = `
SELECT id, table_id, created_at
FROM rows
WHERE id = $1 AND table_id = $2
`

func (q *Queries) GetRow(ctx context.Context, id int64, tableID pgtype.UUID) (Row, error) {
	var r Row
	err := q.db.QueryRow(ctx, getRow, id, tableID).Scan(&r.ID, &r.TableID, &r.CreatedAt)
	return r, err
}

const listRows = `
SELECT id, table_id, created_at
FROM rows
WHERE table_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

func (q *Queries) ListRows(ctx context.Context, tableID pgtype.UUID, limit, offset int32) ([]Row, error) {
	rows, err := q.db.Query(ctx, listRows, tableID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.TableID, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const deleteRow = `
DELETE FROM rows
WHERE id = $1 AND table_id = $2
`

// DeleteRow removes a row; its cells cascade.
func (q *Queries) DeleteRow(ctx context.Context, id int64, tableID pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteRow, id, tableID)
	return tag.RowsAffected(), err
}

const countRows = `
SELECT COUNT(*)
FROM rows
WHERE table_id = $1
`

func (q *Queries) CountRows(ctx context.Context, tableID pgtype.UUID) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countRows, tableID).Scan(&n)
	return n, err
}

// createCells inserts a batch of cells in one statement via unnest, so a row's
// full cell set lands atomically with a single round trip.
const createCells = `
INSERT INTO cells (id, row_id, column_id, value)
SELECT unnest($1::uuid[]), $2, unnest($3::uuid[]), unnest($4::text[])
`

// CreateCellsParams is a column-oriented batch of cells for one row.
type CreateCellsParams struct {
	IDs       []string
	RowID     int64
	ColumnIDs []string
	Values    []string
}

func (q *Queries) CreateCells(ctx context.Context, arg CreateCellsParams) error {
	_, err := q.db.Exec(ctx, createCells, arg.IDs, arg.RowID, arg.ColumnIDs, arg.Values)
	return err
}

const listCellsByRow = `
SELECT id, row_id, column_id, value
FROM cells
WHERE row_id = $1
`

func (q *Queries) ListCellsByRow(ctx context.Context, rowID int64) ([]Cell, error) {
	rows, err := q.db.Query(ctx, listCellsByRow, rowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCells(rows)
}

const listCellsByColumn = `
SELECT id, row_id, column_id, value
FROM cells
WHERE column_id = $1
`

func (q *Queries) ListCellsByColumn(ctx context.Context, columnID pgtype.UUID) ([]Cell, error) {
	rows, err := q.db.Query(ctx, listCellsByColumn, columnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCells(rows)
}

const getCellForUpdate = `
SELECT id, row_id, column_id, value
FROM cells
WHERE id = $1
FOR UPDATE
`

// GetCellForUpdate loads one cell and row-locks it for the rest of the
// current transaction.
func (q *Queries) GetCellForUpdate(ctx context.Context, id pgtype.UUID) (Cell, error) {
	var c Cell
	err := q.db.QueryRow(ctx, getCellForUpdate, id).
		Scan(&c.ID, &c.RowID, &c.ColumnID, &c.Value)
	return c, err
}

const updateCellValue = `
UPDATE cells
SET value = $2
WHERE id = $1
`

func (q *Queries) UpdateCellValue(ctx context.Context, id pgtype.UUID, value string) error {
	_, err := q.db.Exec(ctx, updateCellValue, id, value)
	return err
}

const countCellValue = `
SELECT COUNT(*)
FROM cells
WHERE column_id = $1 AND value = $2 AND ($3::bigint IS NULL OR row_id <> $3)
`

// CountCellValue counts existing cells of a column holding value, optionally
// excluding one row (for update-in-place uniqueness checks).
func (q *Queries) CountCellValue(ctx context.Context, columnID pgtype.UUID, value string, excludeRowID *int64) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countCellValue, columnID, value, excludeRowID).Scan(&n)
	return n, err
}

const lockUniqueValue = `
SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2, 0))
`

// LockUniqueValue serializes concurrent writers of the same (column, value)
// pair for the rest of the current transaction. This is what makes the
// check-and-insert uniqueness enforcement safe under concurrency.
func (q *Queries) LockUniqueValue(ctx context.Context, columnID pgtype.UUID, value string) error {
	_, err := q.db.Exec(ctx, lockUniqueValue, columnID, value)
	return err
}

func scanCells(rows pgx.Rows) ([]Cell, error) {
	var out []Cell
	for rows.Next() {
		var c Cell
		if err := rows.Scan(&c.ID, &c.RowID, &c.ColumnID, &c.Value); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
