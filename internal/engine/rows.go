package engine

// rows.go materializes logical rows as typed cell sets.
//
// Row creation is one transaction: uniqueness locks, the row record, and the
// full cell batch either all commit or none do. A failure can never leave a
// row behind without its cells.

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/database"
)

// assembledCell is one coerced (column, value) pair ready for storage.
type assembledCell struct {
	Column Column
	Value  string
}

// assembleCells turns raw input cells into the complete storage-ready cell
// set of a row, one cell per column in column order:
//
//  1. Inputs are deduplicated by column id, first occurrence wins.
//  2. Inputs for unknown columns are silently dropped.
//  3. Each retained value is coerced to its column's storage form.
//  4. Columns without input get an empty-string cell.
//  5. Every required column must end up non-empty.
//
// The required check runs here, before any storage write, so a rejected row
// leaves nothing behind.
func assembleCells(columns []Column, inputs []CellInput) ([]assembledCell, error) {
	byColumn := make(map[uuid.UUID]Column, len(columns))
	for _, col := range columns {
		byColumn[col.ID] = col
	}

	retained := make(map[uuid.UUID]string, len(inputs))
	for _, in := range inputs {
		col, known := byColumn[in.ColumnID]
		if !known {
			continue
		}
		if _, seen := retained[in.ColumnID]; seen {
			continue
		}
		value, err := coerceCellValue(col, in.Value)
		if err != nil {
			return nil, err
		}
		retained[in.ColumnID] = value
	}

	out := make([]assembledCell, 0, len(columns))
	for _, col := range columns {
		value := retained[col.ID]
		if col.Required && value == "" {
			return nil, &ValidationError{
				Column:  col.Name,
				Message: fmt.Sprintf("Missing required column '%s' in row data", col.Name),
			}
		}
		out = append(out, assembledCell{Column: col, Value: value})
	}
	return out, nil
}

// CreateRowWithCells validates, coerces, and persists one logical row.
// On success the row has exactly one cell per column of its table.
func (s *Service) CreateRowWithCells(ctx context.Context, tableID uuid.UUID, inputs []CellInput) (*CreatedRow, error) {
	columns, err := s.Columns(ctx, tableID)
	if err != nil {
		return nil, err
	}

	cells, err := assembleCells(columns, inputs)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin row transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)

	// Serialize competing writers of the same unique value before checking.
	// The advisory locks live until commit, closing the check-then-insert
	// race the plain pre-check cannot.
	for _, cell := range cells {
		if !cell.Column.Unique || cell.Value == "" {
			continue
		}
		colID := database.ToPgUUID(cell.Column.ID)
		if err := q.LockUniqueValue(ctx, colID, cell.Value); err != nil {
			return nil, fmt.Errorf("lock unique value: %w", err)
		}
		n, err := q.CountCellValue(ctx, colID, cell.Value, nil)
		if err != nil {
			return nil, fmt.Errorf("check unique value: %w", err)
		}
		if n > 0 {
			return nil, &UniquenessError{Column: cell.Column.Name, Value: cell.Value}
		}
	}

	row, err := q.CreateRow(ctx, database.ToPgUUID(tableID))
	if err != nil {
		return nil, fmt.Errorf("create row: %w", err)
	}

	batch := database.CreateCellsParams{
		IDs:       make([]string, len(cells)),
		RowID:     row.ID,
		ColumnIDs: make([]string, len(cells)),
		Values:    make([]string, len(cells)),
	}
	created := make([]Cell, len(cells))
	for i, cell := range cells {
		id := uuid.New()
		batch.IDs[i] = id.String()
		batch.ColumnIDs[i] = cell.Column.ID.String()
		batch.Values[i] = cell.Value
		created[i] = Cell{ID: id, RowID: row.ID, ColumnID: cell.Column.ID, Value: cell.Value}
	}
	if err := q.CreateCells(ctx, batch); err != nil {
		return nil, fmt.Errorf("create cells: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit row: %w", err)
	}

	return &CreatedRow{Row: rowFromDB(row), Cells: created}, nil
}

// GetRow returns one row with its cells.
func (s *Service) GetRow(ctx context.Context, tableID uuid.UUID, rowID int64) (*CreatedRow, error) {
	row, err := s.queries().GetRow(ctx, rowID, database.ToPgUUID(tableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "row", ID: fmt.Sprint(rowID)}
		}
		return nil, fmt.Errorf("get row: %w", err)
	}
	dbCells, err := s.queries().ListCellsByRow(ctx, rowID)
	if err != nil {
		return nil, fmt.Errorf("list cells: %w", err)
	}
	cells := make([]Cell, len(dbCells))
	for i, c := range dbCells {
		cells[i] = cellFromDB(c)
	}
	return &CreatedRow{Row: rowFromDB(row), Cells: cells}, nil
}

// ListRows returns a page of rows with their cells.
func (s *Service) ListRows(ctx context.Context, tableID uuid.UUID, limit, offset int) ([]CreatedRow, error) {
	if limit <= 0 || limit > 500 {
		limit = s.rowPageSize
	}
	if offset < 0 {
		offset = 0
	}
	dbRows, err := s.queries().ListRows(ctx, database.ToPgUUID(tableID), int32(limit), int32(offset))
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}
	out := make([]CreatedRow, 0, len(dbRows))
	for _, r := range dbRows {
		dbCells, err := s.queries().ListCellsByRow(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("list cells: %w", err)
		}
		cells := make([]Cell, len(dbCells))
		for i, c := range dbCells {
			cells[i] = cellFromDB(c)
		}
		out = append(out, CreatedRow{Row: rowFromDB(r), Cells: cells})
	}
	return out, nil
}

// DeleteRow removes a row and its cells.
func (s *Service) DeleteRow(ctx context.Context, tableID uuid.UUID, rowID int64) error {
	n, err := s.queries().DeleteRow(ctx, rowID, database.ToPgUUID(tableID))
	if err != nil {
		return fmt.Errorf("delete row: %w", err)
	}
	if n == 0 {
		return &NotFoundError{Kind: "row", ID: fmt.Sprint(rowID)}
	}
	return nil
}

// UpdateCell coerces and stores a new value for one existing cell. The
// owning row and column come from the stored cell itself, never from the
// caller, so the coercion and uniqueness check always run against the
// column the cell actually belongs to.
func (s *Service) UpdateCell(ctx context.Context, cellID uuid.UUID, value interface{}) (*Cell, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin cell transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)
	dbCell, err := q.GetCellForUpdate(ctx, database.ToPgUUID(cellID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "cell", ID: cellID.String()}
		}
		return nil, fmt.Errorf("load cell: %w", err)
	}
	dbCol, err := q.GetColumn(ctx, dbCell.ColumnID)
	if err != nil {
		return nil, fmt.Errorf("load cell column: %w", err)
	}
	col := columnFromDB(dbCol)

	stored, err := prepareCellUpdate(col, value)
	if err != nil {
		return nil, err
	}

	if col.Unique && stored != "" {
		if err := q.LockUniqueValue(ctx, dbCell.ColumnID, stored); err != nil {
			return nil, fmt.Errorf("lock unique value: %w", err)
		}
		n, err := q.CountCellValue(ctx, dbCell.ColumnID, stored, &dbCell.RowID)
		if err != nil {
			return nil, fmt.Errorf("check unique value: %w", err)
		}
		if n > 0 {
			return nil, &UniquenessError{Column: col.Name, Value: stored}
		}
	}
	if err := q.UpdateCellValue(ctx, dbCell.ID, stored); err != nil {
		return nil, fmt.Errorf("update cell: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit cell: %w", err)
	}

	return &Cell{ID: cellID, RowID: dbCell.RowID, ColumnID: col.ID, Value: stored}, nil
}

// prepareCellUpdate coerces an incoming value against the cell's real column
// and enforces the required policy.
func prepareCellUpdate(col Column, value interface{}) (string, error) {
	stored, err := coerceCellValue(col, value)
	if err != nil {
		return "", err
	}
	if col.Required && stored == "" {
		return "", &ValidationError{
			Column:  col.Name,
			Message: fmt.Sprintf("Missing required column '%s' in row data", col.Name),
		}
	}
	return stored, nil
}
