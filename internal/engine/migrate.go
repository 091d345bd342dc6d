package engine

// migrate.go changes a column's declared type and carries every stored cell
// value across, using the conversion matrix from convert.go. The whole
// migration is one transaction: either all cells convert and the column type
// flips, or nothing changes.

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/database"
)

// TypeMigrationReport summarizes a completed column type change.
type TypeMigrationReport struct {
	ColumnID  uuid.UUID  `json:"columnId"`
	FromType  ColumnType `json:"fromType"`
	ToType    ColumnType `json:"toType"`
	Converted int        `json:"converted"`
	DataLoss  int        `json:"dataLoss"`
	Warnings  []string   `json:"warnings,omitempty"`
}

// ChangeColumnType converts a column and all of its stored cells to a new
// structural type. When any non-empty cell fails to convert, the migration
// aborts and reports the first failing value; empty cells pass through
// untouched.
func (s *Service) ChangeColumnType(ctx context.Context, columnID uuid.UUID, toType ColumnType, customOptions []string) (*TypeMigrationReport, error) {
	if !toType.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown structural type %q", toType)}
	}

	col, err := s.GetColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	fromType := col.Type

	if fromType != toType {
		if _, ok := conversions[conversionKey{fromType, toType}]; !ok {
			return nil, &ConversionError{
				From:    fromType,
				To:      toType,
				Message: fmt.Sprintf("No conversion available from %s to %s", fromType, toType),
			}
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin migration transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)
	cells, err := q.ListCellsByColumn(ctx, database.ToPgUUID(columnID))
	if err != nil {
		return nil, fmt.Errorf("list cells: %w", err)
	}

	report := &TypeMigrationReport{ColumnID: columnID, FromType: fromType, ToType: toType}
	for _, cell := range cells {
		res := AttemptConversion(cell.Value, fromType, toType)
		if !res.Success {
			return nil, &ConversionError{
				From:    fromType,
				To:      toType,
				Message: fmt.Sprintf("Cannot convert cell of row %d: %s", cell.RowID, res.Error),
			}
		}
		if res.NewValue == nil {
			continue // empty cell passes through untouched
		}
		if err := q.UpdateCellValue(ctx, cell.ID, storageForm(res.NewValue, toType)); err != nil {
			return nil, fmt.Errorf("update cell: %w", err)
		}
		report.Converted++
		if res.DataLoss {
			report.DataLoss++
		}
		if res.Warning != "" {
			report.Warnings = appendUnique(report.Warnings, res.Warning)
		}
	}

	if err := q.UpdateColumnType(ctx, database.ToPgUUID(columnID), string(toType), customOptions); err != nil {
		return nil, fmt.Errorf("update column type: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit migration: %w", err)
	}

	s.cache.Invalidate(col.TableID)
	return report, nil
}

// storageForm renders a converted value in the text form cells store.
func storageForm(v interface{}, t ColumnType) string {
	switch t {
	case TypeNumber, TypeReference:
		if n, ok := valueFloat(v); ok {
			return formatNumber(n)
		}
		return valueString(v)
	case TypeCustomArray:
		return strings.Join(valueStrings(v), ", ")
	default:
		return valueString(v)
	}
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
