package engine

// unique.go is the constraint validator's read side. These checks run outside
// any lock and are advisory: they exist for fast, well-worded failures before
// a write is attempted. Hard enforcement lives in rows.go, where the same
// check repeats under a per-(column, value) advisory lock inside the write
// transaction.

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/database"
)

// IsColumnUnique reports whether a column carries the unique constraint.
func (s *Service) IsColumnUnique(ctx context.Context, columnID uuid.UUID) (bool, error) {
	col, err := s.GetColumn(ctx, columnID)
	if err != nil {
		return false, err
	}
	return col.Unique, nil
}

// IsValueUnique reports whether value would be unique within a column.
// Empty values are always unique: absence of data never collides.
// excludeRowID, when non-nil, ignores that row's own cell (update-in-place).
func (s *Service) IsValueUnique(ctx context.Context, columnID uuid.UUID, value string, excludeRowID *int64) (bool, error) {
	if value == "" {
		return true, nil
	}
	n, err := s.queries().CountCellValue(ctx, database.ToPgUUID(columnID), value, excludeRowID)
	if err != nil {
		return false, fmt.Errorf("count cell values: %w", err)
	}
	return n == 0, nil
}

// ValidateUniqueConstraint checks value against a column's uniqueness rule.
// It returns nil when the column is not unique or the value does not collide,
// and a UniquenessError on collision.
func (s *Service) ValidateUniqueConstraint(ctx context.Context, columnID uuid.UUID, value string, excludeRowID *int64) error {
	col, err := s.GetColumn(ctx, columnID)
	if err != nil {
		return err
	}
	if !col.Unique {
		return nil
	}
	unique, err := s.IsValueUnique(ctx, columnID, value, excludeRowID)
	if err != nil {
		return err
	}
	if !unique {
		return &UniquenessError{Column: col.Name, Value: value}
	}
	return nil
}
