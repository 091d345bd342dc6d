package engine

// catalog.go is the schema catalog: durable Table and Column definitions that
// tenants edit at runtime. No relational DDL happens here; a "table" is pure
// data interpreted by the row store.

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/database"
)

// CreateDatabase creates a tenant-owned logical database.
func (s *Service) CreateDatabase(ctx context.Context, tenantID uuid.UUID, name string) (*Database, error) {
	if name == "" {
		return nil, &ValidationError{Message: "database name must not be empty"}
	}
	d, err := s.queries().CreateDatabase(ctx, database.ToPgUUID(uuid.New()), database.ToPgUUID(tenantID), name)
	if err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}
	out := databaseFromDB(d)
	return &out, nil
}

// ListDatabases returns all logical databases owned by a tenant.
func (s *Service) ListDatabases(ctx context.Context, tenantID uuid.UUID) ([]Database, error) {
	dbs, err := s.queries().ListDatabases(ctx, database.ToPgUUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	out := make([]Database, len(dbs))
	for i, d := range dbs {
		out[i] = databaseFromDB(d)
	}
	return out, nil
}

// CreateTable creates a user-defined table in the catalog.
func (s *Service) CreateTable(ctx context.Context, in NewTableInput) (*Table, error) {
	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid table definition: %v", err)}
	}
	if _, err := s.queries().GetDatabase(ctx, database.ToPgUUID(in.DatabaseID)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "database", ID: in.DatabaseID.String()}
		}
		return nil, fmt.Errorf("look up database: %w", err)
	}

	t, err := s.queries().CreateTable(ctx, database.CreateTableParams{
		ID:          database.ToPgUUID(uuid.New()),
		DatabaseID:  database.ToPgUUID(in.DatabaseID),
		Name:        in.Name,
		Description: database.ToPgText(in.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	out := tableFromDB(t)
	return &out, nil
}

// GetTable returns a table definition by id.
func (s *Service) GetTable(ctx context.Context, tableID uuid.UUID) (*Table, error) {
	t, err := s.queries().GetTable(ctx, database.ToPgUUID(tableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "table", ID: tableID.String()}
		}
		return nil, fmt.Errorf("get table: %w", err)
	}
	out := tableFromDB(t)
	return &out, nil
}

// ListTables returns all table definitions of a logical database.
func (s *Service) ListTables(ctx context.Context, databaseID uuid.UUID) ([]Table, error) {
	tables, err := s.queries().ListTables(ctx, database.ToPgUUID(databaseID))
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = tableFromDB(t)
	}
	return out, nil
}

// DeleteTable removes a table with all its columns, rows, and cells.
// Protected tables resist deletion.
func (s *Service) DeleteTable(ctx context.Context, tableID uuid.UUID) error {
	t, err := s.GetTable(ctx, tableID)
	if err != nil {
		return err
	}
	if t.IsProtected {
		return &ProtectedError{Kind: "table", Name: t.Name}
	}
	if _, err := s.queries().DeleteTable(ctx, database.ToPgUUID(tableID)); err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	s.cache.Invalidate(tableID)
	return nil
}

// AddColumn adds a column definition to an existing table.
func (s *Service) AddColumn(ctx context.Context, tableID uuid.UUID, in NewColumnInput) (*Column, error) {
	if err := in.Validate(); err != nil {
		return nil, &ValidationError{Column: in.Name, Message: fmt.Sprintf("invalid column definition: %v", err)}
	}
	if _, err := s.GetTable(ctx, tableID); err != nil {
		return nil, err
	}

	c, err := s.queries().CreateColumn(ctx, database.CreateColumnParams{
		ID:               database.ToPgUUID(uuid.New()),
		TableID:          database.ToPgUUID(tableID),
		Name:             in.Name,
		ColumnType:       string(in.Type),
		SemanticTag:      database.ToPgText(in.SemanticTag),
		Required:         in.Required,
		IsUnique:         in.Unique,
		IsPrimary:        in.Primary,
		AutoIncrement:    in.AutoIncrement,
		DefaultValue:     database.ToPgText(in.DefaultValue),
		CustomOptions:    in.CustomOptions,
		ReferenceTableID: refToPgUUID(in.ReferenceTableID),
		Ord:              int32(in.Order),
	})
	if err != nil {
		return nil, fmt.Errorf("create column: %w", err)
	}
	s.cache.Invalidate(tableID)
	out := columnFromDB(c)
	return &out, nil
}

// GetColumn returns a column definition by id.
func (s *Service) GetColumn(ctx context.Context, columnID uuid.UUID) (*Column, error) {
	c, err := s.queries().GetColumn(ctx, database.ToPgUUID(columnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "column", ID: columnID.String()}
		}
		return nil, fmt.Errorf("get column: %w", err)
	}
	out := columnFromDB(c)
	return &out, nil
}

// Columns returns the column set of a table, via the schema cache.
func (s *Service) Columns(ctx context.Context, tableID uuid.UUID) ([]Column, error) {
	if cols, ok := s.cache.Get(tableID); ok {
		return cols, nil
	}

	if _, err := s.GetTable(ctx, tableID); err != nil {
		return nil, err
	}
	dbCols, err := s.queries().ListColumns(ctx, database.ToPgUUID(tableID))
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	cols := make([]Column, len(dbCols))
	for i, c := range dbCols {
		cols[i] = columnFromDB(c)
	}
	s.cache.Put(tableID, cols)
	return cols, nil
}

// DeleteColumn removes a column and all of its cells.
// Locked (platform-managed) columns resist deletion.
func (s *Service) DeleteColumn(ctx context.Context, columnID uuid.UUID) error {
	c, err := s.GetColumn(ctx, columnID)
	if err != nil {
		return err
	}
	if c.IsLocked {
		return &ProtectedError{Kind: "column", Name: c.Name}
	}
	if _, err := s.queries().DeleteColumn(ctx, database.ToPgUUID(columnID)); err != nil {
		return fmt.Errorf("delete column: %w", err)
	}
	s.cache.Invalidate(c.TableID)
	return nil
}

func refToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{Valid: false}
	}
	return database.ToPgUUID(*id)
}
