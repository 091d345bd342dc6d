package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// TenantDatabase is one tenant-owned logical database.
type TenantDatabase struct {
	ID        pgtype.UUID
	TenantID  pgtype.UUID
	Name      string
	CreatedAt time.Time
}

// Table is a stored table definition.
type Table struct {
	ID            pgtype.UUID
	DatabaseID    pgtype.UUID
	Name          string
	Description   pgtype.Text
	IsProtected   bool
	ProtectedKind pgtype.Text
	CreatedAt     time.Time
}

// Column is a stored column definition.
type Column struct {
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

// Row is a stored logical row.
type Row struct {
	ID        int64
	TableID   pgtype.UUID
	CreatedAt time.Time
}

// Cell is one stored (row, column) value.
type Cell struct {
	ID       pgtype.UUID
	RowID    int64
	ColumnID pgtype.UUID
	Value    string
}

// SeriesCounter is the per-(tenant, database, series) sequence state.
type SeriesCounter struct {
	TenantID      pgtype.UUID
	DatabaseID    pgtype.UUID
	Series        string
	CurrentNumber int64
	UpdatedAt     time.Time
}

// IssuedNumber is one journal entry of the sequence generator.
type IssuedNumber struct {
	ID         int64
	TenantID   pgtype.UUID
	DatabaseID pgtype.UUID
	Series     string
	Number     int64
	FullNumber string
	IssuedAt   time.Time
}
