package engine

// types.go defines the domain shapes shared across the engine: structural
// column types, catalog records, and the row/cell input and output forms.

import (
	"time"

	"github.com/google/uuid"
)

// ColumnType is the structural type of a column. It governs storage form and
// conversion behavior; it says nothing about domain meaning (see SemanticTag).
type ColumnType string

const (
	TypeString      ColumnType = "string"
	TypeNumber      ColumnType = "number"
	TypeBoolean     ColumnType = "boolean"
	TypeDate        ColumnType = "date"
	TypeReference   ColumnType = "reference"
	TypeCustomArray ColumnType = "customArray"
)

// ColumnTypes lists every supported structural type.
// The set is part of the wire vocabulary shared with the schema editor;
// adding an entry requires converter coverage for every existing pair.
var ColumnTypes = []ColumnType{
	TypeString, TypeNumber, TypeBoolean, TypeDate, TypeReference, TypeCustomArray,
}

// Valid reports whether t is a known structural type.
func (t ColumnType) Valid() bool {
	for _, ct := range ColumnTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// ProtectedKind identifies why a table is platform-managed.
type ProtectedKind string

const (
	ProtectedInvoices    ProtectedKind = "invoices"
	ProtectedInvoiceRows ProtectedKind = "invoice_items"
	ProtectedCustomers   ProtectedKind = "customers"
)

// Database is one tenant-owned logical database; every Table belongs to one.
type Database struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenantId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Table is a tenant-defined table. Protected tables carry platform-managed
// columns that user actions must not remove.
type Table struct {
	ID            uuid.UUID     `json:"id"`
	DatabaseID    uuid.UUID     `json:"databaseId"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	IsProtected   bool          `json:"isProtected"`
	ProtectedKind ProtectedKind `json:"protectedKind,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Column is a single column definition within a Table.
type Column struct {
	ID               uuid.UUID  `json:"id"`
	TableID          uuid.UUID  `json:"tableId"`
	Name             string     `json:"name"`
	Type             ColumnType `json:"type"`
	SemanticTag      string     `json:"semanticTag,omitempty"`
	Required         bool       `json:"required"`
	Unique           bool       `json:"unique"`
	Primary          bool       `json:"primary"`
	AutoIncrement    bool       `json:"autoIncrement"`
	DefaultValue     string     `json:"defaultValue,omitempty"`
	CustomOptions    []string   `json:"customOptions,omitempty"`
	ReferenceTableID *uuid.UUID `json:"referenceTableId,omitempty"`
	Order            int        `json:"order"`
	IsLocked         bool       `json:"isLocked"`
}

// Row is a logical row; its data lives in one Cell per Column.
// Row ids are sequential integers so reference cells can hold them directly.
type Row struct {
	ID        int64     `json:"id"`
	TableID   uuid.UUID `json:"tableId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cell holds one stored value for a (row, column) pair. The value is kept in
// text storage form and interpreted through the column's structural type.
type Cell struct {
	ID       uuid.UUID `json:"id"`
	RowID    int64     `json:"rowId"`
	ColumnID uuid.UUID `json:"columnId"`
	Value    string    `json:"value"`
}

// CellInput is one (column, value) pair of a row-creation request.
// Value is opaque JSON: string, number, bool, or array.
type CellInput struct {
	ColumnID uuid.UUID   `json:"columnId"`
	Value    interface{} `json:"value"`
}

// CreatedRow is the materialized result of CreateRowWithCells.
type CreatedRow struct {
	Row   Row    `json:"row"`
	Cells []Cell `json:"cells"`
}

// NewTableInput describes a table to create.
type NewTableInput struct {
	DatabaseID  uuid.UUID `json:"databaseId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// NewColumnInput describes a column to add to a table.
type NewColumnInput struct {
	Name             string     `json:"name"`
	Type             ColumnType `json:"type"`
	SemanticTag      string     `json:"semanticTag"`
	Required         bool       `json:"required"`
	Unique           bool       `json:"unique"`
	Primary          bool       `json:"primary"`
	AutoIncrement    bool       `json:"autoIncrement"`
	DefaultValue     string     `json:"defaultValue"`
	CustomOptions    []string   `json:"customOptions"`
	ReferenceTableID *uuid.UUID `json:"referenceTableId"`
	Order            int        `json:"order"`
}
