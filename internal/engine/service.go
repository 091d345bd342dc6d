package engine

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/database"
)

// Options tunes engine behavior. The zero value gets sensible defaults.
type Options struct {
	// IssueRetries is how many times a failed counter lock is retried
	// before surfacing a ConcurrencyError (default: 3).
	IssueRetries int

	// SchemaCacheTTL is how long cached column sets stay valid (default: 30s).
	SchemaCacheTTL time.Duration

	// RowPageSize is the page size used when a row listing asks for none
	// (default: 100). Pages are always capped at 500.
	RowPageSize int
}

// Service is the entry point for all engine operations: schema catalog,
// row materialization, constraint checks, and invoice numbering.
type Service struct {
	pool         *pgxpool.Pool
	cache        *schemaCache
	issueRetries int
	rowPageSize  int
	now          func() time.Time
}

// NewService creates a Service bound to the given connection pool.
func NewService(pool *pgxpool.Pool, opts Options) *Service {
	if opts.IssueRetries <= 0 {
		opts.IssueRetries = 3
	}
	if opts.SchemaCacheTTL <= 0 {
		opts.SchemaCacheTTL = 30 * time.Second
	}
	if opts.RowPageSize <= 0 || opts.RowPageSize > 500 {
		opts.RowPageSize = 100
	}
	return &Service{
		pool:         pool,
		cache:        newSchemaCache(opts.SchemaCacheTTL),
		issueRetries: opts.IssueRetries,
		rowPageSize:  opts.RowPageSize,
		now:          time.Now,
	}
}

// queries returns the query layer bound to the pool.
func (s *Service) queries() *database.Queries {
	return database.New(s.pool)
}

// ----------------------------------------------------------------------------
// Mapping between storage and domain shapes
// ----------------------------------------------------------------------------

func databaseFromDB(d database.TenantDatabase) Database {
	return Database{
		ID:        database.FromPgUUID(d.ID),
		TenantID:  database.FromPgUUID(d.TenantID),
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

func tableFromDB(t database.Table) Table {
	return Table{
		ID:            database.FromPgUUID(t.ID),
		DatabaseID:    database.FromPgUUID(t.DatabaseID),
		Name:          t.Name,
		Description:   database.FromPgText(t.Description),
		IsProtected:   t.IsProtected,
		ProtectedKind: ProtectedKind(database.FromPgText(t.ProtectedKind)),
		CreatedAt:     t.CreatedAt,
	}
}

func columnFromDB(c database.Column) Column {
	col := Column{
		ID:            database.FromPgUUID(c.ID),
		TableID:       database.FromPgUUID(c.TableID),
		Name:          c.Name,
		Type:          ColumnType(c.ColumnType),
		SemanticTag:   database.FromPgText(c.SemanticTag),
		Required:      c.Required,
		Unique:        c.IsUnique,
		Primary:       c.IsPrimary,
		AutoIncrement: c.AutoIncrement,
		DefaultValue:  database.FromPgText(c.DefaultValue),
		CustomOptions: c.CustomOptions,
		Order:         int(c.Ord),
		IsLocked:      c.IsLocked,
	}
	if c.ReferenceTableID.Valid {
		ref := database.FromPgUUID(c.ReferenceTableID)
		col.ReferenceTableID = &ref
	}
	return col
}

func rowFromDB(r database.Row) Row {
	return Row{
		ID:        r.ID,
		TableID:   database.FromPgUUID(r.TableID),
		CreatedAt: r.CreatedAt,
	}
}

func cellFromDB(c database.Cell) Cell {
	return Cell{
		ID:       database.FromPgUUID(c.ID),
		RowID:    c.RowID,
		ColumnID: database.FromPgUUID(c.ColumnID),
		Value:    c.Value,
	}
}
