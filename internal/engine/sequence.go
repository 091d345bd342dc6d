package engine

// sequence.go issues collision-free, human-readable invoice numbers.
//
// Each (tenant, database, series) triple owns one counter row. Issuing takes
// an exclusive row lock (SELECT ... FOR UPDATE), increments, journals the
// number, and commits, all in one transaction, so no two concurrent callers
// for the same series ever receive the same number. Peeking computes the same
// number without touching the counter.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/database"
)

// numberPadWidth is the zero-padded width of the sequential part.
const numberPadWidth = 6

// NumberingConfig controls how invoice numbers are built. All fields are
// optional; zero values fall back to the defaults.
type NumberingConfig struct {
	// Series is the base series name (default "INV").
	Series string `json:"series"`

	// Prefix and Suffix wrap the full number when non-empty.
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`

	// ResetYearly/ResetMonthly restart numbering per calendar period by
	// folding the period into the series identifier, which starts a fresh
	// counter. They imply IncludeYear/IncludeMonth.
	ResetYearly  bool `json:"resetYearly"`
	ResetMonthly bool `json:"resetMonthly"`

	// StartNumber is the first number issued for a fresh series (default 1).
	StartNumber int64 `json:"startNumber"`

	// IncludeYear/IncludeMonth add the calendar period to the series
	// identifier without affecting when counters reset on their own.
	IncludeYear  bool `json:"includeYear"`
	IncludeMonth bool `json:"includeMonth"`

	// Separator joins the parts of the full number (default "-").
	Separator string `json:"separator"`
}

// withDefaults returns the config with zero values replaced by defaults and
// reset flags folded into the include flags.
func (c NumberingConfig) withDefaults() NumberingConfig {
	if c.Series == "" {
		c.Series = "INV"
	}
	if c.StartNumber <= 0 {
		c.StartNumber = 1
	}
	if c.Separator == "" {
		c.Separator = "-"
	}
	c.IncludeYear = c.IncludeYear || c.ResetYearly
	c.IncludeMonth = c.IncludeMonth || c.ResetMonthly
	return c
}

// seriesIdentifier builds the counter key for the given moment, e.g.
// "INV", "INV-2025", or "INV-2025-03".
func (c NumberingConfig) seriesIdentifier(now time.Time) string {
	parts := []string{c.Series}
	if c.IncludeYear {
		parts = append(parts, fmt.Sprintf("%d", now.Year()))
	}
	if c.IncludeMonth {
		parts = append(parts, fmt.Sprintf("%02d", int(now.Month())))
	}
	return strings.Join(parts, c.Separator)
}

// NumberBreakdown exposes the components of a full invoice number for UI
// display and template rendering.
type NumberBreakdown struct {
	Prefix       string `json:"prefix,omitempty"`
	Series       string `json:"series"`
	PaddedNumber string `json:"paddedNumber"`
	Suffix       string `json:"suffix,omitempty"`
	Separator    string `json:"separator"`
}

// InvoiceNumber is one issued (or previewed) invoice number.
type InvoiceNumber struct {
	Number     int64           `json:"number"`
	Series     string          `json:"series"`
	FullNumber string          `json:"fullNumber"`
	Breakdown  NumberBreakdown `json:"breakdown"`
}

// padNumber renders n zero-padded to the standard width.
func padNumber(n int64) string {
	return fmt.Sprintf("%0*d", numberPadWidth, n)
}

// buildInvoiceNumber assembles the full number from its non-empty parts.
func buildInvoiceNumber(cfg NumberingConfig, seriesID string, n int64) InvoiceNumber {
	padded := padNumber(n)
	parts := make([]string, 0, 4)
	for _, p := range []string{cfg.Prefix, seriesID, padded, cfg.Suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return InvoiceNumber{
		Number:     n,
		Series:     seriesID,
		FullNumber: strings.Join(parts, cfg.Separator),
		Breakdown: NumberBreakdown{
			Prefix:       cfg.Prefix,
			Series:       seriesID,
			PaddedNumber: padded,
			Suffix:       cfg.Suffix,
			Separator:    cfg.Separator,
		},
	}
}

// IssueInvoiceNumber issues the next number of a series. Lock failures are
// retried with a fresh transaction before surfacing as a ConcurrencyError;
// every other error is deterministic and returned as-is.
func (s *Service) IssueInvoiceNumber(ctx context.Context, tenantID, databaseID uuid.UUID, cfg NumberingConfig) (*InvoiceNumber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid numbering config: %v", err)}
	}
	cfg = cfg.withDefaults()
	seriesID := cfg.seriesIdentifier(s.now())

	var lastErr error
	for attempt := 0; attempt < s.issueRetries; attempt++ {
		num, err := s.issueOnce(ctx, tenantID, databaseID, cfg, seriesID)
		if err == nil {
			return num, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// issueOnce performs one locked read-increment-write cycle.
func (s *Service) issueOnce(ctx context.Context, tenantID, databaseID uuid.UUID, cfg NumberingConfig, seriesID string) (*InvoiceNumber, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, &ConcurrencyError{Series: seriesID, Err: err}
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)
	pgTenant := database.ToPgUUID(tenantID)
	pgDatabase := database.ToPgUUID(databaseID)

	current, err := q.GetCounterForUpdate(ctx, pgTenant, pgDatabase, seriesID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Lazy counter creation. Losing the insert race to a concurrent
		// caller is fine: the follow-up locked read serializes both.
		if err := q.InsertCounter(ctx, pgTenant, pgDatabase, seriesID, cfg.StartNumber-1); err != nil {
			return nil, classifyIssueError(seriesID, err)
		}
		current, err = q.GetCounterForUpdate(ctx, pgTenant, pgDatabase, seriesID)
		if err != nil {
			return nil, classifyIssueError(seriesID, err)
		}
	} else if err != nil {
		return nil, classifyIssueError(seriesID, err)
	}

	next := current + 1
	if err := q.UpdateCounter(ctx, pgTenant, pgDatabase, seriesID, next); err != nil {
		return nil, classifyIssueError(seriesID, err)
	}

	num := buildInvoiceNumber(cfg, seriesID, next)
	if err := q.InsertIssuedNumber(ctx, pgTenant, pgDatabase, seriesID, next, num.FullNumber); err != nil {
		return nil, classifyIssueError(seriesID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classifyIssueError(seriesID, err)
	}
	return &num, nil
}

// PeekInvoiceNumber previews the next number without consuming it.
// Two peeks in a row return the same number.
func (s *Service) PeekInvoiceNumber(ctx context.Context, tenantID, databaseID uuid.UUID, cfg NumberingConfig) (*InvoiceNumber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid numbering config: %v", err)}
	}
	cfg = cfg.withDefaults()
	seriesID := cfg.seriesIdentifier(s.now())

	current, err := s.queries().PeekCounter(ctx, database.ToPgUUID(tenantID), database.ToPgUUID(databaseID), seriesID)
	if errors.Is(err, pgx.ErrNoRows) {
		current = cfg.StartNumber - 1
	} else if err != nil {
		return nil, fmt.Errorf("peek counter: %w", err)
	}

	num := buildInvoiceNumber(cfg, seriesID, current+1)
	return &num, nil
}

// NumberingStats aggregates issued numbers by series, year, and month.
type NumberingStats struct {
	TotalIssued int64                 `json:"totalIssued"`
	Entries     []NumberingStatsEntry `json:"entries"`
}

// NumberingStatsEntry is one (series, year, month) bucket.
type NumberingStatsEntry struct {
	Series     string `json:"series"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Issued     int64  `json:"issued"`
	LastNumber int64  `json:"lastNumber"`
}

// GetNumberingStats reports issuance history per series for a database.
// Read-only; not part of the concurrency-critical path.
func (s *Service) GetNumberingStats(ctx context.Context, tenantID, databaseID uuid.UUID) (*NumberingStats, error) {
	rows, err := s.queries().NumberingStats(ctx, database.ToPgUUID(tenantID), database.ToPgUUID(databaseID))
	if err != nil {
		return nil, fmt.Errorf("numbering stats: %w", err)
	}

	stats := &NumberingStats{Entries: make([]NumberingStatsEntry, len(rows))}
	for i, r := range rows {
		stats.Entries[i] = NumberingStatsEntry{
			Series:     r.Series,
			Year:       int(r.Year),
			Month:      int(r.Month),
			Issued:     r.Issued,
			LastNumber: r.LastNumber,
		}
		stats.TotalIssued += r.Issued
	}
	return stats, nil
}

// classifyIssueError wraps lock contention as retryable ConcurrencyError and
// leaves everything else untouched.
func classifyIssueError(series string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", // lock_not_available
			"40001", // serialization_failure
			"40P01": // deadlock_detected
			return &ConcurrencyError{Series: series, Err: err}
		}
	}
	return fmt.Errorf("issue number for series %q: %w", series, err)
}
