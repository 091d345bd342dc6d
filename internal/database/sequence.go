package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getCounterForUpdate = `
SELECT current_number
FROM series_counters
WHERE tenant_id = $1 AND database_id = $2 AND series = $3
FOR UPDATE
`

// GetCounterForUpdate reads a series counter under an exclusive row lock.
// Must run inside a transaction; the lock is held until commit or rollback.
func (q *Queries) GetCounterForUpdate(ctx context.Context, tenantID, databaseID pgtype.UUID, series string) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, getCounterForUpdate, tenantID, databaseID, series).Scan(&n)
	return n, err
}

const insertCounter = `
INSERT INTO series_counters (tenant_id, database_id, series, current_number)
VALUES ($1, $2, $3, $4)
ON CONFLICT (tenant_id, database_id, series) DO NOTHING
`

// InsertCounter creates a counter row if none exists yet. Losing the insert
// race is fine; the caller re-reads under lock afterwards.
func (q *Queries) InsertCounter(ctx context.Context, tenantID, databaseID pgtype.UUID, series string, current int64) error {
	_, err := q.db.Exec(ctx, insertCounter, tenantID, databaseID, series, current)
	return err
}

const updateCounter = `
UPDATE series_counters
SET current_number = $4, updated_at = now()
WHERE tenant_id = $1 AND database_id = $2 AND series = $3
`

func (q *Queries) UpdateCounter(ctx context.Context, tenantID, databaseID pgtype.UUID, series string, current int64) error {
	_, err := q.db.Exec(ctx, updateCounter, tenantID, databaseID, series, current)
	return err
}

const peekCounter = `
SELECT current_number
FROM series_counters
WHERE tenant_id = $1 AND database_id = $2 AND series = $3
`

// PeekCounter reads a series counter without locking or mutating it.
func (q *Queries) PeekCounter(ctx context.Context, tenantID, databaseID pgtype.UUID, series string) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, peekCounter, tenantID, databaseID, series).Scan(&n)
	return n, err
}

const insertIssuedNumber = `
INSERT INTO invoice_numbers (tenant_id, database_id, series, number, full_number)
VALUES ($1, $2, $3, $4, $5)
`

// InsertIssuedNumber journals one issued invoice number. It runs in the same
// transaction as the counter update, so the journal never diverges.
func (q *Queries) InsertIssuedNumber(ctx context.Context, tenantID, databaseID pgtype.UUID, series string, number int64, fullNumber string) error {
	_, err := q.db.Exec(ctx, insertIssuedNumber, tenantID, databaseID, series, number, fullNumber)
	return err
}

// NumberingStatsRow is one (series, year, month) aggregate of issued numbers.
type NumberingStatsRow struct {
	Series     string
	Year       int32
	Month      int32
	Issued     int64
	LastNumber int64
}

const numberingStats = `
SELECT series,
	EXTRACT(YEAR FROM issued_at)::int AS year,
	EXTRACT(MONTH FROM issued_at)::int AS month,
	COUNT(*) AS issued,
	MAX(number) AS last_number
FROM invoice_numbers
WHERE tenant_id = $1 AND database_id = $2
GROUP BY series, year, month
ORDER BY series, year, month
`

func (q *Queries) NumberingStats(ctx context.Context, tenantID, databaseID pgtype.UUID) ([]NumberingStatsRow, error) {
	rows, err := q.db.Query(ctx, numberingStats, tenantID, databaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NumberingStatsRow
	for rows.Next() {
		var r NumberingStatsRow
		if err := rows.Scan(&r.Series, &r.Year, &r.Month, &r.Issued, &r.LastNumber); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
