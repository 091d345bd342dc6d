package database

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ToPgUUID converts a uuid.UUID to pgtype.UUID.
func ToPgUUID(id uuid.UUID) pgtype.UUID {
	if id == uuid.Nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: id, Valid: true}
}

// FromPgUUID converts a pgtype.UUID back to uuid.UUID.
// Returns uuid.Nil if the value is invalid (NULL).
func FromPgUUID(u pgtype.UUID) uuid.UUID {
	if !u.Valid {
		return uuid.Nil
	}
	return uuid.UUID(u.Bytes)
}

// ToPgText converts a string to pgtype.Text.
// Returns invalid (NULL) if the string is empty.
func ToPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// FromPgText converts a pgtype.Text back to a string, NULL becoming "".
func FromPgText(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// ToPgTextArray coalesces a nil slice to an empty one. pgx encodes a nil
// []string as SQL NULL, which NOT NULL text[] columns reject.
func ToPgTextArray(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
