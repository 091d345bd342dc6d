package engine

// errors.go defines the engine error taxonomy.
//
// Validation, conversion, and uniqueness errors are deterministic and
// user-actionable: they surface to the caller verbatim and are never retried.
// Concurrency errors during sequence issuance are retried a bounded number of
// times before surfacing. Not-found errors are fatal and non-retryable.

import (
	"errors"
	"fmt"
)

// ValidationError reports a value that fails a column's structural rules or a
// missing required column. Message is the complete user-facing sentence.
type ValidationError struct {
	Column  string // Column name
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConversionError reports an unsupported type pair or a value the pure
// converter rejected.
type ConversionError struct {
	From    ColumnType
	To      ColumnType
	Message string
}

func (e *ConversionError) Error() string {
	return e.Message
}

// UniquenessError reports a collision with an existing unique-column value.
type UniquenessError struct {
	Column string
	Value  string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("Value %q already exists. This column requires unique values.", e.Value)
}

// ConcurrencyError reports a lock acquisition or transaction failure during
// sequence issuance. Issue retries these internally before giving up.
type ConcurrencyError struct {
	Series string
	Err    error
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("could not lock series counter %q: %v", e.Series, e.Err)
}

func (e *ConcurrencyError) Unwrap() error {
	return e.Err
}

// NotFoundError reports a missing table, column, row, or series counter.
type NotFoundError struct {
	Kind string // "table", "column", "row", "database"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ProtectedError reports an attempt to remove platform-managed schema.
type ProtectedError struct {
	Kind string // "table" or "column"
	Name string
}

func (e *ProtectedError) Error() string {
	if e.Kind == "column" {
		return fmt.Sprintf("locked column %q is platform managed and cannot be removed", e.Name)
	}
	return fmt.Sprintf("protected table %q is platform managed and cannot be removed", e.Name)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRetryable reports whether err is worth retrying with a fresh lock.
// Only concurrency failures qualify; everything else is deterministic.
func IsRetryable(err error) bool {
	var ce *ConcurrencyError
	return errors.As(err, &ce)
}
