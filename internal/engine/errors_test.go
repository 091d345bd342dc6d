package engine

import (
	"errors"
	"fmt"
	"testing"
)

// ----------------------------------------------------------------------------
// Error Taxonomy Tests
// ----------------------------------------------------------------------------

func TestUniquenessError_Message(t *testing.T) {
	err := &UniquenessError{Column: "invoice_number", Value: "INV-000001"}
	want := `Value "INV-000001" already exists. This column requires unique values.`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestConcurrencyError_Unwrap(t *testing.T) {
	cause := errors.New("lock timeout")
	err := &ConcurrencyError{Series: "INV-2025", Err: cause}
	if !errors.Is(err, cause) {
		t.Error("ConcurrencyError should unwrap to its cause")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "concurrency error", err: &ConcurrencyError{Series: "INV"}, want: true},
		{name: "wrapped concurrency error", err: fmt.Errorf("issue: %w", &ConcurrencyError{Series: "INV"}), want: true},
		{name: "validation error", err: &ValidationError{Message: "bad"}, want: false},
		{name: "uniqueness error", err: &UniquenessError{Column: "c", Value: "v"}, want: false},
		{name: "not found", err: &NotFoundError{Kind: "row", ID: "1"}, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&NotFoundError{Kind: "table", ID: "x"}) {
		t.Error("direct NotFoundError not recognized")
	}
	if !IsNotFound(fmt.Errorf("lookup: %w", &NotFoundError{Kind: "column", ID: "y"})) {
		t.Error("wrapped NotFoundError not recognized")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("unrelated error misclassified as not found")
	}
}

func TestProtectedError_Message(t *testing.T) {
	table := &ProtectedError{Kind: "table", Name: "invoices"}
	if table.Error() != `protected table "invoices" is platform managed and cannot be removed` {
		t.Errorf("table message = %q", table.Error())
	}
	col := &ProtectedError{Kind: "column", Name: "invoice_number"}
	if col.Error() != `locked column "invoice_number" is platform managed and cannot be removed` {
		t.Errorf("column message = %q", col.Error())
	}
}
