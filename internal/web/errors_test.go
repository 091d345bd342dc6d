package web

import (
	"errors"
	"net/http"
	"testing"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/engine"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &engine.ValidationError{Message: "bad"}, want: http.StatusBadRequest},
		{name: "conversion", err: &engine.ConversionError{Message: "bad pair"}, want: http.StatusBadRequest},
		{name: "uniqueness", err: &engine.UniquenessError{Column: "c", Value: "v"}, want: http.StatusConflict},
		{name: "not found", err: &engine.NotFoundError{Kind: "table", ID: "x"}, want: http.StatusNotFound},
		{name: "protected", err: &engine.ProtectedError{Kind: "table", Name: "invoices"}, want: http.StatusForbidden},
		{name: "concurrency", err: &engine.ConcurrencyError{Series: "INV"}, want: http.StatusServiceUnavailable},
		{name: "wrapped typed error", err: wrap(&engine.NotFoundError{Kind: "row", ID: "1"}), want: http.StatusNotFound},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError = %d, want %d", got, tt.want)
			}
		})
	}
}

func wrap(err error) error {
	return errors.Join(errors.New("context"), err)
}
