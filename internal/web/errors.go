package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Mapped to an HTTP status that matches the failure class
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. Error is mapped via engine.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is returned as JSON

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/engine"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns a JSON payload with a
// status derived from the error's class.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := statusForError(err)
	userMsg := engine.MapError(err)

	// Get request ID for correlation
	requestID := middleware.GetReqID(r.Context())

	// Log the technical error with context
	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", requestID,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusForError maps engine error classes to HTTP status codes.
func statusForError(err error) int {
	var (
		validation  *engine.ValidationError
		conversion  *engine.ConversionError
		uniqueness  *engine.UniquenessError
		notFound    *engine.NotFoundError
		protected   *engine.ProtectedError
		concurrency *engine.ConcurrencyError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &conversion):
		return http.StatusBadRequest
	case errors.As(err, &uniqueness):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &protected):
		return http.StatusForbidden
	case errors.As(err, &concurrency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
