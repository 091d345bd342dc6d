package web

// handlers_common.go contains shared utilities and helpers used across handlers.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxBodySize caps JSON request bodies (1MB).
const maxBodySize = 1 << 20

// tenantHeader carries the caller's tenant id on every API request.
const tenantHeader = "X-Tenant-ID"

var errMissingTenant = errors.New("missing or invalid " + tenantHeader + " header")

// tenantID extracts the tenant id from the request header.
func tenantID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get(tenantHeader)
	if raw == "" {
		return uuid.Nil, errMissingTenant
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errMissingTenant
	}
	return id, nil
}

// uuidParam parses a UUID path parameter.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// int64Param parses an integer path parameter.
func int64Param(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return n, nil
}

// parseUUID parses a UUID from a request body field.
func parseUUID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// parseInt64 parses a decimal string into an int64.
func parseInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// decodeJSON reads the request body into v, rejecting unknown fields and
// oversized payloads.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// badRequest writes a 400 with a plain message for malformed requests that
// never reached the engine.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   msg,
		Message: msg,
		Code:    "REQ001",
	})
}
