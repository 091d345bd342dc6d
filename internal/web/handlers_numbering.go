package web

// handlers_numbering.go serves the invoice number sequence: issue, peek,
// and per-series statistics.

import (
	"net/http"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/engine"
)

type numberingRequest struct {
	DatabaseID string                 `json:"databaseId"`
	Config     engine.NumberingConfig `json:"config"`
}

// handleIssueNumber atomically issues the next invoice number for a series.
func (s *Server) handleIssueNumber(w http.ResponseWriter, r *http.Request) {
	tenant, err := tenantID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req numberingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	databaseID, err := parseUUID(req.DatabaseID)
	if err != nil {
		badRequest(w, "invalid databaseId: "+req.DatabaseID)
		return
	}

	number, err := s.service.IssueInvoiceNumber(r.Context(), tenant, databaseID, req.Config)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, number)
}

// handlePeekNumber previews the next invoice number without consuming it.
func (s *Server) handlePeekNumber(w http.ResponseWriter, r *http.Request) {
	tenant, err := tenantID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req numberingRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	databaseID, err := parseUUID(req.DatabaseID)
	if err != nil {
		badRequest(w, "invalid databaseId: "+req.DatabaseID)
		return
	}

	number, err := s.service.PeekInvoiceNumber(r.Context(), tenant, databaseID, req.Config)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, number)
}

// handleNumberingStats aggregates issued numbers per series.
func (s *Server) handleNumberingStats(w http.ResponseWriter, r *http.Request) {
	tenant, err := tenantID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	raw := r.URL.Query().Get("database")
	databaseID, err := parseUUID(raw)
	if err != nil {
		badRequest(w, "invalid database: "+raw)
		return
	}

	stats, err := s.service.GetNumberingStats(r.Context(), tenant, databaseID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
