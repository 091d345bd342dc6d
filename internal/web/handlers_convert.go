package web

// handlers_convert.go exposes the type converter so the schema editor can
// preview a migration before committing it.

import (
	"net/http"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/engine"
)

type previewConversionRequest struct {
	Value interface{}       `json:"value"`
	From  engine.ColumnType `json:"from"`
	To    engine.ColumnType `json:"to"`
}

// handlePreviewConversion runs a single value through the converter without
// touching storage.
func (s *Server) handlePreviewConversion(w http.ResponseWriter, r *http.Request) {
	var req previewConversionRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if !req.From.Valid() || !req.To.Valid() {
		badRequest(w, "unknown column type")
		return
	}

	result := engine.AttemptConversion(req.Value, req.From, req.To)
	writeJSON(w, http.StatusOK, result)
}

type conversionSafetyResponse struct {
	From        engine.ColumnType `json:"from"`
	To          engine.ColumnType `json:"to"`
	Safe        bool              `json:"safe"`
	Description string            `json:"description"`
}

// handleConversionSafety reports whether a (from, to) pair is lossless and
// describes what the conversion does.
func (s *Server) handleConversionSafety(w http.ResponseWriter, r *http.Request) {
	from := engine.ColumnType(r.URL.Query().Get("from"))
	to := engine.ColumnType(r.URL.Query().Get("to"))
	if !from.Valid() || !to.Valid() {
		badRequest(w, "unknown column type")
		return
	}

	writeJSON(w, http.StatusOK, conversionSafetyResponse{
		From:        from,
		To:          to,
		Safe:        engine.IsConversionSafe(from, to),
		Description: engine.ConversionDescription(from, to),
	})
}
