package web

// handlers_rows.go serves row materialization: create, read, list, delete
// rows and update individual cells.

import (
	"net/http"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/engine"
)

type createRowRequest struct {
	Cells []engine.CellInput `json:"cells"`
}

func (s *Server) handleCreateRow(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuidParam(r, "tableID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req createRowRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	created, err := s.service.CreateRowWithCells(r.Context(), tableID, req.Cells)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListRows(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuidParam(r, "tableID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	limit := parseIntParam(r, "limit", 0)
	page := parseIntParam(r, "page", 1)
	if limit <= 0 {
		limit = s.cfg.Engine.RowPageSize
	}
	offset := (page - 1) * limit

	rows, err := s.service.ListRows(r.Context(), tableID, limit, offset)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleGetRow(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuidParam(r, "tableID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	rowID, err := int64Param(r, "rowID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	row, err := s.service.GetRow(r.Context(), tableID, rowID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuidParam(r, "tableID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	rowID, err := int64Param(r, "rowID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.service.DeleteRow(r.Context(), tableID, rowID); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateCellRequest struct {
	Value interface{} `json:"value"`
}

func (s *Server) handleUpdateCell(w http.ResponseWriter, r *http.Request) {
	cellID, err := uuidParam(r, "cellID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req updateCellRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	cell, err := s.service.UpdateCell(r.Context(), cellID, req.Value)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cell)
}
