package web

// handlers_catalog.go serves the schema catalog: tenant databases, tables,
// and column definitions.

import (
	"net/http"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/engine"
)

type createDatabaseRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateDatabase(w http.ResponseWriter, r *http.Request) {
	tenant, err := tenantID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req createDatabaseRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	db, err := s.service.CreateDatabase(r.Context(), tenant, req.Name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, db)
}

func (s *Server) handleListDatabases(w http.ResponseWriter, r *http.Request) {
	tenant, err := tenantID(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	dbs, err := s.service.ListDatabases(r.Context(), tenant)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dbs)
}

type createTableRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	databaseID, err := uuidParam(r, "databaseID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req createTableRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	table, err := s.service.CreateTable(r.Context(), engine.NewTableInput{
		DatabaseID:  databaseID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, table)
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	databaseID, err := uuidParam(r, "databaseID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	tables, err := s.service.ListTables(r.Context(), databaseID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tables)
}

// handleEnsureInvoiceTable provisions the protected invoices table for a
// database. The call is idempotent.
func (s *Server) handleEnsureInvoiceTable(w http.ResponseWriter, r *http.Request) {
	databaseID, err := uuidParam(r, "databaseID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	table, err := s.service.EnsureInvoiceTable(r.Context(), databaseID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuidParam(r, "tableID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	table, err := s.service.GetTable(r.Context(), tableID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuidParam(r, "tableID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.service.DeleteTable(r.Context(), tableID); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListColumns(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuidParam(r, "tableID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	columns, err := s.service.Columns(r.Context(), tableID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, columns)
}

func (s *Server) handleAddColumn(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuidParam(r, "tableID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req engine.NewColumnInput
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	column, err := s.service.AddColumn(r.Context(), tableID, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, column)
}

func (s *Server) handleGetColumn(w http.ResponseWriter, r *http.Request) {
	columnID, err := uuidParam(r, "columnID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	column, err := s.service.GetColumn(r.Context(), columnID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, column)
}

func (s *Server) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	columnID, err := uuidParam(r, "columnID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.service.DeleteColumn(r.Context(), columnID); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type changeColumnTypeRequest struct {
	Type          engine.ColumnType `json:"type"`
	CustomOptions []string          `json:"customOptions"`
}

// handleChangeColumnType migrates every stored cell of a column to a new
// structural type. The migration is all-or-nothing.
func (s *Server) handleChangeColumnType(w http.ResponseWriter, r *http.Request) {
	columnID, err := uuidParam(r, "columnID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req changeColumnTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	report, err := s.service.ChangeColumnType(r.Context(), columnID, req.Type, req.CustomOptions)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleUniqueCheck reports whether a candidate value would collide with an
// existing cell in a unique column. This is advisory; the authoritative check
// runs inside the write transaction.
func (s *Server) handleUniqueCheck(w http.ResponseWriter, r *http.Request) {
	columnID, err := uuidParam(r, "columnID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	value := r.URL.Query().Get("value")
	var excludeRow *int64
	if raw := r.URL.Query().Get("excludeRow"); raw != "" {
		n, perr := parseInt64(raw)
		if perr != nil {
			badRequest(w, "invalid excludeRow: "+raw)
			return
		}
		excludeRow = &n
	}

	if err := s.service.ValidateUniqueConstraint(r.Context(), columnID, value, excludeRow); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"unique": true})
}
