package engine

// provision.go creates the platform-managed invoice tables inside a tenant
// database. Their columns are locked so tenant schema edits cannot break
// invoice generation.

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rykyfilipe/multi-tenant-platform-sub004/internal/database"
)

// invoiceColumns is the platform-managed column set of the invoices table.
var invoiceColumns = []database.CreateColumnParams{
	{Name: "invoice_number", ColumnType: string(TypeString), Required: true, IsUnique: true, IsPrimary: true, Ord: 0, IsLocked: true},
	{Name: "date", ColumnType: string(TypeDate), Required: true, Ord: 1, IsLocked: true},
	{Name: "customer_name", ColumnType: string(TypeString), Required: true, Ord: 2, IsLocked: true},
	{Name: "total_amount", ColumnType: string(TypeNumber), Required: true, Ord: 3, IsLocked: true},
	{Name: "status", ColumnType: string(TypeCustomArray), Ord: 4, IsLocked: true},
	{Name: "notes", ColumnType: string(TypeString), Ord: 5},
}

// invoiceSemanticTags labels the platform columns for business-logic lookups.
// Semantic tags are orthogonal to structural types on purpose: conversion
// logic never branches on them.
var invoiceSemanticTags = map[string]string{
	"invoice_number": "invoice_number",
	"date":           "invoice_date",
	"customer_name":  "customer_name",
	"total_amount":   "invoice_total",
	"status":         "invoice_status",
}

var invoiceStatusOptions = []string{"draft", "issued", "paid", "overdue", "cancelled"}

// EnsureInvoiceTable creates the protected invoices table for a database if
// it does not exist yet, and returns it either way.
func (s *Service) EnsureInvoiceTable(ctx context.Context, databaseID uuid.UUID) (*Table, error) {
	existing, err := s.ListTables(ctx, databaseID)
	if err != nil {
		return nil, err
	}
	for _, t := range existing {
		if t.ProtectedKind == ProtectedInvoices {
			return &t, nil
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin provisioning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)
	t, err := q.CreateTable(ctx, database.CreateTableParams{
		ID:            database.ToPgUUID(uuid.New()),
		DatabaseID:    database.ToPgUUID(databaseID),
		Name:          "invoices",
		Description:   database.ToPgText("Platform-managed invoice register"),
		IsProtected:   true,
		ProtectedKind: database.ToPgText(string(ProtectedInvoices)),
	})
	if err != nil {
		return nil, fmt.Errorf("create invoices table: %w", err)
	}

	for _, col := range invoiceColumns {
		col.ID = database.ToPgUUID(uuid.New())
		col.TableID = t.ID
		col.SemanticTag = database.ToPgText(invoiceSemanticTags[col.Name])
		if col.Name == "status" {
			col.CustomOptions = invoiceStatusOptions
		}
		if _, err := q.CreateColumn(ctx, col); err != nil {
			return nil, fmt.Errorf("create invoice column %q: %w", col.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit provisioning: %w", err)
	}

	table := tableFromDB(t)
	return &table, nil
}
