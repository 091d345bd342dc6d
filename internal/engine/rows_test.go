package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// ----------------------------------------------------------------------------
// assembleCells Tests
// ----------------------------------------------------------------------------

func testColumns() []Column {
	return []Column{
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "invoice_number", Type: TypeString, Required: true, Unique: true},
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "total_amount", Type: TypeNumber},
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), Name: "notes", Type: TypeString},
	}
}

func TestAssembleCells_OneCellPerColumn(t *testing.T) {
	cols := testColumns()
	cells, err := assembleCells(cols, []CellInput{
		{ColumnID: cols[0].ID, Value: "INV-001"},
		{ColumnID: cols[1].ID, Value: float64(250)},
	})
	if err != nil {
		t.Fatalf("assembleCells error: %v", err)
	}

	if len(cells) != len(cols) {
		t.Fatalf("got %d cells, want %d", len(cells), len(cols))
	}
	// Cells follow column order; missing input becomes an empty cell.
	if cells[0].Value != "INV-001" {
		t.Errorf("cell 0 = %q", cells[0].Value)
	}
	if cells[1].Value != "250" {
		t.Errorf("cell 1 = %q", cells[1].Value)
	}
	if cells[2].Value != "" {
		t.Errorf("cell 2 = %q, want empty fill", cells[2].Value)
	}
}

func TestAssembleCells_DuplicateInputFirstWins(t *testing.T) {
	cols := testColumns()
	cells, err := assembleCells(cols, []CellInput{
		{ColumnID: cols[0].ID, Value: "INV-001"},
		{ColumnID: cols[0].ID, Value: "INV-002"},
	})
	if err != nil {
		t.Fatalf("assembleCells error: %v", err)
	}
	if cells[0].Value != "INV-001" {
		t.Errorf("cell 0 = %q, want first occurrence to win", cells[0].Value)
	}
}

func TestAssembleCells_UnknownColumnDropped(t *testing.T) {
	cols := testColumns()
	cells, err := assembleCells(cols, []CellInput{
		{ColumnID: cols[0].ID, Value: "INV-001"},
		{ColumnID: uuid.MustParse("00000000-0000-0000-0000-00000000ffff"), Value: "stray"},
	})
	if err != nil {
		t.Fatalf("assembleCells error: %v", err)
	}
	if len(cells) != len(cols) {
		t.Fatalf("got %d cells, want %d", len(cells), len(cols))
	}
	for _, c := range cells {
		if c.Value == "stray" {
			t.Error("unknown-column input leaked into the cell set")
		}
	}
}

func TestAssembleCells_MissingRequired(t *testing.T) {
	cols := testColumns()
	_, err := assembleCells(cols, []CellInput{
		{ColumnID: cols[1].ID, Value: float64(250)},
	})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if ve.Column != "invoice_number" {
		t.Errorf("Column = %q, want invoice_number", ve.Column)
	}
	if !strings.Contains(ve.Message, "Missing required column 'invoice_number' in row data") {
		t.Errorf("message = %q", ve.Message)
	}
}

func TestAssembleCells_RequiredEmptyAfterCoercion(t *testing.T) {
	cols := []Column{
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "qty", Type: TypeNumber, Required: true},
	}

	// A required column rejects invalid input directly during coercion.
	_, err := assembleCells(cols, []CellInput{
		{ColumnID: cols[0].ID, Value: "many"},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}

	// Explicit empty input on a required column fails the emptiness check.
	_, err = assembleCells(cols, []CellInput{
		{ColumnID: cols[0].ID, Value: ""},
	})
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if !strings.Contains(ve.Message, "Missing required column") {
		t.Errorf("message = %q", ve.Message)
	}
}

func TestAssembleCells_NoInputs(t *testing.T) {
	cols := []Column{
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "notes", Type: TypeString},
	}
	cells, err := assembleCells(cols, nil)
	if err != nil {
		t.Fatalf("assembleCells error: %v", err)
	}
	if len(cells) != 1 || cells[0].Value != "" {
		t.Errorf("cells = %+v, want one empty cell", cells)
	}
}

// ----------------------------------------------------------------------------
// prepareCellUpdate Tests
// ----------------------------------------------------------------------------

func TestPrepareCellUpdate(t *testing.T) {
	cols := testColumns()

	// The value is coerced against the column the cell belongs to, so a
	// number column rejects text even when the caller thinks otherwise.
	if _, err := prepareCellUpdate(cols[1], "not a number"); err == nil {
		t.Fatal("expected coercion error on number column")
	}
	stored, err := prepareCellUpdate(cols[1], "1,250.00")
	if err != nil {
		t.Fatalf("prepareCellUpdate error: %v", err)
	}
	if stored != "1250" {
		t.Errorf("stored = %q, want normalized number", stored)
	}

	// Clearing a required cell is refused.
	_, err = prepareCellUpdate(cols[0], "")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if ve.Column != "invoice_number" {
		t.Errorf("column = %q", ve.Column)
	}

	// Clearing an optional cell is fine.
	if stored, err := prepareCellUpdate(cols[2], ""); err != nil || stored != "" {
		t.Errorf("stored = %q, err = %v, want empty and nil", stored, err)
	}
}
