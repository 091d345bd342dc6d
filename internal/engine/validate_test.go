package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableInput_Validate(t *testing.T) {
	valid := NewTableInput{DatabaseID: uuid.New(), Name: "products"}
	require.NoError(t, valid.Validate())

	assert.Error(t, NewTableInput{Name: "products"}.Validate(), "missing database id")
	assert.Error(t, NewTableInput{DatabaseID: uuid.Nil, Name: "products"}.Validate(), "explicit zero database id")
	assert.Error(t, NewTableInput{DatabaseID: uuid.New()}.Validate(), "missing name")
	assert.Error(t, NewTableInput{DatabaseID: uuid.New(), Name: " padded "}.Validate(), "surrounding whitespace")
}

func TestNewColumnInput_Validate(t *testing.T) {
	refTable := uuid.New()

	tests := []struct {
		name    string
		in      NewColumnInput
		wantErr bool
	}{
		{
			name: "plain string column",
			in:   NewColumnInput{Name: "notes", Type: TypeString},
		},
		{
			name: "option column with options",
			in:   NewColumnInput{Name: "status", Type: TypeCustomArray, CustomOptions: []string{"draft", "paid"}},
		},
		{
			name:    "option column without options",
			in:      NewColumnInput{Name: "status", Type: TypeCustomArray},
			wantErr: true,
		},
		{
			name:    "options on non-option column",
			in:      NewColumnInput{Name: "notes", Type: TypeString, CustomOptions: []string{"x"}},
			wantErr: true,
		},
		{
			name: "reference column with target",
			in:   NewColumnInput{Name: "customer", Type: TypeReference, ReferenceTableID: &refTable},
		},
		{
			name:    "reference column without target",
			in:      NewColumnInput{Name: "customer", Type: TypeReference},
			wantErr: true,
		},
		{
			name:    "unknown type",
			in:      NewColumnInput{Name: "x", Type: ColumnType("blob")},
			wantErr: true,
		},
		{
			name:    "missing name",
			in:      NewColumnInput{Type: TypeString},
			wantErr: true,
		},
		{
			name:    "negative order",
			in:      NewColumnInput{Name: "notes", Type: TypeString, Order: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
