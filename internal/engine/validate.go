package engine

// validate.go checks user-supplied schema definitions before they reach the
// catalog. Structural rules only; value-level validation lives in coerce.go.

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// nameRe keeps table and column names presentable: no leading/trailing
// whitespace, no control characters.
var nameRe = regexp.MustCompile(`^\S(.*\S)?$`)

// seriesRe restricts series names to the characters that survive inside a
// generated invoice number.
var seriesRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Validate checks a table definition request.
func (in NewTableInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.DatabaseID, validation.By(nonZeroUUID)),
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, 64), validation.Match(nameRe)),
		validation.Field(&in.Description, validation.RuneLength(0, 500)),
	)
}

// Validate checks a column definition request.
func (in NewColumnInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, 64), validation.Match(nameRe)),
		validation.Field(&in.Type, validation.Required, validation.In(columnTypeValues()...)),
		validation.Field(&in.CustomOptions,
			validation.When(in.Type == TypeCustomArray, validation.Required.Error("customArray columns need at least one option")),
			validation.When(in.Type != TypeCustomArray, validation.Empty.Error("options are only valid on customArray columns")),
		),
		validation.Field(&in.ReferenceTableID,
			validation.When(in.Type == TypeReference, validation.NotNil.Error("reference columns need a target table")),
		),
		validation.Field(&in.Order, validation.Min(0)),
	)
}

// Validate checks a numbering configuration. Zero values are acceptable
// everywhere; defaults fill them in later.
func (c NumberingConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Series, validation.RuneLength(0, 32), validation.Match(seriesRe)),
		validation.Field(&c.Prefix, validation.RuneLength(0, 16)),
		validation.Field(&c.Suffix, validation.RuneLength(0, 16)),
		validation.Field(&c.StartNumber, validation.Min(int64(0))),
		validation.Field(&c.Separator, validation.RuneLength(0, 3)),
	)
}

// nonZeroUUID rejects the zero uuid. Ozzo's Required cannot: a uuid is a
// [16]byte array, and an all-zero array still counts as set.
func nonZeroUUID(v interface{}) error {
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return errors.New("cannot be blank")
	}
	return nil
}

func columnTypeValues() []interface{} {
	out := make([]interface{}, len(ColumnTypes))
	for i, t := range ColumnTypes {
		out[i] = t
	}
	return out
}
