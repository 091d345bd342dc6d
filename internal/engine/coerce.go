package engine

// coerce.go turns raw row-input values into their text storage form.
//
// This is distinct from convert.go: conversion migrates stored values between
// declared types, while coercion validates fresh input against the column's
// current type. The policy per type is the same: an invalid value fails the
// row when the column is required and is stored as empty when it is not.

import (
	"fmt"
	"strconv"
	"strings"
)

// coerceCellValue returns the storage form of value for col.
// Empty input always coerces to the empty string; required-column emptiness
// is checked later, over the fully assembled cell set.
func coerceCellValue(col Column, value interface{}) (string, error) {
	if isEmptyValue(value) {
		return "", nil
	}

	switch col.Type {
	case TypeNumber:
		return coerceNumber(col, value)
	case TypeBoolean:
		return coerceBoolean(col, value)
	case TypeDate:
		return coerceDate(col, value)
	case TypeCustomArray:
		return coerceOption(col, value)
	default:
		// string, reference, and anything future-proofed: store as text.
		return valueString(value), nil
	}
}

func coerceNumber(col Column, value interface{}) (string, error) {
	if n, ok := valueFloat(value); ok {
		return formatNumber(n), nil
	}
	s := valueString(value)
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.Join(strings.Fields(cleaned), "")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		if col.Required {
			return "", &ValidationError{
				Column:  col.Name,
				Message: fmt.Sprintf("Column '%s' requires a valid number", col.Name),
			}
		}
		return "", nil
	}
	return formatNumber(n), nil
}

func coerceBoolean(col Column, value interface{}) (string, error) {
	switch x := value.(type) {
	case bool:
		return strconv.FormatBool(x), nil
	case float64:
		if x == 1 {
			return "true", nil
		}
		if x == 0 {
			return "false", nil
		}
	case int:
		if x == 1 {
			return "true", nil
		}
		if x == 0 {
			return "false", nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1":
			return "true", nil
		case "false", "0":
			return "false", nil
		}
	}
	if col.Required {
		return "", &ValidationError{
			Column:  col.Name,
			Message: fmt.Sprintf("Column '%s' requires a valid boolean", col.Name),
		}
	}
	return "", nil
}

func coerceDate(col Column, value interface{}) (string, error) {
	t, ok := parseDate(valueString(value))
	if !ok {
		if col.Required {
			return "", &ValidationError{
				Column:  col.Name,
				Message: fmt.Sprintf("Column '%s' requires a valid date", col.Name),
			}
		}
		return "", nil
	}
	return isoDate(t), nil
}

// coerceOption validates membership in the column's allowed option list.
// A customArray column with no configured options is misconfigured and can
// never accept a value.
func coerceOption(col Column, value interface{}) (string, error) {
	s := strings.TrimSpace(valueString(value))
	if len(col.CustomOptions) == 0 {
		if col.Required {
			return "", &ValidationError{
				Column:  col.Name,
				Message: fmt.Sprintf("Column '%s' has no configured options", col.Name),
			}
		}
		return "", nil
	}
	for _, opt := range col.CustomOptions {
		if opt == s {
			return s, nil
		}
	}
	if col.Required {
		return "", &ValidationError{
			Column:  col.Name,
			Message: fmt.Sprintf("Column '%s' requires one of: %s", col.Name, strings.Join(col.CustomOptions, ", ")),
		}
	}
	return "", nil
}
