package engine

// error_messages.go defines user-friendly error messages with codes for
// support reference. When users encounter errors, they can quote the error
// code to support staff for faster diagnosis.
//
// Error codes are grouped by category:
//
//   - DB001-DB007: database errors (duplicates, constraints, connections)
//   - VAL001-VAL007: validation errors (formats, missing columns, options)
//   - CNV001-CNV002: type conversion errors
//   - SEQ001-SEQ002: invoice numbering errors
//   - TBL001-TBL004: schema catalog errors
//   - RATE001: rate limiting
//   - ERR000: fallback for unmatched errors

import (
	"fmt"
	"strings"
)

// UserMessage is a user-friendly error with a support code and a suggested
// action. It is what request handlers render to clients.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// errorPattern maps a substring of a technical error to a user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is checked in order; the first match wins.
// Patterns are lowercase because matching is case-insensitive.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Database Constraint Errors (DB001-DB003)
	// =========================================================================
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Refresh and try again",
			Code:    "DB001",
		},
	},
	{
		pattern: "requires unique values",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value for the unique column",
			Code:    "DB002",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "This value must be unique but already exists",
			Action:  "Choose a different value for the unique column",
			Code:    "DB002",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Ensure the referenced row is created first",
			Code:    "DB003",
		},
	},

	// =========================================================================
	// Database Connection Errors (DB004-DB007)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL007)
	// =========================================================================
	{
		pattern: "valid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024",
			Code:    "VAL001",
		},
	},
	{
		pattern: "valid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Remove separators and use standard decimal format",
			Code:    "VAL002",
		},
	},
	{
		pattern: "valid boolean",
		msg: UserMessage{
			Message: "Invalid boolean value detected",
			Action:  "Use true/false, yes/no, or 1/0",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required column has no value",
			Action:  "Provide a value for every required column",
			Code:    "VAL004",
		},
	},
	{
		pattern: "requires one of",
		msg: UserMessage{
			Message: "Value is not in the allowed list",
			Action:  "Check the allowed options for this column",
			Code:    "VAL006",
		},
	},
	{
		pattern: "no configured options",
		msg: UserMessage{
			Message: "The column has no allowed options configured",
			Action:  "Configure the option list before entering values",
			Code:    "VAL007",
		},
	},

	// =========================================================================
	// Conversion Errors (CNV001-CNV002)
	// =========================================================================
	{
		pattern: "no conversion available",
		msg: UserMessage{
			Message: "This type change is not supported",
			Action:  "Convert through an intermediate type or keep the current type",
			Code:    "CNV001",
		},
	},
	{
		pattern: "cannot convert",
		msg: UserMessage{
			Message: "Some values could not be converted to the new type",
			Action:  "Fix or clear the reported values, then retry the type change",
			Code:    "CNV002",
		},
	},

	// =========================================================================
	// Sequence Errors (SEQ001-SEQ002)
	// =========================================================================
	{
		pattern: "could not lock series counter",
		msg: UserMessage{
			Message: "Invoice numbering is busy",
			Action:  "Please retry the invoice creation",
			Code:    "SEQ001",
		},
	},
	{
		pattern: "invalid numbering config",
		msg: UserMessage{
			Message: "The invoice numbering configuration is invalid",
			Action:  "Review the series, separator, and start number settings",
			Code:    "SEQ002",
		},
	},

	// =========================================================================
	// Schema Catalog Errors (TBL001-TBL004)
	// =========================================================================
	{
		pattern: "table not found",
		msg: UserMessage{
			Message: "Table not found",
			Action:  "Verify the table id is correct",
			Code:    "TBL001",
		},
	},
	{
		pattern: "column not found",
		msg: UserMessage{
			Message: "Column not found",
			Action:  "Verify the column id is correct",
			Code:    "TBL002",
		},
	},
	{
		pattern: "protected table",
		msg: UserMessage{
			Message: "This table is managed by the platform",
			Action:  "Protected tables cannot be deleted",
			Code:    "TBL003",
		},
	},
	{
		pattern: "locked column",
		msg: UserMessage{
			Message: "This column is managed by the platform",
			Action:  "Locked columns cannot be deleted",
			Code:    "TBL004",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// Support staff should check application logs for the original technical
// error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown
// to users as-is, rather than hidden behind the generic fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
