package engine

// convert.go implements type migration for stored cell values.
//
// When a tenant changes a column's structural type, every existing cell value
// has to be reinterpreted. Conversions handle the messy reality of
// user-entered data:
//   - Multiple date formats (US, EU, ISO, etc.)
//   - Thousand separators and stray whitespace in numbers
//   - Various boolean representations (yes/no, true/false, 1/0, da/nu)
//   - Reference ids entered as text
//
// Each (from, to) pair is a pure function in a dispatch table. A missing
// entry means the pair is unsupported and the conversion fails up front.

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ConversionResult is the outcome of a single value conversion.
// The shape is part of the wire contract with the schema editor, which shows
// warnings and data-loss flags before the tenant commits a type change.
type ConversionResult struct {
	Success  bool        `json:"success"`
	NewValue interface{} `json:"newValue"`
	DataLoss bool        `json:"dataLoss"`
	Warning  string      `json:"warning,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// conversionKey is an ordered (from, to) structural type pair.
type conversionKey struct {
	From ColumnType
	To   ColumnType
}

type convertFunc func(value interface{}) ConversionResult

// boolVocabulary names the accepted boolean spellings in error messages.
const boolVocabulary = "true/false, yes/no, 1/0, da/nu, y/n, t/f"

var (
	trueWords  = map[string]bool{"true": true, "1": true, "yes": true, "da": true, "y": true, "t": true}
	falseWords = map[string]bool{"false": true, "0": true, "no": true, "nu": true, "n": true, "f": true, "": true}
)

// conversions is the dispatch table. Identity pairs and empty inputs are
// handled by AttemptConversion before the lookup, so entries only cover
// genuine cross-type migrations.
var conversions = map[conversionKey]convertFunc{
	{TypeString, TypeNumber}:      convertStringToNumber,
	{TypeString, TypeBoolean}:     convertStringToBoolean,
	{TypeString, TypeDate}:        convertStringToDate,
	{TypeString, TypeReference}:   convertToReference,
	{TypeString, TypeCustomArray}: convertStringToCustomArray,

	{TypeNumber, TypeString}:    convertNumberToString,
	{TypeNumber, TypeBoolean}:   convertNumberToBoolean,
	{TypeNumber, TypeDate}:      convertNumberToDate,
	{TypeNumber, TypeReference}: convertToReference,

	{TypeBoolean, TypeString}: convertBooleanToString,
	{TypeBoolean, TypeNumber}: convertBooleanToNumber,

	{TypeDate, TypeString}: convertDateToString,
	{TypeDate, TypeNumber}: convertDateToNumber,

	{TypeReference, TypeString}: convertReferenceToString,
	{TypeReference, TypeNumber}: convertReferenceToNumber,

	{TypeCustomArray, TypeString}: convertCustomArrayToString,
}

// safePairs is the lossless subset: conversions that can never reject a value
// and never lose information.
var safePairs = map[conversionKey]bool{
	{TypeNumber, TypeString}:  true,
	{TypeBoolean, TypeString}: true,
	{TypeBoolean, TypeNumber}: true,
	{TypeDate, TypeString}:    true,
}

// AttemptConversion converts value from one structural type to another.
// Empty input always succeeds with a nil value: absence of data survives any
// type change. Identity conversions return the value unchanged.
func AttemptConversion(value interface{}, from, to ColumnType) ConversionResult {
	if isEmptyValue(value) {
		return ConversionResult{Success: true, NewValue: nil}
	}
	if from == to {
		return ConversionResult{Success: true, NewValue: value}
	}
	fn, ok := conversions[conversionKey{from, to}]
	if !ok {
		return ConversionResult{
			Error: fmt.Sprintf("No conversion available from %s to %s", from, to),
		}
	}
	return fn(value)
}

// IsConversionSafe reports whether converting from one type to the other can
// never fail or lose data. The schema editor skips the confirmation dialog
// for safe pairs.
func IsConversionSafe(from, to ColumnType) bool {
	if from == to {
		return true
	}
	return safePairs[conversionKey{from, to}]
}

// conversionDescriptions are UI hint strings, not behavior-bearing.
var conversionDescriptions = map[conversionKey]string{
	{TypeString, TypeNumber}:      "Parses the text as a number. Thousands separators and whitespace are removed first.",
	{TypeString, TypeBoolean}:     "Interprets the text as true/false. Accepts " + boolVocabulary + ".",
	{TypeString, TypeDate}:        "Parses the text as a calendar date and stores it in ISO-8601 form.",
	{TypeString, TypeReference}:   "Interprets the text as a row id. The referenced row is not checked here.",
	{TypeString, TypeCustomArray}: "Splits the text on commas into individual option values.",
	{TypeNumber, TypeString}:      "Formats the number as text. Always succeeds.",
	{TypeNumber, TypeBoolean}:     "Maps 0 to false and any other number to true. Values other than 0 and 1 lose precision.",
	{TypeNumber, TypeDate}:        "Interprets the number as a millisecond timestamp.",
	{TypeNumber, TypeReference}:   "Interprets the number as a row id. The referenced row is not checked here.",
	{TypeBoolean, TypeString}:     "Writes the value as \"true\" or \"false\". Always succeeds.",
	{TypeBoolean, TypeNumber}:     "Maps true to 1 and false to 0. Always succeeds.",
	{TypeDate, TypeString}:        "Writes the date in ISO-8601 form. Always succeeds.",
	{TypeDate, TypeNumber}:        "Converts the date to epoch milliseconds.",
	{TypeReference, TypeString}:   "Joins the referenced row ids with commas. The link itself is lost.",
	{TypeReference, TypeNumber}:   "Keeps a single referenced row id as a number. Fails for multiple references.",
	{TypeCustomArray, TypeString}: "Joins the selected options with commas.",
}

// ConversionDescription returns a static human-readable explanation of what a
// conversion does, for display in the schema editor.
func ConversionDescription(from, to ColumnType) string {
	if from == to {
		return "No change needed."
	}
	if desc, ok := conversionDescriptions[conversionKey{from, to}]; ok {
		return desc
	}
	return fmt.Sprintf("No conversion available from %s to %s", from, to)
}

// isEmptyValue reports whether v carries no data at all.
func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// ----------------------------------------------------------------------------
// From string
// ----------------------------------------------------------------------------

func convertStringToNumber(value interface{}) ConversionResult {
	s := valueString(value)
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.Join(strings.Fields(cleaned), "")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return ConversionResult{Error: fmt.Sprintf("Cannot convert %q to a number", s)}
	}
	return ConversionResult{Success: true, NewValue: n}
}

func convertStringToBoolean(value interface{}) ConversionResult {
	s := strings.ToLower(strings.TrimSpace(valueString(value)))
	if trueWords[s] {
		return ConversionResult{Success: true, NewValue: true}
	}
	if falseWords[s] {
		return ConversionResult{Success: true, NewValue: false}
	}
	return ConversionResult{
		Error: fmt.Sprintf("Cannot convert %q to a boolean; accepted values are %s", valueString(value), boolVocabulary),
	}
}

func convertStringToDate(value interface{}) ConversionResult {
	s := strings.TrimSpace(valueString(value))
	t, ok := parseDate(s)
	if !ok {
		return ConversionResult{Error: fmt.Sprintf("Cannot convert %q to a date", s)}
	}
	return ConversionResult{Success: true, NewValue: isoDate(t)}
}

func convertStringToCustomArray(value interface{}) ConversionResult {
	parts := strings.Split(valueString(value), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return ConversionResult{Success: true, NewValue: out}
}

// ----------------------------------------------------------------------------
// From number
// ----------------------------------------------------------------------------

func convertNumberToString(value interface{}) ConversionResult {
	n, ok := valueFloat(value)
	if !ok {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a number", value)}
	}
	return ConversionResult{Success: true, NewValue: formatNumber(n)}
}

func convertNumberToBoolean(value interface{}) ConversionResult {
	n, ok := valueFloat(value)
	if !ok {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a number", value)}
	}
	res := ConversionResult{Success: true, NewValue: n != 0}
	if n != 0 && n != 1 {
		res.DataLoss = true
		res.Warning = fmt.Sprintf("Number %s is neither 0 nor 1 and was collapsed to a boolean", formatNumber(n))
	}
	return res
}

func convertNumberToDate(value interface{}) ConversionResult {
	n, ok := valueFloat(value)
	if !ok {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a number", value)}
	}
	t := time.UnixMilli(int64(n)).UTC()
	return ConversionResult{
		Success:  true,
		NewValue: isoDate(t),
		Warning:  fmt.Sprintf("Number %s was interpreted as a millisecond timestamp", formatNumber(n)),
	}
}

// ----------------------------------------------------------------------------
// From boolean
// ----------------------------------------------------------------------------

func convertBooleanToString(value interface{}) ConversionResult {
	b, ok := valueBool(value)
	if !ok {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a boolean", value)}
	}
	return ConversionResult{Success: true, NewValue: strconv.FormatBool(b)}
}

func convertBooleanToNumber(value interface{}) ConversionResult {
	b, ok := valueBool(value)
	if !ok {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a boolean", value)}
	}
	n := float64(0)
	if b {
		n = 1
	}
	return ConversionResult{Success: true, NewValue: n}
}

// ----------------------------------------------------------------------------
// From date
// ----------------------------------------------------------------------------

func convertDateToString(value interface{}) ConversionResult {
	t, ok := parseDate(strings.TrimSpace(valueString(value)))
	if !ok {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a valid date", value)}
	}
	return ConversionResult{Success: true, NewValue: isoDate(t)}
}

func convertDateToNumber(value interface{}) ConversionResult {
	t, ok := parseDate(strings.TrimSpace(valueString(value)))
	if !ok {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a valid date", value)}
	}
	return ConversionResult{
		Success:  true,
		NewValue: float64(t.UnixMilli()),
		Warning:  "Date was converted to epoch milliseconds",
	}
}

// ----------------------------------------------------------------------------
// From reference
// ----------------------------------------------------------------------------

func convertReferenceToString(value interface{}) ConversionResult {
	ids := referenceIDs(value)
	if len(ids) == 0 {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a reference", value)}
	}
	return ConversionResult{
		Success:  true,
		NewValue: strings.Join(ids, ", "),
		DataLoss: true,
		Warning:  "Reference links were flattened to text",
	}
}

func convertReferenceToNumber(value interface{}) ConversionResult {
	ids := referenceIDs(value)
	if len(ids) == 0 {
		return ConversionResult{Error: fmt.Sprintf("Value %v is not a reference", value)}
	}
	if len(ids) > 1 {
		return ConversionResult{Error: "Cannot convert multiple references to a single number"}
	}
	n, err := strconv.ParseFloat(ids[0], 64)
	if err != nil {
		return ConversionResult{Error: fmt.Sprintf("Reference id %q is not numeric", ids[0])}
	}
	return ConversionResult{Success: true, NewValue: n}
}

// ----------------------------------------------------------------------------
// From customArray
// ----------------------------------------------------------------------------

func convertCustomArrayToString(value interface{}) ConversionResult {
	items := valueStrings(value)
	return ConversionResult{Success: true, NewValue: strings.Join(items, ", ")}
}

// ----------------------------------------------------------------------------
// To reference (shared by string and number sources)
// ----------------------------------------------------------------------------

// convertToReference accepts only positive integer ids. Referential integrity
// is not checked at this layer.
func convertToReference(value interface{}) ConversionResult {
	n, ok := valueFloat(value)
	if !ok {
		s := strings.TrimSpace(valueString(value))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ConversionResult{Error: fmt.Sprintf("Cannot convert %q to a row reference", s)}
		}
		n = parsed
	}
	if n <= 0 || n != math.Trunc(n) {
		return ConversionResult{Error: fmt.Sprintf("Row references must be positive integers, got %s", formatNumber(n))}
	}
	return ConversionResult{
		Success:  true,
		NewValue: n,
		Warning:  "Verify that the referenced row exists; references are not validated during conversion",
	}
}

// ----------------------------------------------------------------------------
// Value helpers
// ----------------------------------------------------------------------------

// valueString renders any scalar as its text storage form.
func valueString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(v)
	}
}

// valueFloat extracts a numeric value without string parsing.
func valueFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

// valueBool extracts a boolean from native or stored text form.
func valueBool(v interface{}) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// valueStrings renders an array value as a string slice.
func valueStrings(v interface{}) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, valueString(item))
		}
		return out
	case string:
		if x == "" {
			return nil
		}
		return []string{x}
	default:
		return []string{valueString(v)}
	}
}

// referenceIDs extracts the id list of a stored reference value.
// Stored form is a single id or a comma-separated id list.
func referenceIDs(v interface{}) []string {
	switch x := v.(type) {
	case []interface{}, []string:
		return valueStrings(x)
	case float64, int, int64:
		return []string{valueString(x)}
	case string:
		parts := strings.Split(x, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return nil
	}
}

// formatNumber renders a float without a trailing ".0" for whole values.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
