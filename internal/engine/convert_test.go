package engine

import (
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// AttemptConversion Tests
// ----------------------------------------------------------------------------

func TestAttemptConversion_EmptyValue(t *testing.T) {
	// Empty input survives any type change as nil.
	for _, from := range ColumnTypes {
		for _, to := range ColumnTypes {
			for _, input := range []interface{}{nil, ""} {
				res := AttemptConversion(input, from, to)
				if !res.Success {
					t.Errorf("AttemptConversion(%v, %s, %s) failed: %s", input, from, to, res.Error)
				}
				if res.NewValue != nil {
					t.Errorf("AttemptConversion(%v, %s, %s) = %v, want nil", input, from, to, res.NewValue)
				}
				if res.DataLoss {
					t.Errorf("AttemptConversion(%v, %s, %s) flagged data loss for empty input", input, from, to)
				}
			}
		}
	}
}

func TestAttemptConversion_Identity(t *testing.T) {
	res := AttemptConversion("hello", TypeString, TypeString)
	if !res.Success || res.NewValue != "hello" {
		t.Errorf("identity conversion = %+v, want unchanged value", res)
	}
}

func TestAttemptConversion_UnsupportedPair(t *testing.T) {
	res := AttemptConversion("2024-01-01", TypeDate, TypeBoolean)
	if res.Success {
		t.Fatal("date to boolean should be unsupported")
	}
	if !strings.Contains(res.Error, "No conversion available from date to boolean") {
		t.Errorf("error = %q, want unsupported-pair message", res.Error)
	}
}

func TestAttemptConversion_Deterministic(t *testing.T) {
	// Same input, same result, no matter how often.
	first := AttemptConversion("1,234.5", TypeString, TypeNumber)
	for i := 0; i < 3; i++ {
		again := AttemptConversion("1,234.5", TypeString, TypeNumber)
		if again != first {
			t.Fatalf("conversion not deterministic: %+v vs %+v", first, again)
		}
	}
}

// ----------------------------------------------------------------------------
// String Source Tests
// ----------------------------------------------------------------------------

func TestStringToNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain integer", input: "42", want: 42},
		{name: "decimal", input: "3.14", want: 3.14},
		{name: "negative", input: "-7", want: -7},
		{name: "thousands separators", input: "1,234,567.89", want: 1234567.89},
		{name: "internal whitespace", input: " 12 345 ", want: 12345},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "infinity rejected", input: "Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AttemptConversion(tt.input, TypeString, TypeNumber)
			if tt.wantErr {
				if res.Success {
					t.Fatalf("AttemptConversion(%q) succeeded, want error", tt.input)
				}
				return
			}
			if !res.Success {
				t.Fatalf("AttemptConversion(%q) error: %s", tt.input, res.Error)
			}
			if res.NewValue != tt.want {
				t.Errorf("AttemptConversion(%q) = %v, want %v", tt.input, res.NewValue, tt.want)
			}
		})
	}
}

func TestStringToBoolean(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{name: "true word", input: "true", want: true},
		{name: "yes", input: "yes", want: true},
		{name: "numeric one", input: "1", want: true},
		{name: "romanian da", input: "da", want: true},
		{name: "single letter t", input: "t", want: true},
		{name: "false word", input: "false", want: false},
		{name: "no", input: "no", want: false},
		{name: "numeric zero", input: "0", want: false},
		{name: "romanian nu", input: "nu", want: false},
		{name: "uppercase trimmed", input: "  TRUE  ", want: true},
		{name: "unknown word", input: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AttemptConversion(tt.input, TypeString, TypeBoolean)
			if tt.wantErr {
				if res.Success {
					t.Fatalf("AttemptConversion(%q) succeeded, want error", tt.input)
				}
				// The rejection names the accepted vocabulary.
				if !strings.Contains(res.Error, "yes/no, 1/0") {
					t.Errorf("error = %q, should list accepted spellings", res.Error)
				}
				return
			}
			if !res.Success {
				t.Fatalf("AttemptConversion(%q) error: %s", tt.input, res.Error)
			}
			if res.NewValue != tt.want {
				t.Errorf("AttemptConversion(%q) = %v, want %v", tt.input, res.NewValue, tt.want)
			}
		})
	}
}

func TestStringToDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso date", input: "2024-03-15", want: "2024-03-15T00:00:00Z"},
		{name: "us slashes", input: "3/15/2024", want: "2024-03-15T00:00:00Z"},
		{name: "month name", input: "Mar 15, 2024", want: "2024-03-15T00:00:00Z"},
		{name: "rfc3339 passthrough", input: "2024-03-15T10:30:00Z", want: "2024-03-15T10:30:00Z"},
		{name: "garbage", input: "not a date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AttemptConversion(tt.input, TypeString, TypeDate)
			if tt.wantErr {
				if res.Success {
					t.Fatalf("AttemptConversion(%q) succeeded, want error", tt.input)
				}
				return
			}
			if !res.Success {
				t.Fatalf("AttemptConversion(%q) error: %s", tt.input, res.Error)
			}
			if res.NewValue != tt.want {
				t.Errorf("AttemptConversion(%q) = %v, want %v", tt.input, res.NewValue, tt.want)
			}
		})
	}
}

func TestStringToCustomArray(t *testing.T) {
	res := AttemptConversion("red, blue , green,", TypeString, TypeCustomArray)
	if !res.Success {
		t.Fatalf("conversion failed: %s", res.Error)
	}
	got, ok := res.NewValue.([]string)
	if !ok {
		t.Fatalf("NewValue type = %T, want []string", res.NewValue)
	}
	want := []string{"red", "blue", "green"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// ----------------------------------------------------------------------------
// Number Source Tests
// ----------------------------------------------------------------------------

func TestNumberToString(t *testing.T) {
	res := AttemptConversion(float64(1234.5), TypeNumber, TypeString)
	if !res.Success || res.NewValue != "1234.5" {
		t.Errorf("number to string = %+v, want 1234.5", res)
	}

	// Whole values drop the fractional part entirely.
	res = AttemptConversion(float64(42), TypeNumber, TypeString)
	if !res.Success || res.NewValue != "42" {
		t.Errorf("whole number to string = %+v, want 42", res)
	}
}

func TestNumberToBoolean(t *testing.T) {
	tests := []struct {
		name         string
		input        float64
		want         bool
		wantDataLoss bool
	}{
		{name: "zero is false", input: 0, want: false},
		{name: "one is true", input: 1, want: true},
		{name: "other value collapses with data loss", input: 7, want: true, wantDataLoss: true},
		{name: "negative collapses with data loss", input: -3, want: true, wantDataLoss: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AttemptConversion(tt.input, TypeNumber, TypeBoolean)
			if !res.Success {
				t.Fatalf("conversion failed: %s", res.Error)
			}
			if res.NewValue != tt.want {
				t.Errorf("NewValue = %v, want %v", res.NewValue, tt.want)
			}
			if res.DataLoss != tt.wantDataLoss {
				t.Errorf("DataLoss = %v, want %v", res.DataLoss, tt.wantDataLoss)
			}
			if tt.wantDataLoss && res.Warning == "" {
				t.Error("lossy conversion should carry a warning")
			}
		})
	}
}

func TestNumberToDate(t *testing.T) {
	// 2021-01-01T00:00:00Z in epoch milliseconds.
	res := AttemptConversion(float64(1609459200000), TypeNumber, TypeDate)
	if !res.Success {
		t.Fatalf("conversion failed: %s", res.Error)
	}
	if res.NewValue != "2021-01-01T00:00:00Z" {
		t.Errorf("NewValue = %v, want 2021-01-01T00:00:00Z", res.NewValue)
	}
	if !strings.Contains(res.Warning, "millisecond timestamp") {
		t.Errorf("warning = %q, should mention millisecond interpretation", res.Warning)
	}
}

// ----------------------------------------------------------------------------
// Boolean and Date Source Tests
// ----------------------------------------------------------------------------

func TestBooleanConversions(t *testing.T) {
	res := AttemptConversion(true, TypeBoolean, TypeString)
	if !res.Success || res.NewValue != "true" {
		t.Errorf("boolean to string = %+v, want \"true\"", res)
	}

	res = AttemptConversion(false, TypeBoolean, TypeNumber)
	if !res.Success || res.NewValue != float64(0) {
		t.Errorf("boolean to number = %+v, want 0", res)
	}

	// Stored text form converts the same way as native booleans.
	res = AttemptConversion("true", TypeBoolean, TypeNumber)
	if !res.Success || res.NewValue != float64(1) {
		t.Errorf("stored boolean to number = %+v, want 1", res)
	}
}

func TestDateToNumber(t *testing.T) {
	res := AttemptConversion("2021-01-01T00:00:00Z", TypeDate, TypeNumber)
	if !res.Success {
		t.Fatalf("conversion failed: %s", res.Error)
	}
	if res.NewValue != float64(1609459200000) {
		t.Errorf("NewValue = %v, want 1609459200000", res.NewValue)
	}
}

// ----------------------------------------------------------------------------
// Reference Tests
// ----------------------------------------------------------------------------

func TestToReference(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		from    ColumnType
		wantErr bool
	}{
		{name: "positive integer number", input: float64(42), from: TypeNumber},
		{name: "positive integer text", input: "42", from: TypeString},
		{name: "zero rejected", input: float64(0), from: TypeNumber, wantErr: true},
		{name: "negative rejected", input: float64(-5), from: TypeNumber, wantErr: true},
		{name: "fractional rejected", input: float64(3.5), from: TypeNumber, wantErr: true},
		{name: "non-numeric text rejected", input: "abc", from: TypeString, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AttemptConversion(tt.input, tt.from, TypeReference)
			if tt.wantErr {
				if res.Success {
					t.Fatalf("AttemptConversion(%v) succeeded, want error", tt.input)
				}
				return
			}
			if !res.Success {
				t.Fatalf("AttemptConversion(%v) error: %s", tt.input, res.Error)
			}
			// A reference is accepted but never verified at this layer.
			if !strings.Contains(res.Warning, "referenced row exists") {
				t.Errorf("warning = %q, should advise verifying the target row", res.Warning)
			}
		})
	}
}

func TestReferenceToString(t *testing.T) {
	res := AttemptConversion("3, 17, 42", TypeReference, TypeString)
	if !res.Success {
		t.Fatalf("conversion failed: %s", res.Error)
	}
	if res.NewValue != "3, 17, 42" {
		t.Errorf("NewValue = %v, want joined id list", res.NewValue)
	}
	if !res.DataLoss {
		t.Error("flattening references should flag data loss")
	}
}

func TestReferenceToNumber(t *testing.T) {
	res := AttemptConversion("42", TypeReference, TypeNumber)
	if !res.Success || res.NewValue != float64(42) {
		t.Errorf("single reference to number = %+v, want 42", res)
	}

	res = AttemptConversion("3, 17", TypeReference, TypeNumber)
	if res.Success {
		t.Error("multiple references cannot become a single number")
	}
}

// ----------------------------------------------------------------------------
// Safety Matrix Tests
// ----------------------------------------------------------------------------

func TestIsConversionSafe(t *testing.T) {
	safe := []conversionKey{
		{TypeNumber, TypeString},
		{TypeBoolean, TypeString},
		{TypeBoolean, TypeNumber},
		{TypeDate, TypeString},
	}
	safeSet := make(map[conversionKey]bool, len(safe))
	for _, k := range safe {
		safeSet[k] = true
	}

	for _, from := range ColumnTypes {
		for _, to := range ColumnTypes {
			want := from == to || safeSet[conversionKey{from, to}]
			if got := IsConversionSafe(from, to); got != want {
				t.Errorf("IsConversionSafe(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestConversionDescription(t *testing.T) {
	// Every supported pair has a description.
	for key := range conversions {
		if ConversionDescription(key.From, key.To) == "" {
			t.Errorf("missing description for %s to %s", key.From, key.To)
		}
	}

	if desc := ConversionDescription(TypeString, TypeString); desc != "No change needed." {
		t.Errorf("identity description = %q", desc)
	}

	desc := ConversionDescription(TypeDate, TypeBoolean)
	if !strings.Contains(desc, "No conversion available") {
		t.Errorf("unsupported pair description = %q", desc)
	}
}
