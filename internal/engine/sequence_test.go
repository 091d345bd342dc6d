package engine

import (
	"testing"
	"time"
)

// ----------------------------------------------------------------------------
// NumberingConfig Tests
// ----------------------------------------------------------------------------

func TestNumberingConfig_WithDefaults(t *testing.T) {
	cfg := NumberingConfig{}.withDefaults()
	if cfg.Series != "INV" {
		t.Errorf("Series = %q, want INV", cfg.Series)
	}
	if cfg.StartNumber != 1 {
		t.Errorf("StartNumber = %d, want 1", cfg.StartNumber)
	}
	if cfg.Separator != "-" {
		t.Errorf("Separator = %q, want -", cfg.Separator)
	}
}

func TestNumberingConfig_ResetImpliesInclude(t *testing.T) {
	cfg := NumberingConfig{ResetYearly: true, ResetMonthly: true}.withDefaults()
	if !cfg.IncludeYear {
		t.Error("ResetYearly should imply IncludeYear")
	}
	if !cfg.IncludeMonth {
		t.Error("ResetMonthly should imply IncludeMonth")
	}
}

func TestSeriesIdentifier(t *testing.T) {
	march := time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  NumberingConfig
		want string
	}{
		{
			name: "bare series",
			cfg:  NumberingConfig{},
			want: "INV",
		},
		{
			name: "with year",
			cfg:  NumberingConfig{IncludeYear: true},
			want: "INV-2025",
		},
		{
			name: "with year and month",
			cfg:  NumberingConfig{IncludeYear: true, IncludeMonth: true},
			want: "INV-2025-03",
		},
		{
			name: "yearly reset folds into identifier",
			cfg:  NumberingConfig{ResetYearly: true},
			want: "INV-2025",
		},
		{
			name: "custom series and separator",
			cfg:  NumberingConfig{Series: "FACT", Separator: "/", IncludeYear: true},
			want: "FACT/2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.withDefaults().seriesIdentifier(march)
			if got != tt.want {
				t.Errorf("seriesIdentifier = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPadNumber(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{1, "000001"},
		{42, "000042"},
		{999999, "999999"},
		{1000000, "1000000"}, // width grows past the pad, never truncates
	}

	for _, tt := range tests {
		if got := padNumber(tt.input); got != tt.want {
			t.Errorf("padNumber(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		cfg      NumberingConfig
		seriesID string
		n        int64
		want     string
	}{
		{
			name:     "default shape",
			cfg:      NumberingConfig{}.withDefaults(),
			seriesID: "INV-2025",
			n:        1,
			want:     "INV-2025-000001",
		},
		{
			name:     "prefix and suffix",
			cfg:      NumberingConfig{Prefix: "ACME", Suffix: "RO"}.withDefaults(),
			seriesID: "INV",
			n:        17,
			want:     "ACME-INV-000017-RO",
		},
		{
			name:     "custom separator",
			cfg:      NumberingConfig{Separator: "/"}.withDefaults(),
			seriesID: "INV/2025",
			n:        250,
			want:     "INV/2025/000250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildInvoiceNumber(tt.cfg, tt.seriesID, tt.n)
			if got.FullNumber != tt.want {
				t.Errorf("FullNumber = %q, want %q", got.FullNumber, tt.want)
			}
			if got.Number != tt.n {
				t.Errorf("Number = %d, want %d", got.Number, tt.n)
			}
			if got.Breakdown.PaddedNumber != padNumber(tt.n) {
				t.Errorf("PaddedNumber = %q", got.Breakdown.PaddedNumber)
			}
			if got.Series != tt.seriesID {
				t.Errorf("Series = %q, want %q", got.Series, tt.seriesID)
			}
		})
	}
}

func TestNumberingConfig_Validate(t *testing.T) {
	if err := (NumberingConfig{}).Validate(); err != nil {
		t.Errorf("zero config should validate, got %v", err)
	}
	if err := (NumberingConfig{Series: "INV_2024"}).Validate(); err != nil {
		t.Errorf("underscored series should validate, got %v", err)
	}
	if err := (NumberingConfig{Series: "INV 2024"}).Validate(); err == nil {
		t.Error("series with spaces should fail validation")
	}
	if err := (NumberingConfig{StartNumber: -1}).Validate(); err == nil {
		t.Error("negative start number should fail validation")
	}
}
