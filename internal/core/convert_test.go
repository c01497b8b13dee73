package core

import (
	"errors"
	"math"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseAmount Tests
// ----------------------------------------------------------------------------

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      float64
	}{
		{name: "integer", input: "80", wantValid: true, want: 80},
		{name: "decimal", input: "0.5", wantValid: true, want: 0.5},
		{name: "leading decimal point", input: ".25", wantValid: true, want: 0.25},
		{name: "surrounding whitespace", input: "  12.5 ", wantValid: true, want: 12.5},
		{name: "explicit sign", input: "+3", wantValid: true, want: 3},
		{name: "scientific notation", input: "1e3", wantValid: true, want: 1000},

		// Localized formats are deliberately not supported
		{name: "decimal comma", input: "0,5", wantValid: false},
		{name: "currency suffix", input: "80руб", wantValid: false},
		{name: "thousands space", input: "1 000", wantValid: false},
		{name: "empty", input: "", wantValid: false},
		{name: "text", input: "abc", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantValid {
				if err != nil {
					t.Fatalf("ParseAmount(%q) error = %v", tt.input, err)
				}
				if got != tt.want {
					t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
				}
				return
			}
			if err == nil {
				t.Errorf("ParseAmount(%q) = %v, want error", tt.input, got)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// UnitPrice Tests
// ----------------------------------------------------------------------------

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		weight  string
		want    float64
		wantErr error
	}{
		{name: "whole division", price: "80", weight: "2", want: 40},
		{name: "fractional weight", price: "45", weight: "0.9", want: 50},
		{name: "fractional result", price: "10", weight: "3", want: 10.0 / 3.0},
		{name: "zero weight", price: "10", weight: "0", wantErr: ErrZeroWeight},
		{name: "negative zero weight", price: "10", weight: "-0", wantErr: ErrZeroWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnitPrice(tt.price, tt.weight)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UnitPrice() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnitPrice() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("UnitPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnitPrice_InvalidCells(t *testing.T) {
	if _, err := UnitPrice("abc", "1"); err == nil {
		t.Error("expected error for non-numeric price")
	}
	if _, err := UnitPrice("1", "kg"); err == nil {
		t.Error("expected error for non-numeric weight")
	}
}

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"название", "название"},
		{"  цена ", "цена"},
		{"\tвес\r", "вес"},
		{"Цена", "Цена"}, // case is preserved
	}

	for _, tt := range tests {
		if got := CleanHeader(tt.input); got != tt.want {
			t.Errorf("CleanHeader(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
