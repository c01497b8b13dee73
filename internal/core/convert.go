package core

// convert.go turns raw price list cells into canonical values.
//
// Numbers are parsed with strconv.ParseFloat after trimming surrounding
// whitespace. Localized decimal commas, thousands separators and currency
// symbols are not handled: such a cell fails its whole file.

import (
	"fmt"
	"strconv"
	"strings"
)

// CleanHeader normalizes a header cell for alias matching.
// Only surrounding whitespace is removed; matching stays case-sensitive.
func CleanHeader(s string) string {
	return strings.TrimSpace(s)
}

// ParseAmount parses a price or weight cell.
func ParseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}

// UnitPrice computes price / weight from raw cells.
// Returns ErrZeroWeight when the weight parses to zero.
func UnitPrice(price, weight string) (float64, error) {
	p, err := ParseAmount(price)
	if err != nil {
		return 0, fmt.Errorf("price: %w", err)
	}
	w, err := ParseAmount(weight)
	if err != nil {
		return 0, fmt.Errorf("weight: %w", err)
	}
	if w == 0 {
		return 0, ErrZeroWeight
	}
	return p / w, nil
}
