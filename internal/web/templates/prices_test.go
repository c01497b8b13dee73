package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/pricelist/internal/core"
)

func TestPriceTable_RendersAllColumns(t *testing.T) {
	var buf bytes.Buffer
	err := PriceTable([]core.Record{
		{Name: "Молоко", Price: "80", Weight: "2", PricePerKg: 40, File: "price1.csv"},
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<th>name</th>", "<th>price</th>", "<th>weight</th>", "<th>price_per_kg</th>", "<th>file</th>",
		"<td>Молоко</td>", "<td>80</td>", "<td>2</td>", "<td>40</td>", "<td>price1.csv</td>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPriceTable_EscapesCells(t *testing.T) {
	var buf bytes.Buffer
	err := PriceTable([]core.Record{
		{Name: "<script>alert(1)</script>", Price: "1", Weight: "1", PricePerKg: 1, File: "price&co.csv"},
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Error("cell content was not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") || !strings.Contains(out, "price&amp;co.csv") {
		t.Errorf("unexpected escaping: %s", out)
	}
}

func TestDocument_SearchForm(t *testing.T) {
	var buf bytes.Buffer
	err := Document(DocumentParams{
		Title:    "Прайс-листы",
		RunID:    "abc",
		LoadedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Query:    "\"молок",
		Search:   true,
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `value="&#34;молок"`) {
		t.Errorf("query not escaped into form: %s", out)
	}
	if !strings.Contains(out, core.MsgNothingFound) {
		t.Error("empty search should show nothing-found notice")
	}
	if strings.Contains(out, "<table") {
		t.Error("empty search should not render a table")
	}
}

func TestFormatPerKg(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{40, "40"},
		{0.5, "0.5"},
		{236.84210526315792, "236.84210526315792"},
	}
	for _, tt := range tests {
		if got := FormatPerKg(tt.in); got != tt.want {
			t.Errorf("FormatPerKg(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
