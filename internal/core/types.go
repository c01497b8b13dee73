package core

import (
	"time"

	"github.com/google/uuid"
)

// Field identifies one of the canonical columns every price list maps onto.
type Field string

const (
	FieldName   Field = "name"
	FieldPrice  Field = "price"
	FieldWeight Field = "weight"
)

// FieldDefinition describes a canonical field and the localized headers
// that are recognized as that field.
type FieldDefinition struct {
	Field   Field    // Canonical key: "name", "price", "weight"
	Label   string   // Display name used in console and HTML output
	Order   int      // Position in the canonical schema
	Aliases []string // Header values accepted for this field (exact, post-trim)
}

// Matches reports whether a trimmed header belongs to this field.
func (d FieldDefinition) Matches(header string) bool {
	for _, a := range d.Aliases {
		if a == header {
			return true
		}
	}
	return false
}

// ColumnMap maps each canonical field to its position in a file's header row.
type ColumnMap map[Field]int

// Record is a single row of the aggregate table.
type Record struct {
	Name       string  `json:"name" msgpack:"name"`
	Price      string  `json:"price" msgpack:"price"`   // Raw cell text
	Weight     string  `json:"weight" msgpack:"weight"` // Raw cell text
	PricePerKg float64 `json:"price_per_kg" msgpack:"price_per_kg"`
	File       string  `json:"file" msgpack:"file"`
	Line       int     `json:"line" msgpack:"line"` // 1-indexed line in the source file
}

// FileResult is the outcome of loading one file: either Records or Err.
type FileResult struct {
	File    string
	Records []Record
	Err     error
}

// OK reports whether the file was loaded successfully.
func (r FileResult) OK() bool {
	return r.Err == nil
}

// FileSummary is a display-friendly view of a FileResult.
type FileSummary struct {
	File    string `json:"file"`
	Records int    `json:"records"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Summary returns a FileSummary for display.
func (r FileResult) Summary() FileSummary {
	s := FileSummary{File: r.File, Records: len(r.Records)}
	if r.Err != nil {
		s.Error = r.Err.Error()
		s.Code = MapError(r.Err).Code
	}
	return s
}

// LoadStats summarizes a load run.
type LoadStats struct {
	RunID    string
	Files    int
	Loaded   int
	Skipped  int
	Records  int
	Duration time.Duration
}

// Table is the aggregate of all successfully loaded price lists.
// It is built once by the loader and read-only thereafter.
type Table struct {
	runID    uuid.UUID
	loadedAt time.Time
	records  []Record
	files    []FileResult
}

// NewTable builds a table by appending the records of every successful result
// in order. Failed results are kept for reporting only.
func NewTable(runID uuid.UUID, results []FileResult) *Table {
	n := 0
	for _, r := range results {
		if r.OK() {
			n += len(r.Records)
		}
	}

	records := make([]Record, 0, n)
	for _, r := range results {
		if r.OK() {
			records = append(records, r.Records...)
		}
	}

	return &Table{
		runID:    runID,
		loadedAt: time.Now(),
		records:  records,
		files:    results,
	}
}

// RunID returns the identifier of the load run that produced the table.
func (t *Table) RunID() uuid.UUID {
	return t.runID
}

// LoadedAt returns when the table was built.
func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Empty reports whether the table has no records.
func (t *Table) Empty() bool {
	return len(t.records) == 0
}

// Records returns a copy of all records in load order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Files returns the per-file outcomes of the load run.
func (t *Table) Files() []FileSummary {
	out := make([]FileSummary, len(t.files))
	for i, r := range t.files {
		out[i] = r.Summary()
	}
	return out
}
