package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxFileSize is the largest price list the loader will read (100MB).
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// LoaderConfig controls file discovery and parsing.
type LoaderConfig struct {
	FileMarker  string     // Substring a file name must contain (default "price")
	Delimiter   rune       // Field delimiter (default ',')
	Parser      ParserMode // naive or csv (default naive)
	MaxFileSize int64      // Files larger than this fail (default 100MB)
}

// Loader discovers price list files and builds the aggregate table.
type Loader struct {
	cfg LoaderConfig
	out io.Writer
}

// NewLoader creates a loader. Console diagnostics for skipped files are
// written to out; pass nil to discard them.
func NewLoader(cfg LoaderConfig, out io.Writer) *Loader {
	if cfg.FileMarker == "" {
		cfg.FileMarker = "price"
	}
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	cfg.Parser = ParserMode(strings.ToLower(strings.TrimSpace(string(cfg.Parser))))
	if cfg.Parser == "" {
		cfg.Parser = ParserNaive
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = DefaultMaxFileSize
	}
	if out == nil {
		out = io.Discard
	}
	return &Loader{cfg: cfg, out: out}
}

// Discover lists the files in dir whose name contains the file marker,
// sorted by name. Directories are ignored.
func (l *Loader) Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.Contains(entry.Name(), l.cfg.FileMarker) {
			continue
		}
		files = append(files, entry.Name())
	}

	sort.Strings(files)
	return files, nil
}

// Load reads every matching file in dir and returns the aggregate table.
//
// Files that fail are skipped with a console diagnostic and a log entry;
// only an unreadable directory or a cancelled context is returned as an error.
func (l *Loader) Load(ctx context.Context, dir string) (*Table, LoadStats, error) {
	start := time.Now()
	runID := uuid.New()
	logger := slog.Default().With("run_id", runID.String())

	files, err := l.Discover(dir)
	if err != nil {
		return nil, LoadStats{}, err
	}

	logger.Info("load started", "dir", dir, "files", len(files), "parser", l.cfg.Parser)

	results := make([]FileResult, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, LoadStats{}, fmt.Errorf("load cancelled: %w", err)
		}

		res := l.LoadFile(filepath.Join(dir, name))
		results = append(results, res)

		if res.OK() {
			logger.Debug("file loaded", "file", res.File, "records", len(res.Records))
			continue
		}

		fmt.Fprintln(l.out, DiagnosticFor(res))
		logger.Warn("file skipped",
			"file", res.File,
			"code", MapError(res.Err).Code,
			"error", res.Err,
		)
	}

	table := NewTable(runID, results)

	stats := LoadStats{
		RunID:    runID.String(),
		Files:    len(results),
		Records:  table.Len(),
		Duration: time.Since(start),
	}
	for _, r := range results {
		if r.OK() {
			stats.Loaded++
		} else {
			stats.Skipped++
		}
	}

	logger.Info("load completed",
		"loaded", stats.Loaded,
		"skipped", stats.Skipped,
		"records", stats.Records,
		"duration_ms", stats.Duration.Milliseconds(),
	)

	return table, stats, nil
}

// LoadFile processes a single price list. The result carries either every
// row of the file or the reason the file was rejected, never both.
func (l *Loader) LoadFile(path string) FileResult {
	name := filepath.Base(path)

	data, err := l.readFile(path)
	if err != nil {
		return FileResult{File: name, Err: &FileError{File: name, Err: err}}
	}

	text, err := decodeText(data)
	if err != nil {
		return FileResult{File: name, Err: &FileError{File: name, Err: err}}
	}

	raw, err := splitRows(text, l.cfg.Parser, l.cfg.Delimiter)
	if err != nil {
		return FileResult{File: name, Err: &FileError{File: name, Err: err}}
	}

	records, err := buildRecords(name, raw)
	if err != nil {
		return FileResult{File: name, Err: err}
	}

	return FileResult{File: name, Records: records}
}

// readFile reads at most MaxFileSize bytes; the handle is closed on every path.
func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, l.cfg.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > l.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: exceeds %d bytes", l.cfg.MaxFileSize)
	}
	return data, nil
}

// buildRecords maps a raw table onto canonical records.
func buildRecords(file string, raw rawTable) ([]Record, error) {
	if len(raw.Header) == 0 {
		return nil, nil
	}

	cols, err := ResolveColumns(file, raw.Header)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		if len(row.Fields) != len(raw.Header) {
			return nil, &FileError{
				File: file,
				Line: row.Line,
				Err:  fmt.Errorf("row has %d fields, header has %d", len(row.Fields), len(raw.Header)),
			}
		}

		price := row.Fields[cols[FieldPrice]]
		weight := row.Fields[cols[FieldWeight]]

		perKg, err := UnitPrice(price, weight)
		if err != nil {
			return nil, &FileError{File: file, Line: row.Line, Err: err}
		}

		records = append(records, Record{
			Name:       row.Fields[cols[FieldName]],
			Price:      price,
			Weight:     weight,
			PricePerKg: perKg,
			File:       file,
			Line:       row.Line,
		})
	}

	return records, nil
}

// IsNotExist reports whether a load error means the catalog directory is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
