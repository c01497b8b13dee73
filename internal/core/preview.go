package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// FilePreview describes how a single file maps onto the canonical schema
// without adding it to a table.
type FilePreview struct {
	File     string           `json:"file"`
	Columns  map[Field]string `json:"columns,omitempty"` // Canonical field -> header text that matched
	DataRows int              `json:"dataRows"`
	Records  int              `json:"records"`
	Samples  []Record         `json:"samples,omitempty"`
	Error    string           `json:"error,omitempty"`
	Code     string           `json:"code,omitempty"`
}

// PreviewResponse is the result of a dry-run over a catalog directory.
type PreviewResponse struct {
	Files            []FilePreview `json:"files"`
	Loadable         int           `json:"loadable"`
	Rejected         int           `json:"rejected"`
	ProcessingTimeMs int64         `json:"processingTimeMs"`
}

const maxPreviewSamples = 3

// Preview analyzes every matching file in dir and reports its header mapping,
// row count and the first few records, or why it would be skipped.
// Nothing is printed to the console.
func (l *Loader) Preview(ctx context.Context, dir string) (*PreviewResponse, error) {
	start := time.Now()

	files, err := l.Discover(dir)
	if err != nil {
		return nil, err
	}

	resp := &PreviewResponse{Files: make([]FilePreview, 0, len(files))}
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("preview cancelled: %w", err)
		}

		p := l.previewFile(filepath.Join(dir, name))
		if p.Error == "" {
			resp.Loadable++
		} else {
			resp.Rejected++
		}
		resp.Files = append(resp.Files, p)
	}

	resp.ProcessingTimeMs = time.Since(start).Milliseconds()
	return resp, nil
}

func (l *Loader) previewFile(path string) FilePreview {
	name := filepath.Base(path)
	p := FilePreview{File: name}

	fail := func(err error) FilePreview {
		p.Error = err.Error()
		p.Code = MapError(err).Code
		return p
	}

	data, err := l.readFile(path)
	if err != nil {
		return fail(&FileError{File: name, Err: err})
	}
	text, err := decodeText(data)
	if err != nil {
		return fail(&FileError{File: name, Err: err})
	}
	raw, err := splitRows(text, l.cfg.Parser, l.cfg.Delimiter)
	if err != nil {
		return fail(&FileError{File: name, Err: err})
	}
	p.DataRows = len(raw.Rows)

	if len(raw.Header) > 0 {
		cols, err := ResolveColumns(name, raw.Header)
		if err != nil {
			return fail(err)
		}
		p.Columns = make(map[Field]string, len(cols))
		for f, pos := range cols {
			p.Columns[f] = CleanHeader(raw.Header[pos])
		}
	}

	records, err := buildRecords(name, raw)
	if err != nil {
		return fail(err)
	}
	p.Records = len(records)
	if len(records) > maxPreviewSamples {
		records = records[:maxPreviewSamples]
	}
	p.Samples = records

	return p
}
