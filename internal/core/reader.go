package core

// reader.go splits decoded price list text into a header and data rows.
//
// Two parser modes are supported:
//
//   - naive: every line is split on the delimiter; quotes have no meaning.
//     A delimiter inside a value shifts the columns and fails the row.
//   - csv: encoding/csv with lazy quotes, so quoted values may contain the
//     delimiter.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ParserMode selects how rows are split into fields.
type ParserMode string

const (
	ParserNaive ParserMode = "naive"
	ParserCSV   ParserMode = "csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// rawRow is a data row with its 1-indexed line number in the file.
type rawRow struct {
	Line   int
	Fields []string
}

// rawTable is a file split into header and data rows, before column mapping.
type rawTable struct {
	Header []string
	Rows   []rawRow
}

// decodeText strips a UTF-8 BOM and rejects input that is not valid UTF-8.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	return string(data), nil
}

// splitRows parses text according to mode.
// Empty or whitespace-only text yields an empty rawTable and no error.
func splitRows(text string, mode ParserMode, delim rune) (rawTable, error) {
	if strings.TrimSpace(text) == "" {
		return rawTable{}, nil
	}

	switch mode {
	case ParserCSV:
		return splitCSV(text, delim)
	case ParserNaive, "":
		return splitNaive(text, delim), nil
	default:
		return rawTable{}, fmt.Errorf("unknown parser mode %q", mode)
	}
}

func splitNaive(text string, delim rune) rawTable {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	sep := string(delim)

	out := rawTable{Header: strings.Split(lines[0], sep)}
	for i, line := range lines[1:] {
		if isBlankLine(line) {
			continue
		}
		out.Rows = append(out.Rows, rawRow{
			Line:   i + 2,
			Fields: strings.Split(line, sep),
		})
	}
	return out
}

func splitCSV(text string, delim rune) (rawTable, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var out rawTable
	first := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rawTable{}, fmt.Errorf("invalid csv: %w", err)
		}
		if first {
			out.Header = rec
			first = false
			continue
		}
		if isEmptyRow(rec) {
			continue
		}
		line, _ := r.FieldPos(0)
		out.Rows = append(out.Rows, rawRow{Line: line, Fields: rec})
	}
	return out, nil
}

func isBlankLine(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
