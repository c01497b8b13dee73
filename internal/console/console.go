// Package console implements the interactive search loop over the aggregate
// price table.
package console

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/pricelist/internal/core"
)

// ExitCommand ends the session; matched case-insensitively.
const ExitCommand = "exit"

const maxLineSize = 1024 * 1024

// Searcher is the read-only view of the table the session needs.
type Searcher interface {
	Search(query string) []core.Record
}

// Session is a blocking request/response loop: one query per input line.
type Session struct {
	table Searcher
	in    *bufio.Scanner
	out   io.Writer
}

// NewSession creates a session reading queries from in and printing to out.
func NewSession(table Searcher, in io.Reader, out io.Writer) *Session {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	return &Session{table: table, in: sc, out: out}
}

// Run prompts for queries until the exit command or end of input.
// It returns only input read errors.
func (s *Session) Run() error {
	for {
		fmt.Fprint(s.out, core.MsgPrompt)

		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, core.MsgGoodbye)
			return s.in.Err()
		}

		query := strings.TrimRight(s.in.Text(), "\r")
		if strings.EqualFold(strings.TrimSpace(query), ExitCommand) {
			fmt.Fprintln(s.out, core.MsgGoodbye)
			return nil
		}

		hits := s.table.Search(query)
		slog.Debug("search", "query", query, "hits", len(hits))

		if len(hits) == 0 {
			fmt.Fprintln(s.out, core.MsgNothingFound)
			continue
		}
		WriteResults(s.out, hits)
	}
}

// WriteResults prints records as a fixed-width listing numbered from 1.
func WriteResults(w io.Writer, records []core.Record) {
	fmt.Fprintln(w, core.MsgResultHeader)
	for i, r := range records {
		fmt.Fprintf(w, "%-3d %-25s %-6s %-6s %-15s %-10.2f\n",
			i+1, r.Name, r.Price, r.Weight, r.File, r.PricePerKg)
	}
}
