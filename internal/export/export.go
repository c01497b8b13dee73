// Package export writes the aggregate price table to a target.
//
// The target decides the format:
//
//   - *.html, *.htm (or no extension): static HTML table
//   - *.msgpack: MessagePack snapshot
//   - *.db, *.sqlite, *.sqlite3: SQLite database with a price_records table
//   - postgres:// or postgresql:// URL: PostgreSQL price_records table
//
// Every target is overwritten. An empty table is never exported.
package export

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/JonMunkholm/pricelist/internal/logging"
)

// Kind identifies an export format.
type Kind string

const (
	KindHTML     Kind = "html"
	KindMsgpack  Kind = "msgpack"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

// Exporter writes a table to its target.
type Exporter interface {
	Kind() Kind
	Export(ctx context.Context, table *core.Table) error
}

// DetectKind resolves the export format of a target.
func DetectKind(target string) (Kind, error) {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return KindPostgres, nil
	}

	switch strings.ToLower(filepath.Ext(target)) {
	case ".html", ".htm", "":
		return KindHTML, nil
	case ".msgpack":
		return KindMsgpack, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("unsupported export target %q", target)
	}
}

// New returns the exporter for target.
func New(target string) (Exporter, error) {
	kind, err := DetectKind(target)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindMsgpack:
		return &MsgpackExporter{Path: target}, nil
	case KindSQLite:
		return &SQLiteExporter{Path: target}, nil
	case KindPostgres:
		return &PostgresExporter{URL: target}, nil
	default:
		return &HTMLExporter{Path: target}, nil
	}
}

// Export writes table to target and prints the outcome to out.
// An empty table yields core.ErrEmptyExport and nothing is written.
func Export(ctx context.Context, table *core.Table, target string, out io.Writer) error {
	logger := logging.WithFields(ctx, "target", DisplayTarget(target))

	if table == nil || table.Empty() {
		fmt.Fprintln(out, core.MsgNothingToExport)
		logger.Info("export skipped: table is empty")
		return core.ErrEmptyExport
	}

	exp, err := New(target)
	if err != nil {
		return err
	}

	if err := exp.Export(ctx, table); err != nil {
		logger.Error("export failed", "kind", exp.Kind(), "error", err)
		return err
	}

	fmt.Fprintln(out, core.ExportedMessage(DisplayTarget(target)))
	logger.Info("export completed", "kind", exp.Kind(), "records", table.Len())
	return nil
}

// DisplayTarget returns target with any URL password redacted.
func DisplayTarget(target string) string {
	if !strings.Contains(target, "://") {
		return target
	}
	u, err := url.Parse(target)
	if err != nil {
		return "[MASKED]"
	}
	return u.Redacted()
}
