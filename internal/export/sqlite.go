package export

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JonMunkholm/pricelist/internal/core"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE price_records (
	name         TEXT NOT NULL,
	price        TEXT NOT NULL,
	weight       TEXT NOT NULL,
	price_per_kg REAL NOT NULL,
	file         TEXT NOT NULL,
	line         INTEGER NOT NULL,
	run_id       TEXT NOT NULL
)`

// SQLiteExporter writes the table into a SQLite database file.
// An existing price_records table is replaced.
type SQLiteExporter struct {
	Path string
}

func (e *SQLiteExporter) Kind() Kind { return KindSQLite }

// Export recreates price_records in Path and inserts every record in one transaction.
func (e *SQLiteExporter) Export(ctx context.Context, table *core.Table) error {
	db, err := sql.Open("sqlite", e.Path)
	if err != nil {
		return fmt.Errorf("database export: open sqlite %s: %w", e.Path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database export: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS price_records`); err != nil {
		return fmt.Errorf("database export: drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("database export: create table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO price_records (name, price, weight, price_per_kg, file, line, run_id) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("database export: prepare insert: %w", err)
	}
	defer stmt.Close()

	runID := table.RunID().String()
	for _, r := range table.Records() {
		if _, err := stmt.ExecContext(ctx, r.Name, r.Price, r.Weight, r.PricePerKg, r.File, r.Line, runID); err != nil {
			return fmt.Errorf("database export: insert %s line %d: %w", r.File, r.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database export: commit: %w", err)
	}
	return nil
}
