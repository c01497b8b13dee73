package export

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresTable is the destination table for PostgreSQL exports.
const PostgresTable = "price_records"

const postgresSchema = `CREATE TABLE IF NOT EXISTS price_records (
	name         TEXT NOT NULL,
	price        TEXT NOT NULL,
	weight       TEXT NOT NULL,
	price_per_kg DOUBLE PRECISION NOT NULL,
	file         TEXT NOT NULL,
	line         INTEGER NOT NULL,
	run_id       UUID NOT NULL
)`

// copyColumns must match the order of values returned by copyRow.
var copyColumns = []string{"name", "price", "weight", "price_per_kg", "file", "line", "run_id"}

// PostgresExporter replaces the contents of price_records using COPY.
type PostgresExporter struct {
	URL string
}

func (e *PostgresExporter) Kind() Kind { return KindPostgres }

// Export truncates price_records and copies every record in one transaction.
func (e *PostgresExporter) Export(ctx context.Context, table *core.Table) error {
	pool, err := pgxpool.New(ctx, e.URL)
	if err != nil {
		return fmt.Errorf("database export: connect: %w", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("database export: begin: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if _, err := tx.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("database export: create table: %w", err)
	}
	if _, err := tx.Exec(ctx, "TRUNCATE "+PostgresTable); err != nil {
		return fmt.Errorf("database export: truncate: %w", err)
	}

	rows := copyRows(table)
	n, err := tx.CopyFrom(ctx, pgx.Identifier{PostgresTable}, copyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("database export: copy: %w", err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("database export: copied %d of %d rows", n, len(rows))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("database export: commit: %w", err)
	}
	return nil
}

// copyRows converts the table into COPY rows.
func copyRows(table *core.Table) [][]any {
	runID := pgtype.UUID{Bytes: table.RunID(), Valid: true}
	records := table.Records()

	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = copyRow(r, runID)
	}
	return rows
}

func copyRow(r core.Record, runID pgtype.UUID) []any {
	return []any{
		pgtype.Text{String: r.Name, Valid: true},
		pgtype.Text{String: r.Price, Valid: true},
		pgtype.Text{String: r.Weight, Valid: true},
		pgtype.Float8{Float64: r.PricePerKg, Valid: true},
		pgtype.Text{String: r.File, Valid: true},
		pgtype.Int4{Int32: int32(r.Line), Valid: true},
		runID,
	}
}
