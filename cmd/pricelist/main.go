package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/pricelist/internal/config"
	"github.com/JonMunkholm/pricelist/internal/console"
	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/JonMunkholm/pricelist/internal/export"
	"github.com/JonMunkholm/pricelist/internal/logging"
	"github.com/JonMunkholm/pricelist/internal/web"
	"github.com/joho/godotenv"
)

const usage = `usage: pricelist [command]

commands:
  search   load the catalog, search interactively, then export (default)
  serve    load the catalog and browse it over HTTP
  check    report how each price list maps onto name, price and weight
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	command := "search"
	if len(args) > 0 {
		command = args[0]
	}
	if command == "-h" || command == "--help" || command == "help" {
		fmt.Print(usage)
		return 0
	}

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return 1
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	// Reject an unusable export target before the interactive session starts.
	if command == "search" {
		if err := checkExportTarget(cfg.Export.Path); err != nil {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
			slog.Error("invalid export target", "target", export.DisplayTarget(cfg.Export.Path), "error", err)
			return 1
		}
	}

	ctx := context.Background()

	loader := core.NewLoader(core.LoaderConfig{
		FileMarker:  cfg.Catalog.FileMarker,
		Delimiter:   cfg.Catalog.DelimiterRune(),
		Parser:      core.ParserMode(cfg.Catalog.Parser),
		MaxFileSize: cfg.Catalog.MaxFileSize,
	}, os.Stdout)

	switch command {
	case "search":
		return runSearch(ctx, cfg, loader)
	case "serve":
		return runServe(ctx, cfg, loader)
	case "check":
		return runCheck(ctx, cfg, loader, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", command, usage)
		return 2
	}
}

// load builds the aggregate table and tags ctx with the run id.
func load(ctx context.Context, cfg *config.Config, loader *core.Loader) (context.Context, *core.Table, error) {
	table, stats, err := loader.Load(ctx, cfg.Catalog.Dir)
	if err != nil {
		if core.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		}
		slog.Error("failed to load catalog", "dir", cfg.Catalog.Dir, "error", err)
		return ctx, nil, err
	}
	return core.ContextWithRunID(ctx, stats.RunID), table, nil
}

// checkExportTarget reports whether target names a supported export format.
func checkExportTarget(target string) error {
	_, err := export.DetectKind(target)
	return err
}

func runSearch(ctx context.Context, cfg *config.Config, loader *core.Loader) int {
	ctx, table, err := load(ctx, cfg, loader)
	if err != nil {
		return 1
	}

	if err := console.NewSession(table, os.Stdin, os.Stdout).Run(); err != nil {
		logging.FromContext(ctx).Error("reading input", "error", err)
		return 1
	}

	exportCtx, cancel := context.WithTimeout(ctx, cfg.Export.Timeout)
	defer cancel()

	err = export.Export(exportCtx, table, cfg.Export.Path, os.Stdout)
	switch {
	case err == nil, errors.Is(err, core.ErrEmptyExport):
		return 0
	default:
		fmt.Fprintln(os.Stdout, core.FormatUserError(err))
		return 1
	}
}

func runServe(ctx context.Context, cfg *config.Config, loader *core.Loader) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, table, err := load(ctx, cfg, loader)
	if err != nil {
		return 1
	}

	server := web.NewServer(table, cfg.Server)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		logging.FromContext(ctx).Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		return 1
	}
	slog.Info("server stopped")
	return 0
}

func runCheck(ctx context.Context, cfg *config.Config, loader *core.Loader, out io.Writer) int {
	resp, err := loader.Preview(ctx, cfg.Catalog.Dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		slog.Error("failed to check catalog", "dir", cfg.Catalog.Dir, "error", err)
		return 1
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		slog.Error("encode report", "error", err)
		return 1
	}

	if resp.Rejected > 0 {
		return 3
	}
	return 0
}
