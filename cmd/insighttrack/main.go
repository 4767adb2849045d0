package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/conorfennell/insighttrack/internal/config"
	"github.com/conorfennell/insighttrack/internal/importer"
	"github.com/conorfennell/insighttrack/internal/kvstore"
	"github.com/conorfennell/insighttrack/internal/tracker"
	"github.com/conorfennell/insighttrack/internal/web"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("insighttrack", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to a YAML config file")
	importDir := flags.String("import", "", "Import markdown notes from a directory and exit")
	importGit := flags.String("import-git", "", "Import markdown notes from a git repository and exit")
	flags.String("data-dir", "", "Directory for the storage backend")
	flags.String("storage", "", "Storage backend: badger or sqlite")
	flags.String("listen", "", "Address for the web UI")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("repos-dir", "", "Checkout directory for imported git repositories")
	flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "insighttrack: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Storage, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	tr := tracker.New(store)

	switch {
	case *importDir != "":
		runImport(func() (*importer.Result, error) {
			return importer.ImportDir(tr, *importDir)
		})
	case *importGit != "":
		runImport(func() (*importer.Result, error) {
			return importer.ImportGit(tr, *importGit, cfg.ReposDir)
		})
	default:
		server := web.NewServer(tr)
		slog.Info("serving web UI", "addr", cfg.Listen)
		if err := http.ListenAndServe(cfg.Listen, server); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func openStore(cfg *config.Config) (kvstore.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", cfg.DataDir, err)
	}
	switch cfg.Storage {
	case "sqlite":
		return kvstore.OpenSqlite(filepath.Join(cfg.DataDir, "insighttrack.db"))
	default:
		return kvstore.OpenBadger(filepath.Join(cfg.DataDir, "badger"))
	}
}

func runImport(run func() (*importer.Result, error)) {
	result, err := run()
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d insights from %d files (%d new books, %d duplicates, %d errors).\n",
		result.Insights, result.Files, result.BooksAdded, result.Duplicates, len(result.Errors))
	if len(result.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, e := range result.Errors {
			fmt.Printf("- %s\n", e)
		}
	}
}
