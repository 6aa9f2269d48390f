package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/userorders/internal/config"
	"github.com/dshills/userorders/internal/logging"
	"github.com/dshills/userorders/internal/mcp"
	"github.com/dshills/userorders/internal/service"
	"github.com/dshills/userorders/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("User and Order MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		os.Exit(0)
	}

	// Configuration comes from USERORDERS_CONFIG and USERORDERS_* only;
	// there are no flags to parse.
	cfg, err := config.Load(os.Getenv("USERORDERS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "userorders-mcp: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr (stdout reserved for MCP protocol)
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "userorders-mcp: %v\n", err)
		os.Exit(1)
	}
	logger.Info("MCP server starting",
		"version", version,
		"build_mode", storage.BuildMode,
		"driver", storage.DriverName,
		"db_path", cfg.Storage.Path,
	)

	store, err := storage.NewSQLiteStorage(cfg.Storage.Path)
	if err != nil {
		logger.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	svc := service.New(store, service.Config{MaxLimit: cfg.Pagination.MaxLimit}, logger)
	server := mcp.NewServer(svc, logger)

	// Set up graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server ready, listening on stdio")
	if err := server.Serve(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		_ = store.Close()
		os.Exit(1)
	}
	logger.Info("server stopped")
}
