package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdlayton/ghpmcp/internal/auth"
	"github.com/mdlayton/ghpmcp/internal/config"
	"github.com/mdlayton/ghpmcp/internal/gh"
	mcpserver "github.com/mdlayton/ghpmcp/internal/mcp"
)

var (
	// CLI flags
	configFlag  string
	logFileFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ghpmcp",
		Short: "MCP server for GitHub Projects v2 automation",
		Long: `ghpmcp is an MCP (Model Context Protocol) server exposing GitHub
Projects v2 and Issues automation tools over stdio.

Authentication:
  Set the GITHUB_TOKEN environment variable to a personal access token
  with project and repository scopes. The server refuses to start
  without it.

Diagnostics are appended to a local log file (stdout carries the MCP
transport).`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&configFlag, "config", "", "Path to YAML config file (optional)")
	rootCmd.Flags().StringVar(&logFileFlag, "log-file", "", "Diagnostic log file path (overrides config)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configFlag != "" {
		loaded, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if logFileFlag != "" {
		cfg.Logging.File = logFileFlag
	}

	// The token is checked before anything else so a missing credential
	// fails startup instead of the first tool call.
	token, err := auth.GetToken()
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	client := gh.New(token, logger,
		gh.WithEndpoint(cfg.GitHub.Endpoint),
		gh.WithLabelColor(cfg.Defaults.LabelColor),
	)

	srv := mcpserver.New(client, cfg.Defaults, logger)

	logger.Info("starting ghpmcp",
		"endpoint", cfg.GitHub.Endpoint,
		"log_file", cfg.Logging.File,
	)

	return srv.Serve()
}

// setupLogger opens the append-only diagnostic log and builds a slog
// logger on it. JSON output carries RFC 3339 timestamps.
func setupLogger(cfg config.LoggingConfig) (*slog.Logger, func(), error) {
	file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %q: %w", cfg.File, err)
	}

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(file, opts)
	} else {
		handler = slog.NewJSONHandler(file, opts)
	}

	return slog.New(handler), func() { file.Close() }, nil
}
