// Package main provides the stackweave CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackweave/stackweave/internal/config"
	"github.com/stackweave/stackweave/internal/ctxlog"
	"github.com/stackweave/stackweave/pkg/stackweave"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stackweave",
	Short: "Compose, validate, and run visual RAG workflows",
	Long: `stackweave manages visual data-processing workflows: directed
graphs of query intake, knowledge retrieval, LLM inference, and output
stages. Workflows are persisted locally and submitted to a remote
execution service; a successful run opens a chat session against the
deployed stack.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.AddCommand(listCmd, createCmd, removeCmd, validateCmd, executeCmd, chatCmd)
}

// newRuntime assembles the runtime and logger from environment config.
func newRuntime(cmd *cobra.Command) (*stackweave.Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))

	timeout := stackweave.WithRequestTimeout(cfg.Service.RequestTimeout)
	if cfg.Storage.DBPath == "" {
		return stackweave.NewRuntime(cfg.Service.BaseURL, timeout), nil
	}
	return stackweave.NewRuntimeSQLite(cfg.Service.BaseURL, cfg.Storage.DBPath, timeout)
}
