package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"txn-search/internal/config"
	"txn-search/internal/searchengine"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "txnsearch",
	Short: "Search and seed the transaction index",
	Long: `txnsearch runs validated transaction searches against the transaction index
and loads it with generated data.

A search needs at least one account number and one date range of at most 95 days
starting no more than 2 years ago. When several date ranges are given only the
first of entry date, transaction entry date and value date is applied.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with engine settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine requests to stderr")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(seedCmd)
}

// loadEnvFile loads path if it exists; variables already set win
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newEngineClient builds a client from the environment
func newEngineClient(logger *slog.Logger) (*searchengine.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Search.URL == "" {
		return nil, nil, errors.New("ELASTICSEARCH_URL is not set")
	}
	client, err := searchengine.NewClient(cfg.Search.EngineConfig(), logger)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}
