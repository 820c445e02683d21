package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcqx/internal/config"
	"github.com/abhisek/mcqx/internal/store"
)

var (
	cfg    config.Config
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "mcqx",
	Short: "Extract multiple-choice questions from a PDF question bank",
	Long: `mcqx reads a PDF question bank, segments its text into numbered
questions with four lettered options and an answer, and writes them as the
JSON array the quiz front-end loads.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides MCQX_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite archive file (overrides MCQX_DB env var)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env, the config file and the environment, then builds the
// logger every subcommand uses.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("MCQX_CONFIG")
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		loaded.LogLevel = lvl
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded

	logger = newLogger(cfg.LogLevel)
	logger.Debug("config loaded", "file", path, "source", cfg.Source, "output", cfg.Output)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MCQX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the run archive and checks the connection.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	if err := s.Ping(cmd.Context()); err != nil {
		s.Close()
		return nil, fmt.Errorf("ping archive %s: %w", path, err)
	}
	logger.Debug("archive opened", "path", path)
	return s, nil
}
