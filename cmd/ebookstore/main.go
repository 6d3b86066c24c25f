// Package main provides the ebookstore CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/matsen/ebookstore/internal/config"
	"github.com/matsen/ebookstore/internal/inventory"
	"github.com/matsen/ebookstore/internal/menu"
	"github.com/matsen/ebookstore/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool

	dbFlag       string
	logLevelFlag string

	// settings holds the resolved configuration for the running command.
	settings config.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "ebookstore",
	Short: "Bookstore inventory manager",
	Long: `ebookstore manages a bookstore's inventory in a local SQLite database.

Run without arguments to start the interactive menu. The subcommands
output JSON by default for scripting; pass --human for readable text.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: loadSettings,
	RunE:              runInteractive,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to the SQLite database (default data/ebookstore.db)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (default warn)")
	rootCmd.Version = Version
}

// loadSettings merges .env, the global config, the environment and flags,
// then installs the logger.
func loadSettings(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	s, err := config.Resolve(config.Settings{DBPath: dbFlag, LogLevel: logLevelFlag})
	if err != nil {
		return err
	}
	settings = s
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(newLogger(os.Stderr, level))
	slog.Debug("settings resolved", "db", s.DBPath, "log_level", s.LogLevel)
	return nil
}

// newLogger returns a tint logger writing to f, colored only on a terminal.
func newLogger(f *os.File, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(colorable.NewColorable(f), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(f.Fd()),
	}))
}

// parseLevel converts a log_level value into a slog.Level.
func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, firstRun := mustOpenDatabase(ctx)
	defer db.Close()

	session := menu.New(menu.NewLineInput(os.Stdin), os.Stdout, inventory.New(db))
	session.Welcome(firstRun)
	return session.Run(ctx)
}

// mustOpenDatabase opens and initializes the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(ctx context.Context) (*storage.DB, bool) {
	if err := config.EnsureDBDir(settings.DBPath); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	db, err := storage.OpenDB(settings.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	firstRun, err := db.Init(ctx)
	if err != nil {
		db.Close()
		exitWithError(ExitError, "initializing database: %v", err)
	}
	return db, firstRun
}

// mustOpenService opens the database and wraps it in an inventory service.
func mustOpenService(ctx context.Context) (*storage.DB, *inventory.Service) {
	db, _ := mustOpenDatabase(ctx)
	return db, inventory.New(db)
}
