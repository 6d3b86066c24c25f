package main

import (
	"fmt"
	"strings"

	"github.com/matsen/ebookstore/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set values in the global config file.

Usage:
  ebookstore config                        # Show effective config
  ebookstore config db-path                # Get specific value
  ebookstore config db-path ~/books.db     # Set value
  ebookstore config log-level info         # Set log level

Keys:
  db-path    Path to the SQLite database file
  log-level  Log level (debug, info, warn, error)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config show commands.
type ConfigResponse struct {
	Path     string `json:"path"`
	DBPath   string `json:"db_path"`
	LogLevel string `json:"log_level"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	// No args: show effective config
	if len(args) == 0 {
		resp := ConfigResponse{
			Path:     config.GlobalConfigPath(),
			DBPath:   settings.DBPath,
			LogLevel: settings.LogLevel,
		}
		if humanOutput {
			fmt.Printf("config:    %s\n", resp.Path)
			fmt.Printf("db-path:   %s\n", resp.DBPath)
			fmt.Printf("log-level: %s\n", resp.LogLevel)
		} else {
			outputJSON(resp)
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		var value string
		switch key {
		case "db-path":
			value = settings.DBPath
		case "log-level":
			value = settings.LogLevel
		default:
			return failf(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		return failf(ExitConfigError, "loading config: %v", err)
	}
	updated := *cfg

	switch key {
	case "db-path":
		updated.DBPath = config.ExpandPath(value)
		value = updated.DBPath
	case "log-level":
		value = strings.ToLower(value)
		if err := config.ValidateLogLevel(value); err != nil {
			return failf(ExitConfigError, "%v", err)
		}
		updated.LogLevel = value
	default:
		return failf(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := updated.Save(); err != nil {
		return failf(ExitConfigError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}

// normalizeKey accepts db_path and DB-PATH as db-path.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
