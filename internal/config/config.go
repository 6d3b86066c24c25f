package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Defaults used when neither flags, environment nor the config file say
// otherwise.
const (
	DefaultDBPath   = "data/ebookstore.db"
	DefaultLogLevel = "warn"
)

// Environment variables that override the config file.
const (
	EnvDBPath   = "EBOOKSTORE_DB"
	EnvLogLevel = "EBOOKSTORE_LOG_LEVEL"
)

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Settings are the effective values after every source is merged.
type Settings struct {
	DBPath   string
	LogLevel string
}

// LoadDotEnv loads a .env file from the working directory into the
// environment. A missing file is not an error; variables already set win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Resolve merges, lowest to highest precedence: defaults, the global config
// file, environment variables, then the non-empty overrides passed in
// (usually command-line flags).
func Resolve(overrides Settings) (Settings, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return Settings{}, err
	}

	s := Settings{DBPath: DefaultDBPath, LogLevel: DefaultLogLevel}
	if cfg.DBPath != "" {
		s.DBPath = cfg.DBPath
	}
	if cfg.LogLevel != "" {
		s.LogLevel = cfg.LogLevel
	}
	s.DBPath = GetConfigValue(EnvDBPath, s.DBPath)
	s.LogLevel = GetConfigValue(EnvLogLevel, s.LogLevel)
	if overrides.DBPath != "" {
		s.DBPath = overrides.DBPath
	}
	if overrides.LogLevel != "" {
		s.LogLevel = overrides.LogLevel
	}

	s.DBPath = ExpandPath(s.DBPath)
	if err := ValidateLogLevel(s.LogLevel); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// EnsureDBDir creates the directory that will hold the database file.
func EnsureDBDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	return nil
}

// ValidateLogLevel checks that the level is one of ValidLogLevels.
func ValidateLogLevel(level string) error {
	for _, valid := range ValidLogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level: %s (valid: %v)", level, ValidLogLevels)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
