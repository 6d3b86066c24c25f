package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/ebookstore/internal/book"
	"github.com/matsen/ebookstore/internal/config"
	"github.com/spf13/cobra"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"WARN", slog.LevelWarn, false},
		{"loud", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		"db-path":   "db-path",
		"db_path":   "db-path",
		"LOG_LEVEL": "log-level",
	}
	for in, want := range tests {
		if got := normalizeKey(in); got != want {
			t.Errorf("normalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Alice in Wonderland", 40, "Alice in Wonderland"},
		{"Harry Potter and the Philosopher's Stone", 20, "Harry Potter and ..."},
		{"Ébène Ünïcödé", 8, "Ébène..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestPrintBookTable(t *testing.T) {
	var buf bytes.Buffer
	printBookTable(&buf, book.Seed[:2])

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("printBookTable() wrote %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[0]), "ID") {
		t.Errorf("header = %q, want ID column first", lines[0])
	}
	if !strings.Contains(lines[1], "3001") || !strings.Contains(lines[1], "A Tale of Two Cities") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Harry Potter and the Philosopher's Stone") {
		t.Errorf("row 2 = %q, want full title", lines[2])
	}
	for i, line := range lines[1:] {
		if len([]rune(line)) != len([]rune(lines[0])) {
			t.Errorf("row %d width = %d, header width = %d", i+1, len([]rune(line)), len([]rune(lines[0])))
		}
	}
}

func TestFailf_CarriesExitCode(t *testing.T) {
	err := failf(ExitDataError, "invalid ID: %s", "abc")

	var ee *exitError
	if !errors.As(err, &ee) {
		t.Fatalf("failf() = %T, want *exitError", err)
	}
	if ee.code != ExitDataError || err.Error() != "invalid ID: abc" {
		t.Errorf("failf() = {%d %q}, want {%d %q}", ee.code, err.Error(), ExitDataError, "invalid ID: abc")
	}
}

func TestReportError_ExitCodes(t *testing.T) {
	old := humanOutput
	humanOutput = true
	defer func() { humanOutput = old }()

	if got := reportError(failf(ExitConfigError, "bad config")); got != ExitConfigError {
		t.Errorf("reportError(exitError) = %d, want %d", got, ExitConfigError)
	}
	if got := reportError(errors.New("menu failed")); got != ExitError {
		t.Errorf("reportError(plain error) = %d, want %d", got, ExitError)
	}
}

// Errors after the database is open come back from RunE instead of
// exiting, so the deferred Close runs.
func TestRunExport_ErrorAfterOpenReturns(t *testing.T) {
	oldSettings, oldOutput := settings, exportOutput
	defer func() { settings, exportOutput = oldSettings, oldOutput }()

	dir := t.TempDir()
	settings = config.Settings{DBPath: filepath.Join(dir, "ebookstore.db"), LogLevel: "warn"}
	exportOutput = filepath.Join(dir, "missing", "books.jsonl")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	err := runExport(cmd, nil)

	var ee *exitError
	if !errors.As(err, &ee) {
		t.Fatalf("runExport() error = %v, want *exitError", err)
	}
	if ee.code != ExitError || !strings.Contains(ee.msg, "writing export") {
		t.Errorf("runExport() = {%d %q}, want writing export failure", ee.code, ee.msg)
	}
}
