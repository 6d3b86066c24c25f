package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matsen/ebookstore/internal/book"
)

// Column widths for human-readable tables.
const (
	TitleColumnLen  = 40
	AuthorColumnLen = 24
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitError is a command failure that carries its process exit code.
// RunE returns it so deferred cleanup runs before main exits.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// failf builds an exitError from a format string.
func failf(code int, format string, args ...interface{}) error {
	return &exitError{code: code, msg: fmt.Sprintf(format, args...)}
}

// reportError writes err to the user and returns the exit code to use.
// Command failures follow --human (JSON on stdout otherwise); anything
// else goes to stderr as text.
func reportError(err error) int {
	var ee *exitError
	if !errors.As(err, &ee) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return ExitError
	}
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", ee.msg)
	} else {
		outputJSON(ErrorResponse{Error: ee.msg})
	}
	return ee.code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
// Only for failures before anything needs cleaning up.
func exitWithError(code int, format string, args ...interface{}) {
	os.Exit(reportError(failf(code, format, args...)))
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Count  int    `json:"count"`
}

// printBookTable writes books as aligned rows.
func printBookTable(w io.Writer, books []book.Book) {
	fmt.Fprintf(w, "  %-6s %-*s %-*s %5s\n", "ID", TitleColumnLen, "TITLE", AuthorColumnLen, "AUTHOR", "QTY")
	for _, b := range books {
		fmt.Fprintf(w, "  %-6d %-*s %-*s %5d\n",
			b.ID,
			TitleColumnLen, truncateString(b.Title, TitleColumnLen),
			AuthorColumnLen, truncateString(b.Author, AuthorColumnLen),
			b.Qty)
	}
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
