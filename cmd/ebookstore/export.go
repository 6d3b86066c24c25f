package main

import (
	"fmt"
	"os"

	"github.com/matsen/ebookstore/internal/storage"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the inventory as JSONL",
	Long: `Export every book as one JSON object per line.

Examples:
  ebookstore export > books.jsonl
  ebookstore export -o books.jsonl`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	db, svc := mustOpenService(cmd.Context())
	defer db.Close()

	books, err := svc.List(cmd.Context())
	if err != nil {
		return failf(ExitError, "%v", err)
	}

	// Note: without -o the output is always JSONL, never the JSON envelope
	if exportOutput == "" {
		if err := storage.Encode(os.Stdout, books); err != nil {
			return failf(ExitError, "writing export: %v", err)
		}
		return nil
	}

	if err := storage.WriteAll(exportOutput, books); err != nil {
		return failf(ExitError, "writing export: %v", err)
	}
	if humanOutput {
		fmt.Printf("Exported %d books to %s\n", len(books), exportOutput)
	} else {
		outputJSON(StatusResponse{Status: "exported", Path: exportOutput, Count: len(books)})
	}
	return nil
}
