package main

import (
	"fmt"
	"os"

	"github.com/matsen/ebookstore/internal/inventory"
	"github.com/matsen/ebookstore/internal/storage"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Show what would be imported without writing")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import books from a JSONL file",
	Long: `Import books from a JSONL file, one JSON object per line.

A book whose title and author already exist restocks that record instead
of creating a duplicate. Books with an empty field or a quantity below 1
are skipped.

Examples:
  ebookstore import books.jsonl
  ebookstore import books.jsonl --dry-run --human`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); err != nil {
		return failf(ExitError, "reading file: %v", err)
	}
	books, err := storage.ReadAll(inputPath)
	if err != nil {
		return failf(ExitDataError, "%v", err)
	}

	db, svc := mustOpenService(cmd.Context())
	defer db.Close()

	result, err := svc.Import(cmd.Context(), books, importDryRun)
	if err != nil {
		return failf(ExitError, "%v", err)
	}

	if humanOutput {
		printImportHuman(result, importDryRun)
		return nil
	}
	outputJSON(result)
	return nil
}

func printImportHuman(r inventory.ImportResult, dryRun bool) {
	verb := "Imported"
	if dryRun {
		verb = "Would import"
		for _, d := range r.Details {
			line := fmt.Sprintf("  %-8s %-6d %s", d.Action, d.ID, truncateString(d.Title, TitleColumnLen))
			if d.Reason != "" {
				line += " (" + d.Reason + ")"
			}
			fmt.Println(line)
		}
		fmt.Println()
	}
	fmt.Printf("%s %d, restocked %d, skipped %d\n", verb, r.Imported, r.Restocked, r.Skipped)
}
