package main

import (
	"fmt"
	"os"

	"github.com/matsen/ebookstore/internal/book"
	"github.com/spf13/cobra"
)

var listLimit int

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum results to return (0 = all)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	Long: `List all books in the inventory, ordered by ID.

Examples:
  ebookstore list
  ebookstore list --limit 10 --human`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, svc := mustOpenService(cmd.Context())
	defer db.Close()

	books, err := svc.List(cmd.Context())
	if err != nil {
		return failf(ExitError, "%v", err)
	}
	total := len(books)
	if listLimit > 0 && listLimit < total {
		books = books[:listLimit]
	}

	if humanOutput {
		if len(books) == 0 {
			fmt.Println("No books in inventory")
			return nil
		}
		if len(books) < total {
			fmt.Printf("%d books (showing first %d):\n\n", total, len(books))
		} else {
			fmt.Printf("%d books in inventory:\n\n", total)
		}
		printBookTable(os.Stdout, books)
		return nil
	}

	if books == nil {
		books = []book.Book{}
	}
	outputJSON(books)
	return nil
}
