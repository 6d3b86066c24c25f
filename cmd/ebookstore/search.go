package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matsen/ebookstore/internal/book"
	"github.com/spf13/cobra"
)

var searchBy string

func init() {
	searchCmd.Flags().StringVar(&searchBy, "by", "title", "Field to search: id, title, author")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search books by ID, title or author",
	Long: `Search books by ID, title or author.

Title and author searches match any record containing the query,
ignoring case. An ID search returns at most one record.

Examples:
  ebookstore search "lord of the"
  ebookstore search --by author lewis
  ebookstore search --by id 3004 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := args[0]

	by := strings.ToLower(searchBy)
	var id int64
	switch by {
	case "id":
		n, err := strconv.ParseInt(strings.TrimSpace(query), 10, 64)
		if err != nil {
			return failf(ExitDataError, "invalid ID: %s", query)
		}
		id = n
	case "title", "author":
	default:
		return failf(ExitError, "unknown search field: %s (valid: id, title, author)", searchBy)
	}

	db, svc := mustOpenService(ctx)
	defer db.Close()

	var books []book.Book
	var err error
	switch by {
	case "id":
		books, err = svc.SearchByID(ctx, id)
	case "title":
		books, err = svc.SearchByTitle(ctx, query)
	case "author":
		books, err = svc.SearchByAuthor(ctx, query)
	}
	if err != nil {
		return failf(ExitError, "%v", err)
	}

	if humanOutput {
		if len(books) == 0 {
			fmt.Println("No books found")
			return nil
		}
		fmt.Printf("Found %d books:\n\n", len(books))
		printBookTable(os.Stdout, books)
		return nil
	}

	// Empty result is not an error
	if books == nil {
		books = []book.Book{}
	}
	outputJSON(books)
	return nil
}
