package inventory

import (
	"context"
	"fmt"

	"github.com/matsen/ebookstore/internal/book"
)

// Import actions.
const (
	ActionImport  = "import"
	ActionRestock = "restock"
	ActionSkip    = "skip"
)

// ImportDetail records what happened to one incoming book.
type ImportDetail struct {
	ID     int64  `json:"id"`
	Action string `json:"action"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Qty    int    `json:"qty"`
	Reason string `json:"reason,omitempty"`
}

// ImportResult summarizes an Import call.
type ImportResult struct {
	Imported  int            `json:"imported"`
	Restocked int            `json:"restocked"`
	Skipped   int            `json:"skipped"`
	Details   []ImportDetail `json:"details,omitempty"`
}

type titleAuthor struct {
	title, author string
}

// Import applies books with the same rule as Add: a book whose title and
// author already exist restocks that record, anything else is inserted.
// An incoming ID is kept when it is free. With dryRun nothing is written.
func (s *Service) Import(ctx context.Context, books []book.Book, dryRun bool) (ImportResult, error) {
	var result ImportResult
	// Books inserted earlier in this batch, for dry runs where the
	// repository never sees them.
	pending := make(map[titleAuthor]bool)
	pendingIDs := make(map[int64]bool)

	for _, in := range books {
		b := book.Book{
			ID:     in.ID,
			Title:  book.Capwords(in.Title),
			Author: book.Capwords(in.Author),
			Qty:    in.Qty,
		}
		detail := ImportDetail{ID: b.ID, Title: b.Title, Author: b.Author, Qty: b.Qty}

		switch {
		case b.Title == "" || b.Author == "":
			detail.Action, detail.Reason = ActionSkip, "empty_field"
		case b.Qty < 1:
			detail.Action, detail.Reason = ActionSkip, "non_positive_qty"
		}
		if detail.Action == ActionSkip {
			result.Skipped++
			result.Details = append(result.Details, detail)
			continue
		}

		existing, err := s.repo.FindByTitleAuthor(ctx, b.Title, b.Author)
		if err != nil {
			return result, fmt.Errorf("looking up %q: %w", b.Title, err)
		}

		switch {
		case existing != nil:
			detail.ID = existing.ID
			detail.Action = ActionRestock
			if !dryRun {
				if _, err := s.UpdateQty(ctx, *existing, b.Qty); err != nil {
					return result, err
				}
			}
			result.Restocked++

		case pending[titleAuthor{b.Title, b.Author}]:
			detail.Action = ActionRestock
			detail.Reason = "duplicate_in_batch"
			result.Restocked++

		default:
			detail.Action = ActionImport
			id, err := s.insertImported(ctx, b, dryRun, pendingIDs)
			if err != nil {
				return result, err
			}
			detail.ID = id
			if dryRun {
				pending[titleAuthor{b.Title, b.Author}] = true
			}
			result.Imported++
		}
		result.Details = append(result.Details, detail)
	}

	return result, nil
}

// insertImported inserts b under its own ID when that ID is free, otherwise
// under a fresh one. Dry runs report 0 for IDs SQLite would assign.
func (s *Service) insertImported(ctx context.Context, b book.Book, dryRun bool, pendingIDs map[int64]bool) (int64, error) {
	keepID := false
	if b.ID > 0 && !pendingIDs[b.ID] {
		taken, err := s.repo.GetByID(ctx, b.ID)
		if err != nil {
			return 0, fmt.Errorf("checking id %d: %w", b.ID, err)
		}
		keepID = taken == nil
	}

	if dryRun {
		if keepID {
			pendingIDs[b.ID] = true
			return b.ID, nil
		}
		return 0, nil
	}

	if keepID {
		if err := s.repo.InsertWithID(ctx, b); err != nil {
			return 0, fmt.Errorf("importing book: %w", err)
		}
		return b.ID, nil
	}
	id, err := s.repo.Insert(ctx, b.Title, b.Author, b.Qty)
	if err != nil {
		return 0, fmt.Errorf("importing book: %w", err)
	}
	return id, nil
}
