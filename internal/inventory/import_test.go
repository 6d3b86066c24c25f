package inventory

import (
	"context"
	"testing"

	"github.com/matsen/ebookstore/internal/book"
	"github.com/matsen/ebookstore/internal/inventory/inventorytest"
)

func TestService_Import(t *testing.T) {
	incoming := []book.Book{
		{ID: 3005, Title: "alice in wonderland", Author: "lewis carroll", Qty: 8},
		{ID: 10, Title: "Emma", Author: "Jane Austen", Qty: 2},
		{ID: 3001, Title: "Persuasion", Author: "Jane Austen", Qty: 1},
		{ID: 11, Title: "emma", Author: "jane austen", Qty: 3},
		{ID: 12, Title: "Nothing", Author: "Nobody", Qty: 0},
		{ID: 13, Title: "", Author: "Nobody", Qty: 1},
	}

	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			svc := New(repo)
			ctx := context.Background()

			result, err := svc.Import(ctx, incoming, false)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if result.Imported != 2 || result.Restocked != 2 || result.Skipped != 2 {
				t.Errorf("Import() = %d imported, %d restocked, %d skipped; want 2, 2, 2",
					result.Imported, result.Restocked, result.Skipped)
			}

			wantActions := []string{ActionRestock, ActionImport, ActionImport, ActionRestock, ActionSkip, ActionSkip}
			for i, d := range result.Details {
				if d.Action != wantActions[i] {
					t.Errorf("Details[%d].Action = %q, want %q", i, d.Action, wantActions[i])
				}
			}

			if got := mustGet(t, repo, 3005).Qty; got != 20 {
				t.Errorf("qty of 3005 = %d, want 20", got)
			}
			// Free ID kept.
			if got := mustGet(t, repo, 10); got.Title != "Emma" || got.Qty != 5 {
				t.Errorf("book 10 = %+v, want Emma with 5 copies", got)
			}
			// Taken ID replaced with a fresh one.
			if got := result.Details[2].ID; got == 3001 || got == 0 {
				t.Errorf("Persuasion id = %d, want a fresh id", got)
			}
			if n := mustCount(t, repo); n != 7 {
				t.Errorf("Count() = %d, want 7", n)
			}
		})
	}
}

func TestService_Import_DryRun(t *testing.T) {
	repo := inventorytest.NewMemStore(book.Seed...)
	svc := New(repo)
	ctx := context.Background()

	incoming := []book.Book{
		{ID: 20, Title: "Middlemarch", Author: "George Eliot", Qty: 1},
		{ID: 21, Title: "middlemarch", Author: "george eliot", Qty: 1},
		{Title: "The Lord Of The Rings", Author: "J.r.r Tolkien", Qty: 1},
	}

	result, err := svc.Import(ctx, incoming, true)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Imported != 1 || result.Restocked != 2 {
		t.Errorf("Import() = %+v, want 1 imported, 2 restocked", result)
	}
	if result.Details[1].Reason != "duplicate_in_batch" {
		t.Errorf("Details[1].Reason = %q, want duplicate_in_batch", result.Details[1].Reason)
	}
	// Matches the seeded row despite different capitalization.
	if d := result.Details[2]; d.Action != ActionRestock || d.ID != 3004 {
		t.Errorf("Details[2] = %+v, want restock of 3004", d)
	}
	if got := mustGet(t, repo, 3004).Qty; got != 37 {
		t.Errorf("qty of 3004 after dry run = %d, want 37", got)
	}
	if n := mustCount(t, repo); n != 5 {
		t.Errorf("Count() after dry run = %d, want 5", n)
	}
}
