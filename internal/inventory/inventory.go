// Package inventory implements the record operations of the bookstore:
// add with restock, field updates, delete, search and listing.
//
// Service holds no state of its own. Everything it knows comes from the
// Repository it was built with, so the same logic runs against SQLite or
// the in-memory store in package inventorytest.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/matsen/ebookstore/internal/book"
)

var (
	// ErrEmptyField is returned when a title or author is blank.
	ErrEmptyField = errors.New("none of the fields can be empty")
	// ErrNonPositiveQty is returned when adding fewer than one copy.
	ErrNonPositiveQty = errors.New("cannot add nil or negative stock")
)

// Repository is the storage the service runs against.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*book.Book, error)
	FindByTitleAuthor(ctx context.Context, title, author string) (*book.Book, error)
	Insert(ctx context.Context, title, author string, qty int) (int64, error)
	InsertWithID(ctx context.Context, b book.Book) error
	SetTitle(ctx context.Context, id int64, title string) error
	SetAuthor(ctx context.Context, id int64, author string) error
	SetQty(ctx context.Context, id int64, qty int) error
	Delete(ctx context.Context, id int64) error
	SearchTitle(ctx context.Context, pattern string) ([]book.Book, error)
	SearchAuthor(ctx context.Context, pattern string) ([]book.Book, error)
	ListAll(ctx context.Context) ([]book.Book, error)
	Count(ctx context.Context) (int, error)
	TotalQty(ctx context.Context) (int, error)
}

// Service performs record operations on a Repository.
type Service struct {
	repo Repository
}

// New returns a Service backed by repo.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddResult describes what Add did.
type AddResult struct {
	Book      book.Book // the inserted or restocked record, after the change
	Restocked bool
	OldQty    int // only meaningful when Restocked
}

// QtyChange describes the effect of UpdateQty.
type QtyChange struct {
	ID       int64
	OldQty   int
	NewQty   int
	Negative bool // NewQty < 0; the value was stored anyway
}

// FieldChange describes the effect of UpdateTitle or UpdateAuthor.
type FieldChange struct {
	ID        int64
	Old       string
	New       string
	Unchanged bool
}

// Add inserts a book, or restocks the existing record with the same title
// and author by adding qty to its quantity. Title and author match without
// regard to ASCII case, and a restocked record keeps its stored spelling.
func (s *Service) Add(ctx context.Context, title, author string, qty int) (AddResult, error) {
	title = book.Capwords(title)
	author = book.Capwords(author)
	if title == "" || author == "" {
		return AddResult{}, ErrEmptyField
	}
	if qty < 1 {
		return AddResult{}, ErrNonPositiveQty
	}

	existing, err := s.repo.FindByTitleAuthor(ctx, title, author)
	if err != nil {
		return AddResult{}, fmt.Errorf("looking up book: %w", err)
	}

	if existing != nil {
		change, err := s.UpdateQty(ctx, *existing, qty)
		if err != nil {
			return AddResult{}, err
		}
		restocked := *existing
		restocked.Qty = change.NewQty
		slog.InfoContext(ctx, "Restocked book", "id", restocked.ID, "from", change.OldQty, "to", change.NewQty)
		return AddResult{Book: restocked, Restocked: true, OldQty: change.OldQty}, nil
	}

	id, err := s.repo.Insert(ctx, title, author, qty)
	if err != nil {
		return AddResult{}, fmt.Errorf("adding book: %w", err)
	}
	return AddResult{Book: book.Book{ID: id, Title: title, Author: author, Qty: qty}}, nil
}

// UpdateTitle writes newTitle to the record. Unchanged is decided against
// the snapshot the caller loaded, not the stored row.
func (s *Service) UpdateTitle(ctx context.Context, snapshot book.Book, newTitle string) (FieldChange, error) {
	if err := s.repo.SetTitle(ctx, snapshot.ID, newTitle); err != nil {
		return FieldChange{}, fmt.Errorf("updating title: %w", err)
	}
	return FieldChange{
		ID:        snapshot.ID,
		Old:       snapshot.Title,
		New:       newTitle,
		Unchanged: snapshot.Title == newTitle,
	}, nil
}

// UpdateAuthor writes newAuthor to the record. Unchanged is decided against
// the snapshot the caller loaded, not the stored row.
func (s *Service) UpdateAuthor(ctx context.Context, snapshot book.Book, newAuthor string) (FieldChange, error) {
	if err := s.repo.SetAuthor(ctx, snapshot.ID, newAuthor); err != nil {
		return FieldChange{}, fmt.Errorf("updating author: %w", err)
	}
	return FieldChange{
		ID:        snapshot.ID,
		Old:       snapshot.Author,
		New:       newAuthor,
		Unchanged: snapshot.Author == newAuthor,
	}, nil
}

// UpdateQty sets the quantity to snapshot.Qty + delta. A negative result is
// stored and flagged, never rejected.
func (s *Service) UpdateQty(ctx context.Context, snapshot book.Book, delta int) (QtyChange, error) {
	newQty := snapshot.Qty + delta
	if err := s.repo.SetQty(ctx, snapshot.ID, newQty); err != nil {
		return QtyChange{}, fmt.Errorf("updating quantity: %w", err)
	}
	change := QtyChange{ID: snapshot.ID, OldQty: snapshot.Qty, NewQty: newQty, Negative: newQty < 0}
	if change.Negative {
		slog.WarnContext(ctx, "Negative stock stored", "id", snapshot.ID, "qty", newQty)
	}
	return change, nil
}

// Delete removes the record with the given ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	slog.InfoContext(ctx, "Deleted book", "id", id)
	return nil
}

// Get returns the record with the given ID, or nil.
func (s *Service) Get(ctx context.Context, id int64) (*book.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading book: %w", err)
	}
	return b, nil
}

// SearchByID returns zero or one record.
func (s *Service) SearchByID(ctx context.Context, id int64) ([]book.Book, error) {
	b, err := s.Get(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	return []book.Book{*b}, nil
}

// SearchByTitle returns every record whose title contains keyword,
// ignoring case.
func (s *Service) SearchByTitle(ctx context.Context, keyword string) ([]book.Book, error) {
	books, err := s.repo.SearchTitle(ctx, likePattern(keyword))
	if err != nil {
		return nil, fmt.Errorf("searching titles: %w", err)
	}
	return books, nil
}

// SearchByAuthor returns every record whose author contains keyword,
// ignoring case.
func (s *Service) SearchByAuthor(ctx context.Context, keyword string) ([]book.Book, error) {
	books, err := s.repo.SearchAuthor(ctx, likePattern(keyword))
	if err != nil {
		return nil, fmt.Errorf("searching authors: %w", err)
	}
	return books, nil
}

func likePattern(keyword string) string {
	return "%" + strings.TrimSpace(book.Capwords(keyword)) + "%"
}

// List returns every record in storage order.
func (s *Service) List(ctx context.Context) ([]book.Book, error) {
	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return books, nil
}

// Stats summarizes the inventory.
type Stats struct {
	Records int `json:"records"`
	Copies  int `json:"copies"`
}

// Stats counts records and copies.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("counting books: %w", err)
	}
	total, err := s.repo.TotalQty(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("summing quantities: %w", err)
	}
	return Stats{Records: n, Copies: total}, nil
}
