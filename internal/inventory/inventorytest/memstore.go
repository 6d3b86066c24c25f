// Package inventorytest provides an in-memory inventory.Repository for
// tests that should not touch SQLite.
package inventorytest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/matsen/ebookstore/internal/book"
)

// MemStore is an in-memory inventory.Repository. IDs are assigned like SQLite's
// INTEGER PRIMARY KEY: one past the largest ID in use.
type MemStore struct {
	mu    sync.Mutex
	books map[int64]book.Book
}

// NewMemStore returns a store holding a copy of books.
func NewMemStore(books ...book.Book) *MemStore {
	m := &MemStore{books: make(map[int64]book.Book, len(books))}
	for _, b := range books {
		m.books[b.ID] = b
	}
	return m
}

func (m *MemStore) GetByID(_ context.Context, id int64) (*book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *MemStore) FindByTitleAuthor(_ context.Context, title, author string) (*book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.sorted() {
		if asciiLower(b.Title) == asciiLower(title) && asciiLower(b.Author) == asciiLower(author) {
			return &b, nil
		}
	}
	return nil, nil
}

func (m *MemStore) Insert(_ context.Context, title, author string, qty int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var id int64 = 1
	for existing := range m.books {
		if existing >= id {
			id = existing + 1
		}
	}
	m.books[id] = book.Book{ID: id, Title: title, Author: author, Qty: qty}
	return id, nil
}

func (m *MemStore) InsertWithID(_ context.Context, b book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; ok {
		return fmt.Errorf("inserting book %d: id already in use", b.ID)
	}
	m.books[b.ID] = b
	return nil
}

func (m *MemStore) SetTitle(_ context.Context, id int64, title string) error {
	return m.update(id, func(b *book.Book) { b.Title = title })
}

func (m *MemStore) SetAuthor(_ context.Context, id int64, author string) error {
	return m.update(id, func(b *book.Book) { b.Author = author })
}

func (m *MemStore) SetQty(_ context.Context, id int64, qty int) error {
	return m.update(id, func(b *book.Book) { b.Qty = qty })
}

// update applies fn to the book with the given ID. A missing ID is a no-op,
// matching an UPDATE that affects zero rows.
func (m *MemStore) update(id int64, fn func(*book.Book)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil
	}
	fn(&b)
	m.books[id] = b
	return nil
}

func (m *MemStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books, id)
	return nil
}

func (m *MemStore) SearchTitle(_ context.Context, pattern string) ([]book.Book, error) {
	return m.filter(func(b book.Book) bool { return like(pattern, b.Title) }), nil
}

func (m *MemStore) SearchAuthor(_ context.Context, pattern string) ([]book.Book, error) {
	return m.filter(func(b book.Book) bool { return like(pattern, b.Author) }), nil
}

func (m *MemStore) ListAll(_ context.Context) ([]book.Book, error) {
	return m.filter(func(book.Book) bool { return true }), nil
}

func (m *MemStore) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.books), nil
}

func (m *MemStore) TotalQty(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, b := range m.books {
		total += b.Qty
	}
	return total, nil
}

func (m *MemStore) filter(keep func(book.Book) bool) []book.Book {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []book.Book
	for _, b := range m.sorted() {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// sorted returns the books in ID order. Callers hold mu.
func (m *MemStore) sorted() []book.Book {
	out := make([]book.Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// like reports whether s matches a SQL LIKE pattern with SQLite's default
// semantics: % and _ wildcards, ASCII letters compared without case.
func like(pattern, s string) bool {
	p := []rune(asciiLower(pattern))
	r := []rune(asciiLower(s))

	// match[j] is true when p[:i] matches r[:j].
	match := make([]bool, len(r)+1)
	match[0] = true
	for i := range p {
		next := make([]bool, len(r)+1)
		switch p[i] {
		case '%':
			next[0] = match[0]
			for j := 1; j <= len(r); j++ {
				next[j] = next[j-1] || match[j]
			}
		case '_':
			for j := 1; j <= len(r); j++ {
				next[j] = match[j-1]
			}
		default:
			for j := 1; j <= len(r); j++ {
				next[j] = match[j-1] && r[j-1] == p[i]
			}
		}
		match = next
	}
	return match[len(r)]
}

func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
