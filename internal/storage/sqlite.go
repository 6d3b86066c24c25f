package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matsen/ebookstore/internal/book"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectBookFields contains the standard field list for SELECT queries.
const selectBookFields = `id, title, author, qty`

// OpenDB opens or creates a SQLite database at the given path.
// The books table is not touched until Init is called.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Init creates the books table and inserts the seed rows. It reports
// firstRun=false without touching anything when the table already exists.
func (d *DB) Init(ctx context.Context) (firstRun bool, err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("starting init: %w", err)
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'books'`).Scan(&name)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("checking books table: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE books (
			id INTEGER PRIMARY KEY,
			title TEXT,
			author TEXT,
			qty INTEGER
		)`); err != nil {
		return false, fmt.Errorf("creating books table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO books (id, title, author, qty) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return false, fmt.Errorf("preparing seed insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range book.Seed {
		if _, err := stmt.ExecContext(ctx, b.ID, b.Title, b.Author, b.Qty); err != nil {
			return false, fmt.Errorf("seeding book %d: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing seed: %w", err)
	}
	slog.DebugContext(ctx, "Seeded books table", "rows", len(book.Seed))
	return true, nil
}

// GetByID retrieves a book by its ID. It returns nil, nil when no row matches.
func (d *DB) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+selectBookFields+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if err != nil {
		return nil, fmt.Errorf("getting book %d: %w", id, err)
	}
	return b, nil
}

// FindByTitleAuthor returns the book with this title and author, compared
// with ASCII case folded, the lowest ID winning if there are several.
func (d *DB) FindByTitleAuthor(ctx context.Context, title, author string) (*book.Book, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT `+selectBookFields+`
		FROM books
		WHERE title = ? COLLATE NOCASE AND author = ? COLLATE NOCASE
		ORDER BY id
		LIMIT 1`, title, author)
	b, err := scanBook(row)
	if err != nil {
		return nil, fmt.Errorf("finding %q by %q: %w", title, author, err)
	}
	return b, nil
}

// Insert adds a book and returns the ID SQLite assigned to it.
func (d *DB) Insert(ctx context.Context, title, author string, qty int) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`INSERT INTO books (title, author, qty) VALUES (?, ?, ?)`, title, author, qty)
	if err != nil {
		return 0, fmt.Errorf("inserting book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	slog.DebugContext(ctx, "Inserted book", "id", id, "title", title, "author", author, "qty", qty)
	return id, nil
}

// InsertWithID adds a book under its own ID.
func (d *DB) InsertWithID(ctx context.Context, b book.Book) error {
	if _, err := d.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author, qty) VALUES (?, ?, ?, ?)`,
		b.ID, b.Title, b.Author, b.Qty); err != nil {
		return fmt.Errorf("inserting book %d: %w", b.ID, err)
	}
	slog.DebugContext(ctx, "Inserted book", "id", b.ID, "title", b.Title, "author", b.Author, "qty", b.Qty)
	return nil
}

// SetTitle overwrites the title of the book with the given ID.
func (d *DB) SetTitle(ctx context.Context, id int64, title string) error {
	return d.set(ctx, "title", id, title)
}

// SetAuthor overwrites the author of the book with the given ID.
func (d *DB) SetAuthor(ctx context.Context, id int64, author string) error {
	return d.set(ctx, "author", id, author)
}

// SetQty overwrites the quantity of the book with the given ID. Negative
// values are stored as given.
func (d *DB) SetQty(ctx context.Context, id int64, qty int) error {
	return d.set(ctx, "qty", id, qty)
}

// set updates one column. column is always one of the literals above.
func (d *DB) set(ctx context.Context, column string, id int64, value any) error {
	if _, err := d.db.ExecContext(ctx, `UPDATE books SET `+column+` = ? WHERE id = ?`, value, id); err != nil {
		return fmt.Errorf("updating %s of book %d: %w", column, id, err)
	}
	slog.DebugContext(ctx, "Updated book", "id", id, "column", column, "value", value)
	return nil
}

// Delete removes the book with the given ID.
func (d *DB) Delete(ctx context.Context, id int64) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting book %d: %w", id, err)
	}
	slog.DebugContext(ctx, "Deleted book", "id", id)
	return nil
}

// SearchTitle returns books whose title matches a LIKE pattern.
func (d *DB) SearchTitle(ctx context.Context, pattern string) ([]book.Book, error) {
	return d.searchField(ctx, "title", pattern)
}

// SearchAuthor returns books whose author matches a LIKE pattern.
func (d *DB) SearchAuthor(ctx context.Context, pattern string) ([]book.Book, error) {
	return d.searchField(ctx, "author", pattern)
}

func (d *DB) searchField(ctx context.Context, field, pattern string) ([]book.Book, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+selectBookFields+`
		FROM books
		WHERE `+field+` LIKE ?
		ORDER BY id`, pattern)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", field, err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// ListAll returns every book in storage order.
func (d *DB) ListAll(ctx context.Context) ([]book.Book, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+selectBookFields+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// Count returns the number of rows in the books table.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count)
	return count, err
}

// TotalQty returns the sum of all quantities.
func (d *DB) TotalQty(ctx context.Context) (int, error) {
	var total int
	err := d.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(qty), 0) FROM books").Scan(&total)
	return total, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (*book.Book, error) {
	var b book.Book
	var title, author sql.NullString
	var qty sql.NullInt64

	if err := s.Scan(&b.ID, &title, &author, &qty); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	b.Title = title.String
	b.Author = author.String
	b.Qty = int(qty.Int64)
	return &b, nil
}

func scanBooks(rows *sql.Rows) ([]book.Book, error) {
	var books []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		if b != nil {
			books = append(books, *b)
		}
	}
	return books, rows.Err()
}
