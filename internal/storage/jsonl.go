// Package storage handles data persistence in SQLite and JSONL formats.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matsen/ebookstore/internal/book"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all books from a JSONL file.
func ReadAll(path string) ([]book.Book, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file reads as empty
		}
		return nil, fmt.Errorf("opening books file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads JSONL-encoded books from r.
func Decode(r io.Reader) ([]book.Book, error) {
	var books []book.Book
	scanner := bufio.NewScanner(r)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var b book.Book
		if err := json.Unmarshal(line, &b); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		books = append(books, b)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading books: %w", err)
	}

	return books, nil
}

// WriteAll writes all books to a JSONL file, replacing existing content.
func WriteAll(path string, books []book.Book) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating books file: %w", err)
	}
	if err := Encode(f, books); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes books to w, one JSON object per line.
func Encode(w io.Writer, books []book.Book) error {
	for i, b := range books {
		data, err := json.Marshal(b)
		if err != nil {
			return fmt.Errorf("encoding book %d: %w", i, err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing book %d: %w", i, err)
		}
	}
	return nil
}
