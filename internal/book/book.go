// Package book defines the inventory record and the text normalization
// applied to it before it reaches storage.
package book

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Book is one row of the books table.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Qty    int    `json:"qty"`
}

// Seed is inserted with explicit IDs the first time the table is created.
var Seed = []Book{
	{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", Qty: 30},
	{ID: 3002, Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", Qty: 40},
	{ID: 3003, Title: "The Lion, the Witch and the Wardrobe", Author: "C.S. Lewis", Qty: 25},
	{ID: 3004, Title: "The Lord of the Rings", Author: "J.R.R Tolkien", Qty: 37},
	{ID: 3005, Title: "Alice in Wonderland", Author: "Lewis Carroll", Qty: 12},
}

// Capwords title-cases the first letter of every whitespace-separated word
// and lower-cases the rest. Runs of whitespace collapse to one space and
// leading/trailing whitespace is dropped.
func Capwords(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	title := cases.Title(language.Und)
	lower := cases.Lower(language.Und)
	for i, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		words[i] = title.String(w[:size]) + lower.String(w[size:])
	}
	return strings.Join(words, " ")
}

// Tuple formats the record as "(id, 'title', 'author', qty)".
func (b Book) Tuple() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(strconv.FormatInt(b.ID, 10))
	sb.WriteString(", ")
	sb.WriteString(quote(b.Title))
	sb.WriteString(", ")
	sb.WriteString(quote(b.Author))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(b.Qty))
	sb.WriteByte(')')
	return sb.String()
}

// PrintedLen is the combined character count of the four field values.
func (b Book) PrintedLen() int {
	return len(strconv.FormatInt(b.ID, 10)) +
		utf8.RuneCountInString(b.Title) +
		utf8.RuneCountInString(b.Author) +
		len(strconv.Itoa(b.Qty))
}

// quote wraps s in single quotes, switching to double quotes when s holds
// a single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == rune(q):
			sb.WriteByte('\\')
			sb.WriteByte(q)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
