package book

import "testing"

func TestCapwords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice in wonderland", "Alice In Wonderland"},
		{"  lewis   carroll ", "Lewis Carroll"},
		{"THE LORD OF THE RINGS", "The Lord Of The Rings"},
		{"j.k. rowling", "J.k. Rowling"},
		{"philosopher's stone", "Philosopher's Stone"},
		{"", ""},
		{"   ", ""},
		{`\`, `\`},
		{"émile zola", "Émile Zola"},
		{"ßtraße", "Sstraße"},
		{"ǆemal bijedić", "ǅemal Bijedić"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Capwords(tt.in); got != tt.want {
				t.Errorf("Capwords(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBook_Tuple(t *testing.T) {
	tests := []struct {
		name string
		b    Book
		want string
	}{
		{
			name: "plain",
			b:    Seed[0],
			want: "(3001, 'A Tale of Two Cities', 'Charles Dickens', 30)",
		},
		{
			name: "apostrophe switches to double quotes",
			b:    Seed[1],
			want: `(3002, "Harry Potter and the Philosopher's Stone", 'J.K. Rowling', 40)`,
		},
		{
			name: "both quote kinds",
			b:    Book{ID: 7, Title: `It's "Fine"`, Author: "A", Qty: -2},
			want: `(7, 'It\'s "Fine"', 'A', -2)`,
		},
		{
			name: "backslash escaped",
			b:    Book{ID: 8, Title: `a\b`, Author: "B", Qty: 0},
			want: `(8, 'a\\b', 'B', 0)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Tuple(); got != tt.want {
				t.Errorf("Tuple() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBook_PrintedLen(t *testing.T) {
	// 4 + 20 + 15 + 2
	if got := Seed[0].PrintedLen(); got != 41 {
		t.Errorf("PrintedLen() = %d, want 41", got)
	}

	b := Book{ID: 1, Title: "Émile", Author: "Zola", Qty: -10}
	if got := b.PrintedLen(); got != 1+5+4+3 {
		t.Errorf("PrintedLen() = %d, want %d", got, 1+5+4+3)
	}
}
