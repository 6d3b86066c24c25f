package menu

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Input delivers one line of operator input at a time, without the
// trailing newline. It returns io.EOF when no more input will come.
type Input interface {
	ReadLine() (string, error)
}

type lineInput struct {
	r *bufio.Reader
}

// NewLineInput reads lines from r, typically os.Stdin.
func NewLineInput(r io.Reader) Input {
	return &lineInput{r: bufio.NewReader(r)}
}

func (l *lineInput) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		// A final line without a newline still counts.
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type script struct {
	lines []string
}

// Script replays lines in order, then reports io.EOF.
func Script(lines ...string) Input {
	return &script{lines: lines}
}

func (s *script) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}
