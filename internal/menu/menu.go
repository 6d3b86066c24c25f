// Package menu runs the interactive bookstore console as an explicit state
// machine. Input arrives through the Input interface, so a session can be
// driven by a terminal or by a fixed script.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matsen/ebookstore/internal/book"
	"github.com/matsen/ebookstore/internal/inventory"
)

// GoBack is the token that abandons the current flow from any prompt.
const GoBack = `\`

// State is a node of the menu state machine.
type State int

const (
	StateMainMenu State = iota
	StateAdd
	StateUpdate
	StateUpdateField
	StateDelete
	StateSearch
	StateSearchMode
	StateExit
)

var stateNames = [...]string{
	StateMainMenu:    "main-menu",
	StateAdd:         "add",
	StateUpdate:      "update",
	StateUpdateField: "update-field",
	StateDelete:      "delete",
	StateSearch:      "search",
	StateSearchMode:  "search-mode",
	StateExit:        "exit",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

const (
	mainMenuText = `
Select one of the following options:
1. Add a book
2. Update a book
3. Delete a book
4. Search books
5. Show inventory
0. Exit
`
	updateMenuText = `
1. Update Title
2. Update Author
3. Update Quantity
`
	searchMenuText = `
Search by:
1. ID
2. Title
3. Author
`

	msgBadOption = "Sorry, please enter a number from the options given."
	msgBadID     = "Sorry, please enter a valid ID."
	msgNotFound  = "A record with that ID does not exist."
)

// errGoBack is returned by ask when the operator entered GoBack.
var errGoBack = errors.New("go back")

// Session is one interactive run against an inventory service.
type Session struct {
	in  Input
	out io.Writer
	svc *inventory.Service

	current    book.Book // record loaded by the update flow
	searchMode int       // 1 id, 2 title, 3 author
}

// New returns a session reading from in and writing to out.
func New(in Input, out io.Writer, svc *inventory.Service) *Session {
	return &Session{in: in, out: out, svc: svc}
}

// Welcome prints the banner shown at startup.
func (s *Session) Welcome(firstRun bool) {
	if firstRun {
		s.say("Welcome! This is your eBookStore Programme to easily add, update and take stock of your bookshop inventory.\n" +
			"If you ever want to return to the main menu, simply enter '" + GoBack + "' into the terminal no matter where you are in the programme.")
		return
	}
	s.say("Welcome Back! Remember, to go back to the main menu at any point just enter '" + GoBack + "'.")
}

// Run drives the state machine until the operator exits or input ends.
// Storage failures end the session and are returned.
func (s *Session) Run(ctx context.Context) error {
	state := StateMainMenu
	for state != StateExit {
		next, err := s.step(ctx, state)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", state, err)
		}
		state = next
	}
	return nil
}

func (s *Session) step(ctx context.Context, state State) (State, error) {
	var next State
	var err error
	switch state {
	case StateMainMenu:
		next, err = s.mainMenu(ctx)
	case StateAdd:
		next, err = s.add(ctx)
	case StateUpdate:
		next, err = s.update(ctx)
	case StateUpdateField:
		next, err = s.updateField(ctx)
	case StateDelete:
		next, err = s.delete(ctx)
	case StateSearch:
		next, err = s.search()
	case StateSearchMode:
		next, err = s.searchByMode(ctx)
	default:
		return StateExit, fmt.Errorf("unknown state %d", state)
	}
	if errors.Is(err, errGoBack) {
		return StateMainMenu, nil
	}
	return next, err
}

func (s *Session) mainMenu(ctx context.Context) (State, error) {
	line, err := s.read(mainMenuText)
	if err != nil {
		return StateExit, err
	}

	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		s.say(msgBadOption)
		return StateMainMenu, nil
	}

	switch choice {
	case 1:
		return StateAdd, nil
	case 2:
		return StateUpdate, nil
	case 3:
		return StateDelete, nil
	case 4:
		return StateSearch, nil
	case 5:
		return StateMainMenu, s.showInventory(ctx)
	case 0:
		s.say("Goodbye :)\n")
		return StateExit, nil
	default:
		s.say(msgBadOption)
		return StateMainMenu, nil
	}
}

// showInventory prints every record between two borders sized to the
// longest record.
func (s *Session) showInventory(ctx context.Context) error {
	books, err := s.svc.List(ctx)
	if err != nil {
		return err
	}

	width := 0
	for _, b := range books {
		width = max(width, b.PrintedLen())
	}
	border := strings.Repeat("-", width+12)

	s.say("INVENTORY")
	fmt.Fprintln(s.out, border)
	for _, b := range books {
		fmt.Fprintln(s.out, b.Tuple())
	}
	fmt.Fprintln(s.out, border)
	return nil
}

// say prints a message preceded by a blank line.
func (s *Session) say(format string, args ...any) {
	fmt.Fprintf(s.out, "\n"+format+"\n", args...)
}

// read prints prompt and returns the next input line as entered.
func (s *Session) read(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	return s.in.ReadLine()
}

// ask is read with the go-back token honored. The answer is trimmed.
func (s *Session) ask(prompt string) (string, error) {
	line, err := s.read(prompt)
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == GoBack {
		return "", errGoBack
	}
	return line, nil
}

// askID prompts until the operator enters an integer.
func (s *Session) askID(intro string) (int64, error) {
	for {
		s.say(intro)
		line, err := s.ask("ID: ")
		if err != nil {
			return 0, err
		}
		id, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			s.say(msgBadID)
			continue
		}
		return id, nil
	}
}

// askChoice reads a sub-menu choice in [1, n]. ok is false when the input
// was not a valid choice; the error message has already been printed.
func (s *Session) askChoice(prompt string, n int) (choice int, ok bool, err error) {
	line, err := s.ask(prompt)
	if err != nil {
		return 0, false, err
	}
	choice, convErr := strconv.Atoi(line)
	if convErr != nil || choice < 1 || choice > n {
		s.say(msgBadOption)
		return 0, false, nil
	}
	return choice, true, nil
}
