package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/matsen/ebookstore/internal/book"
	"github.com/matsen/ebookstore/internal/inventory"
)

// add collects title, author and quantity, then adds or restocks.
func (s *Session) add(ctx context.Context) (State, error) {
	var title, author string
	var qty int
	for {
		s.say("Enter the details for the book you wish to add")
		var err error
		if title, err = s.ask("Title: "); err != nil {
			return StateMainMenu, err
		}
		if author, err = s.ask("Author: "); err != nil {
			return StateMainMenu, err
		}
		qtyStr, err := s.ask("Quantity: ")
		if err != nil {
			return StateMainMenu, err
		}

		if qty, err = strconv.Atoi(qtyStr); err != nil {
			s.say("Sorry, please enter a valid integer for the quantity.")
			continue
		}
		if book.Capwords(title) == "" || book.Capwords(author) == "" {
			s.say("Sorry, none of the fields can be empty.")
			continue
		}
		break
	}

	res, err := s.svc.Add(ctx, title, author, qty)
	switch {
	case errors.Is(err, inventory.ErrNonPositiveQty):
		s.say("Sorry, you cannot add nil or negative stock.")
		return StateMainMenu, nil
	case errors.Is(err, inventory.ErrEmptyField):
		s.say("Sorry, none of the fields can be empty.")
		return StateMainMenu, nil
	case err != nil:
		return StateMainMenu, err
	}

	b := res.Book
	switch {
	case res.Restocked:
		s.reportQty(inventory.QtyChange{ID: b.ID, OldQty: res.OldQty, NewQty: b.Qty, Negative: b.Qty < 0})
	case b.Qty == 1:
		s.say("1 copy of '%s' by '%s' has been added.", b.Title, b.Author)
	default:
		s.say("%d copies of '%s' by '%s' have been added.", b.Qty, b.Title, b.Author)
	}
	return StateMainMenu, nil
}

// update loads the record to change.
func (s *Session) update(ctx context.Context) (State, error) {
	id, err := s.askID("Enter the ID of the book you wish to update")
	if err != nil {
		return StateMainMenu, err
	}

	b, err := s.svc.Get(ctx, id)
	if err != nil {
		return StateMainMenu, err
	}
	if b == nil {
		s.say(msgNotFound)
		return StateMainMenu, nil
	}
	s.current = *b
	return StateUpdateField, nil
}

// updateField applies one field change to the record loaded by update.
func (s *Session) updateField(ctx context.Context) (State, error) {
	choice, ok, err := s.askChoice(updateMenuText, 3)
	if err != nil {
		return StateMainMenu, err
	}
	if !ok {
		return StateUpdateField, nil
	}

	switch choice {
	case 1:
		title, err := s.askText("\nEnter the updated title: ")
		if err != nil {
			return StateMainMenu, err
		}
		change, err := s.svc.UpdateTitle(ctx, s.current, title)
		if err != nil {
			return StateMainMenu, err
		}
		if change.Unchanged {
			s.say("The book with ID=%d already has the title '%s'.", change.ID, change.New)
		} else {
			s.say("The title of the book with ID=%d has been updated from '%s' to '%s'.", change.ID, change.Old, change.New)
		}

	case 2:
		author, err := s.askText("\nEnter the updated author: ")
		if err != nil {
			return StateMainMenu, err
		}
		change, err := s.svc.UpdateAuthor(ctx, s.current, author)
		if err != nil {
			return StateMainMenu, err
		}
		if change.Unchanged {
			s.say("The book with ID=%d already has the author '%s'.", change.ID, change.New)
		} else {
			s.say("The author of the book with ID=%d has been updated from '%s' to '%s'.", change.ID, change.Old, change.New)
		}

	case 3:
		var delta int
		for {
			line, err := s.ask("\nEnter the number of books you wish to add: ")
			if err != nil {
				return StateMainMenu, err
			}
			if delta, err = strconv.Atoi(line); err != nil {
				s.say("Sorry, please enter a valid integer.")
				continue
			}
			break
		}
		change, err := s.svc.UpdateQty(ctx, s.current, delta)
		if err != nil {
			return StateMainMenu, err
		}
		s.reportQty(change)
	}
	return StateMainMenu, nil
}

// askText prompts until a non-empty value is entered and returns it
// title-cased.
func (s *Session) askText(prompt string) (string, error) {
	for {
		line, err := s.ask(prompt)
		if err != nil {
			return "", err
		}
		if v := book.Capwords(line); v != "" {
			return v, nil
		}
		s.say("Sorry, this field cannot be empty.")
	}
}

func (s *Session) reportQty(change inventory.QtyChange) {
	if change.Negative {
		s.say("You cannot have negative stock. Please try again.")
		return
	}
	s.say("Number of books with ID=%d has been updated from '%d' to '%d'.", change.ID, change.OldQty, change.NewQty)
}

// delete removes a record after an explicit Yes.
func (s *Session) delete(ctx context.Context) (State, error) {
	id, err := s.askID("Enter the ID of the book you wish to delete")
	if err != nil {
		return StateMainMenu, err
	}

	b, err := s.svc.Get(ctx, id)
	if err != nil {
		return StateMainMenu, err
	}
	if b == nil {
		s.say(msgNotFound)
		return StateMainMenu, nil
	}

	confirmed, err := s.confirm("Are you sure you wish to delete '%s' by '%s'?", b.Title, b.Author)
	if err != nil {
		return StateMainMenu, err
	}
	if !confirmed {
		s.say("Delete operation cancelled.")
		return StateMainMenu, nil
	}

	if err := s.svc.Delete(ctx, id); err != nil {
		return StateMainMenu, err
	}
	s.say("'%s' by '%s' has been deleted.", b.Title, b.Author)
	return StateMainMenu, nil
}

// confirm asks a Yes/No question until it gets one of the two. The go-back
// token counts as No.
func (s *Session) confirm(format string, args ...any) (bool, error) {
	s.say(format, args...)
	for {
		answer, err := s.ask("Yes/No: ")
		if errors.Is(err, errGoBack) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch {
		case strings.EqualFold(answer, "yes"):
			return true, nil
		case strings.EqualFold(answer, "no"):
			return false, nil
		}
		s.say("Sorry, please answer 'Yes' or 'No'.")
	}
}

// search reads which field to search by.
func (s *Session) search() (State, error) {
	choice, ok, err := s.askChoice(searchMenuText, 3)
	if err != nil {
		return StateMainMenu, err
	}
	if !ok {
		return StateSearch, nil
	}
	s.searchMode = choice
	return StateSearchMode, nil
}

// searchByMode runs the search chosen in search and prints the results.
func (s *Session) searchByMode(ctx context.Context) (State, error) {
	var results []book.Book
	switch s.searchMode {
	case 1:
		id, err := s.askID("Enter the ID of the record you wish to search")
		if err != nil {
			return StateMainMenu, err
		}
		if results, err = s.svc.SearchByID(ctx, id); err != nil {
			return StateMainMenu, err
		}
		if len(results) == 0 {
			s.say(msgNotFound)
			return StateMainMenu, nil
		}

	case 2, 3:
		field, search := "title", s.svc.SearchByTitle
		if s.searchMode == 3 {
			field, search = "author", s.svc.SearchByAuthor
		}
		s.say("Enter a keyword or the %s you wish to search", field)
		keyword, err := s.ask("Search: ")
		if err != nil {
			return StateMainMenu, err
		}
		if results, err = search(ctx, keyword); err != nil {
			return StateMainMenu, err
		}
		if len(results) == 0 {
			s.say("No results found.")
			return StateMainMenu, nil
		}
	}

	s.say("Search Results (ID, Title, Author, Quantity):")
	for _, b := range results {
		fmt.Fprintln(s.out, b.Tuple())
	}
	return StateMainMenu, nil
}
