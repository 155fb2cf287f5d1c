package harness

import (
	"fmt"
	"slices"

	"github.com/roach88/addressbook/internal/addressbook"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

func evaluateAssertion(book *addressbook.Book, a Assertion) error {
	switch a.Type {
	case AssertCount:
		return assertCount(book, *a.Count)
	case AssertOrder:
		return assertOrder(book, a.Names)
	case AssertContact:
		return assertContact(book, a)
	case AssertAbsent:
		return assertAbsent(book, a.Name)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertCount(book *addressbook.Book, want int) error {
	if got := book.Len(); got != want {
		return &AssertionError{
			Type:     AssertCount,
			Expected: fmt.Sprintf("%d contacts", want),
			Actual:   fmt.Sprintf("%d contacts %v", got, book.Names()),
		}
	}
	return nil
}

func assertOrder(book *addressbook.Book, want []string) error {
	if got := book.Names(); !slices.Equal(got, want) {
		return &AssertionError{
			Type:     AssertOrder,
			Expected: fmt.Sprintf("%v", want),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

func assertContact(book *addressbook.Book, a Assertion) error {
	r, err := book.Get(a.Name)
	if err != nil {
		return &AssertionError{
			Type:     AssertContact,
			Expected: fmt.Sprintf("contact %q", a.Name),
			Actual:   fmt.Sprintf("no such contact in %v", book.Names()),
		}
	}

	if a.Phones != nil && !slices.Equal(r.Phones(), a.Phones) {
		return &AssertionError{
			Type:     AssertContact,
			Expected: fmt.Sprintf("%s phones %v", a.Name, a.Phones),
			Actual:   fmt.Sprintf("%v", r.Phones()),
		}
	}

	if a.Birthday != nil && r.BirthdayValue() != *a.Birthday {
		return &AssertionError{
			Type:     AssertContact,
			Expected: fmt.Sprintf("%s birthday %q", a.Name, *a.Birthday),
			Actual:   fmt.Sprintf("%q", r.BirthdayValue()),
		}
	}
	return nil
}

func assertAbsent(book *addressbook.Book, name string) error {
	if book.Has(name) {
		return &AssertionError{
			Type:     AssertAbsent,
			Expected: fmt.Sprintf("no contact %q", name),
			Actual:   "contact is stored",
		}
	}
	return nil
}
