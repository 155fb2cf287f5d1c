package interp

import (
	"errors"
	"fmt"

	"github.com/roach88/addressbook/internal/contact"
)

// messages maps every error code to its user-facing text.
var messages = map[contact.Code]func(value string) string{
	contact.CodeInvalidPhone: func(v string) string {
		return fmt.Sprintf("Invalid phone number %q: use digits only.", v)
	},
	contact.CodeInvalidDate: func(v string) string {
		return fmt.Sprintf("Invalid birthday %q: use YYYY-MM-DD.", v)
	},
	contact.CodeInvalidName: func(v string) string {
		return fmt.Sprintf("Invalid name %q: names must be valid UTF-8 text.", v)
	},
	contact.CodeNotFound: func(v string) string {
		return fmt.Sprintf("Contact %s not found.", v)
	},
	contact.CodeInsufficientRecords: func(v string) string {
		return fmt.Sprintf("Cannot show %s records: not enough contacts saved.", v)
	},
	contact.CodePersistence: func(string) string {
		return "The address book could not be read or written."
	},
	contact.CodeNoSnapshot: func(string) string {
		return "No saved address book found. Starting with an empty one."
	},
	contact.CodeLastPhone: func(v string) string {
		return fmt.Sprintf("Cannot remove %s: a contact needs at least one phone number.", v)
	},
	CodeInvalidArguments: func(v string) string {
		return "Invalid arguments. Usage: " + v
	},
	CodeUnrecognized: func(string) string {
		return "Unrecognized command. Try again."
	},
}

// Message returns the user-facing text for err.
func Message(err error) string {
	var e *contact.Error
	if errors.As(err, &e) {
		if msg, ok := messages[e.Code]; ok {
			return msg(e.Value)
		}
	}
	return "Error: " + err.Error()
}
