// Package interp turns command lines into address book operations.
//
// One line is one command. Verb words are matched case-insensitively and
// arguments keep their case. Every outcome, including errors, comes back as a
// Result so the caller decides how to print it; nothing here writes to a
// terminal or terminates the process.
package interp

import (
	"strings"
	"time"
	"unicode"

	"github.com/roach88/addressbook/internal/addressbook"
	"github.com/roach88/addressbook/internal/contact"
)

// Dispatcher-level codes. They share contact.Code so a single message table
// covers every failure a command can produce.
const (
	CodeInvalidArguments contact.Code = "INVALID_ARGUMENTS"
	CodeUnrecognized     contact.Code = "UNRECOGNIZED_COMMAND"
)

// Clock supplies "today" for birthday calculations.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Result is the outcome of one command.
type Result struct {
	// Output is the human-readable reply. For failures it is the message
	// from the error table.
	Output string

	// Data is the structured payload for machine-readable output.
	Data any

	// Err is set when the command failed.
	Err error

	// Quit reports that the session should end.
	Quit bool

	// Mutated reports that the command changed the book.
	Mutated bool
}

// Code returns the error code of a failed Result, or "" on success.
func (r Result) Code() contact.Code {
	return contact.CodeOf(r.Err)
}

// Interpreter executes command lines against one Book.
type Interpreter struct {
	book  *addressbook.Book
	clock Clock
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithClock overrides the clock used for "days to birthday".
func WithClock(c Clock) Option {
	return func(in *Interpreter) {
		in.clock = c
	}
}

// New creates an Interpreter over book.
func New(book *addressbook.Book, opts ...Option) *Interpreter {
	in := &Interpreter{book: book, clock: SystemClock{}}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Book returns the book the interpreter operates on.
func (in *Interpreter) Book() *addressbook.Book {
	return in.book
}

// handler runs a matched command. args are the whitespace-separated words
// after the verb; rest is the raw remainder of the line.
type handler func(in *Interpreter, args []string, rest string) Result

type command struct {
	verb    []string
	usage   string
	minArgs int
	maxArgs int // -1 means unbounded
	run     handler
}

// commands is ordered so that longer verbs shadow their prefixes
// ("add phone" before "add", "show n records" before "show all").
var commands = []command{
	{verb: []string{"good", "bye"}, usage: "good bye", run: quit},
	{verb: []string{"close"}, usage: "close", run: quit},
	{verb: []string{"exit"}, usage: "exit", run: quit},
	{verb: []string{"hello"}, usage: "hello", run: hello},
	{verb: []string{"days", "to", "birthday"}, usage: "days to birthday <name>", minArgs: 1, maxArgs: 1, run: daysToBirthday},
	{verb: []string{"show", "n", "records"}, usage: "show n records <n>", minArgs: 1, maxArgs: 1, run: showN},
	{verb: []string{"show", "all"}, usage: "show all", run: showAll},
	{verb: []string{"add", "phone"}, usage: "add phone <name> <phone>", minArgs: 2, maxArgs: 2, run: addPhone},
	{verb: []string{"remove", "phone"}, usage: "remove phone <name> <phone>", minArgs: 2, maxArgs: 2, run: removePhone},
	{verb: []string{"edit", "phone"}, usage: "edit phone <name> <old phone> <new phone>", minArgs: 3, maxArgs: 3, run: editPhone},
	{verb: []string{"add"}, usage: "add <name> <phone> [birthday]", minArgs: 2, maxArgs: 3, run: add},
	{verb: []string{"change"}, usage: "change <name> <phone> <birthday>", minArgs: 3, maxArgs: 3, run: change},
	{verb: []string{"phone"}, usage: "phone <name>", minArgs: 1, maxArgs: 1, run: phone},
	{verb: []string{"search"}, usage: "search <field>=<value>[.<field>=<value>...]", minArgs: 1, maxArgs: -1, run: search},
	{verb: []string{"delete"}, usage: "delete <name>", minArgs: 1, maxArgs: 1, run: deleteContact},
}

// Usage lists the usage line of every command in dispatch order.
func Usage() []string {
	out := make([]string, len(commands))
	for i, c := range commands {
		out[i] = c.usage
	}
	return out
}

// Execute runs one command line. Blank lines produce an empty Result.
func (in *Interpreter) Execute(line string) Result {
	words := strings.Fields(line)
	if len(words) == 0 {
		return Result{}
	}

	for _, c := range commands {
		if !c.matches(words) {
			continue
		}
		args := words[len(c.verb):]
		if len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs) {
			return fail(&contact.Error{
				Code:    CodeInvalidArguments,
				Message: "invalid arguments",
				Value:   c.usage,
			})
		}
		return c.run(in, args, remainder(line, len(c.verb)))
	}

	return fail(&contact.Error{
		Code:    CodeUnrecognized,
		Message: "unrecognized command",
		Value:   words[0],
	})
}

func (c command) matches(words []string) bool {
	if len(words) < len(c.verb) {
		return false
	}
	for i, v := range c.verb {
		if strings.ToLower(words[i]) != v {
			return false
		}
	}
	return true
}

// remainder returns line with its first n words and surrounding space removed.
func remainder(line string, n int) string {
	s := strings.TrimSpace(line)
	for i := 0; i < n; i++ {
		idx := strings.IndexFunc(s, unicode.IsSpace)
		if idx < 0 {
			return ""
		}
		s = strings.TrimSpace(s[idx:])
	}
	return s
}

func ok(output string, data any) Result {
	return Result{Output: output, Data: data}
}

func fail(err error) Result {
	return Result{Output: Message(err), Err: err}
}
