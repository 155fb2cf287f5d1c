package harness

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/addressbook/internal/addressbook"
	"github.com/roach88/addressbook/internal/interp"
	"github.com/roach88/addressbook/internal/snapshot"
	"github.com/roach88/addressbook/internal/store"
)

// fixedClock pins "today" for a scenario.
type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

// Run executes a scenario and returns its result.
//
// Execution steps:
//  1. Seed a fresh book with the scenario's contacts
//  2. Execute each step against the interpreter, stopping after a quit
//  3. Check each step's expect clause
//  4. Write the final book to an in-memory SQLite store and read it back
//  5. Evaluate assertions against the reloaded book
//
// A non-nil error means the scenario could not be run at all (bad seed
// data, store failure). Failed expectations are reported in Result.Errors.
func Run(s *Scenario) (*Result, error) {
	ctx := context.Background()

	today, err := time.Parse(dateLayout, s.Today)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: invalid today %q: %w", s.Name, s.Today, err)
	}

	// The book is snapshotted exactly once, so the scenario name is the only ID.
	book := addressbook.New(addressbook.WithIDGenerator(snapshot.NewFixedGenerator(s.Name)))
	if err := seed(book, s.Contacts); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	in := interp.New(book, interp.WithClock(fixedClock(today)))
	result := NewResult()
	for i, step := range s.Steps {
		res := in.Execute(step.Input)
		ex := Exchange{
			Input:  step.Input,
			Output: res.Output,
			Code:   string(res.Code()),
			Quit:   res.Quit,
		}
		result.Transcript = append(result.Transcript, ex)

		if step.Expect != nil {
			checkExpect(result, i, step.Expect, ex)
		}
		if res.Quit {
			break
		}
	}

	final, err := roundTrip(ctx, book.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	result.Final = final

	reloaded := addressbook.New()
	if err := reloaded.Restore(final); err != nil {
		return nil, fmt.Errorf("scenario %s: restore final snapshot: %w", s.Name, err)
	}
	for i, a := range s.Assertions {
		if err := evaluateAssertion(reloaded, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return result, nil
}

func seed(book *addressbook.Book, contacts []ContactSeed) error {
	for i, c := range contacts {
		r, err := book.Add(c.Name, c.Phones[0], c.Birthday)
		if err != nil {
			return fmt.Errorf("contacts[%d] %q: %w", i, c.Name, err)
		}
		for _, p := range c.Phones[1:] {
			if err := r.AddPhone(p); err != nil {
				return fmt.Errorf("contacts[%d] %q: %w", i, c.Name, err)
			}
		}
	}
	return nil
}

func checkExpect(result *Result, index int, e *Expect, ex Exchange) {
	prefix := fmt.Sprintf("steps[%d] %q", index, ex.Input)

	if e.Output != "" && ex.Output != e.Output {
		result.AddError(fmt.Sprintf("%s: expected output %q, got %q", prefix, e.Output, ex.Output))
	}
	if e.Contains != "" && !strings.Contains(ex.Output, e.Contains) {
		result.AddError(fmt.Sprintf("%s: expected output containing %q, got %q", prefix, e.Contains, ex.Output))
	}
	switch {
	case e.Code == "":
	case e.Code == CodeOK && ex.Code != "":
		result.AddError(fmt.Sprintf("%s: expected success, got %s", prefix, ex.Code))
	case e.Code != CodeOK && ex.Code != e.Code:
		got := ex.Code
		if got == "" {
			got = "success"
		}
		result.AddError(fmt.Sprintf("%s: expected code %s, got %s", prefix, e.Code, got))
	}
	if e.Quit && !ex.Quit {
		result.AddError(fmt.Sprintf("%s: expected the session to end", prefix))
	}
}

// roundTrip writes snap to a throwaway SQLite store and reads it back.
// The reloaded snapshot must encode to the same bytes as snap.
func roundTrip(ctx context.Context, snap *snapshot.Snapshot) (*snapshot.Snapshot, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	if err := st.WriteSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	got, err := st.ReadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	want, err := snapshot.Encode(snap)
	if err != nil {
		return nil, err
	}
	have, err := snapshot.Encode(got)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(want, have) {
		return nil, fmt.Errorf("snapshot changed across store round trip:\nwrote %s\nread  %s", want, have)
	}
	return got, nil
}
