// Package snapshot defines the persisted form of an address book and the
// backends that read and write it.
//
// A Snapshot is the whole book: every contact in iteration order with its
// phones and birthday as the strings they were validated from. Backends
// write a snapshot whole and read it whole; there is no partial update.
package snapshot

import (
	"context"
	"errors"
	"unicode/utf8"
)

// Version is the snapshot format version written by this package.
// Readers reject other versions; there is no cross-version migration.
const Version = 1

// ErrNotExist is returned by Backend.Read when there is no snapshot to read.
var ErrNotExist = errors.New("snapshot: no snapshot found")

// Entry is one persisted contact.
type Entry struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

// Snapshot is the persisted form of an entire address book.
type Snapshot struct {
	ID       string  `json:"id"`
	Version  int     `json:"version"`
	Contacts []Entry `json:"contacts"`
}

// Backend reads and writes whole snapshots.
//
// Write must replace any previous snapshot atomically: after a failed Write
// the previous snapshot is still readable. Read returns ErrNotExist (possibly
// wrapped) when nothing was ever written.
type Backend interface {
	Write(ctx context.Context, snap *Snapshot) error
	Read(ctx context.Context) (*Snapshot, error)
}

// Validate checks structural invariants that every backend relies on.
func (s *Snapshot) Validate() error {
	if s.Version != Version {
		return &FormatError{Reason: "unsupported version", Version: s.Version}
	}
	seen := make(map[string]struct{}, len(s.Contacts))
	for i, e := range s.Contacts {
		if !utf8.ValidString(e.Name) {
			return &FormatError{Reason: "contact name is not valid UTF-8", Index: i, Name: e.Name}
		}
		if _, dup := seen[e.Name]; dup {
			return &FormatError{Reason: "duplicate contact name", Index: i, Name: e.Name}
		}
		seen[e.Name] = struct{}{}
		if len(e.Phones) == 0 {
			return &FormatError{Reason: "contact has no phones", Index: i, Name: e.Name}
		}
	}
	return nil
}
