// Package addressbook implements the contact store: an insertion-ordered
// collection of contact.Records keyed by contact name, with prefix search and
// whole-book persistence through snapshot backends.
//
// Book is not safe for concurrent use. The interpreter runs one command at a
// time to completion and owns the only Book for the life of the process.
package addressbook

import (
	"github.com/roach88/addressbook/internal/contact"
	"github.com/roach88/addressbook/internal/snapshot"
)

// Book is the contact store.
//
// The key of every entry equals its record's Name(); Put derives the key from
// the record so the two cannot drift apart.
type Book struct {
	records map[string]*contact.Record
	order   []string
	ids     snapshot.IDGenerator
}

// Option configures a Book.
type Option func(*Book)

// WithIDGenerator overrides the snapshot ID generator (for testing).
// If unset, defaults to snapshot.UUIDv7Generator.
func WithIDGenerator(gen snapshot.IDGenerator) Option {
	return func(b *Book) {
		b.ids = gen
	}
}

// New creates an empty Book.
func New(opts ...Option) *Book {
	b := &Book{
		records: make(map[string]*contact.Record),
		ids:     snapshot.UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of stored records.
func (b *Book) Len() int {
	return len(b.order)
}

// Put inserts r, or replaces the whole record stored under r.Name().
// A replaced entry keeps its position in iteration order. Nothing from the
// previous record is merged into r.
func (b *Book) Put(r *contact.Record) {
	name := r.Name()
	if _, exists := b.records[name]; !exists {
		b.order = append(b.order, name)
	}
	b.records[name] = r
}

// Get returns the record stored under name, or a CodeNotFound error.
func (b *Book) Get(name string) (*contact.Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, contact.NewNotFoundError(name)
	}
	return r, nil
}

// Has reports whether a record is stored under name.
func (b *Book) Has(name string) bool {
	_, ok := b.records[name]
	return ok
}

// Remove deletes the record stored under name and reports whether one existed.
// Removing an absent name is a no-op.
func (b *Book) Remove(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Add builds a record from raw values and puts it, replacing any record with
// the same name.
func (b *Book) Add(name, phone, birthday string) (*contact.Record, error) {
	r, err := contact.NewRecord(name, phone, birthday)
	if err != nil {
		return nil, err
	}
	b.Put(r)
	return r, nil
}

// Change replaces the existing record for name with one built from the given
// values. It fails with CodeNotFound when name is not stored, and with a
// validation error (leaving the old record in place) when a value is invalid.
func (b *Book) Change(name, phone, birthday string) (*contact.Record, error) {
	if !b.Has(name) {
		return nil, contact.NewNotFoundError(name)
	}
	return b.Add(name, phone, birthday)
}

// All returns every record in iteration order.
func (b *Book) All() []*contact.Record {
	out := make([]*contact.Record, len(b.order))
	for i, name := range b.order {
		out[i] = b.records[name]
	}
	return out
}

// Names returns every key in iteration order.
func (b *Book) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// FirstN returns the first n records in iteration order.
//
// The request is strict: asking for more records than are stored fails with
// CodeInsufficientRecords instead of returning a short slice. n <= 0 yields
// an empty slice.
func (b *Book) FirstN(n int) ([]*contact.Record, error) {
	if n <= 0 {
		return []*contact.Record{}, nil
	}
	if n > len(b.order) {
		return nil, contact.NewInsufficientRecordsError(n, len(b.order))
	}
	out := make([]*contact.Record, n)
	for i, name := range b.order[:n] {
		out[i] = b.records[name]
	}
	return out, nil
}
