package testutil

import (
	"strconv"
	"sync"
	"testing"

	"github.com/roach88/addressbook/internal/addressbook"
	"github.com/roach88/addressbook/internal/snapshot"
)

// Contact describes one record for NewBook. The first phone is used to
// construct the record; the rest are added with AddPhone.
type Contact struct {
	Name     string
	Phones   []string
	Birthday string
}

// NewBook builds a Book holding contacts in order, with snapshot IDs drawn
// from a fixed sequence ("snapshot-1", "snapshot-2", ...).
//
// Any invalid contact fails the test immediately.
func NewBook(t testing.TB, contacts ...Contact) *addressbook.Book {
	t.Helper()

	b := addressbook.New(addressbook.WithIDGenerator(NewSequenceGenerator("snapshot")))
	for _, c := range contacts {
		if len(c.Phones) == 0 {
			t.Fatalf("testutil: contact %q has no phones", c.Name)
		}
		r, err := b.Add(c.Name, c.Phones[0], c.Birthday)
		if err != nil {
			t.Fatalf("testutil: add %q: %v", c.Name, err)
		}
		for _, p := range c.Phones[1:] {
			if err := r.AddPhone(p); err != nil {
				t.Fatalf("testutil: add phone %q to %q: %v", p, c.Name, err)
			}
		}
	}
	return b
}

// SequenceGenerator yields "<prefix>-1", "<prefix>-2", ... forever.
//
// Unlike snapshot.FixedGenerator it never runs out, so a test can save as
// often as it likes.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

var _ snapshot.IDGenerator = (*SequenceGenerator)(nil)

// NewSequenceGenerator creates a generator. An empty prefix means "snapshot".
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "snapshot"
	}
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return g.prefix + "-" + strconv.Itoa(g.seq)
}
