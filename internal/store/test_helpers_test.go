package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/addressbook/internal/snapshot"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSnapshot creates a snapshot with varied phones and birthdays.
func createTestSnapshot(id string) *snapshot.Snapshot {
	return &snapshot.Snapshot{
		ID:      id,
		Version: snapshot.Version,
		Contacts: []snapshot.Entry{
			{Name: "Zed", Phones: []string{"900"}, Birthday: "1990-01-01"},
			{Name: "Alice", Phones: []string{"111", "222", "333"}, Birthday: "2000-02-29"},
			{Name: "bob", Phones: []string{"444"}},
		},
	}
}
