package store

import (
	"context"
	"fmt"

	"github.com/roach88/addressbook/internal/snapshot"
)

// WriteSnapshot replaces the stored snapshot with snap in a single transaction.
func (s *Store) WriteSnapshot(ctx context.Context, snap *snapshot.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// phones first: foreign keys reference contacts
	for _, table := range []string{"phones", "contacts", "snapshots"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("write snapshot: clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, version) VALUES (?, ?)
	`, snap.ID, snap.Version); err != nil {
		return fmt.Errorf("write snapshot: insert snapshot: %w", err)
	}

	for pos, entry := range snap.Contacts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contacts (position, name, birthday) VALUES (?, ?, ?)
		`, pos, entry.Name, entry.Birthday); err != nil {
			return fmt.Errorf("write snapshot: insert contact %q: %w", entry.Name, err)
		}
		for idx, number := range entry.Phones {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO phones (contact_position, idx, number) VALUES (?, ?, ?)
			`, pos, idx, number); err != nil {
				return fmt.Errorf("write snapshot: insert phone for %q: %w", entry.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write snapshot: commit: %w", err)
	}
	return nil
}

// ReadSnapshot returns the stored snapshot, or snapshot.ErrNotExist when the
// database has never had one written.
//
// Contacts are returned in position order and phones in idx order.
func (s *Store) ReadSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: begin tx: %w", err)
	}
	defer tx.Rollback()

	snap := &snapshot.Snapshot{}
	rows, err := tx.QueryContext(ctx, `SELECT id, version FROM snapshots`)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: query snapshots: %w", err)
	}
	found := 0
	for rows.Next() {
		if err := rows.Scan(&snap.ID, &snap.Version); err != nil {
			rows.Close()
			return nil, fmt.Errorf("read snapshot: scan snapshot: %w", err)
		}
		found++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	rows.Close()

	switch found {
	case 0:
		return nil, snapshot.ErrNotExist
	case 1:
	default:
		return nil, fmt.Errorf("read snapshot: %d snapshot rows, want 1", found)
	}

	rows, err = tx.QueryContext(ctx, `
		SELECT name, birthday FROM contacts ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: query contacts: %w", err)
	}
	snap.Contacts = []snapshot.Entry{}
	for rows.Next() {
		var e snapshot.Entry
		if err := rows.Scan(&e.Name, &e.Birthday); err != nil {
			rows.Close()
			return nil, fmt.Errorf("read snapshot: scan contact: %w", err)
		}
		snap.Contacts = append(snap.Contacts, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	rows.Close()

	// positions are 0..n-1 as written, so they index snap.Contacts directly
	rows, err = tx.QueryContext(ctx, `
		SELECT contact_position, number FROM phones ORDER BY contact_position ASC, idx ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: query phones: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pos int
		var number string
		if err := rows.Scan(&pos, &number); err != nil {
			return nil, fmt.Errorf("read snapshot: scan phone: %w", err)
		}
		if pos < 0 || pos >= len(snap.Contacts) {
			return nil, fmt.Errorf("read snapshot: phone references unknown contact position %d", pos)
		}
		snap.Contacts[pos].Phones = append(snap.Contacts[pos].Phones, number)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}
