package addressbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/addressbook/internal/contact"
	"github.com/roach88/addressbook/internal/snapshot"
)

// Snapshot captures the whole book in iteration order.
func (b *Book) Snapshot() *snapshot.Snapshot {
	snap := &snapshot.Snapshot{
		ID:       b.ids.Generate(),
		Version:  snapshot.Version,
		Contacts: make([]snapshot.Entry, 0, len(b.order)),
	}
	for _, name := range b.order {
		r := b.records[name]
		snap.Contacts = append(snap.Contacts, snapshot.Entry{
			Name:     r.Name(),
			Phones:   r.Phones(),
			Birthday: r.BirthdayValue(),
		})
	}
	return snap
}

// Restore replaces the book's contents with snap.
//
// Every entry is revalidated through contact.NewRecord and AddPhone. If any
// entry fails, the book is left exactly as it was.
func (b *Book) Restore(snap *snapshot.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	records := make(map[string]*contact.Record, len(snap.Contacts))
	order := make([]string, 0, len(snap.Contacts))
	for i, e := range snap.Contacts {
		r, err := contact.NewRecord(e.Name, e.Phones[0], e.Birthday)
		if err != nil {
			return fmt.Errorf("contacts[%d] %q: %w", i, e.Name, err)
		}
		for _, p := range e.Phones[1:] {
			if err := r.AddPhone(p); err != nil {
				return fmt.Errorf("contacts[%d] %q: %w", i, e.Name, err)
			}
		}
		records[e.Name] = r
		order = append(order, e.Name)
	}

	b.records = records
	b.order = order
	return nil
}

// Save writes the whole book to dst, replacing whatever dst held.
// A snapshot that would not load back is refused before dst is touched.
// Failures are reported as CodePersistence errors.
func (b *Book) Save(ctx context.Context, dst snapshot.Backend) error {
	snap := b.Snapshot()
	if err := snap.Validate(); err != nil {
		return contact.NewPersistenceError("save", err)
	}
	if err := dst.Write(ctx, snap); err != nil {
		return contact.NewPersistenceError("save", err)
	}
	slog.Debug("address book saved", "snapshot_id", snap.ID, "contacts", len(snap.Contacts))
	return nil
}

// Load replaces the book's contents with the snapshot read from src.
//
// When src holds no snapshot the error has CodeNoSnapshot and matches
// snapshot.ErrNotExist; callers treat it as "start empty". Any other read,
// decode or validation failure has CodePersistence. On every failure the
// book keeps its prior contents.
func (b *Book) Load(ctx context.Context, src snapshot.Backend) error {
	snap, err := src.Read(ctx)
	if errors.Is(err, snapshot.ErrNotExist) {
		return &contact.Error{Code: contact.CodeNoSnapshot, Message: "no saved address book found", Err: err}
	}
	if err != nil {
		return contact.NewPersistenceError("load", err)
	}

	if err := b.Restore(snap); err != nil {
		return contact.NewPersistenceError("load", err)
	}
	slog.Debug("address book loaded", "snapshot_id", snap.ID, "contacts", len(snap.Contacts))
	return nil
}
