package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/roach88/addressbook/internal/snapshot"
)

// Backend is a snapshot.Backend that keeps the snapshot in a SQLite file.
//
// Each Read or Write opens the database, does its work and closes it again,
// so the file is only held for the duration of one operation.
type Backend struct {
	Path string
}

var _ snapshot.Backend = (*Backend)(nil)

// NewBackend returns a SQLite snapshot backend for path.
func NewBackend(path string) *Backend {
	return &Backend{Path: path}
}

// Write replaces the snapshot stored at Path, creating the database if needed.
func (b *Backend) Write(ctx context.Context, snap *snapshot.Snapshot) error {
	s, err := Open(b.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("error closing database", "path", b.Path, "error", closeErr)
		}
	}()

	return s.WriteSnapshot(ctx, snap)
}

// Read loads the snapshot stored at Path. A missing file yields
// snapshot.ErrNotExist without creating the database.
func (b *Backend) Read(ctx context.Context) (*snapshot.Snapshot, error) {
	if _, err := os.Stat(b.Path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", snapshot.ErrNotExist, b.Path)
	} else if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	s, err := Open(b.Path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("error closing database", "path", b.Path, "error", closeErr)
		}
	}()

	return s.ReadSnapshot(ctx)
}
