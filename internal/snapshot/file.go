package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores a snapshot as a canonical JSON document at Path.
//
// Writes go to a temporary file in the same directory which is then renamed
// over Path, so readers only ever see a complete snapshot.
type File struct {
	Path string
}

var _ Backend = (*File)(nil)

// NewFile returns a JSON file backend for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Write encodes snap and atomically replaces the file.
func (f *File) Write(ctx context.Context, snap *Snapshot) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(snap)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write snapshot: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("write snapshot: sync: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("write snapshot: close: %w", err)
	}
	if err = os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("write snapshot: rename: %w", err)
	}
	return nil
}

// Read loads and validates the snapshot. A missing file yields ErrNotExist.
func (f *File) Read(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotExist, f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}
