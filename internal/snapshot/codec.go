package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Encode serializes a snapshot as canonical JSON followed by a newline.
func Encode(snap *Snapshot) ([]byte, error) {
	contacts := make([]any, len(snap.Contacts))
	for i, e := range snap.Contacts {
		m := map[string]any{
			"name":   e.Name,
			"phones": e.Phones,
		}
		if e.Birthday != "" {
			m["birthday"] = e.Birthday
		}
		contacts[i] = m
	}

	data, err := MarshalCanonical(map[string]any{
		"id":       snap.ID,
		"version":  snap.Version,
		"contacts": contacts,
	})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses and validates a snapshot. Unknown fields and anything but
// whitespace after the snapshot object are rejected.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode snapshot: trailing data after snapshot at offset %d", dec.InputOffset())
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}
