package interp

import (
	"fmt"
	"strings"

	"github.com/roach88/addressbook/internal/contact"
)

// RecordView is the structured form of a record in command results.
type RecordView struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

func viewOf(r *contact.Record) RecordView {
	return RecordView{Name: r.Name(), Phones: r.Phones(), Birthday: r.BirthdayValue()}
}

func viewsOf(records []*contact.Record) []RecordView {
	out := make([]RecordView, len(records))
	for i, r := range records {
		out[i] = viewOf(r)
	}
	return out
}

// String renders one record line, e.g. "Alice: 111; 222, Birthday: 2000-06-15".
func (v RecordView) String() string {
	birthday := v.Birthday
	if birthday == "" {
		birthday = "none"
	}
	return fmt.Sprintf("%s: %s, Birthday: %s", v.Name, strings.Join(v.Phones, "; "), birthday)
}

func formatViews(views []RecordView) string {
	lines := make([]string, len(views))
	for i, v := range views {
		lines[i] = v.String()
	}
	return strings.Join(lines, "\n")
}
