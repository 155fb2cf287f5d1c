package snapshot

import "fmt"

// FormatError reports a snapshot that decoded but is structurally invalid.
type FormatError struct {
	Reason  string
	Version int
	Index   int
	Name    string
}

func (e *FormatError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("snapshot: %s: contacts[%d] %q", e.Reason, e.Index, e.Name)
	case e.Version != 0:
		return fmt.Sprintf("snapshot: %s: %d", e.Reason, e.Version)
	default:
		return "snapshot: " + e.Reason
	}
}
