package harness

import "github.com/roach88/addressbook/internal/snapshot"

// Exchange is one command line and the interpreter's reply.
type Exchange struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Code   string `json:"code,omitempty"` // error code, empty on success
	Quit   bool   `json:"quit,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every expect clause and assertion holds.
	Pass bool `json:"pass"`

	// Transcript contains every executed step in order. Steps after a quit
	// command are not executed.
	Transcript []Exchange `json:"transcript"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the book's snapshot as read back from the store.
	Final *snapshot.Snapshot `json:"final,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Transcript: []Exchange{},
		Errors:     []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
