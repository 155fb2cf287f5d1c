package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/addressbook/internal/addressbook"
	"github.com/roach88/addressbook/internal/config"
	"github.com/roach88/addressbook/internal/contact"
	"github.com/roach88/addressbook/internal/interp"
	"github.com/roach88/addressbook/internal/snapshot"
	"github.com/roach88/addressbook/internal/store"
)

// session is an opened address book bound to the backend it was loaded from.
type session struct {
	book    *addressbook.Book
	backend snapshot.Backend
	path    string
	kind    string

	// fresh is set when no snapshot existed and the book started empty.
	fresh bool
}

// newBackend returns the snapshot backend of the given kind for path.
// kind "auto" is resolved from the path's extension.
func newBackend(kind, path string) (snapshot.Backend, string, error) {
	kind = config.ResolveBackend(kind, path)
	switch kind {
	case config.BackendJSON:
		return snapshot.NewFile(path), kind, nil
	case config.BackendSQLite:
		return store.NewBackend(path), kind, nil
	default:
		return nil, kind, fmt.Errorf("unknown backend %q: must be one of auto, json, sqlite", kind)
	}
}

// openSession loads the configured address book. A missing snapshot starts
// an empty book; any other load failure is an error, so that a damaged file
// is never overwritten on exit.
func (opts *RootOptions) openSession(ctx context.Context, out *OutputFormatter) (*session, error) {
	cfg := opts.config
	backend, kind, err := newBackend(cfg.Book.Backend, cfg.Book.Path)
	if err != nil {
		return nil, report(out, ExitCommandError, ErrCodeBackend, "invalid backend", err)
	}

	ids := opts.IDGenerator
	if ids == nil {
		ids = snapshot.UUIDv7Generator{}
	}

	s := &session{
		book:    addressbook.New(addressbook.WithIDGenerator(ids)),
		backend: backend,
		path:    cfg.Book.Path,
		kind:    kind,
	}

	slog.Debug("loading address book", "path", s.path, "backend", s.kind)
	err = s.book.Load(ctx, backend)
	switch {
	case err == nil:
		slog.Debug("address book loaded", "path", s.path, "backend", s.kind, "contacts", s.book.Len())
	case contact.CodeOf(err) == contact.CodeNoSnapshot:
		slog.Debug("no saved address book, starting empty", "path", s.path, "backend", s.kind)
		s.fresh = true
	default:
		return nil, report(out, ExitCommandError, ErrCodeLoadFailed, "failed to load address book "+s.path, err)
	}
	return s, nil
}

// save writes the book back to the backend it was loaded from.
func (s *session) save(ctx context.Context, out *OutputFormatter) error {
	if err := s.book.Save(ctx, s.backend); err != nil {
		return report(out, ExitCommandError, ErrCodeWriteFailed, "failed to save address book "+s.path, err)
	}
	slog.Debug("address book saved", "path", s.path, "backend", s.kind, "contacts", s.book.Len())
	return nil
}

// interpreter returns an Interpreter over the session's book.
func (s *session) interpreter(opts *RootOptions) *interp.Interpreter {
	var interpOpts []interp.Option
	if opts.Clock != nil {
		interpOpts = append(interpOpts, interp.WithClock(opts.Clock))
	}
	return interp.New(s.book, interpOpts...)
}

// commandContext returns cmd's context, or Background when it has none.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// writeResult prints one interpreter result.
func writeResult(out *OutputFormatter, res interp.Result) error {
	if res.Err == nil {
		return out.Reply(res.Output, res.Data)
	}
	if out.Format == "json" {
		code := string(res.Code())
		if code == "" {
			code = ErrCodeGeneric
		}
		return out.Error(code, res.Output, nil)
	}
	return out.Reply(res.Output, nil)
}
