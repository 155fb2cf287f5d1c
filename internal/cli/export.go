package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/addressbook/internal/config"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	To string
}

// ExportResult describes a finished export.
type ExportResult struct {
	Path     string `json:"path"`
	Backend  string `json:"backend"`
	Contacts int    `json:"contacts"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Copy the address book to another file or backend",
		Long: `Copy the configured address book to <path>.

The destination backend is chosen with --to, or from the extension of
<path> when --to is auto (.db, .sqlite and .sqlite3 select SQLite). An
existing destination is replaced.

Example:
  addressbook export backup.db
  addressbook --book contacts.db export contacts.json --to json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", config.BackendAuto, "destination backend (auto|json|sqlite)")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	ctx := commandContext(cmd)

	dst, kind, err := newBackend(opts.To, path)
	if err != nil {
		return report(out, ExitCommandError, ErrCodeBackend, "invalid backend", err)
	}

	s, err := opts.openSession(ctx, out)
	if err != nil {
		return err
	}

	out.VerboseLog("Exporting %d contact(s) from %s (%s) to %s (%s)", s.book.Len(), s.path, s.kind, path, kind)
	if err := s.book.Save(ctx, dst); err != nil {
		return report(out, ExitCommandError, ErrCodeWriteFailed, "failed to export address book to "+path, err)
	}
	slog.Info("address book exported", "from", s.path, "to", path, "backend", kind, "contacts", s.book.Len())

	result := ExportResult{Path: path, Backend: kind, Contacts: s.book.Len()}
	return out.Reply(fmt.Sprintf("Exported %d contact(s) to %s (%s).", result.Contacts, path, kind), result)
}
