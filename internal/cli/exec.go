package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command words...>",
		Short: "Run a single address book command",
		Long: `Run one address book command and exit.

The words are joined with spaces and interpreted exactly like a line typed
into the interactive session. If the command changes the book, the book is
saved afterwards.

Example:
  addressbook exec add Alice 48111222 2000-06-15
  addressbook exec search name=al.phone=48
  addressbook --format json exec show all`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(rootOpts, strings.Join(args, " "), cmd)
		},
	}

	// Everything after "exec" belongs to the address book command.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runExec(opts *RootOptions, line string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)
	ctx := commandContext(cmd)

	s, err := opts.openSession(ctx, out)
	if err != nil {
		return err
	}

	res := s.interpreter(opts).Execute(line)
	if err := writeResult(out, res); err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	if res.Mutated {
		if err := s.save(ctx, out); err != nil {
			return err
		}
	}

	if res.Err != nil {
		return &ExitError{Code: ExitFailure, Message: res.Output, Err: res.Err, Reported: true}
	}
	return nil
}
