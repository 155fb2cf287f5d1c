package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/addressbook/internal/contact"
	"github.com/roach88/addressbook/internal/interp"
)

// runREPL reads commands from stdin until a quit command, end of input or
// SIGINT/SIGTERM, then saves the book.
func runREPL(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	// Use command's context if available (for testing), otherwise create one
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	s, err := opts.openSession(ctx, out)
	if err != nil {
		return err
	}
	if s.fresh && out.Format != "json" {
		fmt.Fprintln(out.Writer, interp.Message(&contact.Error{Code: contact.CodeNoSnapshot}))
	}
	in := s.interpreter(opts)

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	// The scanner blocks in Read, so it runs on its own goroutine and the
	// loop below can still observe cancellation.
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	slog.Debug("session started", "path", s.path, "backend", s.kind)
	prompt := opts.config.Prompt

loop:
	for {
		if out.Format != "json" {
			fmt.Fprint(out.Writer, prompt)
		}

		select {
		case <-ctx.Done():
			if out.Format != "json" {
				fmt.Fprintln(out.Writer)
			}
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			res := in.Execute(line)
			if err := writeResult(out, res); err != nil {
				return WrapExitError(ExitCommandError, "failed to write output", err)
			}
			if res.Quit {
				break loop
			}
		}
	}

	select {
	case err := <-scanErr:
		if err != nil {
			slog.Error("error reading input", "error", err)
		}
	default:
	}

	// The session context may already be cancelled by a signal; the final
	// save must still run.
	return s.save(context.WithoutCancel(ctx), out)
}
