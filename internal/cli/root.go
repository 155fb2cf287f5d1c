package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/addressbook/internal/config"
	"github.com/roach88/addressbook/internal/interp"
	"github.com/roach88/addressbook/internal/logger"
	"github.com/roach88/addressbook/internal/snapshot"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	BookPath   string
	Backend    string

	// LookupEnv reads environment overrides. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Clock supplies "today" for birthday calculations (for testing).
	// If nil, defaults to the wall clock.
	Clock interp.Clock

	// IDGenerator names saved snapshots (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator snapshot.IDGenerator

	config   *config.Config
	closeLog func() error
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the addressbook CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts, so tests
// can inject a clock, snapshot IDs and environment.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addressbook",
		Short: "addressbook - a personal contact store",
		Long: `A personal contact store with validated phones and birthdays,
prefix search and birthday reminders.

Without a subcommand, addressbook starts an interactive session that reads
one command per line and saves the book on exit.

Commands understood by the session and by "exec":
  ` + usageList(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.BookPath, "book", "", "address book location (overrides config and "+config.EnvPath+")")
	cmd.PersistentFlags().StringVar(&opts.Backend, "backend", "", "storage backend (auto|json|sqlite)")

	// Add subcommands
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// Execute runs cmd and returns the process exit code. Errors that were not
// already shown to the user are printed to stderr.
func Execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		// cobra argument and flag errors
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		return ExitCommandError
	}
	if !exitErr.Reported {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return exitErr.Code
}

// setup loads configuration, applies flag overrides and installs the logger.
func (opts *RootOptions) setup(cmd *cobra.Command) error {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	out := opts.formatter(cmd)
	cfg, err := config.Load(opts.ConfigPath, lookup)
	if err != nil {
		return report(out, ExitCommandError, ErrCodeConfig, "failed to load config", err)
	}
	if opts.BookPath != "" {
		cfg.Book.Path = opts.BookPath
	}
	if opts.Backend != "" {
		cfg.Book.Backend = opts.Backend
	}
	if err := cfg.Validate(); err != nil {
		return report(out, ExitCommandError, ErrCodeConfig, "invalid flags", err)
	}
	opts.config = cfg

	// Configure logging based on config and verbose flag
	log, closeLog := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Format:  cfg.Log.Format,
		Verbose: opts.Verbose,
		Stderr:  cmd.ErrOrStderr(),
	})
	opts.closeLog = closeLog
	slog.SetDefault(log)

	slog.Debug("config loaded",
		"config", opts.ConfigPath,
		"book", cfg.Book.Path,
		"backend", cfg.ResolveBackend())
	return nil
}

func (opts *RootOptions) teardown() error {
	if opts.closeLog == nil {
		return nil
	}
	err := opts.closeLog()
	opts.closeLog = nil
	return err
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// report outputs a CLI-level failure and returns it as an already reported
// ExitError.
func report(out *OutputFormatter, exitCode int, errCode, message string, err error) error {
	exitErr := WrapExitError(exitCode, message, err)
	_ = out.Error(errCode, exitErr.Error(), nil)
	exitErr.Reported = true
	return exitErr
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func usageList() string {
	return strings.Join(interp.Usage(), "\n  ")
}
