package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/config"
	"github.com/Tiliavir/trivial-progress-tracker/internal/journal"
	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
	"github.com/Tiliavir/trivial-progress-tracker/internal/storage"
	"github.com/Tiliavir/trivial-progress-tracker/internal/ui"
)

var (
	flagFile  string
	flagQuiet bool
)

var rootCmd = &cobra.Command{
	Use:   "tpt",
	Short: "Trivial Progress Tracker – a minimal CLI progress journal",
	Long: `tpt is a single-binary, file-based progress journal.
Entries are stored as human-readable JSON in ~/.tpt/progress.json.
Run it without arguments in a terminal for the interactive menu.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Journal file (overrides config path and TPT_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(menuCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return cmd.Help()
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return runMenuLoop(a)
}

// app bundles what every command needs for one invocation.
type app struct {
	cfg    config.Config
	j      *journal.Journal
	out    *ui.Printer
	prompt ui.Prompter
	close  func() error
}

func newApp(cmd *cobra.Command) (*app, error) {
	a := &app{
		out:   &ui.Printer{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr(), Quiet: flagQuiet},
		close: func() error { return nil },
	}

	cfg, err := config.Load(a.out.Warn)
	if err != nil {
		return nil, &exitError{code: 1, err: err}
	}
	if flagFile != "" {
		if cfg, err = cfg.WithPath(flagFile); err != nil {
			return nil, &exitError{code: 1, err: err}
		}
	}
	a.cfg = cfg

	var backend storage.Backend
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := storage.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fail(err)
		}
		backend = db
		a.close = db.Close
	default:
		f := storage.NewJSONFile(cfg.Path)
		f.Warn = cmd.ErrOrStderr()
		backend = f
	}

	a.j = journal.New(storage.New(backend),
		journal.WithDefaultXP(cfg.DefaultXP),
		journal.WithProgress(cmd.OutOrStdout()),
	)

	in, inOK := cmd.InOrStdin().(*os.File)
	out, outOK := cmd.OutOrStdout().(*os.File)
	if inOK && outOK {
		a.prompt = ui.NewPrompter(in, out)
	} else {
		a.prompt = ui.NewPlain(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return a, nil
}

func (a *app) Close() {
	if err := a.close(); err != nil {
		a.out.Warn("closing journal: %v", err)
	}
}

// exitError carries the process exit code: 1 for user errors, 2 for storage
// and I/O failures.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// fail classifies err for the exit code.
func fail(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	code := 2
	if model.IsValidation(err) || errors.Is(err, storage.ErrNotFound) || errors.Is(err, ui.ErrAborted) {
		code = 1
	}
	return &exitError{code: code, err: err}
}

// usageErrorf reports invalid user input.
func usageErrorf(format string, args ...any) error {
	return &exitError{code: 1, err: fmt.Errorf(format, args...)}
}

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
