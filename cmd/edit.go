package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/storage"
)

var (
	editLog      string
	editCategory string
)

var editCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Change the log or category of an entry",
	Long: `Change the log text or category of the entry at <index> (see tpt list).
Without --log or --category the current values are offered for editing.
The timestamp and XP are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editLog, "log", "", "New log text")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")
}

func runEdit(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return editEntry(a, index, editLog, editCategory)
}

func editEntry(a *app, index int, log, category string) error {
	entries, err := a.j.LoadAll()
	if err != nil {
		return fail(err)
	}
	if index < 0 || index >= len(entries) {
		return fail(fmt.Errorf("index %d of %d: %w", index, len(entries), storage.ErrNotFound))
	}
	cur := entries[index]

	// Only prompt when nothing was given on the command line.
	if log == "" && category == "" {
		if log, err = promptRequired(a, "Log", cur.Log, "Progress log cannot be empty. Please try again."); err != nil {
			return fail(err)
		}
		if category, err = promptRequired(a, "Category", cur.Category, "Category cannot be empty. Please try again."); err != nil {
			return fail(err)
		}
	}
	if log == "" {
		log = cur.Log
	}
	if category == "" {
		category = cur.Category
	}

	e, err := a.j.UpdateAt(index, log, category)
	if err != nil {
		return fail(err)
	}
	a.out.Success("Updated entry %d: [%s] %s: %s", index, e.Timestamp, e.Category, e.Log)
	return nil
}
