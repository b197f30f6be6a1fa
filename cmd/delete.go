package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/storage"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <index>",
	Aliases: []string{"rm"},
	Short:   "Delete an entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return deleteEntry(a, index, deleteYes)
}

func deleteEntry(a *app, index int, yes bool) error {
	entries, err := a.j.LoadAll()
	if err != nil {
		return fail(err)
	}
	if index < 0 || index >= len(entries) {
		return fail(fmt.Errorf("index %d of %d: %w", index, len(entries), storage.ErrNotFound))
	}

	if !yes {
		e := entries[index]
		ok, err := a.prompt.Confirm(fmt.Sprintf("Delete [%s] %s: %s?", e.Timestamp, e.Category, e.Log))
		if err != nil {
			return fail(err)
		}
		if !ok {
			a.out.Println("Nothing deleted.")
			return nil
		}
	}

	removed, err := a.j.DeleteAt(index)
	if err != nil {
		return fail(err)
	}
	a.out.Success("Deleted entry %d: [%s] %s: %s", index, removed.Timestamp, removed.Category, removed.Log)
	return nil
}
