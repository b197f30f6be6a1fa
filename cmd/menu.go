package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/journal"
	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
	"github.com/Tiliavir/trivial-progress-tracker/internal/ui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return runMenuLoop(a)
	},
}

type menuItem struct {
	label string
	run   func(a *app) error
}

var menuItems = []menuItem{
	{"Add progress", func(a *app) error { return addEntry(a, "", "", journal.UseDefaultXP) }},
	{"View progress", func(a *app) error { return listEntries(a, false, "", time.Now()) }},
	{"Search", func(a *app) error {
		term, err := promptRequired(a, "Search for", "", "Search term cannot be empty. Please try again.")
		if err != nil {
			return err
		}
		return searchEntries(a, term)
	}},
	{"Show stats", func(a *app) error { return showStats(a, "md") }},
	{"Edit an entry", func(a *app) error {
		index, err := selectEntry(a, "Select entry to edit")
		if err != nil || index < 0 {
			return err
		}
		return editEntry(a, index, "", "")
	}},
	{"Delete an entry", func(a *app) error {
		index, err := selectEntry(a, "Select entry to delete")
		if err != nil || index < 0 {
			return err
		}
		return deleteEntry(a, index, false)
	}},
	{"Migrate legacy log", func(a *app) error { return migrateLegacy(a, a.cfg.LegacyPath, false) }},
	{"Exit", nil},
}

// runMenuLoop shows the menu until the user exits. A failing action is
// reported and the menu is shown again.
func runMenuLoop(a *app) error {
	labels := make([]string, len(menuItems))
	for i, it := range menuItems {
		labels[i] = it.label
	}

	for {
		a.out.Println()
		choice, err := a.prompt.Select("Progress Tracker", labels)
		if errors.Is(err, ui.ErrAborted) || (err == nil && menuItems[choice].run == nil) {
			a.out.Println("Exiting Progress Tracker. Goodbye!")
			return nil
		}
		if err != nil {
			return fail(err)
		}

		if err := menuItems[choice].run(a); err != nil {
			if errors.Is(err, ui.ErrAborted) {
				continue
			}
			a.out.Error("%v", err)
		}
	}
}

// selectEntry lets the user pick an entry. It returns -1 when there is
// nothing to pick.
func selectEntry(a *app, label string) (int, error) {
	entries, err := a.j.LoadAll()
	if err != nil {
		return -1, fail(err)
	}
	if len(entries) == 0 {
		a.out.Println("No progress has been logged yet. Add your first entry!")
		return -1, nil
	}
	items := make([]string, len(entries))
	for i, e := range entries {
		items[i] = entryLabel(e)
	}
	return a.prompt.Select(label, items)
}

func entryLabel(e model.Entry) string {
	return fmt.Sprintf("[%s] %s: %s", e.Timestamp, e.Category, e.Log)
}
