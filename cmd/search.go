package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/stats"
)

var searchCmd = &cobra.Command{
	Use:   "search <term...>",
	Short: "Find entries whose log or category contains a term",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return searchEntries(a, strings.Join(args, " "))
}

func searchEntries(a *app, term string) error {
	if strings.TrimSpace(term) == "" {
		return usageErrorf("search term cannot be empty")
	}
	entries, err := a.j.LoadAll()
	if err != nil {
		return fail(err)
	}
	// Show the stored index so a hit can be passed to edit or delete.
	idx := stats.Matches(entries, term)
	if len(idx) == 0 {
		a.out.Printf("No entries match %q.\n", term)
		return nil
	}
	a.out.Title("Entries matching %q", term)
	a.out.Table(entryHeader(), entryRows(entries, idx))
	return nil
}
