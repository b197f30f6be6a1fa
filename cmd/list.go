package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
	"github.com/Tiliavir/trivial-progress-tracker/internal/timecalc"
)

var (
	listToday    bool
	listCategory string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "view"},
	Short:   "List journal entries",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVar(&listToday, "today", false, "Show only today's entries")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Show only entries of this category (case-insensitive)")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return listEntries(a, listToday, listCategory, time.Now())
}

func listEntries(a *app, today bool, category string, now time.Time) error {
	entries, err := a.j.LoadAll()
	if err != nil {
		return fail(err)
	}
	if len(entries) == 0 {
		a.out.Println("No progress has been logged yet. Add your first entry!")
		return nil
	}

	var idx []int
	for i, e := range entries {
		if today && !loggedOn(e, now) {
			continue
		}
		if category != "" && !strings.EqualFold(strings.TrimSpace(e.Category), strings.TrimSpace(category)) {
			continue
		}
		idx = append(idx, i)
	}

	a.out.Title("Your Progress So Far")
	a.out.Table(entryHeader(), entryRows(entries, idx))
	a.out.Info("%d of %d entries", len(idx), len(entries))
	return nil
}

// loggedOn reports whether e was recorded on the calendar day of now. An
// entry with a malformed timestamp belongs to no day.
func loggedOn(e model.Entry, now time.Time) bool {
	t, err := timecalc.ParseTimestamp(e.Timestamp)
	return err == nil && timecalc.SameDay(t, now)
}

func entryHeader() []string {
	return []string{"#", "Timestamp", "Category", "XP", "Log"}
}

// entryRows renders entries[i] for each i in idx, prefixed with i.
func entryRows(entries []model.Entry, idx []int) [][]string {
	rows := make([][]string, 0, len(idx))
	for _, i := range idx {
		e := entries[i]
		rows = append(rows, []string{strconv.Itoa(i), e.Timestamp, e.Category, strconv.Itoa(e.XP), e.Log})
	}
	return rows
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, usageErrorf("invalid index %q: want a non-negative number from `tpt list`", s)
	}
	return n, nil
}
