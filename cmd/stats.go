package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/stats"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streak, XP and category breakdown",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "md", "Output format: md, json, csv")
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return showStats(a, statsFormat)
}

func showStats(a *app, format string) error {
	s, err := a.j.Summary()
	if err != nil {
		return fail(err)
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fail(fmt.Errorf("error encoding JSON: %w", err))
		}
		a.out.Println(string(data))
	case "csv":
		a.out.Println("category,entries")
		for _, c := range s.Categories {
			a.out.Printf("%s,%d\n", csvEscape(c.Category), c.Count)
		}
	case "md", "":
		if s.Entries == 0 {
			a.out.Println("No progress has been logged yet. Add your first entry!")
			return nil
		}
		printSummary(a.out.Out, s)
	default:
		return usageErrorf("unknown format %q: want md, json or csv", format)
	}

	for _, is := range s.Issues {
		a.out.Warn("entry %d [%s]: %s", is.Index, is.Entry.Timestamp, is.Reason)
	}
	return nil
}

func printSummary(w io.Writer, s stats.Summary) {
	fmt.Fprintln(w, "Progress")
	fmt.Fprintln(w, "--------------------------------")
	fmt.Fprintf(w, "%-20s%d day(s)\n", "Current streak", s.Streak)
	fmt.Fprintf(w, "%-20s%d\n", "Total XP", s.TotalXP)
	fmt.Fprintf(w, "%-20s%d\n", "Entries", s.Entries)
	if s.First != "" {
		fmt.Fprintf(w, "%-20s%s\n", "First entry", s.First)
		fmt.Fprintf(w, "%-20s%s\n", "Last entry", s.Last)
	}
	fmt.Fprintln(w, "--------------------------------")
	for _, c := range s.Categories {
		fmt.Fprintf(w, "%-20s%d\n", c.Category, c.Count)
	}
}
