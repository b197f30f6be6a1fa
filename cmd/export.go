package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.j.LoadAll()
	if err != nil {
		return fail(err)
	}
	return exportEntries(cmd.OutOrStdout(), entries, exportFormat)
}

func exportEntries(w io.Writer, entries []model.Entry, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fail(fmt.Errorf("error encoding JSON: %w", err))
		}
		fmt.Fprintln(w, string(data))
	case "md":
		printMarkdown(w, entries)
	case "csv", "":
		printCSV(w, entries)
	default:
		return usageErrorf("unknown format %q: want csv, json or md", format)
	}
	return nil
}

func printCSV(w io.Writer, entries []model.Entry) {
	fmt.Fprintln(w, "timestamp,category,xp,log")
	for _, e := range entries {
		fmt.Fprintf(w, "%s,%s,%s,%s\n",
			csvEscape(e.Timestamp),
			csvEscape(e.Category),
			strconv.Itoa(e.XP),
			csvEscape(e.Log),
		)
	}
}

// printMarkdown groups entries under one heading per day, in stored order.
func printMarkdown(w io.Writer, entries []model.Entry) {
	day := ""
	for _, e := range entries {
		d, clock := e.Timestamp, ""
		if len(e.Timestamp) >= len(model.TimestampLayout) {
			d, clock = e.Timestamp[:10], e.Timestamp[11:16]
		}
		if d != day {
			if day != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "## %s\n\n", d)
			day = d
		}
		fmt.Fprintf(w, "- %s **%s** %s (%d XP)\n", clock, e.Category, e.Log, e.XP)
	}
}

// csvEscape quotes a field holding a separator, quote or line break, doubling
// any quotes inside it.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
