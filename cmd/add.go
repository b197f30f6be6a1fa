package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-progress-tracker/internal/journal"
	"github.com/Tiliavir/trivial-progress-tracker/internal/ui"
)

var (
	addCategory string
	addXP       int
)

var addCmd = &cobra.Command{
	Use:   "add [log...]",
	Short: "Add a new progress entry",
	Example: `  tpt add -c Go "finished the concurrency chapter"
  tpt add --xp 25 -c Python wrote my first decorator
  tpt add            # prompts for log and category`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Entry category (prompted if empty)")
	addCmd.Flags().IntVar(&addXP, "xp", journal.UseDefaultXP, "XP for this entry (default from config)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("xp") && addXP < 0 {
		return usageErrorf("invalid --xp %d: must not be negative", addXP)
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return addEntry(a, strings.Join(args, " "), addCategory, addXP)
}

// addEntry prompts for whatever is missing and records the entry.
func addEntry(a *app, log, category string, xp int) error {
	var err error
	if strings.TrimSpace(log) == "" {
		if log, err = promptRequired(a, "Enter your progress for today", "", "Progress log cannot be empty. Please try again."); err != nil {
			return fail(err)
		}
	}
	if strings.TrimSpace(category) == "" {
		if category, err = promptRequired(a, "Category", "", "Category cannot be empty. Please try again."); err != nil {
			return fail(err)
		}
	}

	e, err := a.j.Add(log, category, xp)
	if err != nil {
		return fail(err)
	}
	a.out.Success("Progress logged successfully! [%s] %s: %s (+%d XP)", e.Timestamp, e.Category, e.Log, e.XP)
	return nil
}

// promptRequired asks until a non-blank answer is given.
func promptRequired(a *app, label, def, retry string) (string, error) {
	for {
		answer, err := a.prompt.Text(label, def)
		if err != nil {
			if errors.Is(err, ui.ErrAborted) {
				return "", err
			}
			return "", fmt.Errorf("reading %s: %w", strings.ToLower(label), err)
		}
		if strings.TrimSpace(answer) != "" {
			return answer, nil
		}
		a.out.Println(retry)
	}
}
