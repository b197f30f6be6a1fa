// Package stats derives streaks, XP totals and category counts from a journal.
// Every function is pure: it reads the given entries and nothing else.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
	"github.com/Tiliavir/trivial-progress-tracker/internal/timecalc"
)

// Issue is a data-quality problem found in an entry.
type Issue struct {
	Index  int         `json:"index"`
	Entry  model.Entry `json:"entry"`
	Reason string      `json:"reason"`
}

// Dates returns the distinct calendar days present in entries, most recent
// first, along with an Issue for every entry whose timestamp does not parse.
func Dates(entries []model.Entry) ([]timecalc.Date, []Issue) {
	var issues []Issue
	set := make(map[timecalc.Date]struct{})
	for i, e := range entries {
		t, err := timecalc.ParseTimestamp(e.Timestamp)
		if err != nil {
			issues = append(issues, Issue{Index: i, Entry: e, Reason: err.Error()})
			continue
		}
		set[timecalc.DateOf(t)] = struct{}{}
	}

	dates := make([]timecalc.Date, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	return dates, issues
}

// Audit lists the data-quality issues in entries.
func Audit(entries []model.Entry) []Issue {
	var issues []Issue
	for i, e := range entries {
		switch {
		case strings.TrimSpace(e.Log) == "":
			issues = append(issues, Issue{Index: i, Entry: e, Reason: model.ErrEmptyLog.Error()})
		case strings.TrimSpace(e.Category) == "":
			issues = append(issues, Issue{Index: i, Entry: e, Reason: model.ErrEmptyCategory.Error()})
		}
	}
	_, tsIssues := Dates(entries)
	issues = append(issues, tsIssues...)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Index < issues[j].Index })
	return issues
}

// Streak counts the consecutive days ending today, or yesterday if nothing
// has been logged yet today, that have at least one entry. Entries dated
// after today and entries with malformed timestamps are ignored.
func Streak(entries []model.Entry, today time.Time) int {
	dates, _ := Dates(entries)
	day := timecalc.DateOf(today)

	for len(dates) > 0 && dates[0].After(day) {
		dates = dates[1:]
	}
	if len(dates) == 0 {
		return 0
	}
	if dates[0].Before(day.AddDays(-1)) {
		return 0
	}

	streak := 1
	prev := dates[0]
	for _, d := range dates[1:] {
		if d != prev.AddDays(-1) {
			break
		}
		streak++
		prev = d
	}
	return streak
}

// CategoryBreakdown counts entries per category. Entries without a category
// are counted under model.UnknownCategory.
func CategoryBreakdown(entries []model.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		c := strings.TrimSpace(e.Category)
		if c == "" {
			c = model.UnknownCategory
		}
		counts[c]++
	}
	return counts
}

// CategoryCount is one row of a sorted breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// SortedCategories orders a breakdown by count, highest first, then by name.
func SortedCategories(breakdown map[string]int) []CategoryCount {
	out := make([]CategoryCount, 0, len(breakdown))
	for c, n := range breakdown {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TotalXP sums the XP of all entries.
func TotalXP(entries []model.Entry) int {
	total := 0
	for _, e := range entries {
		total += e.XP
	}
	return total
}

// Matches returns the indexes of entries whose log or category contains term,
// ignoring case. An empty term matches nothing.
func Matches(entries []model.Entry, term string) []int {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}
	var idx []int
	for i, e := range entries {
		if strings.Contains(strings.ToLower(e.Log), needle) ||
			strings.Contains(strings.ToLower(e.Category), needle) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Search returns the entries matching term in their original order.
func Search(entries []model.Entry, term string) []model.Entry {
	idx := Matches(entries, term)
	out := make([]model.Entry, 0, len(idx))
	for _, i := range idx {
		out = append(out, entries[i])
	}
	return out
}

// Summary bundles the figures shown by the stats command.
type Summary struct {
	Entries    int             `json:"entries"`
	Streak     int             `json:"streak"`
	TotalXP    int             `json:"total_xp"`
	Categories []CategoryCount `json:"categories"`
	First      string          `json:"first,omitempty"`
	Last       string          `json:"last,omitempty"`
	Issues     []Issue         `json:"issues,omitempty"`
}

// Summarize computes a Summary as of today.
func Summarize(entries []model.Entry, today time.Time) Summary {
	s := Summary{
		Entries:    len(entries),
		Streak:     Streak(entries, today),
		TotalXP:    TotalXP(entries),
		Categories: SortedCategories(CategoryBreakdown(entries)),
		Issues:     Audit(entries),
	}
	for _, e := range entries {
		if _, err := timecalc.ParseTimestamp(e.Timestamp); err != nil {
			continue
		}
		if s.First == "" || e.Timestamp < s.First {
			s.First = e.Timestamp
		}
		if e.Timestamp > s.Last {
			s.Last = e.Timestamp
		}
	}
	return s
}
