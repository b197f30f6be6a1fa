// Package journal is the entry point the CLI uses: it validates input, stamps
// timestamps and composes the store, the legacy migrator and the statistics.
package journal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Tiliavir/trivial-progress-tracker/internal/legacy"
	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
	"github.com/Tiliavir/trivial-progress-tracker/internal/stats"
	"github.com/Tiliavir/trivial-progress-tracker/internal/storage"
	"github.com/Tiliavir/trivial-progress-tracker/internal/timecalc"
)

const (
	// DefaultXP is awarded to new entries unless configured otherwise.
	DefaultXP = 10
	// UseDefaultXP asks Add for the configured default XP.
	UseDefaultXP = -1
)

// Journal exposes the journal operations over a Store.
type Journal struct {
	store     *storage.Store
	now       func() time.Time
	defaultXP int
	progress  io.Writer
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithDefaultXP sets the XP given to entries added without an explicit value.
func WithDefaultXP(xp int) Option {
	return func(j *Journal) { j.defaultXP = xp }
}

// WithProgress sets where migration progress lines are written.
func WithProgress(w io.Writer) Option {
	return func(j *Journal) { j.progress = w }
}

// New returns a Journal backed by store.
func New(store *storage.Store, opts ...Option) *Journal {
	j := &Journal{store: store, now: time.Now, defaultXP: DefaultXP}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// LoadAll returns every entry in stored order.
func (j *Journal) LoadAll() ([]model.Entry, error) {
	return j.store.Load()
}

// Add records a new entry stamped with the current time. Passing UseDefaultXP
// awards the configured default; any other negative xp is rejected.
func (j *Journal) Add(log, category string, xp int) (model.Entry, error) {
	if xp == UseDefaultXP {
		xp = j.defaultXP
	}
	e := model.Normalize(model.Entry{
		Timestamp: timecalc.FormatTimestamp(j.now()),
		Category:  category,
		Log:       log,
		XP:        xp,
	})
	if err := model.Validate(e); err != nil {
		return model.Entry{}, err
	}
	if err := j.store.Append(e); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// UpdateAt replaces the log and category of the entry at index, keeping its
// timestamp and XP.
func (j *Journal) UpdateAt(index int, log, category string) (model.Entry, error) {
	patch := model.Normalize(model.Entry{Category: category, Log: log})
	if patch.Log == "" {
		return model.Entry{}, model.ErrEmptyLog
	}
	if patch.Category == "" {
		return model.Entry{}, model.ErrEmptyCategory
	}

	var updated model.Entry
	err := j.store.Edit(index, func(e *model.Entry) error {
		e.Log = patch.Log
		e.Category = patch.Category
		updated = *e
		return nil
	})
	if err != nil {
		return model.Entry{}, err
	}
	return updated, nil
}

// DeleteAt removes the entry at index and returns it.
func (j *Journal) DeleteAt(index int) (model.Entry, error) {
	return j.store.Delete(index)
}

// Search returns the entries whose log or category contains term.
func (j *Journal) Search(term string) ([]model.Entry, error) {
	entries, err := j.store.Load()
	if err != nil {
		return nil, err
	}
	return stats.Search(entries, term), nil
}

// Streak returns the current daily streak.
func (j *Journal) Streak() (int, error) {
	entries, err := j.store.Load()
	if err != nil {
		return 0, err
	}
	return stats.Streak(entries, j.now()), nil
}

// CategoryBreakdown returns the number of entries per category.
func (j *Journal) CategoryBreakdown() (map[string]int, error) {
	entries, err := j.store.Load()
	if err != nil {
		return nil, err
	}
	return stats.CategoryBreakdown(entries), nil
}

// TotalXP returns the XP earned across all entries.
func (j *Journal) TotalXP() (int, error) {
	entries, err := j.store.Load()
	if err != nil {
		return 0, err
	}
	return stats.TotalXP(entries), nil
}

// Summary returns all statistics computed from a single load.
func (j *Journal) Summary() (stats.Summary, error) {
	entries, err := j.store.Load()
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(entries, j.now()), nil
}

// MigrateLegacy imports the plain-text log at path. A missing file is not an
// error and migrates nothing. The journal is only rewritten when at least one
// entry was imported and dryRun is false.
func (j *Journal) MigrateLegacy(path string, dryRun bool) (legacy.Result, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return legacy.Result{}, nil
	}
	if err != nil {
		return legacy.Result{}, fmt.Errorf("opening legacy log %s: %w", path, err)
	}
	defer f.Close()

	entries, err := j.store.Load()
	if err != nil {
		return legacy.Result{}, err
	}

	res, err := legacy.Migrate(f, entries, legacy.Options{DryRun: dryRun, Progress: j.progress})
	if err != nil {
		return legacy.Result{}, err
	}
	if res.Migrated > 0 && !dryRun {
		if err := j.store.Save(res.Entries); err != nil {
			return legacy.Result{}, err
		}
	}
	return res, nil
}
