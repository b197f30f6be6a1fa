// Package legacy imports the plain-text progress log that predates the JSON
// journal. Each line has the form "[YYYY-MM-DD HH:MM:SS] text".
package legacy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
	"github.com/Tiliavir/trivial-progress-tracker/internal/timecalc"
)

// ErrMalformedLine is wrapped by every line-level parse error.
var ErrMalformedLine = errors.New("malformed legacy line")

// Malformed describes a line that was skipped during parsing.
type Malformed struct {
	Line int
	Text string
	Err  error
}

// Result holds the outcome of a migration run.
type Result struct {
	// Entries is the combined collection sorted by timestamp.
	Entries    []model.Entry
	Migrated   int
	Duplicates int
	Malformed  []Malformed
}

// Options configures a migration run.
type Options struct {
	DryRun bool
	// Progress receives one line per imported or skipped record. Nil is silent.
	Progress io.Writer
}

// ParseLine converts one legacy line into an entry tagged with the Legacy
// category and zero XP.
func ParseLine(line string) (model.Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "[") {
		return model.Entry{}, fmt.Errorf("%w: missing opening bracket", ErrMalformedLine)
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return model.Entry{}, fmt.Errorf("%w: missing closing bracket", ErrMalformedLine)
	}

	ts := line[1:end]
	if _, err := timecalc.ParseTimestamp(ts); err != nil {
		return model.Entry{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}

	rest := line[end+1:]
	if !strings.HasPrefix(rest, " ") {
		return model.Entry{}, fmt.Errorf("%w: missing separator after timestamp", ErrMalformedLine)
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return model.Entry{}, fmt.Errorf("%w: %v", ErrMalformedLine, model.ErrEmptyLog)
	}

	return model.Entry{
		Timestamp: ts,
		Category:  model.LegacyCategory,
		Log:       text,
		XP:        0,
	}, nil
}

// Parse reads all non-blank lines from r. Lines that cannot be parsed are
// returned as Malformed instead of failing the whole read. Lines have no
// length limit and a leading UTF-8 byte order mark is ignored.
func Parse(r io.Reader) ([]model.Entry, []Malformed, error) {
	var entries []model.Entry
	var malformed []Malformed

	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("reading legacy log: %w", err)
		}
		if text == "" && err != nil {
			break
		}
		text = strings.TrimRight(text, "\r\n")
		if n == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		if strings.TrimSpace(text) != "" {
			e, perr := ParseLine(text)
			if perr != nil {
				malformed = append(malformed, Malformed{Line: n, Text: text, Err: perr})
			} else {
				entries = append(entries, e)
			}
		}
		if err != nil {
			break
		}
	}
	return entries, malformed, nil
}

// Migrate merges the records from r into existing. A record whose timestamp
// is already present in existing is skipped, so running Migrate again over
// its own result imports nothing. Entries of existing are never modified.
func Migrate(r io.Reader, existing []model.Entry, opts Options) (Result, error) {
	parsed, malformed, err := Parse(r)
	if err != nil {
		return Result{}, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		seen[e.Timestamp] = struct{}{}
	}

	result := Result{Malformed: malformed}
	combined := make([]model.Entry, 0, len(existing)+len(parsed))
	combined = append(combined, existing...)

	dryTag := ""
	if opts.DryRun {
		dryTag = " [dry-run]"
	}
	for _, e := range parsed {
		if _, dup := seen[e.Timestamp]; dup {
			progressf(opts.Progress, "  – Skipped:  [%s] %s (already exists)\n", e.Timestamp, e.Log)
			result.Duplicates++
			continue
		}
		combined = append(combined, e)
		progressf(opts.Progress, "  ✓ Imported: [%s] %s%s\n", e.Timestamp, e.Log, dryTag)
		result.Migrated++
	}
	for _, m := range malformed {
		progressf(opts.Progress, "  ! Line %d: %v\n", m.Line, m.Err)
	}

	// The canonical layout sorts lexically in chronological order.
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Timestamp < combined[j].Timestamp
	})
	result.Entries = combined
	return result, nil
}

func progressf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	_, _ = fmt.Fprintf(w, format, args...)
}
