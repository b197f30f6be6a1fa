package legacy_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-progress-tracker/internal/legacy"
	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
)

const sampleLog = `[2024-01-02 10:00:00] finished chapter 3
[2024-01-01 09:00:00] started the book

not a log line
[2024-01-03 8:00:00] short hour
[2024-01-04 12:00:00]
[2024-01-05 07:30:00] early morning run
`

func TestParseLine(t *testing.T) {
	e, err := legacy.ParseLine("[2024-01-02 10:00:00] finished chapter 3  \r\n")

	require.NoError(t, err)
	assert.Equal(t, model.Entry{
		Timestamp: "2024-01-02 10:00:00",
		Category:  model.LegacyCategory,
		Log:       "finished chapter 3",
	}, e)
}

func TestParseLineMalformed(t *testing.T) {
	lines := []string{
		"finished chapter 3",
		"[2024-01-02 10:00:00 finished",
		"[2024-01-02] finished",
		"[2024-13-02 10:00:00] bad month",
		"[2024-01-02 10:00:00]finished",
		"[2024-01-02 10:00:00]    ",
		"[] nothing",
	}
	for _, line := range lines {
		_, err := legacy.ParseLine(line)
		assert.ErrorIs(t, err, legacy.ErrMalformedLine, "line %q", line)
	}
}

func TestParse(t *testing.T) {
	entries, malformed, err := legacy.Parse(strings.NewReader(sampleLog))

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-01-02 10:00:00", entries[0].Timestamp)
	assert.Equal(t, "early morning run", entries[2].Log)

	require.Len(t, malformed, 3)
	assert.Equal(t, 4, malformed[0].Line)
	assert.Equal(t, "not a log line", malformed[0].Text)
	assert.Equal(t, 5, malformed[1].Line)
	assert.Equal(t, 6, malformed[2].Line)
}

func TestMigrateSortsAndTags(t *testing.T) {
	existing := []model.Entry{
		{Timestamp: "2024-01-04 18:00:00", Category: "Go", Log: "structured entry", XP: 10},
	}

	res, err := legacy.Migrate(strings.NewReader(sampleLog), existing, legacy.Options{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Migrated)
	assert.Equal(t, 0, res.Duplicates)
	assert.Len(t, res.Malformed, 3)

	var order []string
	for _, e := range res.Entries {
		order = append(order, e.Timestamp)
	}
	assert.Equal(t, []string{
		"2024-01-01 09:00:00",
		"2024-01-02 10:00:00",
		"2024-01-04 18:00:00",
		"2024-01-05 07:30:00",
	}, order)
	assert.Equal(t, model.LegacyCategory, res.Entries[0].Category)
	assert.Equal(t, 0, res.Entries[0].XP)
	assert.Equal(t, "Go", res.Entries[2].Category)
}

func TestMigrateIsIdempotent(t *testing.T) {
	first, err := legacy.Migrate(strings.NewReader(sampleLog), nil, legacy.Options{})
	require.NoError(t, err)
	require.Equal(t, 3, first.Migrated)

	second, err := legacy.Migrate(strings.NewReader(sampleLog), first.Entries, legacy.Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, second.Migrated)
	assert.Equal(t, 3, second.Duplicates)
	assert.Equal(t, first.Entries, second.Entries)
}

func TestMigrateSkipsExistingTimestamp(t *testing.T) {
	existing := []model.Entry{
		{Timestamp: "2024-01-01 09:00:00", Category: "Reading", Log: "started the book (edited)", XP: 3},
	}

	res, err := legacy.Migrate(strings.NewReader(sampleLog), existing, legacy.Options{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Migrated)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, existing[0], res.Entries[0], "existing entry must be kept untouched")
}

func TestMigrateProgressOutput(t *testing.T) {
	out := new(bytes.Buffer)
	_, err := legacy.Migrate(strings.NewReader(sampleLog), nil, legacy.Options{DryRun: true, Progress: out})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Imported: [2024-01-05 07:30:00] early morning run [dry-run]")
	assert.Contains(t, out.String(), "! Line 4:")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestMigrateReadError(t *testing.T) {
	_, err := legacy.Migrate(failingReader{}, nil, legacy.Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestParseVeryLongLine(t *testing.T) {
	long := "[2024-01-02 10:00:00] " + strings.Repeat("x", 2<<20)
	input := "[2024-01-01 09:00:00] before\n" + long + "\nnot a log line " + strings.Repeat("y", 2<<20) + "\n[2024-01-03 09:00:00] after"

	entries, malformed, err := legacy.Parse(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Len(t, entries[1].Log, 2<<20)
	assert.Equal(t, "after", entries[2].Log)
	require.Len(t, malformed, 1)
	assert.Equal(t, 3, malformed[0].Line)
}

func TestParseStripsByteOrderMark(t *testing.T) {
	entries, malformed, err := legacy.Parse(strings.NewReader("\ufeff[2024-01-01 09:00:00] first\n[2024-01-02 09:00:00] second\n"))

	require.NoError(t, err)
	assert.Empty(t, malformed)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-01-01 09:00:00", entries[0].Timestamp)
}
