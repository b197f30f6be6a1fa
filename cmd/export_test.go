package cmd

import (
	"bytes"
	"testing"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
)

func TestCsvEscape(t *testing.T) {
	tests := map[string]string{
		"read the cobra docs":  "read the cobra docs",
		"":                     "",
		"Go, then Rust":        `"Go, then Rust"`,
		`the "hard" chapter`:   `"the ""hard"" chapter"`,
		"two\nlines":           "\"two\nlines\"",
		"windows\r\nbreak":     "\"windows\r\nbreak\"",
		`"quoted, with comma"`: `"""quoted, with comma"""`,
	}
	for in, want := range tests {
		if got := csvEscape(in); got != want {
			t.Errorf("csvEscape(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExportEntries(t *testing.T) {
	entries := []model.Entry{
		{Timestamp: "2024-01-02 21:00:00", Category: "Go", Log: "tests, finally", XP: 10},
		{Timestamp: "2024-01-03 08:32:10", Category: "Legacy", Log: "read", XP: 0},
		{Timestamp: "2024-01-03 09:00:00", Category: "Go", Log: "cobra", XP: 5},
	}

	var csv bytes.Buffer
	if err := exportEntries(&csv, entries, "csv"); err != nil {
		t.Fatal(err)
	}
	wantCSV := "timestamp,category,xp,log\n" +
		"2024-01-02 21:00:00,Go,10,\"tests, finally\"\n" +
		"2024-01-03 08:32:10,Legacy,0,read\n" +
		"2024-01-03 09:00:00,Go,5,cobra\n"
	if csv.String() != wantCSV {
		t.Errorf("csv export =\n%s\nwant\n%s", csv.String(), wantCSV)
	}

	var md bytes.Buffer
	if err := exportEntries(&md, entries, "md"); err != nil {
		t.Fatal(err)
	}
	wantMD := "## 2024-01-02\n\n" +
		"- 21:00 **Go** tests, finally (10 XP)\n" +
		"\n## 2024-01-03\n\n" +
		"- 08:32 **Legacy** read (0 XP)\n" +
		"- 09:00 **Go** cobra (5 XP)\n"
	if md.String() != wantMD {
		t.Errorf("md export =\n%s\nwant\n%s", md.String(), wantMD)
	}

	if err := exportEntries(&bytes.Buffer{}, entries, "xml"); exitCode(err) != 1 {
		t.Errorf("unknown format: exit code %d, want 1", exitCode(err))
	}
}
