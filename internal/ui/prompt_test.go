package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/trivial-progress-tracker/internal/ui"
)

func TestPlainText(t *testing.T) {
	out := new(bytes.Buffer)
	p := ui.NewPlain(strings.NewReader("learned cobra\n"), out)

	got, err := p.Text("Log", "")

	require.NoError(t, err)
	assert.Equal(t, "learned cobra", got)
	assert.Equal(t, "Log: ", out.String())
}

func TestPlainTextDefault(t *testing.T) {
	out := new(bytes.Buffer)
	p := ui.NewPlain(strings.NewReader("\n"), out)

	got, err := p.Text("Category", "Go")

	require.NoError(t, err)
	assert.Equal(t, "Go", got)
	assert.Contains(t, out.String(), "Category [Go]: ")
}

func TestPlainTextWithoutTrailingNewline(t *testing.T) {
	p := ui.NewPlain(strings.NewReader("last line"), new(bytes.Buffer))

	got, err := p.Text("Log", "")

	require.NoError(t, err)
	assert.Equal(t, "last line", got)
}

func TestPlainTextEOF(t *testing.T) {
	p := ui.NewPlain(strings.NewReader(""), new(bytes.Buffer))

	_, err := p.Text("Log", "")

	assert.ErrorIs(t, err, ui.ErrAborted)
}

func TestPlainSelectRetriesInvalid(t *testing.T) {
	out := new(bytes.Buffer)
	p := ui.NewPlain(strings.NewReader("9\nabc\n2\n"), out)

	idx, err := p.Select("Menu", []string{"Add", "View", "Exit"})

	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "  3. Exit")
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid choice"))
}

func TestPlainSelectEOF(t *testing.T) {
	p := ui.NewPlain(strings.NewReader("7\n"), new(bytes.Buffer))

	_, err := p.Select("Menu", []string{"Add"})

	assert.ErrorIs(t, err, ui.ErrAborted)
}

func TestPlainConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		out := new(bytes.Buffer)
		p := ui.NewPlain(strings.NewReader(tt.input), out)

		got, err := p.Confirm("Delete?")

		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Delete? [y/N]")
	}
}
