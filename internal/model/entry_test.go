package model_test

import (
	"fmt"
	"testing"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
)

func TestNormalize(t *testing.T) {
	e := model.Normalize(model.Entry{Category: "  Go ", Log: "\tread the docs\n"})
	if e.Category != "Go" {
		t.Errorf("Category = %q, want %q", e.Category, "Go")
	}
	if e.Log != "read the docs" {
		t.Errorf("Log = %q, want %q", e.Log, "read the docs")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		entry model.Entry
		want  error
	}{
		{"valid", model.Entry{Category: "Go", Log: "x"}, nil},
		{"empty log", model.Entry{Category: "Go"}, model.ErrEmptyLog},
		{"empty category", model.Entry{Log: "x"}, model.ErrEmptyCategory},
		{"negative xp", model.Entry{Category: "Go", Log: "x", XP: -1}, model.ErrNegativeXP},
		{"whitespace log", model.Normalize(model.Entry{Category: "Go", Log: "   "}), model.ErrEmptyLog},
	}
	for _, tt := range tests {
		got := model.Validate(tt.entry)
		if got != tt.want {
			t.Errorf("%s: Validate = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsValidation(t *testing.T) {
	if !model.IsValidation(fmt.Errorf("add: %w", model.ErrEmptyCategory)) {
		t.Error("IsValidation: expected wrapped ErrEmptyCategory to match")
	}
	if model.IsValidation(fmt.Errorf("disk full")) {
		t.Error("IsValidation: unexpected match for unrelated error")
	}
}
