package model

import (
	"errors"
	"strings"
)

// TimestampLayout is the canonical local timestamp format of an entry.
const TimestampLayout = "2006-01-02 15:04:05"

const (
	// LegacyCategory tags entries imported from the plain-text log.
	LegacyCategory = "Legacy"
	// UnknownCategory is the breakdown bucket for entries without a category.
	UnknownCategory = "Unknown"
)

var (
	ErrEmptyLog      = errors.New("log cannot be empty")
	ErrEmptyCategory = errors.New("category cannot be empty")
	ErrNegativeXP    = errors.New("xp cannot be negative")
)

// Entry represents a single journal record.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Category  string `json:"category"`
	Log       string `json:"log"`
	XP        int    `json:"xp"`
}

// Normalize trims surrounding whitespace from the user-supplied fields.
func Normalize(e Entry) Entry {
	e.Category = strings.TrimSpace(e.Category)
	e.Log = strings.TrimSpace(e.Log)
	return e
}

// Validate reports whether e may be persisted. It expects a normalized entry.
func Validate(e Entry) error {
	if e.Log == "" {
		return ErrEmptyLog
	}
	if e.Category == "" {
		return ErrEmptyCategory
	}
	if e.XP < 0 {
		return ErrNegativeXP
	}
	return nil
}

// IsValidation reports whether err is one of the validation errors above.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyLog) || errors.Is(err, ErrEmptyCategory) || errors.Is(err, ErrNegativeXP)
}
