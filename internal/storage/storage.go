package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
)

// ErrNotFound is returned when an index does not address an entry.
var ErrNotFound = errors.New("entry not found")

// Backend persists a whole entry collection. Save always replaces the
// previous content; Load returns an empty collection when nothing is stored.
type Backend interface {
	Load() ([]model.Entry, error)
	Save(entries []model.Entry) error
}

// JSONFile stores the collection as an indented JSON array in a single file.
type JSONFile struct {
	Path string
	// Warn receives a notice when a corrupt file is set aside. Defaults to stderr.
	Warn io.Writer
}

// NewJSONFile returns a JSONFile backend for path.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{Path: path, Warn: os.Stderr}
}

// Load reads the collection. A missing file yields an empty collection. A file
// that does not parse is renamed to <path>.corrupt (or <path>.corrupt.N if
// that backup already exists), reported on Warn, and an empty collection is
// returned.
func (f *JSONFile) Load() ([]model.Entry, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return []model.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage error reading %s: %w", f.Path, err)
	}

	var entries []model.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		backupPath := backupName(f.Path)
		if renameErr := os.Rename(f.Path, backupPath); renameErr != nil {
			return nil, fmt.Errorf("corrupt JSON in %s could not be backed up: %w", f.Path, renameErr)
		}
		f.warnf("Warning: corrupt JSON in %s (backed up to %s), starting with an empty journal: %v\n", f.Path, backupPath, err)
		return []model.Entry{}, nil
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

// Save atomically writes the collection.
func (f *JSONFile) Save(entries []model.Entry) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling JSON: %w", err)
	}
	data = append(data, '\n')

	// Atomic write: write to temp file then rename.
	tmpPath := f.Path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// backupName returns the first unused corrupt-backup name for path.
func backupName(path string) string {
	name := path + ".corrupt"
	for n := 1; ; n++ {
		if _, err := os.Lstat(name); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s.corrupt.%d", path, n)
	}
}

func (f *JSONFile) warnf(format string, args ...any) {
	w := f.Warn
	if w == nil {
		w = os.Stderr
	}
	_, _ = color.New(color.FgYellow).Fprintf(w, format, args...)
}

// Store applies load-modify-save operations to a Backend. Every call reloads
// the collection; nothing is cached between calls.
type Store struct {
	backend Backend
}

// New returns a Store over b.
func New(b Backend) *Store {
	return &Store{backend: b}
}

// Load returns the persisted collection.
func (s *Store) Load() ([]model.Entry, error) {
	return s.backend.Load()
}

// Save replaces the persisted collection.
func (s *Store) Save(entries []model.Entry) error {
	return s.backend.Save(entries)
}

// Append adds e at the end of the collection.
func (s *Store) Append(e model.Entry) error {
	entries, err := s.backend.Load()
	if err != nil {
		return err
	}
	return s.backend.Save(append(entries, e))
}

// Update replaces the entry at index.
func (s *Store) Update(index int, e model.Entry) error {
	return s.Edit(index, func(cur *model.Entry) error {
		*cur = e
		return nil
	})
}

// Edit loads the collection, lets fn modify the entry at index and saves the
// result. Nothing is written if the index is out of range or fn fails.
func (s *Store) Edit(index int, fn func(*model.Entry) error) error {
	entries, err := s.backend.Load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("index %d of %d: %w", index, len(entries), ErrNotFound)
	}
	if err := fn(&entries[index]); err != nil {
		return err
	}
	return s.backend.Save(entries)
}

// Delete removes the entry at index and returns it.
func (s *Store) Delete(index int) (model.Entry, error) {
	entries, err := s.backend.Load()
	if err != nil {
		return model.Entry{}, err
	}
	if index < 0 || index >= len(entries) {
		return model.Entry{}, fmt.Errorf("index %d of %d: %w", index, len(entries), ErrNotFound)
	}
	removed := entries[index]
	entries = append(entries[:index], entries[index+1:]...)
	if err := s.backend.Save(entries); err != nil {
		return model.Entry{}, err
	}
	return removed, nil
}
