package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tessvale/stablehand/internal/encounter"
)

// FileStore persists one JSON document per encounter under a directory.
// Every Get reads the file fresh, which is what gives handlers their
// re-fetch-before-mutate discipline.
type FileStore struct {
	dir string
}

// NewFileStore creates the encounters directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create encounter store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Get loads the encounter document, returning encounter.ErrNotFound when
// no record exists for the id.
func (s *FileStore) Get(id string) (*encounter.Encounter, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("encounter %s: %w", id, encounter.ErrNotFound)
		}
		return nil, err
	}

	var e encounter.Encounter
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("corrupt encounter record %s: %w", id, err)
	}
	return &e, nil
}

// Put writes the encounter document through a temp file and rename so a
// crash never leaves a half-written record behind.
func (s *FileStore) Put(e *encounter.Encounter) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal encounter %s: %w", e.ID, err)
	}

	tmp := s.path(e.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(e.ID))
}

// Delete removes the encounter document. Deleting an already-gone record
// is not an error.
func (s *FileStore) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// FindByParticipant returns the in-flight encounter tracking the given
// character, if any. Chat inputs carry no encounter id, so the session
// resolves the active record this way.
func (s *FileStore) FindByParticipant(characterName string) (*encounter.Encounter, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		e, err := s.Get(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}
		for _, p := range e.Users {
			if p.CharacterName == characterName {
				return e, nil
			}
		}
	}
	return nil, fmt.Errorf("no active encounter for %s: %w", characterName, encounter.ErrNotFound)
}
