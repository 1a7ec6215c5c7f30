package stable

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileRegistry persists one JSON document per mount under a directory.
type FileRegistry struct {
	dir string
}

// NewFileRegistry creates the mounts directory if needed.
func NewFileRegistry(dir string) (*FileRegistry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create mount registry dir: %w", err)
	}
	return &FileRegistry{dir: dir}, nil
}

// Register writes the mount document. Writes go through a temp file and
// rename so a crash never leaves a half-written record.
func (r *FileRegistry) Register(m Mount) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mount %s: %w", m.ID, err)
	}

	path := filepath.Join(r.dir, m.ID+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ByOwner returns the mounts owned by a character, sorted by name.
func (r *FileRegistry) ByOwner(owner string) ([]Mount, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	var mounts []Mount
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var m Mount
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("corrupt mount record %s: %w", entry.Name(), err)
		}
		if m.Owner == owner {
			mounts = append(mounts, m)
		}
	}

	sort.Slice(mounts, func(i, j int) bool { return mounts[i].Name < mounts[j].Name })
	return mounts, nil
}
