package world

import (
	"fmt"
	"os"
	"path/filepath"
)

// Manager bridges configuration settings with local file organization.
// It handles directory creation and path resolution for a world's data
// and runtime stores, independent of the storage mechanisms themselves.
type Manager struct {
	WorldsDir string
}

// NewManager returns a manager rooted at the configured worlds directory.
func NewManager(worldsDir string) *Manager {
	return &Manager{WorldsDir: worldsDir}
}

// WorldPath produces the safe joined path of a world directory.
func (m *Manager) WorldPath(world string) string {
	return filepath.Join(m.WorldsDir, world)
}

// DataDirs returns the data directory fallback hierarchy for a world:
// the world's own data directory first, then the shared one.
func (m *Manager) DataDirs(world string) []string {
	return []string{
		filepath.Join(m.WorldPath(world), "data"),
		filepath.Join(m.WorldsDir, "data"),
	}
}

// EncountersDir returns where in-flight encounter documents live.
func (m *Manager) EncountersDir(world string) string {
	return filepath.Join(m.WorldPath(world), "encounters")
}

// MountsDir returns where registered mount documents live.
func (m *Manager) MountsDir(world string) string {
	return filepath.Join(m.WorldPath(world), "mounts")
}

// LedgerDir returns where character and wallet records live.
func (m *Manager) LedgerDir(world string) string {
	return filepath.Join(m.WorldPath(world), "ledger")
}

// AuditLogPath returns the world's audit log file.
func (m *Manager) AuditLogPath(world string) string {
	return filepath.Join(m.WorldPath(world), "audit.jsonl")
}

// Create generates the standard directory structure for a new world.
func (m *Manager) Create(world string) error {
	dirs := []string{
		filepath.Join(m.WorldPath(world), "data", "species"),
		filepath.Join(m.WorldPath(world), "data", "villages"),
		m.EncountersDir(world),
		m.MountsDir(world),
		filepath.Join(m.LedgerDir(world), "characters"),
		filepath.Join(m.LedgerDir(world), "wallets"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load verifies the world directory exists.
func (m *Manager) Load(world string) error {
	path := m.WorldPath(world)
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return fmt.Errorf("world folder not found: %s", path)
	}
	return nil
}
