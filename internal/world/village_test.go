package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessvale/stablehand/internal/encounter"
	"github.com/tessvale/stablehand/internal/rules"
)

const meadowbrookYAML = `name: Meadowbrook
environment: plains
spawns:
  - species: Horse
    rare_chance: 10
maneuver_rules:
  - when: maneuver == "sneak" && environment == "plains"
    bonus: -2
  - when: maneuver == "rush" && environment == "plains"
    bonus: 2
  - when: species == "Horse"
    bonus: 1
`

func writeVillage(t *testing.T, dir, file, content string) {
	t.Helper()
	villagesDir := filepath.Join(dir, "villages")
	require.NoError(t, os.MkdirAll(villagesDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(villagesDir, file), []byte(content), 0644))
}

func testPolicy(t *testing.T) *Policy {
	t.Helper()
	dir := t.TempDir()
	writeVillage(t, dir, "meadowbrook.yaml", meadowbrookYAML)

	villages, err := LoadVillages([]string{dir})
	require.NoError(t, err)
	eval, err := rules.NewEvaluator()
	require.NoError(t, err)
	return &Policy{Villages: villages, Eval: eval}
}

func TestLoadVillages(t *testing.T) {
	p := testPolicy(t)

	v, ok := p.Village("Meadowbrook")
	require.True(t, ok)
	assert.Equal(t, "plains", v.Environment)
	require.Len(t, v.Spawns, 1)
	assert.Equal(t, "Horse", v.Spawns[0].Species)
	assert.Equal(t, 10, v.Spawns[0].RareChance)

	// Case-insensitive lookup.
	_, ok = p.Village("meadowbrook")
	assert.True(t, ok)

	_, ok = p.Village("Nowhere")
	assert.False(t, ok)
}

func TestLoadVillagesEmpty(t *testing.T) {
	_, err := LoadVillages([]string{t.TempDir()})
	assert.Error(t, err)
}

func TestManeuverModifierSumsMatchingRules(t *testing.T) {
	p := testPolicy(t)

	// sneak: -2 (environment rule) + 1 (species rule).
	mod, err := p.ManeuverModifier("Meadowbrook", "plains", "Horse", encounter.ManeuverSneak)
	require.NoError(t, err)
	assert.Equal(t, -1, mod)

	// rush: +2 + 1.
	mod, err = p.ManeuverModifier("Meadowbrook", "plains", "Horse", encounter.ManeuverRush)
	require.NoError(t, err)
	assert.Equal(t, 3, mod)

	// corner: only the species rule applies.
	mod, err = p.ManeuverModifier("Meadowbrook", "plains", "Horse", encounter.ManeuverCorner)
	require.NoError(t, err)
	assert.Equal(t, 1, mod)
}

func TestManeuverModifierUnknownVillage(t *testing.T) {
	p := testPolicy(t)

	mod, err := p.ManeuverModifier("Atlantis", "sea", "Horse", encounter.ManeuverSneak)
	require.NoError(t, err)
	assert.Equal(t, 0, mod)
}

func TestManagerLayout(t *testing.T) {
	m := NewManager(t.TempDir())
	require.NoError(t, m.Create("hyrule"))

	// Load succeeds after Create, fails for unknown worlds.
	assert.NoError(t, m.Load("hyrule"))
	assert.Error(t, m.Load("termina"))

	for _, dir := range []string{
		filepath.Join(m.WorldPath("hyrule"), "data", "species"),
		filepath.Join(m.WorldPath("hyrule"), "data", "villages"),
		m.EncountersDir("hyrule"),
		m.MountsDir("hyrule"),
		filepath.Join(m.LedgerDir("hyrule"), "characters"),
		filepath.Join(m.LedgerDir("hyrule"), "wallets"),
	} {
		stat, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, stat.IsDir())
	}

	dirs := m.DataDirs("hyrule")
	require.Len(t, dirs, 2)
	assert.Equal(t, filepath.Join(m.WorldPath("hyrule"), "data"), dirs[0])
}
