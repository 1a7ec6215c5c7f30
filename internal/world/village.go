package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tessvale/stablehand/internal/encounter"
	"github.com/tessvale/stablehand/internal/rules"
)

// SpawnEntry names a species that can be discovered near a village and
// the percent chance a discovered one is rare.
type SpawnEntry struct {
	Species    string `yaml:"species"`
	RareChance int    `yaml:"rare_chance"`
}

// ManeuverRule is one additive maneuver modifier, guarded by a CEL
// condition over {maneuver, environment, village, species}.
type ManeuverRule struct {
	When  string `yaml:"when"`
	Bonus int    `yaml:"bonus"`
}

// Village is one discoverable region loaded from world data.
type Village struct {
	Name          string         `yaml:"name"`
	Environment   string         `yaml:"environment"`
	Spawns        []SpawnEntry   `yaml:"spawns"`
	ManeuverRules []ManeuverRule `yaml:"maneuver_rules"`
}

// LoadVillages reads every village file from the first data directory
// that has a villages/ subdirectory, keyed by lowercased name.
func LoadVillages(dataDirs []string) (map[string]*Village, error) {
	for _, dir := range dataDirs {
		villagesDir := filepath.Join(dir, "villages")
		entries, err := os.ReadDir(villagesDir)
		if err != nil {
			continue
		}

		villages := make(map[string]*Village)
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
				continue
			}
			f, err := os.Open(filepath.Join(villagesDir, entry.Name()))
			if err != nil {
				return nil, err
			}

			var v Village
			err = yaml.NewDecoder(f).Decode(&v)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to decode village file %s: %w", entry.Name(), err)
			}
			villages[strings.ToLower(v.Name)] = &v
		}
		if len(villages) > 0 {
			return villages, nil
		}
	}
	return nil, fmt.Errorf("no village data found in %v", dataDirs)
}

// Policy resolves maneuver modifiers from village rules. It is the
// encounter controllers' Modifiers source.
type Policy struct {
	Villages map[string]*Village
	Eval     *rules.Evaluator
}

// Village looks up a village by name, case-insensitively.
func (p *Policy) Village(name string) (*Village, bool) {
	v, ok := p.Villages[strings.ToLower(name)]
	return v, ok
}

// ManeuverModifier sums the bonuses of every rule whose condition matches
// the attempt. Unknown villages contribute no modifier; the encounter
// carries its environment with it, so the roll still resolves.
func (p *Policy) ManeuverModifier(village, environment, species string, m encounter.Maneuver) (int, error) {
	v, ok := p.Village(village)
	if !ok {
		return 0, nil
	}

	vars := map[string]any{
		"maneuver":    string(m),
		"environment": environment,
		"village":     v.Name,
		"species":     species,
	}

	total := 0
	for _, rule := range v.ManeuverRules {
		matched, err := p.Eval.Matches(rule.When, vars)
		if err != nil {
			return 0, err
		}
		if matched {
			total += rule.Bonus
		}
	}
	return total, nil
}
