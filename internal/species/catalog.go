package species

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tessvale/stablehand/internal/encounter"
)

// Catalog is the read-only species registry backing trait customization
// and random generation. Species files are searched through the data
// directory fallback hierarchy, first hit wins.
type Catalog struct {
	dataDirs []string
	cache    map[string]*Species
	rng      *rand.Rand
}

// NewCatalog creates a catalog over the given data directories. The seed
// makes the random-trait generator deterministic for tests.
func NewCatalog(dataDirs []string, seed int64) *Catalog {
	return &Catalog{
		dataDirs: dataDirs,
		cache:    make(map[string]*Species),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Species loads the catalog entry for the named species. Unknown species
// surface as ErrUnsupportedConfiguration: a data-integrity problem, not a
// player mistake.
func (c *Catalog) Species(name string) (*Species, error) {
	key := strings.ToLower(name)
	if s, ok := c.cache[key]; ok {
		return s, nil
	}

	ref := filepath.Join("species", fmt.Sprintf("%s.yaml", strings.ReplaceAll(key, " ", "-")))
	for _, dir := range c.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()

		var s Species
		if err := yaml.NewDecoder(f).Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode species file %s: %w", ref, err)
		}
		c.cache[key] = &s
		return &s, nil
	}
	return nil, fmt.Errorf("species %s: %w", name, encounter.ErrUnsupportedConfiguration)
}

// TraitKeys returns the ordered customizable trait keys for a species,
// skipping rare-only traits unless the mount is Rare.
func (c *Catalog) TraitKeys(name string, rarity encounter.Rarity) ([]string, error) {
	s, err := c.Species(name)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, t := range s.Traits {
		if t.RareOnly && rarity != encounter.RarityRare {
			continue
		}
		keys = append(keys, t.Key)
	}
	return keys, nil
}

// Trait returns the catalog view of one trait.
func (c *Catalog) Trait(name, key string) (encounter.TraitSpec, error) {
	s, err := c.Species(name)
	if err != nil {
		return encounter.TraitSpec{}, err
	}
	t, ok := s.Trait(key)
	if !ok {
		return encounter.TraitSpec{}, fmt.Errorf("species %s has no trait %s: %w", name, key, encounter.ErrUnsupportedConfiguration)
	}
	return encounter.TraitSpec{Key: t.Key, Options: t.Options, Price: t.Price}, nil
}

// RandomTraits rolls a full trait set for the species, honoring the
// rarity gate. This is the "skip customization" path.
func (c *Catalog) RandomTraits(name string, rarity encounter.Rarity) (map[string]string, error) {
	keys, err := c.TraitKeys(name, rarity)
	if err != nil {
		return nil, err
	}

	traits := make(map[string]string, len(keys))
	for _, key := range keys {
		value, err := c.RandomValue(name, key)
		if err != nil {
			return nil, err
		}
		traits[key] = value
	}
	return traits, nil
}

// RandomValue picks a uniformly random option for one trait.
func (c *Catalog) RandomValue(name, key string) (string, error) {
	s, err := c.Species(name)
	if err != nil {
		return "", err
	}
	t, ok := s.Trait(key)
	if !ok || len(t.Options) == 0 {
		return "", fmt.Errorf("species %s has no options for trait %s: %w", name, key, encounter.ErrUnsupportedConfiguration)
	}
	return t.Options[c.rng.Intn(len(t.Options))], nil
}

// RollLevel picks a level within the species range.
func (c *Catalog) RollLevel(s *Species) int {
	return rollRange(c.rng, s.Levels)
}

// RollStamina picks a taming difficulty within the species range.
func (c *Catalog) RollStamina(s *Species) int {
	return rollRange(c.rng, s.Stamina)
}

func rollRange(rng *rand.Rand, r Range) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}
