package species

// Trait is one customizable attribute of a species, with its enumerated
// option values and per-selection token price. RareOnly traits are
// offered only when the encounter rolled a rare mount.
type Trait struct {
	Key      string   `yaml:"key"`
	Options  []string `yaml:"options"`
	Price    int      `yaml:"price"`
	RareOnly bool     `yaml:"rare_only"`
}

// Range bounds a randomly resolved integer attribute.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// DistractionItem names an inventory item this species responds to and
// the bonus it grants on the distraction roll.
type DistractionItem struct {
	Name  string `yaml:"name"`
	Bonus int    `yaml:"bonus"`
}

// Species is one tameable creature kind loaded from the catalog data.
type Species struct {
	Name             string            `yaml:"name"`
	Levels           Range             `yaml:"levels"`
	Stamina          Range             `yaml:"stamina"`
	Traits           []Trait           `yaml:"traits"`
	DistractionItems []DistractionItem `yaml:"distraction_items"`
}

// Trait returns the trait with the given key.
func (s *Species) Trait(key string) (Trait, bool) {
	for _, t := range s.Traits {
		if t.Key == key {
			return t, true
		}
	}
	return Trait{}, false
}
