package encounter

import "github.com/tessvale/stablehand/internal/stable"

// Store is the keyed persistence contract the controllers require. Get
// must return ErrNotFound (wrapped or not) for a missing id. Controllers
// always re-fetch through Get at the start of an interaction instead of
// trusting a previously held copy.
type Store interface {
	Get(id string) (*Encounter, error)
	Put(e *Encounter) error
	Delete(id string) error
}

// LedgerResult is the outcome of a debit attempt. OK false means the
// balance could not cover the debit and nothing was charged.
type LedgerResult struct {
	OK         bool
	NewBalance int
}

// Ledger owns character stamina/hearts and user token balances. The
// controllers never mutate balances directly; atomicity of each debit is
// the ledger's responsibility. Reads reflect the latest persisted value,
// so calling Stamina before a debit re-reads the record.
type Ledger interface {
	DebitStamina(characterName string, n int) (LedgerResult, error)
	DebitTokens(userID string, n int) (LedgerResult, error)
	Stamina(characterName string) (int, error)
	Tokens(userID string) (int, error)
}

// DistractionItem is an inventory entry usable to distract the current
// mount species, deduplicated by name with summed quantity.
type DistractionItem struct {
	Name     string
	Bonus    int
	Quantity int
}

// Inventory lists and consumes a character's distraction items.
type Inventory interface {
	DistractionItems(characterName, species string) ([]DistractionItem, error)
	ConsumeItem(characterName, item string) error
}

// Modifiers resolves the additive environment modifier for a maneuver.
// The village/environment pairings are policy data, not controller logic.
type Modifiers interface {
	ManeuverModifier(village, environment, species string, m Maneuver) (int, error)
}

// TraitSpec is the catalog view of one customizable trait.
type TraitSpec struct {
	Key     string
	Options []string
	Price   int
}

// TraitCatalog is the per-species customization data source. Unknown
// species must yield ErrUnsupportedConfiguration.
type TraitCatalog interface {
	TraitKeys(species string, rarity Rarity) ([]string, error)
	Trait(species, key string) (TraitSpec, error)
	RandomTraits(species string, rarity Rarity) (map[string]string, error)
	RandomValue(species, key string) (string, error)
}

// MountRegistry persists the final tamed creature.
type MountRegistry interface {
	Register(m stable.Mount) error
}

// AuditSink receives structured audit events. Recording is fire and
// forget; a sink failure never blocks a state transition.
type AuditSink interface {
	Record(ev AuditEvent)
}
