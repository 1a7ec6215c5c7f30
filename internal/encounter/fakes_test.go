package encounter

import (
	"fmt"

	"github.com/tessvale/stablehand/internal/stable"
)

// memStore is an in-memory Store for controller tests.
type memStore struct {
	encounters map[string]*Encounter
}

func newMemStore(encounters ...*Encounter) *memStore {
	s := &memStore{encounters: make(map[string]*Encounter)}
	for _, e := range encounters {
		s.encounters[e.ID] = e
	}
	return s
}

func (s *memStore) Get(id string) (*Encounter, error) {
	e, ok := s.encounters[id]
	if !ok {
		return nil, fmt.Errorf("encounter %s: %w", id, ErrNotFound)
	}
	return e, nil
}

func (s *memStore) Put(e *Encounter) error {
	s.encounters[e.ID] = e
	return nil
}

func (s *memStore) Delete(id string) error {
	delete(s.encounters, id)
	return nil
}

// memLedger tracks balances in memory, mirroring the file ledger's
// check-then-decrement semantics.
type memLedger struct {
	stamina map[string]int
	tokens  map[string]int
}

func newMemLedger() *memLedger {
	return &memLedger{stamina: make(map[string]int), tokens: make(map[string]int)}
}

func (l *memLedger) DebitStamina(characterName string, n int) (LedgerResult, error) {
	if l.stamina[characterName] < n {
		return LedgerResult{OK: false, NewBalance: l.stamina[characterName]}, nil
	}
	l.stamina[characterName] -= n
	return LedgerResult{OK: true, NewBalance: l.stamina[characterName]}, nil
}

func (l *memLedger) DebitTokens(userID string, n int) (LedgerResult, error) {
	if l.tokens[userID] < n {
		return LedgerResult{OK: false, NewBalance: l.tokens[userID]}, nil
	}
	l.tokens[userID] -= n
	return LedgerResult{OK: true, NewBalance: l.tokens[userID]}, nil
}

func (l *memLedger) Stamina(characterName string) (int, error) {
	return l.stamina[characterName], nil
}

func (l *memLedger) Tokens(userID string) (int, error) {
	return l.tokens[userID], nil
}

// memInventory serves a fixed item list and counts consumptions.
type memInventory struct {
	items    []DistractionItem
	consumed []string
}

func (i *memInventory) DistractionItems(characterName, species string) ([]DistractionItem, error) {
	return i.items, nil
}

func (i *memInventory) ConsumeItem(characterName, item string) error {
	i.consumed = append(i.consumed, item)
	for n := range i.items {
		if i.items[n].Name == item {
			i.items[n].Quantity--
			return nil
		}
	}
	return fmt.Errorf("no %s carried: %w", item, ErrInvalidSelection)
}

// flatModifiers answers every maneuver with the same bonus.
type flatModifiers struct {
	bonus int
}

func (m *flatModifiers) ManeuverModifier(village, environment, species string, mv Maneuver) (int, error) {
	return m.bonus, nil
}

// memCatalog is a fixed trait catalog. Random values always resolve to
// the first option.
type memCatalog struct {
	keys   []string
	traits map[string]TraitSpec
}

func newMemCatalog(specs ...TraitSpec) *memCatalog {
	c := &memCatalog{traits: make(map[string]TraitSpec)}
	for _, spec := range specs {
		c.keys = append(c.keys, spec.Key)
		c.traits[spec.Key] = spec
	}
	return c
}

func (c *memCatalog) TraitKeys(species string, rarity Rarity) ([]string, error) {
	return c.keys, nil
}

func (c *memCatalog) Trait(species, key string) (TraitSpec, error) {
	spec, ok := c.traits[key]
	if !ok {
		return TraitSpec{}, fmt.Errorf("trait %s: %w", key, ErrUnsupportedConfiguration)
	}
	return spec, nil
}

func (c *memCatalog) RandomTraits(species string, rarity Rarity) (map[string]string, error) {
	out := make(map[string]string, len(c.keys))
	for _, key := range c.keys {
		out[key] = c.traits[key].Options[0]
	}
	return out, nil
}

func (c *memCatalog) RandomValue(species, key string) (string, error) {
	spec, ok := c.traits[key]
	if !ok {
		return "", fmt.Errorf("trait %s: %w", key, ErrUnsupportedConfiguration)
	}
	return spec.Options[0], nil
}

// memRegistry collects registered mounts.
type memRegistry struct {
	mounts []stable.Mount
}

func (r *memRegistry) Register(m stable.Mount) error {
	r.mounts = append(r.mounts, m)
	return nil
}

// recordingAudit collects emitted event types in order.
type recordingAudit struct {
	events []AuditEvent
}

func (a *recordingAudit) Record(ev AuditEvent) {
	a.events = append(a.events, ev)
}

func (a *recordingAudit) types() []AuditEventType {
	var out []AuditEventType
	for _, ev := range a.events {
		out = append(out, ev.Type())
	}
	return out
}
