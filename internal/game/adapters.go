package game

import (
	"github.com/tessvale/stablehand/internal/encounter"
	"github.com/tessvale/stablehand/internal/ledger"
	"github.com/tessvale/stablehand/internal/species"
	"github.com/tessvale/stablehand/internal/stable"
)

// inventorySource joins the character's carried items against the
// species catalog's distraction affinities, producing the choice set the
// capture controller presents.
type inventorySource struct {
	ledger  *ledger.FileLedger
	catalog *species.Catalog
}

func (s *inventorySource) DistractionItems(characterName, speciesName string) ([]encounter.DistractionItem, error) {
	sp, err := s.catalog.Species(speciesName)
	if err != nil {
		return nil, err
	}

	bonuses := make(map[string]int, len(sp.DistractionItems))
	for _, item := range sp.DistractionItems {
		bonuses[item.Name] = item.Bonus
	}

	carried, err := s.ledger.Items(characterName)
	if err != nil {
		return nil, err
	}

	var items []encounter.DistractionItem
	for _, it := range carried {
		bonus, ok := bonuses[it.Name]
		if !ok || it.Quantity <= 0 {
			continue
		}
		items = append(items, encounter.DistractionItem{
			Name:     it.Name,
			Bonus:    bonus,
			Quantity: it.Quantity,
		})
	}
	return items, nil
}

func (s *inventorySource) ConsumeItem(characterName, item string) error {
	return s.ledger.ConsumeItem(characterName, item)
}

// mountRegistry persists the registered mount and flags its owner as a
// mount holder in the same step.
type mountRegistry struct {
	mounts *stable.FileRegistry
	ledger *ledger.FileLedger
}

func (r *mountRegistry) Register(m stable.Mount) error {
	if err := r.mounts.Register(m); err != nil {
		return err
	}
	return r.ledger.MarkMountOwner(m.Owner)
}
