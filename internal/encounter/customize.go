package encounter

import "fmt"

// CustomizeController runs the sequential trait-by-trait selection
// sub-machine entered after a successful tame. Trait keys are resolved in
// catalog order, exactly once each; the cursor is implicit in which keys
// are already present in the encounter's trait map, so re-presenting a
// step after a display failure can never charge twice.
type CustomizeController struct {
	Store   Store
	Ledger  Ledger
	Catalog TraitCatalog
	Audit   AuditSink
}

// Choose handles the binary customize-or-skip fork. Skipping rolls every
// trait through the species generator for free and moves straight to
// registration.
func (c *CustomizeController) Choose(id string, customize bool, characterName, userID string) (*Prompt, error) {
	e, err := c.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if e.State != StateAwaitingCustomizationChoice {
		return nil, fmt.Errorf("%w: no customization choice pending", ErrInvalidSelection)
	}
	if err := e.Authorize(characterName, userID); err != nil {
		return nil, err
	}

	if !customize {
		traits, err := c.Catalog.RandomTraits(e.MountType, e.Rarity)
		if err != nil {
			return nil, err
		}
		e.Traits = traits
		if err := e.Transition(StateAwaitingRegistration); err != nil {
			return nil, err
		}
		if err := c.Store.Put(e); err != nil {
			return nil, err
		}
		for key, value := range traits {
			c.Audit.Record(&TraitResolvedEvent{
				EncounterID: e.ID,
				Character:   characterName,
				Trait:       key,
				Value:       value,
				Random:      true,
			})
		}
		return registrationPrompt(e, RegistrationFee), nil
	}

	// Verify the catalog knows this species before committing to the
	// customization path, so an unsupported configuration surfaces here.
	keys, err := c.Catalog.TraitKeys(e.MountType, e.Rarity)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s has no customizable traits", ErrUnsupportedConfiguration, e.MountType)
	}

	if err := e.Transition(StateCustomizing); err != nil {
		return nil, err
	}
	if err := c.Store.Put(e); err != nil {
		return nil, err
	}

	spec, err := c.Catalog.Trait(e.MountType, keys[0])
	if err != nil {
		return nil, err
	}
	return traitPrompt(e, spec), nil
}

// Pick resolves the current trait key. An explicit value is charged at
// the trait's species price; "random" selects uniformly from the option
// set at no cost. The charge lands before the trait is written, so a
// crash between the two re-presents the same step without a second
// successful selection ever being possible.
func (c *CustomizeController) Pick(id, value string, random bool, characterName, userID string) (*Prompt, error) {
	e, err := c.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if e.State != StateCustomizing {
		return nil, fmt.Errorf("%w: no trait selection pending", ErrInvalidSelection)
	}
	if err := e.Authorize(characterName, userID); err != nil {
		return nil, err
	}

	keys, err := c.Catalog.TraitKeys(e.MountType, e.Rarity)
	if err != nil {
		return nil, err
	}
	key, remaining := nextTrait(e, keys)
	if key == "" {
		// Every key already resolved; the state should have advanced.
		return nil, fmt.Errorf("%w: all traits already resolved", ErrInvalidSelection)
	}

	spec, err := c.Catalog.Trait(e.MountType, key)
	if err != nil {
		return nil, err
	}

	cost := 0
	if random {
		value, err = c.Catalog.RandomValue(e.MountType, key)
		if err != nil {
			return nil, err
		}
	} else {
		if !contains(spec.Options, value) {
			return nil, fmt.Errorf("%w: %s is not a valid %s", ErrInvalidSelection, value, key)
		}
		cost = spec.Price
		res, err := c.Ledger.DebitTokens(userID, cost)
		if err != nil {
			return nil, err
		}
		if !res.OK {
			return nil, fmt.Errorf("%s costs %d tokens: %w", key, cost, ErrInsufficientFunds)
		}
	}

	e.Traits[key] = value
	if !random {
		e.CustomizedTraits = append(e.CustomizedTraits, key)
		e.TotalSpent += cost
	}

	if remaining == 1 {
		// That was the last key in order.
		if err := e.Transition(StateAwaitingRegistration); err != nil {
			return nil, err
		}
	}
	if err := c.Store.Put(e); err != nil {
		return nil, err
	}

	c.Audit.Record(&TraitResolvedEvent{
		EncounterID: e.ID,
		Character:   characterName,
		Trait:       key,
		Value:       value,
		Cost:        cost,
		Random:      random,
	})

	if e.State == StateAwaitingRegistration {
		return registrationPrompt(e, RegistrationFee), nil
	}

	next, _ := nextTrait(e, keys)
	nextSpec, err := c.Catalog.Trait(e.MountType, next)
	if err != nil {
		return nil, err
	}
	return traitPrompt(e, nextSpec), nil
}

// nextTrait returns the first catalog key not yet resolved on the
// encounter and how many keys remain unresolved in total.
func nextTrait(e *Encounter, keys []string) (next string, remaining int) {
	for _, key := range keys {
		if e.TraitResolved(key) {
			continue
		}
		if next == "" {
			next = key
		}
		remaining++
	}
	return next, remaining
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
