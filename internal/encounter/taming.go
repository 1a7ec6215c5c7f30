package encounter

import "fmt"

// TamingController orchestrates the dice-pool taming check entered after
// a successful capture maneuver.
type TamingController struct {
	Store  Store
	Ledger Ledger
	Audit  AuditSink
}

// Attempt resolves one taming check. The pool size is the character's
// current stamina, re-read from the ledger at call time; no stamina is
// debited for the check itself. Zero stamina means the creature escapes
// before any dice are rolled. A failed check leaves the encounter in
// AWAITING_TAME so the player can retry while stamina remains.
func (t *TamingController) Attempt(id, characterName, userID string) (*Prompt, error) {
	e, err := t.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if e.State != StateAwaitingTame {
		return nil, fmt.Errorf("%w: no taming check pending", ErrInvalidSelection)
	}
	if err := e.Authorize(characterName, userID); err != nil {
		return nil, err
	}

	stamina, err := t.Ledger.Stamina(characterName)
	if err != nil {
		return nil, err
	}
	if stamina <= 0 {
		if err := t.Store.Delete(e.ID); err != nil {
			return nil, err
		}
		t.Audit.Record(&CreatureEscapedEvent{
			EncounterID: e.ID,
			Character:   characterName,
			Species:     e.MountType,
			Phase:       e.State,
		})
		return nil, fmt.Errorf("the %s broke free and escaped into the wild: %w", e.MountType, ErrResourceExhausted)
	}

	outcome := ResolveTaming(stamina, e.MountStamina)

	if outcome.Tamed {
		e.TameStatus = true
		if err := e.Transition(StateAwaitingCustomizationChoice); err != nil {
			return nil, err
		}
		if err := t.Store.Put(e); err != nil {
			return nil, err
		}
	}

	t.Audit.Record(&TamingResolvedEvent{
		EncounterID: e.ID,
		Character:   characterName,
		Rolls:       outcome.Rolls,
		Successes:   outcome.Successes,
		Threshold:   e.MountStamina,
		Natural20:   outcome.Natural20,
		Tamed:       outcome.Tamed,
	})

	if outcome.Tamed {
		return customizationChoicePrompt(e), nil
	}
	msg := fmt.Sprintf("You rolled %v: %d of %d successes needed. The %s shakes you off, but you can try again.",
		outcome.Rolls, outcome.Successes, e.MountStamina, e.MountType)
	return tamePrompt(e, msg), nil
}
