package encounter

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tessvale/stablehand/internal/stable"
)

// RegistrationFee is the flat token cost of registering a tamed mount.
const RegistrationFee = 50

// RegisterController finalizes a tamed encounter: it collects a display
// name, charges the flat fee, and materializes the persistent mount.
type RegisterController struct {
	Store    Store
	Ledger   Ledger
	Registry MountRegistry
	Audit    AuditSink
}

// Finalize charges the registration fee and persists the Mount snapshot.
// On insufficient balance nothing is mutated and the encounter stays in
// AWAITING_REGISTRATION for a retry. The fee is debited before the mount
// is written, matching the charge-before-transition ordering used
// everywhere else in the flow.
func (r *RegisterController) Finalize(id, mountName, characterName, userID string) (*Prompt, error) {
	e, err := r.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if e.State != StateAwaitingRegistration {
		return nil, fmt.Errorf("%w: nothing to register yet", ErrInvalidSelection)
	}
	if err := e.Authorize(characterName, userID); err != nil {
		return nil, err
	}
	if mountName == "" {
		return nil, fmt.Errorf("%w: the mount needs a name", ErrInvalidSelection)
	}

	res, err := r.Ledger.DebitTokens(userID, RegistrationFee)
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return nil, fmt.Errorf("registration costs %d tokens: %w", RegistrationFee, ErrInsufficientFunds)
	}

	mount := stable.Mount{
		ID:      uuid.NewString(),
		Name:    mountName,
		Species: e.MountType,
		Level:   e.MountLevel,
		Stamina: e.MountStamina,
		Rarity:  string(e.Rarity),
		Owner:   characterName,
		OwnerID: userID,
		Region:  e.Village,
		Traits:  e.Traits,
	}
	if err := r.Registry.Register(mount); err != nil {
		return nil, err
	}

	e.TotalSpent += RegistrationFee
	if err := e.Transition(StateRegistered); err != nil {
		return nil, err
	}
	// The encounter's lifecycle is over; the record is removed like an
	// escaped one rather than left behind as a terminal tombstone.
	if err := r.Store.Delete(e.ID); err != nil {
		return nil, err
	}

	r.Audit.Record(&MountRegisteredEvent{
		EncounterID: e.ID,
		Character:   characterName,
		MountName:   mountName,
		Species:     e.MountType,
		Fee:         RegistrationFee,
		TotalSpent:  e.TotalSpent,
	})

	return &Prompt{
		State: StateRegistered,
		Message: fmt.Sprintf("%s the %s is yours! It now lives in %s's stable (%d tokens spent in total).",
			mountName, e.MountType, characterName, e.TotalSpent),
		Terminal: true,
	}, nil
}
