package encounter

import "fmt"

// State is the explicit lifecycle tag of an encounter. Transitions are
// validated through CanTransition so that handlers cannot drive a record
// into an illegal configuration.
type State string

const (
	StateAwaitingAction              State = "AWAITING_ACTION"
	StateAwaitingTame                State = "AWAITING_TAME"
	StateAwaitingCustomizationChoice State = "AWAITING_CUSTOMIZATION_CHOICE"
	StateCustomizing                 State = "CUSTOMIZING"
	StateAwaitingRegistration        State = "AWAITING_REGISTRATION"
	StateRegistered                  State = "REGISTERED"
)

// legalTransitions maps each state to the states reachable from it.
// Retry loops (failed maneuver, failed tame, rejected pick) stay on the
// same state and never pass through here.
var legalTransitions = map[State][]State{
	StateAwaitingAction:              {StateAwaitingTame},
	StateAwaitingTame:                {StateAwaitingCustomizationChoice},
	StateAwaitingCustomizationChoice: {StateCustomizing, StateAwaitingRegistration},
	StateCustomizing:                 {StateAwaitingRegistration},
	StateAwaitingRegistration:        {StateRegistered},
}

// CanTransition reports whether moving from s to next is a legal step.
func (s State) CanTransition(next State) bool {
	for _, t := range legalTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Rarity classifies how uncommon the discovered mount is. Rare mounts
// unlock rare-only traits during customization.
type Rarity string

const (
	RarityRegular Rarity = "Regular"
	RarityRare    Rarity = "Rare"
)

// Participant is a character/user pairing tracked as eligible to act on
// the encounter. A character appears at most once per encounter.
type Participant struct {
	CharacterName string `json:"character_name"`
	UserID        string `json:"user_id"`
}

// Encounter is the persisted record of one in-progress taming session.
// It is the only state carried between chat interactions; every handler
// re-fetches it from the store before acting.
type Encounter struct {
	ID          string `json:"id"`
	Village     string `json:"village"`
	Environment string `json:"environment"`

	MountType    string `json:"mount_type"`
	MountLevel   int    `json:"mount_level"`
	Rarity       Rarity `json:"rarity"`
	MountStamina int    `json:"mount_stamina"`

	State     State `json:"state"`
	GlideUsed bool  `json:"glide_used"`

	RollerID string        `json:"roller_id"`
	Users    []Participant `json:"users"`

	Traits           map[string]string `json:"traits"`
	CustomizedTraits []string          `json:"customized_traits"`
	TotalSpent       int               `json:"total_spent"`

	TameStatus        bool `json:"tame_status"`
	DistractionResult bool `json:"distraction_result"`
}

// New creates a concrete encounter in its initial capture state.
func New(id, village, environment, mountType string, level, stamina int, rarity Rarity, rollerID string) *Encounter {
	return &Encounter{
		ID:           id,
		Village:      village,
		Environment:  environment,
		MountType:    mountType,
		MountLevel:   level,
		Rarity:       rarity,
		MountStamina: stamina,
		State:        StateAwaitingAction,
		RollerID:     rollerID,
		Traits:       make(map[string]string),
	}
}

// AddParticipant tracks a character/user pairing on the encounter.
// Adding a character that is already tracked is rejected.
func (e *Encounter) AddParticipant(characterName, userID string) error {
	for _, p := range e.Users {
		if p.CharacterName == characterName {
			return fmt.Errorf("character %s already tracked on encounter %s", characterName, e.ID)
		}
	}
	e.Users = append(e.Users, Participant{CharacterName: characterName, UserID: userID})
	return nil
}

// Authorize checks that the acting character is tracked on this encounter
// and that the acting user owns that character. The character name is
// required in every action payload; there is no first-participant
// shortcut.
func (e *Encounter) Authorize(characterName, userID string) error {
	for _, p := range e.Users {
		if p.CharacterName == characterName {
			if p.UserID != userID {
				return ErrUnauthorized
			}
			return nil
		}
	}
	return ErrUnauthorized
}

// Transition moves the encounter to next after validating legality.
func (e *Encounter) Transition(next State) error {
	if !e.State.CanTransition(next) {
		return fmt.Errorf("illegal transition %s -> %s on encounter %s", e.State, next, e.ID)
	}
	e.State = next
	return nil
}

// TraitResolved reports whether the given trait key has already been
// written, either by explicit choice or randomization.
func (e *Encounter) TraitResolved(key string) bool {
	_, ok := e.Traits[key]
	return ok
}
