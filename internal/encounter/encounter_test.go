package encounter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionLegality(t *testing.T) {
	e := New("enc-1", "Meadowbrook", "plains", "Horse", 3, 2, RarityRegular, "user-1")

	if err := e.Transition(StateCustomizing); err == nil {
		t.Fatal("skipping the taming phase must be illegal")
	}
	assert.Equal(t, StateAwaitingAction, e.State)

	assert.NoError(t, e.Transition(StateAwaitingTame))
	assert.NoError(t, e.Transition(StateAwaitingCustomizationChoice))

	// The choice state forks two ways.
	assert.True(t, StateAwaitingCustomizationChoice.CanTransition(StateCustomizing))
	assert.True(t, StateAwaitingCustomizationChoice.CanTransition(StateAwaitingRegistration))

	assert.NoError(t, e.Transition(StateCustomizing))
	assert.NoError(t, e.Transition(StateAwaitingRegistration))
	assert.NoError(t, e.Transition(StateRegistered))

	// Terminal state goes nowhere.
	assert.Error(t, e.Transition(StateAwaitingAction))
}

func TestAddParticipantRejectsDuplicates(t *testing.T) {
	e := New("enc-1", "Meadowbrook", "plains", "Horse", 3, 2, RarityRegular, "user-1")

	assert.NoError(t, e.AddParticipant("Lina", "user-1"))
	assert.NoError(t, e.AddParticipant("Rex", "user-2"))
	assert.Error(t, e.AddParticipant("Lina", "user-3"))
	assert.Len(t, e.Users, 2)
}

func TestAuthorize(t *testing.T) {
	e := New("enc-1", "Meadowbrook", "plains", "Horse", 3, 2, RarityRegular, "user-1")
	e.AddParticipant("Lina", "user-1")
	e.AddParticipant("Rex", "user-2")

	assert.NoError(t, e.Authorize("Lina", "user-1"))
	assert.NoError(t, e.Authorize("Rex", "user-2"))
	assert.ErrorIs(t, e.Authorize("Lina", "user-2"), ErrUnauthorized)
	assert.ErrorIs(t, e.Authorize("Ganondorf", "user-1"), ErrUnauthorized)
}
