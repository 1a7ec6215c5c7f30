package encounter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureFixture() (*CaptureController, *Encounter, *memLedger, *memStore, *recordingAudit) {
	e := New("enc-1", "Meadowbrook", "plains", "Horse", 3, 2, RarityRegular, "user-1")
	e.AddParticipant("Lina", "user-1")

	store := newMemStore(e)
	ledger := newMemLedger()
	ledger.stamina["Lina"] = 3
	audit := &recordingAudit{}

	c := &CaptureController{
		Store:     store,
		Ledger:    ledger,
		Inventory: &memInventory{},
		Modifiers: &flatModifiers{},
		Audit:     audit,
	}
	return c, e, ledger, store, audit
}

func TestCaptureSuccessTransitions(t *testing.T) {
	defer ResetMockDice()
	c, e, ledger, _, audit := captureFixture()

	MockDice([]int{10})
	p, err := c.Attempt(e.ID, ManeuverSneak, "Lina", "user-1")
	require.NoError(t, err)

	assert.Equal(t, StateAwaitingTame, e.State)
	assert.Equal(t, 2, ledger.stamina["Lina"], "one stamina debited")
	assert.Equal(t, []AuditEventType{AuditManeuverAttempted}, audit.types())
	require.Len(t, p.Options, 1)
	assert.Equal(t, "tame", p.Options[0].Command)
}

func TestCaptureFailureStaysInPlace(t *testing.T) {
	defer ResetMockDice()
	c, e, ledger, _, _ := captureFixture()

	MockDice([]int{4})
	p, err := c.Attempt(e.ID, ManeuverSneak, "Lina", "user-1")
	require.NoError(t, err)

	assert.Equal(t, StateAwaitingAction, e.State, "failed maneuver must not advance")
	assert.Equal(t, 2, ledger.stamina["Lina"], "stamina spent even on failure")
	assert.NotEmpty(t, p.Options)
}

func TestCaptureGlideSingleUse(t *testing.T) {
	defer ResetMockDice()
	c, e, ledger, _, _ := captureFixture()

	// First glide fails but is marked spent.
	MockDice([]int{2})
	_, err := c.Attempt(e.ID, ManeuverGlide, "Lina", "user-1")
	require.NoError(t, err)
	assert.True(t, e.GlideUsed)
	assert.Equal(t, 2, ledger.stamina["Lina"])

	// Second glide is rejected before any debit.
	_, err = c.Attempt(e.ID, ManeuverGlide, "Lina", "user-1")
	if !errors.Is(err, ErrGlideSpent) {
		t.Fatalf("expected ErrGlideSpent, got %v", err)
	}
	assert.Equal(t, 2, ledger.stamina["Lina"], "a rejected glide must not charge stamina")
}

func TestCaptureGlidePromptOmitsSpentGlide(t *testing.T) {
	defer ResetMockDice()
	c, e, _, _, _ := captureFixture()

	MockDice([]int{2})
	p, err := c.Attempt(e.ID, ManeuverGlide, "Lina", "user-1")
	require.NoError(t, err)

	for _, opt := range p.Options {
		assert.NotEqual(t, string(ManeuverGlide), opt.Command, "spent glide must not be offered again")
	}
}

func TestCaptureStaminaExhaustedEscapes(t *testing.T) {
	defer ResetMockDice()
	c, e, ledger, store, audit := captureFixture()
	ledger.stamina["Lina"] = 0

	_, err := c.Attempt(e.ID, ManeuverCorner, "Lina", "user-1")
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("expected ErrResourceExhausted, got %v", err)
	}

	_, err = store.Get(e.ID)
	assert.ErrorIs(t, err, ErrNotFound, "escaped encounter must be deleted")
	assert.Equal(t, []AuditEventType{AuditCreatureEscaped}, audit.types())
}

func TestCaptureUnauthorized(t *testing.T) {
	c, e, ledger, _, _ := captureFixture()

	// Right character, wrong user.
	_, err := c.Attempt(e.ID, ManeuverSneak, "Lina", "user-2")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Untracked character.
	_, err = c.Attempt(e.ID, ManeuverSneak, "Rex", "user-1")
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, 3, ledger.stamina["Lina"], "unauthorized attempts never charge")
}

func TestCaptureWrongState(t *testing.T) {
	c, e, _, _, _ := captureFixture()
	e.State = StateAwaitingTame

	_, err := c.Attempt(e.ID, ManeuverSneak, "Lina", "user-1")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestDistractListsItems(t *testing.T) {
	c, e, ledger, _, _ := captureFixture()
	c.Inventory = &memInventory{items: []DistractionItem{
		{Name: "apple", Bonus: 2, Quantity: 2},
		{Name: "sugar cube", Bonus: 3, Quantity: 1},
	}}

	p, err := c.Attempt(e.ID, ManeuverDistract, "Lina", "user-1")
	require.NoError(t, err)

	require.Len(t, p.Options, 2)
	assert.Equal(t, "use apple", p.Options[0].Command)
	assert.Equal(t, "use sugar cube", p.Options[1].Command)
	assert.Equal(t, 3, ledger.stamina["Lina"], "opening the distract menu is free")
}

func TestDistractWithoutItems(t *testing.T) {
	c, e, _, _, _ := captureFixture()

	p, err := c.Attempt(e.ID, ManeuverDistract, "Lina", "user-1")
	require.NoError(t, err)

	// Falls back to the maneuver menu.
	assert.Equal(t, StateAwaitingAction, e.State)
	assert.NotEmpty(t, p.Options)
	assert.Equal(t, string(ManeuverSneak), p.Options[0].Command)
}

func TestUseDistractionConsumesOneUnit(t *testing.T) {
	defer ResetMockDice()
	c, e, ledger, _, audit := captureFixture()
	inv := &memInventory{items: []DistractionItem{{Name: "apple", Bonus: 2, Quantity: 2}}}
	c.Inventory = inv

	MockDice([]int{6})
	_, err := c.UseDistraction(e.ID, "apple", "Lina", "user-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"apple"}, inv.consumed)
	assert.Equal(t, 1, inv.items[0].Quantity)
	assert.Equal(t, 3, ledger.stamina["Lina"], "distractions never cost stamina")
	assert.Equal(t, StateAwaitingTame, e.State)
	assert.True(t, e.DistractionResult)
	assert.Equal(t, []AuditEventType{AuditDistractionUsed}, audit.types())
}

func TestUseDistractionFailureKeepsState(t *testing.T) {
	defer ResetMockDice()
	c, e, _, _, _ := captureFixture()
	inv := &memInventory{items: []DistractionItem{{Name: "apple", Bonus: 1, Quantity: 1}}}
	c.Inventory = inv

	MockDice([]int{3})
	_, err := c.UseDistraction(e.ID, "apple", "Lina", "user-1")
	require.NoError(t, err)

	assert.Equal(t, StateAwaitingAction, e.State)
	assert.False(t, e.DistractionResult)
	assert.Equal(t, []string{"apple"}, inv.consumed, "the item is spent even when ignored")
}

func TestUseDistractionUnknownItem(t *testing.T) {
	c, e, _, _, _ := captureFixture()

	_, err := c.UseDistraction(e.ID, "rock", "Lina", "user-1")
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestDedupeItems(t *testing.T) {
	items := dedupeItems([]DistractionItem{
		{Name: "apple", Bonus: 2, Quantity: 1},
		{Name: "carrot", Bonus: 1, Quantity: 2},
		{Name: "apple", Bonus: 2, Quantity: 3},
	})

	require.Len(t, items, 2)
	assert.Equal(t, DistractionItem{Name: "apple", Bonus: 2, Quantity: 4}, items[0])
	assert.Equal(t, DistractionItem{Name: "carrot", Bonus: 1, Quantity: 2}, items[1])
}
