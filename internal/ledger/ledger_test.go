package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessvale/stablehand/internal/encounter"
)

func testLedger(t *testing.T) *FileLedger {
	t.Helper()
	l, err := NewFileLedger(t.TempDir())
	require.NoError(t, err)
	return l
}

func seedCharacter(t *testing.T, l *FileLedger) {
	t.Helper()
	require.NoError(t, l.SaveCharacter(&Character{
		Name:           "Lina",
		UserID:         "user-1",
		CurrentStamina: 3,
		MaxStamina:     10,
		CurrentHearts:  8,
		MaxHearts:      10,
		Inventory: []Item{
			{Name: "apple", Quantity: 2},
			{Name: "rope", Quantity: 1},
		},
	}))
	require.NoError(t, l.SaveWallet(&Wallet{UserID: "user-1", Tokens: 60}))
}

func TestDebitStaminaNeverGoesNegative(t *testing.T) {
	l := testLedger(t)
	seedCharacter(t, l)

	res, err := l.DebitStamina("Lina", 1)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 2, res.NewBalance)

	// A debit larger than the balance changes nothing.
	res, err = l.DebitStamina("Lina", 5)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, 2, res.NewBalance)

	stamina, err := l.Stamina("Lina")
	require.NoError(t, err)
	assert.Equal(t, 2, stamina)
}

func TestDebitTokens(t *testing.T) {
	l := testLedger(t)
	seedCharacter(t, l)

	res, err := l.DebitTokens("user-1", 50)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 10, res.NewBalance)

	res, err = l.DebitTokens("user-1", 11)
	require.NoError(t, err)
	assert.False(t, res.OK)

	tokens, err := l.Tokens("user-1")
	require.NoError(t, err)
	assert.Equal(t, 10, tokens)
}

func TestCreditsAreCapped(t *testing.T) {
	l := testLedger(t)
	seedCharacter(t, l)

	require.NoError(t, l.CreditStamina("Lina", 100))
	stamina, _ := l.Stamina("Lina")
	assert.Equal(t, 10, stamina)

	require.NoError(t, l.CreditHearts("Lina", 5))
	c, err := l.Character("Lina")
	require.NoError(t, err)
	assert.Equal(t, 10, c.CurrentHearts)

	// Tokens have no cap.
	require.NoError(t, l.CreditTokens("user-1", 1000))
	tokens, _ := l.Tokens("user-1")
	assert.Equal(t, 1060, tokens)
}

func TestConsumeItemDropsEmptyStack(t *testing.T) {
	l := testLedger(t)
	seedCharacter(t, l)

	require.NoError(t, l.ConsumeItem("Lina", "rope"))

	items, err := l.Items("Lina")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "apple", items[0].Name)

	err = l.ConsumeItem("Lina", "rope")
	assert.ErrorIs(t, err, encounter.ErrInvalidSelection)
}

func TestMissingRecords(t *testing.T) {
	l := testLedger(t)

	_, err := l.Character("Nobody")
	assert.ErrorIs(t, err, encounter.ErrNotFound)

	_, err = l.Wallet("user-9")
	assert.ErrorIs(t, err, encounter.ErrNotFound)
}

func TestMarkMountOwner(t *testing.T) {
	l := testLedger(t)
	seedCharacter(t, l)

	require.NoError(t, l.MarkMountOwner("Lina"))
	c, err := l.Character("Lina")
	require.NoError(t, err)
	assert.True(t, c.HasMount)
}

func TestCharacterSlugHandlesSpaces(t *testing.T) {
	l := testLedger(t)
	require.NoError(t, l.SaveCharacter(&Character{Name: "Old Joe", UserID: "user-2", CurrentStamina: 1, MaxStamina: 1}))

	c, err := l.Character("Old Joe")
	require.NoError(t, err)
	assert.Equal(t, "Old Joe", c.Name)
}
