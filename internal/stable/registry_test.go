package stable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndListByOwner(t *testing.T) {
	r, err := NewFileRegistry(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, r.Register(Mount{
		ID: "m-1", Name: "Epona", Species: "Horse", Level: 4, Stamina: 2,
		Rarity: "Rare", Owner: "Lina", OwnerID: "user-1", Region: "Meadowbrook",
		Traits: map[string]string{"coat": "chestnut"},
	}))
	require.NoError(t, r.Register(Mount{
		ID: "m-2", Name: "Ash", Species: "Ostrich", Level: 2, Stamina: 3,
		Rarity: "Regular", Owner: "Lina", OwnerID: "user-1", Region: "Duneside",
	}))
	require.NoError(t, r.Register(Mount{
		ID: "m-3", Name: "Bolt", Species: "Horse", Level: 1, Stamina: 1,
		Rarity: "Regular", Owner: "Rex", OwnerID: "user-2", Region: "Meadowbrook",
	}))

	mounts, err := r.ByOwner("Lina")
	require.NoError(t, err)
	require.Len(t, mounts, 2)
	assert.Equal(t, "Ash", mounts[0].Name, "sorted by name")
	assert.Equal(t, "Epona", mounts[1].Name)
	assert.Equal(t, "chestnut", mounts[1].Traits["coat"])

	mounts, err = r.ByOwner("Nobody")
	require.NoError(t, err)
	assert.Empty(t, mounts)
}

func TestRegisterOverwritesSameID(t *testing.T) {
	r, err := NewFileRegistry(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, r.Register(Mount{ID: "m-1", Name: "Epona", Owner: "Lina"}))
	require.NoError(t, r.Register(Mount{ID: "m-1", Name: "Epona II", Owner: "Lina"}))

	mounts, err := r.ByOwner("Lina")
	require.NoError(t, err)
	require.Len(t, mounts, 1)
	assert.Equal(t, "Epona II", mounts[0].Name)
}
