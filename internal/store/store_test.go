package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessvale/stablehand/internal/encounter"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	e := encounter.New("enc-1", "Meadowbrook", "plains", "Horse", 3, 2, encounter.RarityRare, "user-1")
	e.AddParticipant("Lina", "user-1")
	e.Traits["coat"] = "black"
	require.NoError(t, s.Put(e))

	got, err := s.Get("enc-1")
	require.NoError(t, err)
	assert.Equal(t, "Meadowbrook", got.Village)
	assert.Equal(t, encounter.StateAwaitingAction, got.State)
	assert.Equal(t, encounter.RarityRare, got.Rarity)
	assert.Equal(t, "black", got.Traits["coat"])
	require.Len(t, got.Users, 1)
	assert.Equal(t, "Lina", got.Users[0].CharacterName)
}

func TestFileStoreGetMissing(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, encounter.ErrNotFound)
}

func TestFileStoreDelete(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	e := encounter.New("enc-1", "Meadowbrook", "plains", "Horse", 3, 2, encounter.RarityRegular, "user-1")
	require.NoError(t, s.Put(e))
	require.NoError(t, s.Delete("enc-1"))

	_, err = s.Get("enc-1")
	assert.ErrorIs(t, err, encounter.ErrNotFound)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete("enc-1"))
}

func TestFindByParticipant(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	a := encounter.New("enc-a", "Meadowbrook", "plains", "Horse", 3, 2, encounter.RarityRegular, "user-1")
	a.AddParticipant("Lina", "user-1")
	b := encounter.New("enc-b", "Duneside", "desert", "Ostrich", 2, 3, encounter.RarityRegular, "user-2")
	b.AddParticipant("Rex", "user-2")
	require.NoError(t, s.Put(a))
	require.NoError(t, s.Put(b))

	got, err := s.FindByParticipant("Rex")
	require.NoError(t, err)
	assert.Equal(t, "enc-b", got.ID)

	_, err = s.FindByParticipant("Ganondorf")
	assert.ErrorIs(t, err, encounter.ErrNotFound)
}

func TestAuditLogRecordAndTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	l, err := NewAuditLog(path)
	require.NoError(t, err)
	defer l.Close()

	l.Record(&encounter.EncounterDiscoveredEvent{
		EncounterID: "enc-1",
		Village:     "Meadowbrook",
		Species:     "Horse",
		Rarity:      encounter.RarityRegular,
	})
	l.Record(&encounter.TamingResolvedEvent{
		EncounterID: "enc-1",
		Character:   "Lina",
		Rolls:       []int{5, 12},
		Successes:   2,
		Threshold:   2,
		Tamed:       true,
	})

	records, err := l.Tail(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, encounter.AuditEncounterDiscovered, records[0].Type)
	assert.Equal(t, encounter.AuditTamingResolved, records[1].Type)
	assert.Contains(t, records[0].Message, "Meadowbrook")
	assert.False(t, records[0].At.IsZero())

	// Tail trims to the most recent n, oldest first.
	records, err = l.Tail(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, encounter.AuditTamingResolved, records[0].Type)
}

func TestAuditLogSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")

	l, err := NewAuditLog(path)
	require.NoError(t, err)
	l.Record(&encounter.CreatureEscapedEvent{EncounterID: "enc-1", Character: "Lina", Species: "Horse"})
	require.NoError(t, l.Close())

	l, err = NewAuditLog(path)
	require.NoError(t, err)
	defer l.Close()

	records, err := l.Tail(0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, encounter.AuditCreatureEscaped, records[0].Type)
}
