package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/game"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	file, err := NewFileBackend(filepath.Join(t.TempDir(), "saves"))
	require.NoError(t, err)
	db, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "nested", "wonderpets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return map[string]Backend{
		"file":   file,
		"sqlite": db,
		"memory": NewMemoryBackend(),
	}
}

func TestBackendGetPut(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := b.Get(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, b.Put(ctx, "k", []byte(`"one"`)))
			require.NoError(t, b.Put(ctx, "k", []byte(`"two"`)))
			got, ok, err := b.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `"two"`, string(got))
		})
	}
}

func TestSavesRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			saves := NewSaves(b)
			store := game.NewStore(saves)
			store.Initialize(ctx)
			p, err := store.Adopt("rabbit", "Clover")
			require.NoError(t, err)
			_, err = store.ApplyAction(p.ID, 10)
			require.NoError(t, err)
			store.ToggleMusic()

			reloaded := game.NewStore(saves)
			reloaded.Initialize(ctx)
			g := reloaded.Snapshot()
			require.Len(t, g.OwnedPets, 1)
			assert.Equal(t, "Clover", g.OwnedPets[0].Name)
			assert.Equal(t, 10, g.OwnedPets[0].Affection)
			assert.Equal(t, p.ID, g.ActivePetID)
			assert.Equal(t, 1, g.TotalInteractions)
			assert.True(t, g.Achievements[0].IsUnlocked)
			assert.True(t, reloaded.Music())
		})
	}
}

func TestLoadStateMalformed(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Put(ctx, StateKey, []byte(`{"ownedPets": [`)))
	require.NoError(t, b.Put(ctx, MusicKey, []byte(`"loud"`)))
	saves := NewSaves(b)

	_, ok, err := saves.LoadState(ctx)
	assert.False(t, ok)
	var perr *game.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StateKey, perr.Key)

	_, err = saves.LoadMusic(ctx)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, MusicKey, perr.Key)

	store := game.NewStore(saves)
	store.Initialize(ctx)
	assert.Empty(t, store.Snapshot().OwnedPets)
	assert.False(t, store.Music())
}

func TestLoadStateBackfillsAchievements(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	// A save written before care_novice, psychologist and collector existed.
	blob := `{
		"ownedPets": [{"id":"1700000000000","type":"cat","name":"Mochi","affection":12,"hunger":50,"cleanliness":50,"lastInteraction":"2025-11-01T10:00:00Z"}],
		"activePetId": "1700000000000",
		"unlockProgress": 12,
		"totalInteractions": 3,
		"achievements": [{"id":"first_meet","title":"First Meeting","description":"","icon":"","isUnlocked":true,"unlockedAt":"2025-11-01T09:00:00Z"}]
	}`
	require.NoError(t, b.Put(ctx, StateKey, []byte(blob)))

	store := game.NewStore(NewSaves(b))
	store.Initialize(ctx)
	g := store.Snapshot()

	require.Len(t, g.Achievements, 4)
	assert.Equal(t, achievement.FirstMeet, g.Achievements[0].ID)
	assert.True(t, g.Achievements[0].IsUnlocked)
	assert.Equal(t, time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC), g.Achievements[0].UnlockedAt.UTC())
	assert.Equal(t, achievement.CareNovice, g.Achievements[1].ID)
	assert.False(t, g.Achievements[1].IsUnlocked)
	assert.Equal(t, "1700000000000", g.ActivePetID)
}

func TestLoadStateEpochMillisTimestamps(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	blob := `{
		"ownedPets": [{"id":"1700000000000","type":"dog","name":"Rex","affection":5,"hunger":50,"cleanliness":50,"lastInteraction":1700000360000}],
		"activePetId": "1700000000000",
		"unlockProgress": 5,
		"totalInteractions": 1,
		"achievements": [
			{"id":"first_meet","title":"First Meeting","description":"","icon":"","isUnlocked":true,"unlockedAt":1700000000000},
			{"id":"care_novice","title":"Novice Caretaker","description":"","icon":"","isUnlocked":false}
		]
	}`
	require.NoError(t, b.Put(ctx, StateKey, []byte(blob)))

	g, ok, err := NewSaves(b).LoadState(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, g.OwnedPets, 1)
	assert.True(t, time.UnixMilli(1700000360000).Equal(g.OwnedPets[0].LastInteraction))
	require.Len(t, g.Achievements, 2)
	require.NotNil(t, g.Achievements[0].UnlockedAt)
	assert.True(t, time.UnixMilli(1700000000000).Equal(*g.Achievements[0].UnlockedAt))
	assert.Nil(t, g.Achievements[1].UnlockedAt)
}

func TestLoadStateNullActivePet(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()
	require.NoError(t, b.Put(ctx, StateKey, []byte(`{"ownedPets":[],"activePetId":null,"unlockProgress":0,"totalInteractions":0}`)))

	g, ok, err := NewSaves(b).LoadState(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, g.ActivePetID)
	assert.Nil(t, g.Achievements)
}

func TestOpen(t *testing.T) {
	b, err := Open("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryBackend{}, b)

	b, err = Open("file", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &FileBackend{}, b)

	_, err = Open("floppy", "")
	assert.Error(t, err)
}
