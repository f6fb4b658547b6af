package onboarding

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moorebrett0/wonderpets/internal/brain"
	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/species"
	"github.com/moorebrett0/wonderpets/internal/storage"
)

func newService(t *testing.T) *game.Service {
	t.Helper()
	store := game.NewStore(storage.NewSaves(storage.NewMemoryBackend()))
	store.Initialize(context.Background())
	return game.NewService(game.ServiceConfig{
		Store:   store,
		Reactor: brain.NewWithProvider(nil, 0, 0, nil),
	})
}

func run(t *testing.T, svc *game.Service, input string) string {
	t.Helper()
	var out bytes.Buffer
	term := New(strings.NewReader(input), &out, svc, 0)
	require.NoError(t, term.Run(context.Background()))
	return out.String()
}

func TestRunAdoptsFirstPet(t *testing.T) {
	svc := newService(t)

	out := run(t, svc, "9\n1\n   \nMochi\nquit\n")

	assert.Contains(t, out, "pick a number 1-7")
	assert.Contains(t, out, "pick a name")
	assert.Contains(t, out, "hi. i'm Mochi.")
	assert.Contains(t, out, "achievement unlocked")

	view := svc.State()
	require.Len(t, view.Pets, 1)
	assert.Equal(t, "cat", view.Pets[0].SpeciesID)
	assert.Equal(t, view.Pets[0].ID, view.ActivePetID)
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	svc := newService(t)
	run(t, svc, "panda\n")
	assert.True(t, svc.NeedsAdoption())
}

func TestPlayCareActions(t *testing.T) {
	svc := newService(t)

	out := run(t, svc, "dino\nRex\nfeed meat\nfeed plants\nfeed\npet\nbathe\nstatus\nquit\n")

	assert.Contains(t, out, "Rex ate delicious meat (+5)")
	assert.Contains(t, out, "Rex disappointed, ate plants but wanted meat (+1)")
	assert.Contains(t, out, "feed what?")
	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "affection 26")
	assert.Contains(t, out, "next adoption 26/40 | interactions 4")
}

func TestPlayAdoptionUnlock(t *testing.T) {
	svc := newService(t)

	input := "cat\nMochi\n" + strings.Repeat("pet\n", 4) + "adopt\n2\nRex\npets\nselect mochi\nquit\n"
	out := run(t, svc, input)

	assert.Contains(t, out, "a new adoption is available")
	assert.Contains(t, out, "Mochi is now active")

	view := svc.State()
	require.Len(t, view.Pets, 2)
	assert.Equal(t, view.Pets[0].ID, view.ActivePetID)
	assert.Equal(t, 0, view.UnlockProgress)
}

func TestPlayWithoutPet(t *testing.T) {
	svc := newService(t)
	var out bytes.Buffer
	term := New(strings.NewReader("pet\nmusic\nachievements\ndance\n"), &out, svc, 0)

	require.NoError(t, term.Play(context.Background()))
	assert.Contains(t, out.String(), "adopt a pet first")
	assert.Contains(t, out.String(), "music on")
	assert.Contains(t, out.String(), "First Meeting")
	assert.Contains(t, out.String(), `unknown command "dance"`)
}

func TestPlayHonorsCancel(t *testing.T) {
	svc := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	term := New(strings.NewReader("pet\n"), &bytes.Buffer{}, svc, 0)
	assert.ErrorIs(t, term.Play(ctx), context.Canceled)
}

func TestPickSpecies(t *testing.T) {
	assert.Equal(t, "cat", pickSpecies("1").ID)
	assert.Equal(t, "panda", pickSpecies("7").ID)
	assert.Equal(t, "dino", pickSpecies("Little Dino").ID)
	assert.Equal(t, "bird", pickSpecies("BIRD").ID)
	assert.Nil(t, pickSpecies("0"))
	assert.Nil(t, pickSpecies("unicorn"))
}

func TestParseFood(t *testing.T) {
	food, ok := parseFood("meat")
	assert.True(t, ok)
	assert.Equal(t, species.Carnivore, food)

	food, ok = parseFood("herbivore")
	assert.True(t, ok)
	assert.Equal(t, species.Herbivore, food)

	_, ok = parseFood("candy")
	assert.False(t, ok)
}

func TestPrintStartup(t *testing.T) {
	var out bytes.Buffer
	PrintStartup(&out, false, "sqlite", true)
	assert.Contains(t, out.String(), "✓ state loaded (sqlite)")
	assert.Contains(t, out.String(), "✗ ai reactions")
}
