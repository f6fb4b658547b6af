package proactive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/pet"
)

type fakeSender struct {
	channel   string
	messages  []string
	presences int
}

func (f *fakeSender) SendMessage(_, text string) { f.messages = append(f.messages, text) }
func (f *fakeSender) UpdatePresence(_ game.View) { f.presences++ }
func (f *fakeSender) ChannelID() string          { return f.channel }

type fakeSource struct{ view game.View }

func (f *fakeSource) State() game.View { return f.view }

var base = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func viewWith(interactions int, last time.Time) game.View {
	p := game.ViewPet(pet.OwnedPet{ID: "p1", SpeciesID: "cat", Name: "Mochi", LastInteraction: last})
	return game.View{
		Pets:              []game.PetView{p},
		ActivePetID:       "p1",
		TotalInteractions: interactions,
	}
}

func newScheduler(sender *fakeSender, src *fakeSource, now *time.Time) *Scheduler {
	return New(sender, src, Config{
		CheckInterval: time.Minute,
		IdleAfter:     6 * time.Hour,
		Now:           func() time.Time { return *now },
	})
}

func TestIdleReminderOncePerQuietStretch(t *testing.T) {
	now := base
	sender := &fakeSender{channel: "chan"}
	src := &fakeSource{view: viewWith(0, base)}
	s := newScheduler(sender, src, &now)

	s.check()
	assert.Empty(t, sender.messages)
	assert.Equal(t, 1, sender.presences)

	now = base.Add(7 * time.Hour)
	s.check()
	s.check()
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Mochi hasn't seen you in 7h")

	// A new interaction starts a new stretch.
	src.view = viewWith(1, now)
	now = now.Add(8 * time.Hour)
	s.check()
	assert.Len(t, sender.messages, 2)
	assert.Equal(t, 1, sender.presences)
}

func TestMilestones(t *testing.T) {
	now := base
	sender := &fakeSender{channel: "chan"}
	src := &fakeSource{view: viewWith(12, base)}
	s := newScheduler(sender, src, &now)

	// Reached before startup: silent.
	s.check()
	assert.Empty(t, sender.messages)

	src.view = viewWith(50, base)
	s.check()
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "50 care actions")

	s.check()
	assert.Len(t, sender.messages, 1)
}

func TestNoChannelOnlyUpdatesPresence(t *testing.T) {
	now := base.Add(24 * time.Hour)
	sender := &fakeSender{}
	s := newScheduler(sender, &fakeSource{view: viewWith(0, base)}, &now)

	s.check()
	assert.Empty(t, sender.messages)
	assert.Equal(t, 1, sender.presences)
}

func TestNoPetsIsQuiet(t *testing.T) {
	now := base
	sender := &fakeSender{channel: "chan"}
	s := newScheduler(sender, &fakeSource{view: game.View{NeedsAdoption: true}}, &now)

	s.check()
	assert.Empty(t, sender.messages)
}
