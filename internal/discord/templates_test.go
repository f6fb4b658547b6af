package discord

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/pet"
)

func testView() game.View {
	mochi := game.ViewPet(pet.OwnedPet{ID: "p1", SpeciesID: "cat", Name: "Mochi", Affection: 120})
	rex := game.ViewPet(pet.OwnedPet{ID: "p2", SpeciesID: "dog", Name: "Rex", Affection: 210})
	return game.View{
		Pets:            []game.PetView{mochi, rex},
		ActivePetID:     "p1",
		UnlockProgress:  12,
		UnlockThreshold: game.UnlockThreshold,
		Achievements:    achievement.Locked(),
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░ 20/40", progressBar(20, 40, 10))
	assert.Equal(t, "██████████ 50/40", progressBar(50, 40, 10))
	assert.Equal(t, "░░░░░░░░░░ 0/40", progressBar(0, 40, 10))
	assert.Equal(t, "░░░░ -3/1", progressBar(-3, 0, 4))
}

func TestStatusEmbed(t *testing.T) {
	embed := StatusEmbed(testView())

	assert.Contains(t, embed.Title, "Mochi")
	assert.Equal(t, tierColor("baby"), embed.Color)
	require.Len(t, embed.Fields, 2)
	assert.Contains(t, embed.Fields[0].Value, "120/200")
	assert.Contains(t, embed.Fields[1].Value, "12/40")
	require.NotNil(t, embed.Thumbnail)
	assert.NotEmpty(t, embed.Thumbnail.URL)
}

func TestStatusEmbedYouth(t *testing.T) {
	view := testView()
	view.ActivePetID = "p2"

	embed := StatusEmbed(view)
	assert.Equal(t, tierColor("youth"), embed.Color)
	assert.Contains(t, embed.Fields[0].Value, "fully grown")
}

func TestStatusEmbedWithoutPet(t *testing.T) {
	embed := StatusEmbed(game.View{UnlockThreshold: game.UnlockThreshold, NeedsAdoption: true})
	assert.Contains(t, embed.Description, "/adopt")
}

func TestAchievementsEmbed(t *testing.T) {
	list := achievement.Locked()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	list[0].IsUnlocked = true
	list[0].UnlockedAt = &at

	embed := AchievementsEmbed(list)
	assert.Equal(t, "\U0001F3C6 Achievements 1/4", embed.Title)
	require.Len(t, embed.Fields, 4)
	assert.Contains(t, embed.Fields[0].Name, list[0].Icon)
	assert.Contains(t, embed.Fields[0].Value, fmt.Sprintf("<t:%d:R>", at.Unix()))
	assert.Contains(t, embed.Fields[1].Name, "\U0001F512")
}

func TestTemplateActionResult(t *testing.T) {
	out := game.ActionOutcome{
		Pet:              game.ViewPet(pet.OwnedPet{ID: "p1", SpeciesID: "cat", Name: "Mochi", Affection: 205}),
		Delta:            10,
		Context:          "had a nice bath",
		AdoptionUnlocked: true,
		Unlocked:         achievement.Locked()[:1],
	}

	msg := TemplateActionResult(out, "splish splash")
	assert.Contains(t, msg, "Mochi had a nice bath (+10 affection)")
	assert.Contains(t, msg, "> splish splash")
	assert.Contains(t, msg, "grew into a youth")
	assert.Contains(t, msg, "new adoption is available")
	assert.Contains(t, msg, "achievement unlocked")
}

func TestTemplatePets(t *testing.T) {
	msg := TemplatePets(testView())
	assert.Contains(t, msg, "▶ ")
	assert.Contains(t, msg, "Mochi")
	assert.Contains(t, msg, "Rex")

	assert.Contains(t, TemplatePets(game.View{}), "/adopt")
}

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, errorMessage(game.ErrBusy), "still reacting")
	assert.Contains(t, errorMessage(fmt.Errorf("wrap: %w", game.ErrNoActivePet)), "/adopt")
	assert.Contains(t, errorMessage(&game.InvalidActionError{Kind: "feed", Food: "candy"}), "meat or plants")
	assert.Contains(t, errorMessage(&game.InvalidActionError{Kind: "dance"}), "action")
}

func TestFindPet(t *testing.T) {
	view := testView()

	p, ok := findPet(view, "p2")
	require.True(t, ok)
	assert.Equal(t, "Rex", p.Name)

	p, ok = findPet(view, " mochi ")
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)

	_, ok = findPet(view, "ghost")
	assert.False(t, ok)
}

func TestMatchers(t *testing.T) {
	assert.True(t, matchesAffection("who's a good boy"))
	assert.True(t, matchesBath("time for a bath!"))
	assert.False(t, matchesBath("hello there"))
}

func TestStripMention(t *testing.T) {
	assert.Equal(t, "hi", stripMention("<@42> hi", "42"))
	assert.Equal(t, "hi", stripMention("<@!42>hi", "42"))
}

func TestOptionString(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "species", Type: discordgo.ApplicationCommandOptionString, Value: "cat"},
		{Name: "name", Type: discordgo.ApplicationCommandOptionString, Value: "Mochi"},
	}
	assert.Equal(t, "Mochi", optionString(opts, "name"))
	assert.Equal(t, "", optionString(opts, "food"))
}

func TestCommandsCoverActions(t *testing.T) {
	names := map[string]bool{}
	for _, c := range commands() {
		names[c.Name] = true
	}
	for _, want := range []string{"adopt", "pets", "select", "feed", "bathe", "pet", "status", "achievements", "music", "help"} {
		assert.True(t, names[want], want)
	}
}

func TestPresence(t *testing.T) {
	status, activity := presenceFor(testView())
	assert.Equal(t, "online", status)
	assert.Contains(t, activity, "Mochi")

	status, _ = presenceFor(game.View{NeedsAdoption: true})
	assert.Equal(t, "idle", status)
}
