package discord

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/wonderpets/internal/achievement"
	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/pet"
)

const notOwner = "\U0001F6AB only my owner can do that."

// progressBar renders a visual bar like ████████░░ 32/40
func progressBar(value, max, width int) string {
	if max <= 0 {
		max = 1
	}
	filled := value * width / max
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled
	return fmt.Sprintf("%s%s %d/%d", strings.Repeat("█", filled), strings.Repeat("░", empty), value, max)
}

// tierColor returns a Discord embed color for the life stage.
func tierColor(tier string) int {
	switch tier {
	case "youth":
		return 0x57F287 // green
	case "baby":
		return 0xEB459E // fuchsia
	default:
		return 0x5865F2 // blurple
	}
}

func activePet(view game.View) (game.PetView, bool) {
	for _, p := range view.Pets {
		if p.ID == view.ActivePetID {
			return p, true
		}
	}
	return game.PetView{}, false
}

// StatusEmbed builds a rich embed for /status.
func StatusEmbed(view game.View) *discordgo.MessageEmbed {
	progress := fmt.Sprintf("next adoption %s\ninteractions  %d",
		progressBar(view.UnlockProgress, view.UnlockThreshold, 10),
		view.TotalInteractions,
	)

	p, ok := activePet(view)
	if !ok {
		return &discordgo.MessageEmbed{
			Title:       "\U0001F95A no pet yet",
			Description: "Use `/adopt` to bring someone home.",
			Color:       tierColor(""),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Progress", Value: "```\n" + progress + "\n```"},
			},
		}
	}

	growth := "fully grown"
	if p.Tier == pet.TierBaby.String() {
		growth = progressBar(p.Affection, pet.EvolutionThreshold, 10)
	}
	stats := fmt.Sprintf(
		"affection %d\ngrowth    %s\nhunger    %d\nclean     %d",
		p.Affection, growth, p.Hunger, p.Cleanliness,
	)

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s %s", p.Emoji, p.Name),
		Description: fmt.Sprintf("%s %s | diet: %s", p.Tier, p.SpeciesName, p.Diet),
		Color:       tierColor(p.Tier),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Stats", Value: "```\n" + stats + "\n```", Inline: false},
			{Name: "Progress", Value: "```\n" + progress + "\n```", Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d pets owned", len(view.Pets)),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if p.Image != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.Image}
	}
	return embed
}

// AchievementsEmbed builds the embed for /achievements.
func AchievementsEmbed(list []achievement.Achievement) *discordgo.MessageEmbed {
	unlocked := 0
	fields := make([]*discordgo.MessageEmbedField, 0, len(list))
	for _, a := range list {
		mark := "\U0001F512"
		if a.IsUnlocked {
			mark = a.Icon
			unlocked++
		}
		value := a.Description
		if a.UnlockedAt != nil {
			value += fmt.Sprintf("\nunlocked <t:%d:R>", a.UnlockedAt.Unix())
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s %s", mark, a.Title),
			Value: value,
		})
	}
	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("\U0001F3C6 Achievements %d/%d", unlocked, len(list)),
		Color:  0xFEE75C, // yellow
		Fields: fields,
	}
}

// TemplateActionResult describes a committed care action and its reaction.
func TemplateActionResult(out game.ActionOutcome, reaction string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s (+%d affection)\n", out.Pet.Emoji, out.Pet.Name, out.Context, out.Delta)
	if reaction != "" {
		fmt.Fprintf(&b, "> %s\n", reaction)
	}
	if out.Pet.Affection >= pet.EvolutionThreshold && out.Pet.Affection-out.Delta < pet.EvolutionThreshold {
		fmt.Fprintf(&b, "✨ %s grew into a youth!\n", out.Pet.Name)
	}
	if out.AdoptionUnlocked {
		b.WriteString("\U0001F381 a new adoption is available! use `/adopt`\n")
	}
	b.WriteString(TemplateUnlocked(out.Unlocked))
	return strings.TrimRight(b.String(), "\n")
}

// TemplateAdopted announces a new pet.
func TemplateAdopted(out game.AdoptOutcome) string {
	msg := fmt.Sprintf("%s welcome home, %s the %s!", out.Pet.Emoji, out.Pet.Name, out.Pet.SpeciesName)
	if unlocked := TemplateUnlocked(out.Unlocked); unlocked != "" {
		msg += "\n" + unlocked
	}
	return msg
}

// TemplateUnlocked renders one line per newly unlocked achievement.
func TemplateUnlocked(list []achievement.Achievement) string {
	var lines []string
	for _, a := range list {
		lines = append(lines, fmt.Sprintf("%s achievement unlocked: **%s**", a.Icon, a.Title))
	}
	return strings.Join(lines, "\n")
}

// TemplatePets lists owned pets, marking the active one.
func TemplatePets(view game.View) string {
	if len(view.Pets) == 0 {
		return "\U0001F95A you don't have any pets yet. try `/adopt`."
	}
	var b strings.Builder
	b.WriteString("**Your pets**\n")
	for _, p := range view.Pets {
		marker := "  "
		if p.ID == view.ActivePetID {
			marker = "▶ "
		}
		fmt.Fprintf(&b, "%s%s %s (%s %s, %d affection)\n", marker, p.Emoji, p.Name, p.Tier, p.SpeciesName, p.Affection)
	}
	return strings.TrimRight(b.String(), "\n")
}

func TemplateMusic(enabled bool) string {
	if enabled {
		return "\U0001F3B5 music on"
	}
	return "\U0001F507 music off"
}

func TemplateHelp() string {
	return "**WonderPets Commands**\n\n" +
		"`/adopt` — Adopt a new pet\n" +
		"`/pets` — List your pets\n" +
		"`/select` — Switch the active pet\n" +
		"`/feed` — Feed meat or plants\n" +
		"`/bathe` — Bath time\n" +
		"`/pet` — Give some love\n" +
		"`/status` — Active pet and progress\n" +
		"`/achievements` — Your trophies\n" +
		"`/music` — Toggle music\n" +
		"`/help` — This message\n\n" +
		"Or just tell your pet you love them in this channel!"
}

// errorMessage turns a game error into something friendly.
func errorMessage(err error) string {
	var invalid *game.InvalidActionError
	switch {
	case errors.Is(err, game.ErrBusy):
		return "⏳ hold on, your pet is still reacting."
	case errors.Is(err, game.ErrNoActivePet):
		return "\U0001F95A adopt a pet first with `/adopt`."
	case errors.Is(err, game.ErrEmptyName):
		return "✏️ your pet needs a name."
	case errors.Is(err, game.ErrUnknownSpecies):
		return "❓ we don't have that animal."
	case errors.As(err, &invalid):
		if invalid.Kind == string(game.ActionFeed) {
			return "\U0001F37D pick meat or plants."
		}
		return "❓ I don't know that action."
	default:
		return "something went wrong... try again in a moment."
	}
}

// TemplateMissingYou nudges the owner after a quiet stretch.
func TemplateMissingYou(p game.PetView, idle time.Duration) string {
	hours := int(idle.Hours())
	if hours < 1 {
		return fmt.Sprintf("%s %s is waiting for you... come say hi!", p.Emoji, p.Name)
	}
	return fmt.Sprintf("%s %s hasn't seen you in %dh and misses you! try `/pet`", p.Emoji, p.Name, hours)
}

// TemplateMilestone celebrates a total-interaction milestone.
func TemplateMilestone(interactions int) string {
	return fmt.Sprintf("\U0001F389 %d care actions and counting! your pets love you.", interactions)
}
