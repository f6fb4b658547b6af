package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/species"
)

// Router dispatches Discord messages and slash commands to the game service.
type Router struct {
	bot *Bot
	svc *game.Service
}

// NewRouter creates a router and wires it to the bot.
func NewRouter(bot *Bot, svc *game.Service) *Router {
	r := &Router{
		bot: bot,
		svc: svc,
	}
	bot.SetRouter(r)
	return r
}

// HandleInteraction dispatches a slash command interaction.
func (r *Router) HandleInteraction(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	isOwner := r.bot.IsOwner(interactionUserID(i))

	switch data.Name {
	case "status":
		r.respondEmbed(i, StatusEmbed(r.svc.State()))

	case "achievements":
		r.respondEmbed(i, AchievementsEmbed(r.svc.Achievements()))

	case "pets":
		r.respond(i, TemplatePets(r.svc.State()))

	case "help":
		r.respond(i, TemplateHelp())

	case "adopt":
		if !isOwner {
			r.respondEphemeral(i, notOwner)
			return
		}
		out, err := r.svc.Adopt(optionString(data.Options, "species"), optionString(data.Options, "name"))
		if err != nil {
			r.respondEphemeral(i, errorMessage(err))
			return
		}
		r.respond(i, TemplateAdopted(out))
		r.bot.UpdatePresence(r.svc.State())

	case "select":
		if !isOwner {
			r.respondEphemeral(i, notOwner)
			return
		}
		view := r.svc.State()
		p, ok := findPet(view, optionString(data.Options, "pet"))
		if !ok {
			r.respondEphemeral(i, "\U0001F50D no pet by that name. try `/pets`.")
			return
		}
		r.svc.SelectPet(p.ID)
		r.respond(i, fmt.Sprintf("%s %s is now your active pet.", p.Emoji, p.Name))
		r.bot.UpdatePresence(r.svc.State())

	case "feed", "bathe", "pet":
		if !isOwner {
			r.respondEphemeral(i, notOwner)
			return
		}
		food := species.Diet(optionString(data.Options, "food"))
		r.performAction(i, game.Kind(data.Name), food)

	case "music":
		if !isOwner {
			r.respondEphemeral(i, notOwner)
			return
		}
		r.respond(i, TemplateMusic(r.svc.ToggleMusic()))

	default:
		r.respond(i, "Unknown command.")
	}
}

// performAction commits the action, defers the interaction response, and
// follows up once the reaction line is ready.
func (r *Router) performAction(i *discordgo.InteractionCreate, kind game.Kind, food species.Diet) {
	out, err := r.svc.PerformAction(context.Background(), kind, food)
	if err != nil {
		r.respondEphemeral(i, errorMessage(err))
		return
	}

	r.respondDeferred(i)
	reaction := <-out.Reaction
	r.followup(i, TemplateActionResult(out, reaction))
}

// HandleMessage maps free-form chat onto care actions for the owner.
func (r *Router) HandleMessage(m *discordgo.MessageCreate) {
	text := strings.TrimSpace(m.Content)
	if text == "" {
		return
	}
	if r.bot.IsMentioned(m) {
		text = r.bot.StripMention(text)
	}
	if !r.bot.IsOwner(m.Author.ID) {
		return
	}

	lower := strings.ToLower(text)
	var kind game.Kind
	switch {
	case matchesAffection(lower):
		kind = game.ActionPet
	case matchesBath(lower):
		kind = game.ActionBathe
	default:
		// No pattern match: stay quiet.
		return
	}

	out, err := r.svc.PerformAction(context.Background(), kind, "")
	if err != nil {
		if !errors.Is(err, game.ErrBusy) {
			r.bot.SendMessage(m.ChannelID, errorMessage(err))
		}
		return
	}
	r.bot.SendMessage(m.ChannelID, TemplateActionResult(out, <-out.Reaction))
}

// --- Interaction response helpers ---

func (r *Router) respond(i *discordgo.InteractionCreate, content string) {
	r.send(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func (r *Router) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	r.send(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (r *Router) respondEphemeral(i *discordgo.InteractionCreate, content string) {
	r.send(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (r *Router) respondDeferred(i *discordgo.InteractionCreate) {
	r.send(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (r *Router) send(i *discordgo.InteractionCreate, resp *discordgo.InteractionResponse) {
	if err := r.bot.session.InteractionRespond(i.Interaction, resp); err != nil {
		slog.Error("discord: interaction respond failed", "err", err)
	}
}

func (r *Router) followup(i *discordgo.InteractionCreate, content string) {
	_, err := r.bot.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		slog.Error("discord: followup failed", "err", err)
	}
}

// --- Pattern matchers ---

func matchesAffection(text string) bool {
	patterns := []string{
		"good boy", "good girl", "good pet",
		"pet you", "scratch", "belly rub", "head pat", "pat pat",
		"love you", "cuddle", "snuggle", "hug", "boop",
	}
	return containsAny(text, patterns)
}

func matchesBath(text string) bool {
	patterns := []string{
		"bath", "wash", "scrub", "shampoo", "bubbles", "clean you",
	}
	return containsAny(text, patterns)
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// findPet resolves a pet by id or case-insensitive name.
func findPet(view game.View, query string) (game.PetView, bool) {
	query = strings.TrimSpace(query)
	for _, p := range view.Pets {
		if p.ID == query {
			return p, true
		}
	}
	for _, p := range view.Pets {
		if strings.EqualFold(p.Name, query) {
			return p, true
		}
	}
	return game.PetView{}, false
}

func optionString(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range opts {
		if o.Name == name && o.Type == discordgo.ApplicationCommandOptionString {
			return o.StringValue()
		}
	}
	return ""
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
