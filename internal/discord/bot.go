package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/species"
)

// Bot wraps the Discord session and manages slash commands, messages, and presence.
type Bot struct {
	session   *discordgo.Session
	channelID string
	ownerIDs  map[string]bool

	router *Router

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewBot creates and configures a Discord bot (does not connect yet).
func NewBot(token, channelID string, ownerIDs []string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("invalid bot token: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuilds

	owners := make(map[string]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}

	return &Bot{
		session:   session,
		channelID: channelID,
		ownerIDs:  owners,
	}, nil
}

// SetRouter wires the router to handle messages and interactions.
func (b *Bot) SetRouter(r *Router) {
	b.router = r
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onInteractionCreate)
	b.session.AddHandler(b.onReady)
}

// Start opens the Discord connection and registers slash commands.
// Blocks until context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()
	defer cancel()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	slog.Info("discord: connected", "user", b.session.State.User.Username)

	b.registerCommands()
	if b.router != nil {
		b.UpdatePresence(b.router.svc.State())
	}

	<-ctx.Done()
	slog.Info("discord: shutting down")
	return b.session.Close()
}

// Stop cancels a running Start.
func (b *Bot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
}

// ChannelID returns the configured channel ID.
func (b *Bot) ChannelID() string {
	return b.channelID
}

// SendMessage sends a text message to a channel.
func (b *Bot) SendMessage(channelID, text string) {
	if text == "" {
		return
	}
	if _, err := b.session.ChannelMessageSend(channelID, text); err != nil {
		slog.Error("discord: send message failed", "err", err)
	}
}

// SendEmbed sends an embed to a channel.
func (b *Bot) SendEmbed(channelID string, embed *discordgo.MessageEmbed) {
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		slog.Error("discord: send embed failed", "err", err)
	}
}

// UpdatePresence shows the active pet in the bot's Discord status.
func (b *Bot) UpdatePresence(view game.View) {
	status, activity := presenceFor(view)
	err := b.session.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: status,
		Activities: []*discordgo.Activity{
			{
				Name: activity,
				Type: discordgo.ActivityTypeCustom,
			},
		},
	})
	if err != nil {
		slog.Debug("discord: update presence failed", "err", err)
	}
}

// IsOwner checks if a user ID is in the owner list.
func (b *Bot) IsOwner(userID string) bool {
	return b.ownerIDs[userID]
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord: ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

// BotUserID returns the bot's own user ID.
func (b *Bot) BotUserID() string {
	if b.session.State != nil && b.session.State.User != nil {
		return b.session.State.User.ID
	}
	return ""
}

// IsMentioned checks if the bot was @mentioned in the message.
func (b *Bot) IsMentioned(m *discordgo.MessageCreate) bool {
	for _, u := range m.Mentions {
		if u.ID == b.BotUserID() {
			return true
		}
	}
	return false
}

// StripMention removes the bot's @mention from message text.
func (b *Bot) StripMention(text string) string {
	return stripMention(text, b.BotUserID())
}

func stripMention(text, botID string) string {
	// Discord mentions look like <@123456> or <@!123456>
	text = strings.ReplaceAll(text, "<@"+botID+">", "")
	text = strings.ReplaceAll(text, "<@!"+botID+">", "")
	return strings.TrimSpace(text)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	// Only respond in the configured channel
	if m.ChannelID != b.channelID {
		return
	}

	if b.router != nil {
		b.router.HandleMessage(m)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	if b.router != nil {
		b.router.HandleInteraction(i)
	}
}

func (b *Bot) registerCommands() {
	appID := b.session.State.User.ID
	for _, cmd := range commands() {
		if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			slog.Error("discord: failed to register command", "cmd", cmd.Name, "err", err)
		} else {
			slog.Info("discord: registered command", "cmd", cmd.Name)
		}
	}
}

func commands() []*discordgo.ApplicationCommand {
	speciesChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, species.Count())
	for _, sp := range species.All() {
		speciesChoices = append(speciesChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s %s", sp.Emoji, sp.Name),
			Value: sp.ID,
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "adopt",
			Description: "Adopt a new pet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "species",
					Description: "Which animal to adopt",
					Required:    true,
					Choices:     speciesChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Your pet's name",
					Required:    true,
				},
			},
		},
		{
			Name:        "pets",
			Description: "List the pets you own",
		},
		{
			Name:        "select",
			Description: "Switch the active pet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "pet",
					Description: "Pet name or id",
					Required:    true,
				},
			},
		},
		{
			Name:        "feed",
			Description: "Feed the active pet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "food",
					Description: "What to serve",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "\U0001F969 meat", Value: string(species.Carnivore)},
						{Name: "\U0001F96C plants", Value: string(species.Herbivore)},
					},
				},
			},
		},
		{
			Name:        "bathe",
			Description: "Give the active pet a bath",
		},
		{
			Name:        "pet",
			Description: "Give the active pet some affection",
		},
		{
			Name:        "status",
			Description: "Check the active pet and your progress",
		},
		{
			Name:        "achievements",
			Description: "Show your achievements",
		},
		{
			Name:        "music",
			Description: "Toggle background music",
		},
		{
			Name:        "help",
			Description: "Show available commands",
		},
	}
}

func presenceFor(view game.View) (status, activity string) {
	if view.NeedsAdoption {
		return "idle", "waiting to be adopted"
	}
	for _, p := range view.Pets {
		if p.ID == view.ActivePetID {
			return "online", fmt.Sprintf("playing with %s %s", p.Emoji, p.Name)
		}
	}
	return "online", "just vibing"
}
