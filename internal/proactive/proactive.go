// Package proactive posts unprompted messages about the pets to the chat
// channel: idle reminders and interaction milestones.
package proactive

import (
	"context"
	"sync"
	"time"

	"github.com/moorebrett0/wonderpets/internal/discord"
	"github.com/moorebrett0/wonderpets/internal/game"
)

// MessageSender can send messages and update presence.
type MessageSender interface {
	SendMessage(channelID, text string)
	UpdatePresence(view game.View)
	ChannelID() string
}

// StateSource provides the current game view.
type StateSource interface {
	State() game.View
}

// Scheduler sends proactive messages based on game state and time.
type Scheduler struct {
	sender MessageSender
	source StateSource
	now    func() time.Time

	checkInterval time.Duration
	idleAfter     time.Duration

	mu            sync.Mutex
	lastPresence  string
	remindedFor   map[string]time.Time // pet id -> lastInteraction already reminded about
	lastMilestone int
}

// Config for the proactive scheduler.
type Config struct {
	CheckInterval time.Duration
	IdleAfter     time.Duration
	Now           func() time.Time // optional
}

var milestones = []int{10, 50, 100, 500, 1000}

// New creates a proactive scheduler.
func New(sender MessageSender, source StateSource, cfg Config) *Scheduler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	interval := cfg.CheckInterval
	if interval <= 0 {
		interval = time.Minute
	}
	s := &Scheduler{
		sender:        sender,
		source:        source,
		now:           now,
		checkInterval: interval,
		idleAfter:     cfg.IdleAfter,
		remindedFor:   make(map[string]time.Time),
	}
	// Milestones already reached before startup are not announced.
	total := source.State().TotalInteractions
	for _, m := range milestones {
		if total >= m {
			s.lastMilestone = m
		}
	}
	return s
}

// Run starts the tick loop. Blocks until context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check()
		}
	}
}

func (s *Scheduler) check() {
	view := s.source.State()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Always update presence when the active pet changes
	if key := presenceKey(view); key != s.lastPresence {
		s.lastPresence = key
		s.sender.UpdatePresence(view)
	}

	channelID := s.sender.ChannelID()
	if channelID == "" || view.NeedsAdoption {
		return
	}

	// Interaction milestones
	for _, m := range milestones {
		if view.TotalInteractions >= m && s.lastMilestone < m {
			s.lastMilestone = m
			s.sender.SendMessage(channelID, discord.TemplateMilestone(m))
			return
		}
	}

	// Idle reminder, once per quiet stretch
	if s.idleAfter <= 0 {
		return
	}
	now := s.now()
	for _, p := range view.Pets {
		if p.ID != view.ActivePetID {
			continue
		}
		idle := now.Sub(p.LastInteraction)
		if idle < s.idleAfter || s.remindedFor[p.ID].Equal(p.LastInteraction) {
			return
		}
		s.remindedFor[p.ID] = p.LastInteraction
		s.sender.SendMessage(channelID, discord.TemplateMissingYou(p, idle))
		return
	}
}

func presenceKey(view game.View) string {
	for _, p := range view.Pets {
		if p.ID == view.ActivePetID {
			return p.ID + "/" + p.Tier
		}
	}
	return ""
}
