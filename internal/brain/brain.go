package brain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/moorebrett0/wonderpets/internal/species"
)

// Recorder counts where reaction lines came from.
type Recorder interface {
	RecordReaction(source string)
}

// Reaction sources reported to the Recorder.
const (
	SourceProvider = "provider"
	SourceFallback = "fallback"
	SourceError    = "error"
)

// Reactor turns care actions into short in-character reaction lines. With no
// provider configured it answers from a fixed fallback set.
type Reactor struct {
	provider Provider // nil means fallback only
	recorder Recorder

	// Sliding-window rate limiter
	mu      sync.Mutex
	window  []time.Time
	rateMax int
	rateDur time.Duration
}

// Config for creating a Reactor.
type Config struct {
	// Claude
	ClaudeAPIKey string
	ClaudeModel  string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Which provider to force ("claude", "gemini", or "" for auto-detect)
	Provider string

	MaxTokens  int64
	RateLimit  int
	RateWindow time.Duration

	Recorder Recorder // optional
}

// New creates a Reactor, picking a provider from the configured keys.
func New(ctx context.Context, cfg Config) *Reactor {
	provider := newProvider(ctx, cfg)
	if provider == nil {
		slog.Info("brain: no API key configured, using fallback reactions")
	}
	return NewWithProvider(provider, cfg.RateLimit, cfg.RateWindow, cfg.Recorder)
}

// NewWithProvider creates a Reactor around an existing provider. A rateMax of
// zero disables rate limiting.
func NewWithProvider(p Provider, rateMax int, rateDur time.Duration, rec Recorder) *Reactor {
	return &Reactor{
		provider: p,
		recorder: rec,
		rateMax:  rateMax,
		rateDur:  rateDur,
	}
}

// newProvider auto-detects or forces the AI provider.
func newProvider(ctx context.Context, cfg Config) Provider {
	pick := cfg.Provider

	// Auto-detect if not forced
	if pick == "" {
		switch {
		case cfg.GeminiAPIKey != "":
			pick = "gemini"
		case cfg.ClaudeAPIKey != "":
			pick = "claude"
		}
	}

	switch pick {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			slog.Error("brain: AI_PROVIDER=claude but ANTHROPIC_API_KEY is not set")
			return nil
		}
		slog.Info("brain: using claude", "model", cfg.ClaudeModel)
		return newClaudeProvider(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.MaxTokens)
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			slog.Error("brain: AI_PROVIDER=gemini but GOOGLE_API_KEY is not set")
			return nil
		}
		slog.Info("brain: using gemini", "model", cfg.GeminiModel)
		p, err := newGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens)
		if err != nil {
			slog.Error("brain: failed to create gemini provider", "err", err)
			return nil
		}
		return p
	default:
		return nil
	}
}

// Enabled reports whether a text-generation provider is configured.
func (r *Reactor) Enabled() bool {
	return r.provider != nil
}

// Generate returns a reaction line for a pet of species sp that just
// received action. It never fails: provider errors and empty answers are
// replaced with fallback text.
func (r *Reactor) Generate(ctx context.Context, sp *species.Species, action string, affection int, extra string) string {
	if r.provider == nil || !r.rateAllow() {
		r.record(SourceFallback)
		return Fallback(sp, affection)
	}

	text, err := r.provider.Send(ctx, systemPrompt(sp), reactionPrompt(sp, action, affection, extra))
	if err != nil {
		perr := &ProviderError{Provider: r.provider.Name(), Err: err}
		slog.Error("brain: generation failed", "err", perr)
		r.record(SourceError)
		return fmt.Sprintf("%s loves you!", sp.Name)
	}

	r.record(SourceProvider)
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Sprintf("%s is happy!", sp.Name)
	}
	return text
}

// Fallback picks a canned reaction. The choice depends only on affection so
// the same state always yields the same line.
func Fallback(sp *species.Species, affection int) string {
	lines := []string{
		fmt.Sprintf("%s looks very happy!", sp.Name),
		fmt.Sprintf("%s is enjoying this.", sp.Name),
		fmt.Sprintf("%s ❤️", sp.Emoji),
		fmt.Sprintf("%s feels loved.", sp.Name),
	}
	if affection < 0 {
		affection = -affection
	}
	return lines[affection%len(lines)]
}

func (r *Reactor) record(source string) {
	if r.recorder != nil {
		r.recorder.RecordReaction(source)
	}
}

func systemPrompt(sp *species.Species) string {
	return fmt.Sprintf(`You are playing a virtual pet in a cozy pet-raising game.

## Your Personality
%s
%s

## Guidelines
- Answer with one very short, cute, reactive thought or sound from the pet's point of view.
- At most 15 words.
- Use exactly one emoji that fits the mood.
- No hashtags.`, sp.Personality, sp.Description)
}

func reactionPrompt(sp *species.Species, action string, affection int, extra string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Species: %s (%s).\n", sp.Name, sp.ID)
	fmt.Fprintf(&b, "Diet: %s.\n", sp.Diet)
	fmt.Fprintf(&b, "Current affection: %d.\n", affection)
	fmt.Fprintf(&b, "Your owner just did this: %s.\n", action)
	if extra != "" {
		fmt.Fprintf(&b, "Extra context: the pet %s.\n", extra)
	}
	return b.String()
}

// --- Sliding-window rate limiter ---

func (r *Reactor) rateAllow() bool {
	if r.rateMax <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-r.rateDur)

	// Remove expired entries
	valid := r.window[:0]
	for _, t := range r.window {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	r.window = valid

	if len(r.window) >= r.rateMax {
		return false
	}

	r.window = append(r.window, now)
	return true
}
