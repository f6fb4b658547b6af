package brain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moorebrett0/wonderpets/internal/species"
)

type stubProvider struct {
	text   string
	err    error
	system string
	prompt string
	calls  int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Send(_ context.Context, systemPrompt, prompt string) (string, error) {
	s.calls++
	s.system = systemPrompt
	s.prompt = prompt
	return s.text, s.err
}

type sources []string

func (s *sources) RecordReaction(source string) { *s = append(*s, source) }

func TestGenerateUsesProvider(t *testing.T) {
	p := &stubProvider{text: "  purr purr \U0001F63A \n"}
	var rec sources
	r := NewWithProvider(p, 0, 0, &rec)
	sp := species.Get("cat")

	got := r.Generate(context.Background(), sp, "feed", 15, "ate delicious meat")

	assert.Equal(t, "purr purr \U0001F63A", got)
	assert.Contains(t, p.system, sp.Personality)
	assert.Contains(t, p.prompt, "Current affection: 15.")
	assert.Contains(t, p.prompt, "Your owner just did this: feed.")
	assert.Contains(t, p.prompt, "ate delicious meat")
	assert.Equal(t, sources{SourceProvider}, rec)
}

func TestGenerateEmptyAnswer(t *testing.T) {
	r := NewWithProvider(&stubProvider{text: "   "}, 0, 0, nil)
	assert.Equal(t, "Puppy is happy!", r.Generate(context.Background(), species.Get("dog"), "pet", 10, ""))
}

func TestGenerateProviderFailureFallsBack(t *testing.T) {
	var rec sources
	r := NewWithProvider(&stubProvider{err: errors.New("quota exceeded")}, 0, 0, &rec)

	got := r.Generate(context.Background(), species.Get("panda"), "bathe", 10, "had a nice bath")

	assert.Equal(t, "Panda loves you!", got)
	assert.Equal(t, sources{SourceError}, rec)
}

func TestGenerateWithoutProvider(t *testing.T) {
	r := NewWithProvider(nil, 0, 0, nil)
	require.False(t, r.Enabled())

	sp := species.Get("rabbit")
	got := r.Generate(context.Background(), sp, "pet", 10, "")
	assert.Equal(t, Fallback(sp, 10), got)
	assert.Equal(t, got, r.Generate(context.Background(), sp, "pet", 10, ""))
}

func TestFallbackCoversEveryLine(t *testing.T) {
	sp := species.Get("bird")
	seen := map[string]bool{}
	for a := 0; a < 8; a++ {
		seen[Fallback(sp, a)] = true
	}
	assert.Len(t, seen, 4)
	assert.NotEmpty(t, Fallback(sp, -3))
}

func TestRateLimitFallsBack(t *testing.T) {
	p := &stubProvider{text: "hi"}
	var rec sources
	r := NewWithProvider(p, 2, time.Minute, &rec)
	sp := species.Get("hamster")

	r.Generate(context.Background(), sp, "pet", 0, "")
	r.Generate(context.Background(), sp, "pet", 0, "")
	got := r.Generate(context.Background(), sp, "pet", 0, "")

	assert.Equal(t, 2, p.calls)
	assert.Equal(t, Fallback(sp, 0), got)
	assert.Equal(t, sources{SourceProvider, SourceProvider, SourceFallback}, rec)
}

func TestNewWithoutKeys(t *testing.T) {
	r := New(context.Background(), Config{Provider: "claude"})
	assert.False(t, r.Enabled())

	r = New(context.Background(), Config{})
	assert.False(t, r.Enabled())

	r = New(context.Background(), Config{ClaudeAPIKey: "sk-test", ClaudeModel: "claude-haiku-4-5", MaxTokens: 64})
	assert.True(t, r.Enabled())
}
