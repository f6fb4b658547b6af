package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/moorebrett0/wonderpets/internal/brain"
	"github.com/moorebrett0/wonderpets/internal/config"
	"github.com/moorebrett0/wonderpets/internal/game"
	"github.com/moorebrett0/wonderpets/internal/metrics"
	"github.com/moorebrett0/wonderpets/internal/storage"
)

// app holds the wired game components.
type app struct {
	backend storage.Backend
	metrics *metrics.Recorder
	reactor *brain.Reactor
	svc     *game.Service
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	backend, err := storage.Open(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	slog.Info("wonderpets: storage ready", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	rec := metrics.New()

	store := game.NewStore(storage.NewSaves(backend))
	store.Initialize(ctx)

	reactor := brain.New(ctx, brain.Config{
		ClaudeAPIKey: cfg.Claude.APIKey,
		ClaudeModel:  cfg.Claude.Model,
		GeminiAPIKey: cfg.Gemini.APIKey,
		GeminiModel:  cfg.Gemini.Model,
		Provider:     cfg.AI.Provider,
		MaxTokens:    cfg.Claude.MaxTokens,
		RateLimit:    cfg.Claude.RateLimit,
		RateWindow:   cfg.Claude.RateWindow,
		Recorder:     rec,
	})

	svc := game.NewService(game.ServiceConfig{
		Store:           store,
		Reactor:         reactor,
		Recorder:        rec,
		ReactionTimeout: cfg.Reaction.Timeout,
	})

	return &app{
		backend: backend,
		metrics: rec,
		reactor: reactor,
		svc:     svc,
	}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		slog.Error("wonderpets: close storage", "err", err)
	}
}
