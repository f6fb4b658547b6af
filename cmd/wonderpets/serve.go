package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/moorebrett0/wonderpets/internal/discord"
	"github.com/moorebrett0/wonderpets/internal/httpapi"
	"github.com/moorebrett0/wonderpets/internal/proactive"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API (and the Discord bot when enabled)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpapi.NewRouter(httpapi.Options{Service: a.svc, Metrics: a.metrics.Handler()}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.Reaction.Timeout + 5*time.Second,
	}

	var bot *discord.Bot
	if cfg.Discord.Enabled {
		bot, err = discord.NewBot(cfg.Discord.BotToken, cfg.Discord.ChannelID, cfg.Discord.OwnerIDs)
		if err != nil {
			return err
		}
		discord.NewRouter(bot, a.svc)
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		slog.Info("wonderpets: http listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if bot != nil {
		sched := proactive.New(bot, a.svc, proactive.Config{
			CheckInterval: cfg.Discord.CheckInterval,
			IdleAfter:     cfg.Discord.IdleReminder,
		})
		eg.Go(func() error {
			return bot.Start(egCtx)
		})
		eg.Go(func() error {
			sched.Run(egCtx)
			return nil
		})
	}

	return eg.Wait()
}
