package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moorebrett0/wonderpets/internal/onboarding"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	onboarding.PrintStartup(out, a.reactor.Enabled(), cfg.Storage.Backend, false)

	term := onboarding.New(cmd.InOrStdin(), out, a.svc, 30*time.Millisecond)
	return term.Run(ctx)
}
