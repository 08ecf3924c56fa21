package main

import (
	"context"
	"os/signal"
	"syscall"

	"wellspring/cmd/well/ui"
	"wellspring/internal/logging"
	"wellspring/internal/share"

	"github.com/spf13/cobra"
)

// runInteractive starts the full-screen interface.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return ui.Run(ctx, ui.Deps{
		Store:      a.store,
		Profile:    a.profile,
		Vault:      a.vault,
		Ritual:     a.ritual,
		Roll:       a.roll,
		Stats:      a.stats,
		Gallery:    a.gallery,
		Sharer:     share.ClipboardSharer{},
		Log:        logging.For(a.log, logging.CategoryUI),
		Theme:      a.cfg.UI.Theme,
		SkipSplash: a.cfg.UI.SkipSplash,
		Offsets:    a.cfg.GetSettleOffsets(),
		Flicker:    a.cfg.GetFlickerInterval(),
	})
}
