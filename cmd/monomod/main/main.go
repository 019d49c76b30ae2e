package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lucaspopp0/go-monorepo-test/cmd/monomod"
	"github.com/lucaspopp0/go-monorepo-test/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := monomod.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if r, rerr := ui.NewRenderer(ui.FormatAuto, os.Stderr); rerr == nil {
			_ = r.RenderError(err)
		}
		stop()
		os.Exit(1)
	}
}
