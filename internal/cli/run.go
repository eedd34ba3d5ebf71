package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	ioracle "github.com/dkuanyshbaev/ioracle-core"
	"github.com/dkuanyshbaev/ioracle-core/internal/config"
	"github.com/dkuanyshbaev/ioracle-core/internal/presentation/tui"
	"github.com/dkuanyshbaev/ioracle-core/pkg/observability"
)

// RunInstallation runs the reading cycle until SIGINT or SIGTERM arrives while Idle.
func RunInstallation(cfg config.Config, logger *slog.Logger) error {
	if cfg.Log.Format != "json" && term.IsTerminal(int(os.Stderr.Fd())) {
		tui.PrintBanner(os.Stderr, ioracle.Version)
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	return run(sigCtx, cfg, logger, func() {
		if sig := sigCtx.Signal(); sig != nil {
			logger.Info("Shutting down", "signal", sig.String())
		}
	})
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, onStop func()) error {
	in, err := Build(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := in.Close(); err != nil {
			logger.Warn("Cleanup failed", "err", err)
		}
	}()

	serverErr := make(chan error, 1)
	if cfg.Metrics.Listen != "" {
		go func() {
			serverErr <- observability.Serve(ctx, cfg.Metrics.Listen, observability.NewHandler(in.Metrics, in.Status), logger)
		}()
	} else {
		close(serverErr)
	}

	logger.Info("Installation ready",
		"gate", cfg.Control.Gate,
		"out", cfg.Control.Out,
		"sensor", cfg.Sensor.Driver,
		"actuator", cfg.Actuator.Driver,
		"store", cfg.Throttle.Store,
	)

	if err := in.Controller.Run(ctx); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	onStop()

	// A metrics server that failed to start does not stop the installation.
	if err := <-serverErr; err != nil {
		logger.Warn("Metrics server stopped", "err", err)
	}
	return nil
}
