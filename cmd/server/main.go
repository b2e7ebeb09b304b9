package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/pong/internal/adapters/http"
	"github.com/dkeye/pong/internal/app"
	"github.com/dkeye/pong/internal/app/orch"
	"github.com/dkeye/pong/internal/config"
	"github.com/dkeye/pong/internal/logging"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("pong server failed")
		cancel()
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pong",
		Short:         "Server-authoritative two player pong over WebSocket.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			closer, err := logging.Setup(logging.Options{
				Level:      cfg.LogLevel,
				File:       cfg.LogFile,
				MaxSizeMB:  cfg.LogMaxSizeMB,
				MaxBackups: cfg.LogMaxBackups,
				MaxAgeDays: cfg.LogMaxAgeDays,
			})
			if err != nil {
				return fmt.Errorf("logging: %w", err)
			}
			defer closer.Close()
			return run(cmd.Context(), cfg)
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	reg := app.NewRegistry()
	o := orch.New(ctx, reg, orch.Options{
		TickPeriod: cfg.TickPeriod,
		Policy:     app.NewStrikePolicy(cfg.MaxDroppedFrames),
	})

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("pong server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return o.Reaper(cfg.IdleTimeout, cfg.ReapInterval).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
		}
		o.Shutdown()
		return nil
	})

	err := g.Wait()
	log.Info().Int("sessions", reg.Len()).Msg("server exited")
	return err
}
