package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	ginserver "chalet/internal/infra/http/gin"
	"chalet/internal/infra/obs"
	infraoutbox "chalet/internal/infra/outbox"
)

func serveCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the event relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, logger := rt.cfg, rt.logger

			app, err := buildApplication(ctx, cfg, logger, true)
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := app.close(closeCtx); err != nil {
					logger.Warn("shutdown of dependencies failed", "error", err)
				}
			}()

			server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger, QuietPaths: []string{"/livez", "/readyz"}}, obs.HealthHandlers{Checks: app.checks}, app.handlers)

			worker := &infraoutbox.Worker{
				Relay:       app.relay,
				Producer:    app.producer,
				Logger:      logger,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
			workerDone := make(chan struct{})
			go func() {
				defer close(workerDone)
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("outbox worker stopped", "error", err)
				}
			}()

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error("http shutdown failed", "error", err)
				}
			}()

			logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			<-workerDone
			logger.Info("HTTP server stopped")
			return nil
		},
	}
}
