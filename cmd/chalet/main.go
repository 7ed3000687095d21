package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chalet/internal/infra/config"
	"chalet/internal/infra/obs"
)

type runtime struct {
	envFiles []string
	cfg      config.Config
	logger   *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}
	rootCmd := &cobra.Command{
		Use:           "chalet",
		Short:         "Nightly prices and date selection for a vacation rental",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(rt.envFiles...); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			rt.cfg = cfg
			rt.logger = obs.NewLogger(cfg.Env, cfg.LogLevel)
			slog.SetDefault(rt.logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringSliceVar(&rt.envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")

	rootCmd.AddCommand(serveCmd(rt), quoteCmd(rt), datesCmd(rt), priceCmd(rt))
	return rootCmd
}
