package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cbegin/locofx"
	"github.com/cbegin/locofx/internal/audio"
	"github.com/cbegin/locofx/internal/ledterm"
	"github.com/cbegin/locofx/internal/logger"
)

var (
	// backendName overrides the configured audio backend.
	backendName string

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the controller live until interrupted.",
		Long: `Streams sound through the audio device and draws the light zones in the
terminal. Stops on SIGINT or SIGTERM, turning everything off.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if backendName != "" {
				cfg.Audio.Backend = backendName
			}

			strip := ledterm.New(os.Stdout)
			ctrl, err := locofx.NewController(ctx, cfg,
				locofx.WithStrip(strip),
				locofx.WithStatusIndicator(strip),
			)
			if err != nil {
				return err
			}

			out, err := audio.NewBackend(cfg.Audio.Backend, cfg.Audio.SampleRate, ctrl.Engine())
			if err != nil {
				return err
			}
			out.Play()
			defer func() {
				if err := out.Stop(); err != nil {
					logger.ErrorKV(ctx, "stop audio", "error", err)
				}
			}()

			if err := ctrl.Run(ctx); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout)
			if err := strip.Err(); err != nil {
				return fmt.Errorf("terminal strip: %w", err)
			}
			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	runCmd.Flags().StringVarP(&backendName, "backend", "b", "", "audio backend: ebiten|oto")
}
