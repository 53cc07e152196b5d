package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cbegin/locofx"
	"github.com/cbegin/locofx/internal/logger"
)

var (
	// outputPath is the WAV file written by render.
	outputPath string
	// seconds is the length of the rendered show.
	seconds float64

	renderCmd = &cobra.Command{
		Use:   "render",
		Short: "Render a show offline to a WAV file.",
		Long: `Runs the scheduler without an audio device, producing TickPeriod worth of
audio per tick, and writes the result as a 32-bit float stereo WAV file.
With a fixed seed the output is reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outputPath == "" {
				return errOutputRequired
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			show, err := locofx.RenderShow(ctx, cfg, seconds)
			if err != nil {
				return err
			}

			f, err := os.Create(filepath.Clean(outputPath))
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := locofx.WriteWAV(f, show.Samples, show.SampleRate, 2); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close output: %w", err)
			}

			launched := make([]string, 0, len(show.Launches))
			for _, s := range show.Launches {
				launched = append(launched, s.String())
			}
			logger.Infof(ctx, "rendered %.1fs show to %s", seconds, outputPath)
			logger.DebugKV(ctx, "show details", "ticks", show.Ticks, "launches", launched)
			return nil
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	renderCmd.Flags().StringVarP(&outputPath, "out", "o", "", "output WAV path")
	renderCmd.Flags().Float64VarP(&seconds, "seconds", "s", 60, "length of the show in seconds")
}
