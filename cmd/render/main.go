package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mini-renderer/internal/batch"
	"mini-renderer/internal/config"
)

type renderOptions struct {
	configFile string
	verbose    bool
	flags      config.Flags
	toggles    toggles
}

var opts renderOptions

var rootCmd = &cobra.Command{
	Use:   "render [flags] FILE...",
	Short: "Rasterize OBJ meshes and XYZ point clouds into images",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyToggles(cmd.Flags(), opts.toggles, &opts.flags)
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		bc, err := cfg.Batch()
		if err != nil {
			return err
		}
		cmd.SilenceUsage = true

		return run(cmd.Context(), bc, args)
	},
}

func loadConfig() (config.Config, error) {
	var cfg config.Config
	if opts.configFile != "" {
		var err error
		if cfg, err = config.Load(opts.configFile); err != nil {
			return cfg, err
		}
	}
	cfg.Resolve(opts.flags)
	return cfg, nil
}

var errFailed = errors.New("some files failed to render")

func run(ctx context.Context, bc batch.Config, inputs []string) error {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	bc.Logger = logger

	logger.Info("rendering",
		slog.Int("files", len(inputs)),
		slog.Int("width", bc.Scene.Width),
		slog.Int("height", bc.Scene.Height),
		slog.String("mode", bc.Scene.Mode.String()),
		slog.String("format", bc.Format.String()),
		slog.Int("workers", bc.Workers),
		slog.String("output", bc.OutputDir))

	start := time.Now()
	results := batch.Run(ctx, bc, inputs)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	logger.Info("done",
		slog.Int("rendered", len(results)-failed),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(start)))

	// Write manifest
	if err := os.MkdirAll(bc.OutputDir, 0755); err != nil {
		return err
	}
	m, err := batch.NewManifest(bc, results)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	manifestPath := filepath.Join(bc.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, m); err != nil {
		logger.Warn("manifest write failed", slog.String("error", err.Error()))
	} else {
		logger.Info("manifest written", slog.String("path", manifestPath), slog.String("run_id", m.RunID))
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errFailed, failed, len(results))
	}
	return nil
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", valueFromEnvString("CONFIG", ""), "path to a YAML or JSON config file.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log every rendered file.")
	bindRenderFlags(flags, &opts.flags, &opts.toggles)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
