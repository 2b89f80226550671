package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mini-renderer/internal/mathutil"
	"mini-renderer/internal/mesh"
	"mini-renderer/internal/output"
	"mini-renderer/internal/scene"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Format    output.Format
	Scene     scene.Settings
	Fit       bool
	// Rotation is applied before fitting. The zero matrix means none.
	Rotation   mathutil.Mat3
	Flip       bool
	DepthImage bool
	Scale      int
	Workers    int
	// ProgressInterval is how often progress is logged. Zero selects 2s.
	ProgressInterval time.Duration
	Logger           *slog.Logger
}

// Result holds the outcome of rendering one mesh file.
type Result struct {
	Input       string
	Output      string
	DepthOutput string
	Faces       int
	Filled      int
	Skipped     int
	Checksum    uint64
	Success     bool
	Error       string
}

// Run renders every input using a worker pool. Results are returned in
// input order. After ctx is cancelled, files already rendering finish and
// every input not yet started is reported as failed with the context error.
func Run(ctx context.Context, cfg Config, inputs []string) []Result {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	total := len(inputs)
	results := make([]Result, total)
	names := outputNames(inputs)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					logger.Info("progress",
						slog.Int64("done", p),
						slog.Int("total", total),
						slog.Float64("files_per_sec", float64(p)/time.Since(start).Seconds()))
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{Input: inputs[idx], Error: err.Error()}
					processed.Add(1)
					continue
				}
				res := processFile(cfg, inputs[idx], names[idx])
				if !res.Success {
					logger.Warn("render failed", slog.String("input", res.Input), slog.String("error", res.Error))
				} else {
					logger.Debug("rendered",
						slog.String("input", res.Input),
						slog.String("output", res.Output),
						slog.Int("faces", res.Faces),
						slog.Int("skipped", res.Skipped))
				}
				results[idx] = res
				processed.Add(1)
			}
		}()
	}

	// Send work
	sent := 0
dispatch:
	for ; sent < total && ctx.Err() == nil; sent++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- sent:
		}
	}
	close(jobs)

	wg.Wait()
	close(done)

	for i := sent; i < total; i++ {
		results[i] = Result{Input: inputs[i], Error: ctx.Err().Error()}
	}
	return results
}

// outputNames gives every input a distinct output stem: the file name
// without extension, suffixed with -2, -3, ... on collisions.
func outputNames(inputs []string) []string {
	names := make([]string, len(inputs))
	seen := make(map[string]int, len(inputs))
	for i, in := range inputs {
		base := filepath.Base(in)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		seen[stem]++
		if n := seen[stem]; n > 1 {
			stem = fmt.Sprintf("%s-%d", stem, n)
		}
		names[i] = stem
	}
	return names
}

func processFile(cfg Config, input, name string) Result {
	res := Result{Input: input}

	m, err := mesh.Load(input)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if len(m.Faces) == 0 {
		res.Error = "no faces in mesh"
		return res
	}
	if cfg.Rotation != (mathutil.Mat3{}) {
		m.Rotate(cfg.Rotation)
	}
	if cfg.Fit {
		m.Fit(1)
	}

	r, stats, err := scene.Render(m, cfg.Scene)
	res.Faces, res.Filled, res.Skipped = stats.Faces, stats.Filled, stats.Skipped
	if err != nil {
		res.Error = err.Error()
		return res
	}
	frame, depth, err := r.Take()
	if err != nil {
		res.Error = err.Error()
		return res
	}

	img := output.Image(frame, cfg.Flip)
	res.Checksum = output.Checksum(img)
	res.Output = filepath.Join(cfg.OutputDir, name+cfg.Format.Ext())
	if err := output.WriteFile(res.Output, output.Upscale(img, cfg.Scale), cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.DepthImage && depth != nil {
		res.DepthOutput = filepath.Join(cfg.OutputDir, name+".depth"+cfg.Format.Ext())
		dimg := output.Upscale(output.DepthImage(depth, cfg.Flip), cfg.Scale)
		if err := output.WriteFile(res.DepthOutput, dimg, cfg.Format); err != nil {
			res.Error = fmt.Sprintf("depth image: %v", err)
			return res
		}
	}

	res.Success = true
	return res
}
