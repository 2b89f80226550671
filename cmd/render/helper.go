package main

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"mini-renderer/internal/config"
)

const envPrefix = "MINI_RENDERER_"

func valueFromEnvString(key, defaultValue string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		return v
	}
	return defaultValue
}

func valueFromEnvInt(key string, defaultValue int) int {
	if str, ok := os.LookupEnv(envPrefix + key); ok {
		if v, err := strconv.Atoi(str); err == nil {
			return v
		}
	}
	return defaultValue
}

// toggles holds flags whose zero value is a real setting. They reach
// config.Flags only when given on the command line.
type toggles struct {
	pitch, yaw float64
	depth      bool
	noFlip     bool
	noFit      bool
	strict     bool
}

// bindRenderFlags registers the flags that override config file settings.
// Zero defaults mean "use the config file or built-in default".
func bindRenderFlags(flags *pflag.FlagSet, f *config.Flags, tg *toggles) {
	flags.StringVarP(&f.OutputDir, "output", "o", valueFromEnvString("OUTPUT", ""), "output directory (default: renders).")
	flags.IntVar(&f.Width, "width", valueFromEnvInt("WIDTH", 0), "image width in pixels (default: 2500).")
	flags.IntVar(&f.Height, "height", valueFromEnvInt("HEIGHT", 0), "image height in pixels (default: 2500).")
	flags.StringVarP(&f.Format, "format", "f", valueFromEnvString("FORMAT", ""), "png, tga, webp or bmp (default: png).")
	flags.StringVarP(&f.Mode, "mode", "m", "", "filled, outline or both (default: both).")
	flags.Float64Var(&tg.pitch, "pitch", 0, "rotation around x in degrees, applied before fitting.")
	flags.Float64Var(&tg.yaw, "yaw", 0, "rotation around y in degrees, applied before fitting.")
	flags.BoolVar(&tg.depth, "depth", false, "also write the depth buffer as a grayscale image (--depth=false overrides the config file).")
	flags.BoolVar(&tg.noFlip, "no-flip", false, "keep buffer row 0 at the top of the image.")
	flags.BoolVar(&tg.noFit, "no-fit", false, "use mesh coordinates as-is instead of fitting them into [-1,1].")
	flags.BoolVar(&tg.strict, "strict", false, "fail on faces outside normalized device coordinates instead of skipping them.")
	flags.IntVar(&f.Scale, "scale", 0, "integer upscale factor for the written images.")
	flags.IntVarP(&f.Workers, "workers", "j", valueFromEnvInt("WORKERS", 0), "number of worker goroutines (default: NumCPU).")
}

// applyToggles copies the toggles that were set on the command line into f.
func applyToggles(flags *pflag.FlagSet, tg toggles, f *config.Flags) {
	if flags.Changed("pitch") {
		f.RotateX = &tg.pitch
	}
	if flags.Changed("yaw") {
		f.RotateY = &tg.yaw
	}
	if flags.Changed("depth") {
		f.DepthImage = &tg.depth
	}
	if flags.Changed("no-flip") {
		flip := !tg.noFlip
		f.Flip = &flip
	}
	if flags.Changed("no-fit") {
		fit := !tg.noFit
		f.Fit = &fit
	}
	if flags.Changed("strict") {
		f.Strict = &tg.strict
	}
}
