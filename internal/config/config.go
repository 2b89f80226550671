package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"sigs.k8s.io/yaml"

	"mini-renderer/internal/batch"
	"mini-renderer/internal/framebuffer"
	"mini-renderer/internal/mathutil"
	"mini-renderer/internal/output"
	"mini-renderer/internal/scene"
)

// Config holds all configurable paths and render settings. Files may be
// YAML or JSON.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	Format         string      `json:"format"`
	Mode           string      `json:"mode"`
	Background     *[3]uint8   `json:"background,omitempty"`
	WireColor      *[3]uint8   `json:"wire_color,omitempty"`
	Light          *[3]float64 `json:"light,omitempty"`
	IntensityScale float64     `json:"intensity_scale"`
	NoDepthTest    bool        `json:"no_depth_test"`
	Strict         bool        `json:"strict"`

	// Geometry and export
	Fit        *bool   `json:"fit,omitempty"`
	RotateX    float64 `json:"rotate_x"`
	RotateY    float64 `json:"rotate_y"`
	Flip       *bool   `json:"flip,omitempty"`
	DepthImage bool    `json:"depth_image"`
	Scale      int     `json:"scale"`
	Workers    int     `json:"workers"`
}

// Load reads a YAML or JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values and nil pointers leave the file setting alone; the pointer
// fields are the ones whose zero value is a meaningful override.
type Flags struct {
	OutputDir  string
	Width      int
	Height     int
	Format     string
	Mode       string
	RotateX    *float64
	RotateY    *float64
	DepthImage *bool
	Flip       *bool
	Fit        *bool
	Strict     *bool
	Scale      int
	Workers    int
}

// Resolve applies CLI overrides, then fills any empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.RotateX != nil {
		c.RotateX = *flags.RotateX
	}
	if flags.RotateY != nil {
		c.RotateY = *flags.RotateY
	}
	if flags.DepthImage != nil {
		c.DepthImage = *flags.DepthImage
	}
	if flags.Flip != nil {
		c.Flip = ptr(*flags.Flip)
	}
	if flags.Fit != nil {
		c.Fit = ptr(*flags.Fit)
	}
	if flags.Strict != nil {
		c.Strict = *flags.Strict
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative output dir against base dir
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.BaseDir != "" && !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
	}

	// Defaults for render settings
	def := scene.DefaultSettings()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Format == "" {
		c.Format = string(output.PNG)
	}
	if c.Mode == "" {
		c.Mode = def.Mode.String()
	}
	if c.Background == nil {
		c.Background = &[3]uint8{def.Background.R, def.Background.G, def.Background.B}
	}
	if c.WireColor == nil {
		c.WireColor = &[3]uint8{def.WireColor.R, def.WireColor.G, def.WireColor.B}
	}
	if c.Light == nil {
		l := [3]float64(def.Light)
		c.Light = &l
	}
	if c.IntensityScale <= 0 {
		c.IntensityScale = def.IntensityScale
	}
	if c.Fit == nil {
		c.Fit = ptr(true)
	}
	if c.Flip == nil {
		c.Flip = ptr(true)
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Render size limits. Every worker holds a color and a depth buffer of
// Width*Height pixels, plus the upscaled image while encoding.
const (
	MaxPixels       = 8192 * 8192
	MaxOutputPixels = 16384 * 16384
	MaxScale        = 16
)

// Validate reports every invalid field of a resolved config.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: size %dx%d must be positive", c.Width, c.Height))
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := scene.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Light != nil && *c.Light == [3]float64{} {
		errs = append(errs, errors.New("config: light direction is zero"))
	}
	if px := int64(c.Width) * int64(c.Height); px > MaxPixels {
		errs = append(errs, fmt.Errorf("config: size %dx%d exceeds %d pixels", c.Width, c.Height, MaxPixels))
	}
	if c.Scale > MaxScale {
		errs = append(errs, fmt.Errorf("config: scale %d exceeds %d", c.Scale, MaxScale))
	} else if scale := int64(max(c.Scale, 1)); int64(c.Width)*scale*int64(c.Height)*scale > MaxOutputPixels {
		errs = append(errs, fmt.Errorf("config: %dx%d at scale %d exceeds %d output pixels", c.Width, c.Height, c.Scale, MaxOutputPixels))
	}
	return errors.Join(errs...)
}

// Batch converts a resolved, validated config into batch settings.
func (c *Config) Batch() (batch.Config, error) {
	if err := c.Validate(); err != nil {
		return batch.Config{}, err
	}
	format, _ := output.ParseFormat(c.Format)
	mode, _ := scene.ParseMode(c.Mode)

	s := scene.DefaultSettings()
	s.Width, s.Height = c.Width, c.Height
	s.Mode = mode
	if c.Background != nil {
		s.Background = rgb(*c.Background)
	}
	if c.WireColor != nil {
		s.WireColor = rgb(*c.WireColor)
	}
	if c.Light != nil {
		s.Light = mathutil.Vec3(*c.Light)
	}
	if c.IntensityScale > 0 {
		s.IntensityScale = c.IntensityScale
	}
	s.DepthTest = !c.NoDepthTest
	s.Strict = c.Strict

	bc := batch.Config{
		OutputDir:  c.OutputDir,
		Format:     format,
		Scene:      s,
		Fit:        c.Fit == nil || *c.Fit,
		Flip:       c.Flip == nil || *c.Flip,
		DepthImage: c.DepthImage,
		Scale:      c.Scale,
		Workers:    c.Workers,
	}
	if c.RotateX != 0 || c.RotateY != 0 {
		bc.Rotation = mathutil.Orientation(c.RotateX, c.RotateY)
	}
	return bc, nil
}

func rgb(c [3]uint8) framebuffer.RGB {
	return framebuffer.RGB{R: c[0], G: c[1], B: c[2]}
}

func ptr[T any](v T) *T { return &v }
