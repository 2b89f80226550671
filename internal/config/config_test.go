package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mini-renderer/internal/framebuffer"
	"mini-renderer/internal/mathutil"
	"mini-renderer/internal/output"
	"mini-renderer/internal/scene"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "render.yaml", `
output_dir: out
width: 640
height: 480
format: tga
mode: filled
background: [10, 20, 30]
light: [0, 1, 1]
flip: false
rotate_y: 45
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, "tga", cfg.Format)
	require.NotNil(t, cfg.Background)
	assert.Equal(t, [3]uint8{10, 20, 30}, *cfg.Background)
	require.NotNil(t, cfg.Flip)
	assert.False(t, *cfg.Flip)
	assert.Nil(t, cfg.Fit)
	assert.Equal(t, 45.0, cfg.RotateY)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(write(t, "render.json", `{"width": 64, "workers": 3}`))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config: read")

	_, err = Load(write(t, "bad.yaml", "width: [1\n"))
	assert.ErrorContains(t, err, "config: parse")

	_, err = Load(write(t, "unknown.yaml", "colour: red\n"))
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	def := scene.DefaultSettings()
	assert.Equal(t, def.Width, cfg.Width)
	assert.Equal(t, def.Height, cfg.Height)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, "both", cfg.Mode)
	assert.Equal(t, [3]uint8{0, 20, 25}, *cfg.Background)
	assert.Equal(t, [3]uint8{230, 240, 250}, *cfg.WireColor)
	assert.Equal(t, [3]float64{0, 0, 1}, *cfg.Light)
	assert.Equal(t, 85.0, cfg.IntensityScale)
	assert.True(t, *cfg.Fit)
	assert.True(t, *cfg.Flip)
	assert.Equal(t, 1, cfg.Scale)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, "renders", cfg.OutputDir)
	assert.NoError(t, cfg.Validate())
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	cfg := Config{BaseDir: "/data", OutputDir: "file-out", Width: 100, Format: "bmp", Flip: ptr(true)}
	cfg.Resolve(Flags{Width: 50, Format: "webp", Flip: ptr(false), Fit: ptr(false), Workers: 7})

	assert.Equal(t, 50, cfg.Width)
	assert.Equal(t, "webp", cfg.Format)
	assert.False(t, *cfg.Flip)
	assert.False(t, *cfg.Fit)
	assert.Equal(t, 7, cfg.Workers)
	assert.Equal(t, filepath.Join("/data", "file-out"), cfg.OutputDir)
}

func TestResolveZeroFlagsOverrideFile(t *testing.T) {
	cfg := Config{RotateX: 30, RotateY: -45, DepthImage: true, Strict: true, Fit: ptr(false)}
	cfg.Resolve(Flags{RotateX: ptr(0.0), DepthImage: ptr(false), Strict: ptr(false), Fit: ptr(true)})

	assert.Zero(t, cfg.RotateX)
	assert.Equal(t, -45.0, cfg.RotateY, "unset flag keeps the file value")
	assert.False(t, cfg.DepthImage)
	assert.False(t, cfg.Strict)
	assert.True(t, *cfg.Fit)

	bc, err := cfg.Batch()
	require.NoError(t, err)
	assert.Equal(t, mathutil.Orientation(0, -45), bc.Rotation)
}

func TestValidateSizeLimits(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{Width: 100000, Height: 100000})
	assert.ErrorContains(t, cfg.Validate(), "pixels")

	cfg = Config{}
	cfg.Resolve(Flags{Width: 8192, Height: 8192})
	assert.NoError(t, cfg.Validate())

	cfg = Config{}
	cfg.Resolve(Flags{Width: 8192, Height: 8192, Scale: 4})
	assert.ErrorContains(t, cfg.Validate(), "output pixels")

	cfg = Config{}
	cfg.Resolve(Flags{Width: 2500, Height: 2500, Scale: 4})
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Config{Width: -1, Height: 10, Format: "gif", Mode: "shaded", Light: &[3]float64{}, Scale: 99}
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"size", "format", "mode", "light", "scale"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestBatch(t *testing.T) {
	cfg := Config{Mode: "outline", Format: "tga", Background: &[3]uint8{1, 2, 3}, NoDepthTest: true, RotateX: 10}
	cfg.Resolve(Flags{Width: 16, Height: 8, DepthImage: ptr(true)})

	bc, err := cfg.Batch()
	require.NoError(t, err)
	assert.Equal(t, output.TGA, bc.Format)
	assert.Equal(t, scene.Wireframe, bc.Scene.Mode)
	assert.Equal(t, 16, bc.Scene.Width)
	assert.Equal(t, 8, bc.Scene.Height)
	assert.Equal(t, framebuffer.RGB{R: 1, G: 2, B: 3}, bc.Scene.Background)
	assert.False(t, bc.Scene.DepthTest)
	assert.True(t, bc.DepthImage)
	assert.True(t, bc.Fit)
	assert.Equal(t, mathutil.Orientation(10, 0), bc.Rotation)

	cfg.Format = "gif"
	_, err = cfg.Batch()
	assert.Error(t, err)
}
