package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-json-experiment/json/v1"
	"github.com/google/uuid"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Created time.Time       `json:"created"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Format  string          `json:"format"`
	Items   []ManifestEntry `json:"items"`
}

// ManifestEntry represents one input in the output manifest.
type ManifestEntry struct {
	Input    string `json:"input"`
	Image    string `json:"image,omitempty"`
	Depth    string `json:"depth,omitempty"`
	Faces    int    `json:"faces"`
	Filled   int    `json:"filled"`
	Skipped  int    `json:"skipped"`
	Checksum string `json:"checksum,omitempty"`
	Error    string `json:"error,omitempty"`
}

// NewManifest builds a manifest for results under a fresh time-ordered run id.
// Image paths are stored relative to cfg.OutputDir.
func NewManifest(cfg Config, results []Result) (Manifest, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Manifest{}, err
	}
	m := Manifest{
		RunID:   id.String(),
		Created: time.Now().UTC(),
		Width:   cfg.Scene.Width,
		Height:  cfg.Scene.Height,
		Format:  cfg.Format.String(),
		Items:   make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{
			Input:   r.Input,
			Image:   relative(cfg.OutputDir, r.Output),
			Depth:   relative(cfg.OutputDir, r.DepthOutput),
			Faces:   r.Faces,
			Filled:  r.Filled,
			Skipped: r.Skipped,
			Error:   r.Error,
		}
		if r.Success {
			e.Checksum = fmt.Sprintf("%016x", r.Checksum)
		}
		m.Items[i] = e
	}
	return m, nil
}

func relative(dir, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	return m, nil
}
