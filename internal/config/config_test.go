package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Load(tmpDir)
	if cfg.Research.ViralFilter.MinStars != 500 {
		t.Fatalf("ViralFilter.MinStars = %d, want 500", cfg.Research.ViralFilter.MinStars)
	}
	if cfg.Research.GroundbreakerFilter.MaxStars != 200 {
		t.Fatalf("GroundbreakerFilter.MaxStars = %d, want 200", cfg.Research.GroundbreakerFilter.MaxStars)
	}
}

func TestLoad_OverridesFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	content := `{"research": {"viral_filter": {"min_stars": 1000}}}`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg := Load(tmpDir)
	if cfg.Research.ViralFilter.MinStars != 1000 {
		t.Fatalf("ViralFilter.MinStars = %d, want 1000", cfg.Research.ViralFilter.MinStars)
	}
	// Unspecified values fall back to defaults
	if cfg.Research.ViralFilter.RecencyDays != 30 {
		t.Fatalf("ViralFilter.RecencyDays = %d, want 30", cfg.Research.ViralFilter.RecencyDays)
	}
	if cfg.Research.GroundbreakerFilter.MinStars != 10 {
		t.Fatalf("GroundbreakerFilter.MinStars = %d, want 10", cfg.Research.GroundbreakerFilter.MinStars)
	}
}

func TestLoad_MalformedIsDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(configPath, []byte(`{not json}`), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Malformed config is treated as absent, never an error.
	cfg := Load(tmpDir)
	if cfg.Research.ViralFilter.MinStars != 500 {
		t.Fatalf("ViralFilter.MinStars = %d, want 500", cfg.Research.ViralFilter.MinStars)
	}
}

func TestMerge_ZeroValuesFallBack(t *testing.T) {
	base := DefaultConfig()
	overlay := &Config{}
	overlay.Research.GroundbreakerFilter.RecencyDays = 180

	result := Merge(base, overlay)

	if result.Research.GroundbreakerFilter.RecencyDays != 180 {
		t.Errorf("RecencyDays = %d, want 180", result.Research.GroundbreakerFilter.RecencyDays)
	}
	if result.Research.GroundbreakerFilter.MinStars != 10 {
		t.Errorf("MinStars = %d, want 10 (base)", result.Research.GroundbreakerFilter.MinStars)
	}
	if result.Research.ViralFilter.MinStars != 500 {
		t.Errorf("ViralFilter.MinStars = %d, want 500 (base)", result.Research.ViralFilter.MinStars)
	}
}
