package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FilterConfig holds thresholds for one named search filter.
type FilterConfig struct {
	// MinStars is the minimum GitHub star count for the filter.
	MinStars int `json:"min_stars,omitempty"`

	// MaxStars is the maximum star count (0 means unbounded).
	MaxStars int `json:"max_stars,omitempty"`

	// RecencyDays is the recency window for the filter's date cutoff.
	RecencyDays int `json:"recency_days,omitempty"`
}

// ResearchConfig holds the two named search filter specs.
type ResearchConfig struct {
	ViralFilter         FilterConfig `json:"viral_filter"`
	GroundbreakerFilter FilterConfig `json:"groundbreaker_filter"`
}

// Config holds application configuration loaded from <base>/config.json.
type Config struct {
	Research ResearchConfig `json:"research"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Research: ResearchConfig{
			ViralFilter:         FilterConfig{MinStars: 500, RecencyDays: 30},
			GroundbreakerFilter: FilterConfig{MinStars: 10, MaxStars: 200, RecencyDays: 90},
		},
	}
}

// Load loads configuration from baseDir/config.json.
// A missing or malformed file yields the defaults; the query builder must
// always have usable thresholds, so config problems never surface as errors.
// The baseDir parameter allows tests to use t.TempDir() instead of the real base.
func Load(baseDir string) *Config {
	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return DefaultConfig()
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig()
	}

	return Merge(DefaultConfig(), cfg)
}

// Merge combines base and overlay configs. Overlay values win when non-zero.
func Merge(base, overlay *Config) *Config {
	result := &Config{}
	result.Research.ViralFilter = mergeFilter(base.Research.ViralFilter, overlay.Research.ViralFilter)
	result.Research.GroundbreakerFilter = mergeFilter(base.Research.GroundbreakerFilter, overlay.Research.GroundbreakerFilter)
	return result
}

func mergeFilter(base, overlay FilterConfig) FilterConfig {
	result := overlay
	if result.MinStars == 0 {
		result.MinStars = base.MinStars
	}
	if result.MaxStars == 0 {
		result.MaxStars = base.MaxStars
	}
	if result.RecencyDays == 0 {
		result.RecencyDays = base.RecencyDays
	}
	return result
}
