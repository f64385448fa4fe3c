package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all tool settings, populated from environment variables.
// Commands may override the paths with flags.
type Config struct {
	// SourcePath is the merged DSMI/LSLR export to convert (.csv or .xlsx).
	SourcePath string `envconfig:"SOURCE_PATH" default:"data/DSMI-LSLR-Merged.xlsx"`

	// ArtifactPath is where the generated JSON data file goes.
	ArtifactPath string `envconfig:"ARTIFACT_PATH" default:"data/water-systems.json"`

	// DataStatePath is the change-detection state file.
	DataStatePath string `envconfig:"DATA_STATE_PATH" default:"data/data-state.json"`

	// CentroidsPath points at the GeoJSON centroid file; empty disables
	// coordinate enrichment.
	CentroidsPath string `envconfig:"CENTROIDS_PATH" default:""`

	// MetricsTextfile is where conversion metrics are written for the node
	// exporter textfile collector; empty disables the write.
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE" default:""`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want json or text)", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	if cfg.SourcePath == "" {
		return nil, fmt.Errorf("SOURCE_PATH is required")
	}
	if cfg.ArtifactPath == "" {
		return nil, fmt.Errorf("ARTIFACT_PATH is required")
	}

	return &cfg, nil
}
