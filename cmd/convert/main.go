// Command convert turns the merged DSMI/LSLR export into the static JSON
// artifact the directory view consumes. It also refreshes the data-state file
// (content-hash change detection) and, when configured, writes conversion
// metrics for the Prometheus textfile collector.
//
// Usage:
//
//	go run ./cmd/convert -source data/DSMI-LSLR-Merged.xlsx -out data/water-systems.json
//
// Paths default from the environment (SOURCE_PATH, ARTIFACT_PATH,
// DATA_STATE_PATH, CENTROIDS_PATH, METRICS_TEXTFILE); flags override.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/planetdetroit/leadlines/internal/artifact"
	"github.com/planetdetroit/leadlines/internal/config"
	"github.com/planetdetroit/leadlines/internal/datastate"
	"github.com/planetdetroit/leadlines/internal/geo"
	"github.com/planetdetroit/leadlines/internal/ingest"
	"github.com/planetdetroit/leadlines/internal/observability"
	"github.com/planetdetroit/leadlines/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	source := flag.String("source", cfg.SourcePath, "merged DSMI/LSLR export (.csv or .xlsx)")
	out := flag.String("out", cfg.ArtifactPath, "output path for the JSON artifact")
	statePath := flag.String("state", cfg.DataStatePath, "data-state file for change detection")
	centroids := flag.String("centroids", cfg.CentroidsPath, "GeoJSON centroid file (empty disables coordinate enrichment)")
	metricsOut := flag.String("metrics", cfg.MetricsTextfile, "textfile-collector path for conversion metrics (empty disables)")
	flag.Parse()

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var coords geo.CoordinateSource
	if *centroids != "" {
		cf, err := geo.LoadCentroids(*centroids)
		if err != nil {
			logger.Error("failed to load centroids", "path", *centroids, "error", err)
			os.Exit(1)
		}
		coords = cf
		logger.Info("coordinate enrichment enabled", "centroids", cf.Len())
	}

	p := pipeline.New(
		ingest.ForPath(*source),
		artifact.NewFileWriter(*out),
		coords,
		logger,
		metrics,
		filepath.Base(*source),
	)

	a, err := p.Run(ctx)
	if err != nil {
		logger.Error("conversion failed", "error", err)
		os.Exit(1)
	}
	logger.Info("artifact written", "path", *out, "records", len(a.Records))

	refreshDataState(logger, *statePath, *source, *centroids)

	if *metricsOut != "" {
		if err := metrics.WriteTextfile(*metricsOut); err != nil {
			logger.Error("failed to write metrics textfile", "path", *metricsOut, "error", err)
			os.Exit(1)
		}
	}
}

// refreshDataState compares the tracked source files with the previous run
// and persists the new state. Change detection is advisory: failures are
// logged, never fatal, because the artifact is already written.
func refreshDataState(logger *slog.Logger, statePath, source, centroids string) {
	prev, err := datastate.Load(statePath)
	if err != nil {
		logger.Warn("failed to load previous data state", "error", err)
	}

	files := map[string]string{"merged": source}
	if centroids != "" {
		files["centroids"] = centroids
	}

	current, changes := datastate.Detect(prev, files)
	for _, c := range changes {
		logger.Info("source data changed", "source", c.Source, "details", c.Details)
	}
	if len(changes) == 0 && len(prev.Sources) > 0 {
		logger.Info("no source data changes detected")
	}

	if err := current.Save(statePath); err != nil {
		logger.Warn("failed to save data state", "error", err)
	}
}
