// Package pipeline orchestrates the one-shot conversion: extract raw rows,
// normalize them, enrich coordinates, and write the artifact.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/planetdetroit/leadlines/internal/domain"
	"github.com/planetdetroit/leadlines/internal/geo"
	"github.com/planetdetroit/leadlines/internal/observability"
)

// SourceReader loads the raw rows of a tabular export.
type SourceReader interface {
	ReadRows(ctx context.Context) ([]domain.RawRow, error)
}

// ArtifactWriter persists the generated record set.
type ArtifactWriter interface {
	WriteArtifact(ctx context.Context, a domain.Artifact) error
}

// Pipeline runs the conversion to completion exactly once. There is no retry
// anywhere: the transform is pure and deterministic, so retrying a failed run
// cannot change the outcome.
type Pipeline struct {
	reader  SourceReader
	writer  ArtifactWriter
	coords  geo.CoordinateSource
	logger  *slog.Logger
	metrics *observability.Metrics
	source  string
}

// New creates a Pipeline. Pass a nil coords source to disable coordinate
// enrichment.
func New(reader SourceReader, writer ArtifactWriter, coords geo.CoordinateSource, logger *slog.Logger, metrics *observability.Metrics, source string) *Pipeline {
	return &Pipeline{
		reader:  reader,
		writer:  writer,
		coords:  coords,
		logger:  logger,
		metrics: metrics,
		source:  source,
	}
}

// Run executes extract, normalize, enrich, and load, returning the artifact
// it wrote. A missing or malformed source file is fatal; malformed rows and
// fields degrade per the normalization rules and never fail the run.
func (p *Pipeline) Run(ctx context.Context) (domain.Artifact, error) {
	start := time.Now()

	rows, err := p.reader.ReadRows(ctx)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("read source: %w", err)
	}
	p.metrics.RowsRead.Add(float64(len(rows)))

	records, dropped := domain.NormalizeRows(rows)
	if dropped > 0 {
		p.metrics.RowsDropped.Add(float64(dropped))
		p.logger.Debug("rows without PWSID dropped", "dropped", dropped)
	}
	p.warnOnDuplicates(records)

	records = geo.EnrichWithCoordinates(records, p.coords, p.logger)

	a := domain.NewArtifact(p.source, records)
	if err := p.writer.WriteArtifact(ctx, a); err != nil {
		return domain.Artifact{}, fmt.Errorf("write artifact: %w", err)
	}

	p.metrics.RecordsEmitted.Add(float64(len(records)))
	p.metrics.LastRunTimestamp.SetToCurrentTime()
	p.metrics.LastRunDuration.Set(time.Since(start).Seconds())

	p.logger.Info("conversion complete",
		"rows", len(rows),
		"records", len(records),
		"dropped", dropped,
		"duration", time.Since(start),
	)
	return a, nil
}

// warnOnDuplicates flags PWSIDs that appear more than once. Uniqueness is an
// invariant of the upstream export; a duplicate means the merge went wrong.
func (p *Pipeline) warnOnDuplicates(records []domain.WaterSystemRecord) {
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.PWSID] {
			p.logger.Warn("duplicate PWSID in source", "pwsid", r.PWSID)
			continue
		}
		seen[r.PWSID] = true
	}
}
