// Package geo fills in water system coordinates from a local centroid file.
//
// The centroid file is a GeoJSON FeatureCollection of community water supply
// boundary centroids, produced offline from the state boundary polygons. Each
// feature carries the supply's PWSID property and a point geometry (or lon/lat
// properties when the geometry was dropped).
package geo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/planetdetroit/leadlines/internal/domain"
)

// A CoordinateSource resolves coordinates for a water system by PWSID.
type CoordinateSource interface {
	Lookup(pwsid string) (lat, lon float64, ok bool)
}

type point struct {
	lat float64
	lon float64
}

// CentroidFile is a CoordinateSource backed by a GeoJSON centroid file.
type CentroidFile struct {
	byPWSID map[string]point
}

type featureCollection struct {
	Features []struct {
		Properties map[string]any `json:"properties"`
		Geometry   *struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// LoadCentroids reads a GeoJSON centroid file. Features without a PWSID
// property or without usable coordinates are skipped; they only cost the map
// view a pin.
func LoadCentroids(path string) (*CentroidFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read centroids: %w", err)
	}

	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse centroids %s: %w", path, err)
	}

	c := &CentroidFile{byPWSID: make(map[string]point, len(fc.Features))}
	for _, f := range fc.Features {
		pwsid := propertyString(f.Properties, "PWSID", "pwsid")
		if pwsid == "" {
			continue
		}

		// Prefer the point geometry; fall back to lon/lat properties.
		if f.Geometry != nil && f.Geometry.Type == "Point" && len(f.Geometry.Coordinates) >= 2 {
			c.byPWSID[pwsid] = point{lat: f.Geometry.Coordinates[1], lon: f.Geometry.Coordinates[0]}
			continue
		}
		lat, latOK := propertyFloat(f.Properties, "lat")
		lon, lonOK := propertyFloat(f.Properties, "lon")
		if latOK && lonOK {
			c.byPWSID[pwsid] = point{lat: lat, lon: lon}
		}
	}
	return c, nil
}

// Len reports how many supplies have a centroid.
func (c *CentroidFile) Len() int { return len(c.byPWSID) }

// Lookup returns the centroid for a PWSID.
func (c *CentroidFile) Lookup(pwsid string) (float64, float64, bool) {
	p, ok := c.byPWSID[strings.TrimSpace(pwsid)]
	if !ok {
		return 0, 0, false
	}
	return p.lat, p.lon, true
}

// EnrichWithCoordinates fills missing record coordinates from the source.
// Records that already carry coordinates keep them; lookup misses leave the
// record untouched. A nil source is a no-op. The input slice is returned with
// records updated in place since enrichment happens before the artifact is
// sealed.
func EnrichWithCoordinates(records []domain.WaterSystemRecord, src CoordinateSource, logger *slog.Logger) []domain.WaterSystemRecord {
	if src == nil {
		return records
	}

	filled := 0
	for i := range records {
		if records[i].HasCoordinates() {
			continue
		}
		lat, lon, ok := src.Lookup(records[i].PWSID)
		if !ok {
			continue
		}
		records[i].Latitude = &lat
		records[i].Longitude = &lon
		filled++
	}

	logger.Info("coordinate enrichment complete", "records", len(records), "filled", filled)
	return records
}

func propertyString(props map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := props[k].(string); ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func propertyFloat(props map[string]any, key string) (float64, bool) {
	v, ok := props[key].(float64)
	return v, ok
}
