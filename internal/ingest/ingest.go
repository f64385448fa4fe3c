// Package ingest reads tabular source exports into header-keyed raw rows.
//
// Column lookup is resolved once against the trimmed header row, so malformed
// input is detectable at a single point instead of by ad-hoc per-row lookups.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/planetdetroit/leadlines/internal/domain"
)

// rowsFromTable converts a raw table (header row first) into ordered RawRows,
// keyed by trimmed header. Cells beyond the header width are ignored; short
// rows simply leave the remaining columns unset.
func rowsFromTable(table [][]string) ([]domain.RawRow, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	header := make([]string, len(table[0]))
	for i, h := range table[0] {
		header[i] = strings.TrimSpace(h)
	}
	if err := requireColumns(header); err != nil {
		return nil, err
	}

	rows := make([]domain.RawRow, 0, len(table)-1)
	for _, cells := range table[1:] {
		row := make(domain.RawRow, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// requireColumns checks the trimmed header against the recognized schema and
// reports every missing required column at once.
func requireColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range domain.RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("source is missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// A Source loads the raw rows of one tabular export.
type Source interface {
	ReadRows(ctx context.Context) ([]domain.RawRow, error)
}

// ForPath picks a Source implementation by file extension: .xlsx exports are
// read with excelize, everything else as comma-delimited text.
func ForPath(path string) Source {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return &XLSXSource{Path: path}
	}
	return &CSVSource{Path: path}
}
