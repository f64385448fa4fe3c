package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/planetdetroit/leadlines/internal/domain"
)

// CSVSource reads a comma-delimited export with a header row.
type CSVSource struct {
	Path string
}

// ReadRows loads every data row in file order. Ragged rows are tolerated; the
// header schema is validated before any row is returned.
func (s *CSVSource) ReadRows(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	table, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", s.Path, err)
	}

	rows, err := rowsFromTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return rows, nil
}
