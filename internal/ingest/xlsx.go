package ingest

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/planetdetroit/leadlines/internal/domain"
)

// XLSXSource reads the first sheet of an Excel workbook with a header row.
type XLSXSource struct {
	Path string

	// HeaderRow is the zero-based index of the header row. The merged export
	// written by the merge command has its header on row 0; raw EGLE
	// spreadsheets put it on row 2.
	HeaderRow int
}

// ReadRows loads every data row below the header in sheet order, validating
// the header schema first.
func (s *XLSXSource) ReadRows(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", s.Path)
	}

	table, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if s.HeaderRow >= len(table) {
		return nil, fmt.Errorf("%s: header row %d beyond sheet end", s.Path, s.HeaderRow)
	}

	rows, err := rowsFromTable(table[s.HeaderRow:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return rows, nil
}
