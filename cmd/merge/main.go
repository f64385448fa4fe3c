// Command merge joins the DSMI service line materials spreadsheet and the
// LSLR replacement progress spreadsheet on Public Water Supply ID, keeping all
// records from both files (outer join), and writes the merged workbook that
// the convert command consumes.
//
// Both inputs put their header on the third row with data from the fourth.
// The merged output has its header on the first row and uses the conversion
// column names: the join key becomes "PWSID", the DSMI name stays "Supply
// Name", and the colliding LSLR name survives as "LSLR Supply Name".
//
// Usage:
//
//	go run ./cmd/merge \
//	  -dsmi data/DSMI-Service-Line-Materials-Estimates.xlsx \
//	  -lslr data/2024-2025-LSLR-Data.xlsx \
//	  -out  data/DSMI-LSLR-Merged.xlsx
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/planetdetroit/leadlines/internal/domain"
)

// keyColumn is the join key shared by both input spreadsheets. The merged
// output renames it to domain.ColPWSID.
const keyColumn = "Public Water Supply ID"

// lslrNameColumn is where the LSLR sheet's colliding name column ends up.
const lslrNameColumn = "LSLR Supply Name"

// headerRow is the zero-based header row index in the raw EGLE spreadsheets.
const headerRow = 2

func main() {
	dsmiPath := flag.String("dsmi", "data/DSMI-Service-Line-Materials-Estimates.xlsx", "DSMI service line materials spreadsheet")
	lslrPath := flag.String("lslr", "data/2024-2025-LSLR-Data.xlsx", "LSLR replacement progress spreadsheet")
	out := flag.String("out", "data/DSMI-LSLR-Merged.xlsx", "output path for the merged workbook")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger, *dsmiPath, *lslrPath, *out); err != nil {
		logger.Error("merge failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, dsmiPath, lslrPath, out string) error {
	dsmi, err := readSheet(dsmiPath, "")
	if err != nil {
		return err
	}
	logger.Info("loaded DSMI", "rows", len(dsmi.rows))

	lslr, err := readSheet(lslrPath, "LSLR")
	if err != nil {
		return err
	}
	logger.Info("loaded LSLR", "rows", len(lslr.rows))

	merged := merge(dsmi, lslr)
	logger.Info("merged on "+keyColumn, "rows", len(merged.rows), "columns", len(merged.header))

	if err := writeSheet(out, merged); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("merged workbook written", "path", out)
	return nil
}

// sheet is one loaded spreadsheet: an ordered header plus rows keyed by
// header name.
type sheet struct {
	header []string
	rows   []map[string]string
	// keys holds the trimmed join key per row, "" when absent.
	keys []string
}

// readSheet loads the first worksheet. A non-empty prefix renames the
// "Supply Name" column so it survives the merge without colliding; the sheet
// whose name is authoritative is read with an empty prefix.
func readSheet(path, prefix string) (sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return sheet{}, fmt.Errorf("open %s: %w (run the data fetch first)", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return sheet{}, fmt.Errorf("%s: workbook has no sheets", path)
	}
	table, err := f.GetRows(sheets[0])
	if err != nil {
		return sheet{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(table) <= headerRow {
		return sheet{}, fmt.Errorf("%s: no header row at index %d", path, headerRow)
	}

	var s sheet
	hasKey := false
	for _, h := range table[headerRow] {
		h = strings.TrimSpace(h)
		if h == domain.ColSupplyName && prefix != "" {
			h = prefix + " " + domain.ColSupplyName
		}
		if h == keyColumn {
			hasKey = true
		}
		s.header = append(s.header, h)
	}
	if !hasKey {
		return sheet{}, fmt.Errorf("%s: missing %q column", path, keyColumn)
	}

	for _, cells := range table[headerRow+1:] {
		row := make(map[string]string, len(s.header))
		for i, h := range s.header {
			if h == "" || i >= len(cells) {
				continue
			}
			row[h] = cells[i]
		}
		s.rows = append(s.rows, row)
		s.keys = append(s.keys, strings.TrimSpace(row[keyColumn]))
	}
	return s, nil
}

// merge outer-joins two sheets on the key column: every left row in order,
// joined with its right match when one exists, then every unmatched right row.
func merge(left, right sheet) sheet {
	rightByKey := make(map[string]int, len(right.rows))
	for i, key := range right.keys {
		if key == "" {
			continue
		}
		if _, dup := rightByKey[key]; !dup {
			rightByKey[key] = i
		}
	}

	out := sheet{header: mergedHeader(left, right)}
	matched := make(map[int]bool, len(right.rows))

	for i, lrow := range left.rows {
		row := make(map[string]string, len(out.header))
		for k, v := range lrow {
			row[k] = v
		}
		row[domain.ColPWSID] = left.keys[i]
		if j, ok := rightByKey[left.keys[i]]; ok && left.keys[i] != "" {
			matched[j] = true
			for k, v := range right.rows[j] {
				if k == keyColumn {
					continue
				}
				row[k] = v
			}
		}
		out.rows = append(out.rows, row)
	}

	for j, rrow := range right.rows {
		if matched[j] {
			continue
		}
		row := make(map[string]string, len(rrow))
		for k, v := range rrow {
			row[k] = v
		}
		row[domain.ColPWSID] = right.keys[j]
		if row[domain.ColSupplyName] == "" {
			row[domain.ColSupplyName] = row[lslrNameColumn]
		}
		out.rows = append(out.rows, row)
	}

	return out
}

// mergedHeader is the PWSID key first, then the remaining left and right
// columns in their original order. The source key columns do not reappear.
func mergedHeader(left, right sheet) []string {
	header := []string{domain.ColPWSID}
	seen := map[string]bool{keyColumn: true, domain.ColPWSID: true, "": true}
	for _, cols := range [][]string{left.header, right.header} {
		for _, h := range cols {
			if seen[h] {
				continue
			}
			seen[h] = true
			header = append(header, h)
		}
	}
	return header
}

func writeSheet(path string, s sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	cells := make([]any, len(s.header))
	for i, h := range s.header {
		cells[i] = h
	}
	if err := f.SetSheetRow("Sheet1", "A1", &cells); err != nil {
		return err
	}

	for i, row := range s.rows {
		cells := make([]any, len(s.header))
		for j, h := range s.header {
			cells[j] = row[h]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Sheet1", cell, &cells); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
