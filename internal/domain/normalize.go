package domain

import (
	"math"
	"strconv"
	"strings"
)

// cellScrubber strips the decoration spreadsheets add to numeric cells.
// Whitespace is removed separately so tabs and non-breaking padding from
// copy-pasted cells are covered too.
var cellScrubber = strings.NewReplacer(",", "", `"`, "", "'", "")

// Clean parses a raw numeric cell into a float64. Empty cells and the "-"
// placeholder mean zero, as does anything that fails to parse after stripping
// commas, quotes, and whitespace. This rule applies identically to every
// numeric column.
func Clean(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return 0
	}

	value = cellScrubber.Replace(value)
	value = strings.Join(strings.Fields(value), "")

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseCoordinate parses an optional coordinate cell. Unlike Clean, failure
// yields nil rather than zero: zero is a valid-looking but wrong coordinate.
func parseCoordinate(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NormalizeRow converts one raw source row into a WaterSystemRecord. It
// returns ok=false only when the row has no PWSID after trimming; every other
// malformed field degrades to zero (counts) or absent (coordinates) rather
// than failing the conversion.
func NormalizeRow(row RawRow) (WaterSystemRecord, bool) {
	pwsid := strings.TrimSpace(row[ColPWSID])
	if pwsid == "" {
		return WaterSystemRecord{}, false
	}

	lead := Clean(row[ColLead])
	gpcl := Clean(row[ColGPCL])
	unknown := Clean(row[ColUnknown])
	replaced := Clean(row[ColReplaced])
	total := lead + gpcl + unknown

	return WaterSystemRecord{
		PWSID:           pwsid,
		Name:            strings.TrimSpace(row[ColSupplyName]),
		Population:      Clean(row[ColPopulation]),
		LeadLines:       lead,
		GPCL:            gpcl,
		Unknown:         unknown,
		TotalToReplace:  total,
		TotalReplaced:   replaced,
		PercentReplaced: percentReplaced(replaced, total),
		Exceedance:      strings.TrimSpace(row[ColExceedance]),
		Latitude:        parseCoordinate(row[ColLatitude]),
		Longitude:       parseCoordinate(row[ColLongitude]),
		EPALink:         strings.TrimSpace(row[ColEPALink]),
	}, true
}

// NormalizeRows converts raw rows in order, dropping rows without a PWSID.
// It reports how many rows were dropped.
func NormalizeRows(rows []RawRow) ([]WaterSystemRecord, int) {
	records := make([]WaterSystemRecord, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		rec, ok := NormalizeRow(row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

// percentReplaced computes the replacement percentage from the cleaned counts,
// capped at 100. Supplies with nothing to replace report 0. The pre-computed
// "% Replaced to Date" column some exports carry is deliberately ignored; the
// computed value stays consistent with the counts it is shown next to.
func percentReplaced(replaced, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Min(100, replaced/total*100)
}
