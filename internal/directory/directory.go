// Package directory is the read-only query layer over the generated record
// set: filtering, sorting, and searching for the water system directory view.
//
// All operations are pure functions over an immutable record slice plus an
// explicit View value; there is no ambient state and no I/O.
package directory

import (
	"sort"
	"strings"

	"github.com/planetdetroit/leadlines/internal/domain"
)

// SortField names a sortable directory column.
type SortField string

const (
	SortName            SortField = "name"
	SortLeadLines       SortField = "leadLines"
	SortPopulation      SortField = "population"
	SortPercentReplaced SortField = "percentReplaced"
)

// SortDir is the sort direction.
type SortDir int

const (
	Descending SortDir = iota
	Ascending
)

// View holds the transient display parameters. The zero value is not the
// default view; use DefaultView.
type View struct {
	Search          string
	SortField       SortField
	SortDir         SortDir
	ExceedancesOnly bool
}

// DefaultView is the directory's initial state: every system with lines to
// replace, worst-affected first.
func DefaultView() View {
	return View{SortField: SortLeadLines, SortDir: Descending}
}

// VisibleRecords returns the ordered display set for a view. The pipeline, in
// order: case-insensitive substring search on name or PWSID, the optional
// exceedances-only filter, an unconditional drop of systems with nothing to
// replace, and a stable sort on the selected field (ties keep input order).
// The input slice is never modified.
func VisibleRecords(records []domain.WaterSystemRecord, view View) []domain.WaterSystemRecord {
	term := strings.ToLower(view.Search)

	out := make([]domain.WaterSystemRecord, 0, len(records))
	for _, r := range records {
		if term != "" && !matchesSearch(r, term) {
			continue
		}
		if view.ExceedancesOnly && !r.HasExceedance() {
			continue
		}
		if r.TotalToReplace <= 0 {
			continue
		}
		out = append(out, r)
	}

	sortRecords(out, view.SortField, view.SortDir)
	return out
}

// ToggleSort returns the view after a click on a column header: the active
// field flips direction, a new field takes over with direction reset to
// descending. This is the only operation that changes sort state.
func ToggleSort(view View, field SortField) View {
	if view.SortField == field {
		if view.SortDir == Descending {
			view.SortDir = Ascending
		} else {
			view.SortDir = Descending
		}
		return view
	}
	view.SortField = field
	view.SortDir = Descending
	return view
}

func matchesSearch(r domain.WaterSystemRecord, term string) bool {
	return strings.Contains(strings.ToLower(r.Name), term) ||
		strings.Contains(strings.ToLower(r.PWSID), term)
}

func sortRecords(records []domain.WaterSystemRecord, field SortField, dir SortDir) {
	less := lessFunc(field)
	if dir == Descending {
		asc := less
		// Swapping the arguments reverses the relation while leaving equal
		// keys equal, so the stable sort still preserves input order on ties.
		less = func(a, b domain.WaterSystemRecord) bool { return asc(b, a) }
	}
	sort.SliceStable(records, func(i, j int) bool { return less(records[i], records[j]) })
}

func lessFunc(field SortField) func(a, b domain.WaterSystemRecord) bool {
	switch field {
	case SortName:
		return func(a, b domain.WaterSystemRecord) bool { return a.Name < b.Name }
	case SortPopulation:
		return func(a, b domain.WaterSystemRecord) bool { return a.Population < b.Population }
	case SortPercentReplaced:
		return func(a, b domain.WaterSystemRecord) bool { return a.PercentReplaced < b.PercentReplaced }
	default:
		return func(a, b domain.WaterSystemRecord) bool { return a.LeadLines < b.LeadLines }
	}
}

// ParseSortField maps a user-supplied field name onto a SortField, falling
// back to the default column for unrecognized input.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortName, SortLeadLines, SortPopulation, SortPercentReplaced:
		return SortField(s)
	default:
		return SortLeadLines
	}
}
