// Command directory renders the water system directory from a generated
// artifact: search, exceedance filtering, and sortable columns, with
// replacement progress colored by tier.
//
// Usage:
//
//	go run ./cmd/directory -artifact data/water-systems.json \
//	  -search detroit -sort percentReplaced -asc
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planetdetroit/leadlines/internal/artifact"
	"github.com/planetdetroit/leadlines/internal/directory"
	"github.com/planetdetroit/leadlines/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func main() {
	artifactPath := flag.String("artifact", "data/water-systems.json", "generated JSON artifact")
	search := flag.String("search", "", "filter by system name or PWSID")
	sortField := flag.String("sort", string(directory.SortLeadLines), "sort field: name, leadLines, population, percentReplaced")
	asc := flag.Bool("asc", false, "sort ascending instead of descending")
	exceedances := flag.Bool("exceedances", false, "show only systems with an action level exceedance")
	limit := flag.Int("limit", 0, "show at most N rows (0 = all)")
	flag.Parse()

	a, err := artifact.Load(*artifactPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load artifact: %v\n", err)
		os.Exit(1)
	}

	view := buildView(*search, *sortField, *asc, *exceedances)

	visible := directory.VisibleRecords(a.Records, view)
	if *limit > 0 && len(visible) > *limit {
		visible = visible[:*limit]
	}

	render(os.Stdout, a, visible, view)
}

// buildView maps the command-line flags onto a directory view.
func buildView(search, sortField string, asc, exceedances bool) directory.View {
	view := directory.View{
		Search:          search,
		ExceedancesOnly: exceedances,
		SortField:       directory.ParseSortField(sortField),
		SortDir:         directory.Descending,
	}
	if asc {
		view.SortDir = directory.Ascending
	}
	return view
}

func render(w *os.File, a domain.Artifact, records []domain.WaterSystemRecord, view directory.View) {
	fmt.Fprintln(w, headerStyle.Render("Michigan Lead Service Line Directory"))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("generated %s from %s",
		a.GeneratedAt.Format("2006-01-02"), a.Source)))
	fmt.Fprintln(w)

	if len(records) == 0 {
		fmt.Fprintln(w, "No water systems match the current filters.")
		return
	}

	widths := []int{42, 12, 12, 14, 12, 10}
	cols := []string{"Water System", "PWSID", "Lead Lines", "Total Replaced", "% Replaced", "Tier"}
	for i, c := range cols {
		cols[i] = headerStyle.Width(widths[i]).Render(sortMarker(c, view))
	}
	fmt.Fprintln(w, strings.Join(cols, " "))

	for _, rec := range records {
		tier := domain.ProgressTier(rec.PercentReplaced)
		tierStyle := directory.TierStyle(tier)

		cells := []string{
			lipgloss.NewStyle().Width(widths[0]).Render(truncate(rec.Name, widths[0])),
			lipgloss.NewStyle().Width(widths[1]).Render(rec.PWSID),
			lipgloss.NewStyle().Width(widths[2]).Render(fmt.Sprintf("%.0f", rec.LeadLines)),
			lipgloss.NewStyle().Width(widths[3]).Render(fmt.Sprintf("%.0f", rec.TotalReplaced)),
			tierStyle.Width(widths[4]).Render(fmt.Sprintf("%.1f%%", rec.PercentReplaced)),
			tierStyle.Width(widths[5]).Render(tier.String()),
		}
		fmt.Fprintln(w, strings.Join(cells, " "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%d of %d water systems shown", len(records), len(a.Records))))
}

// sortMarker appends the active sort direction to the column header.
func sortMarker(col string, view directory.View) string {
	active := map[directory.SortField]string{
		directory.SortName:            "Water System",
		directory.SortLeadLines:       "Lead Lines",
		directory.SortPopulation:      "Population",
		directory.SortPercentReplaced: "% Replaced",
	}[view.SortField]
	if col != active {
		return col
	}
	if view.SortDir == directory.Ascending {
		return col + " ^"
	}
	return col + " v"
}

// truncate shortens s to at most max cells, counting runes so a multi-byte
// name is never split mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
