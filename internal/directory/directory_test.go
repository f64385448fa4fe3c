package directory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetdetroit/leadlines/internal/directory"
	"github.com/planetdetroit/leadlines/internal/domain"
)

// testRecords is a small directory in a deliberately scrambled order.
func testRecords() []domain.WaterSystemRecord {
	return []domain.WaterSystemRecord{
		{PWSID: "MI0000300", Name: "Detroit Water System", Population: 639111, LeadLines: 65000, TotalToReplace: 100000, PercentReplaced: 25, Exceedance: "8/1/2021"},
		{PWSID: "MI0001000", Name: "Alpena", Population: 10000, LeadLines: 120, TotalToReplace: 150, PercentReplaced: 80, Exceedance: "-"},
		{PWSID: "MI0002460", Name: "Grand Rapids", Population: 198000, LeadLines: 14000, TotalToReplace: 18000, PercentReplaced: 55, Exceedance: ""},
		{PWSID: "MI0004420", Name: "No Lines Township", Population: 500, LeadLines: 0, TotalToReplace: 0, PercentReplaced: 0, Exceedance: "9/9/2019"},
		{PWSID: "MI0005555", Name: "Benton Harbor", Population: 9600, LeadLines: 4000, TotalToReplace: 4500, PercentReplaced: 99, Exceedance: "10/22/2021"},
	}
}

func pwsids(records []domain.WaterSystemRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.PWSID
	}
	return out
}

func TestVisibleRecords_Search(t *testing.T) {
	records := testRecords()

	t.Run("case-insensitive name match", func(t *testing.T) {
		view := directory.DefaultView()
		view.Search = "detroit"
		got := directory.VisibleRecords(records, view)
		require.Len(t, got, 1)
		assert.Equal(t, "Detroit Water System", got[0].Name)
	})

	t.Run("matches PWSID substring", func(t *testing.T) {
		view := directory.DefaultView()
		view.Search = "mi0002"
		got := directory.VisibleRecords(records, view)
		require.Len(t, got, 1)
		assert.Equal(t, "Grand Rapids", got[0].Name)
	})

	t.Run("empty term matches everything displayable", func(t *testing.T) {
		got := directory.VisibleRecords(records, directory.DefaultView())
		// Everything except the zero-total township.
		assert.Len(t, got, 4)
	})

	t.Run("no match", func(t *testing.T) {
		view := directory.DefaultView()
		view.Search = "flint"
		assert.Empty(t, directory.VisibleRecords(records, view))
	})
}

func TestVisibleRecords_ExceedancesOnly(t *testing.T) {
	view := directory.DefaultView()
	view.ExceedancesOnly = true

	got := directory.VisibleRecords(testRecords(), view)

	// "-" (Alpena) and "" (Grand Rapids) are excluded; the township has an
	// exceedance but no lines to replace, so it never displays.
	if diff := cmp.Diff([]string{"MI0000300", "MI0005555"}, pwsids(got)); diff != "" {
		t.Fatalf("visible set mismatch (-want +got):\n%s", diff)
	}
}

func TestVisibleRecords_DropsZeroTotal(t *testing.T) {
	records := testRecords()

	views := []directory.View{
		directory.DefaultView(),
		{Search: "township", SortField: directory.SortName},
		{ExceedancesOnly: true, SortField: directory.SortPopulation},
		{Search: "no lines", ExceedancesOnly: true, SortField: directory.SortPercentReplaced, SortDir: directory.Ascending},
	}

	for _, view := range views {
		for _, r := range directory.VisibleRecords(records, view) {
			assert.Greater(t, r.TotalToReplace, 0.0, "view %+v leaked a zero-total record", view)
		}
	}
}

func TestVisibleRecords_Sorting(t *testing.T) {
	records := testRecords()

	tests := []struct {
		name     string
		field    directory.SortField
		dir      directory.SortDir
		expected []string
	}{
		{"lead lines descending", directory.SortLeadLines, directory.Descending,
			[]string{"MI0000300", "MI0002460", "MI0005555", "MI0001000"}},
		{"lead lines ascending", directory.SortLeadLines, directory.Ascending,
			[]string{"MI0001000", "MI0005555", "MI0002460", "MI0000300"}},
		{"name ascending", directory.SortName, directory.Ascending,
			[]string{"MI0001000", "MI0005555", "MI0000300", "MI0002460"}},
		{"population descending", directory.SortPopulation, directory.Descending,
			[]string{"MI0000300", "MI0002460", "MI0001000", "MI0005555"}},
		{"percent replaced descending", directory.SortPercentReplaced, directory.Descending,
			[]string{"MI0005555", "MI0001000", "MI0002460", "MI0000300"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := directory.View{SortField: tt.field, SortDir: tt.dir}
			got := pwsids(directory.VisibleRecords(records, view))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVisibleRecords_StableTieBreak(t *testing.T) {
	// Three systems with identical lead line counts must keep input order in
	// both directions.
	records := []domain.WaterSystemRecord{
		{PWSID: "MI0000001", Name: "First", LeadLines: 10, TotalToReplace: 10},
		{PWSID: "MI0000002", Name: "Second", LeadLines: 10, TotalToReplace: 10},
		{PWSID: "MI0000003", Name: "Third", LeadLines: 10, TotalToReplace: 10},
	}

	for _, dir := range []directory.SortDir{directory.Descending, directory.Ascending} {
		view := directory.View{SortField: directory.SortLeadLines, SortDir: dir}
		got := pwsids(directory.VisibleRecords(records, view))
		if diff := cmp.Diff([]string{"MI0000001", "MI0000002", "MI0000003"}, got); diff != "" {
			t.Fatalf("dir %v: tie order not preserved (-want +got):\n%s", dir, diff)
		}
	}
}

func TestVisibleRecords_DoesNotMutateInput(t *testing.T) {
	records := testRecords()
	first := records[0].PWSID

	view := directory.View{SortField: directory.SortName, SortDir: directory.Ascending}
	directory.VisibleRecords(records, view)

	assert.Equal(t, first, records[0].PWSID)
}

func TestToggleSort(t *testing.T) {
	t.Run("same field flips direction", func(t *testing.T) {
		view := directory.View{SortField: directory.SortName, SortDir: directory.Descending}

		view = directory.ToggleSort(view, directory.SortName)
		assert.Equal(t, directory.SortName, view.SortField)
		assert.Equal(t, directory.Ascending, view.SortDir)

		view = directory.ToggleSort(view, directory.SortName)
		assert.Equal(t, directory.Descending, view.SortDir)
	})

	t.Run("new field resets to descending", func(t *testing.T) {
		view := directory.View{SortField: directory.SortName, SortDir: directory.Ascending}

		view = directory.ToggleSort(view, directory.SortPopulation)
		assert.Equal(t, directory.SortPopulation, view.SortField)
		assert.Equal(t, directory.Descending, view.SortDir)
	})
}

func TestParseSortField(t *testing.T) {
	assert.Equal(t, directory.SortName, directory.ParseSortField("name"))
	assert.Equal(t, directory.SortPercentReplaced, directory.ParseSortField("percentReplaced"))
	assert.Equal(t, directory.SortLeadLines, directory.ParseSortField("bogus"))
}
