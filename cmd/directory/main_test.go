package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/planetdetroit/leadlines/internal/directory"
)

func TestBuildView(t *testing.T) {
	tests := []struct {
		name        string
		search      string
		sortField   string
		asc         bool
		exceedances bool
		want        directory.View
	}{
		{
			name: "defaults",
			want: directory.View{SortField: directory.SortLeadLines, SortDir: directory.Descending},
		},
		{
			name:      "search and ascending name sort",
			search:    "detroit",
			sortField: "name",
			asc:       true,
			want: directory.View{
				Search:    "detroit",
				SortField: directory.SortName,
				SortDir:   directory.Ascending,
			},
		},
		{
			name:        "exceedances filter",
			sortField:   "percentReplaced",
			exceedances: true,
			want: directory.View{
				SortField:       directory.SortPercentReplaced,
				SortDir:         directory.Descending,
				ExceedancesOnly: true,
			},
		},
		{
			name:      "unknown sort field falls back to lead lines",
			sortField: "bogus",
			want:      directory.View{SortField: directory.SortLeadLines, SortDir: directory.Descending},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildView(tt.search, tt.sortField, tt.asc, tt.exceedances)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short string untouched", "Alpena", 10, "Alpena"},
		{"exact length untouched", "Alpena", 6, "Alpena"},
		{"long string gets ellipsis", "Grand Rapids Water System", 12, "Grand Rapid…"},
		{"multi-byte rune at the boundary survives", "Sault Ste. Marié Water", 17, "Sault Ste. Marié…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
