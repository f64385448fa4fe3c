package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected float64
	}{
		{"empty", "", 0},
		{"dash placeholder", "-", 0},
		{"dash with trailing whitespace", "-   ", 0},
		{"plain integer", "42", 42},
		{"thousands separator", "1,234", 1234},
		{"millions", "1,234,567", 1234567},
		{"quoted", `"1,234"`, 1234},
		{"single quoted", "'250'", 250},
		{"padded", "  42  ", 42},
		{"internal whitespace", "1 234", 1234},
		{"decimal", "3.5", 3.5},
		{"not a number", "abc", 0},
		{"trailing junk", "12abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.value))
		})
	}
}

func TestNormalizeRow(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		row := RawRow{
			ColPWSID:      " MI0000300 ",
			ColSupplyName: " Detroit Water System ",
			ColPopulation: "639,111",
			ColLead:       "65,000",
			ColGPCL:       "15,000",
			ColUnknown:    "20,000",
			ColReplaced:   "25,000",
			ColExceedance: "8/1/2021",
			ColLatitude:   "42.3314",
			ColLongitude:  "-83.0458",
			ColEPALink:    "https://example.org/MI0000300",
		}

		rec, ok := NormalizeRow(row)
		require.True(t, ok)
		assert.Equal(t, "MI0000300", rec.PWSID)
		assert.Equal(t, "Detroit Water System", rec.Name)
		assert.Equal(t, 639111.0, rec.Population)
		assert.Equal(t, 65000.0, rec.LeadLines)
		assert.Equal(t, 15000.0, rec.GPCL)
		assert.Equal(t, 20000.0, rec.Unknown)
		assert.Equal(t, 100000.0, rec.TotalToReplace)
		assert.Equal(t, 25000.0, rec.TotalReplaced)
		assert.Equal(t, 25.0, rec.PercentReplaced)
		assert.Equal(t, "8/1/2021", rec.Exceedance)
		require.True(t, rec.HasCoordinates())
		assert.Equal(t, 42.3314, *rec.Latitude)
		assert.Equal(t, -83.0458, *rec.Longitude)
		assert.Equal(t, "https://example.org/MI0000300", rec.EPALink)
	})

	t.Run("missing PWSID drops row", func(t *testing.T) {
		_, ok := NormalizeRow(RawRow{ColSupplyName: "Orphan Supply", ColLead: "10"})
		assert.False(t, ok)
	})

	t.Run("whitespace PWSID drops row", func(t *testing.T) {
		_, ok := NormalizeRow(RawRow{ColPWSID: "   "})
		assert.False(t, ok)
	})

	t.Run("dash cells become zero", func(t *testing.T) {
		rec, ok := NormalizeRow(RawRow{
			ColPWSID:      "MI0001000",
			ColSupplyName: "Alpena",
			ColLead:       "-",
			ColGPCL:       "-",
			ColUnknown:    "-",
			ColReplaced:   "-",
		})
		require.True(t, ok)
		assert.Zero(t, rec.LeadLines)
		assert.Zero(t, rec.TotalToReplace)
		assert.Zero(t, rec.PercentReplaced)
	})

	t.Run("total is always the sum of the three categories", func(t *testing.T) {
		rec, ok := NormalizeRow(RawRow{
			ColPWSID:   "MI0001234",
			ColLead:    "3",
			ColGPCL:    "junk",
			ColUnknown: "7",
		})
		require.True(t, ok)
		assert.Equal(t, 10.0, rec.TotalToReplace)
	})

	t.Run("percent capped at 100", func(t *testing.T) {
		rec, ok := NormalizeRow(RawRow{
			ColPWSID:    "MI0002000",
			ColLead:     "100",
			ColReplaced: "250",
		})
		require.True(t, ok)
		assert.Equal(t, 100.0, rec.PercentReplaced)
	})

	t.Run("pre-computed percent column is ignored", func(t *testing.T) {
		rec, ok := NormalizeRow(RawRow{
			ColPWSID:           "MI0003000",
			ColLead:            "200",
			ColReplaced:        "50",
			ColPercentReplaced: "99",
		})
		require.True(t, ok)
		assert.Equal(t, 25.0, rec.PercentReplaced)
	})

	t.Run("unparseable coordinates are absent, not zero", func(t *testing.T) {
		rec, ok := NormalizeRow(RawRow{
			ColPWSID:     "MI0004000",
			ColLatitude:  "n/a",
			ColLongitude: "",
		})
		require.True(t, ok)
		assert.Nil(t, rec.Latitude)
		assert.Nil(t, rec.Longitude)
		assert.False(t, rec.HasCoordinates())
	})
}

func TestNormalizeRows(t *testing.T) {
	rows := []RawRow{
		{ColPWSID: "MI0000300", ColLead: "10"},
		{ColPWSID: "", ColSupplyName: "No ID"},
		{ColPWSID: "MI0001000", ColLead: "5"},
	}

	records, dropped := NormalizeRows(rows)
	require.Len(t, records, 2)
	assert.Equal(t, 1, dropped)
	// Input order preserved.
	assert.Equal(t, "MI0000300", records[0].PWSID)
	assert.Equal(t, "MI0001000", records[1].PWSID)
}

func TestHasExceedance(t *testing.T) {
	tests := []struct {
		name       string
		exceedance string
		expected   bool
	}{
		{"empty", "", false},
		{"dash placeholder", "-", false},
		{"date", "8/1/2021", true},
		{"free text", "Multiple", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := WaterSystemRecord{Exceedance: tt.exceedance}
			assert.Equal(t, tt.expected, rec.HasExceedance())
		})
	}
}

func TestNewArtifact(t *testing.T) {
	frozen := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	records := []WaterSystemRecord{{PWSID: "MI0000300"}, {PWSID: "MI0001000"}}
	artifact := NewArtifact("DSMI-LSLR-Merged.xlsx", records)

	assert.Equal(t, frozen, artifact.GeneratedAt)
	assert.Equal(t, "DSMI-LSLR-Merged.xlsx", artifact.Source)
	require.Len(t, artifact.Records, 2)
	assert.Equal(t, "MI0000300", artifact.Records[0].PWSID)
}
