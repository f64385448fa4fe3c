package domain

import "time"

// Recognized column headers in the merged DSMI/LSLR export, matched after
// trimming whitespace from the header row.
const (
	ColPWSID      = "PWSID"
	ColSupplyName = "Supply Name"
	ColPopulation = "Population Served (2025)"
	ColLead       = "Lead in CDSMI"
	ColGPCL       = "GPCL in CDSMI"
	ColUnknown    = "Unknown in CDSMI"
	ColReplaced   = "Grand Total of Lead Service Lines Replaced"
	ColExceedance = "Most Recent Lead Action Level Exceedance"

	// Optional columns.
	ColLatitude        = "Latitude"
	ColLongitude       = "Longitude"
	ColEPALink         = "EPA_Link"
	ColPercentReplaced = "% Replaced to Date"
)

// RequiredColumns lists the headers a source export must carry. A missing
// required column is a schema error at the ingestion boundary, not a per-row
// degrade.
func RequiredColumns() []string {
	return []string{
		ColPWSID,
		ColSupplyName,
		ColPopulation,
		ColLead,
		ColGPCL,
		ColUnknown,
		ColReplaced,
		ColExceedance,
	}
}

// RawRow is one source row keyed by trimmed column header. Values are the raw
// cell text before any cleaning.
type RawRow map[string]string

// WaterSystemRecord is the normalized form of one water supply, as emitted to
// the JSON artifact. Records are immutable once produced.
//
// The validate tags mirror the record invariants and are checked by the
// validate command, not during normalization.
type WaterSystemRecord struct {
	PWSID           string   `json:"pwsid" validate:"required"`
	Name            string   `json:"name"`
	Population      float64  `json:"population" validate:"gte=0"`
	LeadLines       float64  `json:"leadLines" validate:"gte=0"`
	GPCL            float64  `json:"gpcl" validate:"gte=0"`
	Unknown         float64  `json:"unknown" validate:"gte=0"`
	TotalToReplace  float64  `json:"totalToReplace" validate:"gte=0"`
	TotalReplaced   float64  `json:"totalReplaced" validate:"gte=0"`
	PercentReplaced float64  `json:"percentReplaced" validate:"gte=0,lte=100"`
	Exceedance      string   `json:"exceedance"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	EPALink         string   `json:"epaLink,omitempty"`
}

// HasExceedance reports whether the supply has a lead action level exceedance
// on record. Empty and the "-" placeholder both mean none.
func (r WaterSystemRecord) HasExceedance() bool {
	return r.Exceedance != "" && r.Exceedance != "-"
}

// HasCoordinates reports whether both coordinates are present.
func (r WaterSystemRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Artifact is the static data file the directory view loads. It is
// regenerated wholesale on each conversion; there is no versioning or
// migration scheme.
type Artifact struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Source      string              `json:"source,omitempty"`
	Records     []WaterSystemRecord `json:"records"`
}

// NewArtifact stamps a record set with the current clock time. Record order is
// preserved as given.
func NewArtifact(source string, records []WaterSystemRecord) Artifact {
	return Artifact{
		GeneratedAt: clock.Now().UTC(),
		Source:      source,
		Records:     records,
	}
}
