// Package domain models Michigan community water supply lead service line data.
//
// # Data Source
//
// Records originate from two EGLE (Michigan Department of Environment, Great
// Lakes, and Energy) spreadsheets published under the Lead and Copper Rule:
// the DSMI service line materials inventory and the LSLR replacement progress
// report. The merge command joins the two on PWSID; the convert command
// normalizes the merged export into the static JSON artifact the directory
// view consumes.
//
// # Source Data Conventions
//
// Identifiers:
//
//	PWSID is the Public Water System Identifier, unique per utility.
//	Rows without one identify nothing and are dropped during normalization;
//	it is the only condition that rejects a row.
//
// Numeric cells:
//
//	Counts arrive as free-text spreadsheet cells: thousands separators
//	("1,234"), stray quotes, padding, and the "-" placeholder the exports use
//	for "no data". [Clean] maps all of those to a float, degrading to 0 when
//	nothing parseable remains. The same rule applies to every numeric column
//	so a malformed cell never fails a conversion.
//
// Service line categories (the CDSMI inventory):
//
//	"Lead in CDSMI"     known lead service lines
//	"GPCL in CDSMI"     galvanized pipe formerly connected to lead, which the
//	                    rule requires to be replaced alongside true lead lines
//	"Unknown in CDSMI"  lines of unverified material, treated as
//	                    replacement-requiring until verified
//
//	totalToReplace is always the sum of the three. percentReplaced is always
//	computed from totalReplaced/totalToReplace and capped at 100; some export
//	vintages carry a pre-computed "% Replaced to Date" column, but the
//	computed value is the one that stays consistent with the counts it is
//	displayed next to.
//
// Exceedances:
//
//	"Most Recent Lead Action Level Exceedance" is free text, usually a date.
//	An empty cell or "-" means no exceedance on record; anything else means
//	the supply has exceeded the lead action level.
//
// Coordinates:
//
//	Latitude/Longitude are optional and only feed the map view. A value that
//	fails to parse becomes absent (nil), never 0, because (0, 0) is a
//	valid-looking coordinate in the Gulf of Guinea rather than in Michigan.
//
// # Progress Tiers
//
// Replacement percentages map to five ordered display tiers with fixed,
// inclusive lower bounds:
//
//	>= 75  Excellent
//	>= 50  Good
//	>= 25  Fair
//	>= 10  Poor
//	else   Critical
//
// The thresholds and the five-way partition are a user-facing contract: the
// same tier drives the color coding in every view. See [ProgressTier].
package domain
