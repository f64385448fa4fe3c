// Command validate performs end-to-end integrity checks on a generated
// artifact against its source export: schema presence, record invariants,
// source-to-artifact cross-reference, and display-set consistency.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -source data/DSMI-LSLR-Merged.xlsx \
//	  -artifact data/water-systems.json
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/planetdetroit/leadlines/internal/artifact"
	"github.com/planetdetroit/leadlines/internal/directory"
	"github.com/planetdetroit/leadlines/internal/domain"
	"github.com/planetdetroit/leadlines/internal/ingest"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	source := flag.String("source", "", "merged DSMI/LSLR export the artifact was generated from")
	artifactPath := flag.String("artifact", "", "generated JSON artifact to validate")
	flag.Parse()

	if *source == "" || *artifactPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*source, *artifactPath); code != 0 {
		os.Exit(code)
	}
}

func run(sourcePath, artifactPath string) int {
	fmt.Println("=== Lead Service Line Data Integrity Validation ===")
	fmt.Println()

	rows, err := ingest.ForPath(sourcePath).ReadRows(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load source: %v\n", err)
		return 1
	}

	a, err := artifact.Load(artifactPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load artifact: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSourceAccounting(rows, a.Records),
		validateRecordInvariants(a.Records),
		validateCrossReference(rows, a.Records),
		validateDisplaySet(a.Records),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d source, %d artifact\n", len(rows), len(a.Records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Source Accounting ──
// The artifact must hold exactly the keyed source rows: output length equals
// input length minus rows without a PWSID.

func validateSourceAccounting(rows []domain.RawRow, records []domain.WaterSystemRecord) *phase {
	p := &phase{name: "Phase 1: Source Accounting"}

	keyed := 0
	for _, row := range rows {
		if strings.TrimSpace(row[domain.ColPWSID]) != "" {
			keyed++
		}
	}

	if len(records) != keyed {
		p.errorf("expected %d records (source rows with PWSID), artifact has %d", keyed, len(records))
	}
	return p
}

// ── Phase 2: Record Invariants ──
// Struct-tag constraints plus the derived-field and uniqueness invariants.

func validateRecordInvariants(records []domain.WaterSystemRecord) *phase {
	p := &phase{name: "Phase 2: Record Invariants"}
	check := validator.New()
	seen := map[string]int{}

	for i, rec := range records {
		if err := check.Struct(rec); err != nil {
			p.errorf("record %d (%s): %v", i, rec.PWSID, err)
		}

		sum := rec.LeadLines + rec.GPCL + rec.Unknown
		if !floatEq(rec.TotalToReplace, sum) {
			p.errorf("record %d (%s): totalToReplace=%g, lead+gpcl+unknown=%g", i, rec.PWSID, rec.TotalToReplace, sum)
		}

		if rec.TotalToReplace > 0 {
			expected := math.Min(100, rec.TotalReplaced/rec.TotalToReplace*100)
			if !floatEq(rec.PercentReplaced, expected) {
				p.errorf("record %d (%s): percentReplaced=%g, expected %g", i, rec.PWSID, rec.PercentReplaced, expected)
			}
		} else if rec.PercentReplaced != 0 {
			p.errorf("record %d (%s): percentReplaced=%g with nothing to replace", i, rec.PWSID, rec.PercentReplaced)
		}

		if prev, dup := seen[rec.PWSID]; dup {
			p.errorf("record %d: duplicate PWSID %s (first at %d)", i, rec.PWSID, prev)
		} else {
			seen[rec.PWSID] = i
		}

		// A lone coordinate is worse than none.
		if (rec.Latitude == nil) != (rec.Longitude == nil) {
			p.errorf("record %d (%s): only one coordinate present", i, rec.PWSID)
		}
	}
	return p
}

// ── Phase 3: Cross-Reference ──
// Re-runs normalization on every keyed source row and compares with the
// artifact record, in order.

func validateCrossReference(rows []domain.RawRow, records []domain.WaterSystemRecord) *phase {
	p := &phase{name: "Phase 3: Cross-Reference (re-normalize)"}

	expected, _ := domain.NormalizeRows(rows)
	if len(expected) != len(records) {
		p.errorf("re-normalization yields %d records, artifact has %d", len(expected), len(records))
		return p
	}

	for i := range expected {
		compareRecords(p, i, expected[i], records[i])
	}
	return p
}

func compareRecords(p *phase, i int, want, got domain.WaterSystemRecord) {
	if want.PWSID != got.PWSID {
		p.errorf("record %d: pwsid: expected %q, got %q", i, want.PWSID, got.PWSID)
		return
	}
	if want.Name != got.Name {
		p.errorf("record %d (%s): name: expected %q, got %q", i, want.PWSID, want.Name, got.Name)
	}
	if !floatEq(want.Population, got.Population) {
		p.errorf("record %d (%s): population: expected %g, got %g", i, want.PWSID, want.Population, got.Population)
	}
	if !floatEq(want.LeadLines, got.LeadLines) {
		p.errorf("record %d (%s): leadLines: expected %g, got %g", i, want.PWSID, want.LeadLines, got.LeadLines)
	}
	if !floatEq(want.TotalReplaced, got.TotalReplaced) {
		p.errorf("record %d (%s): totalReplaced: expected %g, got %g", i, want.PWSID, want.TotalReplaced, got.TotalReplaced)
	}
	if !floatEq(want.PercentReplaced, got.PercentReplaced) {
		p.errorf("record %d (%s): percentReplaced: expected %g, got %g", i, want.PWSID, want.PercentReplaced, got.PercentReplaced)
	}
	if want.Exceedance != got.Exceedance {
		p.errorf("record %d (%s): exceedance: expected %q, got %q", i, want.PWSID, want.Exceedance, got.Exceedance)
	}
}

// ── Phase 4: Display Consistency ──
// The default directory view must show only records with lines to replace,
// for every sort field, and never invent records.

func validateDisplaySet(records []domain.WaterSystemRecord) *phase {
	p := &phase{name: "Phase 4: Display Consistency"}

	byPWSID := make(map[string]bool, len(records))
	for _, r := range records {
		byPWSID[r.PWSID] = true
	}

	fields := []directory.SortField{
		directory.SortName, directory.SortLeadLines,
		directory.SortPopulation, directory.SortPercentReplaced,
	}
	for _, field := range fields {
		view := directory.DefaultView()
		view.SortField = field

		visible := directory.VisibleRecords(records, view)
		for _, r := range visible {
			if r.TotalToReplace <= 0 {
				p.errorf("sort %s: record %s visible with totalToReplace=%g", field, r.PWSID, r.TotalToReplace)
			}
			if !byPWSID[r.PWSID] {
				p.errorf("sort %s: record %s not in artifact", field, r.PWSID)
			}
		}
	}
	return p
}

// ── Helpers ──

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
