// Command validate checks the consistency of the rendering configuration
// tree: every variable document resolves for the aggregation lengths it
// declares, every referenced region document loads, and every overlay file
// a region points at exists under the data directory.
//
// Usage:
//
//	go run ./cmd/validate -conf conf -data data
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fmi-ika/plot-tropomi/internal/config"
	"github.com/fmi-ika/plot-tropomi/internal/domain"
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
	confDir := flag.String("conf", "conf", "configuration directory")
	dataDir := flag.String("data", "data", "overlay data directory")
	flag.Parse()

	os.Exit(run(*confDir, *dataDir))
}

func run(confDir, dataDir string) int {
	fmt.Println("=== Plot Configuration Validation ===")
	fmt.Println()

	vars, err := listVariables(confDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: list variable documents: %v\n", err)
		return 1
	}
	if len(vars) == 0 {
		fmt.Fprintf(os.Stderr, "FATAL: no variable documents under %s\n", confDir)
		return 1
	}

	profiles, varPhase := validateVariables(confDir, vars)
	regionPhase, overlayPhase := validateRegions(confDir, dataDir, profiles)

	phases := []*phase{varPhase, regionPhase, overlayPhase}

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
	fmt.Printf("Documents: %d variables, %d resolved profiles\n", len(vars), len(profiles))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  %d. %s\n", i+1, e)
		}
	}

	if !allPassed {
		return 1
	}
	fmt.Println("\nAll checks passed.")
	return 0
}

// listVariables returns variable IDs for every top-level conf/*.json
// document. Region documents live one level down and are not included.
func listVariables(confDir string) ([]string, error) {
	entries, err := os.ReadDir(confDir)
	if err != nil {
		return nil, err
	}
	var vars []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		vars = append(vars, strings.TrimSuffix(e.Name(), ".json"))
	}
	return vars, nil
}

// validateVariables resolves every document at every aggregation length it
// declares and collects the resulting profiles.
func validateVariables(confDir string, vars []string) ([]*domain.VariableProfile, *phase) {
	p := &phase{name: "variable documents resolve"}

	var profiles []*domain.VariableProfile
	for _, varID := range vars {
		for _, period := range documentPeriods(confDir, varID) {
			profile, err := config.Resolve(confDir, varID, period)
			if err != nil {
				p.errorf("%s (timeperiod %q): %v", varID, period, err)
				continue
			}
			profiles = append(profiles, profile)
		}
	}
	return profiles, p
}

// documentPeriods inspects the raw document to decide which time periods
// to resolve: nested documents declare day and/or month keys, flat
// documents resolve once with an empty period.
func documentPeriods(confDir, varID string) []string {
	raw, err := os.ReadFile(filepath.Join(confDir, varID+".json"))
	if err != nil {
		return []string{""}
	}
	var doc struct {
		Input map[string]json.RawMessage `json:"input"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return []string{""}
	}

	var periods []string
	for _, period := range []string{domain.PeriodDay, domain.PeriodMonth} {
		if _, ok := doc.Input[period]; ok {
			periods = append(periods, period)
		}
	}
	if len(periods) == 0 {
		return []string{""}
	}
	return periods
}

// validateRegions loads every region referenced by a profile and checks
// its overlay files on disk.
func validateRegions(confDir, dataDir string, profiles []*domain.VariableProfile) (*phase, *phase) {
	regionPhase := &phase{name: "region documents load"}
	overlayPhase := &phase{name: "overlay files present"}

	seen := map[string]bool{}
	for _, profile := range profiles {
		if profile.Region == "" || seen[profile.Region] {
			continue
		}
		seen[profile.Region] = true

		region, err := config.LoadRegion(confDir, profile.Region)
		if err != nil {
			regionPhase.errorf("%s: %v", profile.Region, err)
			continue
		}
		checkOverlayFiles(dataDir, region, overlayPhase)
	}

	// Files every run needs regardless of region.
	for _, file := range []string{"coastline/ne_110m_coastline.geojson", "logos.png", "fmi_logo.png"} {
		requireFile(dataDir, file, overlayPhase)
	}

	return regionPhase, overlayPhase
}

func checkOverlayFiles(dataDir string, region *domain.RegionSpec, p *phase) {
	for _, b := range region.Borders {
		requireFile(dataDir, b.File, p)
	}
	requireFile(dataDir, region.Coastline, p)
	requireFile(dataDir, region.Cities.File, p)
	if region.Roads.File != "" {
		// Shapefiles carry their attributes in a sidecar .dbf.
		requireFile(dataDir, region.Roads.File, p)
		requireFile(dataDir, strings.TrimSuffix(region.Roads.File, ".shp")+".dbf", p)
	}
}

func requireFile(dataDir, file string, p *phase) {
	path := filepath.Join(dataDir, file)
	info, err := os.Stat(path)
	if err != nil {
		p.errorf("%s: %v", file, err)
		return
	}
	if info.IsDir() {
		p.errorf("%s: is a directory", file)
	}
}
