// Package dataset defines the built-in SCB tables the tool knows how to pull.
package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Column maps a source header in the API response to the header written to
// the output file.
type Column struct {
	Source string
	Target string
}

// Dataset describes one pullable table: where it lives in the PXWeb subject
// tree, which columns survive normalization, and where the result lands.
type Dataset struct {
	// Name is the CLI-facing identifier.
	Name string
	// AreaPath is the subject-tree path between the API root and the table id,
	// e.g. "AM/AM0401/AM0401N".
	AreaPath string
	// Region is the region-name column; its values get code and suffix
	// stripping applied.
	Region Column
	// Measures are the numeric columns kept, in output order after Region.
	Measures []Column
	// RegionSuffix is the qualifier word stripped from the end of region
	// names, matched case-insensitively.
	RegionSuffix string
	// OutputFile is the CSV filename written into the output directory.
	OutputFile string
	// DefaultQueryPath is the query spec file used when the config carries no
	// override.
	DefaultQueryPath string
}

// Headers returns the output header row: region first, then measures.
func (d Dataset) Headers() []string {
	out := make([]string, 0, len(d.Measures)+1)
	out = append(out, d.Region.Target)
	for _, m := range d.Measures {
		out = append(out, m.Target)
	}
	return out
}

// Columns returns all selected columns in output order.
func (d Dataset) Columns() []Column {
	out := make([]Column, 0, len(d.Measures)+1)
	out = append(out, d.Region)
	return append(out, d.Measures...)
}

// DirectEstimates is the regional labour-survey estimate table.
var DirectEstimates = Dataset{
	Name:     "direct-estimates",
	AreaPath: "AM/AM0401/AM0401N",
	Region:   Column{Source: "region", Target: "County"},
	Measures: []Column{
		{Source: "Percent 2025K1", Target: "Percent_2025K1"},
		{Source: "Margin of error ± percent 2025K1", Target: "Percent_2025K1_me"},
	},
	RegionSuffix:     "county",
	OutputFile:       "direct_estimates.csv",
	DefaultQueryPath: "data/directEstimate.json",
}

// PopulationDensity is the population density per square kilometre table.
var PopulationDensity = Dataset{
	Name:     "popdensity",
	AreaPath: "BE/BE0101/BE0101C",
	Region:   Column{Source: "region", Target: "County"},
	Measures: []Column{
		{Source: "Population density per sq. km 2024", Target: "PopDensity_2024"},
	},
	RegionSuffix:     "county",
	OutputFile:       "popdensity.csv",
	DefaultQueryPath: "data/popdensity.json",
}

var registry = map[string]Dataset{
	DirectEstimates.Name:   DirectEstimates,
	PopulationDensity.Name: PopulationDensity,
}

// Lookup resolves a dataset by its CLI name.
func Lookup(name string) (Dataset, error) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Dataset{}, fmt.Errorf("unknown dataset %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names lists the registered dataset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
