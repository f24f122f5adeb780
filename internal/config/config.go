// Package config resolves variable profile and region documents.
//
// Each plottable variable has a hand-curated JSON document at
// conf/<var>.json with input, plot and output blocks. Variables merged at
// multiple aggregation lengths nest each block one level deeper under a
// time-period key (day|month); variables with a single aggregation keep
// the blocks flat. Region documents live at conf/regions/<name>.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

type inputBlock struct {
	Path        string `json:"path"`
	Filename    string `json:"filename"`
	EpochDate   string `json:"epochdate"`
	HarpVarName string `json:"harp_var_name"`
}

type plotBlock struct {
	VMin     *float64 `json:"vmin"`
	VMax     *float64 `json:"vmax"`
	Colormap string   `json:"colormap"`
	MinValue *float64 `json:"min_value"`
}

type outputBlock struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
}

// document is the raw per-variable configuration document. Blocks are kept
// raw because each may be flat or nested under a time-period key.
type document struct {
	Input  json.RawMessage `json:"input"`
	Plot   json.RawMessage `json:"plot"`
	Output json.RawMessage `json:"output"`
	Region string          `json:"region"`
}

// Resolve loads conf/<varID>.json and resolves the profile for the given
// time period. Flat documents ignore timePeriod; nested documents require
// it and fail deterministically when it is missing or has no matching
// block. All failures wrap domain.ErrConfiguration.
func Resolve(confDir, varID, timePeriod string) (*domain.VariableProfile, error) {
	path := filepath.Join(confDir, varID+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: no document for variable %q at %s: %v", domain.ErrConfiguration, varID, path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed document %s: %v", domain.ErrConfiguration, path, err)
	}

	var in inputBlock
	if err := selectBlock(doc.Input, "input", timePeriod, &in); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfiguration, path, err)
	}
	var plot plotBlock
	if err := selectBlock(doc.Plot, "plot", timePeriod, &plot); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfiguration, path, err)
	}
	var out outputBlock
	if err := selectBlock(doc.Output, "output", timePeriod, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfiguration, path, err)
	}

	p := &domain.VariableProfile{
		VarID:          varID,
		TimePeriod:     timePeriod,
		InputPath:      in.Path,
		InputFilename:  in.Filename,
		EpochDate:      in.EpochDate,
		HarpVarName:    in.HarpVarName,
		OutputPath:     out.Path,
		OutputFilename: out.Filename,
		Colormap:       plot.Colormap,
		MinValue:       plot.MinValue,
		Region:         doc.Region,
	}
	if plot.VMin != nil {
		p.VMin = *plot.VMin
	}
	if plot.VMax != nil {
		p.VMax = *plot.VMax
	}

	if err := validateProfile(p, plot); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfiguration, path, err)
	}
	return p, nil
}

// selectBlock unmarshals a flat block, or the period-keyed sub-block of a
// nested one. A block is nested when it contains a day or month key.
func selectBlock(raw json.RawMessage, name, timePeriod string, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("missing required block %q", name)
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return fmt.Errorf("malformed block %q: %v", name, err)
	}

	_, hasDay := keyed[domain.PeriodDay]
	_, hasMonth := keyed[domain.PeriodMonth]
	if !hasDay && !hasMonth {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("malformed block %q: %v", name, err)
		}
		return nil
	}

	if timePeriod == "" {
		return fmt.Errorf("block %q is keyed by time period but no period was given", name)
	}
	sub, ok := keyed[timePeriod]
	if !ok {
		return fmt.Errorf("block %q has no entry for time period %q", name, timePeriod)
	}
	if err := json.Unmarshal(sub, out); err != nil {
		return fmt.Errorf("malformed block %q/%q: %v", name, timePeriod, err)
	}
	return nil
}

func validateProfile(p *domain.VariableProfile, plot plotBlock) error {
	switch {
	case p.InputPath == "":
		return fmt.Errorf("missing input.path")
	case p.InputFilename == "":
		return fmt.Errorf("missing input.filename")
	case p.EpochDate == "":
		return fmt.Errorf("missing input.epochdate")
	case p.HarpVarName == "":
		return fmt.Errorf("missing input.harp_var_name")
	case p.OutputPath == "":
		return fmt.Errorf("missing output.path")
	case p.OutputFilename == "":
		return fmt.Errorf("missing output.filename")
	case plot.VMin == nil || plot.VMax == nil:
		return fmt.Errorf("missing plot.vmin/vmax")
	case p.VMin >= p.VMax:
		return fmt.Errorf("plot.vmin %g must be below plot.vmax %g", p.VMin, p.VMax)
	case p.Colormap == "":
		return fmt.Errorf("missing plot.colormap")
	case !domain.ValidEpoch(p.EpochDate):
		return fmt.Errorf("input.epochdate %q is not a YYYYMMDD date", p.EpochDate)
	}
	return nil
}
