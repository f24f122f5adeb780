package domain

import (
	"path/filepath"
	"strings"
)

// Time period keys distinguishing which nested configuration block of a
// variable document applies.
const (
	PeriodDay   = "day"
	PeriodMonth = "month"
)

// VariableProfile describes how one trace-gas variable is located,
// thresholded, scaled and colored. Resolved from conf/<var>.json by
// internal/config; invariant VMin < VMax is enforced at resolve time.
type VariableProfile struct {
	VarID      string
	TimePeriod string // PeriodDay, PeriodMonth, or "" for flat documents

	// Input location and extraction.
	InputPath     string
	InputFilename string // may contain a {date} placeholder
	EpochDate     string // YYYYMMDD reference for days-since time values
	HarpVarName   string

	// Output location.
	OutputPath     string
	OutputFilename string // may contain a {date} placeholder

	// Plot scaling.
	VMin     float64
	VMax     float64
	Colormap string
	MinValue *float64 // values strictly below are missing; nil disables masking

	// Region names a region document; "" selects the global renderer.
	Region string
}

// InputFile resolves the input file path for the given template date.
func (p *VariableProfile) InputFile(date string) string {
	return filepath.Join(p.InputPath, expandDate(p.InputFilename, date))
}

// OutputFile resolves the output image path for the given template date.
func (p *VariableProfile) OutputFile(date string) string {
	return filepath.Join(p.OutputPath, expandDate(p.OutputFilename, date))
}

func expandDate(template, date string) string {
	return strings.ReplaceAll(template, "{date}", date)
}
