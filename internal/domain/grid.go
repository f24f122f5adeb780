package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ObservationGrid is a 2-D array of observation values on a regular
// latitude/longitude grid. Values[i][j] belongs to (Lat[i], Lon[j]);
// NaN marks a missing observation.
type ObservationGrid struct {
	Lat    []float64
	Lon    []float64
	Values [][]float64
}

// NewObservationGrid shapes a flat observation array onto the given axes.
// Leading singleton dimensions (the merge tool keeps a length-1 time axis)
// are squeezed away first. The remaining spatial shape must match the
// axis lengths exactly.
func NewObservationGrid(lat, lon []float64, obs Variable) (ObservationGrid, error) {
	shape := squeeze(obs.Shape)
	if len(shape) != 2 {
		return ObservationGrid{}, fmt.Errorf("observation array has shape %v after squeeze, want 2 dimensions", obs.Shape)
	}
	nLat, nLon := shape[0], shape[1]
	if nLat == 0 || nLon == 0 {
		return ObservationGrid{}, fmt.Errorf("observation array has an empty axis (shape %v)", obs.Shape)
	}
	if nLat != len(lat) || nLon != len(lon) {
		return ObservationGrid{}, fmt.Errorf("observation array is %dx%d but axes are %dx%d", nLat, nLon, len(lat), len(lon))
	}
	if len(obs.Data) != nLat*nLon {
		return ObservationGrid{}, fmt.Errorf("observation array has %d values, want %d", len(obs.Data), nLat*nLon)
	}

	values := make([][]float64, nLat)
	for i := range values {
		values[i] = obs.Data[i*nLon : (i+1)*nLon]
	}
	return ObservationGrid{Lat: lat, Lon: lon, Values: values}, nil
}

// squeeze drops leading length-1 dimensions, leaving at most two.
func squeeze(shape []int) []int {
	for len(shape) > 2 && shape[0] == 1 {
		shape = shape[1:]
	}
	return shape
}

// MaskBelow replaces every value strictly below threshold with NaN.
// Values at or above the threshold are untouched.
func (g ObservationGrid) MaskBelow(threshold float64) {
	for _, row := range g.Values {
		for j, v := range row {
			if v < threshold {
				row[j] = math.NaN()
			}
		}
	}
}

// ValidRange returns the minimum and maximum over non-missing values.
// ok is false when every value is missing.
func (g ObservationGrid) ValidRange() (min, max float64, ok bool) {
	var valid []float64
	for _, row := range g.Values {
		for _, v := range row {
			if !math.IsNaN(v) {
				valid = append(valid, v)
			}
		}
	}
	if len(valid) == 0 {
		return 0, 0, false
	}
	return floats.Min(valid), floats.Max(valid), true
}
