package pipeline

import (
	"fmt"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// loadGrid assembles the observation grid and time window from an imported
// product. Failures mean the product file does not hold what a merged L3
// product must hold and wrap domain.ErrDataUnavailable.
func loadGrid(product domain.Product, profile *domain.VariableProfile) (domain.ObservationGrid, domain.TimeWindow, string, string, error) {
	fail := func(err error) (domain.ObservationGrid, domain.TimeWindow, string, string, error) {
		return domain.ObservationGrid{}, domain.TimeWindow{}, "", "", fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}

	lat, ok := product[domain.VarLatitude]
	if !ok {
		return fail(fmt.Errorf("product has no %s axis", domain.VarLatitude))
	}
	lon, ok := product[domain.VarLongitude]
	if !ok {
		return fail(fmt.Errorf("product has no %s axis", domain.VarLongitude))
	}
	obs, ok := product[profile.HarpVarName]
	if !ok {
		return fail(fmt.Errorf("product has no variable %q", profile.HarpVarName))
	}

	grid, err := domain.NewObservationGrid(lat.Data, lon.Data, obs)
	if err != nil {
		return fail(err)
	}
	if profile.MinValue != nil {
		grid.MaskBelow(*profile.MinValue)
	}

	window, err := timeWindow(product, profile.EpochDate)
	if err != nil {
		return fail(err)
	}

	return grid, window, obs.Description, obs.Unit, nil
}

// timeWindow formats the first and last observation timestamps from the
// product's days-since-epoch time variables.
func timeWindow(product domain.Product, epochdate string) (domain.TimeWindow, error) {
	var window domain.TimeWindow

	for _, tv := range []struct {
		name string
		dst  *string
	}{
		{domain.VarDatetimeStart, &window.Start},
		{domain.VarDatetimeStop, &window.Stop},
	} {
		v, ok := product[tv.name]
		if !ok || len(v.Data) == 0 {
			return domain.TimeWindow{}, fmt.Errorf("product has no %s value", tv.name)
		}
		ts, err := domain.Timestamp(epochdate, v.Data[0])
		if err != nil {
			return domain.TimeWindow{}, fmt.Errorf("format %s: %v", tv.name, err)
		}
		*tv.dst = ts
	}

	return window, nil
}
