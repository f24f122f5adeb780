package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

func TestProfileFileTemplates(t *testing.T) {
	p := &domain.VariableProfile{
		InputPath:      "data/l3/no2",
		InputFilename:  "S5P_NRTI_L3_NO2_{date}_day.nc",
		OutputPath:     "out/no2",
		OutputFilename: "tropomi-no2-{date}-day.png",
	}

	assert.Equal(t, filepath.Join("data/l3/no2", "S5P_NRTI_L3_NO2_20230209_day.nc"), p.InputFile("20230209"))
	assert.Equal(t, filepath.Join("out/no2", "tropomi-no2-20230209-day.png"), p.OutputFile("20230209"))

	t.Run("no placeholder passes through", func(t *testing.T) {
		p := &domain.VariableProfile{InputPath: "data", InputFilename: "static.nc"}
		assert.Equal(t, filepath.Join("data", "static.nc"), p.InputFile("20230209"))
	})
}

func TestRegionLabelOffset(t *testing.T) {
	region := &domain.RegionSpec{
		Cities: domain.CitySource{
			DefaultOffset: domain.Offset{DX: 10, DY: -10},
			OffsetOverrides: map[string]domain.Offset{
				"Zaporizhzhia": {DX: -150, DY: 18},
			},
		},
	}

	assert.Equal(t, domain.Offset{DX: -150, DY: 18}, region.LabelOffset("Zaporizhzhia"))
	assert.Equal(t, domain.Offset{DX: 10, DY: -10}, region.LabelOffset("Kharkiv"))
}

func TestExtentContains(t *testing.T) {
	e := domain.Extent{LonMin: 20, LonMax: 42, LatMin: 42, LatMax: 55}

	assert.True(t, e.Contains(domain.Coord{Lon: 30.52, Lat: 50.45}))
	assert.True(t, e.Contains(domain.Coord{Lon: 20, Lat: 42}))
	assert.False(t, e.Contains(domain.Coord{Lon: 19.9, Lat: 50}))
	assert.False(t, e.Contains(domain.Coord{Lon: 30, Lat: 55.1}))
}
