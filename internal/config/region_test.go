package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi-ika/plot-tropomi/internal/config"
	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

const regionDoc = `{
	"name": "ukraine",
	"extent": [20, 42, 42, 55],
	"borders": [
		{"file": "borders/ukraine.geojson", "tag": "focal"},
		{"file": "borders/ukraine_neighbours.geojson", "tag": "context"}
	],
	"coastline": "coastline/ne_50m_coastline.geojson",
	"roads": {"file": "roads/ne_10m_roads.shp", "exclude_type": "Ferry Route"},
	"cities": {
		"file": "cities/ukraine.csv",
		"default_offset": [10, -10],
		"offset_overrides": {"Kyiv": [12, -16]}
	}
}`

func writeRegion(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "regions"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "regions", name+".json"), []byte(body), 0o644))
}

func TestLoadRegion(t *testing.T) {
	dir := t.TempDir()
	writeRegion(t, dir, "ukraine", regionDoc)

	region, err := config.LoadRegion(dir, "ukraine")
	require.NoError(t, err)

	assert.Equal(t, "ukraine", region.Name)
	assert.Equal(t, domain.Extent{LonMin: 20, LonMax: 42, LatMin: 42, LatMax: 55}, region.Extent)
	require.Len(t, region.Borders, 2)
	assert.Equal(t, domain.TagFocal, region.Borders[0].Tag)
	assert.Equal(t, "Ferry Route", region.Roads.ExcludeType)
	assert.Equal(t, domain.Offset{DX: 12, DY: -16}, region.LabelOffset("Kyiv"))
	assert.Equal(t, domain.Offset{DX: 10, DY: -10}, region.LabelOffset("Odesa"))
}

func TestLoadRegionFailures(t *testing.T) {
	t.Run("unknown region", func(t *testing.T) {
		_, err := config.LoadRegion(t.TempDir(), "atlantis")
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	cases := []struct {
		name string
		doc  string
	}{
		{
			name: "degenerate extent",
			doc:  `{"extent": [42, 20, 42, 55], "coastline": "c.geojson", "cities": {"file": "c.csv"}}`,
		},
		{
			name: "missing coastline",
			doc:  `{"extent": [20, 42, 42, 55], "cities": {"file": "c.csv"}}`,
		},
		{
			name: "missing cities",
			doc:  `{"extent": [20, 42, 42, 55], "coastline": "c.geojson"}`,
		},
		{
			name: "unknown border tag",
			doc: `{"extent": [20, 42, 42, 55], "coastline": "c.geojson", "cities": {"file": "c.csv"},
				"borders": [{"file": "b.geojson", "tag": "primary"}]}`,
		},
		{
			name: "roads without exclude_type",
			doc: `{"extent": [20, 42, 42, 55], "coastline": "c.geojson", "cities": {"file": "c.csv"},
				"roads": {"file": "r.shp"}}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeRegion(t, dir, "broken", tc.doc)

			_, err := config.LoadRegion(dir, "broken")
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}
