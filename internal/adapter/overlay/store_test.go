package overlay_test

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi-ika/plot-tropomi/internal/adapter/overlay"
	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

func newStore(t *testing.T) (*overlay.Store, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return overlay.NewStore(dir, logger), dir
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestGeoJSONSources(t *testing.T) {
	t.Run("line string coastline", func(t *testing.T) {
		store, dir := newStore(t)
		writeFile(t, dir, "coast.geojson", `{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature", "properties": {},
				"geometry": {"type": "LineString", "coordinates": [[20, 45], [25, 46], [30, 47]]}
			}]
		}`)

		lines, err := store.Coastline("coast.geojson")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, domain.Coord{Lon: 20, Lat: 45}, lines[0][0])
		assert.Len(t, lines[0], 3)
	})

	t.Run("polygon borders flatten to rings", func(t *testing.T) {
		store, dir := newStore(t)
		writeFile(t, dir, "border.geojson", `{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature", "properties": {},
				"geometry": {"type": "MultiPolygon", "coordinates": [
					[[[24, 45], [38, 45], [38, 52], [24, 45]]],
					[[[10, 40], [12, 40], [12, 42], [10, 40]]]
				]}
			}]
		}`)

		rings, err := store.Borders(domain.BorderSource{File: "border.geojson", Tag: domain.TagFocal})
		require.NoError(t, err)
		assert.Len(t, rings, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		store, _ := newStore(t)
		_, err := store.Coastline("nope.geojson")
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})

	t.Run("malformed document", func(t *testing.T) {
		store, dir := newStore(t)
		writeFile(t, dir, "bad.geojson", `{"type": "FeatureCollection"`)

		_, err := store.Coastline("bad.geojson")
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})

	t.Run("no drawable geometry", func(t *testing.T) {
		store, dir := newStore(t)
		writeFile(t, dir, "points.geojson", `{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature", "properties": {},
				"geometry": {"type": "Point", "coordinates": [30, 50]}
			}]
		}`)

		_, err := store.Coastline("points.geojson")
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})
}

func TestCities(t *testing.T) {
	src := domain.CitySource{File: "cities.csv"}

	t.Run("parses the tabular list", func(t *testing.T) {
		store, dir := newStore(t)
		writeFile(t, dir, "cities.csv", "name,lat,lon\nKyiv,50.45,30.52\nOdesa,46.48,30.73\n")

		cities, err := store.Cities(src)
		require.NoError(t, err)
		require.Len(t, cities, 2)
		assert.Equal(t, domain.LabelPoint{Name: "Kyiv", Lat: 50.45, Lon: 30.52}, cities[0])
	})

	t.Run("header only", func(t *testing.T) {
		store, dir := newStore(t)
		writeFile(t, dir, "cities.csv", "name,lat,lon\n")

		_, err := store.Cities(src)
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})

	t.Run("bad coordinates", func(t *testing.T) {
		store, dir := newStore(t)
		writeFile(t, dir, "cities.csv", "name,lat,lon\nKyiv,north,30.52\n")

		_, err := store.Cities(src)
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})

	t.Run("missing file", func(t *testing.T) {
		store, _ := newStore(t)
		_, err := store.Cities(src)
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})
}

func TestLogos(t *testing.T) {
	t.Run("loads both images", func(t *testing.T) {
		store, dir := newStore(t)
		for _, name := range []string{"logos.png", "fmi_logo.png"} {
			img := image.NewRGBA(image.Rect(0, 0, 16, 9))
			var buf bytes.Buffer
			require.NoError(t, png.Encode(&buf, img))
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644))
		}

		banner, fmi, err := store.Logos()
		require.NoError(t, err)
		assert.Equal(t, 16, banner.Bounds().Dx())
		assert.Equal(t, 9, fmi.Bounds().Dy())
	})

	t.Run("missing logo", func(t *testing.T) {
		store, _ := newStore(t)
		_, _, err := store.Logos()
		assert.ErrorIs(t, err, domain.ErrDataUnavailable)
	})
}

// roadRecord is the archetype for writing road shapefile fixtures: one
// polyline plus the type attribute the decoder reads back.
type roadRecord struct {
	geom.LineString
	Type string `shp:"type"`
}

func writeRoadShapefile(t *testing.T, dir, name string, records []roadRecord) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	enc, err := shp.NewEncoder(path, roadRecord{})
	require.NoError(t, err)
	for _, rec := range records {
		require.NoError(t, enc.Encode(rec))
	}
	enc.Close()
}

func TestRoads(t *testing.T) {
	store, dir := newStore(t)
	writeRoadShapefile(t, dir, "roads/test.shp", []roadRecord{
		{
			LineString: geom.LineString{{X: 24, Y: 50}, {X: 26, Y: 50.5}, {X: 28, Y: 51}},
			Type:       "Major Highway",
		},
		{
			LineString: geom.LineString{{X: 30, Y: 46}, {X: 31, Y: 45}},
			Type:       "Ferry Route",
		},
	})

	// The exclusion predicate is the renderer's; the store returns every
	// record with its type attribute.
	roads, err := store.Roads(domain.RoadSource{File: "roads/test.shp", ExcludeType: "Ferry Route"})
	require.NoError(t, err)
	require.Len(t, roads, 2)

	assert.Equal(t, "Major Highway", roads[0].Type)
	assert.Equal(t, []domain.Coord{{Lon: 24, Lat: 50}, {Lon: 26, Lat: 50.5}, {Lon: 28, Lat: 51}}, roads[0].Line)
	assert.Equal(t, "Ferry Route", roads[1].Type)
	assert.Equal(t, []domain.Coord{{Lon: 30, Lat: 46}, {Lon: 31, Lat: 45}}, roads[1].Line)
}

func TestRoadsMissingSource(t *testing.T) {
	store, _ := newStore(t)
	_, err := store.Roads(domain.RoadSource{File: "roads/ne_10m_roads.shp", ExcludeType: "Ferry Route"})
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}
