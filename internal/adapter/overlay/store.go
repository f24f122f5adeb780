// Package overlay loads the static map-furniture sources: border and
// coastline geometry, the road network, city lists and logo images.
// Every source is a fixed local file under the data directory; a missing
// or unparseable source wraps domain.ErrDataUnavailable.
package overlay

import (
	"fmt"
	"image"
	_ "image/png" // logos are PNG
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	geojson "github.com/paulmach/go.geojson"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// Logo file names, fixed deployment inputs living in the data directory.
const (
	bannerLogoFile = "logos.png"
	fmiLogoFile    = "fmi_logo.png"

	// globalCoastlineFile backs the world map; regional coastlines come
	// from the region document.
	globalCoastlineFile = "coastline/ne_110m_coastline.geojson"
)

// roadTypeField is the shapefile attribute carrying the road category.
const roadTypeField = "type"

// Store resolves overlay sources relative to one data directory.
type Store struct {
	dataDir string
	logger  *slog.Logger
}

// NewStore creates an overlay store rooted at dataDir.
func NewStore(dataDir string, logger *slog.Logger) *Store {
	return &Store{dataDir: dataDir, logger: logger}
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dataDir, file)
}

// Borders loads one border-polygon document as a list of closed rings.
func (s *Store) Borders(src domain.BorderSource) ([][]domain.Coord, error) {
	rings, err := s.geojsonLines(src.File)
	if err != nil {
		return nil, fmt.Errorf("border source %s: %w", src.File, err)
	}
	return rings, nil
}

// Coastline loads a coastline document as a list of polylines.
func (s *Store) Coastline(file string) ([][]domain.Coord, error) {
	lines, err := s.geojsonLines(file)
	if err != nil {
		return nil, fmt.Errorf("coastline source %s: %w", file, err)
	}
	return lines, nil
}

// GlobalCoastline loads the fixed world coastline document.
func (s *Store) GlobalCoastline() ([][]domain.Coord, error) {
	return s.Coastline(globalCoastlineFile)
}

// geojsonLines flattens a GeoJSON feature collection into drawable
// polylines. Polygon rings and line strings are treated alike; the
// renderer only strokes them.
func (s *Store) geojsonLines(file string) ([][]domain.Coord, error) {
	raw, err := os.ReadFile(s.path(file))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parse geojson: %v", domain.ErrDataUnavailable, err)
	}

	var lines [][]domain.Coord
	for _, f := range fc.Features {
		lines = append(lines, geometryLines(f.Geometry)...)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no drawable geometry", domain.ErrDataUnavailable)
	}
	return lines, nil
}

func geometryLines(g *geojson.Geometry) [][]domain.Coord {
	if g == nil {
		return nil
	}
	var lines [][]domain.Coord
	switch g.Type {
	case geojson.GeometryLineString:
		lines = append(lines, coords(g.LineString))
	case geojson.GeometryMultiLineString:
		for _, ls := range g.MultiLineString {
			lines = append(lines, coords(ls))
		}
	case geojson.GeometryPolygon:
		for _, ring := range g.Polygon {
			lines = append(lines, coords(ring))
		}
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			for _, ring := range poly {
				lines = append(lines, coords(ring))
			}
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			lines = append(lines, geometryLines(sub)...)
		}
	}
	return lines
}

func coords(positions [][]float64) []domain.Coord {
	line := make([]domain.Coord, 0, len(positions))
	for _, pos := range positions {
		if len(pos) < 2 {
			continue
		}
		line = append(line, domain.Coord{Lon: pos[0], Lat: pos[1]})
	}
	return line
}

// Roads decodes the road-network shapefile with its per-record road-type
// attribute. The exclusion predicate is applied by the renderer, not here,
// so callers can observe what was dropped.
func (s *Store) Roads(src domain.RoadSource) ([]domain.Road, error) {
	d, err := shp.NewDecoder(s.path(src.File))
	if err != nil {
		return nil, fmt.Errorf("road source %s: %w: %v", src.File, domain.ErrDataUnavailable, err)
	}
	defer d.Close()

	var roads []domain.Road
	for {
		g, fields, more := d.DecodeRowFields(roadTypeField)
		if !more {
			break
		}
		roadType := fields[roadTypeField]
		for _, line := range shapeLines(g) {
			roads = append(roads, domain.Road{Type: roadType, Line: line})
		}
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("road source %s: %w: %v", src.File, domain.ErrDataUnavailable, err)
	}

	s.logger.Debug("road network loaded", "source", src.File, "records", len(roads))
	return roads, nil
}

func shapeLines(g geom.Geom) [][]domain.Coord {
	switch t := g.(type) {
	case geom.LineString:
		return [][]domain.Coord{lineCoords(t)}
	case geom.MultiLineString:
		lines := make([][]domain.Coord, 0, len(t))
		for _, ls := range t {
			lines = append(lines, lineCoords(ls))
		}
		return lines
	default:
		return nil
	}
}

func lineCoords(ls geom.LineString) []domain.Coord {
	line := make([]domain.Coord, len(ls))
	for i, pt := range ls {
		line[i] = domain.Coord{Lon: pt.X, Lat: pt.Y}
	}
	return line
}

// Logos loads the banner and FMI logo images composed onto every figure.
func (s *Store) Logos() (banner, fmi image.Image, err error) {
	banner, err = s.loadImage(bannerLogoFile)
	if err != nil {
		return nil, nil, err
	}
	fmi, err = s.loadImage(fmiLogoFile)
	if err != nil {
		return nil, nil, err
	}
	return banner, fmi, nil
}

func (s *Store) loadImage(file string) (image.Image, error) {
	f, err := os.Open(s.path(file))
	if err != nil {
		return nil, fmt.Errorf("logo %s: %w: %v", file, domain.ErrDataUnavailable, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("logo %s: %w: %v", file, domain.ErrDataUnavailable, err)
	}
	return img, nil
}
