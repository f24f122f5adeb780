package domain

// Border source tags. Focal polygons always receive the emphasized stroke,
// regardless of their position in the source list.
const (
	TagFocal   = "focal"
	TagContext = "context"
)

// Coord is a WGS-84 longitude/latitude pair.
type Coord struct {
	Lon float64
	Lat float64
}

// Extent is a geographic bounding box in degrees.
type Extent struct {
	LonMin float64
	LonMax float64
	LatMin float64
	LatMax float64
}

// Contains reports whether c lies inside the extent.
func (e Extent) Contains(c Coord) bool {
	return c.Lon >= e.LonMin && c.Lon <= e.LonMax && c.Lat >= e.LatMin && c.Lat <= e.LatMax
}

// BorderSource is one border-polygon document plus its styling tag.
type BorderSource struct {
	File string
	Tag  string // TagFocal or TagContext
}

// RoadSource locates the road-network shapefile and names the road-type
// attribute value to drop (ferry routes are lines in the source data but
// are not roads). An empty File omits the layer.
type RoadSource struct {
	File        string
	ExcludeType string
}

// Road is one decoded road-network record.
type Road struct {
	Type string
	Line []Coord
}

// CitySource locates the tabular city list and its label offset policy.
// Offsets are in pixels relative to the city marker. Collision avoidance
// is manual: a few named cities carry pre-computed overrides, everything
// else uses the default.
type CitySource struct {
	File            string
	DefaultOffset   Offset
	OffsetOverrides map[string]Offset
}

// Offset displaces a label from its marker, in pixels. DY grows downward.
type Offset struct {
	DX float64
	DY float64
}

// LabelPoint is a named point location to mark and annotate.
type LabelPoint struct {
	Name string
	Lat  float64
	Lon  float64
}

// RegionSpec is a named bounding box plus the hand-curated overlay sources
// drawn inside it.
type RegionSpec struct {
	Name      string
	Extent    Extent
	Borders   []BorderSource
	Coastline string
	Roads     RoadSource
	Cities    CitySource
}

// LabelOffset returns the label offset for the named point: the per-name
// override when present, else the source default.
func (r *RegionSpec) LabelOffset(name string) Offset {
	if off, ok := r.Cities.OffsetOverrides[name]; ok {
		return off
	}
	return r.Cities.DefaultOffset
}
