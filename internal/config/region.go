package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

type regionDoc struct {
	Name    string     `json:"name"`
	Extent  [4]float64 `json:"extent"` // lonmin, lonmax, latmin, latmax
	Borders []struct {
		File string `json:"file"`
		Tag  string `json:"tag"`
	} `json:"borders"`
	Coastline string `json:"coastline"`
	Roads     struct {
		File        string `json:"file"`
		ExcludeType string `json:"exclude_type"`
	} `json:"roads"`
	Cities struct {
		File            string                `json:"file"`
		DefaultOffset   [2]float64            `json:"default_offset"`
		OffsetOverrides map[string][2]float64 `json:"offset_overrides"`
	} `json:"cities"`
}

// LoadRegion loads conf/regions/<name>.json into a RegionSpec. Failures
// wrap domain.ErrConfiguration; missing overlay data files referenced by
// the document surface later as domain.ErrDataUnavailable when loaded.
func LoadRegion(confDir, name string) (*domain.RegionSpec, error) {
	path := filepath.Join(confDir, "regions", name+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: no region document %q at %s: %v", domain.ErrConfiguration, name, path, err)
	}

	var doc regionDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed region document %s: %v", domain.ErrConfiguration, path, err)
	}

	spec := &domain.RegionSpec{
		Name: name,
		Extent: domain.Extent{
			LonMin: doc.Extent[0],
			LonMax: doc.Extent[1],
			LatMin: doc.Extent[2],
			LatMax: doc.Extent[3],
		},
		Coastline: doc.Coastline,
		Roads: domain.RoadSource{
			File:        doc.Roads.File,
			ExcludeType: doc.Roads.ExcludeType,
		},
		Cities: domain.CitySource{
			File:            doc.Cities.File,
			DefaultOffset:   domain.Offset{DX: doc.Cities.DefaultOffset[0], DY: doc.Cities.DefaultOffset[1]},
			OffsetOverrides: make(map[string]domain.Offset, len(doc.Cities.OffsetOverrides)),
		},
	}
	if doc.Name != "" {
		spec.Name = doc.Name
	}
	for city, off := range doc.Cities.OffsetOverrides {
		spec.Cities.OffsetOverrides[city] = domain.Offset{DX: off[0], DY: off[1]}
	}
	for _, b := range doc.Borders {
		spec.Borders = append(spec.Borders, domain.BorderSource{File: b.File, Tag: b.Tag})
	}

	if err := validateRegion(spec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrConfiguration, path, err)
	}
	return spec, nil
}

func validateRegion(spec *domain.RegionSpec) error {
	if spec.Extent.LonMin >= spec.Extent.LonMax || spec.Extent.LatMin >= spec.Extent.LatMax {
		return fmt.Errorf("degenerate extent %+v", spec.Extent)
	}
	if spec.Coastline == "" {
		return fmt.Errorf("missing coastline file")
	}
	if spec.Cities.File == "" {
		return fmt.Errorf("missing cities file")
	}
	for _, b := range spec.Borders {
		if b.File == "" {
			return fmt.Errorf("border source without a file")
		}
		if b.Tag != domain.TagFocal && b.Tag != domain.TagContext {
			return fmt.Errorf("border %s has unknown tag %q", b.File, b.Tag)
		}
	}
	if spec.Roads.File != "" && spec.Roads.ExcludeType == "" {
		return fmt.Errorf("road source %s without an exclude_type", spec.Roads.File)
	}
	return nil
}
