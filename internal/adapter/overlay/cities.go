package overlay

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/fmi-ika/plot-tropomi/internal/domain"
)

// Cities reads the tabular city list: a CSV with a name,lat,lon header.
// The list is hand-curated per region; rows that do not parse are a data
// error, not something to skip quietly.
func (s *Store) Cities(src domain.CitySource) ([]domain.LabelPoint, error) {
	f, err := os.Open(s.path(src.File))
	if err != nil {
		return nil, fmt.Errorf("city source %s: %w: %v", src.File, domain.ErrDataUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("city source %s: %w: %v", src.File, domain.ErrDataUnavailable, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("city source %s: %w: no data rows", src.File, domain.ErrDataUnavailable)
	}

	cities := make([]domain.LabelPoint, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 3 {
			return nil, fmt.Errorf("city source %s: %w: short row %v", src.File, domain.ErrDataUnavailable, row)
		}
		lat, errLat := strconv.ParseFloat(row[1], 64)
		lon, errLon := strconv.ParseFloat(row[2], 64)
		if errLat != nil || errLon != nil {
			return nil, fmt.Errorf("city source %s: %w: bad coordinates for %q", src.File, domain.ErrDataUnavailable, row[0])
		}
		cities = append(cities, domain.LabelPoint{Name: row[0], Lat: lat, Lon: lon})
	}
	return cities, nil
}
