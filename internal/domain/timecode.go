package domain

import (
	"fmt"
	"time"
)

const (
	epochLayout     = "20060102"
	timestampLayout = "2006-01-02 15:04"
)

// TimeWindow is the pair of boundary timestamps of a merged product,
// formatted at minute precision. Start ≤ Stop holds for well-formed
// products but is not validated here; a reversed window renders verbatim.
type TimeWindow struct {
	Start string
	Stop  string
}

// Timestamp converts a fractional "days since epochdate" value to a
// calendar timestamp at minute precision. epochdate uses YYYYMMDD form.
// The conversion is monotonic in daysSince.
func Timestamp(epochdate string, daysSince float64) (string, error) {
	epoch, err := time.Parse(epochLayout, epochdate)
	if err != nil {
		return "", fmt.Errorf("%w: parse epochdate %q: %v", ErrConfiguration, epochdate, err)
	}
	offset := time.Duration(daysSince * float64(24*time.Hour))
	return epoch.Add(offset).UTC().Format(timestampLayout), nil
}

// ValidEpoch reports whether epochdate parses as YYYYMMDD. The resolver
// checks this once per profile so later Timestamp calls cannot fail on
// the epoch.
func ValidEpoch(epochdate string) bool {
	_, err := time.Parse(epochLayout, epochdate)
	return err == nil
}
