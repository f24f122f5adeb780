package domain

import "errors"

// Error taxonomy for the rendering pipeline. None of these are recovered
// locally: each aborts the current render before any output file exists.
// Wrap with fmt.Errorf("...: %w", ...) and test with errors.Is.
var (
	// ErrConfiguration marks a missing or malformed variable profile or
	// region document.
	ErrConfiguration = errors.New("configuration error")

	// ErrDataUnavailable marks a source grid or static overlay (borders,
	// roads, cities, logos) that cannot be opened or parsed.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrOutput marks a rendered image that cannot be written to its
	// destination path.
	ErrOutput = errors.New("output error")
)
