package domain

// HARP variable names common to every merged L3 product. The observation
// variable name differs per trace gas and comes from the profile.
const (
	VarLatitude      = "latitude"
	VarLongitude     = "longitude"
	VarDatetimeStart = "datetime_start"
	VarDatetimeStop  = "datetime_stop"
)

// Variable is one named array extracted from a product file.
type Variable struct {
	Data        []float64
	Shape       []int
	Description string
	Unit        string
}

// Product maps HARP variable names to their extracted arrays.
type Product map[string]Variable

// Provider opens a merged L3 product file and extracts the standard
// axis/time variables plus the named observation variable. Implementations
// live under internal/adapter.
type Provider interface {
	ImportProduct(path, obsVar string) (Product, error)
}
