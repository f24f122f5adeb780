package domain

// RenderRequest is the fully resolved input consumed by exactly one
// renderer. A nil Region selects the global renderer.
type RenderRequest struct {
	Grid        ObservationGrid
	Profile     *VariableProfile
	Window      TimeWindow
	Description string
	Unit        string
	Region      *RegionSpec
}
