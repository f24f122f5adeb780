// Package domain models TROPOMI L3 merged trace-gas products and the
// inputs needed to render one composite map image from them.
//
// # Data Source
//
// Input files are daily or monthly L3 merges of Sentinel-5P TROPOMI
// retrievals, gridded onto a regular latitude/longitude grid and stored
// as HARP-convention NetCDF. Each product carries a 1-D latitude axis, a
// 1-D longitude axis, one observation variable (possibly with a leading
// singleton time dimension) and two scalar time boundaries.
//
// # Time Convention
//
// HARP stores time as a fractional count of days since a per-variable
// epoch date:
//
//	epochdate "20000101", value 8341.00196253472  →  2022-11-02 00:02
//
// The epoch date comes from the variable's configuration document, not
// from the file. [Timestamp] performs the conversion at minute precision.
//
// # Missing Values
//
// Observations below a variable's configured min_value are noise-floor
// artifacts of the merging step. They are replaced with NaN, the missing
// marker, and render as transparent cells. Values are masked, never
// removed, so the grid shape is stable through the pipeline. A present
// min_value of zero is an active threshold masking negative retrievals;
// only an absent key disables masking.
//
// # Rendering Modes
//
// A profile without a region renders the full 360°×180° world. A profile
// naming a region renders only that region's bounding box and composes
// border polygons, a road network and hand-placed city labels on top of
// the observation mesh. Region definitions, border sources and city lists
// are fixed, hand-curated inputs; nothing is discovered dynamically.
package domain
