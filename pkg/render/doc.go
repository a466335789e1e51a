// Package render turns a solved model.Assignment into the glyph-grid
// external format, and parses a glyph grid back into per-cell component
// placements for use as a warm-start seed or hint.
package render
