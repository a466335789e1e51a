// Package svg renders a solved placement grid as an SVG image for visual
// debugging: one colored cell per grid square, with an arrow for the
// component's orientation. This is a supplement beyond spec.md's glyph and
// blueprint adapters, grounded on the teacher's graph-visualisation
// exporter but drawing grid cells instead of graph nodes and edges.
package svg
