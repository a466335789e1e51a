package model

import "github.com/dshills/beltbalancer/pkg/geometry"

// edgeKey canonically identifies one grid edge (the boundary between a cell
// and its neighbor in direction Dir, or a grid-boundary edge) for one
// source. Internal edges are always stored from the lower-index cell's N or
// E direction; boundary edges are stored as-is. This makes the adjacency
// identity f[x,y,s,d] = -f[neighbor,s,opposite(d)] (G3 / invariant 2) true
// by construction instead of a checked constraint.
type edgeKey struct {
	x, y int
	d    geometry.Dir
	s    int
}

// canonicalEdge returns the canonical key for (x,y,d) together with the
// sign relating the caller's viewpoint to the canonical storage: value seen
// from (x,y,d) equals sign * stored(canonical key).
func canonicalEdge(x, y int, d geometry.Dir, w, h int) (key edgeKey, sign int) {
	dx, dy := geometry.Offset(d)
	nx, ny := x+dx, y+dy
	if !geometry.Inside(nx, ny, w, h) {
		return edgeKey{x: x, y: y, d: d}, 1
	}
	switch d {
	case geometry.N, geometry.E:
		return edgeKey{x: x, y: y, d: d}, 1
	case geometry.S:
		return edgeKey{x: nx, y: ny, d: geometry.N}, -1
	case geometry.W:
		return edgeKey{x: nx, y: ny, d: geometry.E}, -1
	default:
		geometry.Abortf("model: invalid direction %v", d)
		panic("unreachable")
	}
}

// FlowField stores a signed integer flow value per (cell, source, direction)
// edge, sparsely, sharing storage between the two cells of an internal edge
// so the adjacency identity always holds. Missing entries default to zero,
// matching G1 (empty cells) and G4 (un-pledged boundary edges).
type FlowField struct {
	w, h   int
	values map[edgeKey]int
}

// NewFlowField creates an empty flow field over a W x H grid.
func NewFlowField(w, h int) *FlowField {
	return &FlowField{w: w, h: h, values: make(map[edgeKey]int)}
}

// Get returns the flow of source s crossing cell (x,y)'s d-facing edge.
func (f *FlowField) Get(x, y int, d geometry.Dir, s int) int {
	key, sign := canonicalEdge(x, y, d, f.w, f.h)
	key.s = s
	return sign * f.values[key]
}

// Set assigns the flow of source s crossing cell (x,y)'s d-facing edge.
func (f *FlowField) Set(x, y int, d geometry.Dir, s int, value int) {
	key, sign := canonicalEdge(x, y, d, f.w, f.h)
	key.s = s
	f.values[key] = sign * value
}

// IsBoundary reports whether (x,y)'s d-facing edge exits the grid.
func IsBoundary(x, y int, d geometry.Dir, w, h int) bool {
	dx, dy := geometry.Offset(d)
	nx, ny := x+dx, y+dy
	return !geometry.Inside(nx, ny, w, h)
}

// Clone returns a deep copy of f, used by the solver to snapshot state
// before a speculative assignment it may need to undo.
func (f *FlowField) Clone() *FlowField {
	cp := &FlowField{w: f.w, h: f.h, values: make(map[edgeKey]int, len(f.values))}
	for k, v := range f.values {
		cp.values[k] = v
	}
	return cp
}
