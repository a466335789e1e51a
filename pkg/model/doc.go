// Package model implements the belt-balancer variable and constraint model:
// the per-cell component/orientation choice, the surface and underground
// flow arenas, and the constraint groups G1-G11 from the specification. It
// owns the arrays for the duration of one solve; pkg/solve drives the
// search over this model and pkg/extract reads the resulting Assignment.
package model
