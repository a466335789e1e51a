// Package modelprop holds property-based tests over small random grids,
// checking the universal invariants and round-trip/determinism guarantees
// that a table of fixed examples cannot cover by itself. Grounded on the
// teacher's pkg/dungeon/synthesis_integration_test.go's rapid.Check usage,
// generalized from random dungeon configs to random grids and placements.
package modelprop
