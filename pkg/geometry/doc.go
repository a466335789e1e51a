// Package geometry provides pure, total functions over the four cardinal
// directions used by the belt-balancer grid: opposites, neighbor offsets,
// mixer companion-cell offsets, underground tunnel entrance/exit offsets,
// and the per-component "which directions must be zero" tables.
//
// Every function here is constant-time and total over its declared domain.
// Passing an unrecognised Dir is a programmer error: functions panic via
// Abortf rather than returning a zero value, so bugs surface immediately
// instead of producing a silently wrong layout.
package geometry
