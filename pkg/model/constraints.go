package model

import (
	"fmt"

	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/problem"
)

// Violation describes one broken constraint, identified by the group it
// belongs to (G1-G11, matching spec.md §4.3) and a human-readable detail.
type Violation struct {
	Group  string
	Detail string
}

func (v Violation) String() string { return fmt.Sprintf("%s: %s", v.Group, v.Detail) }

// Check validates a complete assignment against inst's constraint groups
// G1-G11 and returns every violation found; a satisfying assignment yields
// an empty slice. Used both by the solver, to confirm a leaf candidate, and
// by property tests asserting the universal invariants of spec.md §8.
func Check(inst *problem.Instance, a *Assignment) []Violation {
	var v []Violation
	v = append(v, checkExclusivity(inst, a)...)
	v = append(v, checkEmptyCells(inst, a)...)
	v = append(v, checkBeltBehavior(inst, a)...)
	v = append(v, checkMixerBehavior(inst, a)...)
	v = append(v, checkTunnelLinkage(inst, a)...)
	v = append(v, checkTunnelExistence(inst, a)...)
	v = append(v, checkBorderClosure(inst, a)...)
	v = append(v, checkCapacity(inst, a)...)
	v = append(v, checkPledges(inst, a)...)
	v = append(v, checkFeatureGates(inst, a)...)
	v = append(v, checkNetworkPlan(inst, a)...)
	return v
}

// CheckPartial validates a partially decided assignment: only the cells at
// row-major index `< decided` (y*inst.Width+x) are real choices, matching
// the solver's own cell traversal order; every other cell still holds its
// Empty placeholder and has not actually been decided yet. It runs the
// subset of G1-G11 that is already a forced consequence of the decisions
// made so far and skips the rest: G1 emptiness beyond the frontier (an
// undecided cell may yet become non-Empty), G7's exit-exists and
// no-intermediate-endpoint checks (the matching exit may still be placed
// later), and G10's mixer-count match (the grid isn't fully populated). A
// non-empty result can never be cleared by a later choice, so the caller may
// prune the branch immediately instead of waiting for a complete leaf.
func CheckPartial(inst *problem.Instance, a *Assignment, decided int) []Violation {
	var v []Violation
	v = append(v, checkExclusivity(inst, a)...)
	v = append(v, checkEmptyCellsPartial(inst, a, decided)...)
	v = append(v, checkBeltBehavior(inst, a)...)
	v = append(v, checkMixerBehavior(inst, a)...)
	v = append(v, checkTunnelLinkage(inst, a)...)
	v = append(v, checkBorderClosure(inst, a)...)
	v = append(v, checkCapacity(inst, a)...)
	v = append(v, checkPledges(inst, a)...)
	v = append(v, checkFeatureGates(inst, a)...)
	return v
}

// companionOf reports whether (x,y) is the companion cell of some mixer
// anchored elsewhere in a, and if so that mixer's orientation.
func companionOf(a *Assignment, x, y int) (geometry.Dir, bool) {
	for _, d := range geometry.Dirs {
		ax, ay := geometry.MixerAnchor(x, y, d)
		if !geometry.Inside(ax, ay, a.Width, a.Height) {
			continue
		}
		anchor := a.At(ax, ay)
		if anchor.Kind == MixerAnchor && anchor.Dir == d {
			cx, cy := geometry.MixerCompanion(ax, ay, d)
			if cx == x && cy == y {
				return d, true
			}
		}
	}
	return 0, false
}

// isSurfaceOccupied reports whether (x,y) is covered by some component's
// footprint: its own placement, or as the companion cell of a neighboring
// mixer.
func isSurfaceOccupied(a *Assignment, x, y int) bool {
	if a.At(x, y).Kind != Empty {
		return true
	}
	_, isCompanion := companionOf(a, x, y)
	return isCompanion
}

// G6 (bounds), G8: exclusivity and companion-cell reservation consistency.
func checkExclusivity(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		c := a.At(x, y)
		_, isCompanion := companionOf(a, x, y)

		if c.Kind == MixerCompanion && !isCompanion {
			out = append(out, Violation{"G8", fmt.Sprintf("(%d,%d) is marked MixerCompanion but no anchor claims it", x, y)})
		}
		if c.Kind != Empty && c.Kind != MixerCompanion && isCompanion {
			out = append(out, Violation{"G8", fmt.Sprintf("(%d,%d) holds %v but is also claimed as a mixer companion", x, y, c.Kind)})
		}

		if c.Kind == MixerAnchor {
			cx, cy := geometry.MixerCompanion(x, y, c.Dir)
			if !geometry.Inside(cx, cy, inst.Width, inst.Height) {
				out = append(out, Violation{"G6", fmt.Sprintf("mixer at (%d,%d) dir %v has companion outside the grid", x, y, c.Dir)})
				return
			}
			companion := a.At(cx, cy)
			if companion.Kind != MixerCompanion && companion.Kind != Empty {
				out = append(out, Violation{"G8", fmt.Sprintf("mixer at (%d,%d) dir %v: companion cell (%d,%d) holds %v", x, y, c.Dir, cx, cy, companion.Kind)})
			}
		}
	})
	return out
}

// G1: empty, unoccupied cells carry zero surface flow on every direction,
// for every source.
func checkEmptyCells(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		if isSurfaceOccupied(a, x, y) {
			return
		}
		for s := 0; s < inst.Sources; s++ {
			for _, d := range geometry.Dirs {
				if f := a.Surface.Get(x, y, d, s); f != 0 {
					out = append(out, Violation{"G1", fmt.Sprintf("empty cell (%d,%d) source %d dir %v has nonzero flow %d", x, y, s, d, f)})
				}
			}
		}
	})
	return out
}

// checkEmptyCellsPartial is checkEmptyCells restricted to the cells already
// decided (row-major index < decided): a cell beyond the frontier still
// shows Empty only because the search hasn't visited it yet, not because it
// was chosen to stay empty, so it must not be held to G1 until its turn
// comes.
func checkEmptyCellsPartial(inst *problem.Instance, a *Assignment, decided int) []Violation {
	var out []Violation
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		if y*inst.Width+x >= decided {
			return
		}
		if isSurfaceOccupied(a, x, y) {
			return
		}
		for s := 0; s < inst.Sources; s++ {
			for _, d := range geometry.Dirs {
				if f := a.Surface.Get(x, y, d, s); f != 0 {
					out = append(out, Violation{"G1", fmt.Sprintf("empty cell (%d,%d) source %d dir %v has nonzero flow %d", x, y, s, d, f)})
				}
			}
		}
	})
	return out
}

// G2: belt conservation, output sinks flow, the three other sides accept.
func checkBeltBehavior(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		c := a.At(x, y)
		if c.Kind != Belt {
			return
		}
		for s := 0; s < inst.Sources; s++ {
			sum := 0
			for _, d := range geometry.Dirs {
				sum += a.Surface.Get(x, y, d, s)
			}
			if sum != 0 {
				out = append(out, Violation{"G2", fmt.Sprintf("belt (%d,%d) source %d flows do not conserve: sum=%d", x, y, s, sum)})
			}
			if fo := a.Surface.Get(x, y, c.Dir, s); fo > 0 {
				out = append(out, Violation{"G2", fmt.Sprintf("belt (%d,%d) source %d output dir %v is positive: %d", x, y, s, c.Dir, fo)})
			}
			// Input directions are every direction but the output itself,
			// not Opposite(c.Dir): a belt also accepts flow from its two
			// lateral sides, same as the source solver's BELT_INPUT_DIRECTIONS.
			for _, di := range geometry.NonOpposite(geometry.Opposite(c.Dir)) {
				if fi := a.Surface.Get(x, y, di, s); fi < 0 {
					out = append(out, Violation{"G2", fmt.Sprintf("belt (%d,%d) source %d input dir %v is negative: %d", x, y, s, di, fi)})
				}
			}
		}
	})
	return out
}

// G6: mixer evenness and sign behavior.
func checkMixerBehavior(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		c := a.At(x, y)
		if c.Kind != MixerAnchor {
			return
		}
		cx, cy := geometry.MixerCompanion(x, y, c.Dir)
		if !geometry.Inside(cx, cy, inst.Width, inst.Height) {
			return // already reported by checkExclusivity
		}
		in := geometry.MixerInputDir(c.Dir)
		out_ := geometry.MixerOutputDir(c.Dir)

		for s := 0; s < inst.Sources; s++ {
			f1in := a.Surface.Get(x, y, in, s)
			f2in := a.Surface.Get(cx, cy, in, s)
			f1out := a.Surface.Get(x, y, out_, s)
			f2out := a.Surface.Get(cx, cy, out_, s)

			if sum := f1in + f2in + f1out + f2out; sum != 0 {
				out = append(out, Violation{"G6", fmt.Sprintf("mixer (%d,%d)/(%d,%d) source %d does not balance: sum=%d", x, y, cx, cy, s, sum)})
			}
			if f1out != f2out {
				out = append(out, Violation{"G6", fmt.Sprintf("mixer (%d,%d)/(%d,%d) source %d outputs differ: %d vs %d", x, y, cx, cy, s, f1out, f2out)})
			}
			if f1in < 0 || f2in < 0 {
				out = append(out, Violation{"G6", fmt.Sprintf("mixer (%d,%d)/(%d,%d) source %d has negative input", x, y, cx, cy, s)})
			}
			if f1out > 0 || f2out > 0 {
				out = append(out, Violation{"G6", fmt.Sprintf("mixer (%d,%d)/(%d,%d) source %d has positive output", x, y, cx, cy, s)})
			}
			for _, z := range geometry.MixerZeroDirs(c.Dir) {
				if v := a.Surface.Get(x, y, z, s); v != 0 {
					out = append(out, Violation{"G6", fmt.Sprintf("mixer anchor (%d,%d) source %d lateral dir %v nonzero: %d", x, y, s, z, v)})
				}
				if v := a.Surface.Get(cx, cy, z, s); v != 0 {
					out = append(out, Violation{"G6", fmt.Sprintf("mixer companion (%d,%d) source %d lateral dir %v nonzero: %d", cx, cy, s, z, v)})
				}
			}
		}
	})
	return out
}

// G7 (linkage half): tunnel entrance/exit surface-underground identity,
// zero-dirs, and underground pass-through elsewhere. This is the part of G7
// that is a forced consequence of a single decided endpoint cell, so
// CheckPartial runs it too; it says nothing about whether a matching exit
// exists, which depends on cells that may not be decided yet.
func checkTunnelLinkage(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation

	forEachCell(inst.Width, inst.Height, func(x, y int) {
		c := a.At(x, y)
		switch c.Kind {
		case TunnelEntrance:
			in := geometry.Opposite(c.Dir)
			for s := 0; s < inst.Sources; s++ {
				fin := a.Surface.Get(x, y, in, s)
				uout := a.Underground.Get(x, y, c.Dir, s)
				if fin+uout != 0 {
					out = append(out, Violation{"G7", fmt.Sprintf("entrance (%d,%d) source %d: surface+underground != 0 (%d,%d)", x, y, s, fin, uout)})
				}
				if urev := a.Underground.Get(x, y, in, s); urev != 0 {
					out = append(out, Violation{"G7", fmt.Sprintf("entrance (%d,%d) source %d: reverse underground nonzero: %d", x, y, s, urev)})
				}
				for _, z := range geometry.TunnelEntranceZeroDirs(c.Dir) {
					if v := a.Surface.Get(x, y, z, s); v != 0 {
						out = append(out, Violation{"G7", fmt.Sprintf("entrance (%d,%d) source %d dir %v nonzero: %d", x, y, s, z, v)})
					}
				}
			}

		case TunnelExit:
			for s := 0; s < inst.Sources; s++ {
				fout := a.Surface.Get(x, y, c.Dir, s)
				uin := a.Underground.Get(x, y, geometry.Opposite(c.Dir), s)
				if fout+uin != 0 {
					out = append(out, Violation{"G7", fmt.Sprintf("exit (%d,%d) source %d: surface+underground != 0 (%d,%d)", x, y, s, fout, uin)})
				}
				if ufwd := a.Underground.Get(x, y, c.Dir, s); ufwd != 0 {
					out = append(out, Violation{"G7", fmt.Sprintf("exit (%d,%d) source %d: forward underground nonzero: %d", x, y, s, ufwd)})
				}
				for _, z := range geometry.TunnelExitZeroDirs(c.Dir) {
					if v := a.Surface.Get(x, y, z, s); v != 0 {
						out = append(out, Violation{"G7", fmt.Sprintf("exit (%d,%d) source %d dir %v nonzero: %d", x, y, s, z, v)})
					}
				}
			}

		default:
			// Pass-through: underground at a non-endpoint cell relays every
			// direction pair unchanged.
			for s := 0; s < inst.Sources; s++ {
				if v := a.Underground.Get(x, y, geometry.N, s) + a.Underground.Get(x, y, geometry.S, s); v != 0 {
					out = append(out, Violation{"G7", fmt.Sprintf("pass-through (%d,%d) source %d N/S underground unbalanced: %d", x, y, s, v)})
				}
				if v := a.Underground.Get(x, y, geometry.E, s) + a.Underground.Get(x, y, geometry.W, s); v != 0 {
					out = append(out, Violation{"G7", fmt.Sprintf("pass-through (%d,%d) source %d E/W underground unbalanced: %d", x, y, s, v)})
				}
			}
		}
	})
	return out
}

// G7 (existence half): pairing-exists and no-nested-tunnel. Both depend on
// cells that a partial assignment may not have decided yet (the matching
// exit, or an intervening endpoint, might still be placed later), so only
// the full Check runs this.
func checkTunnelExistence(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	gap := inst.EffectiveTunnelGap()

	forEachCell(inst.Width, inst.Height, func(x, y int) {
		c := a.At(x, y)
		if c.Kind != TunnelEntrance {
			return
		}
		if !hasValidExit(a, x, y, c.Dir, gap) {
			out = append(out, Violation{"G7", fmt.Sprintf("entrance (%d,%d) dir %v has no matching exit within gap %d", x, y, c.Dir, gap)})
		}
		if blocked, bx, by := intermediateTunnelEndpoint(a, x, y, c.Dir, gap); blocked {
			out = append(out, Violation{"G7", fmt.Sprintf("entrance (%d,%d) dir %v has a tunnel endpoint at (%d,%d) between it and its exit", x, y, c.Dir, bx, by)})
		}
	})
	return out
}

// hasValidExit reports whether some cell at gap n in [0,gap) along d from
// the entrance at (x,y) holds a TunnelExit oriented d.
func hasValidExit(a *Assignment, x, y int, d geometry.Dir, gap int) bool {
	for n := 0; n < gap; n++ {
		ex, ey := geometry.TunnelExit(x, y, d, n)
		if !geometry.Inside(ex, ey, a.Width, a.Height) {
			break
		}
		c := a.At(ex, ey)
		if c.Kind == TunnelExit && c.Dir == d {
			return true
		}
	}
	return false
}

// intermediateTunnelEndpoint reports whether any cell strictly between the
// entrance at (x,y) and its matching exit holds any tunnel endpoint of any
// orientation (Open Question 4: both the pairing-exists rule and this
// stricter no-intermediate-endpoint rule are enforced).
func intermediateTunnelEndpoint(a *Assignment, x, y int, d geometry.Dir, gap int) (bool, int, int) {
	for n := 0; n < gap; n++ {
		ex, ey := geometry.TunnelExit(x, y, d, n)
		if !geometry.Inside(ex, ey, a.Width, a.Height) {
			break
		}
		c := a.At(ex, ey)
		if c.Kind == TunnelExit && c.Dir == d {
			return false, 0, 0
		}
		if c.Kind == TunnelEntrance || c.Kind == TunnelExit {
			return true, ex, ey
		}
	}
	return false, 0, 0
}

// G4, G7 (underground half): border closure for both layers.
func checkBorderClosure(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	pledged := pledgeIndex(inst)
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		for _, d := range geometry.Dirs {
			if !IsBoundary(x, y, d, inst.Width, inst.Height) {
				continue
			}
			for s := 0; s < inst.Sources; s++ {
				if u := a.Underground.Get(x, y, d, s); u != 0 {
					out = append(out, Violation{"G7", fmt.Sprintf("boundary (%d,%d) dir %v source %d: underground nonzero: %d", x, y, d, s, u)})
				}
				if _, ok := pledged[pledgeKey{x, y, d, s}]; ok {
					continue
				}
				if f := a.Surface.Get(x, y, d, s); f != 0 {
					out = append(out, Violation{"G4", fmt.Sprintf("boundary (%d,%d) dir %v source %d: unpledged surface flow nonzero: %d", x, y, d, s, f)})
				}
			}
		}
	})
	return out
}

// G5: per-edge capacity, summed over sources.
func checkCapacity(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		for _, d := range geometry.Dirs {
			sum := 0
			for s := 0; s < inst.Sources; s++ {
				sum += a.Surface.Get(x, y, d, s)
			}
			if sum < -inst.FMax || sum > inst.FMax {
				out = append(out, Violation{"G5", fmt.Sprintf("(%d,%d) dir %v: capacity exceeded, sum=%d, fmax=%d", x, y, d, sum, inst.FMax)})
			}
		}
	})
	return out
}

// mixerSite pairs a placed mixer anchor's location with its orientation,
// used to match placed mixers against a declared network plan.
type mixerSite struct {
	x, y int
	c    Component
}

type pledgeKey struct {
	x, y int
	d    geometry.Dir
	s    int
}

func pledgeIndex(inst *problem.Instance) map[pledgeKey]int {
	m := make(map[pledgeKey]int, len(inst.Pledges))
	for _, p := range inst.Pledges {
		m[pledgeKey{p.X, p.Y, p.Dir, p.Src}] = p.Value
	}
	return m
}

// G9: every declared pledge is met exactly.
func checkPledges(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	for _, p := range inst.Pledges {
		if got := a.Surface.Get(p.X, p.Y, p.Dir, p.Src); got != p.Value {
			out = append(out, Violation{"G9", fmt.Sprintf("pledge (%d,%d,%v,source %d): want %d, got %d", p.X, p.Y, p.Dir, p.Src, p.Value, got)})
		}
	}
	return out
}

// G11: feature gates forbid the corresponding component kinds outright.
func checkFeatureGates(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	if !inst.DisableBelt && !inst.DisableUnderground {
		return out
	}
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		c := a.At(x, y)
		if inst.DisableBelt && c.Kind == Belt {
			out = append(out, Violation{"G11", fmt.Sprintf("belt at (%d,%d) but disableBelt is set", x, y)})
		}
		if inst.DisableUnderground && (c.Kind == TunnelEntrance || c.Kind == TunnelExit) {
			out = append(out, Violation{"G11", fmt.Sprintf("tunnel endpoint at (%d,%d) but disableUnderground is set", x, y)})
		}
	})
	return out
}

// G10: optional mixer-network plan — every declared type used exactly once,
// and each mixer's source-selectivity and "stream actually appears" rules.
func checkNetworkPlan(inst *problem.Instance, a *Assignment) []Violation {
	var out []Violation
	if len(inst.NetworkSolution) == 0 {
		return out
	}

	var mixers []mixerSite
	forEachCell(inst.Width, inst.Height, func(x, y int) {
		c := a.At(x, y)
		if c.Kind == MixerAnchor {
			mixers = append(mixers, mixerSite{x, y, c})
		}
	})

	if len(mixers) != len(inst.NetworkSolution) {
		out = append(out, Violation{"G10", fmt.Sprintf("network plan declares %d mixer types but grid has %d mixers", len(inst.NetworkSolution), len(mixers))})
		return out
	}

	assignment := assignMixerKinds(inst, a, mixers)
	if assignment == nil {
		out = append(out, Violation{"G10", "no assignment of mixer kinds to placed mixers satisfies the declared source selectivity"})
		return out
	}

	for i, site := range mixers {
		mt := inst.NetworkSolution[assignment[i]]
		inputSet := toSet(mt.Inputs)
		outputSet := toSet(mt.Outputs)
		in := geometry.MixerInputDir(site.c.Dir)
		outDir := geometry.MixerOutputDir(site.c.Dir)
		cx, cy := geometry.MixerCompanion(site.x, site.y, site.c.Dir)

		for s := 0; s < inst.Sources; s++ {
			fin := a.Surface.Get(site.x, site.y, in, s) + a.Surface.Get(cx, cy, in, s)
			fout := a.Surface.Get(site.x, site.y, outDir, s) + a.Surface.Get(cx, cy, outDir, s)
			if !inputSet[s] && fin != 0 {
				out = append(out, Violation{"G10", fmt.Sprintf("mixer (%d,%d) source %d not in input set but input flow %d", site.x, site.y, s, fin)})
			}
			if !outputSet[s] && fout != 0 {
				out = append(out, Violation{"G10", fmt.Sprintf("mixer (%d,%d) source %d not in output set but output flow %d", site.x, site.y, s, fout)})
			}
			if inputSet[s] && fin <= 0 {
				out = append(out, Violation{"G10", fmt.Sprintf("mixer (%d,%d) declared input source %d has non-positive combined input %d", site.x, site.y, s, fin)})
			}
			if outputSet[s] && fout >= 0 {
				out = append(out, Violation{"G10", fmt.Sprintf("mixer (%d,%d) declared output source %d has non-negative combined output %d", site.x, site.y, s, fout)})
			}
		}
	}
	return out
}

func toSet(xs []int) map[int]bool {
	m := make(map[int]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

// assignMixerKinds finds a bijection from placed mixers to declared network
// types consistent with each mixer's actual flow selectivity, or nil if
// none exists. Grids carry few mixers in practice, so plain backtracking
// over the bijection is sufficient.
func assignMixerKinds(inst *problem.Instance, a *Assignment, mixers []mixerSite) []int {
	n := len(mixers)
	used := make([]bool, n)
	assign := make([]int, n)
	fits := func(site mixerSite, mt problem.MixerType) bool {
		inputSet, outputSet := toSet(mt.Inputs), toSet(mt.Outputs)
		in, outDir := geometry.MixerInputDir(site.c.Dir), geometry.MixerOutputDir(site.c.Dir)
		cx, cy := geometry.MixerCompanion(site.x, site.y, site.c.Dir)
		for s := 0; s < inst.Sources; s++ {
			fin := a.Surface.Get(site.x, site.y, in, s) + a.Surface.Get(cx, cy, in, s)
			fout := a.Surface.Get(site.x, site.y, outDir, s) + a.Surface.Get(cx, cy, outDir, s)
			if (inputSet[s] && fin <= 0) || (!inputSet[s] && fin != 0) || (outputSet[s] && fout >= 0) || (!outputSet[s] && fout != 0) {
				return false
			}
		}
		return true
	}
	var rec func(i int) bool
	rec = func(i int) bool {
		if i == n {
			return true
		}
		for k := 0; k < n; k++ {
			if used[k] || !fits(mixers[i], inst.NetworkSolution[k]) {
				continue
			}
			assign[i] = k
			used[k] = true
			if rec(i + 1) {
				return true
			}
			used[k] = false
		}
		return false
	}
	if !rec(0) {
		return nil
	}
	return assign
}
