package solve

import (
	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
	"github.com/dshills/beltbalancer/pkg/problem"
)

// edgeRef names one (cell, direction) flow entry for one layer. knownSet
// tracks which entries a propagation pass has already pinned, for one
// source; every mark touches both sides of the edge it belongs to, since
// model.FlowField shares storage across a shared edge.
type edgeRef struct {
	x, y int
	d    geometry.Dir
}

type knownSet map[edgeRef]bool

func (k knownSet) mark(x, y int, d geometry.Dir, w, h int) {
	k[edgeRef{x, y, d}] = true
	dx, dy := geometry.Offset(d)
	nx, ny := x+dx, y+dy
	if geometry.Inside(nx, ny, w, h) {
		k[edgeRef{nx, ny, geometry.Opposite(d)}] = true
	}
}

func (k knownSet) has(x, y int, d geometry.Dir) bool { return k[edgeRef{x, y, d}] }

// deriveFlows fills in the surface and underground flow values a fixed
// placement implies, for every source, starting from the instance's
// pledges. See the package doc for why no search over flow values is
// needed: anything still undetermined once propagation reaches a fixpoint
// is left at the FlowField's default zero, always a valid completion.
func deriveFlows(inst *problem.Instance, a *model.Assignment) {
	for s := 0; s < inst.Sources; s++ {
		deriveFlowsForSource(inst, a, s)
	}
}

func deriveFlowsForSource(inst *problem.Instance, a *model.Assignment, s int) {
	w, h := inst.Width, inst.Height
	surfaceKnown := make(knownSet)
	undergroundKnown := make(knownSet)

	for _, p := range inst.Pledges {
		if p.Src == s {
			surfaceKnown.mark(p.X, p.Y, p.Dir, w, h)
		}
	}

	maxPasses := w*h*4 + 8
	for pass := 0; pass < maxPasses; pass++ {
		changed := false
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if deriveCell(a, surfaceKnown, undergroundKnown, x, y, s, w, h) {
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

func deriveCell(a *model.Assignment, surfaceKnown, undergroundKnown knownSet, x, y, s, w, h int) bool {
	c := a.At(x, y)
	changed := false
	switch c.Kind {
	case model.Belt:
		changed = deriveBelt(a, surfaceKnown, x, y, s, w, h) || changed
	case model.MixerAnchor:
		changed = deriveMixer(a, surfaceKnown, x, y, c.Dir, s, w, h) || changed
	case model.TunnelEntrance:
		changed = deriveTunnelEntrance(a, surfaceKnown, undergroundKnown, x, y, c.Dir, s, w, h) || changed
	case model.TunnelExit:
		changed = deriveTunnelExit(a, surfaceKnown, undergroundKnown, x, y, c.Dir, s, w, h) || changed
	}
	if c.Kind != model.TunnelEntrance && c.Kind != model.TunnelExit {
		changed = derivePassThrough(a, undergroundKnown, x, y, s, w, h) || changed
	}
	return changed
}

// deriveBelt derives the one missing direction from the conservation
// equation when exactly three of the belt's four directions are known.
func deriveBelt(a *model.Assignment, known knownSet, x, y, s, w, h int) bool {
	sum := 0
	unknowns := 0
	var missing geometry.Dir
	for _, d := range geometry.Dirs {
		if known.has(x, y, d) {
			sum += a.Surface.Get(x, y, d, s)
		} else {
			unknowns++
			missing = d
		}
	}
	if unknowns != 1 {
		return false
	}
	a.Surface.Set(x, y, missing, s, -sum)
	known.mark(x, y, missing, w, h)
	return true
}

// deriveMixer derives mixer terms from its two equations: the two outputs
// are equal, and the four terms (two inputs, two outputs) sum to zero.
func deriveMixer(a *model.Assignment, known knownSet, x, y int, d geometry.Dir, s, w, h int) bool {
	cx, cy := geometry.MixerCompanion(x, y, d)
	if !geometry.Inside(cx, cy, w, h) {
		return false
	}
	in := geometry.MixerInputDir(d)
	out := geometry.MixerOutputDir(d)
	changed := false

	if known.has(x, y, out) && !known.has(cx, cy, out) {
		a.Surface.Set(cx, cy, out, s, a.Surface.Get(x, y, out, s))
		known.mark(cx, cy, out, w, h)
		changed = true
	} else if known.has(cx, cy, out) && !known.has(x, y, out) {
		a.Surface.Set(x, y, out, s, a.Surface.Get(cx, cy, out, s))
		known.mark(x, y, out, w, h)
		changed = true
	}

	type term struct {
		x, y int
		d    geometry.Dir
	}
	terms := [4]term{{x, y, in}, {cx, cy, in}, {x, y, out}, {cx, cy, out}}
	sum, unknowns, missing := 0, 0, -1
	for i, t := range terms {
		if known.has(t.x, t.y, t.d) {
			sum += a.Surface.Get(t.x, t.y, t.d, s)
		} else {
			unknowns++
			missing = i
		}
	}
	if unknowns == 0 { // all four known, nothing left to derive this round
		return changed
	}
	if unknowns == 1 {
		t := terms[missing]
		a.Surface.Set(t.x, t.y, t.d, s, -sum)
		known.mark(t.x, t.y, t.d, w, h)
		changed = true
	}
	return changed
}

// deriveTunnelEntrance derives either side of f[x,y,in] + u[x,y,d] = 0 from
// the other once one is known.
func deriveTunnelEntrance(a *model.Assignment, surfaceKnown, undergroundKnown knownSet, x, y int, d geometry.Dir, s, w, h int) bool {
	in := geometry.Opposite(d)
	sKnown := surfaceKnown.has(x, y, in)
	uKnown := undergroundKnown.has(x, y, d)
	switch {
	case sKnown && !uKnown:
		a.Underground.Set(x, y, d, s, -a.Surface.Get(x, y, in, s))
		undergroundKnown.mark(x, y, d, w, h)
		return true
	case uKnown && !sKnown:
		a.Surface.Set(x, y, in, s, -a.Underground.Get(x, y, d, s))
		surfaceKnown.mark(x, y, in, w, h)
		return true
	default:
		return false
	}
}

// deriveTunnelExit derives either side of f[x,y,d] + u[x,y,opposite(d)] = 0.
func deriveTunnelExit(a *model.Assignment, surfaceKnown, undergroundKnown knownSet, x, y int, d geometry.Dir, s, w, h int) bool {
	rev := geometry.Opposite(d)
	sKnown := surfaceKnown.has(x, y, d)
	uKnown := undergroundKnown.has(x, y, rev)
	switch {
	case sKnown && !uKnown:
		a.Underground.Set(x, y, rev, s, -a.Surface.Get(x, y, d, s))
		undergroundKnown.mark(x, y, rev, w, h)
		return true
	case uKnown && !sKnown:
		a.Surface.Set(x, y, d, s, -a.Underground.Get(x, y, rev, s))
		surfaceKnown.mark(x, y, d, w, h)
		return true
	default:
		return false
	}
}

// derivePassThrough relays a known underground value across a non-endpoint
// cell to the opposite direction on the same axis, for both axes.
func derivePassThrough(a *model.Assignment, known knownSet, x, y, s, w, h int) bool {
	changed := false
	for _, d := range [2]geometry.Dir{geometry.N, geometry.E} {
		opp := geometry.Opposite(d)
		k1, k2 := known.has(x, y, d), known.has(x, y, opp)
		switch {
		case k1 && !k2:
			a.Underground.Set(x, y, opp, s, -a.Underground.Get(x, y, d, s))
			known.mark(x, y, opp, w, h)
			changed = true
		case k2 && !k1:
			a.Underground.Set(x, y, d, s, -a.Underground.Get(x, y, opp, s))
			known.mark(x, y, d, w, h)
			changed = true
		}
	}
	return changed
}
