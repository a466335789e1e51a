package solve

import (
	"context"
	"math/rand"

	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
	"github.com/dshills/beltbalancer/pkg/problem"
)

// filteredDomain is the per-cell candidate list the search branches over:
// every component choice the instance's feature gates allow, minus
// MixerCompanion, which is only ever placed as a side effect of choosing a
// MixerAnchor at some other cell. A non-nil rng shuffles the order, giving
// independent portfolio workers diverse search trajectories over the same
// instance.
func filteredDomain(inst *problem.Instance, rng *rand.Rand) []model.Component {
	var out []model.Component
	for _, c := range model.AllComponentChoices() {
		if c.Kind == model.MixerCompanion {
			continue
		}
		if inst.DisableBelt && c.Kind == model.Belt {
			continue
		}
		if inst.DisableUnderground && (c.Kind == model.TunnelEntrance || c.Kind == model.TunnelExit) {
			continue
		}
		out = append(out, c)
	}
	if rng != nil {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// evaluateAssignment derives the flow values a fixed placement implies and
// validates the result. It returns ok=false if the derived assignment
// still violates some constraint group, meaning this placement is
// infeasible regardless of flow values.
func evaluateAssignment(inst *problem.Instance, a *model.Assignment) (candidate *model.Assignment, objective int, ok bool) {
	candidate = a.Clone()
	deriveFlows(inst, candidate)
	if violations := model.Check(inst, candidate); len(violations) > 0 {
		return nil, 0, false
	}
	return candidate, candidate.Objective(), true
}

// partialConsistent derives the flow values the placement made so far
// implies and checks them against every constraint group that is already a
// forced consequence of those decisions (model.CheckPartial), treating
// cells at row-major index >= decided as not yet chosen rather than chosen
// Empty. It runs on a clone so the derived flow values never leak into st.a,
// which backtracking only ever restores at the Placement level. Called
// after every cell the search places, this is what lets a contradiction
// prune its subtree immediately instead of waiting for a complete leaf.
func partialConsistent(inst *problem.Instance, a *model.Assignment, decided int) bool {
	candidate := a.Clone()
	deriveFlows(inst, candidate)
	return len(model.CheckPartial(inst, candidate, decided)) == 0
}

// searchState is the backtracking search over per-cell component choice.
// MixerAnchor choices atomically claim their companion cell: if the
// companion lies earlier in traversal order it must currently be Empty and
// is overwritten (and restored on backtrack); if it lies later it is
// reserved so the search, on reaching it, places the companion without
// branching there.
type searchState struct {
	inst       *problem.Instance
	w, h       int
	a          *model.Assignment
	hints      hintSet
	domain     []model.Component
	feasibleOK bool
	ctx        context.Context

	best     *model.Assignment
	bestObj  int
	haveBest bool
}

func (st *searchState) timedOut() bool {
	select {
	case <-st.ctx.Done():
		return true
	default:
		return false
	}
}

func (st *searchState) orderedDomain(idx int) []model.Component {
	hint, ok := st.hints[idx]
	if !ok {
		return st.domain
	}
	ordered := make([]model.Component, 0, len(st.domain))
	ordered = append(ordered, hint)
	for _, c := range st.domain {
		if c != hint {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

func (st *searchState) evaluateLeaf() {
	candidate, obj, ok := evaluateAssignment(st.inst, st.a)
	if !ok {
		return
	}
	if !st.haveBest || obj < st.bestObj {
		st.best, st.bestObj, st.haveBest = candidate, obj, true
	}
}

func (st *searchState) step(idx int, reserved []model.Component, hasReserved []bool) {
	if st.timedOut() {
		return
	}
	if st.feasibleOK && st.haveBest {
		return
	}

	n := st.w * st.h
	if idx == n {
		st.evaluateLeaf()
		return
	}
	x, y := idx%st.w, idx/st.w

	if hasReserved[idx] {
		prev := st.a.At(x, y)
		st.a.Set(x, y, reserved[idx])
		if partialConsistent(st.inst, st.a, idx+1) {
			st.step(idx+1, reserved, hasReserved)
		}
		st.a.Set(x, y, prev)
		return
	}

	for _, c := range st.orderedDomain(idx) {
		if st.feasibleOK && st.haveBest {
			return
		}
		if c.Kind == model.MixerAnchor {
			st.tryMixerAnchor(idx, x, y, c, reserved, hasReserved)
			continue
		}
		prev := st.a.At(x, y)
		st.a.Set(x, y, c)
		if partialConsistent(st.inst, st.a, idx+1) {
			st.step(idx+1, reserved, hasReserved)
		}
		st.a.Set(x, y, prev)
	}
}

func (st *searchState) tryMixerAnchor(idx, x, y int, c model.Component, reserved []model.Component, hasReserved []bool) {
	cx, cy := geometry.MixerCompanion(x, y, c.Dir)
	if !geometry.Inside(cx, cy, st.w, st.h) {
		return
	}
	cIdx := cy*st.w + cx

	if cIdx < idx {
		if st.a.At(cx, cy).Kind != model.Empty {
			return
		}
		prevAnchor, prevCompanion := st.a.At(x, y), st.a.At(cx, cy)
		st.a.Set(x, y, c)
		st.a.Set(cx, cy, model.Component{Kind: model.MixerCompanion, Dir: c.Dir})
		if partialConsistent(st.inst, st.a, idx+1) {
			st.step(idx+1, reserved, hasReserved)
		}
		st.a.Set(x, y, prevAnchor)
		st.a.Set(cx, cy, prevCompanion)
		return
	}

	prevAnchor := st.a.At(x, y)
	st.a.Set(x, y, c)
	wasReserved, prevReserved := hasReserved[cIdx], reserved[cIdx]
	hasReserved[cIdx] = true
	reserved[cIdx] = model.Component{Kind: model.MixerCompanion, Dir: c.Dir}
	if partialConsistent(st.inst, st.a, idx+1) {
		st.step(idx+1, reserved, hasReserved)
	}
	hasReserved[cIdx], reserved[cIdx] = wasReserved, prevReserved
	st.a.Set(x, y, prevAnchor)
}

// search runs the backtracking placement search over a starting from its
// current Placement (hints only move a suggested component to the front of a
// cell's candidate list), returning the best assignment found, its
// objective, and whether the context deadline was hit before the search tree
// was exhausted. rng orders each cell's domain; since the search is
// exhaustive whenever feasibleOK is false, the optimal objective it settles
// on does not depend on that order, but which of several equally-good
// layouts is kept (the first one found) and which layout an early
// feasibleOK stop returns do.
func search(ctx context.Context, inst *problem.Instance, a *model.Assignment, hints hintSet, feasibleOK bool, rng *rand.Rand) (*model.Assignment, int, bool) {
	st := &searchState{
		inst:       inst,
		w:          inst.Width,
		h:          inst.Height,
		a:          a,
		hints:      hints,
		domain:     filteredDomain(inst, rng),
		feasibleOK: feasibleOK,
		ctx:        ctx,
	}
	reserved := make([]model.Component, st.w*st.h)
	hasReserved := make([]bool, st.w*st.h)
	st.step(0, reserved, hasReserved)
	return st.best, st.bestObj, st.timedOut()
}
