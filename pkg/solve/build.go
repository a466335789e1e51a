package solve

import (
	"fmt"

	"github.com/dshills/beltbalancer/pkg/model"
	"github.com/dshills/beltbalancer/pkg/problem"
	"github.com/dshills/beltbalancer/pkg/render"
)

// hintSet maps a cell index to the component a hint/seed grid suggests or
// pins there, deduplicated by cell so the first file to mention a cell
// wins and later duplicates are silently dropped, per spec.md's warm-start
// deduplication note.
type hintSet map[int]model.Component

// Build validates inst, allocates an empty Assignment sized for it, posts
// every pledge as a fixed surface flow value, and parses any seed or hint
// solutions. Hard seeds (inst.Solution) are returned as a fully pinned
// starting Assignment whose Placement the search must not alter; hints
// (inst.HintSolutions) are returned as a hintSet the search consults to
// order its candidate choices but may override.
func Build(inst *problem.Instance) (*model.Assignment, hintSet, error) {
	if err := inst.Validate(); err != nil {
		return nil, nil, err
	}

	a := model.NewAssignmentForInstance(inst)
	for _, p := range inst.Pledges {
		a.Surface.Set(p.X, p.Y, p.Dir, p.Src, p.Value)
	}

	if inst.Solution != "" {
		placements, err := render.Parse(inst.Solution, inst.Width, inst.Height)
		if err != nil {
			return nil, nil, fmt.Errorf("solve: seed solution: %w", err)
		}
		a.Placement = placements
	}

	hints := make(hintSet)
	for i, h := range inst.HintSolutions {
		placements, err := render.Parse(h, inst.Width, inst.Height)
		if err != nil {
			return nil, nil, fmt.Errorf("solve: hint solution %d: %w", i, err)
		}
		for idx, c := range placements {
			if _, exists := hints[idx]; exists {
				continue
			}
			if c.Kind != model.Empty {
				hints[idx] = c
			}
		}
	}

	return a, hints, nil
}
