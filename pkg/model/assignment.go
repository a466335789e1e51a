package model

import (
	"github.com/dshills/beltbalancer/pkg/problem"
)

// Assignment is a fully or partially decided candidate: a Component per
// cell, and the surface/underground flow fields. It is what the solver
// mutates during search and what pkg/extract reads once solving finishes.
// There is no incremental mutation after solving; an Assignment is read
// once for extraction and once for hints feeding a subsequent solve.
type Assignment struct {
	Width, Height int
	Sources       int

	// Placement holds one Component per cell, row-major by (y*Width+x).
	// Index helper: idx(x,y).
	Placement []Component

	Surface     *FlowField
	Underground *FlowField
}

// NewAssignment creates an all-Empty, all-zero-flow assignment over a W x H
// grid with S sources.
func NewAssignment(w, h, s int) *Assignment {
	placement := make([]Component, w*h)
	return &Assignment{
		Width:       w,
		Height:      h,
		Sources:     s,
		Placement:   placement,
		Surface:     NewFlowField(w, h),
		Underground: NewFlowField(w, h),
	}
}

func (a *Assignment) idx(x, y int) int { return y*a.Width + x }

// At returns the Component occupying (x,y).
func (a *Assignment) At(x, y int) Component { return a.Placement[a.idx(x, y)] }

// Set places comp at (x,y).
func (a *Assignment) Set(x, y int, comp Component) { a.Placement[a.idx(x, y)] = comp }

// Clone deep-copies the assignment, used by the solver when it needs to
// branch without disturbing the parent candidate.
func (a *Assignment) Clone() *Assignment {
	cp := &Assignment{
		Width:       a.Width,
		Height:      a.Height,
		Sources:     a.Sources,
		Placement:   append([]Component(nil), a.Placement...),
		Surface:     a.Surface.Clone(),
		Underground: a.Underground.Clone(),
	}
	return cp
}

// NewAssignmentForInstance allocates an empty assignment sized for inst.
func NewAssignmentForInstance(inst *problem.Instance) *Assignment {
	return NewAssignment(inst.Width, inst.Height, inst.Sources)
}

// ObjectiveWeights are the per-component weighted costs from spec.md's
// objective: belts cost 1, mixers 5 (counted once per mixer, at the anchor
// cell only), tunnel endpoints 2 each. Open Question 1 (spec.md §9) leaves
// the rationale for these specific weights unstated; they are kept exactly
// as given rather than guessed at.
const (
	WeightBelt           = 1
	WeightMixer          = 5
	WeightTunnelEntrance = 2
	WeightTunnelExit     = 2
)

// Objective computes the weighted component-count objective of a (typically
// complete) assignment.
func (a *Assignment) Objective() int {
	total := 0
	for _, c := range a.Placement {
		switch c.Kind {
		case Belt:
			total += WeightBelt
		case MixerAnchor:
			total += WeightMixer
		case TunnelEntrance:
			total += WeightTunnelEntrance
		case TunnelExit:
			total += WeightTunnelExit
		}
	}
	return total
}

// forEachCell calls fn for every cell in row-major (y then x) order,
// ascending, matching the order the solver assigns cells in.
func forEachCell(w, h int, fn func(x, y int)) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fn(x, y)
		}
	}
}
