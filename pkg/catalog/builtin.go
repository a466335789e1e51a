package catalog

import (
	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/problem"
)

// The built-in entries mirror spec.md's concrete end-to-end scenarios
// table, scaled to integers where the reference pledges are fractional
// (Open Question 3 keeps the flow domain integer-only; a fractional
// pledge like -0.5 becomes -1 once every pledge in the same scenario is
// scaled by the same factor, here x2).
func init() {
	Register("empty-cell", func() *problem.Instance {
		return &problem.Instance{Width: 1, Height: 1, Sources: 1, FMax: 1}
	})

	Register("single-belt-north", func() *problem.Instance {
		return &problem.Instance{
			Width: 1, Height: 1, Sources: 1, FMax: 1,
			Pledges: []problem.Pledge{
				{X: 0, Y: 0, Dir: geometry.N, Src: 0, Value: -1},
				{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
			},
		}
	})

	Register("single-belt-south", func() *problem.Instance {
		return &problem.Instance{
			Width: 1, Height: 1, Sources: 1, FMax: 1,
			Pledges: []problem.Pledge{
				{X: 0, Y: 0, Dir: geometry.N, Src: 0, Value: 1},
				{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: -1},
			},
		}
	})

	Register("two-belt-chain", func() *problem.Instance {
		return &problem.Instance{
			Width: 2, Height: 2, Sources: 1, FMax: 1,
			Pledges: []problem.Pledge{
				{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
				{X: 0, Y: 1, Dir: geometry.N, Src: 0, Value: -1},
			},
		}
	})

	Register("two-source-mixer", func() *problem.Instance {
		return &problem.Instance{
			Width: 2, Height: 1, Sources: 2, FMax: 2,
			Pledges: []problem.Pledge{
				{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 2},
				{X: 1, Y: 0, Dir: geometry.S, Src: 1, Value: 2},
				{X: 0, Y: 0, Dir: geometry.N, Src: 0, Value: -1},
				{X: 0, Y: 0, Dir: geometry.N, Src: 1, Value: -1},
				{X: 1, Y: 0, Dir: geometry.N, Src: 0, Value: -1},
				{X: 1, Y: 0, Dir: geometry.N, Src: 1, Value: -1},
			},
		}
	})

	Register("tunnel-only", func() *problem.Instance {
		return &problem.Instance{
			Width: 1, Height: 3, Sources: 1, FMax: 1,
			DisableBelt: true,
			Pledges: []problem.Pledge{
				{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
				{X: 0, Y: 2, Dir: geometry.N, Src: 0, Value: -1},
			},
		}
	})
}
