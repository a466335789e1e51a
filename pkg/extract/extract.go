package extract

import "github.com/dshills/beltbalancer/pkg/model"

// Record is one extracted placement: a cell and the component occupying it
// (Component.Kind is model.Empty when nothing does).
type Record struct {
	X, Y      int
	Component model.Component
}

// Walk returns one Record per cell of a solved assignment, in row-major
// order with rows enumerated from y=H-1 down to y=0 (north-up display
// order) and columns left to right. Because model.Assignment stores exactly
// one Component per cell by construction, there is no separate
// first-match-wins priority check to apply here: the tagged-sum placement
// already is that decision.
func Walk(a *model.Assignment) []Record {
	out := make([]Record, 0, a.Width*a.Height)
	for y := a.Height - 1; y >= 0; y-- {
		for x := 0; x < a.Width; x++ {
			out = append(out, Record{X: x, Y: y, Component: a.At(x, y)})
		}
	}
	return out
}
