package render

import (
	"testing"

	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
)

func TestRenderEmptyGrid(t *testing.T) {
	a := model.NewAssignment(2, 1, 1)
	if got := Render(a); got != "‧‧" {
		t.Fatalf("Render = %q, want %q", got, "‧‧")
	}
}

func TestRenderIsNorthUp(t *testing.T) {
	a := model.NewAssignment(1, 2, 1)
	a.Set(0, 0, model.Component{Kind: model.Belt, Dir: geometry.N}) // bottom row
	a.Set(0, 1, model.Component{Kind: model.Belt, Dir: geometry.S}) // top row

	want := "▼\n▲"
	if got := Render(a); got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	a := model.NewAssignment(3, 2, 1)
	a.Set(0, 0, model.Component{Kind: model.Belt, Dir: geometry.N})
	a.Set(1, 0, model.Component{Kind: model.MixerAnchor, Dir: geometry.E})
	a.Set(2, 0, model.Component{Kind: model.TunnelEntrance, Dir: geometry.W})
	a.Set(0, 1, model.Component{Kind: model.TunnelExit, Dir: geometry.S})
	a.Set(1, 1, model.Component{Kind: model.MixerCompanion, Dir: geometry.E})
	a.Set(2, 1, model.Component{})

	grid := Render(a)
	placement, err := Parse(grid, 3, 2)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for i := range a.Placement {
		if placement[i] != a.Placement[i] {
			t.Fatalf("cell %d = %v, want %v", i, placement[i], a.Placement[i])
		}
	}
}

func TestParseRejectsUnknownGlyph(t *testing.T) {
	_, err := Parse("?", 1, 1)
	if err == nil {
		t.Fatal("expected an error for an unrecognized glyph")
	}
}

func TestParseAbortsOnSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a size mismatch")
		}
	}()
	Parse("‧‧", 3, 1)
}
