package extract

import (
	"testing"

	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
)

func TestWalkOrderIsNorthUpRowMajor(t *testing.T) {
	a := model.NewAssignment(2, 2, 1)
	a.Set(0, 0, model.Component{Kind: model.Belt, Dir: geometry.N})
	a.Set(1, 0, model.Component{Kind: model.Belt, Dir: geometry.S})
	a.Set(0, 1, model.Component{Kind: model.TunnelEntrance, Dir: geometry.E})
	a.Set(1, 1, model.Component{Kind: model.TunnelExit, Dir: geometry.W})

	records := Walk(a)
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	want := []Record{
		{X: 0, Y: 1, Component: model.Component{Kind: model.TunnelEntrance, Dir: geometry.E}},
		{X: 1, Y: 1, Component: model.Component{Kind: model.TunnelExit, Dir: geometry.W}},
		{X: 0, Y: 0, Component: model.Component{Kind: model.Belt, Dir: geometry.N}},
		{X: 1, Y: 0, Component: model.Component{Kind: model.Belt, Dir: geometry.S}},
	}
	for i, r := range want {
		if records[i] != r {
			t.Fatalf("record %d = %+v, want %+v", i, records[i], r)
		}
	}
}

func TestWalkIncludesEmptyCells(t *testing.T) {
	a := model.NewAssignment(1, 1, 1)
	records := Walk(a)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Component.Kind != model.Empty {
		t.Fatalf("component = %v, want Empty", records[0].Component.Kind)
	}
}
