package solve

import (
	"context"
	"testing"

	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
	"github.com/dshills/beltbalancer/pkg/problem"
	"github.com/dshills/beltbalancer/pkg/render"
)

// These fixtures reproduce original_source/balancer_test.py's concrete
// empty-cell, single-cell flow-up/flow-down and 2x2 flow-up cases, confirming the
// belt sign convention (output direction carries non-positive flow, the
// other three accept non-negative flow) against known solved layouts.
func TestSolveConcreteScenarios(t *testing.T) {
	tests := []struct {
		name   string
		inst   *problem.Instance
		expect string
	}{
		{
			name: "empty cell, no pledges",
			inst: &problem.Instance{Width: 1, Height: 1, Sources: 1, FMax: 1},
			expect: "‧",
		},
		{
			name: "single cell flow up",
			inst: &problem.Instance{
				Width: 1, Height: 1, Sources: 1, FMax: 1,
				Pledges: []problem.Pledge{
					{X: 0, Y: 0, Dir: geometry.N, Src: 0, Value: -1},
					{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
				},
			},
			expect: "▲",
		},
		{
			name: "single cell flow down",
			inst: &problem.Instance{
				Width: 1, Height: 1, Sources: 1, FMax: 1,
				Pledges: []problem.Pledge{
					{X: 0, Y: 0, Dir: geometry.N, Src: 0, Value: 1},
					{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: -1},
				},
			},
			expect: "▼",
		},
		{
			name: "2x2 flow up",
			inst: &problem.Instance{
				Width: 2, Height: 2, Sources: 1, FMax: 1,
				Pledges: []problem.Pledge{
					{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
					{X: 0, Y: 1, Dir: geometry.N, Src: 0, Value: -1},
				},
			},
			expect: "▲‧\n▲‧",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Solve(context.Background(), tc.inst, Options{Deterministic: true})
			if err != nil {
				t.Fatalf("Solve returned error: %v", err)
			}
			if result.Outcome != Optimal {
				t.Fatalf("outcome = %v, want Optimal", result.Outcome)
			}
			if got := render.Render(result.Assignment); got != tc.expect {
				t.Fatalf("glyph grid = %q, want %q", got, tc.expect)
			}
		})
	}
}

func TestSolveTwoSourceMixer(t *testing.T) {
	inst := &problem.Instance{
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

	result, err := Solve(context.Background(), inst, Options{Deterministic: true})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if result.Outcome != Optimal {
		t.Fatalf("outcome = %v, want Optimal", result.Outcome)
	}
	anchor := result.Assignment.At(0, 0)
	companion := result.Assignment.At(1, 0)
	if anchor.Kind != model.MixerAnchor {
		t.Fatalf("(0,0) = %v, want MixerAnchor", anchor.Kind)
	}
	if companion.Kind != model.MixerCompanion {
		t.Fatalf("(1,0) = %v, want MixerCompanion", companion.Kind)
	}
	if violations := model.Check(inst, result.Assignment); len(violations) > 0 {
		t.Fatalf("solved assignment violates constraints: %v", violations)
	}
}

func TestSolveTunnelOnly(t *testing.T) {
	inst := &problem.Instance{
		Width: 1, Height: 3, Sources: 1, FMax: 1,
		DisableBelt: true,
		Pledges: []problem.Pledge{
			{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
			{X: 0, Y: 2, Dir: geometry.N, Src: 0, Value: -1},
		},
	}

	result, err := Solve(context.Background(), inst, Options{Deterministic: true})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if result.Outcome != Optimal {
		t.Fatalf("outcome = %v, want Optimal", result.Outcome)
	}
	if violations := model.Check(inst, result.Assignment); len(violations) > 0 {
		t.Fatalf("solved assignment violates constraints: %v", violations)
	}
	entrance := result.Assignment.At(0, 0)
	exit := result.Assignment.At(0, 2)
	if entrance.Kind != model.TunnelEntrance {
		t.Fatalf("(0,0) = %v, want TunnelEntrance", entrance.Kind)
	}
	if exit.Kind != model.TunnelExit || exit.Dir != entrance.Dir {
		t.Fatalf("(0,2) = %v dir %v, want TunnelExit dir %v", exit.Kind, exit.Dir, entrance.Dir)
	}
}

func TestSolveDisableSolveStopsAtBuilt(t *testing.T) {
	inst := &problem.Instance{
		Width: 1, Height: 1, Sources: 1, FMax: 1, DisableSolve: true,
		Pledges: []problem.Pledge{
			{X: 0, Y: 0, Dir: geometry.N, Src: 0, Value: -1},
			{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
		},
	}

	result, err := Solve(context.Background(), inst, Options{})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if result.Outcome != Unknown {
		t.Fatalf("outcome = %v, want Unknown", result.Outcome)
	}
	if result.Assignment == nil {
		t.Fatal("expected a Built assignment even when solving is disabled")
	}
	for _, c := range result.Assignment.Placement {
		if c.Kind != model.Empty {
			t.Fatalf("DisableSolve assignment should be all-Empty, found %v", c.Kind)
		}
	}
}

func TestSolveInfeasible(t *testing.T) {
	inst := &problem.Instance{
		Width: 1, Height: 1, Sources: 1, FMax: 1,
		Pledges: []problem.Pledge{
			{X: 0, Y: 0, Dir: geometry.N, Src: 0, Value: -1},
			{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: -1},
		},
	}

	result, err := Solve(context.Background(), inst, Options{Deterministic: true})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if result.Outcome != Infeasible {
		t.Fatalf("outcome = %v, want Infeasible", result.Outcome)
	}
}

func TestSolveWarmStartSeedIsEvaluatedNotSearched(t *testing.T) {
	inst := &problem.Instance{
		Width: 1, Height: 1, Sources: 1, FMax: 1,
		Solution: "▲",
		Pledges: []problem.Pledge{
			{X: 0, Y: 0, Dir: geometry.N, Src: 0, Value: -1},
			{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
		},
	}

	result, err := Solve(context.Background(), inst, Options{Deterministic: true})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if result.Outcome != Optimal {
		t.Fatalf("outcome = %v, want Optimal", result.Outcome)
	}
	if got := render.Render(result.Assignment); got != "▲" {
		t.Fatalf("glyph grid = %q, want %q", got, "▲")
	}
}

func TestSolveDeterministicIsReproducible(t *testing.T) {
	inst := &problem.Instance{
		Width: 2, Height: 2, Sources: 1, FMax: 1,
		Pledges: []problem.Pledge{
			{X: 0, Y: 0, Dir: geometry.S, Src: 0, Value: 1},
			{X: 0, Y: 1, Dir: geometry.N, Src: 0, Value: -1},
		},
	}

	r1, err := Solve(context.Background(), inst, Options{Deterministic: true})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	r2, err := Solve(context.Background(), inst, Options{Deterministic: true})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if render.Render(r1.Assignment) != render.Render(r2.Assignment) {
		t.Fatal("two deterministic solves of the same instance disagree")
	}
	if r1.Objective != r2.Objective {
		t.Fatalf("objective = %d vs %d, want equal", r1.Objective, r2.Objective)
	}
}
