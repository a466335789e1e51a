package problem

import (
	"fmt"

	"github.com/dshills/beltbalancer/pkg/geometry"
)

// Pledge fixes the flow crossing a grid edge: source Src's signed flow value
// on cell (X,Y)'s Dir-facing edge.
type Pledge struct {
	X, Y  int
	Dir   geometry.Dir
	Src   int
	Value int
}

// pledgeWire is the YAML/JSON wire shape for a Pledge: geometry.Dir has no
// marshaller of its own, so the wire format spells it as a one-letter string.
type pledgeWire struct {
	X     int    `yaml:"x" json:"x"`
	Y     int    `yaml:"y" json:"y"`
	Dir   string `yaml:"dir" json:"dir"`
	Src   int    `yaml:"source" json:"source"`
	Value int    `yaml:"value" json:"value"`
}

func dirToWire(d geometry.Dir) string {
	return d.String()
}

func dirFromWire(s string) (geometry.Dir, error) {
	switch s {
	case "N":
		return geometry.N, nil
	case "S":
		return geometry.S, nil
	case "E":
		return geometry.E, nil
	case "W":
		return geometry.W, nil
	default:
		return 0, fmt.Errorf("problem: invalid direction %q, want one of N,S,E,W", s)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (p Pledge) MarshalYAML() (interface{}, error) {
	return pledgeWire{X: p.X, Y: p.Y, Dir: dirToWire(p.Dir), Src: p.Src, Value: p.Value}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Pledge) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var w pledgeWire
	if err := unmarshal(&w); err != nil {
		return err
	}
	d, err := dirFromWire(w.Dir)
	if err != nil {
		return err
	}
	p.X, p.Y, p.Dir, p.Src, p.Value = w.X, w.Y, d, w.Src, w.Value
	return nil
}

// MixerType is one declared entry of an optional mixer-network plan: the set
// of sources that must appear on the mixer's inputs and the set that must
// appear on its outputs.
type MixerType struct {
	Inputs  []int `yaml:"inputs" json:"inputs"`
	Outputs []int `yaml:"outputs" json:"outputs"`
}

// Instance is one problem statement: a rectangular grid, a source count, a
// list of boundary pledges, a per-edge capacity, and optional flags.
type Instance struct {
	Width   int `yaml:"width" json:"width"`
	Height  int `yaml:"height" json:"height"`
	Sources int `yaml:"sources" json:"sources"`
	FMax    int `yaml:"fmax" json:"fmax"`

	Pledges []Pledge `yaml:"pledges" json:"pledges"`

	DisableBelt        bool `yaml:"disableBelt,omitempty" json:"disableBelt,omitempty"`
	DisableUnderground bool `yaml:"disableUnderground,omitempty" json:"disableUnderground,omitempty"`
	FeasibleOK         bool `yaml:"feasibleOk,omitempty" json:"feasibleOk,omitempty"`
	DisableSolve       bool `yaml:"disableSolve,omitempty" json:"disableSolve,omitempty"`

	MaxParallel       int  `yaml:"maxParallel,omitempty" json:"maxParallel,omitempty"`
	TimeLimitSeconds  int  `yaml:"timeLimitSeconds,omitempty" json:"timeLimitSeconds,omitempty"`
	DeterministicTime bool `yaml:"deterministicTime,omitempty" json:"deterministicTime,omitempty"`

	TunnelGap int `yaml:"tunnelGap,omitempty" json:"tunnelGap,omitempty"`

	NetworkSolution []MixerType `yaml:"networkSolution,omitempty" json:"networkSolution,omitempty"`

	// Solution is an optional seed glyph grid: every placement assignment it
	// describes is posted as a hard constraint.
	Solution string `yaml:"solution,omitempty" json:"solution,omitempty"`

	// HintSolutions are optional hint glyph grids: assignments are
	// suggested to the search, deduplicated by variable name, and may be
	// overridden.
	HintSolutions []string `yaml:"hintSolutions,omitempty" json:"hintSolutions,omitempty"`
}

// ValidationError reports a malformed problem instance detected at
// model-build time: a duplicate contradictory pledge, an out-of-range
// value, an out-of-grid cell, or a direction not oriented outward at that
// border. No partial model is left observable when this is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("problem: invalid instance: %s", e.Reason)
}

// EffectiveTunnelGap returns the instance's tunnel gap, defaulting to
// geometry.DefaultTunnelGap when unset.
func (inst *Instance) EffectiveTunnelGap() int {
	if inst.TunnelGap > 0 {
		return inst.TunnelGap
	}
	return geometry.DefaultTunnelGap
}

// Validate checks structural well-formedness: grid bounds, pledge bounds and
// direction orientation, and pledge-value range. It also rejects duplicate
// pledges that pin the same (cell, dir, source) to two different values.
func (inst *Instance) Validate() error {
	if inst.Width <= 0 || inst.Height <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("grid dimensions must be positive, got %dx%d", inst.Width, inst.Height)}
	}
	if inst.Sources <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("source count must be positive, got %d", inst.Sources)}
	}
	if inst.FMax <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("fmax must be positive, got %d", inst.FMax)}
	}

	type key struct {
		x, y int
		d    geometry.Dir
		s    int
	}
	seen := make(map[key]int, len(inst.Pledges))

	for i, p := range inst.Pledges {
		if !geometry.Inside(p.X, p.Y, inst.Width, inst.Height) {
			return &ValidationError{Reason: fmt.Sprintf("pledge %d: cell (%d,%d) is outside the %dx%d grid", i, p.X, p.Y, inst.Width, inst.Height)}
		}
		if p.Src < 0 || p.Src >= inst.Sources {
			return &ValidationError{Reason: fmt.Sprintf("pledge %d: source %d is outside [0,%d)", i, p.Src, inst.Sources)}
		}
		if p.Value < -inst.FMax || p.Value > inst.FMax {
			return &ValidationError{Reason: fmt.Sprintf("pledge %d: value %d is outside [-%d,%d]", i, p.Value, inst.FMax, inst.FMax)}
		}
		if !isOutwardBorderDir(p.X, p.Y, p.Dir, inst.Width, inst.Height) {
			return &ValidationError{Reason: fmt.Sprintf("pledge %d: direction %v at (%d,%d) is not oriented outward at the grid border", i, p.Dir, p.X, p.Y)}
		}

		k := key{p.X, p.Y, p.Dir, p.Src}
		if prevValue, ok := seen[k]; ok && prevValue != p.Value {
			return &ValidationError{Reason: fmt.Sprintf("pledge %d: contradicts an earlier pledge on (%d,%d,%v,source %d): %d vs %d", i, p.X, p.Y, p.Dir, p.Src, p.Value, prevValue)}
		}
		seen[k] = p.Value
	}

	for i, mt := range inst.NetworkSolution {
		for _, s := range mt.Inputs {
			if s < 0 || s >= inst.Sources {
				return &ValidationError{Reason: fmt.Sprintf("network solution type %d: input source %d is outside [0,%d)", i, s, inst.Sources)}
			}
		}
		for _, s := range mt.Outputs {
			if s < 0 || s >= inst.Sources {
				return &ValidationError{Reason: fmt.Sprintf("network solution type %d: output source %d is outside [0,%d)", i, s, inst.Sources)}
			}
		}
	}
	return nil
}

// isOutwardBorderDir reports whether (x,y)'s dir-facing edge is a grid
// boundary edge (the neighbor across it lies outside the grid).
func isOutwardBorderDir(x, y int, dir geometry.Dir, w, h int) bool {
	dx, dy := geometry.Offset(dir)
	nx, ny := x+dx, y+dy
	return !geometry.Inside(nx, ny, w, h)
}
