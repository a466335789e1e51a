package model

import "github.com/dshills/beltbalancer/pkg/geometry"

// Kind tags which component, if any, occupies a cell.
type Kind int

const (
	Empty Kind = iota
	Belt
	MixerAnchor
	MixerCompanion
	TunnelEntrance
	TunnelExit
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Belt:
		return "Belt"
	case MixerAnchor:
		return "MixerAnchor"
	case MixerCompanion:
		return "MixerCompanion"
	case TunnelEntrance:
		return "TunnelEntrance"
	case TunnelExit:
		return "TunnelExit"
	default:
		return "Unknown"
	}
}

// Component is the tagged-sum placement value of a single cell: which kind
// of thing occupies it, and (for every non-Empty kind) its orientation. This
// replaces the four correlated placement Booleans of the CP formulation
// described by spec.md with a single-valued choice per cell, per the
// "polymorphism over component kinds" design note; Dir is ignored when Kind
// is Empty.
type Component struct {
	Kind Kind
	Dir  geometry.Dir
}

// Occupied reports whether the component takes up the cell at all (false
// only for Empty).
func (c Component) Occupied() bool { return c.Kind != Empty }

// AllComponentChoices enumerates every (Kind, Dir) combination a cell may
// hold, in a fixed deterministic order: Empty first, then Belt, MixerAnchor,
// MixerCompanion, TunnelEntrance, TunnelExit, each over geometry.Dirs. This
// is the domain the search branches over for each cell.
func AllComponentChoices() []Component {
	choices := make([]Component, 0, 1+4*5)
	choices = append(choices, Component{Kind: Empty})
	for _, k := range []Kind{Belt, MixerAnchor, MixerCompanion, TunnelEntrance, TunnelExit} {
		for _, d := range geometry.Dirs {
			choices = append(choices, Component{Kind: k, Dir: d})
		}
	}
	return choices
}
