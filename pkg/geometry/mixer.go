package geometry

// mixerCompanionOffset gives the second cell of a mixer whose first (anchor)
// cell is (x,y) and whose shared output direction is d.
//
// Mapping fixed by spec: N -> (+1,0), S -> (-1,0), E -> (0,-1), W -> (0,+1).
var mixerCompanionOffset = [4]offset{
	N: {1, 0},
	S: {-1, 0},
	E: {0, -1},
	W: {0, 1},
}

// MixerCompanion returns the companion cell of a mixer anchored at (x,y)
// with output direction d.
func MixerCompanion(x, y int, d Dir) (int, int) {
	d.checkValid()
	o := mixerCompanionOffset[d]
	return x + o.dx, y + o.dy
}

// MixerAnchor is the inverse of MixerCompanion: given the companion cell of
// a mixer oriented d, recover the anchor cell.
func MixerAnchor(x, y int, d Dir) (int, int) {
	d.checkValid()
	o := mixerCompanionOffset[d]
	return x - o.dx, y - o.dy
}

// MixerInputDir returns the shared input direction of a mixer oriented d.
func MixerInputDir(d Dir) Dir { return Opposite(d) }

// MixerOutputDir returns the shared output direction of a mixer oriented d
// (this is just d, named for readability at call sites).
func MixerOutputDir(d Dir) Dir { d.checkValid(); return d }

// MixerZeroDirs returns the two lateral directions that must carry zero flow
// on both mixer cells.
func MixerZeroDirs(d Dir) [2]Dir {
	return Perpendicular(d)
}
