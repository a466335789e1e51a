package geometry

// DefaultTunnelGap is the maximum underground gap length G used when a
// problem instance does not override it. The source drafts disagreed (9 in
// one, 3 in another); this is the value used by the latest maintained
// driver, per spec.md's instruction to default to it.
const DefaultTunnelGap = 9

// TunnelExit returns the exit cell for an entrance at (x,y) oriented d with
// gap n (0 <= n < gap); the exit lies n+1 cells along d.
func TunnelExit(x, y int, d Dir, n int) (int, int) {
	d.checkValid()
	dx, dy := Offset(d)
	steps := n + 1
	return x + dx*steps, y + dy*steps
}

// TunnelEntranceZeroDirs returns the surface directions that must carry zero
// flow at a tunnel entrance oriented d: every direction except the single
// inbound direction Opposite(d).
func TunnelEntranceZeroDirs(d Dir) [3]Dir {
	return NonOpposite(d)
}

// TunnelExitZeroDirs returns the surface directions that must carry zero
// flow at a tunnel exit oriented d: every direction except the single
// outbound direction d.
func TunnelExitZeroDirs(d Dir) [3]Dir {
	return NonOpposite(Opposite(d))
}
