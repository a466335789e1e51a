package geometry

import "testing"

func TestTunnelExitAtGapZeroIsAdjacent(t *testing.T) {
	for _, d := range Dirs {
		ex, ey := TunnelExit(0, 0, d, 0)
		dx, dy := Offset(d)
		if ex != dx || ey != dy {
			t.Errorf("TunnelExit(0,0,%v,0) = (%d,%d), want (%d,%d)", d, ex, ey, dx, dy)
		}
	}
}

func TestTunnelExitScalesWithGap(t *testing.T) {
	ex, ey := TunnelExit(0, 0, E, 3)
	if ex != 4 || ey != 0 {
		t.Errorf("TunnelExit(0,0,E,3) = (%d,%d), want (4,0)", ex, ey)
	}
}

func TestTunnelZeroDirsComplementActiveDir(t *testing.T) {
	for _, d := range Dirs {
		activeEntrance := Opposite(d)
		for _, z := range TunnelEntranceZeroDirs(d) {
			if z == activeEntrance {
				t.Errorf("TunnelEntranceZeroDirs(%v) includes active dir %v", d, activeEntrance)
			}
		}
		for _, z := range TunnelExitZeroDirs(d) {
			if z == d {
				t.Errorf("TunnelExitZeroDirs(%v) includes active dir %v", d, d)
			}
		}
	}
}
