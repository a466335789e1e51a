package geometry

import "testing"

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range Dirs {
		if Opposite(Opposite(d)) != d {
			t.Errorf("Opposite(Opposite(%v)) = %v, want %v", d, Opposite(Opposite(d)), d)
		}
	}
}

func TestOffsetAndOppositeCancel(t *testing.T) {
	for _, d := range Dirs {
		dx, dy := Offset(d)
		odx, ody := Offset(Opposite(d))
		if dx != -odx || dy != -ody {
			t.Errorf("Offset(%v)=(%d,%d) and Offset(Opposite)=(%d,%d) do not cancel", d, dx, dy, odx, ody)
		}
	}
}

func TestInside(t *testing.T) {
	cases := []struct {
		x, y, w, h int
		want       bool
	}{
		{0, 0, 1, 1, true},
		{-1, 0, 1, 1, false},
		{1, 0, 1, 1, false},
		{2, 3, 5, 5, true},
	}
	for _, c := range cases {
		if got := Inside(c.x, c.y, c.w, c.h); got != c.want {
			t.Errorf("Inside(%d,%d,%d,%d) = %v, want %v", c.x, c.y, c.w, c.h, got, c.want)
		}
	}
}

func TestNonOppositeExcludesOppositeOnly(t *testing.T) {
	for _, d := range Dirs {
		opp := Opposite(d)
		seen := map[Dir]bool{}
		for _, c := range NonOpposite(d) {
			if c == opp {
				t.Errorf("NonOpposite(%v) unexpectedly includes Opposite %v", d, opp)
			}
			seen[c] = true
		}
		if len(seen) != 3 {
			t.Errorf("NonOpposite(%v) = %v, want 3 distinct directions", d, NonOpposite(d))
		}
	}
}

func TestInvalidDirectionAborts(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for invalid direction")
		}
	}()
	Opposite(Dir(99))
}
