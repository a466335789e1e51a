package render

import (
	"fmt"
	"strings"

	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
)

const emptyGlyph = '‧'

var beltGlyphs = [4]rune{geometry.N: '▲', geometry.S: '▼', geometry.E: '▶', geometry.W: '◀'}
var mixerAnchorGlyphs = [4]rune{geometry.N: '↿', geometry.S: '⇂', geometry.E: '⇀', geometry.W: '↽'}
var mixerCompanionGlyphs = [4]rune{geometry.N: '↾', geometry.S: '⇃', geometry.E: '⇁', geometry.W: '↼'}
var tunnelEntranceGlyphs = [4]rune{geometry.N: '△', geometry.S: '▽', geometry.E: '▷', geometry.W: '◁'}
var tunnelExitGlyphs = [4]rune{geometry.N: '↥', geometry.S: '↧', geometry.E: '↦', geometry.W: '↤'}

// glyphTable indexes glyphToComponent's reverse lookup; built once at init.
var glyphTable = map[rune]model.Component{
	emptyGlyph: {Kind: model.Empty},
}

func init() {
	register := func(glyphs [4]rune, kind model.Kind) {
		for _, d := range geometry.Dirs {
			glyphTable[glyphs[d]] = model.Component{Kind: kind, Dir: d}
		}
	}
	register(beltGlyphs, model.Belt)
	register(mixerAnchorGlyphs, model.MixerAnchor)
	register(mixerCompanionGlyphs, model.MixerCompanion)
	register(tunnelEntranceGlyphs, model.TunnelEntrance)
	register(tunnelExitGlyphs, model.TunnelExit)
}

func glyphFor(c model.Component) rune {
	switch c.Kind {
	case model.Empty:
		return emptyGlyph
	case model.Belt:
		return beltGlyphs[c.Dir]
	case model.MixerAnchor:
		return mixerAnchorGlyphs[c.Dir]
	case model.MixerCompanion:
		return mixerCompanionGlyphs[c.Dir]
	case model.TunnelEntrance:
		return tunnelEntranceGlyphs[c.Dir]
	case model.TunnelExit:
		return tunnelExitGlyphs[c.Dir]
	default:
		geometry.Abortf("render: unknown component kind %v", c.Kind)
		panic("unreachable")
	}
}

// Render walks a's placement row-major from y=H-1 down to y=0 (rows are
// printed north-up) and returns the glyph grid, rows separated by "\n" with
// no trailing newline after the last row.
func Render(a *model.Assignment) string {
	var b strings.Builder
	for y := a.Height - 1; y >= 0; y-- {
		for x := 0; x < a.Width; x++ {
			b.WriteRune(glyphFor(a.At(x, y)))
		}
		if y > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Parse reads a glyph grid for a W x H placement. A grid whose non-newline
// rune count differs from W*H is a programmer/malformed-input error per the
// spec's error taxonomy and aborts the process; an individual rune outside
// the glyph alphabet is reported as an ordinary error since it reflects bad
// external input rather than a sizing mistake.
//
// The returned slice is row-major by (y*W+x), matching model.Assignment's
// Placement layout, ready to seed or hint a solve.
func Parse(s string, w, h int) ([]model.Component, error) {
	rows := strings.Split(s, "\n")

	total := 0
	for _, row := range rows {
		total += len([]rune(row))
	}
	if total != w*h {
		geometry.Abortf("render: glyph grid has %d cells, want %d (%dx%d)", total, w*h, w, h)
	}
	if len(rows) != h {
		geometry.Abortf("render: glyph grid has %d rows, want %d", len(rows), h)
	}

	out := make([]model.Component, w*h)
	for rowIdx, row := range rows {
		runes := []rune(row)
		if len(runes) != w {
			geometry.Abortf("render: glyph grid row %d has %d cells, want %d", rowIdx, len(runes), w)
		}
		y := h - 1 - rowIdx
		for x, r := range runes {
			c, ok := glyphTable[r]
			if !ok {
				return nil, fmt.Errorf("render: unrecognized glyph %q at row %d col %d", r, rowIdx, x)
			}
			out[y*w+x] = c
		}
	}
	return out, nil
}
