package svg

import (
	"bytes"
	"fmt"
	"math"
	"os"

	svgo "github.com/ajstarks/svgo"

	"github.com/dshills/beltbalancer/pkg/geometry"
	"github.com/dshills/beltbalancer/pkg/model"
)

// Options configures grid visualization.
type Options struct {
	CellSize   int    // Pixel size of one grid cell
	Margin     int    // Canvas margin in pixels
	ShowGrid   bool   // Draw cell boundary lines
	ShowLegend bool   // Draw a component-kind color legend
	Title      string // Optional title drawn above the grid
}

// DefaultOptions returns sensible default visualization options.
func DefaultOptions() Options {
	return Options{
		CellSize:   48,
		Margin:     40,
		ShowGrid:   true,
		ShowLegend: true,
		Title:      "Belt Balancer Layout",
	}
}

// Render draws a's placement as an SVG image and returns the encoded bytes.
func Render(a *model.Assignment, opts Options) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("svg: assignment cannot be nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 48
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	headerHeight := 0
	if opts.Title != "" {
		headerHeight = 40
	}
	legendWidth := 0
	if opts.ShowLegend {
		legendWidth = 160
	}

	width := opts.Margin*2 + a.Width*opts.CellSize + legendWidth
	height := opts.Margin*2 + a.Height*opts.CellSize + headerHeight

	buf := new(bytes.Buffer)
	canvas := svgo.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1a1a2e")

	if opts.Title != "" {
		canvas.Text(width/2, 25, opts.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	}

	originY := opts.Margin + headerHeight
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			drawCell(canvas, a.At(x, y), x, y, a.Height, opts, originY)
		}
	}

	if opts.ShowGrid {
		drawGridLines(canvas, a.Width, a.Height, opts, originY)
	}

	if opts.ShowLegend {
		drawLegend(canvas, opts.Margin*2+a.Width*opts.CellSize, originY, opts)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveToFile renders a and writes the SVG to filepath with 0644 permissions.
func SaveToFile(a *model.Assignment, filepath string, opts Options) error {
	data, err := Render(a, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

func cellOrigin(x, y, height int, opts Options, originY int) (px, py int) {
	// Rows are drawn top-down; grid row 0 in display terms is y=height-1,
	// matching the glyph renderer's row convention.
	px = opts.Margin + x*opts.CellSize
	py = originY + (height-1-y)*opts.CellSize
	return px, py
}

func drawCell(canvas *svgo.SVG, c model.Component, x, y, height int, opts Options, originY int) {
	px, py := cellOrigin(x, y, height, opts, originY)
	size := opts.CellSize

	color := kindColor(c.Kind)
	canvas.Rect(px, py, size, size, fmt.Sprintf("fill:%s;stroke:#0f0f1a;stroke-width:1", color))

	if c.Kind == model.Empty {
		return
	}
	drawOrientationArrow(canvas, px, py, size, c.Dir)
}

func kindColor(k model.Kind) string {
	switch k {
	case model.Belt:
		return "#4299e1"
	case model.MixerAnchor, model.MixerCompanion:
		return "#9f7aea"
	case model.TunnelEntrance:
		return "#48bb78"
	case model.TunnelExit:
		return "#ed8936"
	default:
		return "#2d3748"
	}
}

// drawOrientationArrow draws a small arrow from the cell center pointing
// toward d, the component's active direction.
func drawOrientationArrow(canvas *svgo.SVG, px, py, size int, d geometry.Dir) {
	cx := float64(px) + float64(size)/2
	cy := float64(py) + float64(size)/2
	dx, dy := geometry.Offset(d)
	// Flip dy: grid-North (dy=+1) is drawn upward, i.e. smaller SVG y.
	angle := math.Atan2(float64(-dy), float64(dx))
	r := float64(size) / 2.8

	tipX, tipY := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
	leftX, leftY := cx+r*0.4*math.Cos(angle+2.6), cy+r*0.4*math.Sin(angle+2.6)
	rightX, rightY := cx+r*0.4*math.Cos(angle-2.6), cy+r*0.4*math.Sin(angle-2.6)

	canvas.Line(int(cx), int(cy), int(tipX), int(tipY), "stroke:#fff;stroke-width:2")
	canvas.Polygon(
		[]int{int(tipX), int(leftX), int(rightX)},
		[]int{int(tipY), int(leftY), int(rightY)},
		"fill:#fff",
	)
}

func drawGridLines(canvas *svgo.SVG, w, h int, opts Options, originY int) {
	for x := 0; x <= w; x++ {
		px := opts.Margin + x*opts.CellSize
		canvas.Line(px, originY, px, originY+h*opts.CellSize, "stroke:#0f0f1a;stroke-width:1")
	}
	for y := 0; y <= h; y++ {
		py := originY + y*opts.CellSize
		canvas.Line(opts.Margin, py, opts.Margin+w*opts.CellSize, py, "stroke:#0f0f1a;stroke-width:1")
	}
}

func drawLegend(canvas *svgo.SVG, legendX, originY int, opts Options) {
	entries := []struct {
		name string
		kind model.Kind
	}{
		{"Belt", model.Belt},
		{"Mixer", model.MixerAnchor},
		{"Tunnel in", model.TunnelEntrance},
		{"Tunnel out", model.TunnelExit},
	}

	x := legendX + 20
	y := originY + 20
	canvas.Text(x, y, "Legend", "font-size:14px;font-weight:bold;fill:#e2e8f0;font-family:sans-serif")
	y += 24
	for _, e := range entries {
		canvas.Rect(x, y-12, 16, 16, fmt.Sprintf("fill:%s", kindColor(e.kind)))
		canvas.Text(x+24, y, e.name, "font-size:12px;fill:#cbd5e0;font-family:sans-serif")
		y += 22
	}
}
