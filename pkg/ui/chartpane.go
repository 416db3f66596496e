package ui

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/trendradar/pkg/chart"
	"github.com/vanderheijden86/trendradar/pkg/geom"
)

// Braille cells are 2 dots wide and 4 dots tall. A terminal cell is roughly
// twice as tall as it is wide, so a dot is close to square.
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
)

// chartPane maps the nominal chart square onto a block of terminal cells.
// The square is anchored at the top-left cell and scaled uniformly to fit.
type chartPane struct {
	cols, rows int
	size       float64 // nominal chart side in screen units
}

func newChartPane(cols, rows int, size float64) chartPane {
	return chartPane{cols: max(cols, 1), rows: max(rows, 1), size: size}
}

// scale is dots per screen unit.
func (p chartPane) scale() float64 {
	if p.size <= 0 {
		return 1
	}
	return math.Min(float64(p.cols*dotsPerCellX), float64(p.rows*dotsPerCellY)) / p.size
}

// side is the chart square's side in dots.
func (p chartPane) side() int {
	return int(math.Round(p.size * p.scale()))
}

// CellToScreen maps a cell relative to the pane's top-left to the screen
// point at the cell's center. ok is false outside the chart square.
func (p chartPane) CellToScreen(col, row int) (geom.Point, bool) {
	if col < 0 || row < 0 || col >= p.cols || row >= p.rows {
		return geom.Point{}, false
	}
	k := p.scale()
	dx := float64(col*dotsPerCellX) + dotsPerCellX/2.0
	dy := float64(row*dotsPerCellY) + dotsPerCellY/2.0
	if dx > float64(p.side()) || dy > float64(p.side()) {
		return geom.Point{}, false
	}
	return geom.Pt(dx/k, dy/k), true
}

// CellSpan is the width of one cell in screen units, used as extra hit slop
// so a marker smaller than a cell can still be hovered.
func (p chartPane) CellSpan() float64 {
	return dotsPerCellX / p.scale()
}

// layer is one color's set of braille dots.
type layer struct {
	color string
	grid  *graph.BrailleGrid
}

type label struct {
	col, row int
	text     string
	color    string
	bold     bool
}

// sceneRaster rasterizes scene commands to braille dots, one layer per
// color in first-use order.
type sceneRaster struct {
	pane   chartPane
	vp     func(geom.Point) geom.Point
	zoom   float64
	layers []*layer
	index  map[string]*layer
	labels []label
}

// Render draws scene into the pane and returns the cell block.
func (p chartPane) Render(scene chart.Scene, t Theme) string {
	r := p.raster(scene)
	cv := canvas.New(p.cols, p.rows)
	for _, l := range r.layers {
		style := t.Renderer.NewStyle().Foreground(ThemeFg(l.color))
		drawBrailleOccluded(&cv, l.grid.BraillePatterns(), style)
	}
	for _, lb := range r.labels {
		style := t.Renderer.NewStyle().Foreground(ThemeFg(lb.color)).Bold(lb.bold)
		col := lb.col
		for _, ch := range lb.text {
			w := runewidth.RuneWidth(ch)
			if col >= 0 && col+w <= p.cols && lb.row >= 0 && lb.row < p.rows {
				cv.SetCell(canvas.Point{X: col, Y: lb.row}, canvas.NewCellWithStyle(ch, style))
			}
			col += w
		}
	}
	return cv.View()
}

func (p chartPane) raster(scene chart.Scene) *sceneRaster {
	r := &sceneRaster{
		pane:  p,
		vp:    scene.Viewport.ToScreen,
		zoom:  scene.Viewport.Zoom(),
		index: make(map[string]*layer),
	}
	for _, c := range scene.Commands {
		r.command(c)
	}
	for _, m := range scene.Markers {
		if m.Selected {
			r.markerLabel(m)
		}
	}
	return r
}

// drawBrailleOccluded writes a layer's braille runes over the canvas. Cells
// of later layers replace earlier ones, so markers win over grid lines.
func drawBrailleOccluded(cv *canvas.Model, patterns [][]rune, style lipgloss.Style) {
	for y, row := range patterns {
		for x, r := range row {
			if r == runes.Null || r == runes.BrailleBlockOffset || !runes.IsBraillePattern(r) {
				continue
			}
			cv.SetCell(canvas.Point{X: x, Y: y}, canvas.NewCellWithStyle(r, style))
		}
	}
}

func (r *sceneRaster) layerFor(color string) *layer {
	if l, ok := r.index[color]; ok {
		return l
	}
	w, h := r.pane.cols*dotsPerCellX, r.pane.rows*dotsPerCellY
	l := &layer{
		color: color,
		grid:  graph.NewBrailleGrid(r.pane.cols, r.pane.rows, 0, float64(w), 0, float64(h)),
	}
	r.index[color] = l
	r.layers = append(r.layers, l)
	return l
}

// dot converts a chart-space point to dot coordinates.
func (r *sceneRaster) dot(p geom.Point) geom.Point {
	return r.vp(p).Scale(r.pane.scale())
}

// set marks one dot, clipped to the chart square. The braille grid's Y axis
// points up, so rows are flipped.
func (r *sceneRaster) set(l *layer, x, y float64) {
	side := float64(r.pane.side())
	if x < 0 || y < 0 || x >= side || y >= side {
		return
	}
	h := float64(r.pane.rows * dotsPerCellY)
	l.grid.Set(l.grid.GridPoint(canvas.Float64Point{X: x, Y: h - y}))
}

func (r *sceneRaster) command(c chart.Command) {
	switch c.Role {
	case chart.RoleBackground, chart.RoleGlow, chart.RoleTickLabel, chart.RoleRingLabel, chart.RoleAxisTitle:
		return
	}
	switch c.Op {
	case chart.OpLine:
		if c.Style.Stroke == "" {
			return
		}
		r.line(r.layerFor(c.Style.Stroke), r.dot(c.A), r.dot(c.B))
	case chart.OpCircle:
		center := r.dot(c.A)
		radius := c.R * r.zoom * r.pane.scale()
		if fill := c.Style.FillColor(); fill != "" {
			r.disc(r.layerFor(fill), center, radius)
		}
		if c.Style.Stroke != "" {
			r.ring(r.layerFor(c.Style.Stroke), center, radius)
		}
	case chart.OpRect:
		if c.Style.Stroke == "" {
			return
		}
		a := r.dot(c.A)
		b := r.dot(c.A.Add(c.B))
		l := r.layerFor(c.Style.Stroke)
		r.line(l, a, geom.Pt(b.X, a.Y))
		r.line(l, geom.Pt(b.X, a.Y), b)
		r.line(l, b, geom.Pt(a.X, b.Y))
		r.line(l, geom.Pt(a.X, b.Y), a)
	case chart.OpText:
		if c.Rotate != 0 {
			return
		}
		color := c.Style.FillColor()
		if color == "" {
			color = chart.MutedColor
		}
		r.text(r.dot(c.A), c.Text, c.Anchor, color, c.Style.Bold)
	}
}

func (r *sceneRaster) line(l *layer, a, b geom.Point) {
	steps := int(math.Ceil(math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))))
	if steps == 0 {
		r.set(l, a.X, a.Y)
		return
	}
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		r.set(l, a.X+(b.X-a.X)*f, a.Y+(b.Y-a.Y)*f)
	}
}

func (r *sceneRaster) disc(l *layer, c geom.Point, radius float64) {
	if radius < 1 {
		r.set(l, c.X, c.Y)
		return
	}
	rr := radius * radius
	for y := math.Floor(c.Y - radius); y <= c.Y+radius; y++ {
		for x := math.Floor(c.X - radius); x <= c.X+radius; x++ {
			dx, dy := x-c.X, y-c.Y
			if dx*dx+dy*dy <= rr {
				r.set(l, x, y)
			}
		}
	}
}

func (r *sceneRaster) ring(l *layer, c geom.Point, radius float64) {
	if radius < 1 {
		r.set(l, c.X, c.Y)
		return
	}
	n := max(int(2*math.Pi*radius), 8)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		r.set(l, c.X+radius*math.Cos(a), c.Y+radius*math.Sin(a))
	}
}

func (r *sceneRaster) text(at geom.Point, s string, anchor chart.Anchor, color string, bold bool) {
	side := float64(r.pane.side())
	if at.X < 0 || at.Y < 0 || at.X >= side || at.Y >= side {
		return
	}
	col := int(at.X) / dotsPerCellX
	row := int(at.Y) / dotsPerCellY
	w := runewidth.StringWidth(s)
	switch anchor {
	case chart.AnchorMiddle:
		col -= w / 2
	case chart.AnchorEnd:
		col -= w
	}
	r.labels = append(r.labels, label{col: max(col, 0), row: row, text: s, color: color, bold: bold})
}

// markerLabel names the selected marker to the right of its dot.
func (r *sceneRaster) markerLabel(m chart.Marker) {
	at := r.dot(m.Center)
	at.X += m.Radius*r.zoom*r.pane.scale() + dotsPerCellX
	r.text(at, m.Name, chart.AnchorStart, chart.ForegroundColor, true)
}
