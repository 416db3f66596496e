package chart

import (
	"fmt"

	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/projection"
	"github.com/vanderheijden86/trendradar/pkg/selection"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

// Axis titles of the matrix.
const (
	TRLAxisTitle = "Technology Readiness Level (TRL)"
	BRLAxisTitle = "Business Readiness Level (BRL)"
)

// matrixHitSlop widens the matrix hover target beyond the drawn dot.
const matrixHitSlop = 5

// MatrixInput is everything the matrix scene depends on.
type MatrixInput struct {
	Trends    []model.Trend
	Size      float64
	Viewport  viewport.State
	Selection selection.State
}

// BuildMatrix lays out the TRL x BRL grid, its axes, tick labels and titles,
// then one marker per trend in input order.
func BuildMatrix(in MatrixInput) Scene {
	g := projection.NewMatrixGeometry(in.Size)
	b := newBuilder(model.ViewMatrix, g.Size, in.Viewport)
	lo, hi := g.Margin, g.Size-g.Margin

	b.add(Command{Op: OpRect, Role: RoleBackground, A: geom.Pt(0, 0), B: geom.Pt(g.Size, g.Size)})

	grid := Style{Stroke: GridColor, StrokeOpacity: 0.2, StrokeWidth: 1}
	for trl := model.MinTRL; trl <= model.MaxTRL; trl++ {
		x := g.X(trl)
		b.line(RoleGrid, geom.Pt(x, lo), geom.Pt(x, hi), grid)
	}
	for brl := model.MinBRL; brl <= model.MaxBRL; brl++ {
		y := g.Y(brl)
		b.line(RoleGrid, geom.Pt(lo, y), geom.Pt(hi, y), grid)
	}

	axis := Style{Stroke: GridColor, StrokeOpacity: 1, StrokeWidth: 2}
	b.line(RoleAxis, geom.Pt(lo, hi), geom.Pt(hi, hi), axis)
	b.line(RoleAxis, geom.Pt(lo, lo), geom.Pt(lo, hi), axis)

	tick := Style{Fill: MutedColor, FontSize: 12 * b.k}
	for trl := model.MinTRL; trl <= model.MaxTRL; trl++ {
		b.text(RoleTickLabel, geom.Pt(g.X(trl), hi+20*b.k), fmt.Sprintf("TRL %d", trl), AnchorMiddle, tick)
	}
	for brl := model.MinBRL; brl <= model.MaxBRL; brl++ {
		b.text(RoleTickLabel, geom.Pt(lo-30*b.k, g.Y(brl)+4*b.k), fmt.Sprintf("BRL %d", brl), AnchorMiddle, tick)
	}

	title := Style{Fill: ForegroundColor, FontSize: 14 * b.k, Bold: true}
	b.text(RoleAxisTitle, geom.Pt(g.Size/2, g.Size-20*b.k), TRLAxisTitle, AnchorMiddle, title)
	b.add(Command{
		Op: OpText, Role: RoleAxisTitle, A: geom.Pt(20*b.k, g.Size/2), Text: BRLAxisTitle,
		Anchor: AnchorMiddle, Rotate: -90, Style: title,
	})

	ring := func(m Marker) Command {
		return Command{
			Op: OpCircle, Role: RoleSelectionRing, A: m.Center, R: m.Radius + 4, TrendID: m.TrendID,
			Style: Style{Stroke: m.Color, StrokeOpacity: 1, StrokeWidth: 2},
		}
	}
	for _, t := range in.Trends {
		r := projection.MatrixMarkerSize(t.Impact)
		m := Marker{
			TrendID:   t.ID,
			Name:      t.Name,
			Center:    g.Position(t),
			Radius:    r,
			HitRadius: r + matrixHitSlop,
			Color:     projection.MatrixColor(t),
			Selected:  in.Selection.IsSelected(t.ID),
			Hovered:   in.Selection.IsHovered(t.ID),
		}
		opacity := 0.7
		switch {
		case m.Selected:
			opacity = 1
		case m.Hovered:
			opacity = 0.8
		}
		b.emphasis(m, ring, opacity)
	}
	return b.scene
}
