package chart

import (
	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/projection"
	"github.com/vanderheijden86/trendradar/pkg/selection"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

// RadarInput is everything the radar scene depends on.
type RadarInput struct {
	Trends    []model.Trend
	Method    model.Method
	Size      float64
	Viewport  viewport.State
	Selection selection.State
}

// BuildRadar lays out the polar chart: five rings, eight axes, quadrant and
// ring labels, then one marker per trend in input order.
func BuildRadar(in RadarInput) Scene {
	g := projection.NewRadarGeometry(in.Size)
	b := newBuilder(model.ViewRadar, g.Size, in.Viewport)
	b.scene.Method = in.Method

	for i := range projection.RingFractions {
		b.add(Command{
			Op: OpCircle, Role: RoleGrid, A: g.Center, R: g.RingRadius(i),
			Style: Style{Stroke: GridColor, StrokeOpacity: 0.3, StrokeWidth: 1},
		})
	}
	for angle := 0.0; angle < 360; angle += 45 {
		end := projection.PolarToCartesian(angle, 1, g.Center, g.MaxRadius)
		b.line(RoleAxis, g.Center, end, Style{Stroke: GridColor, StrokeOpacity: 0.2, StrokeWidth: 1})
	}

	for _, q := range projection.DefaultQuadrants() {
		mid := (q.StartAngle + q.EndAngle) / 2
		at := projection.PolarToCartesian(mid, 1, g.Center, g.QuadrantLabelRadius())
		b.text(RoleQuadrantLabel, at, q.Name, AnchorMiddle, Style{Fill: q.Color, FontSize: 14 * b.k, Bold: true})
	}

	labels := projection.RingLabels(in.Method)
	for i, ring := range projection.RingLabelRings {
		at := geom.Pt(g.Center.X+20*b.k, g.Center.Y-g.RingRadius(ring))
		b.text(RoleRingLabel, at, labels[i], AnchorStart, Style{Fill: MutedColor, FontSize: 12 * b.k})
	}

	ring := func(m Marker) Command {
		return Command{
			Op: OpCircle, Role: RoleGlow, A: m.Center, R: m.Radius + 4, TrendID: m.TrendID,
			Style: Style{Fill: m.Color, FillOpacity: 0.3},
		}
	}
	for _, t := range in.Trends {
		r := projection.RadarMarkerSize(t.Impact)
		m := Marker{
			TrendID:   t.ID,
			Name:      t.Name,
			Center:    g.Position(t, in.Method),
			Radius:    r,
			HitRadius: r,
			Color:     projection.RadarColor(t),
			Selected:  in.Selection.IsSelected(t.ID),
			Hovered:   in.Selection.IsHovered(t.ID),
		}
		b.emphasis(m, ring, 1)
	}
	return b.scene
}
