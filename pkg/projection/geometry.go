package projection

import (
	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

// DefaultSize is the nominal side of the square chart area.
const DefaultSize = 600.0

// RingFractions are the radar grid rings, as fractions of the max radius.
var RingFractions = [5]float64{0.2, 0.4, 0.6, 0.8, 1.0}

// RingLabelRings are the ring indices that carry a ring label; the middle
// ring is skipped.
var RingLabelRings = [4]int{0, 2, 3, 4}

// RadarGeometry describes the radar layout for a chart of side Size.
type RadarGeometry struct {
	Size      float64
	Center    geom.Point
	MaxRadius float64
}

// NewRadarGeometry lays out a radar of the given side. At the nominal side of
// 600 the max radius is 260, leaving room for the quadrant labels.
func NewRadarGeometry(size float64) RadarGeometry {
	if size <= 0 {
		size = DefaultSize
	}
	c := size / 2
	return RadarGeometry{
		Size:      size,
		Center:    geom.Pt(c, c),
		MaxRadius: c - size/15,
	}
}

// RingRadius is the chart-space radius of ring i.
func (g RadarGeometry) RingRadius(i int) float64 {
	return RingFractions[i] * g.MaxRadius
}

// QuadrantLabelRadius is the distance of the quadrant titles from the center.
func (g RadarGeometry) QuadrantLabelRadius() float64 {
	return g.MaxRadius + g.Size/30
}

// Position places t on the radar. The angle is always the authored angle;
// only the radius depends on method.
func (g RadarGeometry) Position(t model.Trend, method model.Method) geom.Point {
	return PolarToCartesian(t.Angle, ComputeRadius(t, method), g.Center, g.MaxRadius)
}

// RadarPosition is shorthand for g.Position.
func RadarPosition(t model.Trend, method model.Method, g RadarGeometry) geom.Point {
	return g.Position(t, method)
}

// MatrixGeometry describes the TRL/BRL matrix layout. Plot is the inner area
// between the margins.
type MatrixGeometry struct {
	Size   float64
	Margin float64
	Width  float64
	Height float64
}

// NewMatrixGeometry lays out a matrix of the given side. At the nominal side of
// 600 the margin is 80.
func NewMatrixGeometry(size float64) MatrixGeometry {
	if size <= 0 {
		size = DefaultSize
	}
	m := size * 2 / 15
	return MatrixGeometry{
		Size:   size,
		Margin: m,
		Width:  size - 2*m,
		Height: size - 2*m,
	}
}

// X maps a TRL (1..9) to the horizontal chart coordinate.
func (g MatrixGeometry) X(trl int) float64 {
	return g.Margin + float64(trl-1)*(g.Width/8)
}

// Y maps a BRL (1..5) to the vertical chart coordinate, BRL 5 at the top.
func (g MatrixGeometry) Y(brl int) float64 {
	return g.Size - g.Margin - float64(brl-1)*(g.Height/4)
}

// Position places t on the matrix.
func (g MatrixGeometry) Position(t model.Trend) geom.Point {
	return geom.Pt(g.X(t.ReadinessLevel), g.Y(t.BusinessReadiness))
}

// MatrixPosition is shorthand for g.Position.
func MatrixPosition(t model.Trend, g MatrixGeometry) geom.Point {
	return g.Position(t)
}
