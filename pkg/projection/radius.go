// Package projection maps trend attributes onto chart-space positions and
// holds the color, size and label tables shared by the radar and matrix charts.
//
// Every table is an array indexed by the corresponding model enumeration, so
// adding an enumeration value without extending a table fails to compile.
// The zero slot of each table holds the neutral fallback for unknown values.
package projection

import (
	"math"

	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

// Radius bounds applied to every projected radius.
const (
	MinRadius = 0.1
	MaxRadius = 0.9
)

// impactRank orders impact from the center out: Transformative = 1, Low = 4.
var impactRank = [model.NumImpacts]int{0, 4, 3, 2, 1}

type radiusFunc func(model.Trend) (float64, bool)

var radiusFuncs = [model.NumMethods]radiusFunc{
	model.MethodAuthored: func(t model.Trend) (float64, bool) {
		return t.Radius, true
	},
	model.MethodTechnology: func(t model.Trend) (float64, bool) {
		return float64(model.MaxTRL-t.ReadinessLevel) / 8, true
	},
	model.MethodBusiness: func(t model.Trend) (float64, bool) {
		return float64(model.MaxBRL-t.BusinessReadiness) / 4, true
	},
	model.MethodImpact: func(t model.Trend) (float64, bool) {
		if !t.Impact.Valid() {
			return 0, false
		}
		return float64(impactRank[t.Impact]-1) / 3, true
	},
	model.MethodTimeline: func(t model.Trend) (float64, bool) {
		if !t.TimeHorizon.Valid() {
			return 0, false
		}
		return float64(t.TimeHorizon.Rank()-1) / 4, true
	},
}

// ComputeRadius returns the normalized radius of t under method, clamped to
// [MinRadius, MaxRadius]. 0 is the center (most mature), 1 the edge.
// Unknown methods and enumeration values fall back to the authored radius.
func ComputeRadius(t model.Trend, method model.Method) float64 {
	raw := math.NaN()
	if int(method) < model.NumMethods {
		if r, ok := radiusFuncs[method](t); ok {
			raw = r
		}
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		raw = t.Radius
	}
	return Clamp(raw, MinRadius, MaxRadius)
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PolarToCartesian converts a compass angle (0 degrees at 12 o'clock, clockwise)
// and a normalized radius into a chart-space point around center.
func PolarToCartesian(angleDeg, radius float64, center geom.Point, maxRadius float64) geom.Point {
	rad := (angleDeg - 90) * math.Pi / 180
	r := radius * maxRadius
	return geom.Point{
		X: center.X + r*math.Cos(rad),
		Y: center.Y + r*math.Sin(rad),
	}
}
