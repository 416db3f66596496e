package projection

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

// Fixed colors.
const (
	FallbackColor = "#6b7280"
	FutureColor   = "#8b5cf6"
	White         = "#ffffff"
)

// categoryColors is shared by the radar quadrants, the matrix markers and the
// detail panel.
var categoryColors = [model.NumCategories]string{
	FallbackColor,
	"#22c55e",
	"#3b82f6",
	"#f59e0b",
}

var impactBadgeColors = [model.NumImpacts]string{
	FallbackColor,
	"#22c55e",
	"#eab308",
	"#f97316",
	"#ef4444",
}

var radarSizes = [model.NumImpacts]float64{4, 4, 5, 6, 8}

var matrixSizes = [model.NumImpacts]float64{6, 4, 6, 8, 10}

// CategoryColor returns the hex color of c.
func CategoryColor(c model.Category) string {
	if int(c) < model.NumCategories {
		return categoryColors[c]
	}
	return FallbackColor
}

// ImpactColor returns the badge color of i.
func ImpactColor(i model.Impact) string {
	if int(i) < model.NumImpacts {
		return impactBadgeColors[i]
	}
	return FallbackColor
}

// RadarMarkerSize returns the radar marker radius for i.
func RadarMarkerSize(i model.Impact) float64 {
	if int(i) < model.NumImpacts {
		return radarSizes[i]
	}
	return radarSizes[0]
}

// MatrixMarkerSize returns the matrix marker radius for i.
func MatrixMarkerSize(i model.Impact) float64 {
	if int(i) < model.NumImpacts {
		return matrixSizes[i]
	}
	return matrixSizes[0]
}

// DefaultQuadrants returns the four radar quadrants. The first three take
// their color from the category table.
func DefaultQuadrants() []model.RadarQuadrant {
	return []model.RadarQuadrant{
		{Name: model.Technology.String(), Color: CategoryColor(model.Technology), StartAngle: 0, EndAngle: 90},
		{Name: model.Industry.String(), Color: CategoryColor(model.Industry), StartAngle: 90, EndAngle: 180},
		{Name: model.Humanity.String(), Color: CategoryColor(model.Humanity), StartAngle: 180, EndAngle: 270},
		{Name: "Future", Color: FutureColor, StartAngle: 270, EndAngle: 360},
	}
}

// QuadrantFor returns the quadrant containing angle.
func QuadrantFor(angle float64) (model.RadarQuadrant, bool) {
	for _, q := range DefaultQuadrants() {
		if q.Contains(angle) {
			return q, true
		}
	}
	return model.RadarQuadrant{}, false
}

// RadarColor is the marker color of t on the radar: the color of the
// quadrant its angle falls in.
func RadarColor(t model.Trend) string {
	if q, ok := QuadrantFor(t.Angle); ok {
		return q.Color
	}
	return FallbackColor
}

// MatrixColor is the marker color of t on the matrix.
func MatrixColor(t model.Trend) string {
	return CategoryColor(t.Category)
}

// Brighten scales the lightness of a hex color by factor, the way a CSS
// brightness() filter does. Invalid input is returned unchanged.
func Brighten(hex string, factor float64) string {
	if factor == 1 || factor <= 0 {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	b := colorful.Color{R: c.R * factor, G: c.G * factor, B: c.B * factor}.Clamped()
	return b.Hex()
}

// Parse returns the color of a hex string, or the fallback color.
func Parse(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(FallbackColor)
	}
	return c
}
