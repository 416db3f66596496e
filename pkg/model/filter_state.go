package model

import "slices"

// FilterState is the sidebar's complete filter selection. An empty dimension
// accepts every value; the zero FilterState accepts every trend.
type FilterState struct {
	Categories      []Category    `json:"categories" yaml:"categories"`
	Impacts         []Impact      `json:"impacts" yaml:"impacts"`
	TimeHorizons    []TimeHorizon `json:"timeHorizons" yaml:"timeHorizons"`
	ReadinessLevels []int         `json:"readinessLevels" yaml:"readinessLevels"`
	SearchQuery     string        `json:"searchQuery" yaml:"searchQuery"`
}

// Clone returns a deep copy so callers can build a replacement state without
// aliasing the slices of the original.
func (f FilterState) Clone() FilterState {
	return FilterState{
		Categories:      slices.Clone(f.Categories),
		Impacts:         slices.Clone(f.Impacts),
		TimeHorizons:    slices.Clone(f.TimeHorizons),
		ReadinessLevels: slices.Clone(f.ReadinessLevels),
		SearchQuery:     f.SearchQuery,
	}
}

// RadarQuadrant maps the half-open angular range [StartAngle, EndAngle) to a
// display name and color.
type RadarQuadrant struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	StartAngle float64 `json:"startAngle"`
	EndAngle   float64 `json:"endAngle"`
}

// Contains reports whether angle (degrees) falls inside the quadrant.
func (q RadarQuadrant) Contains(angle float64) bool {
	return angle >= q.StartAngle && angle < q.EndAngle
}
