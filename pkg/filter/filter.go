// Package filter implements the trend filter predicate and the sidebar toggle
// helpers that produce replacement filter states.
package filter

import (
	"slices"
	"strings"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

// Accepts reports whether t passes every active dimension of f.
//
// Dimensions are checked in order: category, impact, time horizon, readiness
// level, then search. An empty dimension accepts everything. When a search
// query is present it is the final decision.
func Accepts(t model.Trend, f model.FilterState) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, t.Category) {
		return false
	}
	if len(f.Impacts) > 0 && !slices.Contains(f.Impacts, t.Impact) {
		return false
	}
	if len(f.TimeHorizons) > 0 && !slices.Contains(f.TimeHorizons, t.TimeHorizon) {
		return false
	}
	if len(f.ReadinessLevels) > 0 && !slices.Contains(f.ReadinessLevels, t.ReadinessLevel) {
		return false
	}
	if f.SearchQuery != "" {
		return matchesSearch(t, strings.ToLower(f.SearchQuery))
	}
	return true
}

func matchesSearch(t model.Trend, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) || strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Apply returns the trends accepted by f in input order. The input is not modified.
func Apply(trends []model.Trend, f model.FilterState) []model.Trend {
	out := make([]model.Trend, 0, len(trends))
	for _, t := range trends {
		if Accepts(t, f) {
			out = append(out, t)
		}
	}
	return out
}

// Count returns how many trends f accepts.
func Count(trends []model.Trend, f model.FilterState) int {
	n := 0
	for _, t := range trends {
		if Accepts(t, f) {
			n++
		}
	}
	return n
}
