package filter

import (
	"slices"
	"strings"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

// toggle removes every occurrence of v from s when present, or appends it.
// The result never shares storage with s.
func toggle[T comparable](s []T, v T) []T {
	if slices.Contains(s, v) {
		out := make([]T, 0, len(s))
		for _, x := range s {
			if x != v {
				out = append(out, x)
			}
		}
		return out
	}
	return append(slices.Clone(s), v)
}

// ToggleCategory returns a new state with c switched on or off.
func ToggleCategory(f model.FilterState, c model.Category) model.FilterState {
	next := f.Clone()
	next.Categories = toggle(f.Categories, c)
	return next
}

// ToggleImpact returns a new state with i switched on or off.
func ToggleImpact(f model.FilterState, i model.Impact) model.FilterState {
	next := f.Clone()
	next.Impacts = toggle(f.Impacts, i)
	return next
}

// ToggleTimeHorizon returns a new state with h switched on or off.
func ToggleTimeHorizon(f model.FilterState, h model.TimeHorizon) model.FilterState {
	next := f.Clone()
	next.TimeHorizons = toggle(f.TimeHorizons, h)
	return next
}

// ToggleReadiness returns a new state with TRL level switched on or off.
func ToggleReadiness(f model.FilterState, level int) model.FilterState {
	next := f.Clone()
	next.ReadinessLevels = toggle(f.ReadinessLevels, level)
	return next
}

// WithSearch returns a new state with the search query replaced.
func WithSearch(f model.FilterState, q string) model.FilterState {
	next := f.Clone()
	next.SearchQuery = q
	return next
}

// Clear returns the default state, which accepts every trend.
func Clear() model.FilterState {
	return model.FilterState{}
}

// HasActive reports whether any dimension of f constrains the result.
func HasActive(f model.FilterState) bool {
	return len(f.Categories) > 0 ||
		len(f.Impacts) > 0 ||
		len(f.TimeHorizons) > 0 ||
		len(f.ReadinessLevels) > 0 ||
		f.SearchQuery != ""
}

// Parse builds a FilterState from comma separated CLI or query values.
// Unknown names are skipped and returned so the caller can warn about them.
func Parse(categories, impacts, horizons string, levels []int, search string) (model.FilterState, []string) {
	var f model.FilterState
	var unknown []string
	for _, s := range splitList(categories) {
		if c := model.ParseCategory(s); c.Valid() {
			f.Categories = append(f.Categories, c)
		} else {
			unknown = append(unknown, "category "+s)
		}
	}
	for _, s := range splitList(impacts) {
		if i := model.ParseImpact(s); i.Valid() {
			f.Impacts = append(f.Impacts, i)
		} else {
			unknown = append(unknown, "impact "+s)
		}
	}
	for _, s := range splitList(horizons) {
		if h := model.ParseTimeHorizon(s); h.Valid() {
			f.TimeHorizons = append(f.TimeHorizons, h)
		} else {
			unknown = append(unknown, "horizon "+s)
		}
	}
	f.ReadinessLevels = slices.Clone(levels)
	f.SearchQuery = search
	return f, unknown
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
