package testutil

import (
	"fmt"
	"time"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

// TrendGen draws valid trends.
func TrendGen() *rapid.Generator[model.Trend] {
	return rapid.Custom(func(t *rapid.T) model.Trend {
		return model.Trend{
			ID:                fmt.Sprint(rapid.IntRange(1, 1_000_000).Draw(t, "id")),
			Name:              rapid.StringMatching(`[A-Z][a-z]{2,10}( [A-Z][a-z]{2,10})?`).Draw(t, "name"),
			Description:       rapid.StringMatching(`[a-z ]{0,40}`).Draw(t, "description"),
			Category:          rapid.SampledFrom(model.Categories()).Draw(t, "category"),
			ReadinessLevel:    rapid.IntRange(model.MinTRL, model.MaxTRL).Draw(t, "trl"),
			BusinessReadiness: rapid.IntRange(model.MinBRL, model.MaxBRL).Draw(t, "brl"),
			Impact:            rapid.SampledFrom(model.Impacts()).Draw(t, "impact"),
			TimeHorizon:       rapid.SampledFrom(model.TimeHorizons()).Draw(t, "horizon"),
			Angle:             rapid.Float64Range(0, 359.999).Draw(t, "angle"),
			Radius:            rapid.Float64Range(0, 1).Draw(t, "radius"),
			Tags:              rapid.SliceOfN(rapid.StringMatching(`[A-Za-z]{1,8}`), 0, 4).Draw(t, "tags"),
			LastUpdated:       model.NewDate(2024, time.Month(rapid.IntRange(1, 12).Draw(t, "month")), 1),
		}
	})
}

// AnyTrendGen draws trends that may carry unknown enumeration values and
// out-of-range readiness, as an unvalidated dataset could.
func AnyTrendGen() *rapid.Generator[model.Trend] {
	return rapid.Custom(func(t *rapid.T) model.Trend {
		tr := TrendGen().Draw(t, "base")
		tr.Category = model.Category(rapid.IntRange(0, model.NumCategories).Draw(t, "rawCategory"))
		tr.Impact = model.Impact(rapid.IntRange(0, model.NumImpacts).Draw(t, "rawImpact"))
		tr.TimeHorizon = model.TimeHorizon(rapid.IntRange(0, model.NumTimeHorizons).Draw(t, "rawHorizon"))
		tr.ReadinessLevel = rapid.IntRange(-3, 12).Draw(t, "rawTRL")
		tr.BusinessReadiness = rapid.IntRange(-3, 8).Draw(t, "rawBRL")
		tr.Radius = rapid.Float64Range(-2, 3).Draw(t, "rawRadius")
		return tr
	})
}

// FilterGen draws filter states over every dimension.
func FilterGen() *rapid.Generator[model.FilterState] {
	return rapid.Custom(func(t *rapid.T) model.FilterState {
		return model.FilterState{
			Categories:      rapid.SliceOfN(rapid.SampledFrom(model.Categories()), 0, 3).Draw(t, "categories"),
			Impacts:         rapid.SliceOfN(rapid.SampledFrom(model.Impacts()), 0, 4).Draw(t, "impacts"),
			TimeHorizons:    rapid.SliceOfN(rapid.SampledFrom(model.TimeHorizons()), 0, 5).Draw(t, "horizons"),
			ReadinessLevels: rapid.SliceOfN(rapid.IntRange(model.MinTRL, model.MaxTRL), 0, 3).Draw(t, "levels"),
			SearchQuery:     rapid.SampledFrom([]string{"", "a", "AI", "ing", "zzz"}).Draw(t, "search"),
		}
	})
}
