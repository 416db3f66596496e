package filter

import (
	"slices"
	"testing"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	f := ToggleCategory(model.FilterState{}, model.Technology)
	if !slices.Equal(f.Categories, []model.Category{model.Technology}) {
		t.Fatalf("expected [Technology], got %v", f.Categories)
	}
	f = ToggleCategory(f, model.Industry)
	f = ToggleCategory(f, model.Technology)
	if !slices.Equal(f.Categories, []model.Category{model.Industry}) {
		t.Errorf("expected [Industry], got %v", f.Categories)
	}
}

func TestToggleRemovesEveryOccurrence(t *testing.T) {
	f := model.FilterState{Impacts: []model.Impact{model.High, model.Low, model.High}}
	got := ToggleImpact(f, model.High)
	if !slices.Equal(got.Impacts, []model.Impact{model.Low}) {
		t.Errorf("expected [Low], got %v", got.Impacts)
	}
}

func TestToggleReturnsReplacementState(t *testing.T) {
	orig := model.FilterState{
		TimeHorizons:    []model.TimeHorizon{model.Horizon2025},
		ReadinessLevels: []int{3},
		SearchQuery:     "ai",
	}
	next := ToggleTimeHorizon(orig, model.Horizon2026)
	next = ToggleReadiness(next, 3)
	if len(orig.TimeHorizons) != 1 || len(orig.ReadinessLevels) != 1 {
		t.Errorf("original mutated: %+v", orig)
	}
	if len(next.TimeHorizons) != 2 || len(next.ReadinessLevels) != 0 || next.SearchQuery != "ai" {
		t.Errorf("unexpected next state %+v", next)
	}
}

func TestHasActive(t *testing.T) {
	if HasActive(Clear()) {
		t.Error("default state should not be active")
	}
	if !HasActive(WithSearch(Clear(), "x")) {
		t.Error("search should count as active")
	}
	if !HasActive(WithSearch(Clear(), "   ")) {
		t.Error("whitespace search constrains the result and should count")
	}
	if !HasActive(ToggleReadiness(Clear(), 5)) {
		t.Error("readiness filter should count as active")
	}
}

func TestParse(t *testing.T) {
	f, unknown := Parse("technology, Humanity", "High", "2029+,2031", []int{4}, "ai")
	if !slices.Equal(f.Categories, []model.Category{model.Technology, model.Humanity}) {
		t.Errorf("categories = %v", f.Categories)
	}
	if !slices.Equal(f.Impacts, []model.Impact{model.High}) {
		t.Errorf("impacts = %v", f.Impacts)
	}
	if !slices.Equal(f.TimeHorizons, []model.TimeHorizon{model.Horizon2029Plus}) {
		t.Errorf("horizons = %v", f.TimeHorizons)
	}
	if !slices.Equal(unknown, []string{"horizon 2031"}) {
		t.Errorf("unknown = %v", unknown)
	}
	if f.SearchQuery != "ai" || !slices.Equal(f.ReadinessLevels, []int{4}) {
		t.Errorf("unexpected %+v", f)
	}
}
