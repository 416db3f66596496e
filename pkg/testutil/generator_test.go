package testutil

import (
	"testing"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewDefault().Trends(20)
	b := NewDefault().Trends(20)
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Category != b[i].Category || a[i].ReadinessLevel != b[i].ReadinessLevel {
			t.Fatalf("trend %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGeneratorProducesValidTrends(t *testing.T) {
	trends := NewDefault().Trends(200)
	AssertTrendCount(t, trends, 200)
	AssertNoDuplicateIDs(t, trends)
	AssertAllValid(t, trends)
}

func TestGeneratorCategoryMix(t *testing.T) {
	g := New(GeneratorConfig{Seed: 7, CategoryMix: []model.Category{model.Humanity}})
	for _, tr := range g.Trends(30) {
		if tr.Category != model.Humanity {
			t.Fatalf("expected only Humanity, got %v", tr.Category)
		}
		if tr.Angle < 180 || tr.Angle >= 270 {
			t.Errorf("angle %v outside the Humanity quadrant", tr.Angle)
		}
	}
}

func TestFixture15(t *testing.T) {
	trends := Fixture15()
	AssertTrendCount(t, trends, 15)
	AssertNoDuplicateIDs(t, trends)
	AssertAllValid(t, trends)

	counts := map[model.Category]int{}
	for _, tr := range trends {
		counts[tr.Category]++
	}
	if counts[model.Technology] != 4 || counts[model.Industry] != 6 || counts[model.Humanity] != 5 {
		t.Errorf("unexpected category counts %v", counts)
	}
	if trends[0].ID != "1" || trends[0].Category != model.Technology {
		t.Errorf("trend 1 should be Technology, got %+v", trends[0])
	}
}
