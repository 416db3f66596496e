package model_test

import (
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

func validTrend() model.Trend {
	return model.Trend{
		ID:                "1",
		Name:              "Quantum Computing",
		Description:       "qubits",
		Category:          model.Technology,
		ReadinessLevel:    4,
		BusinessReadiness: 2,
		Impact:            model.Transformative,
		TimeHorizon:       model.Horizon2029Plus,
		Angle:             45,
		Radius:            0.8,
		Tags:              []string{"Computing", "Research"},
		LastUpdated:       model.NewDate(2024, 1, 15),
	}
}

func TestEnumRoundTripStrings(t *testing.T) {
	for _, c := range model.Categories() {
		if got := model.ParseCategory(c.String()); got != c {
			t.Errorf("ParseCategory(%q) = %v, want %v", c.String(), got, c)
		}
	}
	for _, i := range model.Impacts() {
		if got := model.ParseImpact(strings.ToLower(i.String())); got != i {
			t.Errorf("ParseImpact(%q) = %v, want %v", i.String(), got, i)
		}
	}
	for _, h := range model.TimeHorizons() {
		if got := model.ParseTimeHorizon(h.String()); got != h {
			t.Errorf("ParseTimeHorizon(%q) = %v, want %v", h.String(), got, h)
		}
	}
	for _, m := range model.Methods() {
		if got := model.ParseMethod(m.String()); got != m {
			t.Errorf("ParseMethod(%q) = %v, want %v", m.String(), got, m)
		}
		if m.Label() == "" || m.Description() == "" {
			t.Errorf("method %v missing label or description", m)
		}
	}
}

func TestEnumUnknownStringsDecodeToZero(t *testing.T) {
	if model.ParseCategory("Biology") != model.CategoryUnknown {
		t.Error("expected unknown category")
	}
	if model.ParseImpact("Huge") != model.ImpactUnknown {
		t.Error("expected unknown impact")
	}
	if model.ParseTimeHorizon("2030") != model.HorizonUnknown {
		t.Error("expected unknown horizon")
	}
	if model.ParseMethod("") != model.MethodAuthored {
		t.Error("expected authored method")
	}
	if m, ok := model.LookupMethod("Impact"); !ok || m != model.MethodImpact {
		t.Errorf("LookupMethod(Impact) = %v, %v", m, ok)
	}
	if m, ok := model.LookupMethod("authored"); !ok || m != model.MethodAuthored {
		t.Errorf("LookupMethod(authored) = %v, %v", m, ok)
	}
	if _, ok := model.LookupMethod("random"); ok {
		t.Error("LookupMethod should reject unknown names")
	}
	if _, ok := model.ParseViewMode("pie"); ok {
		t.Error("expected pie to be rejected")
	}
	if model.Category(200).String() != "" || model.Category(200).Valid() {
		t.Error("out of range category should be empty and invalid")
	}
}

func TestHorizonRank(t *testing.T) {
	if model.Horizon2025.Rank() != 1 || model.Horizon2029Plus.Rank() != 5 {
		t.Errorf("unexpected ranks %d %d", model.Horizon2025.Rank(), model.Horizon2029Plus.Rank())
	}
	if model.HorizonUnknown.Rank() != 0 {
		t.Error("unknown horizon should rank 0")
	}
}

func TestViewModeToggle(t *testing.T) {
	if model.ViewRadar.Toggle() != model.ViewMatrix || model.ViewMatrix.Toggle() != model.ViewRadar {
		t.Error("toggle should flip between radar and matrix")
	}
	if model.ViewMatrix.Title() != "Matrix View" {
		t.Errorf("Title = %q", model.ViewMatrix.Title())
	}
}

func TestValidate(t *testing.T) {
	if err := validTrend().Validate(); err != nil {
		t.Fatalf("expected valid trend, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*model.Trend)
		want   string
	}{
		{"missing id", func(tr *model.Trend) { tr.ID = "" }, "id is required"},
		{"unknown category", func(tr *model.Trend) { tr.Category = model.CategoryUnknown }, "unknown category"},
		{"unknown impact", func(tr *model.Trend) { tr.Impact = model.ImpactUnknown }, "unknown impact"},
		{"unknown horizon", func(tr *model.Trend) { tr.TimeHorizon = model.HorizonUnknown }, "unknown time horizon"},
		{"trl too high", func(tr *model.Trend) { tr.ReadinessLevel = 10 }, "readinessLevel 10"},
		{"brl zero", func(tr *model.Trend) { tr.BusinessReadiness = 0 }, "businessReadiness 0"},
		{"angle 360", func(tr *model.Trend) { tr.Angle = 360 }, "angle 360"},
		{"radius negative", func(tr *model.Trend) { tr.Radius = -0.1 }, "radius -0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTrend()
			tt.mutate(&tr)
			err := tr.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, model.ErrInvalidTrend) {
				t.Errorf("expected ErrInvalidTrend, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAllDefects(t *testing.T) {
	tr := validTrend()
	tr.Category = model.CategoryUnknown
	tr.ReadinessLevel = 0
	tr.Radius = 2
	err := tr.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "invalid trend"); n != 3 {
		t.Errorf("expected 3 defects, got %d: %v", n, err)
	}
}

func TestTrendJSON(t *testing.T) {
	data, err := json.Marshal(validTrend())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"category":"Technology"`, `"timeHorizon":"2029+"`, `"lastUpdated":"2024-01-15"`, `"readinessLevel":4`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s missing %s", s, want)
		}
	}

	var back model.Trend
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Category != model.Technology || back.TimeHorizon != model.Horizon2029Plus || back.LastUpdated.String() != "2024-01-15" {
		t.Errorf("unexpected decode %+v", back)
	}
}

func TestTrendYAMLUnquotedHorizon(t *testing.T) {
	src := `
id: "7"
name: Synthetic Biology
category: industry
readinessLevel: 6
businessReadiness: 3
impact: High
timeHorizon: 2027
angle: 105
radius: 0.6
lastUpdated: 2024-01-21
`
	var tr model.Trend
	if err := yaml.Unmarshal([]byte(src), &tr); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if tr.TimeHorizon != model.Horizon2027 {
		t.Errorf("TimeHorizon = %v, want 2027", tr.TimeHorizon)
	}
	if tr.Category != model.Industry {
		t.Errorf("Category = %v, want Industry", tr.Category)
	}
	if tr.LastUpdated.String() != "2024-01-21" {
		t.Errorf("LastUpdated = %q", tr.LastUpdated)
	}
}

func TestDate(t *testing.T) {
	d, err := model.ParseDate("2024-01-26")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Long() != "January 26, 2024" {
		t.Errorf("Long = %q", d.Long())
	}
	if _, err := model.ParseDate("26/01/2024"); err == nil {
		t.Error("expected parse error")
	}
	zero, err := model.ParseDate("")
	if err != nil || !zero.IsZero() || zero.String() != "" {
		t.Errorf("empty date should be zero, got %v %v", zero, err)
	}
}

func TestFilterStateCloneDoesNotAlias(t *testing.T) {
	f := model.FilterState{Categories: []model.Category{model.Technology}}
	c := f.Clone()
	c.Categories[0] = model.Humanity
	if f.Categories[0] != model.Technology {
		t.Error("Clone aliased the categories slice")
	}
}

func TestQuadrantContainsIsHalfOpen(t *testing.T) {
	q := model.RadarQuadrant{Name: "Technology", StartAngle: 0, EndAngle: 90}
	if !q.Contains(0) || !q.Contains(89.9) {
		t.Error("expected start inclusive")
	}
	if q.Contains(90) {
		t.Error("expected end exclusive")
	}
}

func TestFindByID(t *testing.T) {
	trends := []model.Trend{validTrend(), {ID: "2"}}
	if got, ok := model.FindByID(trends, "2"); !ok || got.ID != "2" {
		t.Errorf("FindByID = %v %v", got, ok)
	}
	if _, ok := model.FindByID(trends, "99"); ok {
		t.Error("expected missing id")
	}
	if model.IndexOf(trends, "2") != 1 || model.IndexOf(trends, "x") != -1 {
		t.Error("IndexOf mismatch")
	}
}
