package projection

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/testutil"
)

func TestComputeRadiusFormulas(t *testing.T) {
	base := model.Trend{ReadinessLevel: 5, BusinessReadiness: 3, Impact: model.High, TimeHorizon: model.Horizon2027, Radius: 0.42}
	tests := []struct {
		name   string
		method model.Method
		mutate func(*model.Trend)
		want   float64
	}{
		{"technology trl9 clamps low", model.MethodTechnology, func(t *model.Trend) { t.ReadinessLevel = 9 }, 0.1},
		{"technology trl1 clamps high", model.MethodTechnology, func(t *model.Trend) { t.ReadinessLevel = 1 }, 0.9},
		{"technology trl5", model.MethodTechnology, nil, 0.5},
		{"business brl3", model.MethodBusiness, nil, 0.5},
		{"business brl5", model.MethodBusiness, func(t *model.Trend) { t.BusinessReadiness = 5 }, 0.1},
		{"impact high", model.MethodImpact, nil, 1.0 / 3},
		{"impact low", model.MethodImpact, func(t *model.Trend) { t.Impact = model.Low }, 0.9},
		{"impact transformative", model.MethodImpact, func(t *model.Trend) { t.Impact = model.Transformative }, 0.1},
		{"timeline 2027", model.MethodTimeline, nil, 0.5},
		{"timeline 2029+", model.MethodTimeline, func(t *model.Trend) { t.TimeHorizon = model.Horizon2029Plus }, 0.9},
		{"authored", model.MethodAuthored, nil, 0.42},
		{"authored clamps", model.MethodAuthored, func(t *model.Trend) { t.Radius = 1 }, 0.9},
		{"unknown method", model.Method(99), nil, 0.42},
		{"unknown impact falls back", model.MethodImpact, func(t *model.Trend) { t.Impact = model.ImpactUnknown }, 0.42},
		{"unknown horizon falls back", model.MethodTimeline, func(t *model.Trend) { t.TimeHorizon = model.HorizonUnknown }, 0.42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := base
			if tt.mutate != nil {
				tt.mutate(&tr)
			}
			testutil.AssertNear(t, ComputeRadius(tr, tt.method), tt.want, 1e-9)
		})
	}
}

func TestComputeRadiusAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := testutil.AnyTrendGen().Draw(t, "trend")
		m := model.Method(rapid.IntRange(0, model.NumMethods+1).Draw(t, "method"))
		r := ComputeRadius(tr, m)
		if r < MinRadius || r > MaxRadius || math.IsNaN(r) {
			t.Fatalf("ComputeRadius(%+v, %v) = %v out of range", tr, m, r)
		}
		if r != ComputeRadius(tr, m) {
			t.Fatal("ComputeRadius is not deterministic")
		}
	})
}

func TestComputeRadiusNaNRadius(t *testing.T) {
	tr := model.Trend{Radius: math.NaN()}
	if got := ComputeRadius(tr, model.MethodAuthored); got != MinRadius {
		t.Errorf("NaN radius should clamp to %v, got %v", MinRadius, got)
	}
}

func TestPolarToCartesian(t *testing.T) {
	c := geom.Pt(300, 300)
	tests := []struct {
		angle float64
		want  geom.Point
	}{
		{0, geom.Pt(300, 200)},
		{90, geom.Pt(400, 300)},
		{180, geom.Pt(300, 400)},
		{270, geom.Pt(200, 300)},
	}
	for _, tt := range tests {
		testutil.AssertPointNear(t, PolarToCartesian(tt.angle, 0.5, c, 200), tt.want, 1e-9)
	}
}

func TestRadarGeometry(t *testing.T) {
	g := NewRadarGeometry(600)
	if g.Center != geom.Pt(300, 300) || g.MaxRadius != 260 {
		t.Fatalf("unexpected geometry %+v", g)
	}
	testutil.AssertNear(t, g.QuadrantLabelRadius(), 280, 1e-9)
	testutil.AssertNear(t, g.RingRadius(0), 52, 1e-9)

	tr := model.Trend{Angle: 90, ReadinessLevel: 5}
	p := RadarPosition(tr, model.MethodTechnology, g)
	testutil.AssertPointNear(t, p, geom.Pt(300+0.5*260, 300), 1e-9)

	if NewRadarGeometry(0).Size != DefaultSize {
		t.Error("non-positive size should use the default")
	}
}

func TestAngleIndependentOfMethod(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tr := testutil.TrendGen().Draw(t, "trend")
		g := NewRadarGeometry(600)
		want := math.Mod(tr.Angle-90+720, 360)
		for _, m := range model.Methods() {
			p := g.Position(tr, m)
			got := math.Atan2(p.Y-g.Center.Y, p.X-g.Center.X) * 180 / math.Pi
			got = math.Mod(got+720, 360)
			diff := math.Abs(got - want)
			if diff > 1e-6 && math.Abs(diff-360) > 1e-6 {
				t.Fatalf("method %v moved angle %v to %v", m, want, got)
			}
		}
	})
}

func TestMatrixGeometry(t *testing.T) {
	g := NewMatrixGeometry(600)
	if g.Margin != 80 || g.Width != 440 || g.Height != 440 {
		t.Fatalf("unexpected geometry %+v", g)
	}
	testutil.AssertPointNear(t, MatrixPosition(model.Trend{ReadinessLevel: 1, BusinessReadiness: 1}, g), geom.Pt(80, 520), 1e-9)
	testutil.AssertPointNear(t, MatrixPosition(model.Trend{ReadinessLevel: 9, BusinessReadiness: 5}, g), geom.Pt(520, 80), 1e-9)
	testutil.AssertPointNear(t, g.Position(model.Trend{ReadinessLevel: 5, BusinessReadiness: 3}), geom.Pt(300, 300), 1e-9)
}

func TestTablesAreComplete(t *testing.T) {
	for i := 0; i < model.NumCategories; i++ {
		if categoryColors[i] == "" {
			t.Errorf("category %d has no color", i)
		}
	}
	for i := 0; i < model.NumImpacts; i++ {
		if radarSizes[i] <= 0 || matrixSizes[i] <= 0 || impactBadgeColors[i] == "" {
			t.Errorf("impact %d table entry missing", i)
		}
	}
	for i := 0; i < model.NumMethods; i++ {
		for j, l := range ringLabels[i] {
			if l == "" {
				t.Errorf("method %d ring label %d empty", i, j)
			}
		}
	}
}

func TestSizesAreOrdinal(t *testing.T) {
	impacts := model.Impacts()
	for i := 1; i < len(impacts); i++ {
		if RadarMarkerSize(impacts[i]) <= RadarMarkerSize(impacts[i-1]) {
			t.Errorf("radar size not increasing at %v", impacts[i])
		}
		if MatrixMarkerSize(impacts[i]) <= MatrixMarkerSize(impacts[i-1]) {
			t.Errorf("matrix size not increasing at %v", impacts[i])
		}
	}
	if RadarMarkerSize(model.ImpactUnknown) != 4 || MatrixMarkerSize(model.Impact(42)) != 6 {
		t.Error("unknown impact should use the neutral size")
	}
}

func TestColorsShareCategoryTable(t *testing.T) {
	for _, c := range model.Categories() {
		q := DefaultQuadrants()[int(c)-1]
		if q.Color != CategoryColor(c) || q.Name != c.String() {
			t.Errorf("quadrant %v does not match category %v", q, c)
		}
		if MatrixColor(model.Trend{Category: c}) != CategoryColor(c) {
			t.Errorf("matrix color mismatch for %v", c)
		}
	}
	if RadarColor(model.Trend{Angle: 300}) != FutureColor {
		t.Error("angle 300 should use the Future quadrant")
	}
	if RadarColor(model.Trend{Angle: 400}) != FallbackColor || RadarColor(model.Trend{Angle: -1}) != FallbackColor {
		t.Error("angles outside every quadrant should use the fallback color")
	}
	if CategoryColor(model.CategoryUnknown) != FallbackColor {
		t.Error("unknown category should be neutral")
	}
}

func TestBrighten(t *testing.T) {
	if got := Brighten("#808080", 1.2); got != "#9a9a9a" {
		t.Errorf("Brighten = %s", got)
	}
	if got := Brighten("#ffffff", 1.2); got != "#ffffff" {
		t.Errorf("Brighten should clamp, got %s", got)
	}
	if got := Brighten("not a color", 1.1); got != "not a color" {
		t.Errorf("invalid input should pass through, got %s", got)
	}
}

func TestLabels(t *testing.T) {
	if RingLabels(model.MethodTimeline)[2] != "2027-28" || RingLabels(model.Method(50))[0] != "Mature" {
		t.Error("unexpected ring labels")
	}
	stages := []struct {
		trl, brl        int
		trlStage, brlSt string
		maturity        string
	}{
		{3, 2, "Research & Development", "Early Market Exploration", "Early"},
		{6, 3, "Technology Development", "Market Development", "Developing"},
		{7, 4, "System Development & Deployment", "Market Deployment", "Advanced"},
	}
	for _, s := range stages {
		if TRLStage(s.trl) != s.trlStage || BRLStage(s.brl) != s.brlSt || Maturity(s.trl) != s.maturity {
			t.Errorf("stage labels wrong for trl %d brl %d", s.trl, s.brl)
		}
	}
	testutil.AssertNear(t, TRLPercent(9), 100, 1e-9)
	testutil.AssertNear(t, BRLPercent(2), 40, 1e-9)
}
