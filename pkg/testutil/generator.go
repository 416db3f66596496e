// Package testutil provides trend fixtures, generators and assertions shared by
// the package tests. All generators produce deterministic output for a seed.
package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

// TrendFixture is the on-disk shape of a fixture file: {"description", "trends"}.
type TrendFixture struct {
	Description string        `json:"description"`
	Trends      []model.Trend `json:"trends"`
}

// GeneratorConfig controls trend generation.
type GeneratorConfig struct {
	Seed        int64            // Random seed for determinism (0 = use current time)
	IDPrefix    string           // Prefix for trend IDs (default: "T")
	BaseDate    model.Date       // Date of the first trend (default: 2024-01-01)
	CategoryMix []model.Category // Categories to draw from (nil = all)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42,
		IDPrefix: "T",
		BaseDate: model.NewDate(2024, time.January, 1),
	}
}

// Generator creates random but reproducible trend datasets.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "T"
	}
	if cfg.BaseDate.IsZero() {
		cfg.BaseDate = model.NewDate(2024, time.January, 1)
	}
	if len(cfg.CategoryMix) == 0 {
		cfg.CategoryMix = model.Categories()
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Trend generates the i-th trend. Angles stay inside the quadrant of the category.
func (g *Generator) Trend(i int) model.Trend {
	cat := g.cfg.CategoryMix[g.rng.Intn(len(g.cfg.CategoryMix))]
	impacts := model.Impacts()
	horizons := model.TimeHorizons()
	base := float64(int(cat)-1) * 90
	return model.Trend{
		ID:                fmt.Sprintf("%s-%d", g.cfg.IDPrefix, i),
		Name:              fmt.Sprintf("Trend %d", i),
		Description:       fmt.Sprintf("Generated %s trend number %d", cat, i),
		Category:          cat,
		ReadinessLevel:    1 + g.rng.Intn(model.MaxTRL),
		BusinessReadiness: 1 + g.rng.Intn(model.MaxBRL),
		Impact:            impacts[g.rng.Intn(len(impacts))],
		TimeHorizon:       horizons[g.rng.Intn(len(horizons))],
		Angle:             base + float64(g.rng.Intn(90)),
		Radius:            float64(g.rng.Intn(101)) / 100,
		Tags:              []string{cat.String(), fmt.Sprintf("tag%d", i%5)},
		LastUpdated:       model.NewDate(2024, time.January, 1+i%28),
	}
}

// Trends generates n trends with ids PREFIX-0 .. PREFIX-(n-1).
func (g *Generator) Trends(n int) []model.Trend {
	out := make([]model.Trend, n)
	for i := range out {
		out[i] = g.Trend(i)
	}
	return out
}

type fixtureRow struct {
	name   string
	cat    model.Category
	trl    int
	brl    int
	impact model.Impact
	h      model.TimeHorizon
	angle  float64
	tags   []string
}

// fixture15 has 4 Technology, 6 Industry and 5 Humanity trends.
var fixture15 = []fixtureRow{
	{"Quantum Computing", model.Technology, 4, 2, model.Transformative, model.Horizon2029Plus, 45, []string{"Computing", "Research"}},
	{"Edge AI Chips", model.Technology, 7, 4, model.High, model.Horizon2025, 30, []string{"AI", "Hardware"}},
	{"Neural Interfaces", model.Technology, 5, 2, model.Transformative, model.Horizon2028, 60, []string{"Neuroscience", "Medical"}},
	{"Autonomous Vehicles", model.Technology, 8, 3, model.High, model.Horizon2026, 15, []string{"Transportation", "AI"}},
	{"Vertical Farming", model.Industry, 8, 4, model.High, model.Horizon2025, 120, []string{"Agriculture"}},
	{"Space Manufacturing", model.Industry, 3, 1, model.Transformative, model.Horizon2029Plus, 135, []string{"Space", "Materials"}},
	{"Synthetic Biology", model.Industry, 6, 3, model.High, model.Horizon2027, 105, []string{"Biotechnology"}},
	{"Digital Twins", model.Industry, 7, 4, model.Medium, model.Horizon2025, 150, []string{"Simulation", "IoT"}},
	{"Climate Engineering", model.Industry, 5, 2, model.Transformative, model.Horizon2028, 285, []string{"Climate"}},
	{"Additive Construction", model.Industry, 6, 3, model.Low, model.Horizon2026, 165, []string{"Construction", "Materials"}},
	{"Universal Basic Income", model.Humanity, 9, 2, model.Transformative, model.Horizon2028, 225, []string{"Economics"}},
	{"Personalized Medicine", model.Humanity, 7, 4, model.High, model.Horizon2026, 210, []string{"Healthcare", "Genetics"}},
	{"Virtual Reality Education", model.Humanity, 8, 3, model.Medium, model.Horizon2025, 195, []string{"Education", "VR"}},
	{"Longevity Therapies", model.Humanity, 4, 2, model.Transformative, model.Horizon2029Plus, 240, []string{"Healthcare", "Aging"}},
	{"Four Day Week", model.Humanity, 9, 5, model.Low, model.Horizon2027, 255, []string{"Work", "Social Policy"}},
}

// Fixture15 returns a fixed 15-trend dataset with ids "1" to "15":
// ids 1-4 are Technology, 5-10 Industry and 11-15 Humanity.
func Fixture15() []model.Trend {
	out := make([]model.Trend, len(fixture15))
	for i, r := range fixture15 {
		out[i] = model.Trend{
			ID:                fmt.Sprint(i + 1),
			Name:              r.name,
			Description:       r.name + " fixture trend",
			Category:          r.cat,
			ReadinessLevel:    r.trl,
			BusinessReadiness: r.brl,
			Impact:            r.impact,
			TimeHorizon:       r.h,
			Angle:             r.angle,
			Radius:            0.5,
			Tags:              append([]string(nil), r.tags...),
			LastUpdated:       model.NewDate(2024, time.January, 10+i),
		}
	}
	return out
}

// WriteJSONFixture writes trends as a JSON array into dir and returns the path.
func WriteJSONFixture(t *testing.T, dir, name string, trends []model.Trend) string {
	t.Helper()
	data, err := json.MarshalIndent(trends, "", "  ")
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
