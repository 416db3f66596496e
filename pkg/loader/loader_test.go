package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/trendradar/pkg/filter"
	"github.com/vanderheijden86/trendradar/pkg/loader"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/testutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultDataset(t *testing.T) {
	trends, err := loader.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	testutil.AssertTrendCount(t, trends, 15)
	testutil.AssertNoDuplicateIDs(t, trends)
	testutil.AssertAllValid(t, trends)

	tech := filter.Apply(trends, model.FilterState{Categories: []model.Category{model.Technology}})
	testutil.AssertIDs(t, tech, "1", "2", "3", "4", "13", "15")

	longevity, ok := model.FindByID(trends, "12")
	if !ok || longevity.Name != "Longevity Therapies" || longevity.TimeHorizon != model.Horizon2029Plus || longevity.Angle != 240 {
		t.Errorf("unexpected trend 12: %+v", longevity)
	}
	if longevity.LastUpdated.String() != "2024-01-26" {
		t.Errorf("lastUpdated = %s", longevity.LastUpdated)
	}
}

func TestLoadFileJSONArray(t *testing.T) {
	path := testutil.WriteJSONFixture(t, t.TempDir(), "trends.json", testutil.Fixture15())
	trends, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	testutil.AssertTrendCount(t, trends, 15)
}

func TestLoadFileYAMLDocument(t *testing.T) {
	path := writeFile(t, "trends.yaml", `
trends:
  - id: a
    name: Edge AI
    category: Technology
    readinessLevel: 7
    businessReadiness: 4
    impact: High
    timeHorizon: 2025
    angle: 30
    radius: 0.4
    tags: [AI, Hardware]
    lastUpdated: 2024-01-20
  - id: b
    name: UBI
    category: Humanity
    readinessLevel: 9
    businessReadiness: 2
    impact: Transformative
    timeHorizon: 2029+
    angle: 225
    radius: 0.7
`)
	trends, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	testutil.AssertIDs(t, trends, "a", "b")
	if trends[0].TimeHorizon != model.Horizon2025 || trends[1].TimeHorizon != model.Horizon2029Plus {
		t.Errorf("horizons %v %v", trends[0].TimeHorizon, trends[1].TimeHorizon)
	}
}

func TestLoadFileYAMLSequence(t *testing.T) {
	path := writeFile(t, "trends.yml", `
- id: x
  name: Digital Twins
  category: Industry
  readinessLevel: 7
  businessReadiness: 4
  impact: Medium
  timeHorizon: "2025"
  angle: 150
  radius: 0.4
`)
	trends, err := loader.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	testutil.AssertIDs(t, trends, "x")
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		is      error
		want    string
	}{
		{"unknown extension", "trends.csv", "id", loader.ErrUnknownFormat, "unknown dataset format"},
		{"empty", "trends.json", "[]", loader.ErrEmptyDataset, "no trends"},
		{"bad json", "trends.json", "{", nil, "parsing JSON"},
		{"bad yaml", "trends.yaml", "trends: [", nil, "parsing YAML"},
		{"invalid trend", "trends.json", `[{"id":"1","name":"x","category":"Biology","readinessLevel":12,"businessReadiness":1,"impact":"Low","timeHorizon":"2025","angle":10,"radius":0.5}]`,
			model.ErrInvalidTrend, "unknown category"},
		{"duplicate", "trends.json", `[
			{"id":"1","name":"x","category":"Industry","readinessLevel":2,"businessReadiness":1,"impact":"Low","timeHorizon":"2025","angle":10,"radius":0.5},
			{"id":"1","name":"y","category":"Industry","readinessLevel":2,"businessReadiness":1,"impact":"Low","timeHorizon":"2025","angle":10,"radius":0.5}]`,
			loader.ErrDuplicateID, `"1" at 0 and 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadFile(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected errors.Is(%v), got %v", tt.is, err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := loader.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "reading dataset") {
		t.Errorf("expected reading error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestValidateReportsEveryDefect(t *testing.T) {
	trends := testutil.Fixture15()
	trends[2].Impact = model.ImpactUnknown
	trends[5].BusinessReadiness = 7
	trends[9].ID = trends[0].ID
	err := loader.Validate(trends)
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"trend 2", "trend 5", "duplicate trend id"} {
		if !strings.Contains(msg, want) {
			t.Errorf("missing %q in %v", want, msg)
		}
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.json", "out.yaml"} {
		path := filepath.Join(dir, name)
		if err := loader.WriteFile(path, testutil.Fixture15()); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
		back, err := loader.LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile %s: %v", name, err)
		}
		testutil.AssertIDs(t, back, testutil.IDs(testutil.Fixture15())...)
		if back[13].TimeHorizon != model.Horizon2029Plus || back[13].LastUpdated.String() != testutil.Fixture15()[13].LastUpdated.String() {
			t.Errorf("%s lost fields: %+v", name, back[13])
		}
	}
	if err := loader.WriteFile(filepath.Join(dir, "out.txt"), nil); !errors.Is(err, loader.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
