package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/testutil"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

func TestTrendMarkdown(t *testing.T) {
	trend := testutil.Fixture15()[14] // Four Day Week: TRL 9, BRL 5
	md := TrendMarkdown(trend)
	for _, want := range []string{
		"# Four Day Week",
		"Low Impact",
		"Level 9/9",
		"Level 5/5",
		"100%",
		"System Development & Deployment",
		"Market Deployment",
		"| Maturity | Advanced |",
		"`Work` `Social Policy`",
		"Expected Adoption: **2027**",
		"Last Updated: January 24, 2024",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("detail markdown missing %q\n%s", want, md)
		}
	}
}

func TestTrendMarkdownEarlyStage(t *testing.T) {
	trend := testutil.Fixture15()[5] // Space Manufacturing: TRL 3, BRL 1
	md := TrendMarkdown(trend)
	for _, want := range []string{"Research & Development", "Early Market Exploration", "| Maturity | Early |", "33%", "20%"} {
		if !strings.Contains(md, want) {
			t.Errorf("detail markdown missing %q", want)
		}
	}
}

func TestListMarkdown(t *testing.T) {
	trends := testutil.Fixture15()[:3]
	md := ListMarkdown(trends)
	if !strings.Contains(md, "*3 trends.") {
		t.Errorf("missing count line:\n%s", md)
	}
	if strings.Count(md, "### ") != 3 {
		t.Errorf("expected 3 entries:\n%s", md)
	}
	if !strings.Contains(md, "TRL 4/9  |  BRL 2/5") {
		t.Errorf("missing readiness line:\n%s", md)
	}
	if !strings.Contains(ListMarkdown(nil), "No trends match") {
		t.Error("empty list should say nothing matches")
	}
}

func TestWriteMarkdown(t *testing.T) {
	doc := radarDoc(t, viewport.New())
	doc.Generated = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, doc); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	md := buf.String()
	for _, want := range []string{
		"# Radar View",
		"Sat, 01 Mar 2025 12:00:00 UTC",
		"| 🟩 Technology | 4 |",
		"| 🟦 Industry | 6 |",
		"| 🟧 Humanity | 5 |",
		"| **Total** | 15 |",
		"## Edge AI Chips",
		"## All Trends",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestBar(t *testing.T) {
	if got := bar(0.5, 10); got != "█████░░░░░" {
		t.Errorf("bar(0.5) = %q", got)
	}
	if got := bar(2, 4); got != "████" {
		t.Errorf("bar clamps high, got %q", got)
	}
	if got := bar(-1, 4); got != "░░░░" {
		t.Errorf("bar clamps low, got %q", got)
	}
}

func TestImpactBadgeUnknown(t *testing.T) {
	if got := impactBadge(model.ImpactUnknown); !strings.Contains(got, "Unknown") {
		t.Errorf("impactBadge(unknown) = %q", got)
	}
}
