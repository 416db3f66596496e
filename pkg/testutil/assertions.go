package testutil

import (
	"math"
	"testing"

	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

// AssertTrendCount verifies the expected number of trends.
func AssertTrendCount(t *testing.T, trends []model.Trend, expected int) {
	t.Helper()
	if len(trends) != expected {
		t.Errorf("expected %d trends, got %d", expected, len(trends))
	}
}

// AssertNoDuplicateIDs verifies all trend IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, trends []model.Trend) {
	t.Helper()
	seen := make(map[string]bool)
	for _, tr := range trends {
		if seen[tr.ID] {
			t.Errorf("duplicate trend ID: %s", tr.ID)
		}
		seen[tr.ID] = true
	}
}

// AssertAllValid verifies all trends pass validation.
func AssertAllValid(t *testing.T, trends []model.Trend) {
	t.Helper()
	for i, tr := range trends {
		if err := tr.Validate(); err != nil {
			t.Errorf("trend %d (%s) invalid: %v", i, tr.ID, err)
		}
	}
}

// AssertIDs verifies the trend ids, in order.
func AssertIDs(t *testing.T, trends []model.Trend, ids ...string) {
	t.Helper()
	if len(trends) != len(ids) {
		t.Errorf("expected ids %v, got %v", ids, IDs(trends))
		return
	}
	for i, tr := range trends {
		if tr.ID != ids[i] {
			t.Errorf("expected ids %v, got %v", ids, IDs(trends))
			return
		}
	}
}

// AssertSubsequence verifies sub appears in full in the same relative order.
func AssertSubsequence(t *testing.T, sub, full []model.Trend) {
	t.Helper()
	j := 0
	for _, tr := range full {
		if j < len(sub) && sub[j].ID == tr.ID {
			j++
		}
	}
	if j != len(sub) {
		t.Errorf("%v is not an ordered subsequence of %v", IDs(sub), IDs(full))
	}
}

// AssertPointNear verifies got is within eps of want on both axes.
func AssertPointNear(t *testing.T, got, want geom.Point, eps float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps {
		t.Errorf("expected point %v, got %v", want, got)
	}
}

// AssertNear verifies got is within eps of want.
func AssertNear(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// IDs returns the ids of trends, in order.
func IDs(trends []model.Trend) []string {
	out := make([]string, len(trends))
	for i, tr := range trends {
		out[i] = tr.ID
	}
	return out
}
