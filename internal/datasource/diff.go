package datasource

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

// DatasetDiff describes what changed between two loads of a dataset.
type DatasetDiff struct {
	// Added contains ids present only in the new dataset
	Added []string `json:"added,omitempty"`
	// Removed contains ids present only in the old dataset
	Removed []string `json:"removed,omitempty"`
	// Changed contains ids present in both whose records differ
	Changed []string `json:"changed,omitempty"`
	CountA  int      `json:"count_old"`
	CountB  int      `json:"count_new"`
}

// Empty reports whether the datasets are identical.
func (d DatasetDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Summary returns a one-line description for status bars.
func (d DatasetDiff) Summary() string {
	if d.Empty() {
		return fmt.Sprintf("no changes (%d trends)", d.CountB)
	}
	var parts []string
	if n := len(d.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("+%d added", n))
	}
	if n := len(d.Removed); n > 0 {
		parts = append(parts, fmt.Sprintf("-%d removed", n))
	}
	if n := len(d.Changed); n > 0 {
		parts = append(parts, fmt.Sprintf("~%d changed", n))
	}
	return fmt.Sprintf("%s (%d trends)", strings.Join(parts, ", "), d.CountB)
}

// Diff compares two datasets by trend id. Ids are reported in the order they
// appear in their dataset.
func Diff(a, b []model.Trend) DatasetDiff {
	d := DatasetDiff{CountA: len(a), CountB: len(b)}
	old := make(map[string]model.Trend, len(a))
	for _, t := range a {
		old[t.ID] = t
	}
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		seen[t.ID] = true
		prev, ok := old[t.ID]
		switch {
		case !ok:
			d.Added = append(d.Added, t.ID)
		case !sameTrend(prev, t):
			d.Changed = append(d.Changed, t.ID)
		}
	}
	for _, t := range a {
		if !seen[t.ID] {
			d.Removed = append(d.Removed, t.ID)
		}
	}
	return d
}

func sameTrend(x, y model.Trend) bool {
	return x.ID == y.ID &&
		x.Name == y.Name &&
		x.Description == y.Description &&
		x.Category == y.Category &&
		x.ReadinessLevel == y.ReadinessLevel &&
		x.BusinessReadiness == y.BusinessReadiness &&
		x.Impact == y.Impact &&
		x.TimeHorizon == y.TimeHorizon &&
		x.Angle == y.Angle &&
		x.Radius == y.Radius &&
		slices.Equal(x.Tags, y.Tags) &&
		x.LastUpdated.String() == y.LastUpdated.String()
}
