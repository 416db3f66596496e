package server

import (
	"fmt"
	"sync"

	"github.com/vanderheijden86/trendradar/internal/datasource"
	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

// Store holds the served dataset. Readers get the slice current at the time
// of the call; Replace swaps in a new slice and never mutates the old one.
type Store struct {
	mu     sync.RWMutex
	trends []model.Trend
	source datasource.DataSource
}

func NewStore(trends []model.Trend, source datasource.DataSource) *Store {
	return &Store{trends: trends, source: source}
}

// Snapshot returns the current dataset and where it came from.
func (s *Store) Snapshot() ([]model.Trend, datasource.DataSource) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trends, s.source
}

// Replace swaps the dataset.
func (s *Store) Replace(trends []model.Trend, source datasource.DataSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends = trends
	s.source = source
}

// Reload re-reads the dataset from its source. On error the current dataset
// stays in place.
func (s *Store) Reload() (datasource.DatasetDiff, error) {
	old, source := s.Snapshot()
	if !source.Watchable() {
		return datasource.DatasetDiff{}, fmt.Errorf("reloading %s: not a file", source)
	}
	fresh, err := datasource.Detect(source.Path)
	if err != nil {
		return datasource.DatasetDiff{}, fmt.Errorf("reloading dataset: %w", err)
	}
	trends, err := datasource.LoadFromSource(fresh)
	if err != nil {
		return datasource.DatasetDiff{}, fmt.Errorf("reloading dataset: %w", err)
	}
	fresh.TrendCount = len(trends)
	diff := datasource.Diff(old, trends)
	s.Replace(trends, fresh)
	debug.Log("server: reloaded %s: %s", fresh.Path, diff.Summary())
	return diff, nil
}
