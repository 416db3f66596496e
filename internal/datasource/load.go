package datasource

import (
	"fmt"

	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/loader"
	"github.com/vanderheijden86/trendradar/pkg/metrics"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

// Load resolves path and loads the dataset from it. An empty path loads the
// embedded dataset.
func Load(path string) ([]model.Trend, DataSource, error) {
	source, err := Detect(path)
	if err != nil {
		return nil, DataSource{}, err
	}
	trends, err := LoadFromSource(source)
	if err != nil {
		return nil, source, err
	}
	source.TrendCount = len(trends)
	debug.Log("dataset: %s", source)
	return trends, source, nil
}

// LoadFromSource loads trends from a specific DataSource, dispatching to the
// appropriate reader based on source type.
func LoadFromSource(source DataSource) ([]model.Trend, error) {
	switch source.Type {
	case SourceTypeEmbedded:
		return loader.Default()

	case SourceTypeJSON, SourceTypeYAML:
		return loader.LoadFile(source.Path)

	case SourceTypeSQLite:
		defer metrics.Timer(metrics.DatasetLoad)()
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite source %s: %w", source.Path, err)
		}
		defer reader.Close()
		trends, err := reader.LoadTrends()
		if err != nil {
			return nil, err
		}
		if err := loader.Validate(trends); err != nil {
			return nil, fmt.Errorf("loading %s: %w", source.Path, err)
		}
		return trends, nil

	default:
		return nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}
