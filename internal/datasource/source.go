// Package datasource resolves a dataset location to a concrete source
// (embedded default, JSON, YAML or SQLite), loads it, and compares datasets
// across reloads.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SourceType identifies the type of data source.
type SourceType string

const (
	// SourceTypeEmbedded is the dataset compiled into the binary.
	SourceTypeEmbedded SourceType = "embedded"
	// SourceTypeJSON is a JSON file.
	SourceTypeJSON SourceType = "json"
	// SourceTypeYAML is a YAML file.
	SourceTypeYAML SourceType = "yaml"
	// SourceTypeSQLite is a SQLite database with a trends table.
	SourceTypeSQLite SourceType = "sqlite"
)

// DataSource describes where a dataset came from.
type DataSource struct {
	Type SourceType `json:"type"`
	// Path is empty for the embedded source.
	Path    string    `json:"path,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty"`
	Size    int64     `json:"size,omitempty"`
	// TrendCount is set once the source has been loaded.
	TrendCount int `json:"trend_count"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	if s.Type == SourceTypeEmbedded {
		return fmt.Sprintf("embedded dataset (%d trends)", s.TrendCount)
	}
	return fmt.Sprintf("%s (%s, mod=%s, trends=%d)",
		s.Path, s.Type, s.ModTime.Format(time.RFC3339), s.TrendCount)
}

// Watchable reports whether the source is a file that can change on disk.
func (s DataSource) Watchable() bool {
	return s.Type != SourceTypeEmbedded && s.Path != ""
}

// TypeForPath maps a file extension to a source type.
func TypeForPath(path string) (SourceType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceTypeJSON, nil
	case ".yaml", ".yml":
		return SourceTypeYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, nil
	}
	return "", fmt.Errorf("unsupported dataset extension %q", filepath.Ext(path))
}

// Detect resolves path to a DataSource. An empty path selects the embedded
// dataset.
func Detect(path string) (DataSource, error) {
	if path == "" {
		return DataSource{Type: SourceTypeEmbedded}, nil
	}
	typ, err := TypeForPath(path)
	if err != nil {
		return DataSource{}, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return DataSource{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return DataSource{}, fmt.Errorf("cannot access dataset: %w", err)
	}
	if info.IsDir() {
		return DataSource{}, fmt.Errorf("dataset path %s is a directory", abs)
	}
	return DataSource{
		Type:    typ,
		Path:    abs,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}
