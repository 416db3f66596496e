// Package loader reads trend datasets from JSON or YAML files, or from the
// dataset embedded in the binary, and validates them before use.
package loader

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/metrics"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

//go:embed default_trends.json
var defaultTrends []byte

// Sentinel errors, checked with errors.Is.
var (
	ErrUnknownFormat = errors.New("unknown dataset format")
	ErrDuplicateID   = errors.New("duplicate trend id")
	ErrEmptyDataset  = errors.New("dataset has no trends")
)

// Format is a dataset file format.
type Format int

const (
	FormatJSON Format = iota + 1
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// document is the wrapped file shape: {"trends": [...]}.
type document struct {
	Trends []model.Trend `json:"trends" yaml:"trends"`
}

// Default returns the embedded dataset.
func Default() ([]model.Trend, error) {
	trends, err := Parse(defaultTrends, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded dataset: %w", err)
	}
	return trends, nil
}

// MustDefault is Default for callers that treat a broken embedded dataset as
// a build defect.
func MustDefault() []model.Trend {
	trends, err := Default()
	if err != nil {
		panic(err)
	}
	return trends
}

// LoadFile reads and validates a JSON or YAML dataset.
func LoadFile(path string) ([]model.Trend, error) {
	defer metrics.Timer(metrics.DatasetLoad)()

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	trends, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	debug.Log("loaded %d trends from %s", len(trends), path)
	return trends, nil
}

// Parse decodes and validates a dataset. Both a bare array of trends and a
// {"trends": [...]} document are accepted.
func Parse(data []byte, format Format) ([]model.Trend, error) {
	var trends []model.Trend
	var err error
	switch format {
	case FormatJSON:
		trends, err = parseJSON(data)
	case FormatYAML:
		trends, err = parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(trends); err != nil {
		return nil, err
	}
	return trends, nil
}

func parseJSON(data []byte) ([]model.Trend, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var trends []model.Trend
		if err := json.Unmarshal(trimmed, &trends); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		return trends, nil
	}
	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return doc.Trends, nil
}

func parseYAML(data []byte) ([]model.Trend, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var trends []model.Trend
		if err := node.Decode(&trends); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
		return trends, nil
	}
	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return doc.Trends, nil
}

// Validate checks every trend and rejects duplicate ids. All defects are
// reported together.
func Validate(trends []model.Trend) error {
	if len(trends) == 0 {
		return ErrEmptyDataset
	}
	var errs []error
	seen := make(map[string]int, len(trends))
	for i, t := range trends {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("trend %d: %w", i, err))
		}
		if t.ID == "" {
			continue
		}
		if first, dup := seen[t.ID]; dup {
			errs = append(errs, fmt.Errorf("%w %q at %d and %d", ErrDuplicateID, t.ID, first, i))
			continue
		}
		seen[t.ID] = i
	}
	return errors.Join(errs...)
}

// Encode writes trends as a {"trends": [...]} document in the given format.
func Encode(trends []model.Trend, format Format) ([]byte, error) {
	doc := document{Trends: trends}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

// WriteFile encodes trends to path, choosing the format from the extension.
func WriteFile(path string, trends []model.Trend) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(trends, format)
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}
	return nil
}
