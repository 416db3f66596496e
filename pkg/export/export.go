// Package export renders chart scenes and trend listings to files: SVG and
// PNG snapshots, Markdown reports and SQLite datasets.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/trendradar/internal/datasource"
	"github.com/vanderheijden86/trendradar/pkg/chart"
	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/projection"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// HeaderHeight is the height of the title band above the chart in image
// exports.
const HeaderHeight = 56

// Format is an export output format.
type Format string

const (
	FormatSVG      Format = "svg"
	FormatPNG      Format = "png"
	FormatMarkdown Format = "md"
	FormatSQLite   Format = "db"
)

// FormatForPath infers the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return FormatSVG, nil
	case ".png":
		return FormatPNG, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Document is everything an export needs: the rendered scene plus the trends
// it shows.
type Document struct {
	Scene chart.Scene
	// Trends is the filtered sequence in draw order.
	Trends []model.Trend
	// Total is the size of the unfiltered dataset.
	Total int
	// Selected is the trend shown in the detail panel, if any.
	Selected *model.Trend
	// Title overrides the view title.
	Title     string
	Generated time.Time
}

// HeaderTitle returns the title line.
func (d Document) HeaderTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Scene.View.Title()
}

// HeaderSubtitle returns the counts and, for the radar, the distribution
// method and zoom.
func (d Document) HeaderSubtitle() string {
	s := fmt.Sprintf("Showing %d of %d trends", len(d.Trends), d.Total)
	if d.Scene.View == model.ViewRadar {
		s += fmt.Sprintf("  |  Distribution: %s", d.Scene.Method.Label())
	}
	return s + fmt.Sprintf("  |  Zoom: %d%%", d.Scene.Viewport.ZoomPercent())
}

type legendEntry struct {
	label string
	color string
}

func categoryLegend() []legendEntry {
	out := make([]legendEntry, 0, model.NumCategories-1)
	for _, c := range model.Categories() {
		out = append(out, legendEntry{label: c.String(), color: projection.CategoryColor(c)})
	}
	return out
}

// Write renders doc in the given format. SQLite needs a path and is not
// supported here.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatSVG:
		return WriteSVG(w, doc)
	case FormatPNG:
		return WritePNG(w, doc)
	case FormatMarkdown:
		return WriteMarkdown(w, doc)
	}
	return fmt.Errorf("%w: %q cannot be streamed", ErrUnsupportedFormat, format)
}

// SaveSnapshot writes doc to path in the format implied by its extension.
func SaveSnapshot(path string, doc Document) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if format == FormatSQLite {
		return datasource.SaveSQLite(path, doc.Trends)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, format, doc); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	debug.Log("export: wrote %s (%s, %d trends)", path, format, len(doc.Trends))
	return nil
}

// SaveAll writes doc to every path concurrently. All paths are validated
// before anything is written. The first error stops writes that have not
// started yet and is returned.
func SaveAll(ctx context.Context, paths []string, doc Document) error {
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if _, err := FormatForPath(p); err != nil {
			return err
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if seen[abs] {
			return fmt.Errorf("duplicate export path %s", p)
		}
		seen[abs] = true
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return SaveSnapshot(p, doc)
		})
	}
	return g.Wait()
}
