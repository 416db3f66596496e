package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vanderheijden86/trendradar/pkg/app"
	"github.com/vanderheijden86/trendradar/pkg/config"
	"github.com/vanderheijden86/trendradar/pkg/export"
	"github.com/vanderheijden86/trendradar/pkg/filter"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

// cliFlags holds the flag values that shape the initial state. Empty fields
// leave the configured value alone.
type cliFlags struct {
	data     string
	view     string
	method   string
	size     float64
	category string
	impact   string
	horizon  string
	trl      string
	search   string
	selected string
	watch    bool
}

// applyFlags overrides cfg with every flag that was given.
func applyFlags(cfg config.Config, f cliFlags) config.Config {
	if f.data != "" {
		cfg.Data.Path = f.data
	}
	if f.view != "" {
		cfg.UI.DefaultView = f.view
	}
	if f.method != "" {
		cfg.UI.DefaultMethod = f.method
	}
	if f.size > 0 {
		cfg.UI.ChartSize = f.size
		cfg.Export.Size = f.size
	}
	if f.watch {
		cfg.Data.Watch = true
	}
	return cfg
}

// parseLevels parses a comma-separated TRL list such as "3,4,9".
func parseLevels(s string) ([]int, error) {
	var levels []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < model.MinTRL || n > model.MaxTRL {
			return nil, fmt.Errorf("invalid --trl value %q (want %d-%d)", part, model.MinTRL, model.MaxTRL)
		}
		levels = append(levels, n)
	}
	return levels, nil
}

// buildOptions turns the validated config plus filter flags into the initial
// app options. Unknown filter names are returned as warnings.
func buildOptions(cfg config.Config, f cliFlags) (app.Options, []string, error) {
	levels, err := parseLevels(f.trl)
	if err != nil {
		return app.Options{}, nil, err
	}
	filters, unknown := filter.Parse(f.category, f.impact, f.horizon, levels, strings.TrimSpace(f.search))
	return app.Options{
		View:     cfg.View(),
		Method:   cfg.Method(),
		Filters:  filters,
		Size:     cfg.UI.ChartSize,
		Selected: f.selected,
	}, unknown, nil
}

// splitPaths splits the --export list, dropping empty entries.
func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// exportDocument renders st into an export document.
func exportDocument(st app.State, now time.Time) export.Document {
	doc := export.Document{
		Scene:     st.Scene(),
		Trends:    st.Visible(),
		Total:     len(st.Trends()),
		Generated: now,
	}
	if t, ok := st.SelectedTrend(); ok {
		doc.Selected = &t
	}
	return doc
}
