// Package app is the single-writer controller of the dashboard. State is an
// immutable snapshot of everything the views render from; every user action
// is a method returning the next snapshot, so the TUI update loop, the HTTP
// handlers and tests all drive the same transitions.
package app

import (
	"github.com/vanderheijden86/trendradar/pkg/chart"
	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/filter"
	"github.com/vanderheijden86/trendradar/pkg/metrics"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/projection"
	"github.com/vanderheijden86/trendradar/pkg/selection"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

// Options seed a new State.
type Options struct {
	View    model.ViewMode
	Method  model.Method
	Filters model.FilterState
	// Size is the nominal chart side; 0 selects projection.DefaultSize.
	Size float64
	// HitSlop widens marker hit areas by this many screen units.
	HitSlop float64
	// Selected preselects a trend by id. Unknown ids are ignored.
	Selected string
	// Viewport seeds the chart transform.
	Viewport viewport.State
}

// DefaultOptions match the dashboard's first paint: radar view distributed by
// technology readiness with no filters.
func DefaultOptions() Options {
	return Options{View: model.ViewRadar, Method: model.MethodTechnology, Size: projection.DefaultSize}
}

// State is one immutable snapshot. The zero value is an empty dashboard.
type State struct {
	trends      []model.Trend
	filters     model.FilterState
	view        model.ViewMode
	method      model.Method
	size        float64
	slop        float64
	sel         selection.State
	interaction chart.Interaction
}

// New returns the initial state over a dataset. The dataset slice is never
// modified.
func New(trends []model.Trend, opts Options) State {
	size := opts.Size
	if size <= 0 {
		size = projection.DefaultSize
	}
	s := State{
		trends:  trends,
		filters: opts.Filters.Clone(),
		view:    opts.View,
		method:  opts.Method,
		size:    size,
		slop:    opts.HitSlop,
	}
	s.interaction.Viewport = opts.Viewport
	if opts.Selected != "" {
		s = s.SelectTrend(opts.Selected)
	}
	return s
}

// Trends returns the full dataset. Callers must not modify it.
func (s State) Trends() []model.Trend { return s.trends }

// Filters returns a copy of the active filters.
func (s State) Filters() model.FilterState { return s.filters.Clone() }

func (s State) View() model.ViewMode { return s.view }

func (s State) Method() model.Method { return s.method }

func (s State) Size() float64 { return s.size }

func (s State) HitSlop() float64 { return s.slop }

func (s State) Viewport() viewport.State { return s.interaction.Viewport }

func (s State) Selection() selection.State { return s.sel }

// Visible returns the filtered sequence in dataset order.
func (s State) Visible() []model.Trend {
	defer metrics.Timer(metrics.FilterApply)()
	return filter.Apply(s.trends, s.filters)
}

// Counts returns the visible and total trend counts for the header.
func (s State) Counts() (visible, total int) {
	return filter.Count(s.trends, s.filters), len(s.trends)
}

// SelectedTrend returns the trend shown in the detail panel. The selection
// survives filtering; it is looked up in the whole dataset.
func (s State) SelectedTrend() (model.Trend, bool) {
	id, ok := s.sel.SelectedID()
	if !ok {
		return model.Trend{}, false
	}
	return model.FindByID(s.trends, id)
}

// HoveredTrend returns the trend under the pointer, for the tooltip.
func (s State) HoveredTrend() (model.Trend, bool) {
	id, ok := s.sel.HoveredID()
	if !ok {
		return model.Trend{}, false
	}
	return model.FindByID(s.trends, id)
}

// Scene builds the active chart.
func (s State) Scene() chart.Scene {
	defer metrics.Timer(metrics.SceneBuild)()
	visible := s.Visible()
	if s.view == model.ViewMatrix {
		return chart.BuildMatrix(chart.MatrixInput{
			Trends: visible, Size: s.size, Viewport: s.Viewport(), Selection: s.sel,
		})
	}
	return chart.BuildRadar(chart.RadarInput{
		Trends: visible, Method: s.method, Size: s.size, Viewport: s.Viewport(), Selection: s.sel,
	})
}

// SetFilters replaces the filters wholesale. Hover on a trend that is no
// longer visible is dropped.
func (s State) SetFilters(f model.FilterState) State {
	s.filters = f.Clone()
	if id, ok := s.sel.HoveredID(); ok && !s.isVisible(id) {
		s.sel, _ = s.sel.Apply(selection.Event{Kind: selection.ClearHover})
		s.interaction = s.interaction.ClearHover()
	}
	debug.Log("app: filters %+v", s.filters)
	return s
}

// ClearFilters is the sidebar's "Clear All".
func (s State) ClearFilters() State { return s.SetFilters(filter.Clear()) }

// SetView switches chart. The new chart starts with a fresh viewport and no
// hover, like a newly mounted component.
func (s State) SetView(v model.ViewMode) State {
	if v == s.view {
		return s
	}
	s.view = v
	s.interaction = chart.Interaction{}
	s.sel, _ = s.sel.Apply(selection.Event{Kind: selection.ClearHover})
	return s
}

// ToggleView switches between radar and matrix.
func (s State) ToggleView() State { return s.SetView(s.view.Toggle()) }

// SetMethod changes the radar distribution method.
func (s State) SetMethod(m model.Method) State {
	s.method = m
	return s
}

// CycleMethod steps through the selectable methods in toolbar order.
func (s State) CycleMethod(step int) State {
	methods := model.Methods()
	i := 0
	for j, m := range methods {
		if m == s.method {
			i = j
			break
		}
	}
	n := len(methods)
	return s.SetMethod(methods[((i+step)%n+n)%n])
}

// SetSize changes the nominal chart side.
func (s State) SetSize(size float64) State {
	if size > 0 {
		s.size = size
	}
	return s
}

// SetHitSlop changes the extra hit area around markers. Negative values are
// treated as zero.
func (s State) SetHitSlop(slop float64) State {
	s.slop = max(slop, 0)
	return s
}

// Pointer routes one pointer event through the chart interaction and feeds
// the resulting selection events to the selection state.
func (s State) Pointer(ev chart.PointerEvent) State {
	next, events := s.interaction.Handle(s.Scene(), ev, s.slop)
	s.interaction = next
	if len(events) > 0 {
		var changed bool
		s.sel, changed = s.sel.ApplyAll(events...)
		if changed {
			id, _ := s.sel.SelectedID()
			debug.Log("app: selected %q via chart", id)
		}
	}
	return s
}

// ZoomIn applies the zoom-in button.
func (s State) ZoomIn() State {
	s.interaction.Viewport = s.interaction.Viewport.ZoomIn()
	return s
}

// ZoomOut applies the zoom-out button.
func (s State) ZoomOut() State {
	s.interaction.Viewport = s.interaction.Viewport.ZoomOut()
	return s
}

// Wheel applies one wheel notch; positive deltaY zooms out.
func (s State) Wheel(deltaY float64) State {
	s.interaction.Viewport = s.interaction.Viewport.Wheel(deltaY)
	return s
}

// PanBy shifts the view by a screen-space offset, for keyboard panning.
func (s State) PanBy(dx, dy float64) State {
	vp := s.interaction.Viewport
	pan := vp.Pan()
	pan.X += dx
	pan.Y += dy
	s.interaction.Viewport = viewport.At(vp.Zoom(), pan)
	return s
}

// ResetView restores zoom 1 and no pan.
func (s State) ResetView() State {
	s.interaction.Viewport = s.interaction.Viewport.Reset()
	return s
}

// SelectTrend is the detail panel's selection request. Ids not in the
// dataset are ignored.
func (s State) SelectTrend(id string) State {
	if model.IndexOf(s.trends, id) < 0 {
		return s
	}
	s.sel, _ = s.sel.Apply(selection.Event{Kind: selection.Select, TrendID: id})
	return s
}

// CloseDetail clears the selection.
func (s State) CloseDetail() State {
	s.sel, _ = s.sel.Apply(selection.Event{Kind: selection.Close})
	return s
}

// SetHover marks a trend hovered without a pointer, for keyboard focus.
// An empty id clears hover.
func (s State) SetHover(id string) State {
	if id == "" || !s.isVisible(id) {
		s.sel, _ = s.sel.Apply(selection.Event{Kind: selection.ClearHover})
		s.interaction = s.interaction.ClearHover()
		return s
	}
	s.sel, _ = s.sel.Apply(selection.Event{Kind: selection.Enter, TrendID: id})
	s.interaction = s.interaction.WithHover(id)
	return s
}

// ReplaceDataset swaps in a reloaded dataset. Selection and hover survive
// when their trend still exists.
func (s State) ReplaceDataset(trends []model.Trend) State {
	s.trends = trends
	keep := func(id string) bool { return model.IndexOf(trends, id) >= 0 }
	s.sel = s.sel.Retain(keep)
	if h := s.interaction.Hovered(); h != "" && !keep(h) {
		s.interaction = s.interaction.ClearHover()
	}
	return s
}

func (s State) isVisible(id string) bool {
	t, ok := model.FindByID(s.trends, id)
	return ok && filter.Accepts(t, s.filters)
}
