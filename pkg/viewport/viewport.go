// Package viewport implements the zoom/pan transform shared by both charts.
//
// State is an immutable value; every transition returns a new State. Zoom is
// always inside [MinZoom, MaxZoom] and is anchored at the chart origin: the
// scene is drawn as translate(pan) then scale(zoom).
package viewport

import (
	"fmt"
	"math"

	"github.com/vanderheijden86/trendradar/pkg/geom"
)

// Zoom limits and step factors.
const (
	MinZoom = 0.5
	MaxZoom = 3.0

	WheelInFactor   = 1.1
	WheelOutFactor  = 0.9
	ButtonInFactor  = 1.2
	ButtonOutFactor = 0.8
)

// State is the viewport of one chart. The zero value is the reset state.
type State struct {
	zoom       float64 // 0 means 1
	pan        geom.Point
	dragging   bool
	anchor     geom.Point
	panAtStart geom.Point
}

// New returns the reset state: zoom 1, pan (0, 0), not dragging.
func New() State {
	return State{zoom: 1}
}

// At returns a non-dragging state with the given zoom (clamped) and pan.
func At(zoom float64, pan geom.Point) State {
	if !pan.Finite() {
		pan = geom.Point{}
	}
	return State{zoom: clampZoom(zoom), pan: pan}
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// Zoom returns the current scale factor.
func (s State) Zoom() float64 {
	if s.zoom == 0 {
		return 1
	}
	return s.zoom
}

// Pan returns the current translation in screen units.
func (s State) Pan() geom.Point { return s.pan }

// Dragging reports whether a background drag is in progress.
func (s State) Dragging() bool { return s.dragging }

// DragAnchor returns the pointer position where the current drag began.
func (s State) DragAnchor() geom.Point { return s.anchor }

// PanAtDragStart returns the pan frozen when the current drag began.
func (s State) PanAtDragStart() geom.Point { return s.panAtStart }

// ZoomPercent is the zoom rounded to a whole percentage, as shown in toolbars.
func (s State) ZoomPercent() int {
	return int(math.Round(s.Zoom() * 100))
}

func (s State) String() string {
	return fmt.Sprintf("zoom=%d%% pan=(%.0f,%.0f)", s.ZoomPercent(), s.pan.X, s.pan.Y)
}

func (s State) scaled(factor float64) State {
	s.zoom = clampZoom(s.Zoom() * factor)
	return s
}

// Wheel applies one wheel notch. A positive deltaY (scrolling down) zooms out,
// anything else zooms in.
func (s State) Wheel(deltaY float64) State {
	if deltaY > 0 {
		return s.scaled(WheelOutFactor)
	}
	return s.scaled(WheelInFactor)
}

// ZoomIn applies the toolbar zoom-in step.
func (s State) ZoomIn() State { return s.scaled(ButtonInFactor) }

// ZoomOut applies the toolbar zoom-out step.
func (s State) ZoomOut() State { return s.scaled(ButtonOutFactor) }

// BeginDrag starts a background drag at pointer, freezing the current pan.
func (s State) BeginDrag(pointer geom.Point) State {
	s.dragging = true
	s.anchor = pointer
	s.panAtStart = s.pan
	return s
}

// MoveTo updates the pan of an active drag. The pan is a direct translation
// from the drag start, so repeated moves never accumulate rounding drift.
// Without an active drag the state is unchanged.
func (s State) MoveTo(pointer geom.Point) State {
	if !s.dragging {
		return s
	}
	s.pan = s.panAtStart.Add(pointer.Sub(s.anchor))
	return s
}

// EndDrag ends any drag. It is safe to call when not dragging.
func (s State) EndDrag() State {
	s.dragging = false
	return s
}

// Reset returns zoom 1 and pan (0, 0) exactly.
func (s State) Reset() State {
	return New()
}

// ToScreen maps a chart-space point to screen space: pan + zoom*p.
func (s State) ToScreen(p geom.Point) geom.Point {
	return s.pan.Add(p.Scale(s.Zoom()))
}

// ToChart maps a screen-space point back to chart space: (p - pan) / zoom.
func (s State) ToChart(p geom.Point) geom.Point {
	return p.Sub(s.pan).Scale(1 / s.Zoom())
}

// Transform is the SVG transform attribute for the state.
func (s State) Transform() string {
	return fmt.Sprintf("translate(%g, %g) scale(%g)", s.pan.X, s.pan.Y, s.Zoom())
}
