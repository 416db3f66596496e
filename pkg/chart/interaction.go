package chart

import (
	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/selection"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

// PointerKind enumerates raw pointer input over a chart.
type PointerKind uint8

const (
	PointerPress PointerKind = iota + 1
	PointerRelease
	PointerMotion
	PointerLeave
	PointerWheel
)

// PointerEvent is one raw pointer input in screen space.
type PointerEvent struct {
	Kind   PointerKind
	Pos    geom.Point
	Button viewport.Button
	DeltaY float64
}

// Interaction is the per-chart pointer router. It owns the chart's viewport
// and the marker hover bookkeeping; selection changes leave it as events.
type Interaction struct {
	Viewport viewport.State

	armed   string // marker pressed and not yet released
	hovered string
}

// Hovered returns the marker id the pointer is over, if any.
func (in Interaction) Hovered() string { return in.hovered }

// WithHover records id as hovered without emitting an event, so a later
// pointer motion off it still produces a Leave.
func (in Interaction) WithHover(id string) Interaction {
	in.hovered = id
	return in
}

// ClearHover forgets the hovered marker without emitting an event.
func (in Interaction) ClearHover() Interaction {
	in.hovered = ""
	in.armed = ""
	return in
}

// Handle routes one pointer event against the markers of scene and returns
// the next interaction state plus the selection events it produced.
//
// A primary press on a marker only arms a click and never starts a drag; the
// click fires when the release lands on the same marker. Other buttons on a
// marker do nothing. A press on the background
// starts a drag. Motion pans while dragging and tracks hover otherwise.
// Leaving the chart ends any drag and clears hover.
func (in Interaction) Handle(scene Scene, ev PointerEvent, slop float64) (Interaction, []selection.Event) {
	hit := func() (Marker, bool) {
		return HitTest(scene.Markers, in.Viewport, ev.Pos, slop)
	}

	switch ev.Kind {
	case PointerPress:
		if m, ok := hit(); ok {
			in.armed = ""
			if ev.Button == viewport.ButtonPrimary {
				in.armed = m.TrendID
			}
			return in, nil
		}
		in.armed = ""
		in.Viewport = in.Viewport.Apply(viewport.Event{Kind: viewport.EventDown, Pos: ev.Pos, Button: ev.Button})
		return in, nil

	case PointerRelease:
		var events []selection.Event
		if in.armed != "" {
			if m, ok := hit(); ok && m.TrendID == in.armed {
				events = append(events, selection.Event{Kind: selection.Click, TrendID: m.TrendID})
			}
		}
		in.armed = ""
		in.Viewport = in.Viewport.EndDrag()
		return in, events

	case PointerMotion:
		if in.Viewport.Dragging() {
			in.Viewport = in.Viewport.MoveTo(ev.Pos)
			return in, nil
		}
		m, ok := hit()
		switch {
		case ok && m.TrendID != in.hovered:
			var events []selection.Event
			if in.hovered != "" {
				events = append(events, selection.Event{Kind: selection.Leave, TrendID: in.hovered})
			}
			in.hovered = m.TrendID
			return in, append(events, selection.Event{Kind: selection.Enter, TrendID: m.TrendID})
		case !ok && in.hovered != "":
			prev := in.hovered
			in.hovered = ""
			return in, []selection.Event{{Kind: selection.Leave, TrendID: prev}}
		}
		return in, nil

	case PointerLeave:
		in.Viewport = in.Viewport.EndDrag()
		in.armed = ""
		if in.hovered != "" {
			prev := in.hovered
			in.hovered = ""
			return in, []selection.Event{{Kind: selection.Leave, TrendID: prev}}
		}
		return in, nil

	case PointerWheel:
		in.Viewport = in.Viewport.Wheel(ev.DeltaY)
		return in, nil
	}
	return in, nil
}
