package viewport

import "github.com/vanderheijden86/trendradar/pkg/geom"

// EventKind enumerates the pointer input a viewport reacts to.
type EventKind uint8

const (
	EventWheel EventKind = iota + 1
	EventDown
	EventMove
	EventUp
	EventLeave
	EventZoomIn
	EventZoomOut
	EventReset
)

// Button identifies the pointer button of a Down event.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// Event is one input to the viewport.
type Event struct {
	Kind   EventKind
	Pos    geom.Point
	DeltaY float64
	Button Button
}

// Apply feeds one event into the state machine. A Down only begins a drag for
// the primary button; callers decide beforehand whether the pointer is on the
// background.
func (s State) Apply(ev Event) State {
	switch ev.Kind {
	case EventWheel:
		return s.Wheel(ev.DeltaY)
	case EventDown:
		if ev.Button != ButtonPrimary {
			return s
		}
		return s.BeginDrag(ev.Pos)
	case EventMove:
		return s.MoveTo(ev.Pos)
	case EventUp, EventLeave:
		return s.EndDrag()
	case EventZoomIn:
		return s.ZoomIn()
	case EventZoomOut:
		return s.ZoomOut()
	case EventReset:
		return s.Reset()
	}
	return s
}
