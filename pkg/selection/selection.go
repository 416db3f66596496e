// Package selection implements the selected/hovered trend state machine.
//
// The selected trend is the only value the charts report to their container.
// Hover is chart-local and transient.
package selection

// Phase names the four reachable states.
type Phase uint8

const (
	Idle Phase = iota
	Hovering
	Selected
	SelectedAndHovering
)

var phaseNames = [...]string{"idle", "hovering", "selected", "selected+hovering"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// State holds trend ids. An empty id means none.
type State struct {
	selected string
	hovered  string
}

// SelectedID returns the selected trend id and whether one is selected.
func (s State) SelectedID() (string, bool) { return s.selected, s.selected != "" }

// HoveredID returns the hovered trend id and whether one is hovered.
func (s State) HoveredID() (string, bool) { return s.hovered, s.hovered != "" }

// IsSelected reports whether id is the selected trend.
func (s State) IsSelected(id string) bool { return id != "" && s.selected == id }

// IsHovered reports whether id is the hovered trend.
func (s State) IsHovered(id string) bool { return id != "" && s.hovered == id }

// Phase reports which of the four states s is in.
func (s State) Phase() Phase {
	switch {
	case s.selected != "" && s.hovered != "":
		return SelectedAndHovering
	case s.selected != "":
		return Selected
	case s.hovered != "":
		return Hovering
	}
	return Idle
}

// EventKind enumerates the selection inputs.
type EventKind uint8

const (
	// Enter means the pointer entered a marker.
	Enter EventKind = iota + 1
	// Leave means the pointer left the hovered marker.
	Leave
	// Click means a marker was clicked.
	Click
	// Close is the detail panel's close action.
	Close
	// Select is a selection request from outside the chart, e.g. the trend list.
	Select
	// ClearHover drops hover without a pointer event, e.g. on a view switch.
	ClearHover
)

// Event is one input to the state machine.
type Event struct {
	Kind    EventKind
	TrendID string
}

// Apply returns the next state and whether the selected trend changed.
// A new selection replaces the old one directly, and hover never affects
// selection or the other way round.
func (s State) Apply(ev Event) (State, bool) {
	prev := s.selected
	switch ev.Kind {
	case Enter:
		s.hovered = ev.TrendID
	case Leave, ClearHover:
		s.hovered = ""
	case Click, Select:
		if ev.TrendID != "" {
			s.selected = ev.TrendID
		}
	case Close:
		s.selected = ""
	}
	return s, s.selected != prev
}

// ApplyAll feeds events in order and reports whether the selection changed
// between the first and the final state.
func (s State) ApplyAll(events ...Event) (State, bool) {
	start := s.selected
	for _, ev := range events {
		s, _ = s.Apply(ev)
	}
	return s, s.selected != start
}

// Retain drops ids that keep reports as gone, e.g. after a dataset reload.
func (s State) Retain(keep func(id string) bool) State {
	if s.selected != "" && !keep(s.selected) {
		s.selected = ""
	}
	if s.hovered != "" && !keep(s.hovered) {
		s.hovered = ""
	}
	return s
}
