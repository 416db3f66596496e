package selection

import "testing"

func TestTransitions(t *testing.T) {
	tests := []struct {
		name        string
		events      []Event
		wantPhase   Phase
		wantSel     string
		wantHover   string
		wantChanged bool
	}{
		{"idle", nil, Idle, "", "", false},
		{"hover", []Event{{Kind: Enter, TrendID: "c"}}, Hovering, "", "c", false},
		{"hover then leave", []Event{{Kind: Enter, TrendID: "c"}, {Kind: Leave}}, Idle, "", "", false},
		{"click", []Event{{Kind: Click, TrendID: "a"}}, Selected, "a", "", true},
		{"click then close", []Event{{Kind: Click, TrendID: "a"}, {Kind: Close}}, Idle, "", "", false},
		{"selection replaced", []Event{{Kind: Click, TrendID: "a"}, {Kind: Click, TrendID: "b"}}, Selected, "b", "", true},
		{"select from list", []Event{{Kind: Select, TrendID: "d"}}, Selected, "d", "", true},
		{"hover other while selected", []Event{{Kind: Click, TrendID: "b"}, {Kind: Enter, TrendID: "c"}}, SelectedAndHovering, "b", "c", true},
		{"hover same as selected", []Event{{Kind: Click, TrendID: "b"}, {Kind: Enter, TrendID: "b"}}, SelectedAndHovering, "b", "b", true},
		{"leave keeps selection", []Event{{Kind: Click, TrendID: "b"}, {Kind: Enter, TrendID: "c"}, {Kind: Leave}}, Selected, "b", "", true},
		{"close keeps hover", []Event{{Kind: Enter, TrendID: "c"}, {Kind: Click, TrendID: "c"}, {Kind: Close}}, Hovering, "", "c", false},
		{"clear hover", []Event{{Kind: Click, TrendID: "a"}, {Kind: Enter, TrendID: "c"}, {Kind: ClearHover}}, Selected, "a", "", true},
		{"click without id ignored", []Event{{Kind: Click}}, Idle, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, changed := State{}.ApplyAll(tt.events...)
			if s.Phase() != tt.wantPhase {
				t.Errorf("phase = %v, want %v", s.Phase(), tt.wantPhase)
			}
			if id, _ := s.SelectedID(); id != tt.wantSel {
				t.Errorf("selected = %q, want %q", id, tt.wantSel)
			}
			if id, _ := s.HoveredID(); id != tt.wantHover {
				t.Errorf("hovered = %q, want %q", id, tt.wantHover)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestSelectionExclusivity(t *testing.T) {
	s, _ := State{}.Apply(Event{Kind: Click, TrendID: "A"})
	s, changed := s.Apply(Event{Kind: Click, TrendID: "B"})
	if !changed {
		t.Error("replacing A with B should report a change")
	}
	if !s.IsSelected("B") || s.IsSelected("A") {
		t.Errorf("expected only B selected, got %+v", s)
	}
}

func TestHoverDoesNotReportChange(t *testing.T) {
	s, _ := State{}.Apply(Event{Kind: Click, TrendID: "B"})
	s, changed := s.Apply(Event{Kind: Enter, TrendID: "C"})
	if changed {
		t.Error("hover must not signal a selection change")
	}
	if !s.IsSelected("B") || !s.IsHovered("C") {
		t.Errorf("expected B selected and C hovered, got %+v", s)
	}
}

func TestReselectSameIsNotAChange(t *testing.T) {
	s, _ := State{}.Apply(Event{Kind: Click, TrendID: "A"})
	if _, changed := s.Apply(Event{Kind: Select, TrendID: "A"}); changed {
		t.Error("selecting the selected trend again is not a change")
	}
}

func TestRetain(t *testing.T) {
	s, _ := State{}.ApplyAll(Event{Kind: Click, TrendID: "a"}, Event{Kind: Enter, TrendID: "b"})
	s = s.Retain(func(id string) bool { return id == "a" })
	if !s.IsSelected("a") || s.Phase() != Selected {
		t.Errorf("Retain dropped too much: %+v", s)
	}
	s = s.Retain(func(string) bool { return false })
	if s.Phase() != Idle {
		t.Errorf("Retain kept a missing id: %+v", s)
	}
}

func TestPhaseString(t *testing.T) {
	if SelectedAndHovering.String() != "selected+hovering" || Phase(9).String() != "unknown" {
		t.Error("unexpected phase names")
	}
}
