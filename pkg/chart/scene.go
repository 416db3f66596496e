// Package chart turns the current view state into a Scene: an ordered list of
// draw commands in chart space, the viewport transform to apply to them, and
// the marker hit areas used to route pointer input.
//
// Building a scene is a pure function of its input. Renderers (SVG, PNG and
// the terminal canvas) only ever consume Scenes.
package chart

import (
	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/projection"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

// Theme colors for non-data elements.
const (
	BackgroundColor = "#0b1120"
	GridColor       = "#94a3b8"
	MutedColor      = "#94a3b8"
	ForegroundColor = "#e2e8f0"
)

// Op is the primitive a Command draws.
type Op uint8

const (
	OpCircle Op = iota
	OpLine
	OpRect
	OpText
)

// Role tags what a command represents, so renderers can skip or restyle
// classes of elements (the terminal canvas has no room for grid labels).
type Role uint8

const (
	RoleBackground Role = iota
	RoleGrid
	RoleAxis
	RoleTickLabel
	RoleRingLabel
	RoleQuadrantLabel
	RoleAxisTitle
	RoleGlow
	RoleSelectionRing
	RoleMarker
)

var roleNames = [...]string{
	"background", "grid", "axis", "tick-label", "ring-label",
	"quadrant-label", "axis-title", "glow", "selection-ring", "marker",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Anchor is the horizontal text alignment.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Style is the paint of one command. Empty colors mean "none" and zero
// opacities mean fully opaque.
type Style struct {
	Fill          string
	FillOpacity   float64
	Stroke        string
	StrokeOpacity float64
	StrokeWidth   float64
	FontSize      float64
	Bold          bool
	// Brightness multiplies the fill color; 0 and 1 both mean unchanged.
	Brightness float64
}

// FillAlpha returns the effective fill opacity.
func (s Style) FillAlpha() float64 {
	if s.FillOpacity == 0 {
		return 1
	}
	return s.FillOpacity
}

// StrokeAlpha returns the effective stroke opacity.
func (s Style) StrokeAlpha() float64 {
	if s.StrokeOpacity == 0 {
		return 1
	}
	return s.StrokeOpacity
}

// FillColor returns the fill with Brightness applied.
func (s Style) FillColor() string {
	if s.Fill == "" {
		return ""
	}
	return projection.Brighten(s.Fill, s.Brightness)
}

// Command is one draw primitive in chart space.
//
//	OpCircle: center A, radius R
//	OpLine:   from A to B
//	OpRect:   top-left A, size B
//	OpText:   baseline point A, rotated by Rotate degrees about A
type Command struct {
	Op      Op
	Role    Role
	A, B    geom.Point
	R       float64
	Text    string
	Anchor  Anchor
	Rotate  float64
	Style   Style
	TrendID string
}

// Marker is the interactive part of one trend. Center and radii are in chart
// space.
type Marker struct {
	TrendID   string
	Name      string
	Center    geom.Point
	Radius    float64
	HitRadius float64
	Color     string
	Selected  bool
	Hovered   bool
}

// Scene is the complete render of one chart.
type Scene struct {
	View     model.ViewMode
	Method   model.Method
	Size     float64
	Viewport viewport.State
	Commands []Command
	Markers  []Marker
}

// Marker returns the marker of the given trend.
func (s Scene) Marker(id string) (Marker, bool) {
	for _, m := range s.Markers {
		if m.TrendID == id {
			return m, true
		}
	}
	return Marker{}, false
}

// ByRole returns the commands with the given role, in draw order.
func (s Scene) ByRole(r Role) []Command {
	var out []Command
	for _, c := range s.Commands {
		if c.Role == r {
			out = append(out, c)
		}
	}
	return out
}

// builder accumulates commands for a scene of side size.
type builder struct {
	scene Scene
	k     float64 // scale relative to the nominal 600 side
}

func newBuilder(view model.ViewMode, size float64, vp viewport.State) *builder {
	return &builder{
		scene: Scene{View: view, Size: size, Viewport: vp},
		k:     size / 600,
	}
}

func (b *builder) add(c Command) {
	b.scene.Commands = append(b.scene.Commands, c)
}

func (b *builder) line(role Role, from, to geom.Point, style Style) {
	b.add(Command{Op: OpLine, Role: role, A: from, B: to, Style: style})
}

func (b *builder) text(role Role, at geom.Point, s string, anchor Anchor, style Style) {
	b.add(Command{Op: OpText, Role: role, A: at, Text: s, Anchor: anchor, Style: style})
}

// emphasis appends the glow and marker circles for one trend and records its
// marker. Selected and hovered treatments are independent so both can show at
// once on different markers.
func (b *builder) emphasis(m Marker, selectedRing func(m Marker) Command, baseOpacity float64) {
	if m.Selected {
		b.add(selectedRing(m))
	} else if m.Hovered {
		b.add(Command{
			Op: OpCircle, Role: RoleGlow, A: m.Center, R: m.Radius + 2, TrendID: m.TrendID,
			Style: Style{Fill: m.Color, FillOpacity: 0.2},
		})
	}

	style := Style{Fill: m.Color, FillOpacity: baseOpacity, Brightness: 1}
	switch {
	case m.Selected:
		style.Stroke, style.StrokeWidth, style.Brightness = "#ffffff", 2, 1.2
	case m.Hovered:
		style.Stroke, style.StrokeWidth, style.Brightness = "#ffffff", 1, 1.1
	}
	b.add(Command{Op: OpCircle, Role: RoleMarker, A: m.Center, R: m.Radius, TrendID: m.TrendID, Style: style})
	b.scene.Markers = append(b.scene.Markers, m)
}
