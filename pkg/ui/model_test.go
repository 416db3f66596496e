package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/trendradar/internal/datasource"
	"github.com/vanderheijden86/trendradar/pkg/app"
	"github.com/vanderheijden86/trendradar/pkg/loader"
	"github.com/vanderheijden86/trendradar/pkg/metrics"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/testutil"
	"github.com/vanderheijden86/trendradar/pkg/watcher"
)

func TestMain(m *testing.M) {
	metrics.SetEnabled(false)
	os.Exit(m.Run())
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(testutil.Fixture15(), Options{App: app.DefaultOptions(), MarkdownStyle: "notty"})
	return send(t, m, tea.WindowSizeMsg{Width: 160, Height: 48})
}

func selected(m Model) string {
	id, _ := m.State().Selection().SelectedID()
	return id
}

func hovered(m Model) string {
	id, _ := m.State().Selection().HoveredID()
	return id
}

// markerCell finds a terminal cell over a trend marker, returning the
// absolute mouse coordinates and the trend the chart hit-tests there.
func markerCell(t *testing.T, m Model) (x, y int, id string) {
	t.Helper()
	scene := m.State().Scene()
	k := m.pane.scale()
	for _, mk := range scene.Markers {
		p := scene.Viewport.ToScreen(mk.Center)
		col := int(p.X*k) / dotsPerCellX
		row := int(p.Y*k) / dotsPerCellY
		pos, ok := m.pane.CellToScreen(col, row)
		if !ok {
			continue
		}
		if hit, ok := scene.HitTest(pos, m.State().HitSlop()); ok {
			return col + m.chartX, row + m.chartY, hit.TrendID
		}
	}
	t.Fatal("no marker reachable from a cell")
	return 0, 0, ""
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if m.focused != focusChart {
		t.Errorf("focus = %v, want chart", m.focused)
	}
	if m.State().View() != model.ViewRadar {
		t.Errorf("view = %v, want radar", m.State().View())
	}
	if m.State().Method() != model.MethodTechnology {
		t.Errorf("method = %v, want technology", m.State().Method())
	}
	if m.State().HitSlop() <= 0 {
		t.Error("expected a cell-sized hit slop after layout")
	}
	if !m.detail.ListMode() {
		t.Error("detail pane should list trends when nothing is selected")
	}
}

func TestGlobalKeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, m Model)
	}{
		{"toggle view", []string{"v"}, func(t *testing.T, m Model) {
			if m.State().View() != model.ViewMatrix {
				t.Errorf("view = %v, want matrix", m.State().View())
			}
		}},
		{"toggle view twice", []string{"v", "v"}, func(t *testing.T, m Model) {
			if m.State().View() != model.ViewRadar {
				t.Errorf("view = %v, want radar", m.State().View())
			}
		}},
		{"next method", []string{"m"}, func(t *testing.T, m Model) {
			if m.State().Method() != model.MethodBusiness {
				t.Errorf("method = %v, want business", m.State().Method())
			}
		}},
		{"previous method wraps", []string{"M"}, func(t *testing.T, m Model) {
			if m.State().Method() != model.MethodTimeline {
				t.Errorf("method = %v, want timeline", m.State().Method())
			}
		}},
		{"zoom in", []string{"+"}, func(t *testing.T, m Model) {
			if got := m.State().Viewport().ZoomPercent(); got != 120 {
				t.Errorf("zoom = %d%%, want 120%%", got)
			}
		}},
		{"zoom out then reset", []string{"-", "0"}, func(t *testing.T, m Model) {
			if got := m.State().Viewport().ZoomPercent(); got != 100 {
				t.Errorf("zoom = %d%%, want 100%%", got)
			}
		}},
		{"pan left key", []string{"left"}, func(t *testing.T, m Model) {
			if got := m.State().Viewport().Pan().X; got != keyPanStep {
				t.Errorf("pan x = %v, want %v", got, keyPanStep)
			}
		}},
		{"help toggles", []string{"?"}, func(t *testing.T, m Model) {
			if !m.showHelp {
				t.Error("expected help overlay")
			}
		}},
		{"any key closes help", []string{"?", "v"}, func(t *testing.T, m Model) {
			if m.showHelp {
				t.Error("help should close")
			}
			if m.State().View() != model.ViewRadar {
				t.Error("key closing help must not act")
			}
		}},
		{"focus cycles", []string{"tab"}, func(t *testing.T, m Model) {
			if m.focused != focusDetail {
				t.Errorf("focus = %v, want detail", m.focused)
			}
		}},
		{"focus cycles back", []string{"shift+tab"}, func(t *testing.T, m Model) {
			if m.focused != focusSidebar {
				t.Errorf("focus = %v, want sidebar", m.focused)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			for _, k := range tt.keys {
				m = send(t, m, keyMsg(k))
			}
			tt.check(t, m)
		})
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := newTestModel(t)
		_, cmd := m.Update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestSidebarToggleAndClear(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyMsg("shift+tab")) // sidebar
	// rows: Radar, Matrix, Technology, ...
	m = send(t, m, keyMsg("down"), keyMsg("down"), keyMsg("enter"))

	f := m.State().Filters()
	if len(f.Categories) != 1 || f.Categories[0] != model.Technology {
		t.Fatalf("categories = %v, want [Technology]", f.Categories)
	}
	visible, total := m.State().Counts()
	if visible != 4 || total != 15 {
		t.Errorf("counts = %d/%d, want 4/15", visible, total)
	}
	if got := len(rows(m.State().Filters())); got != 24 {
		t.Errorf("rows with active filters = %d, want 24 (Clear All shown)", got)
	}

	m = send(t, m, keyMsg("enter"))
	if len(m.State().Filters().Categories) != 0 {
		t.Error("second enter should toggle Technology off")
	}

	m = send(t, m, keyMsg("enter"), keyMsg("x"))
	visible, _ = m.State().Counts()
	if visible != 15 {
		t.Errorf("visible after clear = %d, want 15", visible)
	}
}

func TestSidebarViewRow(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyMsg("shift+tab"), keyMsg("down"), keyMsg("enter"))
	if m.State().View() != model.ViewMatrix {
		t.Errorf("view = %v, want matrix", m.State().View())
	}
}

func TestSearch(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyMsg("/"))
	if !m.sidebar.Searching() {
		t.Fatal("expected search focus")
	}
	m = send(t, m, keyMsg("q"))
	if got := m.State().Filters().SearchQuery; got != "q" {
		t.Fatalf("search = %q, want %q", got, "q")
	}
	m = send(t, m, keyMsg("enter"))
	if m.sidebar.Searching() {
		t.Error("enter should leave search")
	}
	if got := m.State().Filters().SearchQuery; got != "q" {
		t.Errorf("search = %q after leaving box, want kept", got)
	}
}

func TestMouseClickSelects(t *testing.T) {
	m := newTestModel(t)
	x, y, id := markerCell(t, m)
	m = send(t, m,
		tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	if got := selected(m); got != id {
		t.Fatalf("selected = %q, want %q", got, id)
	}
	if m.detail.ListMode() {
		t.Error("detail pane should show the selected trend")
	}
	if m.State().Viewport().Dragging() {
		t.Error("press on a marker must not start a drag")
	}

	m = send(t, m, keyMsg("esc"))
	if selected(m) != "" {
		t.Error("esc should close the detail panel")
	}
}

func TestMouseHoverAndLeave(t *testing.T) {
	m := newTestModel(t)
	x, y, id := markerCell(t, m)
	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	if got := hovered(m); got != id {
		t.Fatalf("hovered = %q, want %q", got, id)
	}
	if !strings.Contains(m.renderTooltip(80), "TRL") {
		t.Error("tooltip should describe the hovered trend")
	}
	m = send(t, m, tea.MouseMsg{X: 0, Y: y, Action: tea.MouseActionMotion})
	if hovered(m) != "" {
		t.Error("leaving the chart should clear hover")
	}
}

func TestMouseWheelZooms(t *testing.T) {
	m := newTestModel(t)
	in := tea.MouseMsg{X: m.chartX + 1, Y: m.chartY + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}
	m = send(t, m, in)
	if got := m.State().Viewport().ZoomPercent(); got != 110 {
		t.Errorf("zoom after wheel up = %d%%, want 110%%", got)
	}
	in.Button = tea.MouseButtonWheelDown
	m = send(t, m, in, in)
	if got := m.State().Viewport().ZoomPercent(); got != 89 {
		t.Errorf("zoom after two wheel downs = %d%%, want 89%%", got)
	}
}

func TestMouseDragPans(t *testing.T) {
	m := newTestModel(t)
	// The top-left cell of the radar is background.
	x, y := m.chartX, m.chartY
	m = send(t, m,
		tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: x + 2, Y: y + 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: x + 2, Y: y + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft},
	)
	pan := m.State().Viewport().Pan()
	if pan.X <= 0 || pan.Y <= 0 {
		t.Errorf("pan = %+v, want positive offset", pan)
	}
	if m.State().Viewport().Dragging() {
		t.Error("release should end the drag")
	}
}

func TestKeyboardHoverAndSelect(t *testing.T) {
	m := newTestModel(t)
	first := m.State().Scene().Markers[0].TrendID
	m = send(t, m, keyMsg("n"))
	if got := hovered(m); got != first {
		t.Fatalf("hovered = %q, want first marker %q", got, first)
	}
	m = send(t, m, keyMsg("enter"))
	if got := selected(m); got != first {
		t.Errorf("selected = %q, want %q", got, first)
	}
	m = send(t, m, keyMsg("p"), keyMsg("n"))
	if got := hovered(m); got != first {
		t.Errorf("p then n should return to %q, got %q", first, got)
	}
}

func TestDetailListChoose(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, keyMsg("tab"), keyMsg("down"), keyMsg("enter"))
	want := m.State().Visible()[1].ID
	if got := selected(m); got != want {
		t.Errorf("selected = %q, want %q", got, want)
	}
}

func TestCopySelected(t *testing.T) {
	m := newTestModel(t)
	var copied string
	m.copyText = func(s string) error { copied = s; return nil }

	m = send(t, m, keyMsg("c"))
	if !m.statusIsError {
		t.Error("copy without selection should report an error")
	}

	id := m.State().Trends()[0].ID
	m.state = m.state.SelectTrend(id)
	m = send(t, m, keyMsg("c"))
	if !strings.HasPrefix(copied, "# "+m.State().Trends()[0].Name) {
		t.Errorf("copied markdown = %q", copied)
	}
	if m.statusIsError {
		t.Errorf("unexpected error status %q", m.statusMsg)
	}

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, keyMsg("c"))
	if !m.statusIsError || !strings.Contains(m.statusMsg, "no clipboard") {
		t.Errorf("status = %q, want clipboard error", m.statusMsg)
	}
}

func TestReloadOnFileChange(t *testing.T) {
	dir := t.TempDir()
	trends := testutil.Fixture15()
	path := testutil.WriteJSONFixture(t, dir, "trends.json", trends)

	src, err := datasource.Detect(path)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	m := NewModel(trends, Options{App: app.Options{Selected: trends[1].ID}, Source: src, MarkdownStyle: "notty"})
	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 48})

	if err := loader.WriteFile(path, trends[1:]); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m = send(t, m, FileChangedMsg{Event: watcher.Event{Path: path, Op: watcher.OpChanged}})

	if got := len(m.State().Trends()); got != 14 {
		t.Fatalf("trends after reload = %d, want 14", got)
	}
	if !strings.Contains(m.statusMsg, "-1 removed") {
		t.Errorf("status = %q, want diff summary", m.statusMsg)
	}
	if got := selected(m); got != trends[1].ID {
		t.Errorf("selection = %q, want kept %q", got, trends[1].ID)
	}

	if err := os.WriteFile(filepath.Join(dir, "trends.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	m = send(t, m, FileChangedMsg{Event: watcher.Event{Path: path, Op: watcher.OpChanged}})
	if !m.statusIsError {
		t.Error("broken file should report a reload error")
	}
	if got := len(m.State().Trends()); got != 14 {
		t.Errorf("failed reload must keep the dataset, got %d trends", got)
	}

	m = send(t, m, FileChangedMsg{Event: watcher.Event{Path: path, Op: watcher.OpRemoved}})
	if !m.statusIsError || !strings.Contains(m.statusMsg, "removed") {
		t.Errorf("status = %q, want removal error", m.statusMsg)
	}
}

func TestReloadEmbedded(t *testing.T) {
	m := NewModel(loader.MustDefault(), Options{Source: datasource.DataSource{Type: datasource.SourceTypeEmbedded}})
	m = send(t, m, keyMsg("r"))
	if !strings.Contains(m.statusMsg, "Embedded") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestViewRenders(t *testing.T) {
	m := NewModel(loader.MustDefault(), Options{App: app.DefaultOptions(), MarkdownStyle: "notty"})
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}
	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 48})
	out := m.View()
	for _, want := range []string{"Radar View", "Showing 15 of 15 trends", "Distribution: Technology Readiness", "Zoom: 100%", "All Trends"} {
		if !strings.Contains(out, want) {
			t.Errorf("View missing %q", want)
		}
	}

	m = send(t, m, keyMsg("v"))
	out = m.View()
	if !strings.Contains(out, "Matrix View") || strings.Contains(out, "Distribution:") {
		t.Error("matrix view should replace the distribution toolbar")
	}

	m = send(t, m, keyMsg("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help overlay not rendered")
	}
}

func TestInitWithoutWatcher(t *testing.T) {
	m := NewModel(testutil.Fixture15(), Options{})
	if m.Init() == nil {
		t.Error("Init should schedule the ready timeout")
	}
	m = send(t, m, ReadyTimeoutMsg{})
	if !m.ready {
		t.Error("ReadyTimeoutMsg should mark the model ready")
	}
}
