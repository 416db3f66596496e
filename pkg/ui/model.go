package ui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/trendradar/internal/datasource"
	"github.com/vanderheijden86/trendradar/pkg/app"
	"github.com/vanderheijden86/trendradar/pkg/chart"
	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/export"
	"github.com/vanderheijden86/trendradar/pkg/metrics"
	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
	"github.com/vanderheijden86/trendradar/pkg/watcher"
)

// FileChangedMsg is sent when the dataset file changes on disk
type FileChangedMsg struct {
	Event watcher.Event
}

// ReadyTimeoutMsg is sent after a short delay to ensure the UI becomes ready
// even if the terminal doesn't send WindowSizeMsg promptly.
type ReadyTimeoutMsg struct{}

// ReadyTimeoutCmd returns a command that sends ReadyTimeoutMsg after 100ms.
func ReadyTimeoutCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ReadyTimeoutMsg{}
	})
}

// WatchFileCmd returns a command that waits for the next file event and
// sends FileChangedMsg. It returns nil once the watcher is stopped.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return nil
		}
		return FileChangedMsg{Event: ev}
	}
}

type focus int

const (
	focusSidebar focus = iota
	focusChart
	focusDetail
	numFocus
)

const (
	headerHeight   = 2
	footerHeight   = 1
	tooltipHeight  = 2
	minDetailWidth = 30
	// DefaultSidebarWidth is the sidebar's outer width in cells.
	DefaultSidebarWidth = 30
	// keyPanStep is the screen-unit pan of one arrow key press.
	keyPanStep = 20
)

// Options configure NewModel.
type Options struct {
	App     app.Options
	Source  datasource.DataSource
	Watcher *watcher.Watcher
	// MarkdownStyle is the glamour style of the detail pane.
	MarkdownStyle string
	SidebarWidth  int
}

// Model is the dashboard TUI. It owns the single app.State and replaces it
// on every message.
type Model struct {
	state   app.State
	source  datasource.DataSource
	watcher *watcher.Watcher

	theme   Theme
	sidebar Sidebar
	detail  DetailPane
	focused focus

	width, height int
	sidebarWidth  int
	ready         bool
	showHelp      bool

	// chart pane placement in terminal cells
	pane           chartPane
	chartX, chartY int
	detailX        int
	pointerInside  bool

	statusMsg     string
	statusIsError bool

	copyText func(string) error
}

// NewModel creates the dashboard over an already loaded dataset.
func NewModel(trends []model.Trend, opts Options) Model {
	theme := DefaultTheme(lipgloss.DefaultRenderer())
	sw := opts.SidebarWidth
	if sw <= 0 {
		sw = DefaultSidebarWidth
	}
	m := Model{
		state:        app.New(trends, opts.App),
		source:       opts.Source,
		watcher:      opts.Watcher,
		theme:        theme,
		sidebar:      NewSidebar(theme),
		detail:       NewDetailPane(opts.MarkdownStyle, theme),
		focused:      focusChart,
		sidebarWidth: sw,
		copyText:     clipboard.WriteAll,
	}
	m.sidebar.SyncSearch(m.state.Filters().SearchQuery)
	m.layout(100, 30)
	return m
}

// State returns the current dashboard state.
func (m Model) State() app.State { return m.state }

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ReadyTimeoutCmd()}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// layout splits the terminal into sidebar, chart and detail panels.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height
	bodyH := max(height-headerHeight-footerHeight, 8)

	sw := min(m.sidebarWidth, width/3)
	dw := max(minDetailWidth, (width-sw)*2/5)
	cw := max(width-sw-dw, 12)

	m.sidebar.SetSize(sw-2, bodyH-2)
	m.detail.SetSize(dw-2, bodyH-2)

	m.chartX = sw + 1
	m.chartY = headerHeight + 1
	m.detailX = sw + cw
	m.pane = newChartPane(cw-2, bodyH-2-tooltipHeight, m.state.Size())
	m.state = m.state.SetHitSlop(m.pane.CellSpan())
	m.detail.Refresh(m.state)
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		m.ready = true

	case ReadyTimeoutMsg:
		m.ready = true

	case FileChangedMsg:
		m = m.reload(msg.Event)
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}

	case tea.MouseMsg:
		m = m.handleMouse(msg)

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	m.detail.Refresh(m.state)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.sidebar.Searching() {
		var cmd tea.Cmd
		m.state, cmd = m.sidebar.UpdateSearch(msg, m.state)
		return m, cmd
	}
	m.statusMsg = ""

	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "tab":
		m.focused = (m.focused + 1) % numFocus
		return m, nil
	case "shift+tab":
		m.focused = (m.focused + numFocus - 1) % numFocus
		return m, nil
	case "/":
		m.focused = focusSidebar
		return m, m.sidebar.FocusSearch()
	case "v":
		m.state = m.state.ToggleView()
		return m, nil
	case "m":
		m.state = m.state.CycleMethod(1)
		return m, nil
	case "M":
		m.state = m.state.CycleMethod(-1)
		return m, nil
	case "+", "=":
		m.state = m.state.ZoomIn()
		return m, nil
	case "-", "_":
		m.state = m.state.ZoomOut()
		return m, nil
	case "0":
		m.state = m.state.ResetView()
		return m, nil
	case "x":
		m.sidebar.SyncSearch("")
		m.state = m.state.ClearFilters()
		return m, nil
	case "esc":
		m.state = m.state.CloseDetail()
		return m, nil
	case "c":
		m.copySelected()
		return m, nil
	case "r":
		m = m.reload(watcher.Event{Path: m.source.Path, Op: watcher.OpChanged, At: time.Now()})
		return m, nil
	}

	switch m.focused {
	case focusSidebar:
		switch key {
		case "up", "k":
			m.sidebar.MoveUp()
		case "down", "j":
			m.sidebar.MoveDown(m.state)
		case "enter", " ":
			m.state = m.sidebar.Activate(m.state)
		}
	case focusChart:
		switch key {
		case "left", "h":
			m.state = m.state.PanBy(keyPanStep, 0)
		case "right", "l":
			m.state = m.state.PanBy(-keyPanStep, 0)
		case "up", "k":
			m.state = m.state.PanBy(0, keyPanStep)
		case "down", "j":
			m.state = m.state.PanBy(0, -keyPanStep)
		case "n":
			m.state = m.state.SetHover(m.nextMarker(1))
		case "p":
			m.state = m.state.SetHover(m.nextMarker(-1))
		case "enter", " ":
			if id, ok := m.state.Selection().HoveredID(); ok {
				m.state = m.state.SelectTrend(id)
			}
		}
	case focusDetail:
		if !m.detail.ListMode() {
			return m, m.detail.Update(msg)
		}
		switch key {
		case "up", "k":
			m.detail.MoveUp()
		case "down", "j":
			m.detail.MoveDown(len(m.state.Visible()))
		case "enter", " ":
			m.state = m.detail.Choose(m.state)
		default:
			return m, m.detail.Update(msg)
		}
	}
	return m, nil
}

// nextMarker returns the id of the marker step places after the hovered one,
// in draw order, wrapping around.
func (m Model) nextMarker(step int) string {
	markers := m.state.Scene().Markers
	if len(markers) == 0 {
		return ""
	}
	i := -1
	if id, ok := m.state.Selection().HoveredID(); ok {
		for j, mk := range markers {
			if mk.TrendID == id {
				i = j
				break
			}
		}
	}
	n := len(markers)
	if i < 0 {
		if step < 0 {
			return markers[n-1].TrendID
		}
		return markers[0].TrendID
	}
	return markers[((i+step)%n+n)%n].TrendID
}

// handleMouse maps terminal mouse input onto chart pointer events. Cells
// outside the chart square end any drag and hover.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	pos, inside := m.pane.CellToScreen(msg.X-m.chartX, msg.Y-m.chartY)
	if !inside {
		if m.pointerInside {
			m.state = m.state.Pointer(chart.PointerEvent{Kind: chart.PointerLeave})
			m.pointerInside = false
		}
		switch {
		case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
			if msg.X >= m.detailX {
				m.detail.Update(msg)
			}
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			switch {
			case msg.X < m.chartX-1:
				m.focused = focusSidebar
			case msg.X >= m.detailX:
				m.focused = focusDetail
			}
		}
		return m
	}
	m.pointerInside = true

	ev := chart.PointerEvent{Pos: pos}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		ev.Kind, ev.DeltaY = chart.PointerWheel, -1
	case msg.Button == tea.MouseButtonWheelDown:
		ev.Kind, ev.DeltaY = chart.PointerWheel, 1
	case msg.Action == tea.MouseActionPress:
		m.focused = focusChart
		ev.Kind, ev.Button = chart.PointerPress, mouseButton(msg.Button)
	case msg.Action == tea.MouseActionRelease:
		ev.Kind = chart.PointerRelease
	case msg.Action == tea.MouseActionMotion:
		ev.Kind = chart.PointerMotion
	default:
		return m
	}
	m.state = m.state.Pointer(ev)
	return m
}

func mouseButton(b tea.MouseButton) viewport.Button {
	switch b {
	case tea.MouseButtonMiddle:
		return viewport.ButtonMiddle
	case tea.MouseButtonRight:
		return viewport.ButtonSecondary
	default:
		return viewport.ButtonPrimary
	}
}

// reload re-reads the dataset after a file event. Selection and hover
// survive for trends that still exist.
func (m Model) reload(ev watcher.Event) Model {
	if !m.source.Watchable() {
		m.setStatus("Embedded dataset cannot be reloaded", false)
		return m
	}
	if ev.Op == watcher.OpRemoved {
		m.setStatus(fmt.Sprintf("Dataset removed: %s", ev.Path), true)
		return m
	}
	start := time.Now()
	src, err := datasource.Detect(m.source.Path)
	if err != nil {
		m.setStatus(fmt.Sprintf("Reload error: %v", err), true)
		return m
	}
	trends, err := datasource.LoadFromSource(src)
	if err != nil {
		m.setStatus(fmt.Sprintf("Reload error: %v", err), true)
		return m
	}
	diff := datasource.Diff(m.state.Trends(), trends)
	src.TrendCount = len(trends)
	m.source = src
	m.state = m.state.ReplaceDataset(trends)
	debug.LogTiming("reload", time.Since(start))
	m.setStatus("Reloaded: "+diff.Summary(), false)
	return m
}

func (m *Model) copySelected() {
	t, ok := m.state.SelectedTrend()
	if !ok {
		m.setStatus("Select a trend to copy", true)
		return
	}
	if err := m.copyText(export.TrendMarkdown(t)); err != nil {
		m.setStatus(fmt.Sprintf("Clipboard error: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %q to clipboard", t.Name), false)
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderHelp())
	}

	t := m.theme
	panel := func(f focus) lipgloss.Style {
		if m.focused == f {
			return t.Focused
		}
		return t.Panel
	}

	chartBody := lipgloss.JoinVertical(lipgloss.Left,
		m.pane.Render(m.state.Scene(), t),
		m.renderTooltip(m.pane.cols),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(focusSidebar).Width(m.sidebar.width).Height(m.sidebar.height).
			Render(m.sidebar.View(m.state, m.focused == focusSidebar)),
		panel(focusChart).Width(m.pane.cols).Height(m.pane.rows+tooltipHeight).Render(chartBody),
		panel(focusDetail).Width(m.detail.width).Height(m.detail.height).Render(m.detail.View()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}
