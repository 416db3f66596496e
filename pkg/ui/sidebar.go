package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/trendradar/pkg/app"
	"github.com/vanderheijden86/trendradar/pkg/filter"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

type rowKind uint8

const (
	rowView rowKind = iota
	rowCategory
	rowImpact
	rowHorizon
	rowLevel
	rowClear
)

var rowGroups = [...]string{"View", "Categories", "Impact", "Time Horizon", "Readiness (TRL)", ""}

// sidebarRow is one selectable line of the sidebar.
type sidebarRow struct {
	kind  rowKind
	value int
}

// Sidebar holds the search box and the filter toggles. It never keeps its
// own copy of the filters; every change is written back to app.State as a
// complete replacement.
type Sidebar struct {
	search    textinput.Model
	searching bool
	cursor    int
	width     int
	height    int
	theme     Theme
}

func NewSidebar(theme Theme) Sidebar {
	ti := textinput.New()
	ti.Placeholder = "Search trends..."
	ti.Prompt = "/ "
	ti.CharLimit = 80
	return Sidebar{search: ti, theme: theme}
}

// SetSize updates the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.search.Width = max(width-4, 4)
}

// Searching reports whether the search box has focus.
func (s Sidebar) Searching() bool { return s.searching }

// FocusSearch moves keyboard input to the search box.
func (s *Sidebar) FocusSearch() tea.Cmd {
	s.searching = true
	return s.search.Focus()
}

// SyncSearch shows q in the search box without emitting a change.
func (s *Sidebar) SyncSearch(q string) {
	if s.search.Value() != q {
		s.search.SetValue(q)
	}
}

func rows(f model.FilterState) []sidebarRow {
	out := make([]sidebarRow, 0, 24)
	for v := range model.NumViewModes {
		out = append(out, sidebarRow{kind: rowView, value: v})
	}
	for _, c := range model.Categories() {
		out = append(out, sidebarRow{kind: rowCategory, value: int(c)})
	}
	for _, i := range model.Impacts() {
		out = append(out, sidebarRow{kind: rowImpact, value: int(i)})
	}
	for _, h := range model.TimeHorizons() {
		out = append(out, sidebarRow{kind: rowHorizon, value: int(h)})
	}
	for l := model.MinTRL; l <= model.MaxTRL; l++ {
		out = append(out, sidebarRow{kind: rowLevel, value: l})
	}
	if filter.HasActive(f) {
		out = append(out, sidebarRow{kind: rowClear})
	}
	return out
}

func (s *Sidebar) clampCursor(n int) {
	s.cursor = max(0, min(s.cursor, n-1))
}

// MoveUp moves selection up
func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// MoveDown moves selection down
func (s *Sidebar) MoveDown(st app.State) {
	if s.cursor < len(rows(st.Filters()))-1 {
		s.cursor++
	}
}

// Activate toggles the row under the cursor.
func (s *Sidebar) Activate(st app.State) app.State {
	all := rows(st.Filters())
	s.clampCursor(len(all))
	if len(all) == 0 {
		return st
	}
	r := all[s.cursor]
	f := st.Filters()
	switch r.kind {
	case rowView:
		return st.SetView(model.ViewMode(r.value))
	case rowCategory:
		return st.SetFilters(filter.ToggleCategory(f, model.Category(r.value)))
	case rowImpact:
		return st.SetFilters(filter.ToggleImpact(f, model.Impact(r.value)))
	case rowHorizon:
		return st.SetFilters(filter.ToggleTimeHorizon(f, model.TimeHorizon(r.value)))
	case rowLevel:
		return st.SetFilters(filter.ToggleReadiness(f, r.value))
	case rowClear:
		s.search.SetValue("")
		st = st.ClearFilters()
		s.clampCursor(len(rows(st.Filters())))
		return st
	}
	return st
}

// UpdateSearch feeds a key to the search box while it has focus. Every edit
// replaces the filters' search query.
func (s *Sidebar) UpdateSearch(msg tea.KeyMsg, st app.State) (app.State, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "tab":
		s.searching = false
		s.search.Blur()
		return st, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if q := s.search.Value(); q != st.Filters().SearchQuery {
		st = st.SetFilters(filter.WithSearch(st.Filters(), q))
	}
	return st, cmd
}

func (s Sidebar) rowLabel(r sidebarRow, st app.State) string {
	f := st.Filters()
	t := s.theme
	switch r.kind {
	case rowView:
		v := model.ViewMode(r.value)
		mark := "( )"
		if st.View() == v {
			mark = "(•)"
		}
		return mark + " " + v.Title()
	case rowCategory:
		c := model.Category(r.value)
		return checkbox(contains(f.Categories, c)) + " " + RenderCategoryBadge(c, t)
	case rowImpact:
		i := model.Impact(r.value)
		dot := t.Renderer.NewStyle().Foreground(t.GetImpactColor(i)).Render("●")
		return checkbox(contains(f.Impacts, i)) + " " + dot + " " + i.String()
	case rowHorizon:
		h := model.TimeHorizon(r.value)
		return checkbox(contains(f.TimeHorizons, h)) + " " + h.String()
	case rowLevel:
		return checkbox(contains(f.ReadinessLevels, r.value)) + fmt.Sprintf(" TRL %d", r.value)
	case rowClear:
		return t.ErrorText.Render("✕ Clear All")
	}
	return ""
}

func contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// View renders the sidebar content (without the panel border).
func (s Sidebar) View(st app.State, focused bool) string {
	t := s.theme
	var lines []string
	lines = append(lines, s.search.View(), "")

	all := rows(st.Filters())
	cursor := max(0, min(s.cursor, len(all)-1))
	group := -1
	for i, r := range all {
		if int(r.kind) != group {
			group = int(r.kind)
			if title := rowGroups[r.kind]; title != "" {
				if i > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, t.PrimaryBold.Render(title))
			} else {
				lines = append(lines, "")
			}
		}
		text := s.rowLabel(r, st)
		if focused && !s.searching && i == cursor {
			lines = append(lines, t.Selected.Render(text))
			continue
		}
		lines = append(lines, "  "+text)
	}

	// Keep the cursor row on screen.
	body := lines
	if s.height > 0 && len(body) > s.height {
		cursorLine := cursorLineIndex(all, cursor) + 2
		start := max(0, min(cursorLine-s.height/2, len(body)-s.height))
		body = body[start : start+s.height]
	}
	return strings.Join(body, "\n")
}

// cursorLineIndex is the rendered line of row i, counting group headers and
// the blank lines between groups.
func cursorLineIndex(all []sidebarRow, i int) int {
	line := 0
	group := -1
	for j := 0; j <= i && j < len(all); j++ {
		if int(all[j].kind) != group {
			group = int(all[j].kind)
			if j > 0 {
				line++
			}
			if rowGroups[all[j].kind] != "" {
				line++
			}
		}
		if j < i {
			line++
		}
	}
	return line
}
