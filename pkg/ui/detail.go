package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/trendradar/pkg/app"
	"github.com/vanderheijden86/trendradar/pkg/debug"
	"github.com/vanderheijden86/trendradar/pkg/export"
	"github.com/vanderheijden86/trendradar/pkg/model"
)

// MarkdownRenderer renders trend markdown for the terminal.
type MarkdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a glamour renderer. style is a glamour
// standard style name ("dark", "light", "notty") or "auto".
func NewMarkdownRenderer(style string, width int) *MarkdownRenderer {
	r := &MarkdownRenderer{style: style}
	r.SetWidth(width)
	return r
}

// SetWidth rebuilds the renderer for a new wrap width.
func (r *MarkdownRenderer) SetWidth(width int) {
	width = max(width, 20)
	if r.renderer != nil && width == r.width {
		return
	}
	r.width = width
	styleOpt := glamour.WithStandardStyle(r.style)
	if r.style == "" || r.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		debug.Log("ui: glamour renderer: %v", err)
		r.renderer = nil
		return
	}
	r.renderer = tr
}

// Render returns the terminal rendering of md, or md itself if rendering
// fails.
func (r *MarkdownRenderer) Render(md string) string {
	if r.renderer == nil {
		return md
	}
	out, err := r.renderer.Render(md)
	if err != nil {
		debug.Log("ui: glamour render: %v", err)
		return md
	}
	return strings.TrimRight(out, "\n")
}

// DetailPane shows the selected trend, or the list of visible trends when
// nothing is selected. Choosing a list entry selects it.
type DetailPane struct {
	vp       viewport.Model
	md       *MarkdownRenderer
	theme    Theme
	cursor   int
	width    int
	height   int
	shownID  string
	listMode bool
}

func NewDetailPane(style string, theme Theme) DetailPane {
	return DetailPane{
		vp:    viewport.New(40, 10),
		md:    NewMarkdownRenderer(style, 38),
		theme: theme,
	}
}

// SetSize updates the pane dimensions (content area, without border).
func (d *DetailPane) SetSize(width, height int) {
	d.width = max(width, 10)
	d.height = max(height, 3)
	d.vp.Width = d.width
	d.vp.Height = d.height
	d.md.SetWidth(d.width - 2)
	d.shownID = ""
}

// Cursor returns the list cursor.
func (d DetailPane) Cursor() int { return d.cursor }

// Refresh rebuilds the pane content from st. The scroll position is kept
// while the same trend stays selected.
func (d *DetailPane) Refresh(st app.State) {
	if t, ok := st.SelectedTrend(); ok {
		d.listMode = false
		if d.shownID != t.ID {
			d.vp.SetContent(d.md.Render(export.TrendMarkdown(t)))
			d.vp.GotoTop()
			d.shownID = t.ID
		}
		return
	}
	d.listMode = true
	d.shownID = ""
	visible := st.Visible()
	d.cursor = max(0, min(d.cursor, len(visible)-1))
	d.vp.SetContent(d.renderList(visible))
	d.ensureCursorVisible()
}

func (d *DetailPane) renderList(trends []model.Trend) string {
	t := d.theme
	if len(trends) == 0 {
		return t.MutedText.Render("No trends match the current filters.")
	}
	var sb strings.Builder
	sb.WriteString(t.PrimaryBold.Render("All Trends"))
	sb.WriteString("\n")
	sb.WriteString(t.MutedText.Render(fmt.Sprintf("%d trends. Enter selects.", len(trends))))
	sb.WriteString("\n\n")
	nameWidth := max(d.width-4, 8)
	for i, tr := range trends {
		name := padRight(truncate(tr.Name, nameWidth), nameWidth)
		meta := fmt.Sprintf("%s  TRL %d/%d  BRL %d/%d  %s",
			RenderImpactBadge(tr.Impact, t), tr.ReadinessLevel, model.MaxTRL,
			tr.BusinessReadiness, model.MaxBRL, tr.TimeHorizon)
		if i == d.cursor {
			sb.WriteString(t.Selected.Render(name))
		} else {
			sb.WriteString("  " + t.Base.Render(name))
		}
		sb.WriteString("\n  " + RenderCategoryBadge(tr.Category, t) + "\n  " + meta + "\n\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Each list entry takes four lines plus the three-line heading.
const (
	listHeaderLines = 3
	listEntryLines  = 4
)

func (d *DetailPane) ensureCursorVisible() {
	top := listHeaderLines + d.cursor*listEntryLines
	switch {
	case top < d.vp.YOffset:
		d.vp.SetYOffset(top)
	case top+listEntryLines > d.vp.YOffset+d.vp.Height:
		d.vp.SetYOffset(top + listEntryLines - d.vp.Height)
	}
}

// MoveUp moves the list cursor up
func (d *DetailPane) MoveUp() {
	if d.cursor > 0 {
		d.cursor--
	}
}

// MoveDown moves the list cursor down
func (d *DetailPane) MoveDown(n int) {
	if d.cursor < n-1 {
		d.cursor++
	}
}

// Choose selects the list entry under the cursor.
func (d *DetailPane) Choose(st app.State) app.State {
	visible := st.Visible()
	if !d.listMode || len(visible) == 0 {
		return st
	}
	return st.SelectTrend(visible[max(0, min(d.cursor, len(visible)-1))].ID)
}

// ListMode reports whether the pane shows the list.
func (d DetailPane) ListMode() bool { return d.listMode }

// Update scrolls the detail view.
func (d *DetailPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return cmd
}

func (d DetailPane) View() string {
	return d.vp.View()
}
