package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

const instructions = "Click a trend to view details  •  Drag to pan  •  Scroll to zoom"

// renderHeader returns the title line and the view toolbar.
func (m Model) renderHeader() string {
	t := m.theme
	visible, total := m.state.Counts()
	view := m.state.View()

	title := t.Header.Render(view.Title())
	counts := t.MutedText.Render(fmt.Sprintf("Showing %d of %d trends", visible, total))
	legend := make([]string, 0, model.NumCategories-1)
	for _, c := range model.Categories() {
		legend = append(legend, RenderCategoryBadge(c, t))
	}
	line1 := title + "  " + counts + "  " + strings.Join(legend, "  ")

	zoom := zoomLabel(m.state.Viewport())
	var line2 string
	if view == model.ViewRadar {
		method := m.state.Method()
		line2 = t.PrimaryBold.Render("Distribution: "+method.Label()) + " " +
			t.MutedText.Render("("+method.Description()+")") + "  " + zoom +
			t.MutedText.Render("  [m] method  [0] reset")
	} else {
		sizes := make([]string, 0, model.NumImpacts-1)
		for _, i := range model.Impacts() {
			sizes = append(sizes, t.Renderer.NewStyle().Foreground(t.GetImpactColor(i)).Render("●")+" "+i.String())
		}
		line2 = zoom + t.MutedText.Render("  [+] zoom in  [-] zoom out  [0] reset  ") + strings.Join(sizes, " ")
	}
	return truncateLine(line1, m.width) + "\n" + truncateLine(line2, m.width)
}

// renderTooltip describes the hovered trend in two lines under the chart.
func (m Model) renderTooltip(width int) string {
	t := m.theme
	if tr, ok := m.state.HoveredTrend(); ok {
		head := t.PrimaryBold.Render(truncate(tr.Name, max(width/2, 8))) + "  " +
			RenderCategoryBadge(tr.Category, t) + "  " + RenderImpactBadge(tr.Impact, t) + "  " +
			tr.TimeHorizon.String() + "  " +
			RenderLevel("TRL", tr.ReadinessLevel, model.MaxTRL, t) + "  " +
			RenderLevel("BRL", tr.BusinessReadiness, model.MaxBRL, t)
		return head + "\n" + t.MutedText.Render(truncate(tr.Description, width))
	}
	if _, ok := m.state.SelectedTrend(); ok {
		return t.MutedText.Render("Esc closes the detail panel") + "\n"
	}
	return t.MutedText.Render(truncate(instructions, width)) + "\n"
}

func (m Model) renderFooter() string {
	t := m.theme
	if m.statusMsg != "" {
		if m.statusIsError {
			return t.ErrorText.Render(truncate(m.statusMsg, m.width))
		}
		return t.SecondaryText.Render(truncate(m.statusMsg, m.width))
	}
	keys := "tab focus  / search  v view  m method  +/- zoom  0 reset  c copy  ? help  q quit"
	return t.MutedText.Render(truncate(keys, m.width))
}

func (m Model) renderHelp() string {
	t := m.theme
	rows := [][2]string{
		{"tab / shift+tab", "Cycle focus: sidebar, chart, detail"},
		{"/", "Search trends"},
		{"v", "Toggle radar / matrix view"},
		{"m / M", "Next / previous distribution method"},
		{"+ / -", "Zoom in / out"},
		{"0", "Reset zoom and pan"},
		{"arrows", "Pan (chart), move (sidebar, detail)"},
		{"n / p", "Hover next / previous trend"},
		{"enter / space", "Toggle filter or select trend"},
		{"x", "Clear all filters"},
		{"esc", "Close detail panel"},
		{"c", "Copy selected trend as markdown"},
		{"q / ctrl+c", "Quit"},
	}
	var sb strings.Builder
	sb.WriteString(t.PrimaryBold.Render("Keyboard Shortcuts"))
	sb.WriteString("\n\n")
	for _, r := range rows {
		sb.WriteString(t.PrimaryBold.Render(padRight(r[0], 16)) + " " + r[1] + "\n")
	}
	sb.WriteString("\n" + t.MutedText.Render("Press any key to close"))
	return t.Focused.Padding(1, 2).Render(sb.String())
}

// truncateLine cuts a styled line to width cells.
func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// zoomLabel is the toolbar zoom readout.
func zoomLabel(vp viewport.State) string {
	return fmt.Sprintf("Zoom: %d%%", vp.ZoomPercent())
}
