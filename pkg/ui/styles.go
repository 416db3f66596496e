package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/trendradar/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
	SpaceLG = 4
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0B1120"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#1E293B"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#334155"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E2E8F0"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#94A3B8"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#10B981"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#F59E0B"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#EF4444"}

	// Badge text color (white on colored background)
	ColorBadgeText = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// RenderCategoryBadge returns a colored square followed by the category name.
func RenderCategoryBadge(c model.Category, t Theme) string {
	sq := t.Renderer.NewStyle().Foreground(t.GetCategoryColor(c)).Render("■")
	return sq + " " + c.String()
}

// RenderImpactBadge returns the impact name on its badge color. Unknown
// impacts render as a muted "?".
func RenderImpactBadge(i model.Impact, t Theme) string {
	label := i.String()
	if !i.Valid() {
		label = "?"
	}
	return t.Renderer.NewStyle().
		Foreground(ColorBadgeText).
		Background(t.GetImpactColor(i)).
		Bold(true).
		Padding(0, 1).
		Render(label)
}

// RenderMiniBar renders a mini horizontal bar for a value between 0 and 1
func RenderMiniBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	value = max(0, min(1, value))

	filled := min(int(value*float64(width)), width)

	var barColor lipgloss.AdaptiveColor
	switch {
	case value >= 0.75:
		barColor = ColorSuccess
	case value >= 0.5:
		barColor = ColorWarning
	case value >= 0.25:
		barColor = t.Primary
	default:
		barColor = t.Secondary
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// RenderLevel renders "TRL 7/9" style readiness counters.
func RenderLevel(name string, level, maxLevel int, t Theme) string {
	return t.MutedText.Render(name) + " " + fmt.Sprintf("%d/%d", level, maxLevel)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
