package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/projection"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals keep their own
// background instead of a down-converted approximation.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Categories
	Technology lipgloss.AdaptiveColor
	Industry   lipgloss.AdaptiveColor
	Humanity   lipgloss.AdaptiveColor

	// Impacts
	Low            lipgloss.AdaptiveColor
	Medium         lipgloss.AdaptiveColor
	High           lipgloss.AdaptiveColor
	Transformative lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	ErrorText     lipgloss.Style
	Tooltip       lipgloss.Style
}

// DefaultTheme returns the dashboard theme (adaptive). Category and impact
// colors follow the chart palette so the sidebar legend matches the markers.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#94A3B8"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"},

		Technology: paletteColor(projection.CategoryColor(model.Technology), "#047857"),
		Industry:   paletteColor(projection.CategoryColor(model.Industry), "#1D4ED8"),
		Humanity:   paletteColor(projection.CategoryColor(model.Humanity), "#B45309"),

		Low:            paletteColor(projection.ImpactColor(model.Low), "#4B5563"),
		Medium:         paletteColor(projection.ImpactColor(model.Medium), "#1D4ED8"),
		High:           paletteColor(projection.ImpactColor(model.High), "#B45309"),
		Transformative: paletteColor(projection.ImpactColor(model.Transformative), "#B91C1C"),

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#334155"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#1E293B"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#94A3B8"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#E2E8F0"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0B1120"}).
		Bold(true).
		Padding(0, 1)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)
	t.Focused = t.Panel.BorderForeground(t.Primary)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.ErrorText = r.NewStyle().Foreground(ColorDanger).Bold(true)
	t.Tooltip = r.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Primary).
		Padding(0, 1)

	return t
}

// paletteColor uses the chart color on dark terminals and a darker shade
// with enough contrast on light ones.
func paletteColor(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func (t Theme) GetCategoryColor(c model.Category) lipgloss.AdaptiveColor {
	switch c {
	case model.Technology:
		return t.Technology
	case model.Industry:
		return t.Industry
	case model.Humanity:
		return t.Humanity
	default:
		return t.Subtext
	}
}

func (t Theme) GetImpactColor(i model.Impact) lipgloss.AdaptiveColor {
	switch i {
	case model.Low:
		return t.Low
	case model.Medium:
		return t.Medium
	case model.High:
		return t.High
	case model.Transformative:
		return t.Transformative
	default:
		return t.Subtext
	}
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
