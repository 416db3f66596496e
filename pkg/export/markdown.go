package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vanderheijden86/trendradar/pkg/model"
	"github.com/vanderheijden86/trendradar/pkg/projection"
)

// impactEmoji marks impact badges in plain-text renderings.
var impactEmoji = [model.NumImpacts]string{"⚪", "🟢", "🟡", "🟠", "🔴"}

var categoryEmoji = [model.NumCategories]string{"⚪", "🟩", "🟦", "🟧"}

func impactBadge(i model.Impact) string {
	if !i.Valid() {
		return impactEmoji[0] + " Unknown"
	}
	return impactEmoji[i] + " " + i.String()
}

func categoryBadge(c model.Category) string {
	if !c.Valid() {
		return categoryEmoji[0] + " Unknown"
	}
	return categoryEmoji[c] + " " + c.String()
}

// TrendMarkdown renders the detail view of one trend.
func TrendMarkdown(t model.Trend) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", t.Name)
	fmt.Fprintf(&sb, "%s  |  **%s Impact**  |  ⏱ %s\n\n", categoryBadge(t.Category), t.Impact, t.TimeHorizon)

	sb.WriteString("## Description\n\n")
	fmt.Fprintf(&sb, "%s\n\n", t.Description)

	sb.WriteString("## Readiness Assessment\n\n")
	fmt.Fprintf(&sb, "**Technology Readiness**: Level %d/%d\n\n", t.ReadinessLevel, model.MaxTRL)
	fmt.Fprintf(&sb, "`%s` %.0f%%  \n*%s*\n\n", bar(projection.TRLPercent(t.ReadinessLevel)/100, 20),
		projection.TRLPercent(t.ReadinessLevel), projection.TRLStage(t.ReadinessLevel))
	fmt.Fprintf(&sb, "**Business Readiness**: Level %d/%d\n\n", t.BusinessReadiness, model.MaxBRL)
	fmt.Fprintf(&sb, "`%s` %.0f%%  \n*%s*\n\n", bar(projection.BRLPercent(t.BusinessReadiness)/100, 20),
		projection.BRLPercent(t.BusinessReadiness), projection.BRLStage(t.BusinessReadiness))

	sb.WriteString("## Key Metrics\n\n")
	sb.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&sb, "| Impact | %s |\n", impactBadge(t.Impact))
	fmt.Fprintf(&sb, "| Maturity | %s |\n\n", projection.Maturity(t.ReadinessLevel))

	if len(t.Tags) > 0 {
		sb.WriteString("## Tags\n\n")
		for i, tag := range t.Tags {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "`%s`", tag)
		}
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Timeline\n\n")
	fmt.Fprintf(&sb, "- Expected Adoption: **%s**\n", t.TimeHorizon)
	fmt.Fprintf(&sb, "- Last Updated: %s\n", t.LastUpdated.Long())

	return sb.String()
}

// ListMarkdown renders the "All Trends" list shown when nothing is selected.
func ListMarkdown(trends []model.Trend) string {
	var sb strings.Builder
	sb.WriteString("# All Trends\n\n")
	fmt.Fprintf(&sb, "*%d trends. Click on any trend to view detailed information.*\n\n", len(trends))
	for _, t := range trends {
		fmt.Fprintf(&sb, "### %s\n\n", t.Name)
		fmt.Fprintf(&sb, "%s  |  %s  |  TRL %d/%d  |  BRL %d/%d  |  ⏱ %s\n\n",
			impactBadge(t.Impact), categoryBadge(t.Category),
			t.ReadinessLevel, model.MaxTRL, t.BusinessReadiness, model.MaxBRL, t.TimeHorizon)
		fmt.Fprintf(&sb, "%s\n\n", truncateString(t.Description, 140))
	}
	if len(trends) == 0 {
		sb.WriteString("No trends match the current filters.\n")
	}
	return sb.String()
}

// WriteMarkdown writes a report: header, summary table, the selected trend
// (if any) and the filtered list.
func WriteMarkdown(w io.Writer, doc Document) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", doc.HeaderTitle())
	generated := doc.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	fmt.Fprintf(&sb, "*Generated: %s*\n\n", generated.Format(time.RFC1123))
	fmt.Fprintf(&sb, "%s\n\n", doc.HeaderSubtitle())

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Category | Count |\n|----------|-------|\n")
	counts := make([]int, model.NumCategories)
	for _, t := range doc.Trends {
		if t.Category.Valid() {
			counts[t.Category]++
		} else {
			counts[model.CategoryUnknown]++
		}
	}
	for _, c := range model.Categories() {
		fmt.Fprintf(&sb, "| %s | %d |\n", categoryBadge(c), counts[c])
	}
	if n := counts[model.CategoryUnknown]; n > 0 {
		fmt.Fprintf(&sb, "| %s | %d |\n", categoryBadge(model.CategoryUnknown), n)
	}
	fmt.Fprintf(&sb, "| **Total** | %d |\n\n", len(doc.Trends))

	if doc.Selected != nil {
		sb.WriteString("---\n\n")
		sb.WriteString(shiftHeadings(TrendMarkdown(*doc.Selected)))
		sb.WriteString("\n---\n\n")
	}
	sb.WriteString(shiftHeadings(ListMarkdown(doc.Trends)))

	_, err := io.WriteString(w, sb.String())
	return err
}

// shiftHeadings demotes every markdown heading one level.
func shiftHeadings(md string) string {
	lines := strings.Split(md, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "#") {
			lines[i] = "#" + l
		}
	}
	return strings.Join(lines, "\n")
}

// bar draws a filled/empty block bar of the given width for a 0-1 value.
func bar(value float64, width int) string {
	value = projection.Clamp(value, 0, 1)
	filled := int(value*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}
