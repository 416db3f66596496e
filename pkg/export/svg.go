package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/trendradar/pkg/chart"
	"github.com/vanderheijden86/trendradar/pkg/metrics"
)

// WriteSVG renders doc as a standalone SVG document. The chart sits below a
// header band and carries the viewport transform as a group transform, so the
// markup matches what an interactive view would show.
func WriteSVG(w io.Writer, doc Document) error {
	defer metrics.Timer(metrics.SVGRender)()

	size := ri(doc.Scene.Size)
	height := size + HeaderHeight
	canvas := svg.New(w)
	canvas.Start(size, height)
	canvas.Rect(0, 0, size, height, "fill:"+chart.BackgroundColor)

	canvas.Text(16, 24, doc.HeaderTitle(), fmt.Sprintf("fill:%s;font-size:16px;font-family:sans-serif;font-weight:bold", chart.ForegroundColor))
	canvas.Text(16, 44, doc.HeaderSubtitle(), fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif", chart.MutedColor))
	x := size - 16
	legend := categoryLegend()
	for i := len(legend) - 1; i >= 0; i-- {
		e := legend[i]
		canvas.Text(x, 24, e.label, fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif;text-anchor:end", chart.MutedColor))
		x -= 8 * len(e.label)
		canvas.Circle(x-4, 20, 5, "fill:"+e.color)
		x -= 20
	}

	canvas.Def()
	canvas.ClipPath(`id="chart-area"`)
	canvas.Rect(0, 0, size, size)
	canvas.ClipEnd()
	canvas.DefEnd()

	canvas.Translate(0, HeaderHeight)
	canvas.Group(`clip-path="url(#chart-area)"`)
	canvas.Gtransform(doc.Scene.Viewport.Transform())
	for _, c := range doc.Scene.Commands {
		drawSVG(canvas, doc.Scene, c)
	}
	canvas.Gend()
	canvas.Gend()
	canvas.Gend()

	canvas.End()
	return nil
}

func drawSVG(canvas *svg.SVG, scene chart.Scene, c chart.Command) {
	switch c.Op {
	case chart.OpCircle:
		attrs := []string{svgPaint(c.Style)}
		if c.Role == chart.RoleMarker {
			attrs = append(attrs, fmt.Sprintf(`data-trend="%s"`, attrEscape(c.TrendID)))
		}
		canvas.Circle(ri(c.A.X), ri(c.A.Y), ri(c.R), attrs...)
	case chart.OpLine:
		canvas.Line(ri(c.A.X), ri(c.A.Y), ri(c.B.X), ri(c.B.Y), svgPaint(c.Style))
	case chart.OpRect:
		style := c.Style
		if c.Role == chart.RoleBackground && style.Fill == "" {
			style.Fill = chart.BackgroundColor
		}
		canvas.Rect(ri(c.A.X), ri(c.A.Y), ri(c.B.X), ri(c.B.Y), svgPaint(style))
	case chart.OpText:
		attrs := []string{svgTextStyle(c)}
		if c.Rotate != 0 {
			attrs = append(attrs, fmt.Sprintf(`transform="rotate(%g %d %d)"`, c.Rotate, ri(c.A.X), ri(c.A.Y)))
		}
		canvas.Text(ri(c.A.X), ri(c.A.Y), c.Text, attrs...)
	}
}

func svgPaint(s chart.Style) string {
	var b strings.Builder
	if fill := s.FillColor(); fill != "" {
		fmt.Fprintf(&b, "fill:%s;fill-opacity:%g", fill, s.FillAlpha())
	} else {
		b.WriteString("fill:none")
	}
	if s.Stroke != "" {
		fmt.Fprintf(&b, ";stroke:%s;stroke-opacity:%g;stroke-width:%g", s.Stroke, s.StrokeAlpha(), s.StrokeWidth)
	}
	return b.String()
}

var svgAnchors = [...]string{"start", "middle", "end"}

func svgTextStyle(c chart.Command) string {
	anchor := "start"
	if int(c.Anchor) < len(svgAnchors) {
		anchor = svgAnchors[c.Anchor]
	}
	style := fmt.Sprintf("fill:%s;font-size:%gpx;font-family:sans-serif;text-anchor:%s",
		c.Style.FillColor(), round2(c.Style.FontSize), anchor)
	if c.Style.Bold {
		style += ";font-weight:bold"
	}
	return style
}

func attrEscape(s string) string {
	return strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;").Replace(s)
}

func ri(v float64) int { return int(math.Round(v)) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
