package export

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/trendradar/pkg/chart"
	"github.com/vanderheijden86/trendradar/pkg/metrics"
	"github.com/vanderheijden86/trendradar/pkg/projection"
)

// WritePNG rasterizes doc. Text uses the fixed 7x13 face, so font sizes in the
// scene only affect placement.
func WritePNG(w io.Writer, doc Document) error {
	defer metrics.Timer(metrics.PNGRender)()

	size := ri(doc.Scene.Size)
	if size <= 0 {
		return fmt.Errorf("invalid scene size %v", doc.Scene.Size)
	}
	dc := gg.NewContext(size, size+HeaderHeight)
	setColor(dc, chart.BackgroundColor, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	setColor(dc, chart.ForegroundColor, 1)
	dc.DrawStringAnchored(doc.HeaderTitle(), 16, 22, 0, 0)
	setColor(dc, chart.MutedColor, 1)
	dc.DrawStringAnchored(doc.HeaderSubtitle(), 16, 42, 0, 0)
	x := float64(size) - 16
	legend := categoryLegend()
	for i := len(legend) - 1; i >= 0; i-- {
		e := legend[i]
		setColor(dc, chart.MutedColor, 1)
		dc.DrawStringAnchored(e.label, x, 22, 1, 0)
		x -= 7*float64(len(e.label)) + 10
		setColor(dc, e.color, 1)
		dc.DrawCircle(x, 18, 5)
		dc.Fill()
		x -= 16
	}

	dc.Push()
	dc.DrawRectangle(0, HeaderHeight, float64(size), float64(size))
	dc.Clip()
	vp := doc.Scene.Viewport
	dc.Translate(vp.Pan().X, vp.Pan().Y+HeaderHeight)
	dc.Scale(vp.Zoom(), vp.Zoom())
	for _, c := range doc.Scene.Commands {
		drawPNG(dc, c)
	}
	dc.ResetClip()
	dc.Pop()

	return dc.EncodePNG(w)
}

func drawPNG(dc *gg.Context, c chart.Command) {
	s := c.Style
	switch c.Op {
	case chart.OpCircle:
		dc.DrawCircle(c.A.X, c.A.Y, c.R)
		fillAndStroke(dc, s)
	case chart.OpLine:
		if s.Stroke == "" {
			return
		}
		dc.DrawLine(c.A.X, c.A.Y, c.B.X, c.B.Y)
		setColor(dc, s.Stroke, s.StrokeAlpha())
		dc.SetLineWidth(s.StrokeWidth)
		dc.Stroke()
	case chart.OpRect:
		if c.Role == chart.RoleBackground && s.Fill == "" {
			s.Fill = chart.BackgroundColor
		}
		dc.DrawRectangle(c.A.X, c.A.Y, c.B.X, c.B.Y)
		fillAndStroke(dc, s)
	case chart.OpText:
		ax := float64(c.Anchor) / 2
		setColor(dc, s.FillColor(), s.FillAlpha())
		if c.Rotate != 0 {
			dc.Push()
			dc.RotateAbout(gg.Radians(c.Rotate), c.A.X, c.A.Y)
			dc.DrawStringAnchored(c.Text, c.A.X, c.A.Y, ax, 0)
			dc.Pop()
			return
		}
		dc.DrawStringAnchored(c.Text, c.A.X, c.A.Y, ax, 0)
	}
}

func fillAndStroke(dc *gg.Context, s chart.Style) {
	fill := s.FillColor()
	switch {
	case fill != "" && s.Stroke != "":
		setColor(dc, fill, s.FillAlpha())
		dc.FillPreserve()
		setColor(dc, s.Stroke, s.StrokeAlpha())
		dc.SetLineWidth(s.StrokeWidth)
		dc.Stroke()
	case fill != "":
		setColor(dc, fill, s.FillAlpha())
		dc.Fill()
	case s.Stroke != "":
		setColor(dc, s.Stroke, s.StrokeAlpha())
		dc.SetLineWidth(s.StrokeWidth)
		dc.Stroke()
	default:
		dc.ClearPath()
	}
}

func setColor(dc *gg.Context, hex string, alpha float64) {
	c := projection.Parse(hex)
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}
