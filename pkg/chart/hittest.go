package chart

import (
	"github.com/vanderheijden86/trendradar/pkg/geom"
	"github.com/vanderheijden86/trendradar/pkg/viewport"
)

// HitTest returns the marker under a screen-space point.
//
// Markers drawn later sit on top, so among markers whose hit area contains
// the point the last one wins. When none contains it, the nearest marker
// within slop screen units of its hit area is returned; coarse pointers such
// as terminal cells rely on this.
func HitTest(markers []Marker, vp viewport.State, screen geom.Point, slop float64) (Marker, bool) {
	p := vp.ToChart(screen)
	slopChart := slop / vp.Zoom()

	for i := len(markers) - 1; i >= 0; i-- {
		if markers[i].Center.Dist(p) <= markers[i].HitRadius {
			return markers[i], true
		}
	}
	if slop <= 0 {
		return Marker{}, false
	}

	best, bestGap := -1, 0.0
	for i := len(markers) - 1; i >= 0; i-- {
		gap := markers[i].Center.Dist(p) - markers[i].HitRadius
		if gap <= slopChart && (best < 0 || gap < bestGap) {
			best, bestGap = i, gap
		}
	}
	if best < 0 {
		return Marker{}, false
	}
	return markers[best], true
}

// HitTest returns the marker of s under a screen-space point.
func (s Scene) HitTest(screen geom.Point, slop float64) (Marker, bool) {
	return HitTest(s.Markers, s.Viewport, screen, slop)
}
