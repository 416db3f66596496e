package geom

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p, q := Pt(3, 4), Pt(1, -2)
	if got := p.Add(q); got != Pt(4, 2) {
		t.Errorf("Add = %v", got)
	}
	if got := p.Sub(q); got != Pt(2, 6) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Scale(0.5); got != Pt(1.5, 2) {
		t.Errorf("Scale = %v", got)
	}
	if got := p.Dist(Point{}); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
}

func TestFinite(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(math.NaN(), 0), false},
		{Pt(0, math.Inf(1)), false},
		{Pt(math.Inf(-1), math.NaN()), false},
	}
	for _, tt := range tests {
		if got := tt.p.Finite(); got != tt.want {
			t.Errorf("Finite(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
