package constellation

import (
	"math"
	"testing"
)

func TestLinearMapEndpoints(t *testing.T) {
	tests := []struct {
		y, x Range
	}{
		{Range{0.1, 0}, Range{0, 20}},
		{Range{0, 0.001}, Range{15, 30}},
		{Range{-3, 7}, Range{2, 4}},
		{Range{5, 5}, Range{0, 1}},
	}
	for _, tt := range tests {
		if got := LinearMap(tt.x.Lo, tt.y, tt.x); !approx(got, tt.y.Lo) {
			t.Errorf("LinearMap(%v, %v, %v): expected %v, got %v", tt.x.Lo, tt.y, tt.x, tt.y.Lo, got)
		}
		if got := LinearMap(tt.x.Hi, tt.y, tt.x); !approx(got, tt.y.Hi) {
			t.Errorf("LinearMap(%v, %v, %v): expected %v, got %v", tt.x.Hi, tt.y, tt.x, tt.y.Hi, got)
		}
	}
}

func TestLinearMapMidpoint(t *testing.T) {
	if got := LinearMap(10, Range{0.1, 0}, Range{0, 20}); !approx(got, 0.05) {
		t.Errorf("Expected 0.05, got %v", got)
	}
}

func TestLinearMapZeroWidthDomain(t *testing.T) {
	got := LinearMap(3, Range{0, 1}, Range{3, 3})
	if !math.IsNaN(got) && !math.IsInf(got, 0) {
		t.Errorf("Expected non-finite result for zero-width domain, got %v", got)
	}
}

func TestForceModelRanges(t *testing.T) {
	s := DefaultSettings()
	m := NewForceModel(&s)

	if _, ok := m.Repel(25); ok {
		t.Error("Expected no repel force outside the repel range")
	}
	if f, ok := m.Repel(0); !ok || !approx(f, 0.1) {
		t.Errorf("Expected repel 0.1 at distance 0, got %v (%v)", f, ok)
	}
	if _, ok := m.Attract(14.9); ok {
		t.Error("Expected no attract force below the attract range")
	}
	if f, ok := m.Attract(30); !ok || !approx(f, 0.001) {
		t.Errorf("Expected attract 0.001 at distance 30, got %v (%v)", f, ok)
	}
	if _, ok := m.Push(60); ok {
		t.Error("Expected no push at the interaction distance")
	}
}

func TestStaticRepel(t *testing.T) {
	s := DefaultSettings()
	s.RepelDistanceRange = Range{0, 20}
	s.RepelForceRange = Range{0.1, 0}
	c, _, _ := newTestConstellation(t, s, 1000, 1000)

	a, b := still(500, 500), still(505, 500)
	setParticles(c, a, b)
	c.Update(1)

	if a.Vel.X >= 0 || b.Vel.X <= 0 {
		t.Errorf("Expected particles to move apart, got dx %v and %v", a.Vel.X, b.Vel.X)
	}
	if math.Signbit(a.Vel.X) == math.Signbit(b.Vel.X) {
		t.Error("Expected opposite dx signs")
	}
}

func TestAttractPullsTogether(t *testing.T) {
	s := DefaultSettings()
	s.RepelDistanceRange = Range{0, 5}
	s.AttractDistanceRange = Range{10, 40}
	s.AttractForceRange = Range{0.01, 0.01}
	c, _, _ := newTestConstellation(t, s, 1000, 1000)

	a, b := still(500, 500), still(500, 520)
	setParticles(c, a, b)
	c.Update(1)

	if a.Vel.Y <= 0 || b.Vel.Y >= 0 {
		t.Errorf("Expected particles to move together, got dy %v and %v", a.Vel.Y, b.Vel.Y)
	}
}

func TestCursorPush(t *testing.T) {
	s := DefaultSettings()
	s.MaxInteractForceDistance = 60
	s.MaxInteractForceStrength = 0.3
	c, _, _ := newTestConstellation(t, s, 1000, 1000)

	p := still(118, 124)
	setParticles(c, p)
	c.OnPointerMove(100, 100)
	c.Update(1)

	// distance 30, force 0.3 * (60-30)/60 = 0.15 along (0.6, 0.8)
	if !approx(p.Vel.X, 0.09) || !approx(p.Vel.Y, 0.12) {
		t.Errorf("Expected velocity (0.09, 0.12), got (%v, %v)", p.Vel.X, p.Vel.Y)
	}
	if p.Color != s.InteractColor {
		t.Errorf("Expected interact color %v, got %v", s.InteractColor, p.Color)
	}

	c.OnPointerMove(900, 900)
	c.Update(1)
	if p.Color != s.PointColor {
		t.Errorf("Expected color reset to %v, got %v", s.PointColor, p.Color)
	}
}

func TestTouchesReplaceCursor(t *testing.T) {
	s := DefaultSettings()
	c, _, _ := newTestConstellation(t, s, 1000, 1000)

	p := still(500, 500)
	setParticles(c, p)
	c.OnPointerMove(510, 500)
	c.OnTouchStart(1, 900, 900)
	c.Update(0)
	if p.Vel.X != 0 || p.Color != s.PointColor {
		t.Errorf("Expected cursor to be ignored while touches are active, got dx %v", p.Vel.X)
	}

	c.OnTouchStart(2, 480, 500)
	c.Update(0)
	if p.Vel.X <= 0 || p.Color != s.InteractColor {
		t.Errorf("Expected push away from touch, got dx %v", p.Vel.X)
	}
}

func TestVelocityBoundAfterForces(t *testing.T) {
	s := DefaultSettings()
	s.RepelForceRange = Range{100, 100}
	s.MaxInteractForceStrength = 100
	c, _, _ := newTestConstellation(t, s, 1000, 1000)

	ps := []*Particle{still(500, 500), still(503, 502), still(498, 505), still(510, 495)}
	setParticles(c, ps...)
	c.OnPointerMove(505, 505)
	c.Update(1)

	for i, p := range ps {
		if math.Abs(p.Vel.X) > s.MaxVelocityX || math.Abs(p.Vel.Y) > s.MaxVelocityY {
			t.Errorf("Particle %d velocity (%v, %v) exceeds bounds", i, p.Vel.X, p.Vel.Y)
		}
	}
}
