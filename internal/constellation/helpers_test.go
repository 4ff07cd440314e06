package constellation

import (
	"image/color"
	"io"
	"log"
	"testing"
	"time"
)

type surfaceCall struct {
	kind  string // rect, discs, stroke
	color color.NRGBA
	alpha float64
	width float64
	discs []Disc
	segs  []Segment
}

// recordingSurface records every drawing call
type recordingSurface struct {
	calls []surfaceCall
}

func (r *recordingSurface) FillRect(x, y, w, h float64, c color.NRGBA, alpha float64) {
	r.calls = append(r.calls, surfaceCall{kind: "rect", color: c, alpha: alpha})
}

func (r *recordingSurface) FillDiscs(discs []Disc, c color.NRGBA, alpha float64) {
	r.calls = append(r.calls, surfaceCall{kind: "discs", color: c, alpha: alpha, discs: append([]Disc(nil), discs...)})
}

func (r *recordingSurface) StrokeSegments(segs []Segment, c color.NRGBA, width, alpha float64) {
	r.calls = append(r.calls, surfaceCall{kind: "stroke", color: c, alpha: alpha, width: width, segs: append([]Segment(nil), segs...)})
}

func (r *recordingSurface) count(kind string) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

// manualScheduler queues frame requests until fire is called
type manualScheduler struct {
	queue    []FrameFunc
	requests int
}

func (m *manualScheduler) RequestFrame(fn FrameFunc) {
	m.queue = append(m.queue, fn)
	m.requests++
}

func (m *manualScheduler) fire(now time.Time) {
	q := m.queue
	m.queue = nil
	for _, fn := range q {
		fn(now)
	}
}

func newTestConstellation(t *testing.T, s Settings, w, h float64) (*Constellation, *recordingSurface, *manualScheduler) {
	t.Helper()
	surface := &recordingSurface{}
	sched := &manualScheduler{}
	c, err := New(Options{
		Settings:  s,
		Scheduler: sched,
		Surface:   surface,
		Logger:    log.New(io.Discard, "", 0),
		Seed:      1,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Init(w, h)
	return c, surface, sched
}

// setParticles replaces the particle set
func setParticles(c *Constellation, ps ...*Particle) {
	c.particles = ps
}

// still creates a motionless particle with the default look
func still(x, y float64) *Particle {
	s := DefaultSettings()
	return NewParticle(x, y, 0, 0, s.PointColor, s.PointSize)
}

func approx(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
