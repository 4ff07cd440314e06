package constellation

import (
	"image/color"
	"math"
)

// alphaBuckets is the number of quantized alpha levels, 0.00 through 1.00
const alphaBuckets = 101

type discGroup struct {
	color color.NRGBA
	discs []Disc
}

// DrawBatcher collects a frame's points and lines and flushes them with as
// few surface state changes as possible. Lines are bucketed by alpha rounded
// to two decimals. All buffers are reused between frames.
type DrawBatcher struct {
	groups  []discGroup
	buckets [alphaBuckets][]Segment
	lines   int
}

// Reset empties the batcher while keeping its buffers
func (b *DrawBatcher) Reset() {
	for i := range b.groups {
		b.groups[i].discs = b.groups[i].discs[:0]
	}
	for i := range b.buckets {
		b.buckets[i] = b.buckets[i][:0]
	}
	b.lines = 0
}

// AddPoint queues a disc of color c
func (b *DrawBatcher) AddPoint(center Vector2, radius float64, c color.NRGBA) {
	d := Disc{Center: center, Radius: radius}
	for i := range b.groups {
		if b.groups[i].color == c {
			b.groups[i].discs = append(b.groups[i].discs, d)
			return
		}
	}
	b.groups = append(b.groups, discGroup{color: c, discs: []Disc{d}})
}

// AddLine queues a segment from a to b at the given alpha
func (b *DrawBatcher) AddLine(from, to Vector2, alpha float64) {
	k := AlphaBucket(alpha)
	b.buckets[k] = append(b.buckets[k], Segment{A: from, B: to})
	b.lines++
}

// Lines returns the number of queued segments
func (b *DrawBatcher) Lines() int {
	return b.lines
}

// Flush draws all queued lines, one stroke per non-empty alpha bucket, then
// all points, one fill per color. It returns the number of surface calls made.
func (b *DrawBatcher) Flush(s Surface, lineColor color.NRGBA, lineWidth, pointAlpha float64) int {
	calls := 0
	for k := range b.buckets {
		if len(b.buckets[k]) == 0 {
			continue
		}
		s.StrokeSegments(b.buckets[k], lineColor, lineWidth, float64(k)/100)
		calls++
	}
	for _, g := range b.groups {
		if len(g.discs) == 0 {
			continue
		}
		s.FillDiscs(g.discs, g.color, pointAlpha)
		calls++
	}
	return calls
}

// AlphaBucket quantizes alpha to its bucket index in [0, 100]
func AlphaBucket(alpha float64) int {
	k := int(math.Round(alpha * 100))
	if k < 0 {
		return 0
	}
	if k >= alphaBuckets {
		return alphaBuckets - 1
	}
	return k
}
