package constellation

import (
	"image/color"
	"time"
)

// Disc is a filled circle
type Disc struct {
	Center Vector2
	Radius float64
}

// Surface is the 2D immediate-mode drawing target. Alpha is in [0, 1] and
// multiplies the color's own alpha.
type Surface interface {
	// FillRect fills a rectangle with c at the given alpha
	FillRect(x, y, w, h float64, c color.NRGBA, alpha float64)
	// FillDiscs fills every disc in one pass
	FillDiscs(discs []Disc, c color.NRGBA, alpha float64)
	// StrokeSegments strokes every segment as part of a single path
	StrokeSegments(segs []Segment, c color.NRGBA, width, alpha float64)
}

// FrameFunc is invoked by a Scheduler with the frame timestamp
type FrameFunc func(now time.Time)

// Scheduler calls back once at the next display refresh, like
// requestAnimationFrame. Each request yields at most one callback.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}
