package constellation

import "time"

// Stats is a read-only snapshot of frame telemetry
type Stats struct {
	FPS        int
	Frames     uint64
	Particles  int
	Lines      int
	DrawCalls  int
	LastDelta  time.Duration
	UpdateTime time.Duration
	DrawTime   time.Duration
}

// fpsCounter counts frames over a window of roughly one second
type fpsCounter struct {
	start  time.Time
	frames int
}

// tick records a frame at now and returns the current rate
func (c *fpsCounter) tick(now time.Time) int {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	elapsed := now.Sub(c.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	fps := int(float64(c.frames) / elapsed)
	if elapsed > 1 {
		c.start = now
		c.frames = 0
	}
	return fps
}
