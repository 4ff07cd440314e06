// Package constellation animates a field of particles joined by proximity
// lines. Particles repel and attract their neighbors, bounce off the canvas
// edges and are pushed away by the cursor or touch points. Rendering goes
// through a Surface and frames are driven by a Scheduler.
//
// A Constellation is not safe for concurrent use. All calls, including the
// frame callbacks, must come from the goroutine that drives the Scheduler.
package constellation

import (
	"log"
	"sort"
	"time"

	"github.com/pkg/errors"
)

const (
	// nominalRate is the update rate at which dt equals 1
	nominalRate = 60
	// maxFrameDelta bounds the elapsed time fed into one integration step
	maxFrameDelta = 200 * time.Millisecond
)

// ErrNotInitialized is returned by Start before Init has run.
var ErrNotInitialized = errors.New("constellation not initialized")

// TouchID identifies an active touch point
type TouchID int

type touchPoint struct {
	id  TouchID
	pos Vector2
}

// Options configures a new Constellation
type Options struct {
	Settings  Settings
	Scheduler Scheduler
	Surface   Surface
	Logger    *log.Logger
	Seed      int64
}

// Constellation owns the particles, settings and pointer state and runs the
// update and draw pipeline once per frame.
type Constellation struct {
	settings  Settings
	force     ForceModel
	particles []*Particle

	cursor  Vector2
	touches []touchPoint

	width, height float64

	scheduler Scheduler
	surface   Surface
	logger    *log.Logger
	seeder    *seeder

	batch DrawBatcher
	disc  [1]Disc
	seg   [1]Segment

	initialized   bool
	running       bool
	scheduled     bool
	frameCount    uint64
	lastFrameTime time.Time
	fps           fpsCounter
	stats         Stats
}

// New validates the options and creates an uninitialized constellation
func New(opts Options) (*Constellation, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("constellation: nil scheduler")
	}
	if opts.Surface == nil {
		return nil, errors.New("constellation: nil surface")
	}
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	c := &Constellation{
		settings:  opts.Settings,
		scheduler: opts.Scheduler,
		surface:   opts.Surface,
		logger:    logger,
		seeder:    newSeeder(opts.Seed),
	}
	c.force = NewForceModel(&c.settings)
	return c, nil
}

// Init sizes the canvas and seeds the initial particle set
func (c *Constellation) Init(width, height float64) {
	c.width, c.height = width, height
	c.initialized = true
	c.Reseed()
}

// Reseed discards every particle and seeds a fresh set for the current density
func (c *Constellation) Reseed() {
	if !c.initialized {
		return
	}
	for _, p := range c.particles {
		p.clearNeighbors()
	}
	clear(c.particles)
	c.particles = c.particles[:0]
	c.resize()
}

// Start begins the frame loop. Calling it while running is a no-op.
func (c *Constellation) Start() error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if c.running {
		return nil
	}
	c.running = true
	c.frameCount = 0
	c.lastFrameTime = time.Time{}
	c.schedule()
	return nil
}

// Stop halts the frame loop at the next frame boundary. It is idempotent.
func (c *Constellation) Stop() {
	c.running = false
}

// Running reports whether the frame loop is active
func (c *Constellation) Running() bool {
	return c.running
}

// schedule registers run with the scheduler unless a callback is pending
func (c *Constellation) schedule() {
	if c.scheduled {
		return
	}
	c.scheduled = true
	c.scheduler.RequestFrame(c.run)
}

// run is the frame callback. It re-registers itself while running.
func (c *Constellation) run(now time.Time) {
	c.scheduled = false
	if !c.running {
		return
	}
	c.schedule()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("constellation: frame %d skipped: %v", c.frameCount, r)
		}
	}()
	c.frame(now)
}

// frame computes the clamped elapsed time, updates and draws
func (c *Constellation) frame(now time.Time) {
	elapsed := time.Second / nominalRate
	if !c.lastFrameTime.IsZero() {
		elapsed = now.Sub(c.lastFrameTime)
	}
	c.lastFrameTime = now
	if elapsed > maxFrameDelta {
		elapsed = maxFrameDelta
	} else if elapsed < 0 {
		elapsed = 0
	}

	dt := elapsed.Seconds() * nominalRate
	if c.settings.PingPongUpdate {
		// Each particle only moves every other frame
		dt *= 2
	}

	t0 := time.Now()
	c.Update(dt)
	t1 := time.Now()
	c.Draw()

	c.stats.LastDelta = elapsed
	c.stats.UpdateTime = t1.Sub(t0)
	c.stats.DrawTime = time.Since(t1)
	c.stats.FPS = c.fps.tick(now)
}

// Update advances the simulation by dt nominal frames. With ping-pong
// scheduling only every other particle is integrated, alternating each call.
func (c *Constellation) Update(dt float64) {
	start, step := 0, 1
	if c.settings.PingPongUpdate {
		start, step = int(c.frameCount%2), 2
	}
	maxDistance := c.settings.MaxSearchDistance()

	for i := start; i < len(c.particles); i += step {
		p := c.particles[i]
		p.Color = c.settings.PointColor
		p.Integrate(dt, c.width, c.height)
		p.FindNeighbors(c.particles, maxDistance)
		c.force.ApplyNeighborForces(p)
		c.applyPointers(p)
	}
	c.frameCount++
	c.stats.Frames = c.frameCount
}

// applyPointers pushes p away from every touch point, or from the cursor
// when there are no touches
func (c *Constellation) applyPointers(p *Particle) {
	if len(c.touches) == 0 {
		if c.force.ApplyPointer(p, c.cursor) {
			p.Color = c.settings.InteractColor
		}
		return
	}
	for _, t := range c.touches {
		if c.force.ApplyPointer(p, t.pos) {
			p.Color = c.settings.InteractColor
		}
	}
}

// Draw renders the current state onto the surface
func (c *Constellation) Draw() {
	st := &c.settings
	c.surface.FillRect(0, 0, c.width, c.height, st.BackgroundColor, 1-st.ScreenBlur)

	calls := 1
	if st.BatchDraw {
		calls += c.drawBatched()
	} else {
		calls += c.drawDirect()
	}
	c.stats.DrawCalls = calls
	c.stats.Particles = len(c.particles)
}

// drawDirect draws each particle and each of its lines with its own call
func (c *Constellation) drawDirect() int {
	st := &c.settings
	calls, lines := 0, 0
	for _, p := range c.particles {
		c.disc[0] = Disc{Center: p.Pos, Radius: p.Radius}
		c.surface.FillDiscs(c.disc[:], p.Color, pointAlpha)
		calls++
		for _, n := range p.neighbors {
			if n.Distance >= st.MaxLineLength {
				continue
			}
			c.seg[0] = Segment{A: p.Pos, B: n.Particle.Pos}
			c.surface.StrokeSegments(c.seg[:], st.LineColor, st.LineSize, lineAlpha(n.Distance, st.MaxLineLength))
			calls++
			lines++
		}
	}
	c.stats.Lines = lines
	return calls
}

// drawBatched queues everything into the batcher and flushes it.
// Each neighbor pair is queued once from each end.
func (c *Constellation) drawBatched() int {
	st := &c.settings
	c.batch.Reset()
	for _, p := range c.particles {
		c.batch.AddPoint(p.Pos, p.Radius, p.Color)
		for _, n := range p.neighbors {
			if n.Distance >= st.MaxLineLength {
				continue
			}
			c.batch.AddLine(p.Pos, n.Particle.Pos, lineAlpha(n.Distance, st.MaxLineLength))
		}
	}
	c.stats.Lines = c.batch.Lines()
	return c.batch.Flush(c.surface, st.LineColor, st.LineSize, pointAlpha)
}

// lineAlpha fades a line from opaque at distance 0 to clear at maxLength
func lineAlpha(d, maxLength float64) float64 {
	return (maxLength - d) / maxLength
}

// OnPointerMove records the cursor position
func (c *Constellation) OnPointerMove(x, y float64) {
	c.cursor.Set(x, y)
}

// OnTouchStart begins tracking a touch point
func (c *Constellation) OnTouchStart(id TouchID, x, y float64) {
	if i := c.touchIndex(id); i >= 0 {
		c.touches[i].pos.Set(x, y)
		return
	}
	c.touches = append(c.touches, touchPoint{id: id, pos: Vector2{X: x, Y: y}})
}

// OnTouchMove updates a tracked touch point. Unknown ids are ignored.
func (c *Constellation) OnTouchMove(id TouchID, x, y float64) {
	if i := c.touchIndex(id); i >= 0 {
		c.touches[i].pos.Set(x, y)
	}
}

// OnTouchEnd stops tracking a touch point. Unknown ids are ignored.
func (c *Constellation) OnTouchEnd(id TouchID) {
	if i := c.touchIndex(id); i >= 0 {
		c.touches = append(c.touches[:i], c.touches[i+1:]...)
	}
}

// OnTouchCancel behaves like OnTouchEnd
func (c *Constellation) OnTouchCancel(id TouchID) {
	c.OnTouchEnd(id)
}

func (c *Constellation) touchIndex(id TouchID) int {
	for i, t := range c.touches {
		if t.id == id {
			return i
		}
	}
	return -1
}

// OnResize adopts new canvas dimensions and re-derives the particle count
func (c *Constellation) OnResize(width, height float64) {
	c.width, c.height = width, height
	for _, p := range c.particles {
		p.Pos.X = clamp(p.Pos.X, 0, width)
		p.Pos.Y = clamp(p.Pos.Y, 0, height)
	}
	c.resize()
}

// UpdateSetting validates and stores a single setting
func (c *Constellation) UpdateSetting(name string, value any) error {
	return c.UpdateSettings(map[string]any{name: value})
}

// UpdateSettings applies several settings at once, in key order. If any
// value is rejected none are stored.
func (c *Constellation) UpdateSettings(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	next := c.settings
	for _, k := range keys {
		if err := next.Set(k, values[k]); err != nil {
			return err
		}
	}
	prev := c.settings
	c.settings = next
	c.force = NewForceModel(&c.settings)

	if next.PointDensity != prev.PointDensity {
		c.resize()
	}
	if next.MaxVelocityX != prev.MaxVelocityX || next.MaxVelocityY != prev.MaxVelocityY {
		for _, p := range c.particles {
			p.ClampVelocity(next.MaxVelocityX, next.MaxVelocityY)
		}
	}
	return nil
}

// resize grows or truncates the particle set to match density and canvas
// area. Truncation drops the newest particles.
func (c *Constellation) resize() {
	if !c.initialized {
		return
	}
	target := PointCount(c.settings.PointDensity, c.width*c.height)
	n := len(c.particles)
	switch {
	case target > n:
		for i := n; i < target; i++ {
			c.particles = append(c.particles, c.seeder.particle(c.width, c.height, &c.settings))
		}
	case target < n:
		removed := make(map[*Particle]struct{}, n-target)
		for _, p := range c.particles[target:] {
			removed[p] = struct{}{}
		}
		clear(c.particles[target:])
		c.particles = c.particles[:target]
		// Survivors keep their links to each other so the idle ping-pong half still draws
		for _, p := range c.particles {
			p.dropNeighbors(removed)
		}
	default:
		return
	}
	c.logger.Printf("constellation: resized from %d to %d particles", n, target)
}

// Settings returns a copy of the current settings
func (c *Constellation) Settings() Settings {
	return c.settings
}

// Particles returns the live particle set, oldest first. Callers must not
// modify the slice.
func (c *Constellation) Particles() []*Particle {
	return c.particles
}

// Cursor returns the last known cursor position
func (c *Constellation) Cursor() Vector2 {
	return c.cursor
}

// Touches returns the positions of the active touch points
func (c *Constellation) Touches() []Vector2 {
	out := make([]Vector2, len(c.touches))
	for i, t := range c.touches {
		out[i] = t.pos
	}
	return out
}

// Size returns the canvas dimensions
func (c *Constellation) Size() (float64, float64) {
	return c.width, c.height
}

// Stats returns the latest frame telemetry
func (c *Constellation) Stats() Stats {
	return c.stats
}
