package main

import (
	"fmt"
	"image/color"
	"log"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/coreyshuman/Constellation/internal/config"
	"github.com/coreyshuman/Constellation/internal/constellation"
)

// densityStep is the density change per Up/Down key press
const densityStep = 5

var presetKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// game adapts a Constellation to Ebitengine. It schedules the frame
// callbacks, provides the drawing surface and forwards input.
type game struct {
	sim     *constellation.Constellation
	surface *screenSurface
	conf    *config.Config
	presets []string

	pending constellation.FrameFunc

	started       bool
	width, height int

	cursorX, cursorY int
	touches          []ebiten.TouchID
	touchBuf         []ebiten.TouchID

	showFPS bool
}

func newGame(conf *config.Config) *game {
	return &game{
		surface: &screenSurface{},
		conf:    conf,
		presets: conf.PresetNames(),
		showFPS: conf.ShowFPS,
		cursorX: -1,
		cursorY: -1,
	}
}

// RequestFrame queues fn for the next Draw
func (g *game) RequestFrame(fn constellation.FrameFunc) {
	g.pending = fn
}

// Update is called each tick by Ebitengine
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if !g.started {
		return nil
	}
	g.handlePointers()
	g.handleKeys()
	return nil
}

// Draw is called each frame by Ebitengine. The screen is not cleared between
// frames, the constellation fades it itself.
func (g *game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	if fn := g.pending; fn != nil {
		g.pending = nil
		fn(time.Now())
	}
	if g.showFPS {
		g.drawStats(screen)
	}
}

// Layout follows the window size so the canvas always fills it
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (g *game) resize(w, h int) {
	g.width, g.height = w, h
	if g.started {
		g.sim.OnResize(float64(w), float64(h))
		return
	}
	g.sim.Init(float64(w), float64(h))
	if err := g.sim.Start(); err != nil {
		log.Printf("start: %v", err)
		return
	}
	g.started = true
}

// handlePointers forwards cursor movement and touch changes
func (g *game) handlePointers() {
	mx, my := ebiten.CursorPosition()
	if mx != g.cursorX || my != g.cursorY {
		g.cursorX, g.cursorY = mx, my
		g.sim.OnPointerMove(float64(mx), float64(my))
	}

	g.touchBuf = ebiten.AppendTouchIDs(g.touchBuf[:0])
	for _, id := range g.touchBuf {
		x, y := ebiten.TouchPosition(id)
		if slices.Contains(g.touches, id) {
			g.sim.OnTouchMove(constellation.TouchID(id), float64(x), float64(y))
		} else {
			g.sim.OnTouchStart(constellation.TouchID(id), float64(x), float64(y))
		}
	}
	for _, id := range g.touches {
		if !slices.Contains(g.touchBuf, id) {
			g.sim.OnTouchEnd(constellation.TouchID(id))
		}
	}
	g.touches = append(g.touches[:0], g.touchBuf...)
}

// handleKeys processes keyboard shortcuts
func (g *game) handleKeys() {
	s := g.sim.Settings()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.sim.Running() {
			g.sim.Stop()
		} else if err := g.sim.Start(); err != nil {
			log.Printf("start: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.set(constellation.KeyBatchDraw, !s.BatchDraw)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.set(constellation.KeyPingPongUpdate, !s.PingPongUpdate)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.showFPS = !g.showFPS
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.set(constellation.KeyPointDensity, s.PointDensity+densityStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.set(constellation.KeyPointDensity, s.PointDensity-densityStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reseed()
	}

	for i, k := range presetKeys {
		if i >= len(g.presets) {
			break
		}
		if inpututil.IsKeyJustPressed(k) {
			name := g.presets[i]
			if err := g.sim.UpdateSettings(g.conf.Presets[name]); err != nil {
				log.Printf("preset %q: %v", name, err)
			}
		}
	}
}

func (g *game) set(name string, value any) {
	if err := g.sim.UpdateSetting(name, value); err != nil {
		log.Printf("update setting: %v", err)
	}
}

// drawStats prints the telemetry overlay on an opaque box
func (g *game) drawStats(screen *ebiten.Image) {
	st := g.sim.Stats()
	s := g.sim.Settings()
	vector.DrawFilledRect(screen, 0, 0, 240, 80, color.Black, false)
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %d  TPS: %0.1f\nParticles: %d  Lines: %d\nDraw calls: %d\nUpdate: %v  Draw: %v\nBatch: %v  Ping-pong: %v",
		st.FPS, ebiten.ActualTPS(), st.Particles, st.Lines, st.DrawCalls,
		st.UpdateTime.Round(time.Microsecond), st.DrawTime.Round(time.Microsecond),
		s.BatchDraw, s.PingPongUpdate,
	))
}
