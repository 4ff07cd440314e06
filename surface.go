package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/coreyshuman/Constellation/internal/constellation"
)

const (
	// Paths are split so vertex indices fit in uint16
	maxSegmentsPerPath = 4096
	maxDiscsPerPath    = 512
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// screenSurface draws onto the ebiten screen image of the current frame.
// Each batch becomes one vector path and one DrawTriangles call.
type screenSurface struct {
	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// FillRect fills a rectangle with c at the given alpha
func (s *screenSurface) FillRect(x, y, w, h float64, c color.NRGBA, alpha float64) {
	if s.dst == nil {
		return
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), withAlpha(c, alpha), false)
}

// FillDiscs fills all discs with a single path per chunk
func (s *screenSurface) FillDiscs(discs []constellation.Disc, c color.NRGBA, alpha float64) {
	if s.dst == nil {
		return
	}
	for len(discs) > 0 {
		n := min(len(discs), maxDiscsPerPath)
		var path vector.Path
		for _, d := range discs[:n] {
			cx, cy, r := float32(d.Center.X), float32(d.Center.Y), float32(d.Radius)
			path.MoveTo(cx+r, cy)
			path.Arc(cx, cy, r, 0, 2*math.Pi, vector.Clockwise)
			path.Close()
		}
		s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
		s.flush(c, alpha)
		discs = discs[n:]
	}
}

// StrokeSegments strokes all segments with a single path per chunk
func (s *screenSurface) StrokeSegments(segs []constellation.Segment, c color.NRGBA, width, alpha float64) {
	if s.dst == nil {
		return
	}
	op := &vector.StrokeOptions{Width: float32(width)}
	for len(segs) > 0 {
		n := min(len(segs), maxSegmentsPerPath)
		var path vector.Path
		for _, seg := range segs[:n] {
			path.MoveTo(float32(seg.A.X), float32(seg.A.Y))
			path.LineTo(float32(seg.B.X), float32(seg.B.Y))
		}
		s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)
		s.flush(c, alpha)
		segs = segs[n:]
	}
}

// flush colors the pending vertices and draws them
func (s *screenSurface) flush(c color.NRGBA, alpha float64) {
	if len(s.indices) == 0 {
		return
	}
	r := float32(c.R) / 0xff
	g := float32(c.G) / 0xff
	b := float32(c.B) / 0xff
	a := float32(c.A) / 0xff * float32(alpha)
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * alpha))
	return c
}
