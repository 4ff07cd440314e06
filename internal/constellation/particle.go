package constellation

import (
	"image/color"
	"math"
)

const (
	// dampingThreshold is the speed above which velocity decays
	dampingThreshold = 0.5
	// dampingRate is the velocity decay per nominal frame
	dampingRate = 0.01
)

// Neighbor is another particle inside the current frame's search radius
type Neighbor struct {
	Particle *Particle
	Distance float64
}

// Particle is a single moving point
type Particle struct {
	Pos    Vector2
	Vel    Vector2
	Color  color.NRGBA
	Radius float64

	// neighbors is rebuilt on every update; the backing array is reused
	neighbors []Neighbor
}

// NewParticle creates a particle at (x, y) with the given velocity
func NewParticle(x, y, dx, dy float64, c color.NRGBA, radius float64) *Particle {
	return &Particle{
		Pos:    Vector2{X: x, Y: y},
		Vel:    Vector2{X: dx, Y: dy},
		Color:  c,
		Radius: radius,
	}
}

// Neighbors returns the neighbors found by the last update.
// The slice is only valid until the particle is updated again.
func (p *Particle) Neighbors() []Neighbor {
	return p.neighbors
}

// DistanceTo returns the distance between the centers of p and o
func (p *Particle) DistanceTo(o *Particle) float64 {
	return p.Pos.DistanceTo(o.Pos)
}

// Integrate advances the particle by dt nominal frames, reflects it off the
// canvas edges and applies velocity damping.
func (p *Particle) Integrate(dt, maxX, maxY float64) {
	p.Pos.X += p.Vel.X * dt
	p.Pos.Y += p.Vel.Y * dt

	// Reflect off edges
	if p.Pos.X < 0 {
		p.Pos.X = 0
		p.Vel.X = -p.Vel.X
	} else if p.Pos.X > maxX {
		p.Pos.X = maxX
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y < 0 {
		p.Pos.Y = 0
		p.Vel.Y = -p.Vel.Y
	} else if p.Pos.Y > maxY {
		p.Pos.Y = maxY
		p.Vel.Y = -p.Vel.Y
	}

	p.Vel.X = damp(p.Vel.X, dt)
	p.Vel.Y = damp(p.Vel.Y, dt)
}

// damp pulls a velocity component above the threshold back toward it
func damp(v, dt float64) float64 {
	step := dampingRate * dt
	switch {
	case v > dampingThreshold:
		return math.Max(dampingThreshold, v-step)
	case v < -dampingThreshold:
		return math.Min(-dampingThreshold, v+step)
	}
	return v
}

// FindNeighbors scans all particles and records every other particle
// strictly closer than maxDistance.
func (p *Particle) FindNeighbors(all []*Particle, maxDistance float64) {
	p.neighbors = p.neighbors[:0]
	for _, o := range all {
		if o == p {
			continue
		}
		d := p.DistanceTo(o)
		if d < maxDistance {
			p.neighbors = append(p.neighbors, Neighbor{Particle: o, Distance: d})
		}
	}
}

// ClampVelocity bounds both velocity components to [-maxX, maxX] and [-maxY, maxY]
func (p *Particle) ClampVelocity(maxX, maxY float64) {
	p.Vel.X = clamp(p.Vel.X, -maxX, maxX)
	p.Vel.Y = clamp(p.Vel.Y, -maxY, maxY)
}

// dropNeighbors removes links to the given particles, keeping the rest in order
func (p *Particle) dropNeighbors(removed map[*Particle]struct{}) {
	kept := p.neighbors[:0]
	for _, n := range p.neighbors {
		if _, gone := removed[n.Particle]; !gone {
			kept = append(kept, n)
		}
	}
	clear(p.neighbors[len(kept):])
	p.neighbors = kept
}

// clearNeighbors drops all neighbor links so no stale particle is referenced
func (p *Particle) clearNeighbors() {
	clear(p.neighbors)
	p.neighbors = p.neighbors[:0]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
