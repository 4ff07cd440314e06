package constellation

import "math"

// Range is a closed interval [Lo, Hi]. Force ranges may be descending.
type Range struct {
	Lo, Hi float64
}

// Contains reports whether v lies within the range, bounds included
func (r Range) Contains(v float64) bool {
	return v >= r.Lo && v <= r.Hi
}

// LinearMap interpolates value from the domain [x.Lo, x.Hi] onto [y.Lo, y.Hi].
// A zero-width domain yields a non-finite result; settings validation rejects it.
func LinearMap(value float64, y, x Range) float64 {
	return (value-x.Lo)*(y.Hi-y.Lo)/(x.Hi-x.Lo) + y.Lo
}

// ForceModel maps distances to force magnitudes using the current settings
type ForceModel struct {
	RepelDistance   Range
	RepelForce      Range
	AttractDistance Range
	AttractForce    Range

	InteractDistance float64
	InteractStrength float64

	MaxVelocityX float64
	MaxVelocityY float64
}

// NewForceModel extracts the force parameters from s
func NewForceModel(s *Settings) ForceModel {
	return ForceModel{
		RepelDistance:    s.RepelDistanceRange,
		RepelForce:       s.RepelForceRange,
		AttractDistance:  s.AttractDistanceRange,
		AttractForce:     s.AttractForceRange,
		InteractDistance: s.MaxInteractForceDistance,
		InteractStrength: s.MaxInteractForceStrength,
		MaxVelocityX:     s.MaxVelocityX,
		MaxVelocityY:     s.MaxVelocityY,
	}
}

// Repel returns the repel force at distance d and whether d is in the repel range
func (m ForceModel) Repel(d float64) (float64, bool) {
	if !m.RepelDistance.Contains(d) {
		return 0, false
	}
	return LinearMap(d, m.RepelForce, m.RepelDistance), true
}

// Attract returns the attract force at distance d and whether d is in the attract range
func (m ForceModel) Attract(d float64) (float64, bool) {
	if !m.AttractDistance.Contains(d) {
		return 0, false
	}
	return LinearMap(d, m.AttractForce, m.AttractDistance), true
}

// Push returns the pointer push force at distance d, falling linearly from
// InteractStrength at the pointer to zero at InteractDistance.
func (m ForceModel) Push(d float64) (float64, bool) {
	if d >= m.InteractDistance {
		return 0, false
	}
	return m.InteractStrength * (1 - d/m.InteractDistance), true
}

// ApplyNeighborForces pushes or pulls each of p's neighbors.
// Repel moves the neighbor away from p, attract moves it toward p.
func (m ForceModel) ApplyNeighborForces(p *Particle) {
	for _, n := range p.neighbors {
		o := n.Particle
		angle := p.Pos.AngleTo(o.Pos)
		if f, ok := m.Repel(n.Distance); ok {
			m.accelerate(o, f, angle)
		}
		if f, ok := m.Attract(n.Distance); ok {
			m.accelerate(o, -f, angle)
		}
	}
}

// ApplyPointer pushes p away from the pointer at c. It reports whether the
// particle was within reach.
func (m ForceModel) ApplyPointer(p *Particle, c Vector2) bool {
	f, ok := m.Push(c.DistanceTo(p.Pos))
	if !ok {
		return false
	}
	m.accelerate(p, f, c.AngleTo(p.Pos))
	return true
}

// accelerate adds force along angle to p's velocity and clamps the result
func (m ForceModel) accelerate(p *Particle, force, angle float64) {
	sin, cos := math.Sincos(angle)
	p.Vel.X += force * cos
	p.Vel.Y += force * sin
	p.ClampVelocity(m.MaxVelocityX, m.MaxVelocityY)
}
