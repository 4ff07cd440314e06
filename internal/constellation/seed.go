package constellation

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
)

const (
	// noiseScale converts canvas units to noise-space units
	noiseScale = 0.005
	// noiseOffset separates the x and y velocity fields in noise space
	noiseOffset = 1000
)

// seeder places new particles. Initial velocities blend uniform jitter with a
// Perlin field so particles close together start drifting the same way.
type seeder struct {
	rng   *rand.Rand
	noise *perlin.Perlin
}

func newSeeder(seed int64) *seeder {
	return &seeder{
		rng:   rand.New(rand.NewSource(seed)),
		noise: perlin.NewPerlin(2, 2, 3, seed),
	}
}

// particle creates a particle somewhere inside a w x h canvas
func (s *seeder) particle(w, h float64, st *Settings) *Particle {
	x := s.coord(w)
	y := s.coord(h)
	dx := clamp(s.jitter()+s.noise.Noise2D(x*noiseScale, y*noiseScale), -1, 1)
	dy := clamp(s.jitter()+s.noise.Noise2D(y*noiseScale+noiseOffset, x*noiseScale), -1, 1)
	p := NewParticle(x, y, dx, dy, st.PointColor, st.PointSize)
	// Damping stops at dampingThreshold, so an isolated particle never sheds an over-cap start
	p.ClampVelocity(st.MaxVelocityX, st.MaxVelocityY)
	return p
}

// coord picks an integer coordinate in [1, size-1], or [0, size] on tiny canvases
func (s *seeder) coord(size float64) float64 {
	if size < 2 {
		return s.rng.Float64() * size
	}
	return float64(1 + s.rng.Intn(int(size)-1))
}

func (s *seeder) jitter() float64 {
	return (s.rng.Float64()*2 - 1) / 2
}
