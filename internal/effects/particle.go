package effects

import (
	"math"
	"math/rand/v2"

	"github.com/Zachkp/portfolio/internal/theme"
)

// Field tuning.
const (
	DayParticles   = 50
	NightParticles = 200

	TwinkleLow  = 0.2
	TwinkleHigh = 0.7

	ConnectDistance = 150.0
	ConnectOpacity  = 0.1
	ConnectWidth    = 0.5
)

// Particle is one ambient background dot.
type Particle struct {
	X, Y           float64
	SpeedX, SpeedY float64
	Size           float64
	Opacity        float64
	Twinkle        float64
}

// Field owns the particle set of the background layer. It is not safe for
// concurrent use; Scene serialises access.
type Field struct {
	width, height float64
	theme         theme.Theme
	particles     []Particle
	rng           *rand.Rand
	connections   int
}

// NewField creates a field of the given size populated for th.
func NewField(width, height float64, th theme.Theme, rng *rand.Rand) *Field {
	f := &Field{width: width, height: height, rng: rng}
	f.Regenerate(th)
	return f
}

// Regenerate replaces the whole particle set with one drawn for th.
func (f *Field) Regenerate(th theme.Theme) {
	f.theme = th
	night := th == theme.Night

	count, sizeRange := DayParticles, 2.0
	if night {
		count, sizeRange = NightParticles, 3.0
	}

	f.particles = make([]Particle, count)
	for i := range f.particles {
		f.particles[i] = Particle{
			X:       f.rng.Float64() * f.width,
			Y:       f.rng.Float64() * f.height,
			Size:    f.rng.Float64()*sizeRange + 1,
			SpeedX:  f.rng.Float64()*0.5 - 0.25,
			SpeedY:  f.rng.Float64()*0.5 - 0.25,
			Opacity: f.rng.Float64()*0.5 + 0.2,
			Twinkle: f.rng.Float64() * 0.05,
		}
	}
}

// Resize changes the bounds. Existing positions are left untouched.
func (f *Field) Resize(width, height float64) {
	f.width, f.height = width, height
}

// Step advances every particle by one frame.
func (f *Field) Step() {
	night := f.theme == theme.Night
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.SpeedX
		p.Y += p.SpeedY

		// Inversion only; a particle may overshoot a bound for one frame.
		if p.X < 0 || p.X > f.width {
			p.SpeedX = -p.SpeedX
		}
		if p.Y < 0 || p.Y > f.height {
			p.SpeedY = -p.SpeedY
		}

		if night {
			p.Opacity += p.Twinkle
			if p.Opacity > TwinkleHigh || p.Opacity < TwinkleLow {
				p.Twinkle = -p.Twinkle
			}
		}
	}
}

// Draw paints the particles and, at night, the connection web.
func (f *Field) Draw(c Canvas) {
	night := f.theme == theme.Night
	base := DayParticle
	if night {
		base = NightParticle
	}

	c.Clear()
	for _, p := range f.particles {
		c.FillCircle(p.X, p.Y, p.Size, withAlpha(base, p.Opacity))
	}

	f.connections = 0
	if !night {
		return
	}
	// O(n²) over unordered pairs; acceptable for the night-time count.
	for i := 0; i < len(f.particles); i++ {
		a := f.particles[i]
		for j := i + 1; j < len(f.particles); j++ {
			b := f.particles[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if d >= ConnectDistance {
				continue
			}
			alpha := ConnectOpacity * (1 - d/ConnectDistance)
			c.Line(a.X, a.Y, b.X, b.Y, ConnectWidth, withAlpha(NightParticle, alpha))
			f.connections++
		}
	}
}

// Particles returns a copy of the current particle set.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Bounds returns the current width and height.
func (f *Field) Bounds() (float64, float64) { return f.width, f.height }

// Theme returns the theme the set was generated for.
func (f *Field) Theme() theme.Theme { return f.theme }
