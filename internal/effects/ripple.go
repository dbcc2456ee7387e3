package effects

import "github.com/Zachkp/portfolio/internal/theme"

// Ripple tuning.
const (
	RippleStartOpacity = 0.5
	RippleMaxRadius    = 100.0
	RippleGrowth       = 2.0
	RippleDecay        = 0.02
	RippleWidth        = 2.0
)

// Ripple is a ring spreading out from a pointer position.
type Ripple struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Opacity   float64
}

// Ripples is the active ripple set of the water layer.
type Ripples struct {
	items []Ripple
}

// Spawn adds a ripple at (x, y) when th is the night theme. It reports
// whether a ripple was created.
func (rs *Ripples) Spawn(x, y float64, th theme.Theme) bool {
	if th != theme.Night {
		return false
	}
	rs.items = append(rs.items, Ripple{
		X:         x,
		Y:         y,
		MaxRadius: RippleMaxRadius,
		Opacity:   RippleStartOpacity,
	})
	return true
}

// Step grows and fades every ripple and drops the ones that faded out.
// Survivors are compacted in place so no neighbour is skipped or visited twice.
func (rs *Ripples) Step() {
	kept := rs.items[:0]
	for _, r := range rs.items {
		r.Radius += RippleGrowth
		r.Opacity -= RippleDecay
		if r.Opacity <= 0 {
			continue
		}
		kept = append(kept, r)
	}
	clear(rs.items[len(kept):])
	rs.items = kept
}

// Draw strokes every active ripple.
func (rs *Ripples) Draw(c Canvas, th theme.Theme) {
	base := DayParticle
	if th == theme.Night {
		base = NightRipple
	}
	c.Clear()
	for _, r := range rs.items {
		c.StrokeCircle(r.X, r.Y, r.Radius, RippleWidth, withAlpha(base, r.Opacity))
	}
}

// Len returns the number of active ripples.
func (rs *Ripples) Len() int { return len(rs.items) }

// Snapshot returns a copy of the active ripples.
func (rs *Ripples) Snapshot() []Ripple {
	out := make([]Ripple, len(rs.items))
	copy(out, rs.items)
	return out
}
