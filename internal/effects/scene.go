// Package effects simulates the decorative background of the portfolio: an
// ambient particle field and pointer-driven water ripples, both reacting to
// the day/night theme.
package effects

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/Zachkp/portfolio/internal/theme"
)

// Scene couples the particle field and the ripple set behind one lock so
// pointer, resize and theme events may arrive from any goroutine while a
// Loop is drawing.
type Scene struct {
	mu      sync.Mutex
	theme   theme.Theme
	field   *Field
	ripples Ripples
	frames  uint64
}

// NewScene creates a scene of the given size. rng drives particle placement.
func NewScene(width, height float64, th theme.Theme, rng *rand.Rand) *Scene {
	return &Scene{
		theme: th,
		field: NewField(width, height, th, rng),
	}
}

// NewRand returns a deterministic generator for seed, or a randomly seeded
// one when seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SetTheme switches theme and regenerates the particle set. The running loop
// picks the new set up on its next frame.
func (s *Scene) SetTheme(th theme.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = th
	s.field.Regenerate(th)
}

// Caption describes a scene showing th, for a window title.
func Caption(th theme.Theme) string {
	if th == theme.Night {
		return "Portfolio background (night) - move the cursor for ripples"
	}
	return "Portfolio background (" + string(th) + ")"
}

// Theme returns the theme currently in effect.
func (s *Scene) Theme() theme.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Resize updates both layers' bounds.
func (s *Scene) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.field.Resize(width, height)
}

// PointerMove spawns a ripple at the pointer when the theme allows it.
func (s *Scene) PointerMove(x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ripples.Spawn(x, y, s.theme)
}

// Frame advances the simulation by one frame and paints it.
func (s *Scene) Frame(particles, ripples Canvas) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.field.Step()
	s.field.Draw(particles)
	s.ripples.Step()
	s.ripples.Draw(ripples, s.theme)
	s.frames++
}

// Watch regenerates the scene whenever attr changes, until ctx is done.
func (s *Scene) Watch(ctx context.Context, attr *theme.Attribute) {
	ch, cancel := attr.Subscribe()
	defer cancel()
	if th := attr.Get(); th != s.Theme() {
		s.SetTheme(th)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case th, ok := <-ch:
			if !ok {
				return
			}
			s.SetTheme(th)
		}
	}
}

// Particles returns a copy of the particle set.
func (s *Scene) Particles() []Particle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.field.Particles()
}

// Ripples returns a copy of the active ripples.
func (s *Scene) Ripples() []Ripple {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ripples.Snapshot()
}

// Stats summarises the scene after the last frame.
type Stats struct {
	Theme       theme.Theme
	Width       float64
	Height      float64
	Frames      uint64
	Particles   int
	Ripples     int
	Connections int
	OutOfBounds int
}

// Stats returns a summary of the current state.
func (s *Scene) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.field.Bounds()
	st := Stats{
		Theme:       s.theme,
		Width:       w,
		Height:      h,
		Frames:      s.frames,
		Particles:   len(s.field.particles),
		Ripples:     s.ripples.Len(),
		Connections: s.field.connections,
	}
	for _, p := range s.field.particles {
		if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
			st.OutOfBounds++
		}
	}
	return st
}
