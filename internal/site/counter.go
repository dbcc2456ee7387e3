package site

import (
	"context"
	"math"
	"time"
)

const (
	CounterDuration = 2 * time.Second
	CounterTick     = 16 * time.Millisecond
)

// Counter steps a displayed number from zero up to Target. Each tick adds
// Target/(duration/tick); the shown value is floored and stops at Target.
type Counter struct {
	Target  int
	step    float64
	current float64
	done    bool
}

// NewCounter creates a counter for target.
func NewCounter(target int) *Counter {
	ticks := float64(CounterDuration) / float64(CounterTick)
	return &Counter{Target: target, step: float64(target) / ticks}
}

// Tick advances one step and returns the value to display.
func (c *Counter) Tick() (value int, done bool) {
	if c.done {
		return c.Target, true
	}
	c.current += c.step
	if c.current >= float64(c.Target) {
		c.current = float64(c.Target)
		c.done = true
	}
	return int(math.Floor(c.current)), c.done
}

// Frames returns every displayed value until the target is reached.
func (c *Counter) Frames() []int {
	var out []int
	for {
		v, done := c.Tick()
		out = append(out, v)
		if done {
			return out
		}
	}
}

// Animate ticks c every CounterTick, calling show with each value, until the
// target is reached or ctx ends.
func (c *Counter) Animate(ctx context.Context, show func(int)) error {
	t := time.NewTicker(CounterTick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			v, done := c.Tick()
			show(v)
			if done {
				return nil
			}
		}
	}
}
