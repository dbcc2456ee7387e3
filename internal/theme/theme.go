// Package theme selects the day or night look of the site and publishes it
// as a single observable attribute.
package theme

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Theme is the value of the document-level theme attribute.
type Theme string

const (
	Day   Theme = "day"
	Night Theme = "night"
)

// Parse converts a raw attribute value to a Theme.
func Parse(s string) (Theme, error) {
	switch Theme(s) {
	case Day, Night:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Schedule decides the theme from the local hour. Night covers hours from
// NightStart through NightEnd inclusive, wrapping midnight.
type Schedule struct {
	NightStart int
	NightEnd   int
}

// DefaultSchedule is night from 18:00 until 06:59.
var DefaultSchedule = Schedule{NightStart: 18, NightEnd: 6}

// At returns the theme for the given instant in its own location.
func (s Schedule) At(t time.Time) Theme {
	h := t.Hour()
	if s.NightStart > s.NightEnd {
		if h >= s.NightStart || h <= s.NightEnd {
			return Night
		}
		return Day
	}
	if h >= s.NightStart && h <= s.NightEnd {
		return Night
	}
	return Day
}

// Attribute holds the current theme and notifies subscribers when it changes.
type Attribute struct {
	mu     sync.RWMutex
	value  Theme
	nextID int
	subs   map[int]chan Theme
}

// NewAttribute returns an Attribute initialised to t.
func NewAttribute(t Theme) *Attribute {
	return &Attribute{value: t, subs: make(map[int]chan Theme)}
}

// Get returns the current theme.
func (a *Attribute) Get() Theme {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// Set updates the theme. Subscribers are notified only when the value
// actually changes; the return value reports whether it did.
func (a *Attribute) Set(t Theme) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.value == t {
		return false
	}
	a.value = t
	for _, ch := range a.subs {
		// Slow subscribers only need the latest value.
		select {
		case <-ch:
		default:
		}
		ch <- t
	}
	return true
}

// Subscribe returns a channel receiving every subsequent change and a
// function that cancels the subscription and closes the channel.
func (a *Attribute) Subscribe() (<-chan Theme, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextID
	a.nextID++
	ch := make(chan Theme, 1)
	a.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.mu.Lock()
			delete(a.subs, id)
			close(ch)
			a.mu.Unlock()
		})
	}
}

// Follow re-evaluates the schedule every interval and writes the result to
// the attribute until ctx is cancelled.
func Follow(ctx context.Context, a *Attribute, s Schedule, now func() time.Time, interval time.Duration) {
	a.Set(s.At(now()))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Set(s.At(now()))
		}
	}
}
