package theme

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2024, 3, 1, hour, 30, 0, 0, time.Local)
}

func TestDefaultSchedule(t *testing.T) {
	for h := 0; h < 24; h++ {
		want := Day
		if h >= 18 || h <= 6 {
			want = Night
		}
		if got := DefaultSchedule.At(at(h)); got != want {
			t.Errorf("hour %d: got %s, want %s", h, got, want)
		}
	}
}

func TestScheduleWithoutWrap(t *testing.T) {
	s := Schedule{NightStart: 1, NightEnd: 4}
	if s.At(at(2)) != Night {
		t.Error("expected night at 02:30")
	}
	if s.At(at(5)) != Day {
		t.Error("expected day at 05:30")
	}
}

func TestParse(t *testing.T) {
	if th, err := Parse("night"); err != nil || th != Night {
		t.Errorf("Parse(night) = %q, %v", th, err)
	}
	if _, err := Parse("dusk"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestSetNotifiesOnlyOnChange(t *testing.T) {
	a := NewAttribute(Day)
	ch, cancel := a.Subscribe()
	defer cancel()

	if a.Set(Day) {
		t.Error("Set of unchanged value reported a change")
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected notification %q", v)
	default:
	}

	if !a.Set(Night) {
		t.Error("Set(Night) reported no change")
	}
	select {
	case v := <-ch:
		if v != Night {
			t.Errorf("got %q, want night", v)
		}
	default:
		t.Fatal("expected a notification")
	}
	if a.Get() != Night {
		t.Errorf("Get() = %q", a.Get())
	}
}

func TestSlowSubscriberSeesLatest(t *testing.T) {
	a := NewAttribute(Day)
	ch, cancel := a.Subscribe()
	defer cancel()

	a.Set(Night)
	a.Set(Day)
	a.Set(Night)

	if v := <-ch; v != Night {
		t.Errorf("got %q, want latest value night", v)
	}
}

func TestCancelClosesChannel(t *testing.T) {
	a := NewAttribute(Day)
	ch, cancel := a.Subscribe()
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("expected closed channel")
	}
	a.Set(Night) // must not panic on a closed subscriber
}

func TestFollowAppliesSchedule(t *testing.T) {
	a := NewAttribute(Day)
	var hour atomic.Int32
	hour.Store(20)
	now := func() time.Time { return at(int(hour.Load())) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Follow(ctx, a, DefaultSchedule, now, time.Millisecond)
		close(done)
	}()

	deadline := time.After(time.Second)
	for a.Get() != Night {
		select {
		case <-deadline:
			t.Fatal("theme never switched to night")
		case <-time.After(time.Millisecond):
		}
	}

	hour.Store(12)
	for a.Get() != Day {
		select {
		case <-deadline:
			t.Fatal("theme never switched back to day")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	<-done
}
