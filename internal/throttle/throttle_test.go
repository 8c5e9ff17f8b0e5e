package throttle

import (
	"context"
	"errors"
	"testing"
	"time"
)

// tolerance absorbs timer granularity on slow CI machines.
const tolerance = 5 * time.Millisecond

func TestLimiter_Disabled(t *testing.T) {
	t.Parallel()
	l := New(0)
	start := time.Now()
	for i := 0; i < 50; i++ {
		if d, err := l.Wait(context.Background()); err != nil || d != 0 {
			t.Fatalf("disabled limiter waited %v (err=%v)", d, err)
		}
		l.Record()
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Fatalf("disabled limiter took %v", time.Since(start))
	}
	if l.Rate() != 0 || l.Interval() != 0 {
		t.Fatalf("unexpected rate/interval: %v %v", l.Rate(), l.Interval())
	}
}

func TestLimiter_SpacesConsecutiveWaits(t *testing.T) {
	t.Parallel()
	l := New(20) // 50ms interval
	var stamps []time.Time
	for i := 0; i < 4; i++ {
		if _, err := l.Wait(context.Background()); err != nil {
			t.Fatalf("wait: %v", err)
		}
		stamps = append(stamps, time.Now())
	}
	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < l.Interval()-tolerance {
			t.Fatalf("gap %d = %v, want >= %v", i, gap, l.Interval())
		}
	}
}

func TestLimiter_FirstWaitIsImmediate(t *testing.T) {
	t.Parallel()
	l := New(1)
	if d, err := l.Wait(context.Background()); err != nil || d != 0 {
		t.Fatalf("first wait slept %v (err=%v)", d, err)
	}
}

func TestLimiter_RecordPushesNextWait(t *testing.T) {
	t.Parallel()
	l := New(10) // 100ms interval
	if _, err := l.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	time.Sleep(120 * time.Millisecond)
	// A retry dispatched now must delay the next throttled call.
	l.Record()
	recorded := time.Now()
	if _, err := l.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if gap := time.Since(recorded); gap < l.Interval()-tolerance {
		t.Fatalf("wait after Record returned after %v, want >= %v", gap, l.Interval())
	}
}

func TestLimiter_WaitHonoursContext(t *testing.T) {
	t.Parallel()
	l := New(0.5) // 2s interval
	if _, err := l.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestLimiter_SetRate(t *testing.T) {
	t.Parallel()
	l := New(3)
	if l.Interval() != time.Second/3 {
		t.Fatalf("interval = %v", l.Interval())
	}
	l.SetRate(-1)
	if l.Rate() != 0 {
		t.Fatalf("negative rate not treated as disabled: %v", l.Rate())
	}
	if d := l.Delay(); d != 0 {
		t.Fatalf("disabled limiter reports delay %v", d)
	}
}
