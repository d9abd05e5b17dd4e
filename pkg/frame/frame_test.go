package frame

import (
	"testing"
	"time"
)

func TestLoopFiresOnce(t *testing.T) {
	var l Loop
	var got []time.Duration
	l.RequestFrame(func(ts time.Duration) { got = append(got, ts) })

	if n := l.Fire(16 * time.Millisecond); n != 1 {
		t.Fatalf("Fire ran %d callbacks, want 1", n)
	}
	if n := l.Fire(32 * time.Millisecond); n != 0 {
		t.Fatalf("second Fire ran %d callbacks, want 0", n)
	}
	if len(got) != 1 || got[0] != 16*time.Millisecond {
		t.Errorf("got %v", got)
	}
}

func TestLoopRequestDuringFire(t *testing.T) {
	var l Loop
	ticks := 0
	var tick Callback
	tick = func(time.Duration) {
		ticks++
		l.RequestFrame(tick)
	}
	l.RequestFrame(tick)

	for i := range 5 {
		l.Fire(time.Duration(i) * time.Millisecond)
	}
	if ticks != 5 {
		t.Errorf("ticks = %d, want 5", ticks)
	}
	if l.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", l.Pending())
	}
}

func TestLoopCancel(t *testing.T) {
	var l Loop
	ran := false
	h := l.RequestFrame(func(time.Duration) { ran = true })
	if h == 0 {
		t.Fatal("zero handle issued")
	}
	l.CancelFrame(h)
	l.CancelFrame(h)
	l.CancelFrame(12345)
	l.Fire(time.Millisecond)
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestLoopMonotonic(t *testing.T) {
	var l Loop
	var got time.Duration
	l.Fire(100 * time.Millisecond)
	l.RequestFrame(func(ts time.Duration) { got = ts })
	l.Fire(50 * time.Millisecond)
	if got != 100*time.Millisecond {
		t.Errorf("ts = %v, want 100ms", got)
	}
	if l.Now() != 100*time.Millisecond {
		t.Errorf("Now() = %v", l.Now())
	}
}
