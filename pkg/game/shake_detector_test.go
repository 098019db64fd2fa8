package game

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"
)

func TestAccelerationMagnitude(t *testing.T) {
	a := Acceleration{X: 1, Y: 2, Z: 2}
	if got := a.Magnitude(); math.Abs(got-3) > 1e-9 {
		t.Errorf("Magnitude() = %v, want 3", got)
	}
}

func TestShakeDetectorThreshold(t *testing.T) {
	tests := []struct {
		name   string
		sample Acceleration
		want   bool
	}{
		{"resting", Acceleration{Z: 1}, false},
		{"exactly threshold", Acceleration{X: 2.5}, false},
		{"just above", Acceleration{X: 2.51}, true},
		{"combined axes", Acceleration{X: 2, Y: 2, Z: 1}, true},
		{"negative axes", Acceleration{X: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewShakeDetector(2.5)
			got := d.Feed(tt.sample)
			if got != tt.want {
				t.Errorf("Feed(%+v) = %v, want %v", tt.sample, got, tt.want)
			}
			if d.Detected() != tt.want {
				t.Errorf("Detected() = %v, want %v", d.Detected(), tt.want)
			}
		})
	}
}

func TestShakeDetectorLevelSignal(t *testing.T) {
	d := NewShakeDetector(2.5)

	if d.Detected() {
		t.Fatal("signal should start false")
	}

	if !d.Feed(Acceleration{X: 3}) {
		t.Fatal("first shake should trigger")
	}
	// 已置位时不会再次触发，也不会多出通知
	if d.Feed(Acceleration{X: 4}) {
		t.Error("second shake while detected should not trigger again")
	}
	if !d.Detected() {
		t.Error("signal should stay true until Reset")
	}

	select {
	case <-d.Events():
	default:
		t.Fatal("expected one pending event")
	}
	select {
	case <-d.Events():
		t.Fatal("expected exactly one pending event")
	default:
	}

	d.Reset()
	if d.Detected() {
		t.Error("Reset should clear the signal")
	}
	if !d.Feed(Acceleration{X: 3}) {
		t.Error("shake after Reset should trigger again")
	}
}

func TestShakeDetectorResetDrainsStaleEvent(t *testing.T) {
	d := NewShakeDetector(2.5)
	d.Feed(Acceleration{Y: 5})
	d.Reset()

	select {
	case <-d.Events():
		t.Error("Reset should drain the stale event")
	default:
	}
}

func TestShakeDetectorConcurrentFeed(t *testing.T) {
	d := NewShakeDetector(2.5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	triggers := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.Feed(Acceleration{X: 10}) {
				mu.Lock()
				triggers++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if triggers != 1 {
		t.Errorf("concurrent feeds triggered %d times, want 1", triggers)
	}
}

func TestShakeDetectorRunUnavailable(t *testing.T) {
	d := NewShakeDetector(2.5)

	err := d.Run(context.Background(), UnavailableSource{}, time.Millisecond)
	if !errors.Is(err, ErrSensorUnavailable) {
		t.Fatalf("Run() error = %v, want ErrSensorUnavailable", err)
	}
	if d.Detected() {
		t.Error("signal must stay false without a sensor")
	}

	if err := d.Run(context.Background(), nil, time.Millisecond); !errors.Is(err, ErrSensorUnavailable) {
		t.Errorf("Run(nil source) error = %v, want ErrSensorUnavailable", err)
	}
}

func TestShakeDetectorRunSamplesPushSource(t *testing.T) {
	d := NewShakeDetector(2.5)
	src := NewPushSource()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- d.Run(ctx, src, time.Millisecond)
	}()

	src.Push(0, 0, 1)
	src.Push(3, 0, 0)

	select {
	case <-d.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("shake was not detected from push source")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() after cancel = %v, want context.Canceled", err)
	}
}

func TestPushSourceReadOnce(t *testing.T) {
	src := NewPushSource()
	if _, ok := src.Read(); ok {
		t.Fatal("empty source should have no sample")
	}

	src.Push(1, 2, 3)
	got, ok := src.Read()
	if !ok || got != (Acceleration{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("Read() = %+v, %v", got, ok)
	}
	if _, ok := src.Read(); ok {
		t.Error("sample should only be read once")
	}
}
