package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVirtualClock_Now(t *testing.T) {
	vc := NewVirtualClock(epoch)
	if got := vc.Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
}

func TestVirtualClock_Advance(t *testing.T) {
	vc := NewVirtualClock(epoch)
	vc.Advance(5 * time.Minute)

	want := epoch.Add(5 * time.Minute)
	if got := vc.Now(); !got.Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestVirtualClock_AdvanceMultiple(t *testing.T) {
	vc := NewVirtualClock(epoch)
	vc.Advance(1 * time.Hour)
	vc.Advance(30 * time.Minute)

	want := epoch.Add(90 * time.Minute)
	if got := vc.Now(); !got.Equal(want) {
		t.Errorf("Now() after multiple Advance = %v, want %v", got, want)
	}
}

func TestVirtualClock_AdvanceNegativePanics(t *testing.T) {
	vc := NewVirtualClock(epoch)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on negative advance")
		}
	}()
	vc.Advance(-1 * time.Second)
}

func TestVirtualClock_Set(t *testing.T) {
	vc := NewVirtualClock(epoch)
	target := epoch.Add(24 * time.Hour)
	vc.Set(target)

	if got := vc.Now(); !got.Equal(target) {
		t.Errorf("Now() after Set = %v, want %v", got, target)
	}
}

func TestVirtualClock_SetPastPanics(t *testing.T) {
	vc := NewVirtualClock(epoch)
	vc.Advance(time.Hour)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on set to past")
		}
	}()
	vc.Set(epoch)
}

func TestVirtualClock_Since(t *testing.T) {
	vc := NewVirtualClock(epoch)
	mark := vc.Now()
	vc.Advance(42 * time.Millisecond)

	if got := vc.Since(mark); got != 42*time.Millisecond {
		t.Errorf("Since() = %v, want 42ms", got)
	}
}

func TestVirtualClock_ConcurrentAccess(t *testing.T) {
	vc := NewVirtualClock(epoch)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			vc.Advance(time.Millisecond)
		}()
		go func() {
			defer wg.Done()
			_ = vc.Now()
		}()
	}
	wg.Wait()

	want := epoch.Add(10 * time.Millisecond)
	if got := vc.Now(); !got.Equal(want) {
		t.Errorf("Now() after concurrent advances = %v, want %v", got, want)
	}
}

func TestRealClock_Since(t *testing.T) {
	rc := NewRealClock()
	mark := rc.Now()
	if got := rc.Since(mark); got < 0 {
		t.Errorf("Since() = %v, want non-negative", got)
	}
}
