package timeutil_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/ghettovoice/sipsub/internal/timeutil"
)

func TestTimer_Fires(t *testing.T) {
	t.Parallel()

	fired := make(chan struct{})
	tmr := timeutil.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}
	if got := tmr.State(); got != timeutil.TimerStateExpired {
		t.Errorf("tmr.State() = %q, want %q", got, timeutil.TimerStateExpired)
	}
	if got := tmr.Left(); got != 0 {
		t.Errorf("tmr.Left() = %v, want 0", got)
	}
	if tmr.Stop() {
		t.Error("tmr.Stop() = true after expiration, want false")
	}
}

func TestTimer_Stop(t *testing.T) {
	t.Parallel()

	var fires atomic.Int32
	tmr := timeutil.AfterFunc(50*time.Millisecond, func() { fires.Add(1) })

	if !tmr.Stop() {
		t.Fatal("tmr.Stop() = false, want true")
	}
	if got := tmr.State(); got != timeutil.TimerStateStopped {
		t.Errorf("tmr.State() = %q, want %q", got, timeutil.TimerStateStopped)
	}
	if tmr.Stop() {
		t.Error("second tmr.Stop() = true, want false")
	}

	time.Sleep(150 * time.Millisecond)
	if got := fires.Load(); got != 0 {
		t.Errorf("fires = %d, want 0 after Stop", got)
	}
}

func TestTimer_ResetCancelsPendingFire(t *testing.T) {
	t.Parallel()

	var fires atomic.Int32
	done := make(chan struct{})
	tmr := timeutil.AfterFunc(20*time.Millisecond, func() {
		if fires.Add(1) == 1 {
			close(done)
		}
	})

	// each re-arm invalidates the previous schedule
	tmr.Reset(20 * time.Millisecond)
	tmr.Reset(20 * time.Millisecond)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire after Reset")
	}
	time.Sleep(100 * time.Millisecond)
	if got := fires.Load(); got != 1 {
		t.Errorf("fires = %d, want 1", got)
	}
}

func TestTimer_ResetAfterExpiration(t *testing.T) {
	t.Parallel()

	fired := make(chan struct{}, 2)
	tmr := timeutil.AfterFunc(10*time.Millisecond, func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}

	tmr.Reset(10 * time.Millisecond)
	if got := tmr.State(); got != timeutil.TimerStateRunning {
		t.Errorf("tmr.State() = %q, want %q after Reset", got, timeutil.TimerStateRunning)
	}
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire after Reset")
	}
}

func TestTimer_Left(t *testing.T) {
	t.Parallel()

	tmr := timeutil.AfterFunc(time.Hour, func() {})
	defer tmr.Stop()

	if got := tmr.Duration(); got != time.Hour {
		t.Errorf("tmr.Duration() = %v, want %v", got, time.Hour)
	}
	if got := tmr.Left(); got <= 0 || got > time.Hour {
		t.Errorf("tmr.Left() = %v, want in (0, %v]", got, time.Hour)
	}

	tmr.Stop()
	if got := tmr.Left(); got != 0 {
		t.Errorf("tmr.Left() = %v, want 0 after Stop", got)
	}
}

func TestTimer_NilReceiver(t *testing.T) {
	t.Parallel()

	var tmr *timeutil.Timer
	if tmr.Stop() {
		t.Error("nil tmr.Stop() = true, want false")
	}
	if got := tmr.Left(); got != 0 {
		t.Errorf("nil tmr.Left() = %v, want 0", got)
	}
	if got := tmr.Duration(); got != 0 {
		t.Errorf("nil tmr.Duration() = %v, want 0", got)
	}
	if got := tmr.State(); got != "" {
		t.Errorf("nil tmr.State() = %q, want %q", got, "")
	}
	tmr.Reset(time.Second)
}
