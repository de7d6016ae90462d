package timeutil

import (
	"sync"
	"time"
)

// TimerState represents the current state of a timer.
type TimerState string

const (
	// TimerStateRunning indicates the timer is currently running.
	TimerStateRunning TimerState = "running"
	// TimerStateStopped indicates the timer was stopped before expiration.
	TimerStateStopped TimerState = "stopped"
	// TimerStateExpired indicates the timer has expired.
	TimerStateExpired TimerState = "expired"
)

// Timer is a one-shot timer that executes a callback on expiration.
// Unlike time.Timer it can be re-armed after it has expired or was stopped,
// and every re-arm invalidates any fire still pending from a previous arm.
// The callback runs on a background goroutine owned by the runtime timer,
// never on the goroutine that armed the timer.
type Timer struct {
	// mu protects concurrent access to all mutable fields.
	mu sync.Mutex
	// startTime is the timestamp when the timer was last armed.
	startTime time.Time
	// duration is the total duration the timer should run.
	duration time.Duration
	// state is the current state of the timer.
	state TimerState
	// gen counts arms; stale fires from earlier arms are discarded.
	gen uint64
	// callback is the function to execute when the timer expires.
	callback func()
	// realTimer is the underlying time.Timer driving the callback.
	realTimer *time.Timer
}

// AfterFunc creates a new Timer with the given duration and callback.
// The timer is armed immediately.
func AfterFunc(duration time.Duration, f func()) *Timer {
	t := &Timer{callback: f}
	t.mu.Lock()
	t.armUnsafe(duration)
	t.mu.Unlock()
	return t
}

// armUnsafe arms the timer. Caller must hold the mutex.
func (t *Timer) armUnsafe(duration time.Duration) {
	t.gen++
	gen := t.gen
	if t.realTimer != nil {
		t.realTimer.Stop()
	}
	t.startTime = time.Now()
	t.duration = duration
	t.state = TimerStateRunning
	t.realTimer = time.AfterFunc(duration, func() { t.fire(gen) })
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if t.state != TimerStateRunning || gen != t.gen {
		// stopped or re-armed after this fire was scheduled
		t.mu.Unlock()
		return
	}
	t.state = TimerStateExpired
	cb := t.callback
	t.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Reset re-arms the timer with the given duration, canceling any pending
// fire. It can be called in any state, including from within the callback.
func (t *Timer) Reset(duration time.Duration) {
	if t == nil {
		return
	}

	t.mu.Lock()
	t.armUnsafe(duration)
	t.mu.Unlock()
}

// Stop cancels the timer. It reports whether the call prevented a fire.
// Stopping an already stopped or expired timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TimerStateRunning {
		return false
	}
	t.state = TimerStateStopped
	if t.realTimer != nil {
		t.realTimer.Stop()
	}
	return true
}

// State returns the current timer state.
func (t *Timer) State() TimerState {
	if t == nil {
		return ""
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Duration returns the duration the timer was last armed with.
func (t *Timer) Duration() time.Duration {
	if t == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// Left returns the time remaining until the timer expires.
// Returns 0 if the timer is expired or stopped.
func (t *Timer) Left() time.Duration {
	if t == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TimerStateRunning {
		return 0
	}
	left := t.duration - time.Since(t.startTime)
	if left < 0 {
		return 0
	}
	return left
}
