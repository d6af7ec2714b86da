package core

import "time"

// TimerMode controls what happens when a timer reaches its duration
type TimerMode int

const (
	// TimerOnce stops at the duration and stays finished
	TimerOnce TimerMode = iota
	// TimerRepeating wraps around and keeps ticking
	TimerRepeating
)

// Timer tracks elapsed time against a fixed duration
// Tick must be called once per frame with the frame delta
type Timer struct {
	Duration     time.Duration
	Elapsed      time.Duration
	Mode         TimerMode
	finished     bool
	justFinished bool
}

// NewTimer creates a timer with the given duration and mode
func NewTimer(duration time.Duration, mode TimerMode) Timer {
	return Timer{Duration: duration, Mode: mode}
}

// Tick advances the timer by dt
func (t *Timer) Tick(dt time.Duration) {
	t.justFinished = false

	if t.Mode == TimerOnce && t.finished {
		return
	}

	t.Elapsed += dt
	if t.Elapsed >= t.Duration {
		t.justFinished = true
		t.finished = true
		if t.Mode == TimerRepeating {
			if t.Duration > 0 {
				t.Elapsed = t.Elapsed % t.Duration
			} else {
				t.Elapsed = 0
			}
			t.finished = false
		} else {
			t.Elapsed = t.Duration
		}
	}
}

// Finished reports whether the timer has reached its duration
// Repeating timers only report true on the crossing tick
func (t *Timer) Finished() bool {
	if t.Mode == TimerRepeating {
		return t.justFinished
	}
	return t.finished
}

// JustFinished reports whether the timer crossed its duration on the last Tick
func (t *Timer) JustFinished() bool {
	return t.justFinished
}

// Reset rewinds the timer to zero
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
	t.justFinished = false
}

// SetDuration replaces the timer duration without resetting elapsed time
func (t *Timer) SetDuration(d time.Duration) {
	t.Duration = d
}
