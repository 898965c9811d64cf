package game

import "time"

// Timer is the single countdown shared by the game's current match.
// RemainingSeconds is the value captured at the last start or pause;
// while running the live value is derived from StartedAt.
type Timer struct {
	DurationSeconds  int
	RemainingSeconds int
	StartedAt        *time.Time
	Running          bool
}

func NewTimer(duration time.Duration) Timer {
	seconds := int(duration / time.Second)
	if seconds <= 0 {
		seconds = int(DefaultMatchDuration / time.Second)
	}
	return Timer{DurationSeconds: seconds, RemainingSeconds: seconds}
}

func (t Timer) Remaining(now time.Time) int {
	if !t.Running || t.StartedAt == nil {
		return t.RemainingSeconds
	}
	elapsed := int(now.Sub(*t.StartedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}
	left := t.RemainingSeconds - elapsed
	if left < 0 {
		return 0
	}
	return left
}

func (t Timer) Expired(now time.Time) bool {
	return t.Running && t.Remaining(now) <= 0
}

// Start resumes the countdown; an exhausted timer starts over from full duration.
func (t Timer) Start(now time.Time) Timer {
	if t.Running {
		return t
	}
	if t.RemainingSeconds <= 0 {
		t.RemainingSeconds = t.DurationSeconds
	}
	startedAt := now
	t.StartedAt = &startedAt
	t.Running = true
	return t
}

func (t Timer) Pause(now time.Time) Timer {
	t.RemainingSeconds = t.Remaining(now)
	t.StartedAt = nil
	t.Running = false
	return t
}

// Reset stops the timer with a full duration on the clock.
func (t Timer) Reset() Timer {
	t.RemainingSeconds = t.DurationSeconds
	t.StartedAt = nil
	t.Running = false
	return t
}

// Restart puts a full duration on the clock and starts it immediately.
func (t Timer) Restart(now time.Time) Timer {
	return t.Reset().Start(now)
}
