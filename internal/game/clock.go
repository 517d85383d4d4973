package game

import "time"

// интервалы гравитации по уровням, дальше последнего не ускоряемся
var gravityIntervals = []time.Duration{
	880 * time.Millisecond,
	820 * time.Millisecond,
	750 * time.Millisecond,
	680 * time.Millisecond,
	620 * time.Millisecond,
	550 * time.Millisecond,
	470 * time.Millisecond,
	370 * time.Millisecond,
	270 * time.Millisecond,
	180 * time.Millisecond,
	150 * time.Millisecond,
	130 * time.Millisecond,
	120 * time.Millisecond,
	100 * time.Millisecond,
	100 * time.Millisecond,
	80 * time.Millisecond,
	80 * time.Millisecond,
	80 * time.Millisecond,
	70 * time.Millisecond,
	70 * time.Millisecond,
}

// GravityInterval returns the delay between gravity steps for a level.
func GravityInterval(level int) time.Duration {
	if level < 0 {
		level = 0
	}
	if level >= len(gravityIntervals) {
		level = len(gravityIntervals) - 1
	}
	return gravityIntervals[level]
}

// Clock turns elapsed host time into gravity steps for a session.
// Once the accumulated time exceeds the current interval it runs exactly one
// step and drops the accumulator to zero; the overshoot is discarded.
// Nothing accumulates while the session is paused or over.
type Clock struct {
	session *Session
	acc     time.Duration
	last    time.Time
}

func NewClock(session *Session) *Clock {
	return &Clock{session: session}
}

// Advance adds elapsed time. The bool is true when a gravity step ran.
func (c *Clock) Advance(elapsed time.Duration) (StepResult, bool) {
	if c.session.Status() != StatusRunning {
		c.Reset()
		return StepResult{}, false
	}

	c.acc += elapsed
	if c.acc > GravityInterval(c.session.Level()) {
		c.acc = 0
		return c.session.Tick(), true
	}
	return StepResult{}, false
}

// Frame is Advance for hosts that report the current time (timers, frame
// callbacks). The first frame after a reset or a pause only sets the baseline.
func (c *Clock) Frame(now time.Time) (StepResult, bool) {
	if c.session.Status() != StatusRunning {
		c.Reset()
		return StepResult{}, false
	}
	if c.last.IsZero() {
		c.last = now
		return StepResult{}, false
	}

	elapsed := now.Sub(c.last)
	c.last = now
	return c.Advance(elapsed)
}

// Reset forgets accumulated time, used on pause, game over and restart.
func (c *Clock) Reset() {
	c.acc = 0
	c.last = time.Time{}
}

func (c *Clock) Pending() time.Duration { return c.acc }
