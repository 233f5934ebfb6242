// Package sched provides the idle-time scheduling primitive the fiber
// engine yields to. The engine requests one slice at a time and
// re-requests after every slice it consumes; how slices are produced is
// up to the Scheduler implementation.
package sched

import "time"

// Deadline reports the time budget remaining in the current idle slice.
type Deadline interface {
	TimeRemaining() time.Duration
}

// Scheduler hands out idle slices. RequestIdle registers a callback to
// run in the next slice; at most one callback is pending at a time, and
// a new registration replaces the old one.
type Scheduler interface {
	RequestIdle(cb func(Deadline))
}

// DeadlineFunc adapts a function to the Deadline interface.
type DeadlineFunc func() time.Duration

// TimeRemaining implements Deadline.
func (f DeadlineFunc) TimeRemaining() time.Duration {
	return f()
}

// Forever returns a deadline that never expires. Useful for tests and
// one-shot synchronous runs.
func Forever() Deadline {
	return DeadlineFunc(func() time.Duration { return time.Hour })
}

// Countdown returns a deadline whose budget survives exactly n
// TimeRemaining calls and reports zero afterwards. It scripts the
// "yield after N units" behavior in tests.
func Countdown(n int) Deadline {
	remaining := n
	return DeadlineFunc(func() time.Duration {
		if remaining <= 0 {
			return 0
		}
		remaining--
		return time.Second
	})
}

// frameDeadline expires at a fixed wall-clock instant.
type frameDeadline struct {
	end time.Time
}

func (d frameDeadline) TimeRemaining() time.Duration {
	if rem := time.Until(d.end); rem > 0 {
		return rem
	}
	return 0
}
