package sched

// ManualScheduler is a test double: slices happen only when the test
// calls Step, with whatever deadline the test scripts.
type ManualScheduler struct {
	pending func(Deadline)
}

// NewManualScheduler creates a manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// RequestIdle implements Scheduler.
func (s *ManualScheduler) RequestIdle(cb func(Deadline)) {
	s.pending = cb
}

// HasPending reports whether a callback is waiting for a slice.
func (s *ManualScheduler) HasPending() bool {
	return s.pending != nil
}

// Step runs the pending callback with the given deadline and reports
// whether one ran.
func (s *ManualScheduler) Step(d Deadline) bool {
	cb := s.pending
	if cb == nil {
		return false
	}
	s.pending = nil
	cb(d)
	return true
}

// RunUntilIdle steps with unlimited budget until maxSlices is reached or
// the callback stops re-registering work. It returns the number of
// slices consumed.
//
// The engine re-requests a slice after every slice, so "idle" here means
// the caller-decided slice cap, not the absence of a pending callback;
// tests use the returned count plus engine state to assert quiescence.
func (s *ManualScheduler) RunUntilIdle(maxSlices int) int {
	ran := 0
	for ran < maxSlices && s.Step(Forever()) {
		ran++
	}
	return ran
}
