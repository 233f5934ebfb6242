package sched

import (
	"sync"
	"time"
)

const (
	// DefaultInterval is the pause between idle slices.
	DefaultInterval = 4 * time.Millisecond

	// DefaultBudget is the time budget granted per slice.
	DefaultBudget = 8 * time.Millisecond
)

// FrameScheduler produces idle slices on a background goroutine at a
// fixed cadence, each with a wall-clock budget. It approximates a
// browser's idle callback for headless use.
type FrameScheduler struct {
	interval time.Duration
	budget   time.Duration

	mu      sync.Mutex
	pending func(Deadline)

	stop    chan struct{}
	stopped sync.Once
}

// FrameOption configures a FrameScheduler.
type FrameOption func(*FrameScheduler)

// WithInterval sets the pause between slices.
func WithInterval(d time.Duration) FrameOption {
	return func(s *FrameScheduler) { s.interval = d }
}

// WithBudget sets the per-slice time budget.
func WithBudget(d time.Duration) FrameOption {
	return func(s *FrameScheduler) { s.budget = d }
}

// NewFrameScheduler creates and starts a frame scheduler.
// Call Stop when done.
func NewFrameScheduler(opts ...FrameOption) *FrameScheduler {
	s := &FrameScheduler{
		interval: DefaultInterval,
		budget:   DefaultBudget,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.loop()
	return s
}

// RequestIdle implements Scheduler.
func (s *FrameScheduler) RequestIdle(cb func(Deadline)) {
	s.mu.Lock()
	s.pending = cb
	s.mu.Unlock()
}

// Stop shuts the scheduler down. Pending callbacks are dropped.
func (s *FrameScheduler) Stop() {
	s.stopped.Do(func() { close(s.stop) })
}

func (s *FrameScheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			cb := s.pending
			s.pending = nil
			s.mu.Unlock()

			if cb != nil {
				cb(frameDeadline{end: time.Now().Add(s.budget)})
			}
		}
	}
}
