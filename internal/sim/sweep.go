package sim

import (
	"time"

	"github.com/elverum/plasmalab/internal/physics"
)

// Lunar-cycle sweep: a time-boxed activity that walks the lunar phase
// through one full cycle, independent of the main loop. It mutates the
// parameter only — results refresh on the main loop's own cadence, or
// stay stale if the loop is stopped. That staleness is intended.
const (
	SweepTicks    = 300
	SweepInterval = 100 * time.Millisecond
)

// sweepPhase is the phase after sweep tick i (1..SweepTicks) for a sweep
// started at phase start: a linear walk from start to start+1, folded
// back into [0,1) at every step since the phase is cyclic.
func sweepPhase(start float64, i int) float64 {
	return physics.WrapPhase(start + float64(i)/SweepTicks)
}

// RunLunarCycle starts a lunar-cycle sweep on its own wall-clock timer.
// An in-flight sweep is cancelled first, so at most one sweep mutates
// the phase at a time. The sweep self-terminates after SweepTicks ticks,
// with the phase back at its start value modulo one cycle.
func (s *Scheduler) RunLunarCycle() {
	s.CancelLunarCycle()

	s.mu.Lock()
	start := s.params.LunarPhase
	cancel := make(chan struct{})
	done := make(chan struct{})
	s.sweepCancel = cancel
	s.sweepDone = done
	interval := s.sweepInterval
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for i := 1; i <= SweepTicks; i++ {
			select {
			case <-cancel:
				return
			case <-ticker.C:
				s.mu.Lock()
				s.params.LunarPhase = sweepPhase(start, i)
				s.mu.Unlock()
			}
		}
	}()
}

// CancelLunarCycle stops an in-flight sweep and waits for its timer
// goroutine to exit. No-op when no sweep is active.
func (s *Scheduler) CancelLunarCycle() {
	s.mu.Lock()
	cancel, done := s.sweepCancel, s.sweepDone
	s.sweepCancel, s.sweepDone = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	close(cancel)
	<-done
}

// SweepActive reports whether a sweep is still running.
func (s *Scheduler) SweepActive() bool {
	s.mu.Lock()
	done := s.sweepDone
	s.mu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// WaitSweep blocks until the current sweep finishes or the timeout
// elapses. It reports whether the sweep completed.
func (s *Scheduler) WaitSweep(timeout time.Duration) bool {
	s.mu.Lock()
	done := s.sweepDone
	s.mu.Unlock()

	if done == nil {
		return true
	}
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
