package sim

import (
	"sync"
	"time"

	"github.com/elverum/plasmalab/internal/physics"
)

// RecomputeEvery throttles the physics evaluation: the full coupling
// chain runs only on ticks whose step counter is a multiple of this,
// other ticks just advance the clock.
const RecomputeEvery = 5

// RunState is the main loop state.
type RunState int

const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Clock tracks simulated time: Tick counts scheduling opportunities,
// Step counts in lockstep and drives the recompute cadence. Both reset
// to zero only on an explicit reset.
type Clock struct {
	Tick uint64
	Step uint64
}

// Step advances the clock by one tick and recomputes the results when
// the cadence lands on a recompute boundary (step 0, 5, 10, ...). It is
// a pure function over its inputs: callers own the state and thread it
// through explicitly, which keeps the cadence testable without any
// timer harness.
func Step(c Clock, p physics.Parameters, prev physics.Results) (Clock, physics.Results, bool) {
	recompute := c.Step%RecomputeEvery == 0
	out := prev
	if recompute {
		out = physics.Evaluate(p)
	}
	c.Step++
	c.Tick++
	return c, out, recompute
}

// Observer receives each freshly recomputed results record.
type Observer interface {
	Observe(r physics.Results, tick uint64)
}

// Scheduler owns the parameters, results and clock, and serializes all
// mutation behind one mutex so every published snapshot is a complete
// record: readers see the old results or the new ones, never a blend.
// The main loop and the lunar sweep are the only writers; the sweep
// mutates the lunar phase only, and its change is visible to the very
// next recompute (the evaluator reads parameters under the same lock).
type Scheduler struct {
	mu         sync.Mutex
	state      RunState
	clock      Clock
	params     physics.Parameters
	results    physics.Results
	recomputes uint64
	observers  []Observer

	sweepCancel   chan struct{}
	sweepDone     chan struct{}
	sweepInterval time.Duration
}

// NewScheduler seeds the scheduler with one initial evaluation so
// consumers always have a complete results record, even before the
// first tick. The initial evaluation does not count against the
// recompute cadence.
func NewScheduler(p physics.Parameters) *Scheduler {
	return &Scheduler{
		params:        p,
		results:       physics.Evaluate(p),
		sweepInterval: SweepInterval,
	}
}

func (s *Scheduler) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Start transitions the main loop to Running. Idempotent.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Running
}

// Pause transitions the main loop to Stopped without touching the clock.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Stopped
}

// Toggle flips between Running and Stopped and reports the new state.
func (s *Scheduler) Toggle() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		s.state = Stopped
	} else {
		s.state = Running
	}
	return s.state
}

// Reset stops the main loop and zeroes the clock and recompute counter.
// Parameters and the last published results survive a reset.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Stopped
	s.clock = Clock{}
	s.recomputes = 0
}

// Tick is the frame callback: it advances one tick iff the main loop is
// running. It reports whether a recompute happened on this tick.
func (s *Scheduler) Tick() bool {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return false
	}
	clock, results, recomputed := Step(s.clock, s.params, s.results)
	s.clock = clock
	s.results = results
	if recomputed {
		s.recomputes++
	}
	observers := s.observers
	tick := s.clock.Tick
	s.mu.Unlock()

	if recomputed {
		for _, o := range observers {
			o.Observe(results, tick)
		}
	}
	return recomputed
}

// State reports the main loop state.
func (s *Scheduler) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Clock returns the current clock snapshot.
func (s *Scheduler) Clock() Clock {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// Recomputes reports how many evaluations have run since the last reset,
// not counting the seed evaluation at construction.
func (s *Scheduler) Recomputes() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomputes
}

// Results returns the last published results record.
func (s *Scheduler) Results() physics.Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Params returns a copy of the current parameters.
func (s *Scheduler) Params() physics.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetParams replaces the parameter record wholesale. The change takes
// effect at the next recompute boundary; no evaluation is forced.
func (s *Scheduler) SetParams(p physics.Parameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
}

// SetParam adjusts one named parameter, clamped to its documented range.
func (s *Scheduler) SetParam(name string, v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.params.SetParam(name, v); err != nil {
		return err
	}
	s.params = s.params.Clamp()
	return nil
}
