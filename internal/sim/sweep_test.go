package sim

import (
	"math"
	"testing"
	"time"

	"github.com/elverum/plasmalab/internal/physics"
)

func TestSweepPhaseFullCycle(t *testing.T) {
	start := 0.3
	for i := 1; i < SweepTicks; i++ {
		phase := sweepPhase(start, i)
		if phase < 0 || phase >= 1 {
			t.Fatalf("tick %d: phase %g outside [0,1)", i, phase)
		}
	}
	// After the full tick budget the phase is back where it started,
	// modulo one cycle.
	end := sweepPhase(start, SweepTicks)
	if math.Abs(end-start) > 1e-9 {
		t.Errorf("full sweep should return to start: got %g, want %g", end, start)
	}
}

func TestSweepPhaseLinear(t *testing.T) {
	q := sweepPhase(0, SweepTicks/4)
	if math.Abs(q-0.25) > 1e-9 {
		t.Errorf("quarter sweep from 0 should sit at 0.25, got %g", q)
	}
	h := sweepPhase(0.9, SweepTicks/2)
	if math.Abs(h-0.4) > 1e-9 {
		t.Errorf("half sweep from 0.9 should wrap to 0.4, got %g", h)
	}
}

func TestRunLunarCycleTerminates(t *testing.T) {
	s := NewScheduler(physics.DefaultParameters())
	s.sweepInterval = 100 * time.Microsecond

	s.RunLunarCycle()
	if !s.SweepActive() {
		t.Fatal("sweep should be active right after start")
	}
	if !s.WaitSweep(5 * time.Second) {
		t.Fatal("sweep did not terminate")
	}
	if s.SweepActive() {
		t.Error("sweep should report inactive after completion")
	}

	got := s.Params().LunarPhase
	if math.Abs(got-0) > 1e-9 {
		t.Errorf("phase should be back at its start value, got %g", got)
	}
}

func TestRunLunarCycleRunsWithoutMainLoop(t *testing.T) {
	s := NewScheduler(physics.DefaultParameters())
	s.sweepInterval = 100 * time.Microsecond
	before := s.Results()

	// Main loop stopped: the sweep still mutates the phase, and the
	// published results stay stale on purpose.
	s.RunLunarCycle()
	if !s.WaitSweep(5 * time.Second) {
		t.Fatal("sweep did not terminate")
	}
	if s.Results() != before {
		t.Error("sweep must not trigger a recompute by itself")
	}
}

func TestRunLunarCycleCancelsPrevious(t *testing.T) {
	s := NewScheduler(physics.DefaultParameters())
	s.sweepInterval = time.Hour // first sweep would never finish on its own

	s.RunLunarCycle()
	first := s.sweepDone

	s.sweepInterval = 100 * time.Microsecond
	s.RunLunarCycle()

	select {
	case <-first:
	default:
		t.Error("starting a new sweep should cancel the previous one")
	}
	if !s.WaitSweep(5 * time.Second) {
		t.Fatal("second sweep did not terminate")
	}
}

func TestCancelLunarCycleIdempotent(t *testing.T) {
	s := NewScheduler(physics.DefaultParameters())
	s.CancelLunarCycle() // nothing active

	s.sweepInterval = time.Hour
	s.RunLunarCycle()
	s.CancelLunarCycle()
	s.CancelLunarCycle()

	if s.SweepActive() {
		t.Error("sweep should be inactive after cancel")
	}
}
