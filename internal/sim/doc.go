// Package sim schedules the plasma model over simulated time.
//
// Two repeating activities share one scheduler:
//
//   - the main loop, driven by an external frame source calling
//     [Scheduler.Tick], which recomputes the physics every
//     [RecomputeEvery] steps and merely advances the clock otherwise
//   - the lunar-cycle sweep ([Scheduler.RunLunarCycle]), a self-
//     terminating wall-clock timer that walks the lunar phase through
//     one full cycle without forcing any recompute
//
// All shared state lives behind one mutex, so a published snapshot is
// always a complete record. A sweep-driven phase change is picked up by
// the next recompute boundary the main loop reaches; if the loop is
// stopped the results simply go stale until it runs again.
//
// The cadence itself is the pure function [Step], which threads clock,
// parameters and results through explicitly and can be exercised
// without timers.
package sim
