// Package telemetry provides lock-free accumulators for aggregating
// per-run metrics across concurrent experiment workers (spec.md §5's
// "averaged over instances" reporting).
package telemetry

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Float64 encapsulates a float64 for non-locking atomic accumulation, the
// same compare-and-swap retry shape as the teacher's atomic_float package,
// adapted here for experiment-runner metric sums instead of value-function
// updates.
type Float64 struct {
	val float64
}

// Read atomically reads the current value.
func (f *Float64) Read() float64 {
	bits := atomic.LoadUint64((*uint64)(unsafe.Pointer(&f.val)))
	return math.Float64frombits(bits)
}

// Add atomically adds addend, retrying on concurrent writers until the
// compare-and-swap succeeds.
func (f *Float64) Add(addend float64) float64 {
	for {
		old := f.Read()
		newVal := old + addend
		if atomic.CompareAndSwapUint64(
			(*uint64)(unsafe.Pointer(&f.val)),
			math.Float64bits(old),
			math.Float64bits(newVal),
		) {
			return newVal
		}
	}
}

// Stats accumulates the six scalar objective-evaluator metrics across many
// concurrent runs, plus a count, so an experiment worker pool can report a
// running mean without a mutex around a struct.
type Stats struct {
	Makespan  Float64
	Tardiness Float64
	Energy    Float64
	AvgWIP    Float64
	Objective Float64
	Decisions Float64
	count     int64
}

// Add folds one run's metrics into the running totals. Safe for concurrent
// callers.
func (s *Stats) Add(makespan, tardiness, decisions int, energy, avgWIP, objective float64) {
	s.Makespan.Add(float64(makespan))
	s.Tardiness.Add(float64(tardiness))
	s.Energy.Add(energy)
	s.AvgWIP.Add(avgWIP)
	s.Objective.Add(objective)
	s.Decisions.Add(float64(decisions))
	atomic.AddInt64(&s.count, 1)
}

// Count returns the number of runs folded in so far.
func (s *Stats) Count() int64 { return atomic.LoadInt64(&s.count) }

// Mean reduces the accumulated totals to per-run averages. Returns the zero
// value if no runs have been added.
func (s *Stats) Mean() (makespan, tardiness, decisions, energy, avgWIP, objective float64) {
	n := float64(s.Count())
	if n == 0 {
		return 0, 0, 0, 0, 0, 0
	}
	return s.Makespan.Read() / n,
		s.Tardiness.Read() / n,
		s.Decisions.Read() / n,
		s.Energy.Read() / n,
		s.AvgWIP.Read() / n,
		s.Objective.Read() / n
}
