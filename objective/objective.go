// Package objective computes the scalar multi-objective score from a
// finished (or in-flight) simulation run (spec.md §4.5).
package objective

import (
	"cerjssp/domain"
	"cerjssp/simulator"
)

// Result is the full set of metrics the evaluator reports: the four raw
// components and the weighted scalar objective.
type Result struct {
	Makespan  int
	Tardiness int
	Energy    float64
	AvgWIP    float64
	Decisions int
	Objective float64
}

// Evaluate reads state's accumulated metrics and combines them with inst's
// weights into a Result. finishTime is the run's makespan, state.FinishTime()
// (the latest job completion, not the clock); callers must have already
// called state.IntegrateTo(finishTime) so the WIP
// integral covers the whole run.
func Evaluate(state *simulator.State, inst *domain.Instance, finishTime int) Result {
	makespan := finishTime

	tardiness := 0
	for _, job := range inst.Jobs {
		ct, _ := state.CompletionTime(job.JobID)
		if over := ct - job.DueDate; over > 0 {
			tardiness += over
		}
	}

	avgWIP := 0.0
	if finishTime > 0 {
		avgWIP = state.WIPIntegral() / float64(finishTime)
	}

	energy := state.Energy()

	w := inst.Weights
	objective := w.Makespan*float64(makespan) +
		w.Tardiness*float64(tardiness) +
		w.Energy*energy +
		w.WIP*avgWIP

	return Result{
		Makespan:  makespan,
		Tardiness: tardiness,
		Energy:    energy,
		AvgWIP:    avgWIP,
		Decisions: state.Decisions(),
		Objective: objective,
	}
}
