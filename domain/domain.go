// Package domain holds the immutable problem representation for the
// circular-economy reentrant job-shop scheduling problem: jobs, operations,
// machines, maintenance windows, setup times and the objective weights.
// Nothing in this package is mutated once an Instance is constructed; the
// simulator package owns the mutable per-run state.
package domain

import "fmt"

// NoPreviousJob is the SetupKey.Prev sentinel meaning "the machine has not
// yet processed anything", i.e. Python's setup_times[(None, next, machine)].
const NoPreviousJob = -1

// Operation belongs to a job, carries a position index within that job, a
// positive processing time, a non-empty candidate-machine set, and a
// positive energy rate. Operations are immutable after construction.
type Operation struct {
	JobID             int
	OpIdx             int
	ProcTime          int
	CandidateMachines []int
	EnergyRate        float64
	// BatchGroup is reserved: the source data model declares it but no
	// scheduling rule reads it. Carried through generation, never scheduled on.
	BatchGroup *int
}

// Job has a unique ID, an ordered sequence of operations that must execute
// in index order on the job's own timeline, and a positive due date.
type Job struct {
	JobID      int
	Operations []Operation
	DueDate    int
}

// MaintenanceWindow is a half-open interval [Start, End) on a machine's
// timeline during which no processing may occur.
type MaintenanceWindow struct {
	Start int
	End   int
}

// Machine has a unique ID, a positive baseline energy rate, zero or more
// maintenance windows, and a breakdown probability in [0,1]. The mutable
// busy_until/last_job_id fields live in simulator.State, not here.
type Machine struct {
	MachineID     int
	EnergyRate    float64
	Maintenance   []MaintenanceWindow
	BreakdownProb float64
}

// SetupKey identifies a (previous job, next job, machine) triple. Prev is
// NoPreviousJob when the machine has not yet processed anything.
type SetupKey struct {
	Prev    int
	Next    int
	Machine int
}

// SetupTable maps a (prev, next, machine) triple to a non-negative setup
// time. When prev == next on the same machine, the setup time must be 0.
type SetupTable map[SetupKey]int

// Lookup returns the setup time for the triple, defaulting to 0 for an
// unlisted key (matching Python's dict.get(key, 0)).
func (t SetupTable) Lookup(prev, next, machine int) int {
	if prev == next && prev != NoPreviousJob {
		return 0
	}
	return t[SetupKey{Prev: prev, Next: next, Machine: machine}]
}

// Weights are the four non-negative scalars combining into the objective.
type Weights struct {
	Makespan  float64
	Tardiness float64
	Energy    float64
	WIP       float64
}

// DefaultWeights are the fixed weights the instance generator always uses.
var DefaultWeights = Weights{Makespan: 1.0, Tardiness: 0.7, Energy: 0.15, WIP: 0.4}

// Instance is the immutable tuple (jobs, machines, setup table, weights).
// It is never mutated by the simulator; share it by reference across runs.
type Instance struct {
	Jobs     []Job
	Machines []Machine
	Setups   SetupTable
	Weights  Weights
}

// ValidationError identifies the offending entity when Instance construction
// detects a malformed instance (spec.md §7: "fails fast with a diagnostic
// identifying the offending entity. Not recoverable.").
type ValidationError struct {
	Entity string // "job", "operation", "machine", or "instance"
	ID     int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("malformed %s %d: %s", e.Entity, e.ID, e.Reason)
}

// NewInstance validates and returns an Instance, or a *ValidationError
// identifying the first offending entity found. Validation order is jobs,
// then operations within each job, then machines; this order is not part
// of any external contract, only a deterministic scan order for tests.
func NewInstance(jobs []Job, machines []Machine, setups SetupTable, weights Weights) (*Instance, error) {
	if len(jobs) == 0 {
		return nil, &ValidationError{Entity: "instance", ID: -1, Reason: "no jobs"}
	}
	if len(machines) == 0 {
		return nil, &ValidationError{Entity: "instance", ID: -1, Reason: "no machines"}
	}

	for _, job := range jobs {
		if len(job.Operations) == 0 {
			return nil, &ValidationError{Entity: "job", ID: job.JobID, Reason: "no operations"}
		}
		if job.DueDate <= 0 {
			return nil, &ValidationError{Entity: "job", ID: job.JobID, Reason: "due date must be positive"}
		}
		for idx, op := range job.Operations {
			if op.OpIdx != idx {
				return nil, &ValidationError{Entity: "operation", ID: op.OpIdx, Reason: "op_idx is not dense within its job"}
			}
			if op.ProcTime <= 0 {
				return nil, &ValidationError{Entity: "operation", ID: op.OpIdx, Reason: "processing time must be positive"}
			}
			if len(op.CandidateMachines) == 0 {
				return nil, &ValidationError{Entity: "operation", ID: op.OpIdx, Reason: "empty candidate machine set"}
			}
			if op.EnergyRate <= 0 {
				return nil, &ValidationError{Entity: "operation", ID: op.OpIdx, Reason: "energy rate must be positive"}
			}
		}
	}

	for _, m := range machines {
		if m.EnergyRate <= 0 {
			return nil, &ValidationError{Entity: "machine", ID: m.MachineID, Reason: "energy rate must be positive"}
		}
		if m.BreakdownProb < 0 || m.BreakdownProb > 1 {
			return nil, &ValidationError{Entity: "machine", ID: m.MachineID, Reason: "breakdown probability out of [0,1]"}
		}
		for _, w := range m.Maintenance {
			if w.Start < 0 || w.End <= w.Start {
				return nil, &ValidationError{Entity: "machine", ID: m.MachineID, Reason: "malformed maintenance window"}
			}
		}
	}

	return &Instance{Jobs: jobs, Machines: machines, Setups: setups, Weights: weights}, nil
}

// RemainingWork sums the processing time of a job's unexecuted operations,
// starting from fromIdx. Used by the MWKR policy and the feature-weighted
// policy's mwkr/slack features.
func (j *Job) RemainingWork(fromIdx int) int {
	total := 0
	for _, op := range j.Operations[fromIdx:] {
		total += op.ProcTime
	}
	return total
}
