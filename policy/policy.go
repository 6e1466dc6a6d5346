// Package policy defines the dispatcher contract and its built-in
// implementations (spec.md §4.4). A policy is handed the current simulator
// state and a non-empty ready-actions list and must return exactly one
// member of that list; it must not mutate the state.
package policy

import (
	"math"
	"math/rand"

	"cerjssp/domain"
	"cerjssp/simulator"
)

// Policy selects exactly one action from a non-empty candidate list.
type Policy interface {
	Name() string
	Select(state *simulator.State, actions []simulator.Action) simulator.Action
}

// argmin returns the first action minimizing score, breaking
// ties by first occurrence (stable, matching Python's min() over a list).
func argmin(actions []simulator.Action, score func(simulator.Action) float64) simulator.Action {
	best := actions[0]
	bestScore := score(best)
	for _, a := range actions[1:] {
		if s := score(a); s < bestScore {
			best, bestScore = a, s
		}
	}
	return best
}

func opOf(inst *domain.Instance, a simulator.Action) domain.Operation {
	return inst.Jobs[a.JobID].Operations[a.OpIdx]
}

// FIFO dispatches the action with the lexicographically smallest
// (JobID, OpIdx, MachineID) triple.
type FIFO struct{}

func (FIFO) Name() string { return "fifo" }

func (FIFO) Select(state *simulator.State, actions []simulator.Action) simulator.Action {
	return argmin(actions, func(a simulator.Action) float64 {
		return float64(a.JobID)*1e9 + float64(a.OpIdx)*1e6 + float64(a.MachineID)
	})
}

// SPT dispatches the shortest processing time operation available.
type SPT struct{}

func (SPT) Name() string { return "spt" }

func (SPT) Select(state *simulator.State, actions []simulator.Action) simulator.Action {
	inst := state.Instance
	return argmin(actions, func(a simulator.Action) float64 {
		return float64(opOf(inst, a).ProcTime)
	})
}

// LPT dispatches the longest processing time operation available.
type LPT struct{}

func (LPT) Name() string { return "lpt" }

func (LPT) Select(state *simulator.State, actions []simulator.Action) simulator.Action {
	inst := state.Instance
	return argmin(actions, func(a simulator.Action) float64 {
		return -float64(opOf(inst, a).ProcTime)
	})
}

// MWKR dispatches the job with the most work remaining (including the
// candidate operation itself).
type MWKR struct{}

func (MWKR) Name() string { return "mwkr" }

func (MWKR) Select(state *simulator.State, actions []simulator.Action) simulator.Action {
	inst := state.Instance
	return argmin(actions, func(a simulator.Action) float64 {
		job := &inst.Jobs[a.JobID]
		return -float64(job.RemainingWork(a.OpIdx))
	})
}

// ATC is the Apparent Tardiness Cost rule: score = exp(-slack/max(1,2*pbar))/proc,
// where slack = max(0, due_date - t - proc_time) and pbar is the mean
// processing time of the currently ready actions, dispatched by maximum
// score.
type ATC struct{}

func (ATC) Name() string { return "atc" }

func (ATC) Select(state *simulator.State, actions []simulator.Action) simulator.Action {
	inst := state.Instance

	total := 0
	for _, a := range actions {
		total += opOf(inst, a).ProcTime
	}
	meanP := float64(total) / float64(len(actions))
	denom := 2 * meanP
	if denom < 1.0 {
		denom = 1.0
	}

	now := state.Clock()
	return argmin(actions, func(a simulator.Action) float64 {
		job := &inst.Jobs[a.JobID]
		op := opOf(inst, a)
		proc := op.ProcTime
		if proc < 1 {
			proc = 1
		}
		slack := float64(job.DueDate-now) - float64(op.ProcTime)
		if slack < 0 {
			slack = 0
		}
		score := (1.0 / float64(proc)) * math.Exp(-slack/denom)
		return -score
	})
}

// Random dispatches a uniformly random ready action from its own seeded
// generator, independent of the simulator's breakdown RNG. The zero value
// (nil Rng) builds a fresh seed-0 generator on every Select call, so it
// returns the same index for every action list of a given length.
type Random struct {
	Rng *rand.Rand
}

// NewRandom builds a Random policy seeded independently of any simulator
// RNG stream, matching the reference runner's RandomPolicy(seed=7).
func NewRandom(seed int64) Random {
	return Random{Rng: rand.New(rand.NewSource(seed))}
}

func (Random) Name() string { return "random" }

func (p Random) Select(state *simulator.State, actions []simulator.Action) simulator.Action {
	rng := p.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	return actions[rng.Intn(len(actions))]
}
