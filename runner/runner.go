// Package runner drives one full simulation from an instance and a policy
// to completion, implementing the run loop of spec.md §4.3.
package runner

import (
	"cerjssp/domain"
	"cerjssp/objective"
	"cerjssp/policy"
	"cerjssp/simulator"
)

// Run simulates inst under pol to completion with breakdown RNG seeded by
// seed, in strict (legality-checked) mode, and returns the evaluated
// objective.Result.
func Run(inst *domain.Instance, seed int64, pol policy.Policy) (objective.Result, error) {
	return run(inst, seed, pol, true)
}

// RunFast is identical to Run but disables the strict ready-action legality
// check, trading the safety net for speed exactly as spec.md §7 allows for
// production dispatch loops that already trust their policy.
func RunFast(inst *domain.Instance, seed int64, pol policy.Policy) (objective.Result, error) {
	return run(inst, seed, pol, false)
}

func run(inst *domain.Instance, seed int64, pol policy.Policy, strict bool) (objective.Result, error) {
	state := simulator.NewState(inst, seed)
	engine := simulator.NewEngine(state, strict)

	for !engine.Done() {
		actions := engine.ReadyActions()
		if len(actions) == 0 {
			before := state.Clock()
			engine.AdvanceTime()
			if state.Clock() == before {
				return objective.Result{}, &simulator.DeadlockError{}
			}
			continue
		}

		action := pol.Select(state, actions)
		if err := engine.Dispatch(action); err != nil {
			return objective.Result{}, err
		}
	}

	finish := state.FinishTime()
	state.IntegrateTo(finish)
	return objective.Evaluate(state, inst, finish), nil
}
