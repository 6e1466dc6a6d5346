// Package experiment drives the policy-comparison, ablation, and
// generalization studies of spec.md §5, evaluating each policy across many
// generated instances concurrently.
package experiment

import (
	"context"
	"runtime"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"cerjssp/domain"
	"cerjssp/geninstance"
	"cerjssp/objective"
	"cerjssp/policy"
	"cerjssp/runner"
	"cerjssp/telemetry"
)

// runSeed is the fixed per-run breakdown-RNG seed every evaluation uses,
// matching the reference runner's constant env seed: only the instance
// varies across a batch, not the breakdown draws within a run.
const runSeed = 42

// AggResult is one row of a policy/ablation/generalization report: a
// policy's metrics averaged over a set of instances (spec.md §5).
type AggResult struct {
	Policy         string  `json:"policy"`
	Makespan       float64 `json:"makespan"`
	TotalTardiness float64 `json:"total_tardiness"`
	TotalEnergy    float64 `json:"total_energy"`
	AvgWIP         float64 `json:"avg_wip"`
	Objective      float64 `json:"objective"`
	DecisionCount  float64 `json:"decision_count"`
}

// CreateInstances builds n instances varying a handful of generator
// parameters per index, the way the reference runner sweeps its parameter
// space instead of holding it fixed across a whole batch (original
// run_experiments.create_instances). breakdownOverride, if non-nil,
// replaces the per-index breakdown frequency of 0.05 with a fixed value —
// used to build the out-of-distribution generalization split.
func CreateInstances(n, jobs, machines int, seedOffset int64, breakdownOverride *float64) ([]*domain.Instance, error) {
	out := make([]*domain.Instance, 0, n)
	for i := 0; i < n; i++ {
		breakdown := 0.05
		if breakdownOverride != nil {
			breakdown = *breakdownOverride
		}

		inst, err := geninstance.Generate(geninstance.Params{
			NumJobs:          jobs,
			NumMachines:      machines,
			ReentryProb:      0.2 + 0.1*float64(i%4),
			HotspotIntensity: 0.3 + 0.1*float64(i%3),
			SetupVariance:    0.5 + 0.2*float64(i%2),
			BreakdownFreq:    breakdown,
			DueTightness:     0.9 + 0.2*float64(i%3),
			Seed:             seedOffset + int64(i),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// EvaluatePolicy runs pol against every instance concurrently — one worker
// goroutine per instance, fanned in through channerics.Merge to a single
// telemetry.Stats accumulator, bounded by an errgroup — and returns the
// averaged AggResult. The first runner error is returned; runs already
// started or still queued are not interrupted, and once the group's context
// is cancelled their results are no longer collected.
func EvaluatePolicy(ctx context.Context, label string, pol policy.Policy, instances []*domain.Instance) (AggResult, error) {
	type outcome struct {
		result objective.Result
		err    error
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())
	done := gctx.Done()

	workers := make([]<-chan outcome, 0, len(instances))
	for _, inst := range instances {
		inst := inst
		ch := make(chan outcome, 1)
		workers = append(workers, ch)
		group.Go(func() error {
			defer close(ch)
			result, err := runner.Run(inst, runSeed, pol)
			select {
			case ch <- outcome{result: result, err: err}:
			case <-done:
			}
			return err
		})
	}

	merged := channerics.Merge(done, workers...)

	var stats telemetry.Stats
	for o := range merged {
		if o.err != nil {
			continue
		}
		stats.Add(o.result.Makespan, o.result.Tardiness, o.result.Decisions, o.result.Energy, o.result.AvgWIP, o.result.Objective)
	}

	if err := group.Wait(); err != nil {
		return AggResult{}, err
	}

	makespan, tardiness, decisions, energy, avgWIP, objectiveMean := stats.Mean()
	return AggResult{
		Policy:         label,
		Makespan:       makespan,
		TotalTardiness: tardiness,
		TotalEnergy:    energy,
		AvgWIP:         avgWIP,
		Objective:      objectiveMean,
		DecisionCount:  decisions,
	}, nil
}

// StandardPolicies returns the seven built-in dispatchers the reference
// runner compares by default (spec.md §4.4 and original run_experiments.main).
// weights overrides the feature-weighted policy's prior, i.e. the CLI's
// --policy-config overlay (SPEC_FULL.md §4's policy configuration loader).
func StandardPolicies(weights policy.FeatureWeights) []policy.Policy {
	weightedCfg := policy.DefaultWeightedConfig
	weightedCfg.Weights = &weights

	return []policy.Policy{
		policy.FIFO{},
		policy.SPT{},
		policy.LPT{},
		policy.MWKR{},
		policy.ATC{},
		policy.NewRandom(7),
		policy.NewWeighted(weightedCfg),
	}
}
