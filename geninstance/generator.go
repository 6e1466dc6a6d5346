// Package geninstance deterministically builds CE-RJSSP problem instances
// from a handful of scalar parameters and a seed. Every random draw is
// consumed from a single seeded generator, in the order fixed below, so
// that identical seed+parameters reproduce bit-identical instances within
// this implementation (spec.md §4.1).
package geninstance

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"cerjssp/domain"
)

// Params bundles the generator's scalar inputs, mirroring how the teacher's
// TrainingConfig bundles training hyperparameters for a single call site.
type Params struct {
	NumJobs          int
	NumMachines      int
	ReentryProb      float64
	HotspotIntensity float64
	SetupVariance    float64
	BreakdownFreq    float64
	DueTightness     float64
	Seed             int64
}

// Generate builds an Instance per spec.md §4.1's six construction rules,
// consuming draws from a single rand.Rand in this exact order:
//  1. hotspot machine sample
//  2. per-machine maintenance window + energy rate
//  3. per-job operation count, candidate sets, processing/energy rates
//  4. (no draw) due date is derived from already-drawn values
//  5. per-(prev,next,machine) setup time
//  6. (no draw) weights are fixed
func Generate(p Params) (*domain.Instance, error) {
	if p.NumJobs <= 0 {
		return nil, fmt.Errorf("geninstance: num_jobs must be positive, got %d", p.NumJobs)
	}
	if p.NumMachines <= 0 {
		return nil, fmt.Errorf("geninstance: num_machines must be positive, got %d", p.NumMachines)
	}

	rng := rand.New(rand.NewSource(p.Seed))

	hotspots := sampleHotspots(rng, p.NumMachines, p.HotspotIntensity)
	machines := genMachines(rng, p, hotspots)
	jobs := genJobs(rng, p)
	setups := genSetups(rng, p)

	return domain.NewInstance(jobs, machines, setups, domain.DefaultWeights)
}

// sampleHotspots draws, without replacement, max(1, floor(numMachines*intensity))
// machine IDs to be treated as hotspots.
func sampleHotspots(rng *rand.Rand, numMachines int, intensity float64) map[int]bool {
	k := int(float64(numMachines) * intensity)
	if k < 1 {
		k = 1
	}
	if k > numMachines {
		k = numMachines
	}

	perm := rng.Perm(numMachines)
	hotspots := make(map[int]bool, k)
	for _, m := range perm[:k] {
		hotspots[m] = true
	}
	return hotspots
}

func genMachines(rng *rand.Rand, p Params, hotspots map[int]bool) []domain.Machine {
	machines := make([]domain.Machine, p.NumMachines)
	for m := 0; m < p.NumMachines; m++ {
		isHot := hotspots[m]

		var maintenance []domain.MaintenanceWindow
		if rng.Float64() < 0.6 {
			start := 20 + rng.Intn(61) // uniform integer in [20,80]
			length := 5 + rng.Intn(11) // uniform integer in [5,15]
			maintenance = append(maintenance, domain.MaintenanceWindow{Start: start, End: start + length})
		}

		rate := 0.8 + rng.Float64()*(2.0-0.8)
		if isHot {
			rate *= 1.2
		}

		breakdown := p.BreakdownFreq
		if isHot {
			breakdown += 0.02
		}
		if breakdown < 0 {
			breakdown = 0
		}

		machines[m] = domain.Machine{
			MachineID:     m,
			EnergyRate:    rate,
			Maintenance:   maintenance,
			BreakdownProb: breakdown,
		}
	}
	return machines
}

func genJobs(rng *rand.Rand, p Params) []domain.Job {
	jobs := make([]domain.Job, p.NumJobs)
	for j := 0; j < p.NumJobs; j++ {
		opCount := 4 + rng.Intn(5) // uniform integer in [4,8]
		if rng.Float64() < p.ReentryProb {
			opCount++
		}

		ops := make([]domain.Operation, 0, opCount)
		var usedGroups [][]int
		nominal := 0

		for idx := 0; idx < opCount; idx++ {
			var cands []int
			if idx > 1 && rng.Float64() < p.ReentryProb && len(usedGroups) > 0 {
				cands = usedGroups[rng.Intn(len(usedGroups))]
			} else {
				maxGroup := p.NumMachines / 2
				if maxGroup < 2 {
					maxGroup = 2
				}
				groupSize := 1 + rng.Intn(maxGroup) // uniform integer in [1, max(2, numMachines/2)]
				if groupSize > p.NumMachines {
					groupSize = p.NumMachines
				}
				cands = sampleMachines(rng, p.NumMachines, groupSize)
				usedGroups = append(usedGroups, cands)
			}

			proc := 2 + rng.Intn(14) // uniform integer in [2,15]
			energy := 0.3 + rng.Float64()*(1.2-0.3)
			nominal += proc

			ops = append(ops, domain.Operation{
				JobID:             j,
				OpIdx:             idx,
				ProcTime:          proc,
				CandidateMachines: cands,
				EnergyRate:        energy,
			})
		}

		due := int(math.Floor(float64(nominal) * (1.2 + rng.Float64()*(2.2-1.2)) * p.DueTightness))
		jobs[j] = domain.Job{JobID: j, Operations: ops, DueDate: due}
	}
	return jobs
}

// sampleMachines draws, without replacement, k machine IDs from [0,numMachines)
// and returns them sorted ascending, as spec.md §4.1 rule 3 requires.
func sampleMachines(rng *rand.Rand, numMachines, k int) []int {
	perm := rng.Perm(numMachines)
	cands := append([]int(nil), perm[:k]...)
	sort.Ints(cands)
	return cands
}

func genSetups(rng *rand.Rand, p Params) domain.SetupTable {
	setups := make(domain.SetupTable, p.NumMachines*(p.NumJobs+1)*p.NumJobs)
	spread := int(5 * p.SetupVariance)
	if spread < 1 {
		spread = 1
	}

	for m := 0; m < p.NumMachines; m++ {
		prevs := make([]int, 0, p.NumJobs+1)
		prevs = append(prevs, domain.NoPreviousJob)
		for j := 0; j < p.NumJobs; j++ {
			prevs = append(prevs, j)
		}

		for _, prev := range prevs {
			for next := 0; next < p.NumJobs; next++ {
				var setup int
				if prev == next {
					setup = 0
				} else {
					setup = rng.Intn(spread + 1)
				}
				setups[domain.SetupKey{Prev: prev, Next: next, Machine: m}] = setup
			}
		}
	}
	return setups
}
