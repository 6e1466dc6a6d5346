package runner

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"cerjssp/domain"
	"cerjssp/policy"
)

func twoJobTwoMachine() *domain.Instance {
	jobs := []domain.Job{
		{JobID: 0, DueDate: 100, Operations: []domain.Operation{
			{JobID: 0, OpIdx: 0, ProcTime: 3, CandidateMachines: []int{0, 1}, EnergyRate: 1.0},
		}},
		{JobID: 1, DueDate: 100, Operations: []domain.Operation{
			{JobID: 1, OpIdx: 0, ProcTime: 5, CandidateMachines: []int{0, 1}, EnergyRate: 1.0},
		}},
	}
	machines := []domain.Machine{
		{MachineID: 0, EnergyRate: 1.0},
		{MachineID: 1, EnergyRate: 1.0},
	}
	inst, err := domain.NewInstance(jobs, machines, domain.SetupTable{}, domain.DefaultWeights)
	if err != nil {
		panic(err)
	}
	return inst
}

func TestRunFIFOMatchesSpecS1(t *testing.T) {
	Convey("Given S1 under FIFO", t, func() {
		result, err := Run(twoJobTwoMachine(), 0, policy.FIFO{})

		Convey("Then it matches the spec's worked example", func() {
			So(err, ShouldBeNil)
			So(result.Makespan, ShouldEqual, 5)
			So(result.Tardiness, ShouldEqual, 0)
			So(result.Energy, ShouldEqual, 16.0)
			So(result.Decisions, ShouldEqual, 2)
			So(result.AvgWIP, ShouldEqual, 1.6)
		})
	})
}

func TestRunFastSkipsStrictChecking(t *testing.T) {
	Convey("Given the same instance run with RunFast", t, func() {
		result, err := RunFast(twoJobTwoMachine(), 0, policy.SPT{})

		Convey("Then it still completes and reports consistent metrics", func() {
			So(err, ShouldBeNil)
			So(result.Makespan, ShouldBeGreaterThan, 0)
			So(result.Decisions, ShouldEqual, 2)
		})
	})
}

func TestRunEveryBuiltinPolicyCompletes(t *testing.T) {
	Convey("Given every built-in policy", t, func() {
		inst := twoJobTwoMachine()
		policies := []policy.Policy{
			policy.FIFO{}, policy.SPT{}, policy.LPT{}, policy.MWKR{}, policy.ATC{},
			policy.Random{}, policy.NewWeighted(policy.DefaultWeightedConfig),
		}

		Convey("When each runs to completion", func() {
			for _, pol := range policies {
				result, err := Run(inst, 0, pol)
				So(err, ShouldBeNil)
				So(result.Decisions, ShouldEqual, 2)
			}
		})
	})
}
