package policy

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"cerjssp/domain"
	"cerjssp/simulator"
)

func twoReadyActionInstance() *domain.Instance {
	jobs := []domain.Job{
		{JobID: 0, DueDate: 20, Operations: []domain.Operation{
			{JobID: 0, OpIdx: 0, ProcTime: 5, CandidateMachines: []int{0, 1}, EnergyRate: 1.0},
			{JobID: 0, OpIdx: 1, ProcTime: 2, CandidateMachines: []int{0, 1}, EnergyRate: 1.0},
		}},
		{JobID: 1, DueDate: 8, Operations: []domain.Operation{
			{JobID: 1, OpIdx: 0, ProcTime: 2, CandidateMachines: []int{0, 1}, EnergyRate: 1.0},
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

func readyActions(inst *domain.Instance) (*simulator.State, []simulator.Action) {
	state := simulator.NewState(inst, 0)
	engine := simulator.NewEngine(state, true)
	return state, engine.ReadyActions()
}

func TestFIFOPicksLexicographicallyFirst(t *testing.T) {
	Convey("Given two jobs both ready on both machines", t, func() {
		state, actions := readyActions(twoReadyActionInstance())

		Convey("When FIFO selects", func() {
			a := FIFO{}.Select(state, actions)

			Convey("Then it picks job 0, op 0, machine 0", func() {
				So(a, ShouldResemble, simulator.Action{JobID: 0, OpIdx: 0, MachineID: 0})
			})
		})
	})
}

func TestSPTPicksShortestOp(t *testing.T) {
	Convey("Given job 0's op (proc=5) and job 1's op (proc=2) both ready", t, func() {
		state, actions := readyActions(twoReadyActionInstance())

		Convey("When SPT selects", func() {
			a := SPT{}.Select(state, actions)

			Convey("Then it picks the job 1 action", func() {
				So(a.JobID, ShouldEqual, 1)
			})
		})
	})
}

func TestLPTPicksLongestOp(t *testing.T) {
	Convey("Given job 0's op (proc=5) and job 1's op (proc=2) both ready", t, func() {
		state, actions := readyActions(twoReadyActionInstance())

		Convey("When LPT selects", func() {
			a := LPT{}.Select(state, actions)

			Convey("Then it picks the job 0 action", func() {
				So(a.JobID, ShouldEqual, 0)
			})
		})
	})
}

func TestMWKRPicksMostRemainingWork(t *testing.T) {
	Convey("Given job 0 (remaining 5+2=7) and job 1 (remaining 2)", t, func() {
		state, actions := readyActions(twoReadyActionInstance())

		Convey("When MWKR selects", func() {
			a := MWKR{}.Select(state, actions)

			Convey("Then it picks the job 0 action", func() {
				So(a.JobID, ShouldEqual, 0)
			})
		})
	})
}

func TestRandomStaysWithinReadySet(t *testing.T) {
	Convey("Given a seeded Random policy", t, func() {
		state, actions := readyActions(twoReadyActionInstance())
		pol := Random{}

		Convey("When selecting repeatedly", func() {
			for i := 0; i < 20; i++ {
				a := pol.Select(state, actions)
				found := false
				for _, candidate := range actions {
					if candidate == a {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			}
		})
	})
}

func TestWeightedFullConfigAndSingleObjectiveToggle(t *testing.T) {
	Convey("Given the full-featured weighted config", t, func() {
		state, actions := readyActions(twoReadyActionInstance())
		full := NewWeighted(DefaultWeightedConfig)

		Convey("When selecting", func() {
			a := full.Select(state, actions)

			Convey("Then it returns a member of the ready set", func() {
				found := false
				for _, candidate := range actions {
					if candidate == a {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When single_objective is set", func() {
			single := NewWeighted(WeightedConfig{UseCandidateSet: true, TopK: 5})
			a := single.Select(state, actions)

			Convey("Then it degenerates to shortest processing time", func() {
				So(a.JobID, ShouldEqual, 1)
			})
		})
	})
}

func TestLoadFeatureWeightsOverlaysOntoBase(t *testing.T) {
	Convey("Given a base weight set and no file", t, func() {
		_, err := LoadFeatureWeights("/nonexistent/weights.yaml", DefaultFeatureWeights)

		Convey("Then a missing file surfaces an error rather than silently defaulting", func() {
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a yaml file overriding only proc and mwkr", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "weights.yaml")
		contents := "proc: -1.2\nmwkr: 1.5\n"
		So(os.WriteFile(path, []byte(contents), 0o644), ShouldBeNil)

		Convey("When loaded over the warm-start base", func() {
			out, err := LoadFeatureWeights(path, WarmStartFeatureWeights)

			Convey("Then the named fields are overridden and the rest fall back to base", func() {
				So(err, ShouldBeNil)
				So(out.ProcTime, ShouldEqual, -1.2)
				So(out.MWKR, ShouldEqual, 1.5)
				So(out.Slack, ShouldEqual, WarmStartFeatureWeights.Slack)
				So(out.Energy, ShouldEqual, WarmStartFeatureWeights.Energy)
				So(out.Avail, ShouldEqual, WarmStartFeatureWeights.Avail)
			})
		})
	})
}
