package geninstance

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func baseParams(seed int64) Params {
	return Params{
		NumJobs:          3,
		NumMachines:      3,
		ReentryProb:      0,
		HotspotIntensity: 0,
		SetupVariance:    0,
		BreakdownFreq:    0,
		DueTightness:     1.5,
		Seed:             seed,
	}
}

func TestGenerateDeterminism(t *testing.T) {
	Convey("Given identical generator parameters and seed", t, func() {
		a, errA := Generate(baseParams(0))
		b, errB := Generate(baseParams(0))

		Convey("When generating twice", func() {
			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)

			Convey("Then the instances are identical", func() {
				So(len(a.Jobs), ShouldEqual, len(b.Jobs))
				for j := range a.Jobs {
					So(a.Jobs[j].DueDate, ShouldEqual, b.Jobs[j].DueDate)
					So(len(a.Jobs[j].Operations), ShouldEqual, len(b.Jobs[j].Operations))
				}
				So(len(a.Machines), ShouldEqual, len(b.Machines))
				for m := range a.Machines {
					So(a.Machines[m].EnergyRate, ShouldEqual, b.Machines[m].EnergyRate)
				}
			})
		})
	})

	Convey("Given different seeds", t, func() {
		a, errA := Generate(baseParams(0))
		b, errB := Generate(baseParams(1))

		Convey("When generating with seed 0 vs seed 1", func() {
			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)

			Convey("Then at least one drawn value differs", func() {
				differs := false
				for j := range a.Jobs {
					if a.Jobs[j].DueDate != b.Jobs[j].DueDate {
						differs = true
					}
				}
				for m := range a.Machines {
					if a.Machines[m].EnergyRate != b.Machines[m].EnergyRate {
						differs = true
					}
				}
				So(differs, ShouldBeTrue)
			})
		})
	})
}

func TestGenerateInvariants(t *testing.T) {
	Convey("Given a generated instance", t, func() {
		inst, err := Generate(Params{
			NumJobs:          6,
			NumMachines:      5,
			ReentryProb:      0.4,
			HotspotIntensity: 0.3,
			SetupVariance:    0.6,
			BreakdownFreq:    0.1,
			DueTightness:     1.3,
			Seed:             7,
		})

		Convey("When constructed", func() {
			So(err, ShouldBeNil)

			Convey("Then no operation has an empty candidate set", func() {
				for _, job := range inst.Jobs {
					for _, op := range job.Operations {
						So(len(op.CandidateMachines), ShouldBeGreaterThan, 0)
						for _, m := range op.CandidateMachines {
							So(m, ShouldBeBetween, -1, len(inst.Machines))
						}
					}
				}
			})

			Convey("Then op_idx is dense from 0 within each job", func() {
				for _, job := range inst.Jobs {
					for idx, op := range job.Operations {
						So(op.OpIdx, ShouldEqual, idx)
					}
				}
			})

			Convey("Then setup times are zero on the diagonal", func() {
				So(inst.Setups.Lookup(2, 2, 0), ShouldEqual, 0)
			})

			Convey("Then weights are the fixed default", func() {
				So(inst.Weights.Makespan, ShouldEqual, 1.0)
				So(inst.Weights.Tardiness, ShouldEqual, 0.7)
				So(inst.Weights.Energy, ShouldEqual, 0.15)
				So(inst.Weights.WIP, ShouldEqual, 0.4)
			})
		})
	})
}

func TestGenerateRejectsBadParams(t *testing.T) {
	Convey("Given zero counts", t, func() {
		Convey("When num_jobs is zero", func() {
			_, err := Generate(Params{NumJobs: 0, NumMachines: 2, DueTightness: 1})
			So(err, ShouldNotBeNil)
		})

		Convey("When num_machines is zero", func() {
			_, err := Generate(Params{NumJobs: 2, NumMachines: 0, DueTightness: 1})
			So(err, ShouldNotBeNil)
		})
	})
}
