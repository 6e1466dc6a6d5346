package simulator

import (
	"fmt"
	"sort"

	"cerjssp/domain"
)

// IllegalActionError reports a dispatch whose action was not a member of
// the current ready-actions set (spec.md §7).
type IllegalActionError struct {
	Action Action
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action: job %d op %d machine %d is not currently ready",
		e.Action.JobID, e.Action.OpIdx, e.Action.MachineID)
}

// DeadlockError reports a state where the run is not done, no action is
// ready, and advance_time found no future event — per spec.md §7 this
// "should be unreachable; if encountered, it indicates a generator bug."
type DeadlockError struct{}

func (e *DeadlockError) Error() string {
	return "deadlock: no ready actions and no future event, but the run is not done"
}

// Engine advances a State for one Instance. StrictMode enables the
// debug-mode legality check of spec.md §7: a Dispatch of an action absent
// from the last ReadyActions() call returns an IllegalActionError instead
// of corrupting machine/job state. Release-mode (StrictMode=false) trusts
// the caller, for speed, exactly as spec.md allows.
type Engine struct {
	State      *State
	StrictMode bool

	lastReady map[Action]bool
}

// NewEngine returns an Engine driving state.
func NewEngine(state *State, strict bool) *Engine {
	return &Engine{State: state, StrictMode: strict}
}

// Done reports whether every job has executed all of its operations.
func (e *Engine) Done() bool {
	s := e.State
	for _, job := range s.Instance.Jobs {
		if s.jobs[job.JobID].nextOpIdx < len(job.Operations) {
			return false
		}
	}
	return true
}

// ReadyActions returns the legal actions at the current clock: an action is
// legal iff its op is the job's next operation, the machine is in the op's
// candidate set, the job is ready, and the machine is free (spec.md §4.2).
func (e *Engine) ReadyActions() []Action {
	s := e.State
	var actions []Action

	for _, job := range s.Instance.Jobs {
		js := s.jobs[job.JobID]
		if js.nextOpIdx >= len(job.Operations) {
			continue
		}
		if js.readyTime > s.t {
			continue
		}
		op := job.Operations[js.nextOpIdx]
		for _, m := range op.CandidateMachines {
			if s.machines[m].busyUntil <= s.t {
				actions = append(actions, Action{JobID: job.JobID, OpIdx: js.nextOpIdx, MachineID: m})
			}
		}
	}

	if e.StrictMode {
		e.lastReady = make(map[Action]bool, len(actions))
		for _, a := range actions {
			e.lastReady[a] = true
		}
	}
	return actions
}

// AdvanceTime jumps the clock to the next future event time — the smallest
// busy_until or ready_time value strictly greater than t — integrating WIP
// across the jump first. No-op if no future event exists (should only
// happen when Done()).
func (e *Engine) AdvanceTime() {
	s := e.State
	next, found := s.nextEventTime()
	if !found {
		return
	}
	s.accumulateWIP(next)
	s.t = next
}

// nextEventTime returns min{v : v in (busy_until values) U (ready_time values), v > t}.
func (s *State) nextEventTime() (int, bool) {
	found := false
	best := 0
	consider := func(v int) {
		if v > s.t && (!found || v < best) {
			best = v
			found = true
		}
	}
	for _, ms := range s.machines {
		consider(ms.busyUntil)
	}
	for _, js := range s.jobs {
		consider(js.readyTime)
	}
	return best, found
}

// Dispatch applies action, which must be a member of the most recent
// ReadyActions() result. Steps follow spec.md §4.2 exactly, including the
// unconditional first RNG draw and the conditional second draw.
func (e *Engine) Dispatch(action Action) error {
	if e.StrictMode && !e.lastReady[action] {
		return &IllegalActionError{Action: action}
	}

	s := e.State
	job := &s.Instance.Jobs[action.JobID]
	op := job.Operations[action.OpIdx]
	machine := &s.Instance.Machines[action.MachineID]
	ms := &s.machines[action.MachineID]
	js := &s.jobs[action.JobID]

	base := max3(s.t, ms.busyUntil, js.readyTime)

	prevJob := domain.NoPreviousJob
	if ms.hasLastJob {
		prevJob = ms.lastJobID
	}
	setup := s.Instance.Setups.Lookup(prevJob, action.JobID, action.MachineID)

	start := maintenanceAdjust(machine.Maintenance, base+setup, op.ProcTime)

	duration := op.ProcTime
	u := s.rng.Float64()
	if u < machine.BreakdownProb {
		span := op.ProcTime / 3
		if span < 2 {
			span = 2
		}
		duration += 1 + s.rng.Intn(span)
	}

	end := start + duration
	ms.busyUntil = end
	ms.lastJobID = action.JobID
	ms.hasLastJob = true
	js.readyTime = end
	js.nextOpIdx++
	if js.nextOpIdx >= len(job.Operations) {
		js.completionTime = end
		js.completed = true
	}

	s.energy += float64(duration) * (machine.EnergyRate + op.EnergyRate)
	s.decisions++

	return nil
}

// maintenanceAdjust returns the smallest s' >= s such that [s', s'+d) does
// not intersect any maintenance window, by scanning windows in ascending
// start order and pushing s past any window it collides with until stable
// (spec.md §4.2; §9 requires this to be correct for multiple windows, not
// just the single-window case the generator currently produces).
func maintenanceAdjust(windows []domain.MaintenanceWindow, s, d int) int {
	if len(windows) == 0 {
		return s
	}
	sorted := append([]domain.MaintenanceWindow(nil), windows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for {
		moved := false
		for _, w := range sorted {
			if s < w.End && s+d > w.Start {
				s = w.End
				moved = true
			}
		}
		if !moved {
			return s
		}
	}
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
