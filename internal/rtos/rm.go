package rtos

import (
	"math"
	"sort"
)

// RMVerdict is the outcome of the Liu–Layland schedulability test.
type RMVerdict int

const (
	RMGuaranteed RMVerdict = iota
	RMPossiblySchedulable
	RMNotSchedulable
)

func (v RMVerdict) String() string {
	switch v {
	case RMGuaranteed:
		return "GUARANTEED_SCHEDULABLE"
	case RMPossiblySchedulable:
		return "POSSIBLY_SCHEDULABLE"
	case RMNotSchedulable:
		return "NOT_SCHEDULABLE"
	default:
		return "UNKNOWN"
	}
}

// RMTaskRow is one periodic task's line in the schedulability report:
// its period, WCET stand-in, assigned priority, and individual
// utilization share.
type RMTaskRow struct {
	Name        string
	Period      int
	WCET        int
	Priority    int
	Utilization float64
}

// RMReport is the result of RMSchedulabilityTest, printable by a
// collaborator (internal/render.RenderRMReport) rather than by the core.
type RMReport struct {
	TaskCount   int
	Utilization float64
	Bound       float64
	Verdict     RMVerdict
	Rows        []RMTaskRow
}

// RMRecalculate assigns priority = original = rank to every non-idle,
// non-terminated periodic task, ranked ascending by period (equal
// periods keep registration order, since the sort is stable), then
// rebuilds the ready queue from scratch.
func (s *Scheduler) RMRecalculate() {
	periodic := make([]*Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.IsIdle() || t.State == Terminated || t.Period <= 0 {
			continue
		}
		periodic = append(periodic, t)
	}

	sort.SliceStable(periodic, func(i, j int) bool {
		return periodic[i].Period < periodic[j].Period
	})

	for rank, t := range periodic {
		t.Priority = rank
		t.Original = rank
		t.Inherited = false
	}

	rebuilt := NewQueue(s.ready.Capacity())
	for _, t := range s.tasks {
		if !t.IsIdle() && t.State == Ready {
			if !rebuilt.Insert(t) {
				s.report(ErrCapacityExceeded, "ready queue full (capacity %d) rebuilding after rm_recalculate", rebuilt.Capacity())
			}
		}
	}
	s.ready = rebuilt

	s.events.Append(s.systemTicks, 0, "", VisNone, "rm_recalculate applied")
}

// RMUtilization sums C_i / T_i over periodic tasks, using each task's
// InitialWork as the WCET stand-in. InitialWork is frozen at TaskCreate
// and never touched by TickHandler, so unlike RemainingWork this stays
// meaningful for the life of the run, not just pre-run (see DESIGN.md).
func (s *Scheduler) RMUtilization() float64 {
	var u float64
	for _, t := range s.tasks {
		if t.IsIdle() || t.Period <= 0 {
			continue
		}
		u += float64(t.InitialWork) / float64(t.Period)
	}
	return u
}

func liuLaylandBound(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) * (math.Pow(2, 1.0/float64(n)) - 1)
}

// RMSchedulabilityTest runs the Liu–Layland bound test over the current
// periodic task set and fills one report row per periodic task. A zero
// task count is malformed input: it is reported and no analysis is
// produced.
func (s *Scheduler) RMSchedulabilityTest() RMReport {
	var rows []RMTaskRow
	for _, t := range s.tasks {
		if t.IsIdle() || t.Period <= 0 {
			continue
		}
		rows = append(rows, RMTaskRow{
			Name:        t.Name,
			Period:      t.Period,
			WCET:        t.InitialWork,
			Priority:    t.Priority,
			Utilization: float64(t.InitialWork) / float64(t.Period),
		})
	}

	n := len(rows)
	if n == 0 {
		s.report(ErrMalformedInput, "rm_schedulability_test called with zero periodic tasks")
		return RMReport{}
	}

	u := s.RMUtilization()
	b := liuLaylandBound(n)

	var verdict RMVerdict
	switch {
	case u <= b:
		verdict = RMGuaranteed
	case u <= 1:
		verdict = RMPossiblySchedulable
	default:
		verdict = RMNotSchedulable
	}

	return RMReport{TaskCount: n, Utilization: u, Bound: b, Verdict: verdict, Rows: rows}
}
