package rtos

import "math"

// sentinelDeadline marks an absolute deadline as no longer active, used
// to prevent a missed deadline from re-triggering within the same
// release window.
const sentinelDeadline = math.MaxInt

// TickHandler advances SystemTicks by 1 and runs three ordered passes:
// execution accounting for the Running task, periodic release, then
// deadline detection. It does not dispatch; drivers call Schedule
// themselves, or use AdvanceTime.
func (s *Scheduler) TickHandler() {
	s.systemTicks++

	if s.currentTask != nil && s.currentTask.State == Running && s.currentTask != s.idleTask {
		t := s.currentTask
		t.ExecTimeThisPeriod++
		t.TotalExecTime++
		if t.RemainingWork > 0 {
			t.RemainingWork--
		}
		if t.ExecTimeThisPeriod > t.WCETObserved {
			t.WCETObserved = t.ExecTimeThisPeriod
		}
	}

	for _, t := range s.tasks {
		if t.IsIdle() || t.Period <= 0 || t.State != Suspended {
			continue
		}
		if s.systemTicks == t.NextRelease {
			t.NextRelease += t.Period
			t.AbsoluteDeadline = s.systemTicks + t.RelativeDeadline
			t.ExecTimeThisPeriod = 0
			t.Invocations++
			s.setReady(t)
			s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "released")
		}
	}

	for _, t := range s.tasks {
		if t.IsIdle() || t.AbsoluteDeadline <= 0 || t.AbsoluteDeadline == sentinelDeadline {
			continue
		}
		if (t.State == Running || t.State == Ready) && s.systemTicks > t.AbsoluteDeadline && t.RemainingWork > 0 {
			t.DeadlineMisses++
			s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "missed deadline")
			t.AbsoluteDeadline = sentinelDeadline
		}
	}
}

// AdvanceTime runs n ticks, dispatching after each one.
func (s *Scheduler) AdvanceTime(n int) {
	for i := 0; i < n; i++ {
		s.TickHandler()
		s.Schedule()
	}
}

// SimulateWork installs RemainingWork = n on t and runs the tick loop
// only while t remains the current task, yielding as soon as t is
// preempted or its work is exhausted. Progress beyond the
// RemainingWork decrement performed by TickHandler is not persisted;
// resumption is implicit the next time the scheduler selects t (see
// Open Questions in DESIGN.md).
func (s *Scheduler) SimulateWork(t *Task, n int) {
	if t == nil {
		s.report(ErrInvalidArgument, "simulate_work called with nil task")
		return
	}

	t.RemainingWork = n
	for t.State == Running && s.currentTask == t && t.RemainingWork > 0 {
		s.TickHandler()
		s.Schedule()
	}
}
