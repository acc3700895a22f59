package rtos

import (
	"log/slog"

	applog "github.com/biandopa/rtos-pip-sim/utils/log"
	"github.com/biandopa/rtos-pip-sim/utils/uniqueid"
)

// Policy selects how task priorities are assigned and recomputed.
type Policy int

const (
	PolicyPriority Policy = iota
	PolicyRateMonotonic
)

func (p Policy) String() string {
	if p == PolicyRateMonotonic {
		return "RATE_MONOTONIC"
	}
	return "PRIORITY"
}

const (
	defaultReadyQueueCapacity   = 64
	defaultTaskRegistryCapacity = 64
)

// Scheduler is the single-threaded simulation owner of every task,
// mutex, semaphore, and the event log.
type Scheduler struct {
	Policy    Policy
	PIEnabled bool

	currentTask *Task
	idleTask    *Task

	ready *Queue

	tasks      []*Task
	mutexes    []*Mutex
	semaphores []*Semaphore

	taskCapacity int

	systemTicks     int
	contextSwitches int

	events *EventLog
	ids    *uniqueid.Source
	log    *slog.Logger
}

// Init creates a scheduler with the reference capacities (64 tasks, 64
// ready-queue slots) and a default JSON logger.
func Init(policy Policy, piEnabled bool) *Scheduler {
	return NewScheduler(policy, piEnabled, defaultReadyQueueCapacity, defaultTaskRegistryCapacity, applog.BuildLogger("info"))
}

// NewScheduler creates a scheduler with explicit capacities and logger,
// used by callers (tests, the introspection API) that need more than one
// independent scheduler instance or a non-default log sink.
func NewScheduler(policy Policy, piEnabled bool, readyCapacity, taskCapacity int, logger *slog.Logger) *Scheduler {
	s := &Scheduler{
		Policy:       policy,
		PIEnabled:    piEnabled,
		ready:        NewQueue(readyCapacity),
		tasks:        make([]*Task, 0, taskCapacity),
		taskCapacity: taskCapacity,
		events:       NewEventLog(),
		ids:          uniqueid.New(),
		log:          logger,
	}

	idle := &Task{
		ID:       s.ids.Next(),
		Name:     "idle",
		State:    Ready,
		Priority: IdlePriority,
		Original: IdlePriority,
		sched:    s,
	}
	s.tasks = append(s.tasks, idle)
	s.idleTask = idle
	idle.State = Running
	s.currentTask = idle

	return s
}

// Destroy releases every registered task's back-reference to this
// scheduler. The scheduler owns all tasks, so destroying it destroys
// every registered task.
func (s *Scheduler) Destroy() {
	mutexes := append([]*Mutex(nil), s.mutexes...)
	for _, m := range mutexes {
		s.MutexDestroy(m)
	}
	for _, t := range s.tasks {
		t.sched = nil
	}
	s.tasks = nil
	s.semaphores = nil
}

// Events returns the scheduler's event log.
func (s *Scheduler) Events() *EventLog {
	return s.events
}

// ContextSwitches returns the number of context switches performed so far.
func (s *Scheduler) ContextSwitches() int {
	return s.contextSwitches
}

// SystemTicks returns the current simulated tick count.
func (s *Scheduler) SystemTicks() int {
	return s.systemTicks
}

// CurrentTask returns the task the dispatcher currently considers Running.
func (s *Scheduler) CurrentTask() *Task {
	return s.currentTask
}

// IdleTask returns the scheduler's idle task.
func (s *Scheduler) IdleTask() *Task {
	return s.idleTask
}

// Tasks returns every registered task, including the idle task. Callers
// must not mutate the returned slice.
func (s *Scheduler) Tasks() []*Task {
	return s.tasks
}

// Semaphores returns every registered semaphore. Callers must not mutate
// the returned slice.
func (s *Scheduler) Semaphores() []*Semaphore {
	return s.semaphores
}

// ReadyQueue returns the scheduler's ready queue.
func (s *Scheduler) ReadyQueue() *Queue {
	return s.ready
}

// TaskCreate registers a new task. If policy is RateMonotonic and period
// is positive, the initial priority is overridden by the period value; a
// subsequent RMRecalculate finalizes ranks. A zero deadline is
// interpreted as period (implicit deadline = period). The task starts
// Ready and is inserted into the ready queue.
func (s *Scheduler) TaskCreate(name string, fn WorkFunc, arg any, priority, period, deadline, wcet int) *Task {
	if len(s.tasks) >= s.taskCapacity {
		s.report(ErrCapacityExceeded, "task registry full (capacity %d), cannot create task %q", s.taskCapacity, name)
		return nil
	}

	if deadline == 0 {
		deadline = period
	}

	effectivePriority := priority
	if s.Policy == PolicyRateMonotonic && period > 0 {
		effectivePriority = period
	}

	t := &Task{
		ID:               s.ids.Next(),
		Name:             name,
		State:            Ready,
		Priority:         effectivePriority,
		Original:         effectivePriority,
		Period:           period,
		RelativeDeadline: deadline,
		RemainingWork:    wcet,
		InitialWork:      wcet,
		Func:             fn,
		Arg:              arg,
		sched:            s,
	}

	if period > 0 {
		t.NextRelease = s.systemTicks + period
	}
	if deadline > 0 {
		t.AbsoluteDeadline = s.systemTicks + deadline
	}

	s.tasks = append(s.tasks, t)
	if !s.ready.Insert(t) {
		s.report(ErrCapacityExceeded, "ready queue full (capacity %d), dropping task %q", s.ready.Capacity(), name)
	}
	s.events.Append(s.systemTicks, t.ID, t.Name, VisReady, "created")

	return t
}

// TaskSetState forces t into newState, keeping ready-queue membership
// consistent with invariant 1 (a task is in the ready queue iff its state
// is Ready). Prefer the specific operations (TaskSuspend, TaskResume,
// TaskTerminate, MutexLock/Unlock) where they apply; this exists for
// drivers that need a generic setter.
func (s *Scheduler) TaskSetState(t *Task, newState State) {
	if t == nil {
		s.report(ErrInvalidArgument, "task_set_state called with nil task")
		return
	}

	switch newState {
	case Ready:
		s.setReady(t)
	case Blocked:
		s.setBlocked(t)
	case Running:
		if s.ready.Contains(t) {
			s.ready.Remove(t)
		}
		t.State = Running
		s.events.Append(s.systemTicks, t.ID, t.Name, VisRunning, "")
	case Suspended:
		s.setSuspended(t)
	case Terminated:
		s.terminate(t)
	}

	s.Schedule()
}

// TaskSuspend moves t out of the ready/running/blocked set into Suspended.
func (s *Scheduler) TaskSuspend(t *Task) {
	if t == nil {
		s.report(ErrInvalidArgument, "task_suspend called with nil task")
		return
	}
	s.setSuspended(t)
	s.Schedule()
}

func (s *Scheduler) setSuspended(t *Task) {
	if s.ready.Contains(t) {
		s.ready.Remove(t)
	}
	t.State = Suspended
	s.events.Append(s.systemTicks, t.ID, t.Name, VisSuspended, "")
}

// TaskResume moves a Suspended task back to Ready and re-dispatches, so
// t is Running on return if it outranks the current task. It is a no-op,
// reported, if t is not Suspended.
func (s *Scheduler) TaskResume(t *Task) {
	if t == nil {
		s.report(ErrInvalidArgument, "task_resume called with nil task")
		return
	}
	if t.State != Suspended {
		s.report(ErrInvalidArgument, "task_resume called on task %q which is not Suspended", t.Name)
		return
	}
	s.setReady(t)
	s.Schedule()
}

// TaskTerminate moves t to Terminated exactly once. A task that is
// already Terminated is a reported no-op.
func (s *Scheduler) TaskTerminate(t *Task) {
	if t == nil {
		s.report(ErrInvalidArgument, "task_terminate called with nil task")
		return
	}
	if t.State == Terminated {
		s.report(ErrInvalidArgument, "task_terminate called on already-terminated task %q", t.Name)
		return
	}
	s.terminate(t)
	s.Schedule()
}

func (s *Scheduler) terminate(t *Task) {
	if s.ready.Contains(t) {
		s.ready.Remove(t)
	}
	t.State = Terminated
	s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "terminated")
}

// TaskSetPriority reassigns t's original (and, since this clears any
// inheritance episode, current) priority, re-sorting the ready queue if
// t is queued.
func (s *Scheduler) TaskSetPriority(t *Task, priority int) {
	if t == nil {
		s.report(ErrInvalidArgument, "task_set_priority called with nil task")
		return
	}
	t.Priority = priority
	t.Original = priority
	t.Inherited = false
	if s.ready.Contains(t) {
		s.ready.Reinsert(t)
	}
	s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "priority set")
	s.Schedule()
}

func (s *Scheduler) setReady(t *Task) {
	t.State = Ready
	t.ReadySince = s.systemTicks
	if !s.ready.Contains(t) {
		if !s.ready.Insert(t) {
			s.report(ErrCapacityExceeded, "ready queue full (capacity %d), dropping task %q", s.ready.Capacity(), t.Name)
			return
		}
	}
	s.events.Append(s.systemTicks, t.ID, t.Name, VisReady, "")
}

func (s *Scheduler) setBlocked(t *Task) {
	if s.ready.Contains(t) {
		s.ready.Remove(t)
	}
	t.State = Blocked
	s.events.Append(s.systemTicks, t.ID, t.Name, VisBlocked, "")
}

// Schedule computes next = peek(ready) ?? idle and performs a context
// switch when the preemption policy calls for one: ties and an
// already-current task keep the incumbent.
func (s *Scheduler) Schedule() {
	next := s.ready.Peek()
	if next == nil {
		next = s.idleTask
	}

	if next == s.currentTask {
		return
	}

	if s.currentTask != nil && s.currentTask.State == Running && next.Priority >= s.currentTask.Priority {
		return
	}

	s.contextSwitch(s.currentTask, next)
}

func (s *Scheduler) contextSwitch(from, to *Task) {
	preempting := from != nil && from.State == Running

	if preempting {
		if from == s.idleTask {
			// The idle task never queues; park it Suspended so
			// ready-queue membership stays consistent with state.
			from.State = Suspended
			s.events.Append(s.systemTicks, from.ID, from.Name, VisSuspended, "")
		} else {
			from.State = Ready
			from.ReadySince = s.systemTicks
			if !s.ready.Insert(from) {
				s.report(ErrCapacityExceeded, "ready queue full (capacity %d), dropping preempted task %q", s.ready.Capacity(), from.Name)
			}
			from.Preemptions++
			s.events.Append(s.systemTicks, from.ID, from.Name, VisReady, "")
		}
	}

	if s.ready.Contains(to) {
		s.ready.Remove(to)
	}
	to.State = Running
	s.currentTask = to
	s.contextSwitches++
	s.events.Append(s.systemTicks, to.ID, to.Name, VisRunning, "")

	if preempting && to.Priority < from.Priority {
		s.events.Append(s.systemTicks, from.ID, from.Name, VisNone, "preempted by "+to.Name)
	}
}
