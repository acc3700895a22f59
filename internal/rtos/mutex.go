package rtos

const mutexWaitQueueCapacity = 16

// Mutex is a binary lock with a priority-ordered wait queue and, when the
// owning scheduler has PIP enabled, transitive priority inheritance on
// contention.
type Mutex struct {
	ID     int
	Name   string
	Locked bool
	Owner  *Task

	waiters *Queue

	sched *Scheduler
}

// Waiters returns the mutex's wait queue contents, ordered priority
// ascending with FIFO ties. Callers must not mutate the returned slice.
func (m *Mutex) Waiters() []*Task {
	return m.waiters.Tasks()
}

// MutexCreate registers and returns a new unlocked mutex.
func (s *Scheduler) MutexCreate(name string) *Mutex {
	m := &Mutex{
		ID:      s.ids.Next(),
		Name:    name,
		waiters: NewQueue(mutexWaitQueueCapacity),
		sched:   s,
	}
	s.mutexes = append(s.mutexes, m)
	return m
}

// MutexDestroy force-releases m, warning if tasks were still blocked on
// it, and unregisters it. Destroyed-while-waited-on is not expected in
// normal operation; it only happens at simulation shutdown.
func (s *Scheduler) MutexDestroy(m *Mutex) {
	if m == nil {
		s.report(ErrInvalidArgument, "mutex_destroy called with nil mutex")
		return
	}

	if m.waiters.Len() > 0 {
		s.report(ErrInvalidArgument, "mutex %q destroyed while %d task(s) still blocked on it", m.Name, m.waiters.Len())
		for _, w := range m.waiters.Tasks() {
			w.BlockedOn = nil
			s.setReady(w)
		}
	}

	if m.Owner != nil {
		m.Owner.removeHeldMutex(m)
		if s.PIEnabled {
			s.restore(m.Owner)
		}
		m.Owner = nil
		m.Locked = false
	}

	for i, mm := range s.mutexes {
		if mm == m {
			s.mutexes = append(s.mutexes[:i], s.mutexes[i+1:]...)
			break
		}
	}

	s.Schedule()
}

// MutexLock attempts to acquire m for t. On contention it optionally
// boosts the current owner's priority (PIP), blocks t, and re-dispatches.
func (s *Scheduler) MutexLock(m *Mutex, t *Task) {
	if m == nil || t == nil {
		s.report(ErrInvalidArgument, "mutex_lock called with nil mutex or task")
		return
	}

	if !m.Locked {
		m.Locked = true
		m.Owner = t
		t.addHeldMutex(m)
		s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "locks "+m.Name)
		return
	}

	if m.Owner == t {
		s.report(ErrInvalidArgument, "task %q attempted to re-lock %q it already owns", t.Name, m.Name)
		return
	}

	s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "contends for "+m.Name+" held by "+m.Owner.Name)

	if s.PIEnabled && t.Priority < m.Owner.Priority {
		s.boost(m.Owner, t.Priority, 0)
	}

	t.BlockedOn = m
	s.setBlocked(t)
	if !m.waiters.Insert(t) {
		s.report(ErrCapacityExceeded, "mutex %q wait queue full (capacity %d), dropping waiter %q", m.Name, m.waiters.Capacity(), t.Name)
	}

	s.Schedule()
}

// MutexUnlock releases m from its current owner. Only the current owner
// may unlock; any other caller is a reported no-op. The step order is
// load-bearing: emit the event, drop the held-set entry, restore the
// releasing task's priority, then hand off ownership, then re-dispatch.
// Restoring before the handoff ensures the restored priority reflects
// the post-release held set.
func (s *Scheduler) MutexUnlock(m *Mutex, t *Task) {
	if m == nil || t == nil {
		s.report(ErrInvalidArgument, "mutex_unlock called with nil mutex or task")
		return
	}

	if !m.Locked || m.Owner != t {
		s.report(ErrNonOwnerUnlock, "task %q attempted to unlock %q it does not own", t.Name, m.Name)
		return
	}

	s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "unlocks "+m.Name)
	t.removeHeldMutex(m)

	if s.PIEnabled {
		s.restore(t)
	}

	if m.waiters.Len() > 0 {
		w := m.waiters.Pop()
		w.BlockedOn = nil
		m.Owner = w
		w.addHeldMutex(m)
		s.setReady(w)
		s.events.Append(s.systemTicks, w.ID, w.Name, VisNone, "acquires "+m.Name)
	} else {
		m.Locked = false
		m.Owner = nil
	}

	s.Schedule()
}

// boost raises owner to priority p and propagates the boost along
// owner's block chain. depth bounds recursion by the number of
// registered tasks, tolerating malformed input even though a
// well-formed block chain is acyclic (a task blocked on a mutex cannot
// own that mutex).
func (s *Scheduler) boost(owner *Task, p int, depth int) {
	if owner == nil || depth > len(s.tasks) {
		return
	}
	if p >= owner.Priority {
		return
	}

	if !owner.Inherited {
		owner.Original = owner.Priority
		owner.Inherited = true
	}
	owner.Priority = p
	owner.PriorityBoosts++
	s.events.Append(s.systemTicks, owner.ID, owner.Name, VisNone, "priority boosted")

	if s.ready.Contains(owner) {
		s.ready.Reinsert(owner)
	}

	if owner.BlockedOn != nil && owner.BlockedOn.Owner != nil {
		s.boost(owner.BlockedOn.Owner, p, depth+1)
	}
}

// restore recomputes t's effective priority from its current held set
// and their waiters' pressure. Non-transitive: a task
// boosted only via chain propagation is lowered when the holder it
// propagated through restores, which re-evaluates pressure top-down via
// this same held-set scan.
func (s *Scheduler) restore(t *Task) {
	if !t.Inherited {
		return
	}

	needed := t.Original
	for _, m := range t.HeldMutexes {
		for _, w := range m.waiters.Tasks() {
			if w.Priority < needed {
				needed = w.Priority
			}
		}
	}

	t.Priority = needed
	if needed == t.Original {
		t.Inherited = false
	}

	if s.ready.Contains(t) {
		s.ready.Reinsert(t)
	}

	s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "priority restored")
}
