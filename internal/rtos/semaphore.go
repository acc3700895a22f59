package rtos

const semaphoreWaitQueueCapacity = 16

// Semaphore is a counting P/V primitive with a priority-ordered wait
// queue identical in discipline to Mutex's, but it never invokes
// priority inheritance. It is the scheduler's only blocking primitive
// that does not participate in PIP.
type Semaphore struct {
	ID    int
	Name  string
	Count int
	Max   int

	waiters *Queue

	sched *Scheduler
}

// Waiters returns the semaphore's wait queue contents. Callers must not
// mutate the returned slice.
func (sem *Semaphore) Waiters() []*Task {
	return sem.waiters.Tasks()
}

// SemaphoreCreate registers and returns a new counting semaphore.
func (s *Scheduler) SemaphoreCreate(name string, initial, max int) *Semaphore {
	sem := &Semaphore{
		ID:      s.ids.Next(),
		Name:    name,
		Count:   initial,
		Max:     max,
		waiters: NewQueue(semaphoreWaitQueueCapacity),
		sched:   s,
	}
	s.semaphores = append(s.semaphores, sem)
	return sem
}

// SemaphoreWait (P) decrements the count if positive, otherwise blocks
// the caller like a contended mutex lock, minus any PIP bookkeeping.
func (s *Scheduler) SemaphoreWait(sem *Semaphore, t *Task) {
	if sem == nil || t == nil {
		s.report(ErrInvalidArgument, "semaphore_wait called with nil semaphore or task")
		return
	}

	if sem.Count > 0 {
		sem.Count--
		s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "waits on "+sem.Name)
		return
	}

	s.events.Append(s.systemTicks, t.ID, t.Name, VisNone, "blocks on depleted semaphore "+sem.Name)
	s.setBlocked(t)
	if !sem.waiters.Insert(t) {
		s.report(ErrCapacityExceeded, "semaphore %q wait queue full (capacity %d), dropping waiter %q", sem.Name, sem.waiters.Capacity(), t.Name)
	}

	s.Schedule()
}

// SemaphoreSignal (V) wakes the highest-priority waiter directly to
// Ready without touching Count and re-dispatches (so the woken task may
// preempt at once), or increments Count up to Max if no task is waiting.
// Signaling past Max is a reported no-op.
func (s *Scheduler) SemaphoreSignal(sem *Semaphore, t *Task) {
	if sem == nil {
		s.report(ErrInvalidArgument, "semaphore_signal called with nil semaphore")
		return
	}

	if sem.waiters.Len() > 0 {
		w := sem.waiters.Pop()
		s.setReady(w)
		s.events.Append(s.systemTicks, w.ID, w.Name, VisNone, "woken via "+sem.Name)
		s.Schedule()
		return
	}

	if sem.Count >= sem.Max {
		s.report(ErrCapacityExceeded, "semaphore %q signaled past max %d", sem.Name, sem.Max)
		return
	}

	sem.Count++
	var signaler int
	var signalerName string
	if t != nil {
		signaler, signalerName = t.ID, t.Name
	}
	s.events.Append(s.systemTicks, signaler, signalerName, VisNone, "signals "+sem.Name)
}
