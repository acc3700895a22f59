package scenarios

import (
	"github.com/biandopa/rtos-pip-sim/internal/rtos"
)

func runStrictPriority(sched *rtos.Scheduler) error {
	a := sched.TaskCreate("A", nil, nil, 1, 0, 0, 5)
	b := sched.TaskCreate("B", nil, nil, 2, 0, 0, 10)
	c := sched.TaskCreate("C", nil, nil, 3, 0, 0, 8)

	sched.Schedule()
	for i := 0; i < 30 && !allTerminated(a, b, c); i++ {
		sched.TickHandler()
		terminateWhenExhausted(sched, a, b, c)
		sched.Schedule()
	}
	return nil
}

func runPreemption(sched *rtos.Scheduler) error {
	low := sched.TaskCreate("Low", nil, nil, 10, 0, 0, 20)
	sched.Schedule()
	sched.AdvanceTime(5)

	high := sched.TaskCreate("High", nil, nil, 1, 0, 0, 10)
	sched.Schedule()

	for i := 0; i < 30 && !allTerminated(low, high); i++ {
		sched.TickHandler()
		terminateWhenExhausted(sched, low, high)
		sched.Schedule()
	}
	return nil
}

func runPIPResolvesInversion(sched *rtos.Scheduler) error {
	low := sched.TaskCreate("Low", nil, nil, 10, 0, 0, 0)
	mutexA := sched.MutexCreate("MutexA")
	sched.Schedule()
	sched.MutexLock(mutexA, low)

	sched.AdvanceTime(2)
	sched.TaskCreate("Med", nil, nil, 5, 0, 0, 0)
	sched.Schedule()
	sched.AdvanceTime(3)

	high := sched.TaskCreate("High", nil, nil, 1, 0, 0, 0)
	sched.Schedule()
	sched.MutexLock(mutexA, high)

	sched.AdvanceTime(5)
	sched.MutexUnlock(mutexA, low)
	sched.AdvanceTime(5)
	return nil
}

func runNoPIPInversion(sched *rtos.Scheduler) error {
	return runPIPResolvesInversion(sched)
}

func runTransitivePIP(sched *rtos.Scheduler) error {
	veryLow := sched.TaskCreate("VeryLow", nil, nil, 20, 0, 0, 0)
	mutexA := sched.MutexCreate("A")
	sched.Schedule()
	sched.MutexLock(mutexA, veryLow)

	low := sched.TaskCreate("Low", nil, nil, 15, 0, 0, 0)
	mutexB := sched.MutexCreate("B")
	sched.Schedule()
	sched.MutexLock(mutexB, low)
	sched.MutexLock(mutexA, low)

	high := sched.TaskCreate("High", nil, nil, 1, 0, 0, 0)
	sched.Schedule()
	sched.MutexLock(mutexB, high)

	sched.AdvanceTime(5)
	return nil
}

func runRateMonotonic(sched *rtos.Scheduler) error {
	sched.TaskCreate("T1", nil, nil, 0, 10, 0, 3)
	sched.TaskCreate("T2", nil, nil, 0, 15, 0, 4)
	sched.TaskCreate("T3", nil, nil, 0, 20, 0, 5)
	sched.RMRecalculate()
	sched.Schedule()
	sched.AdvanceTime(60)
	return nil
}

func runSemaphoreProducerConsumer(sched *rtos.Scheduler) error {
	producer := sched.TaskCreate("Producer", nil, nil, 1, 0, 0, 1)
	consumer := sched.TaskCreate("Consumer", nil, nil, 2, 0, 0, 1)
	full := sched.SemaphoreCreate("full", 0, 5)
	empty := sched.SemaphoreCreate("empty", 5, 5)

	sched.Schedule()
	for i := 0; i < 5; i++ {
		sched.SemaphoreWait(empty, producer)
		sched.SemaphoreSignal(full, producer)
		sched.SemaphoreWait(full, consumer)
		sched.SemaphoreSignal(empty, consumer)
	}
	return nil
}

func runDeadlineMiss(sched *rtos.Scheduler) error {
	hog := sched.TaskCreate("Hog", nil, nil, 1, 0, 100, 12)
	tight := sched.TaskCreate("Tight", nil, nil, 2, 0, 10, 15)
	relax := sched.TaskCreate("Relax", nil, nil, 3, 0, 50, 8)

	sched.Schedule()
	for i := 0; i < 60 && !allTerminated(hog, tight, relax); i++ {
		sched.TickHandler()
		terminateWhenExhausted(sched, hog, tight, relax)
		sched.Schedule()
	}
	return nil
}
