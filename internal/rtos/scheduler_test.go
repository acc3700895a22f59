package rtos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "github.com/biandopa/rtos-pip-sim/utils/log"
)

func TestScheduler_StrictPriorityThreeAperiodicTasks(t *testing.T) {
	s := Init(PolicyPriority, true)

	a := s.TaskCreate("A", nil, nil, 1, 0, 0, 5)
	b := s.TaskCreate("B", nil, nil, 2, 0, 0, 10)
	c := s.TaskCreate("C", nil, nil, 3, 0, 0, 8)

	s.Schedule()
	require.Equal(t, a, s.CurrentTask())

	for i := 0; i < 30; i++ {
		s.TickHandler()
		for _, task := range []*Task{a, b, c} {
			if task.State != Terminated && task.RemainingWork <= 0 {
				s.TaskTerminate(task)
			}
		}
		s.Schedule()
	}

	assert.Equal(t, Terminated, a.State)
	assert.Equal(t, Terminated, b.State)
	assert.Equal(t, Terminated, c.State)
	assert.GreaterOrEqual(t, s.ContextSwitches(), 2)
}

func TestScheduler_Preemption(t *testing.T) {
	s := Init(PolicyPriority, true)

	low := s.TaskCreate("Low", nil, nil, 10, 0, 0, 20)
	s.Schedule()
	s.AdvanceTime(5)

	high := s.TaskCreate("High", nil, nil, 1, 0, 0, 10)
	s.Schedule()

	for i := 0; i < 30; i++ {
		s.TickHandler()
		for _, task := range []*Task{low, high} {
			if task.State != Terminated && task.RemainingWork <= 0 {
				s.TaskTerminate(task)
			}
		}
		s.Schedule()
	}

	assert.GreaterOrEqual(t, low.Preemptions, 1)
	assert.Equal(t, Terminated, low.State)
	assert.Equal(t, Terminated, high.State)
}

func TestScheduler_TaskSetPriorityResortsReadyQueue(t *testing.T) {
	s := Init(PolicyPriority, false)
	a := s.TaskCreate("A", nil, nil, 5, 0, 0, 1)
	b := s.TaskCreate("B", nil, nil, 3, 0, 0, 1)
	s.Schedule()

	assert.Equal(t, a, s.ReadyQueue().Peek())

	s.TaskSetPriority(a, 1)
	assert.Equal(t, a, s.CurrentTask())
	_ = b
}

func TestScheduler_TaskSuspendResume(t *testing.T) {
	s := Init(PolicyPriority, false)
	a := s.TaskCreate("A", nil, nil, 1, 0, 0, 5)
	s.Schedule()
	require.Equal(t, a, s.CurrentTask())

	s.TaskSuspend(a)
	assert.Equal(t, Suspended, a.State)
	assert.False(t, s.ReadyQueue().Contains(a))
	assert.Equal(t, s.IdleTask(), s.CurrentTask())

	s.TaskResume(a)
	assert.Equal(t, Running, a.State)
}

func TestScheduler_TaskCreateCapacityExceededIsReported(t *testing.T) {
	s := NewScheduler(PolicyPriority, false, 64, 2, applog.BuildLogger("error"))
	require.NotNil(t, s.TaskCreate("A", nil, nil, 1, 0, 0, 1))

	before := s.Events().Len()
	extra := s.TaskCreate("B", nil, nil, 1, 0, 0, 1)
	assert.Nil(t, extra)
	assert.Greater(t, s.Events().Len(), before)
}
