package rtos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTick_DeadlineMissBoundary(t *testing.T) {
	s := Init(PolicyPriority, false)
	task := s.TaskCreate("T", nil, nil, 1, 0, 5, 10)
	s.Schedule()
	require.Equal(t, task, s.CurrentTask())

	s.AdvanceTime(5)
	assert.Equal(t, 0, task.DeadlineMisses, "deadline exactly equal to tick is not a miss")

	s.AdvanceTime(1)
	assert.Equal(t, 1, task.DeadlineMisses, "deadline strictly past, with remaining work, is a miss")

	s.AdvanceTime(1)
	assert.Equal(t, 1, task.DeadlineMisses, "sentinel prevents re-triggering in the same window")
}

func TestTick_DeadlineMissScenario(t *testing.T) {
	s := Init(PolicyPriority, false)
	hog := s.TaskCreate("Hog", nil, nil, 1, 0, 100, 12)
	tight := s.TaskCreate("Tight", nil, nil, 2, 0, 10, 15)
	relax := s.TaskCreate("Relax", nil, nil, 3, 0, 50, 8)

	s.Schedule()
	for i := 0; i < 60; i++ {
		s.TickHandler()
		for _, task := range []*Task{hog, tight, relax} {
			if task.State != Terminated && task.RemainingWork <= 0 {
				s.TaskTerminate(task)
			}
		}
		s.Schedule()
	}

	assert.GreaterOrEqual(t, tight.DeadlineMisses, 1)
}

func TestTick_PeriodicReleaseReEntersReady(t *testing.T) {
	s := Init(PolicyPriority, false)
	task := s.TaskCreate("Periodic", nil, nil, 1, 10, 0, 3)
	s.Schedule()
	s.AdvanceTime(3)
	s.TaskSuspend(task)
	require.Equal(t, Suspended, task.State)

	s.AdvanceTime(7)
	assert.Equal(t, Ready, task.State)
	assert.Equal(t, 1, task.Invocations)
}
