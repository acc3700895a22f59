package rtos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRM_RecalculateAssignsRankByPeriod(t *testing.T) {
	s := Init(PolicyRateMonotonic, false)
	t3 := s.TaskCreate("T3", nil, nil, 0, 20, 0, 5)
	t1 := s.TaskCreate("T1", nil, nil, 0, 10, 0, 3)
	t2 := s.TaskCreate("T2", nil, nil, 0, 15, 0, 4)

	s.RMRecalculate()

	assert.Less(t, t1.Priority, t2.Priority)
	assert.Less(t, t2.Priority, t3.Priority)
	assert.Equal(t, 0, t1.Priority)
	assert.Equal(t, 1, t2.Priority)
	assert.Equal(t, 2, t3.Priority)
}

func TestRM_RecalculateIsIdempotent(t *testing.T) {
	s := Init(PolicyRateMonotonic, false)
	s.TaskCreate("T1", nil, nil, 0, 10, 0, 3)
	s.TaskCreate("T2", nil, nil, 0, 15, 0, 4)

	s.RMRecalculate()
	first := snapshotPriorities(s)
	s.RMRecalculate()
	second := snapshotPriorities(s)

	assert.Equal(t, first, second)
}

func snapshotPriorities(s *Scheduler) map[int]int {
	out := make(map[int]int)
	for _, t := range s.Tasks() {
		out[t.ID] = t.Priority
	}
	return out
}

func TestRM_UtilizationAndSchedulabilityVerdict(t *testing.T) {
	s := Init(PolicyRateMonotonic, false)
	s.TaskCreate("T1", nil, nil, 0, 10, 0, 3)
	s.TaskCreate("T2", nil, nil, 0, 15, 0, 4)
	s.TaskCreate("T3", nil, nil, 0, 20, 0, 5)
	s.RMRecalculate()

	report := s.RMSchedulabilityTest()

	assert.InDelta(t, 0.8167, report.Utilization, 0.001)
	assert.InDelta(t, 0.7797, report.Bound, 0.001)
	assert.Equal(t, RMPossiblySchedulable, report.Verdict)
	assert.Equal(t, 3, report.TaskCount)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, RMTaskRow{Name: "T1", Period: 10, WCET: 3, Priority: 0, Utilization: 0.3}, report.Rows[0])
	assert.Equal(t, "T2", report.Rows[1].Name)
	assert.InDelta(t, 0.25, report.Rows[2].Utilization, 0.0001)
}

func TestRM_ZeroTasksIsMalformedInput(t *testing.T) {
	s := Init(PolicyRateMonotonic, false)
	before := s.Events().Len()

	report := s.RMSchedulabilityTest()

	assert.Equal(t, RMReport{}, report)
	assert.Greater(t, s.Events().Len(), before)
}

func TestRM_CreateOverridesPriorityByPeriod(t *testing.T) {
	s := Init(PolicyRateMonotonic, false)
	task := s.TaskCreate("T", nil, nil, 99, 25, 0, 1)
	require.Equal(t, 25, task.Priority)
}
