package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biandopa/rtos-pip-sim/internal/rtos"
)

func TestRenderGantt_EmptyLog(t *testing.T) {
	var buf bytes.Buffer
	RenderGantt(&buf, rtos.NewEventLog(), nil)
	assert.Equal(t, "(no events recorded)\n", buf.String())
}

func TestRenderGantt_OneTaskTwoTicks(t *testing.T) {
	sched := rtos.Init(rtos.PolicyPriority, false)
	defer sched.Destroy()

	a := sched.TaskCreate("A", nil, nil, 1, 0, 0, 3)
	sched.Schedule()
	sched.AdvanceTime(2)
	sched.TaskTerminate(a)

	var buf bytes.Buffer
	RenderGantt(&buf, sched.Events(), sched.Tasks())

	out := buf.String()
	require.Contains(t, out, "A")
	assert.Contains(t, out, "Events:")
}

func TestRenderGantt_BlanksRowAfterTermination(t *testing.T) {
	sched := rtos.Init(rtos.PolicyPriority, false)
	defer sched.Destroy()

	a := sched.TaskCreate("A", nil, nil, 1, 0, 0, 2)
	b := sched.TaskCreate("B", nil, nil, 2, 0, 0, 5)
	sched.Schedule()
	for i := 0; i < 8; i++ {
		sched.TickHandler()
		for _, task := range []*rtos.Task{a, b} {
			if task.State != rtos.Terminated && task.RemainingWork <= 0 {
				sched.TaskTerminate(task)
			}
		}
		sched.Schedule()
	}

	var buf bytes.Buffer
	RenderGantt(&buf, sched.Events(), sched.Tasks())

	var rowA string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "A ") {
			rowA = line
			break
		}
	}
	require.NotEmpty(t, rowA)
	assert.Equal(t, "RRR", strings.TrimSpace(rowA[13:]), "terminated task shows blank columns after its last tick")
}

func TestRenderRMReport(t *testing.T) {
	sched := rtos.Init(rtos.PolicyRateMonotonic, false)
	defer sched.Destroy()

	sched.TaskCreate("T1", nil, nil, 0, 10, 0, 3)
	sched.TaskCreate("T2", nil, nil, 0, 15, 0, 4)
	sched.RMRecalculate()

	var buf bytes.Buffer
	RenderRMReport(&buf, sched.RMSchedulabilityTest())

	out := buf.String()
	assert.True(t, strings.Contains(out, "RM schedulability report"))
	assert.True(t, strings.Contains(out, "Task"))
	assert.True(t, strings.Contains(out, "T1"))
	assert.True(t, strings.Contains(out, "T2"))
	assert.True(t, strings.Contains(out, "tasks:       2"))
}
