// Package render turns an rtos.EventLog into an ASCII Gantt chart and
// an RM schedulability report. It only reads; it never mutates
// scheduler state.
package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/biandopa/rtos-pip-sim/internal/rtos"
)

func visualChar(v rtos.VisualState) byte {
	switch v {
	case rtos.VisRunning:
		return 'R'
	case rtos.VisReady:
		return '.'
	case rtos.VisBlocked:
		return 'b'
	case rtos.VisSuspended:
		return 's'
	default:
		return ' '
	}
}

// RenderGantt writes one row per task (a fixed-width character per tick
// in [log.MinTick(), log.MaxTick()]) followed by the annotation-only
// records as a footnote list in log order.
func RenderGantt(w io.Writer, log *rtos.EventLog, tasks []*rtos.Task) {
	if log.Len() == 0 {
		fmt.Fprintln(w, "(no events recorded)")
		return
	}

	minTick, maxTick := log.MinTick(), log.MaxTick()
	width := maxTick - minTick + 1

	rows := make(map[int][]byte, len(tasks))
	names := make(map[int]string, len(tasks))
	for _, t := range tasks {
		row := make([]byte, width)
		for i := range row {
			row[i] = ' '
		}
		rows[t.ID] = row
		names[t.ID] = t.Name
	}

	var annotations []rtos.Event
	for _, e := range log.Records() {
		if e.Visual == rtos.VisNone {
			annotations = append(annotations, e)
			// A terminated task shows blank columns from the next tick on.
			if e.Annotation == "terminated" {
				if row, ok := rows[e.TaskID]; ok {
					start := e.Tick - minTick + 1
					if start < 0 {
						start = 0
					}
					for col := start; col < width; col++ {
						row[col] = ' '
					}
				}
			}
			continue
		}
		row, ok := rows[e.TaskID]
		if !ok {
			continue
		}
		ch := visualChar(e.Visual)
		for col := e.Tick - minTick; col < width; col++ {
			row[col] = ch
		}
	}

	ids := make([]int, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	sort.Ints(ids)

	for _, id := range ids {
		fmt.Fprintf(w, "%-12s %s\n", names[id], string(rows[id]))
	}

	if len(annotations) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Events:")
	for _, e := range annotations {
		label := e.TaskName
		if label == "" {
			label = "scheduler"
		}
		fmt.Fprintf(w, "  [tick %4d] %-12s %s\n", e.Tick, label, e.Annotation)
	}
}

// RenderRMReport writes the per-task utilization table followed by the
// Liu-Layland schedulability verdict.
func RenderRMReport(w io.Writer, r rtos.RMReport) {
	fmt.Fprintln(w, "RM schedulability report")
	fmt.Fprintf(w, "  %-15s %8s %8s %8s %10s\n", "Task", "Period", "WCET", "Priority", "Util")
	fmt.Fprintf(w, "  %-15s %8s %8s %8s %10s\n", "----", "------", "----", "--------", "----")
	for _, row := range r.Rows {
		fmt.Fprintf(w, "  %-15s %8d %8d %8d %9.3f\n",
			row.Name, row.Period, row.WCET, row.Priority, row.Utilization)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  tasks:       %d\n", r.TaskCount)
	fmt.Fprintf(w, "  utilization: %.4f\n", r.Utilization)
	fmt.Fprintf(w, "  LL bound:    %.4f\n", r.Bound)
	fmt.Fprintf(w, "  verdict:     %s\n", r.Verdict)
}
