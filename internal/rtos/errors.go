package rtos

import (
	"fmt"
	"log/slog"

	applog "github.com/biandopa/rtos-pip-sim/utils/log"
)

// ErrorKind classifies a reported error. None of these unwind the
// operation that triggered them; the core stays usable after any of
// them.
type ErrorKind int

const (
	ErrCapacityExceeded ErrorKind = iota
	ErrInvalidArgument
	ErrNonOwnerUnlock
	ErrAllocationFailure
	ErrMalformedInput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrCapacityExceeded:
		return "capacity_exceeded"
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrNonOwnerUnlock:
		return "non_owner_unlock"
	case ErrAllocationFailure:
		return "allocation_failure"
	case ErrMalformedInput:
		return "malformed_input"
	default:
		return "unknown"
	}
}

// report funnels every reported error through one path: it logs via
// utils/log and appends a None-visual annotation event so the renderer
// can surface it.
func (s *Scheduler) report(kind ErrorKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.log.Warn("reported error", slog.String("kind", kind.String()), applog.StringAttr("detail", msg))
	s.events.Append(s.systemTicks, 0, "", VisNone, fmt.Sprintf("[%s] %s", kind, msg))
}
