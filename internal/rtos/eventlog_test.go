package rtos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventLog_TracksMinMaxTickAndGrows(t *testing.T) {
	l := NewEventLog()
	assert.Equal(t, 0, l.MinTick())
	assert.Equal(t, 0, l.MaxTick())

	for tick := 0; tick < eventLogInitialCap*3; tick++ {
		l.Append(tick, 1, "t", VisRunning, "")
	}

	assert.Equal(t, 0, l.MinTick())
	assert.Equal(t, eventLogInitialCap*3-1, l.MaxTick())
	assert.Equal(t, eventLogInitialCap*3, l.Len())
}

func TestEventLog_AnnotationOnlyRecordsAreVisNone(t *testing.T) {
	l := NewEventLog()
	l.Append(5, 0, "", VisNone, "boost")

	recs := l.Records()
	assert.Len(t, recs, 1)
	assert.Equal(t, VisNone, recs[0].Visual)
	assert.Equal(t, "boost", recs[0].Annotation)
}
