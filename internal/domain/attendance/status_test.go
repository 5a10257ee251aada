package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyTransitionTable(t *testing.T) {
	cases := []struct {
		from    Status
		action  Action
		want    Status
		applied bool
	}{
		// Legal transitions
		{StatusClockedOut, ActionTimeIn, StatusClockedIn, true},
		{StatusClockedIn, ActionBreakStart, StatusOnBreak, true},
		{StatusOnBreak, ActionBreakEnd, StatusClockedIn, true},
		{StatusClockedIn, ActionTimeOut, StatusClockedOut, true},
		{StatusOnBreak, ActionTimeOut, StatusClockedOut, true},
		{StatusClockedIn, ActionForceLogout, StatusClockedOut, true},
		{StatusOnBreak, ActionForceLogout, StatusClockedOut, true},

		// Illegal actions are no-ops that leave status unchanged
		{StatusClockedOut, ActionBreakStart, StatusClockedOut, false},
		{StatusClockedOut, ActionBreakEnd, StatusClockedOut, false},
		{StatusClockedOut, ActionTimeOut, StatusClockedOut, false},
		{StatusClockedOut, ActionForceLogout, StatusClockedOut, false},
		{StatusClockedIn, ActionTimeIn, StatusClockedIn, false},
		{StatusClockedIn, ActionBreakEnd, StatusClockedIn, false},
		{StatusOnBreak, ActionTimeIn, StatusOnBreak, false},
		{StatusOnBreak, ActionBreakStart, StatusOnBreak, false},
	}

	for _, c := range cases {
		next, applied := Apply(c.from, c.action)
		assert.Equal(t, c.want, next, "Apply(%s, %s)", c.from, c.action)
		assert.Equal(t, c.applied, applied, "Apply(%s, %s) applied", c.from, c.action)
		assert.Equal(t, c.applied, c.from.CanApply(c.action), "CanApply(%s, %s)", c.from, c.action)
	}
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusClockedOut.Valid())
	assert.True(t, StatusClockedIn.Valid())
	assert.True(t, StatusOnBreak.Valid())
	assert.False(t, Status("napping").Valid())
}

func TestElapsedSeconds(t *testing.T) {
	start := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)

	t.Run("live while clocked in", func(t *testing.T) {
		log := AttendanceLog{Status: StatusClockedIn, TimeIn: start, TimerStart: start}

		t1 := start.Add(90 * time.Second)
		t2 := start.Add(150 * time.Second)
		e1 := log.ElapsedSeconds(t1)
		e2 := log.ElapsedSeconds(t2)
		assert.Equal(t, int64(90), e1)
		assert.GreaterOrEqual(t, e2, e1)
	})

	t.Run("frozen at break start while on break", func(t *testing.T) {
		breakStart := start.Add(90 * time.Second)
		log := AttendanceLog{
			Status:     StatusOnBreak,
			TimeIn:     start,
			TimerStart: start,
			BreakStart: &breakStart,
		}
		assert.Equal(t, int64(90), log.ElapsedSeconds(start.Add(10*time.Minute)))
	})

	t.Run("frozen once time out is set", func(t *testing.T) {
		out := start.Add(8 * time.Hour)
		log := AttendanceLog{
			Status:     StatusClockedOut,
			TimeIn:     start,
			TimerStart: start,
			TimeOut:    &out,
		}
		frozen := log.ElapsedSeconds(out.Add(time.Hour))
		assert.Equal(t, int64(8*3600), frozen)
		assert.Equal(t, frozen, log.ElapsedSeconds(out.Add(48*time.Hour)))
	})

	t.Run("never negative", func(t *testing.T) {
		log := AttendanceLog{Status: StatusClockedIn, TimeIn: start, TimerStart: start}
		assert.Equal(t, int64(0), log.ElapsedSeconds(start.Add(-time.Minute)))
	})
}

func TestTimestampsOrdered(t *testing.T) {
	base := time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)
	at := func(mins int) *time.Time {
		ts := base.Add(time.Duration(mins) * time.Minute)
		return &ts
	}

	ordered := AttendanceLog{TimeIn: base, BreakStart: at(60), BreakEnd: at(75), TimeOut: at(480)}
	assert.True(t, ordered.TimestampsOrdered())

	partial := AttendanceLog{TimeIn: base, TimeOut: at(480)}
	assert.True(t, partial.TimestampsOrdered())

	backwards := AttendanceLog{TimeIn: base, BreakStart: at(60), BreakEnd: at(30)}
	assert.False(t, backwards.TimestampsOrdered())
}
