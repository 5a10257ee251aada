package attendance

import (
	"time"
)

// AttendanceLog is one work session for one employee: created at time-in,
// mutated in place by break and time-out transitions, never deleted.
type AttendanceLog struct {
	ID         string
	EmployeeID string
	Status     Status
	TimeIn     time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time
	TimeOut    *time.Time
	// TimerStart marks the most recent transition into a running sub-state
	// (time-in or break-end). Used only to recompute elapsed seconds on
	// load, not authoritative business data.
	TimerStart time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// Open reports whether the session is still running (no time out recorded).
func (l *AttendanceLog) Open() bool {
	return l.TimeOut == nil
}

// ElapsedSeconds recomputes the derived elapsed counter from the persisted
// timer start. Frozen at time_out once the session is closed, frozen at
// break_start while on break, live against now otherwise. Recomputed on
// every fetch, never persisted.
func (l *AttendanceLog) ElapsedSeconds(now time.Time) int64 {
	var until time.Time
	switch {
	case l.TimeOut != nil:
		until = *l.TimeOut
	case l.Status == StatusOnBreak && l.BreakStart != nil:
		until = *l.BreakStart
	default:
		until = now
	}

	secs := int64(until.Sub(l.TimerStart).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// TimestampsOrdered checks time_in <= break_start <= break_end <= time_out
// over the fields that are present.
func (l *AttendanceLog) TimestampsOrdered() bool {
	prev := l.TimeIn
	for _, t := range []*time.Time{l.BreakStart, l.BreakEnd, l.TimeOut} {
		if t == nil {
			continue
		}
		if t.Before(prev) {
			return false
		}
		prev = *t
	}
	return true
}
