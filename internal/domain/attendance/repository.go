package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance logs. Update
// methods are field-scoped on purpose: each transition writes exactly the
// columns it owns and never rewrites time_in after creation.
type AttendanceRepository interface {
	// Create appends a new log for the employee and returns it with the
	// store-assigned id.
	Create(ctx context.Context, log AttendanceLog) (AttendanceLog, error)

	// GetByID retrieves a single log
	GetByID(ctx context.Context, id string) (AttendanceLog, error)

	// GetOpenSession retrieves the employee's open log (time_out IS NULL),
	// ErrSessionNotFound when none exists
	GetOpenSession(ctx context.Context, employeeID string) (AttendanceLog, error)

	// ListByEmployee retrieves the employee's logs with filters and pagination
	ListByEmployee(ctx context.Context, employeeID string, filter LogFilter) ([]AttendanceLog, int64, error)

	// StartBreak writes break_start and status only
	StartBreak(ctx context.Context, id string, at time.Time) error

	// EndBreak writes break_end, resets timer_start, and sets status
	EndBreak(ctx context.Context, id string, at time.Time) error

	// Close writes time_out and sets status to clocked_out
	Close(ctx context.Context, id string, at time.Time) error

	// SetTimeOut writes time_out only, leaving status untouched. Used by the
	// manager correction flow.
	SetTimeOut(ctx context.Context, id string, at time.Time) error

	// GetStaleOpenSessions returns open logs whose time_in is older than the
	// cutoff, for the housekeeping reaper.
	GetStaleOpenSessions(ctx context.Context, olderThan time.Duration) ([]AttendanceLog, error)
}
