package attendance

import (
	"context"
)

// AttendanceService defines business logic for the time-tracking state
// machine and the attendance-log reconciler.
type AttendanceService interface {
	// TimeIn opens a new session for the authenticated employee
	TimeIn(ctx context.Context) (LogResponse, error)

	// BreakStart pauses the open session
	BreakStart(ctx context.Context) (LogResponse, error)

	// BreakEnd resumes the open session
	BreakEnd(ctx context.Context) (LogResponse, error)

	// TimeOut closes the open session
	TimeOut(ctx context.Context) (LogResponse, error)

	// ForceLogout ends the session locally regardless of remote outcome; a
	// failed remote write is reported but does not block logout
	ForceLogout(ctx context.Context) error

	// MyLogs retrieves the authenticated employee's history with derived
	// fields recomputed
	MyLogs(ctx context.Context, filter LogFilter) (ListLogsResponse, error)

	// ListLogs retrieves any employee's history (admin/manager)
	ListLogs(ctx context.Context, employeeID string, filter LogFilter) (ListLogsResponse, error)

	// CorrectTimeOut overwrites only the targeted log's time_out from a
	// wall-clock HH:MM input (admin/manager)
	CorrectTimeOut(ctx context.Context, req CorrectTimeOutRequest) (LogResponse, error)

	// CurrentSession reports the authenticated employee's status and open
	// log pointer, used to resume after a reload
	CurrentSession(ctx context.Context) (SessionResponse, error)
}
