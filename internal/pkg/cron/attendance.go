package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/attendance"
)

// AttendanceJobs holds the housekeeping sweep over attendance logs. Its
// main customer is the dangling open session: a forced logout during a
// break deliberately leaves the row open, and a crashed client never
// writes its time-out.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	cutoff         time.Duration
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, cutoff time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		cutoff:         cutoff,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_stale_attendance_sessions", 1*time.Hour, j.CloseStaleSessions)
}

// CloseStaleSessions closes every open session whose time-in is older
// than the cutoff. The synthetic time-out is time_in + cutoff so a
// forgotten session never accrues unbounded hours.
func (j *AttendanceJobs) CloseStaleSessions(ctx context.Context) error {
	staleSessions, err := j.attendanceRepo.GetStaleOpenSessions(ctx, j.cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale sessions: %w", err)
	}

	if len(staleSessions) == 0 {
		return nil
	}

	closedCount := 0
	for _, session := range staleSessions {
		syntheticOut := session.TimeIn.Add(j.cutoff)

		if err := j.attendanceRepo.Close(ctx, session.ID, syntheticOut); err != nil {
			slog.Error("Cron: Failed to close stale attendance session",
				"log_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}

		slog.Info("Cron: Closed stale attendance session",
			"log_id", session.ID,
			"employee_id", session.EmployeeID,
			"status_before", session.Status,
			"time_in", session.TimeIn,
			"synthetic_time_out", syntheticOut)
		closedCount++
	}

	slog.Info("Cron: Stale attendance sweep finished", "closed", closedCount)
	return nil
}
