package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/attendance"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/sse"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/timezone"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/tracker"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	trackers *tracker.Manager
	hub      *sse.Hub
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	trackers *tracker.Manager,
	hub *sse.Hub,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		trackers:             trackers,
		hub:                  hub,
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// TimeIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TimeIn(ctx context.Context) (attendance.LogResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}
	nowUTC := time.Now().UTC()

	// A second open session for the same employee must never exist, even
	// on a rapid double submit.
	_, err = a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err == nil {
		return attendance.LogResponse{}, attendance.ErrAlreadyClockedIn
	}
	if !errors.Is(err, attendance.ErrSessionNotFound) {
		return attendance.LogResponse{}, fmt.Errorf("failed to check open session: %w", err)
	}

	log, err := a.AttendanceRepository.Create(ctx, attendance.AttendanceLog{
		EmployeeID: employeeID,
		Status:     attendance.StatusClockedIn,
		TimeIn:     nowUTC,
		TimerStart: nowUTC,
	})
	if err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to create attendance log: %w", err)
	}

	a.trackers.StartFor(employeeID)
	a.publish(employeeID, "time_in", log)

	return a.toResponse(log, nowUTC), nil
}

// BreakStart implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakStart(ctx context.Context) (attendance.LogResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}
	nowUTC := time.Now().UTC()

	log, err := a.openSession(ctx, employeeID)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	if log.Status == attendance.StatusOnBreak {
		return attendance.LogResponse{}, attendance.ErrAlreadyOnBreak
	}
	if !log.Status.CanApply(attendance.ActionBreakStart) {
		return attendance.LogResponse{}, attendance.ErrInvalidTransition
	}

	if err := a.AttendanceRepository.StartBreak(ctx, log.ID, nowUTC); err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to start break: %w", err)
	}

	// Pause before the next tick can land.
	a.trackers.PauseFor(employeeID)

	log.Status = attendance.StatusOnBreak
	log.BreakStart = &nowUTC
	a.publish(employeeID, "break_start", log)

	return a.toResponse(log, nowUTC), nil
}

// BreakEnd implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BreakEnd(ctx context.Context) (attendance.LogResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}
	nowUTC := time.Now().UTC()

	log, err := a.openSession(ctx, employeeID)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	if log.Status != attendance.StatusOnBreak {
		return attendance.LogResponse{}, attendance.ErrNotOnBreak
	}

	if err := a.AttendanceRepository.EndBreak(ctx, log.ID, nowUTC); err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to end break: %w", err)
	}

	// The live counter keeps its pre-break total; the persisted
	// timer_start restarts so a reload recomputes only the running
	// stretch.
	a.trackers.ResumeFor(employeeID)

	log.Status = attendance.StatusClockedIn
	log.BreakEnd = &nowUTC
	log.TimerStart = nowUTC
	a.publish(employeeID, "break_end", log)

	return a.toResponse(log, nowUTC), nil
}

// TimeOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TimeOut(ctx context.Context) (attendance.LogResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.LogResponse{}, err
	}
	nowUTC := time.Now().UTC()

	log, err := a.openSession(ctx, employeeID)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	if err := a.AttendanceRepository.Close(ctx, log.ID, nowUTC); err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to close attendance log: %w", err)
	}

	a.trackers.StopFor(employeeID)

	log.Status = attendance.StatusClockedOut
	log.TimeOut = &nowUTC
	a.publish(employeeID, "time_out", log)

	return a.toResponse(log, nowUTC), nil
}

// ForceLogout implements attendance.AttendanceService. The local session
// always ends: a failed remote write is logged, never surfaced as a
// blocker. A session abandoned mid-break keeps its on_break row open for
// the stale-session sweep to close later.
func (a *AttendanceServiceImpl) ForceLogout(ctx context.Context) error {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return err
	}
	nowUTC := time.Now().UTC()

	defer a.trackers.StopFor(employeeID)

	log, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrSessionNotFound) {
			return nil
		}
		slog.Error("Failed to load open session during forced logout", "employee_id", employeeID, "error", err)
		return nil
	}

	if log.Status == attendance.StatusClockedIn {
		if err := a.AttendanceRepository.Close(ctx, log.ID, nowUTC); err != nil {
			slog.Error("Failed to close attendance log during forced logout", "employee_id", employeeID, "log_id", log.ID, "error", err)
		}
	}

	a.publish(employeeID, "force_logout", log)

	return nil
}

// MyLogs implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MyLogs(ctx context.Context, filter attendance.LogFilter) (attendance.ListLogsResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.ListLogsResponse{}, err
	}

	return a.ListLogs(ctx, employeeID, filter)
}

// ListLogs implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListLogs(ctx context.Context, employeeID string, filter attendance.LogFilter) (attendance.ListLogsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListLogsResponse{}, err
	}

	logs, total, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListLogsResponse{}, fmt.Errorf("failed to list attendance logs: %w", err)
	}

	nowUTC := time.Now().UTC()
	responses := make([]attendance.LogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, a.toResponse(log, nowUTC))
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	showingStart := 0
	showingEnd := 0
	if len(responses) > 0 {
		showingStart = (page-1)*limit + 1
		showingEnd = showingStart + len(responses) - 1
	}

	return attendance.ListLogsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Showing:    fmt.Sprintf("%d-%d of %d", showingStart, showingEnd, total),
		Logs:       responses,
	}, nil
}

// CorrectTimeOut implements attendance.AttendanceService. Converts the
// manager's "HH:MM" wall-clock input in the display zone into a UTC
// instant and overwrites only the targeted log's time_out.
func (a *AttendanceServiceImpl) CorrectTimeOut(ctx context.Context, req attendance.CorrectTimeOutRequest) (attendance.LogResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LogResponse{}, err
	}
	nowUTC := time.Now().UTC()

	log, err := a.AttendanceRepository.GetByID(ctx, req.LogID)
	if err != nil {
		if errors.Is(err, attendance.ErrLogNotFound) {
			return attendance.LogResponse{}, attendance.ErrLogNotFound
		}
		return attendance.LogResponse{}, fmt.Errorf("failed to get attendance log: %w", err)
	}

	day := timezone.Today()
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *req.Date, timezone.DisplayZone())
		if err != nil {
			return attendance.LogResponse{}, fmt.Errorf("invalid correction date %q: %w", *req.Date, err)
		}
		day = parsed
	}

	timeOut, err := timezone.CombineWallClock(day, req.ClockTime)
	if err != nil {
		return attendance.LogResponse{}, err
	}

	if err := a.AttendanceRepository.SetTimeOut(ctx, log.ID, timeOut); err != nil {
		return attendance.LogResponse{}, fmt.Errorf("failed to set time out: %w", err)
	}

	log.TimeOut = &timeOut
	a.publish(log.EmployeeID, "time_out_corrected", log)

	return a.toResponse(log, nowUTC), nil
}

// CurrentSession implements attendance.AttendanceService. Prefers the live
// in-process counter; falls back to recomputing from the persisted timer
// start after a restart.
func (a *AttendanceServiceImpl) CurrentSession(ctx context.Context) (attendance.SessionResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.SessionResponse{}, err
	}
	nowUTC := time.Now().UTC()

	log, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrSessionNotFound) {
			return attendance.SessionResponse{
				EmployeeID: employeeID,
				Status:     attendance.StatusClockedOut,
				Elapsed:    tracker.FormatHMS(0),
			}, nil
		}
		return attendance.SessionResponse{}, fmt.Errorf("failed to get open session: %w", err)
	}

	elapsed := log.ElapsedSeconds(nowUTC)
	if t := a.trackers.Get(employeeID); t != nil {
		elapsed = t.Seconds()
	}

	logID := log.ID
	return attendance.SessionResponse{
		EmployeeID:     employeeID,
		Status:         log.Status,
		CurrentLogID:   &logID,
		ElapsedSeconds: elapsed,
		Elapsed:        tracker.FormatHMS(elapsed),
	}, nil
}

// openSession loads the employee's open log, mapping a missing session to
// the not-clocked-in domain error.
func (a *AttendanceServiceImpl) openSession(ctx context.Context, employeeID string) (attendance.AttendanceLog, error) {
	log, err := a.AttendanceRepository.GetOpenSession(ctx, employeeID)
	if err != nil {
		if errors.Is(err, attendance.ErrSessionNotFound) {
			return attendance.AttendanceLog{}, attendance.ErrNotClockedIn
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to get open session: %w", err)
	}
	return log, nil
}

// toResponse recomputes derived display fields from raw persisted
// timestamps: elapsed seconds plus local date and time strings in the
// fixed display zone, empty when the underlying timestamp is unset.
func (a *AttendanceServiceImpl) toResponse(log attendance.AttendanceLog, now time.Time) attendance.LogResponse {
	elapsed := log.ElapsedSeconds(now)

	employeeName := ""
	if log.EmployeeName != nil {
		employeeName = *log.EmployeeName
	}

	return attendance.LogResponse{
		ID:             log.ID,
		EmployeeID:     log.EmployeeID,
		EmployeeName:   employeeName,
		Status:         log.Status,
		Date:           timezone.FormatDate(&log.TimeIn),
		TimeIn:         timezone.FormatTime(&log.TimeIn),
		BreakStart:     timezone.FormatTime(log.BreakStart),
		BreakEnd:       timezone.FormatTime(log.BreakEnd),
		TimeOut:        timezone.FormatTime(log.TimeOut),
		NeedsTimeOut:   log.TimeOut == nil,
		ElapsedSeconds: elapsed,
		Elapsed:        tracker.FormatHMS(elapsed),
		TimeInAt:       log.TimeIn,
		BreakStartAt:   log.BreakStart,
		BreakEndAt:     log.BreakEnd,
		TimeOutAt:      log.TimeOut,
	}
}

func (a *AttendanceServiceImpl) publish(employeeID, event string, log attendance.AttendanceLog) {
	if a.hub == nil {
		return
	}
	a.hub.Broadcast(sse.Event{
		EmployeeID: employeeID,
		Event:      event,
		Data: map[string]interface{}{
			"log_id": log.ID,
			"status": log.Status,
		},
	})
}
