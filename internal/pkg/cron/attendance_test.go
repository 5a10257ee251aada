package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reaperFakeRepo struct {
	logs      map[string]attendance.AttendanceLog
	failClose map[string]bool
}

func newReaperFakeRepo() *reaperFakeRepo {
	return &reaperFakeRepo{
		logs:      make(map[string]attendance.AttendanceLog),
		failClose: make(map[string]bool),
	}
}

func (r *reaperFakeRepo) Create(ctx context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	r.logs[log.ID] = log
	return log, nil
}

func (r *reaperFakeRepo) GetByID(ctx context.Context, id string) (attendance.AttendanceLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return attendance.AttendanceLog{}, attendance.ErrLogNotFound
	}
	return log, nil
}

func (r *reaperFakeRepo) GetOpenSession(ctx context.Context, employeeID string) (attendance.AttendanceLog, error) {
	return attendance.AttendanceLog{}, attendance.ErrSessionNotFound
}

func (r *reaperFakeRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.LogFilter) ([]attendance.AttendanceLog, int64, error) {
	return nil, 0, nil
}

func (r *reaperFakeRepo) StartBreak(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (r *reaperFakeRepo) EndBreak(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (r *reaperFakeRepo) Close(ctx context.Context, id string, at time.Time) error {
	if r.failClose[id] {
		return errors.New("store unavailable")
	}
	log, ok := r.logs[id]
	if !ok {
		return attendance.ErrLogNotFound
	}
	out := at
	log.TimeOut = &out
	log.Status = attendance.StatusClockedOut
	r.logs[id] = log
	return nil
}

func (r *reaperFakeRepo) SetTimeOut(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (r *reaperFakeRepo) GetStaleOpenSessions(ctx context.Context, olderThan time.Duration) ([]attendance.AttendanceLog, error) {
	cutoff := time.Now().Add(-olderThan)
	var stale []attendance.AttendanceLog
	for _, log := range r.logs {
		if log.TimeOut == nil && log.TimeIn.Before(cutoff) {
			stale = append(stale, log)
		}
	}
	return stale, nil
}

func seedOpenLog(repo *reaperFakeRepo, id string, status attendance.Status, age time.Duration) attendance.AttendanceLog {
	log := attendance.AttendanceLog{
		ID:         id,
		EmployeeID: "emp-" + id,
		Status:     status,
		TimeIn:     time.Now().Add(-age).UTC(),
	}
	repo.logs[id] = log
	return log
}

func TestCloseStaleSessions_ClosesOldOpenLogs(t *testing.T) {
	repo := newReaperFakeRepo()
	cutoff := 16 * time.Hour
	stale := seedOpenLog(repo, "stale", attendance.StatusClockedIn, 20*time.Hour)
	seedOpenLog(repo, "fresh", attendance.StatusClockedIn, 2*time.Hour)

	jobs := NewAttendanceJobs(repo, cutoff)
	require.NoError(t, jobs.CloseStaleSessions(context.Background()))

	closed := repo.logs["stale"]
	require.NotNil(t, closed.TimeOut)
	assert.Equal(t, attendance.StatusClockedOut, closed.Status)
	// Synthetic time-out caps the session at time_in + cutoff
	assert.Equal(t, stale.TimeIn.Add(cutoff), *closed.TimeOut)

	assert.Nil(t, repo.logs["fresh"].TimeOut)
}

func TestCloseStaleSessions_ClosesDanglingBreakRows(t *testing.T) {
	// A forced logout during a break leaves the row open with status
	// on_break; the sweep must close it like any other stale session.
	repo := newReaperFakeRepo()
	seedOpenLog(repo, "dangling", attendance.StatusOnBreak, 24*time.Hour)

	jobs := NewAttendanceJobs(repo, 16*time.Hour)
	require.NoError(t, jobs.CloseStaleSessions(context.Background()))

	closed := repo.logs["dangling"]
	require.NotNil(t, closed.TimeOut)
	assert.Equal(t, attendance.StatusClockedOut, closed.Status)
}

func TestCloseStaleSessions_ContinuesPastFailures(t *testing.T) {
	repo := newReaperFakeRepo()
	seedOpenLog(repo, "broken", attendance.StatusClockedIn, 20*time.Hour)
	seedOpenLog(repo, "ok", attendance.StatusClockedIn, 20*time.Hour)
	repo.failClose["broken"] = true

	jobs := NewAttendanceJobs(repo, 16*time.Hour)
	require.NoError(t, jobs.CloseStaleSessions(context.Background()))

	assert.Nil(t, repo.logs["broken"].TimeOut)
	assert.NotNil(t, repo.logs["ok"].TimeOut)
}

func TestCloseStaleSessions_NoStaleSessions(t *testing.T) {
	repo := newReaperFakeRepo()
	seedOpenLog(repo, "fresh", attendance.StatusClockedIn, 1*time.Hour)

	jobs := NewAttendanceJobs(repo, 16*time.Hour)
	require.NoError(t, jobs.CloseStaleSessions(context.Background()))
	assert.Nil(t, repo.logs["fresh"].TimeOut)
}
