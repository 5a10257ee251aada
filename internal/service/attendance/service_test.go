package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/attendance"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/sse"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/timezone"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/tracker"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "0190f1a2-0000-7000-8000-000000000001"

// fakeAttendanceRepo is an in-memory attendance.AttendanceRepository with
// the same column-scoped write semantics as the postgres implementation.
type fakeAttendanceRepo struct {
	mu     sync.Mutex
	logs   map[string]attendance.AttendanceLog
	nextID int

	// failClose simulates a remote write failure on Close.
	failClose bool
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{logs: make(map[string]attendance.AttendanceLog)}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	log.ID = fmt.Sprintf("log-%d", f.nextID)
	log.CreatedAt = time.Now().UTC()
	log.UpdatedAt = log.CreatedAt
	f.logs[log.ID] = log
	return log, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.AttendanceLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	log, ok := f.logs[id]
	if !ok {
		return attendance.AttendanceLog{}, attendance.ErrLogNotFound
	}
	return log, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(_ context.Context, employeeID string) (attendance.AttendanceLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var open *attendance.AttendanceLog
	for _, log := range f.logs {
		if log.EmployeeID == employeeID && log.TimeOut == nil {
			if open == nil || log.TimeIn.After(open.TimeIn) {
				l := log
				open = &l
			}
		}
	}
	if open == nil {
		return attendance.AttendanceLog{}, attendance.ErrSessionNotFound
	}
	return *open, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, filter attendance.LogFilter) ([]attendance.AttendanceLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var logs []attendance.AttendanceLog
	for _, log := range f.logs {
		if log.EmployeeID == employeeID {
			logs = append(logs, log)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].TimeIn.After(logs[j].TimeIn) })

	total := int64(len(logs))
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start > len(logs) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(logs) {
		end = len(logs)
	}
	return logs[start:end], total, nil
}

func (f *fakeAttendanceRepo) StartBreak(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log, ok := f.logs[id]
	if !ok {
		return attendance.ErrLogNotFound
	}
	log.BreakStart = &at
	log.Status = attendance.StatusOnBreak
	f.logs[id] = log
	return nil
}

func (f *fakeAttendanceRepo) EndBreak(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log, ok := f.logs[id]
	if !ok {
		return attendance.ErrLogNotFound
	}
	log.BreakEnd = &at
	log.TimerStart = at
	log.Status = attendance.StatusClockedIn
	f.logs[id] = log
	return nil
}

func (f *fakeAttendanceRepo) Close(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failClose {
		return errors.New("remote store unavailable")
	}
	log, ok := f.logs[id]
	if !ok {
		return attendance.ErrLogNotFound
	}
	log.TimeOut = &at
	log.Status = attendance.StatusClockedOut
	f.logs[id] = log
	return nil
}

func (f *fakeAttendanceRepo) SetTimeOut(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log, ok := f.logs[id]
	if !ok {
		return attendance.ErrLogNotFound
	}
	log.TimeOut = &at
	f.logs[id] = log
	return nil
}

func (f *fakeAttendanceRepo) GetStaleOpenSessions(_ context.Context, olderThan time.Duration) ([]attendance.AttendanceLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := time.Now().UTC().Add(-olderThan)
	var stale []attendance.AttendanceLog
	for _, log := range f.logs {
		if log.TimeOut == nil && log.TimeIn.Before(cutoff) {
			stale = append(stale, log)
		}
	}
	return stale, nil
}

func newTestService(repo *fakeAttendanceRepo) (attendance.AttendanceService, *tracker.Manager) {
	trackers := tracker.NewManager()
	return NewAttendanceService(repo, trackers, sse.NewHub()), trackers
}

func authContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"employee_id": employeeID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestAttendanceService_TimeIn_OpensSession(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	resp, err := svc.TimeIn(ctx)

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedIn, resp.Status)
	assert.True(t, resp.NeedsTimeOut)
	assert.NotEmpty(t, resp.TimeIn)
	assert.Empty(t, resp.TimeOut)
	assert.NotNil(t, trackers.Get(testEmployeeID))

	stored, err := repo.GetOpenSession(ctx, testEmployeeID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, stored.ID)
}

func TestAttendanceService_TimeIn_RejectsSecondOpenSession(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	_, err := svc.TimeIn(ctx)
	require.NoError(t, err)

	_, err = svc.TimeIn(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestAttendanceService_TimeIn_MissingClaims(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()

	_, err := svc.TimeIn(context.Background())
	assert.Error(t, err)
}

func TestAttendanceService_BreakStart_RequiresOpenSession(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	_, err := svc.BreakStart(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAttendanceService_BreakStart_RejectsDoubleBreak(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	_, err := svc.TimeIn(ctx)
	require.NoError(t, err)
	_, err = svc.BreakStart(ctx)
	require.NoError(t, err)

	_, err = svc.BreakStart(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)
}

func TestAttendanceService_BreakEnd_RequiresOpenBreak(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	_, err := svc.TimeIn(ctx)
	require.NoError(t, err)

	_, err = svc.BreakEnd(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotOnBreak)
}

func TestAttendanceService_FullDay_TimestampsOrdered(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	resp, err := svc.TimeIn(ctx)
	require.NoError(t, err)
	_, err = svc.BreakStart(ctx)
	require.NoError(t, err)
	_, err = svc.BreakEnd(ctx)
	require.NoError(t, err)
	final, err := svc.TimeOut(ctx)
	require.NoError(t, err)

	assert.Equal(t, resp.ID, final.ID)
	assert.Equal(t, attendance.StatusClockedOut, final.Status)
	assert.False(t, final.NeedsTimeOut)

	stored, err := repo.GetByID(ctx, final.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.BreakStart)
	require.NotNil(t, stored.BreakEnd)
	require.NotNil(t, stored.TimeOut)
	assert.True(t, stored.TimestampsOrdered())

	// The session is closed: the employee can clock in fresh.
	_, err = repo.GetOpenSession(ctx, testEmployeeID)
	assert.ErrorIs(t, err, attendance.ErrSessionNotFound)
	assert.Nil(t, trackers.Get(testEmployeeID))
}

func TestAttendanceService_TimeOut_AllowedFromBreak(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	_, err := svc.TimeIn(ctx)
	require.NoError(t, err)
	_, err = svc.BreakStart(ctx)
	require.NoError(t, err)

	final, err := svc.TimeOut(ctx)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedOut, final.Status)
	require.NotNil(t, final.TimeOutAt)
	assert.Nil(t, final.BreakEndAt)
}

func TestAttendanceService_ForceLogout_ClosesClockedInSession(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	resp, err := svc.TimeIn(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.ForceLogout(ctx))

	stored, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedOut, stored.Status)
	assert.NotNil(t, stored.TimeOut)
	assert.Nil(t, trackers.Get(testEmployeeID))
}

func TestAttendanceService_ForceLogout_OnBreakLeavesRowOpen(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	resp, err := svc.TimeIn(ctx)
	require.NoError(t, err)
	_, err = svc.BreakStart(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.ForceLogout(ctx))

	// The persisted row is deliberately untouched: still on break, no
	// time out. Only the local session ends.
	stored, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnBreak, stored.Status)
	assert.Nil(t, stored.TimeOut)
	assert.NotNil(t, stored.BreakStart)
	assert.Nil(t, stored.BreakEnd)
	assert.Nil(t, trackers.Get(testEmployeeID))
}

func TestAttendanceService_ForceLogout_RemoteFailureStillLogsOut(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	_, err := svc.TimeIn(ctx)
	require.NoError(t, err)

	repo.failClose = true
	err = svc.ForceLogout(ctx)

	assert.NoError(t, err)
	assert.Nil(t, trackers.Get(testEmployeeID))
}

func TestAttendanceService_ForceLogout_NoOpenSession(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	assert.NoError(t, svc.ForceLogout(ctx))
}

func TestAttendanceService_CorrectTimeOut_WritesOnlyTimeOut(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	// A dangling on-break row left by a forced logout.
	resp, err := svc.TimeIn(ctx)
	require.NoError(t, err)
	_, err = svc.BreakStart(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.ForceLogout(ctx))

	before, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)

	date := time.Now().In(timezone.DisplayZone()).Format("2006-01-02")
	corrected, err := svc.CorrectTimeOut(ctx, attendance.CorrectTimeOutRequest{
		LogID:     resp.ID,
		ClockTime: "14:30",
		Date:      &date,
	})

	require.NoError(t, err)
	assert.Equal(t, "2:30 PM", corrected.TimeOut)

	after, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, after.TimeOut)

	// Wall-clock 14:30 in the display zone is 06:30 UTC.
	assert.Equal(t, 6, after.TimeOut.UTC().Hour())
	assert.Equal(t, 30, after.TimeOut.UTC().Minute())
	assert.Equal(t, 0, after.TimeOut.UTC().Second())

	// Every other column is untouched, including the dangling status.
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.TimeIn, after.TimeIn)
	assert.Equal(t, before.BreakStart, after.BreakStart)
	assert.Equal(t, before.BreakEnd, after.BreakEnd)
	assert.Equal(t, before.TimerStart, after.TimerStart)
}

func TestAttendanceService_CorrectTimeOut_Validation(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	_, err := svc.CorrectTimeOut(ctx, attendance.CorrectTimeOutRequest{LogID: "log-1", ClockTime: ""})
	assert.Error(t, err)

	_, err = svc.CorrectTimeOut(ctx, attendance.CorrectTimeOutRequest{LogID: "log-1", ClockTime: "25:99"})
	assert.Error(t, err)
}

func TestAttendanceService_CorrectTimeOut_UnknownLog(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	_, err := svc.CorrectTimeOut(ctx, attendance.CorrectTimeOutRequest{LogID: "missing", ClockTime: "09:00"})
	assert.ErrorIs(t, err, attendance.ErrLogNotFound)
}

func TestAttendanceService_MyLogs_Pagination(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	base := time.Now().UTC().Add(-72 * time.Hour)
	for i := 0; i < 5; i++ {
		timeIn := base.Add(time.Duration(i) * 24 * time.Hour)
		timeOut := timeIn.Add(8 * time.Hour)
		_, err := repo.Create(ctx, attendance.AttendanceLog{
			EmployeeID: testEmployeeID,
			Status:     attendance.StatusClockedOut,
			TimeIn:     timeIn,
			TimerStart: timeIn,
			TimeOut:    &timeOut,
		})
		require.NoError(t, err)
	}

	resp, err := svc.MyLogs(ctx, attendance.LogFilter{Page: 1, Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.TotalCount)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, "1-2 of 5", resp.Showing)
	require.Len(t, resp.Logs, 2)

	// Closed entries freeze elapsed at time_out regardless of when the
	// list is loaded.
	assert.Equal(t, int64(8*3600), resp.Logs[0].ElapsedSeconds)
	assert.Equal(t, "08:00:00", resp.Logs[0].Elapsed)
	assert.False(t, resp.Logs[0].NeedsTimeOut)
}

func TestAttendanceService_MyLogs_FlagsMissingTimeOut(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	timeIn := time.Now().UTC().Add(-2 * time.Hour)
	_, err := repo.Create(ctx, attendance.AttendanceLog{
		EmployeeID: testEmployeeID,
		Status:     attendance.StatusOnBreak,
		TimeIn:     timeIn,
		TimerStart: timeIn,
		BreakStart: &timeIn,
	})
	require.NoError(t, err)

	resp, err := svc.MyLogs(ctx, attendance.LogFilter{})

	require.NoError(t, err)
	require.Len(t, resp.Logs, 1)
	assert.True(t, resp.Logs[0].NeedsTimeOut)
	assert.Empty(t, resp.Logs[0].TimeOut)
}

func TestAttendanceService_CurrentSession_NoSession(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	resp, err := svc.CurrentSession(ctx)

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedOut, resp.Status)
	assert.Nil(t, resp.CurrentLogID)
	assert.Equal(t, "00:00:00", resp.Elapsed)
}

func TestAttendanceService_CurrentSession_RecomputesAfterRestart(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc, trackers := newTestService(repo)
	defer trackers.StopAll()
	ctx := authContext(t, testEmployeeID)

	// Session persisted by a previous process: no live tracker exists,
	// elapsed comes from now minus the stored timer start.
	timerStart := time.Now().UTC().Add(-90 * time.Second)
	created, err := repo.Create(ctx, attendance.AttendanceLog{
		EmployeeID: testEmployeeID,
		Status:     attendance.StatusClockedIn,
		TimeIn:     timerStart,
		TimerStart: timerStart,
	})
	require.NoError(t, err)

	resp, err := svc.CurrentSession(ctx)

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClockedIn, resp.Status)
	require.NotNil(t, resp.CurrentLogID)
	assert.Equal(t, created.ID, *resp.CurrentLogID)
	assert.InDelta(t, 90, resp.ElapsedSeconds, 2)
}
