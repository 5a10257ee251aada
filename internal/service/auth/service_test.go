package auth

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/attendance"
	"github.com/brewlane/cafe-backoffice-go/internal/domain/auth"
	"github.com/brewlane/cafe-backoffice-go/internal/domain/employee"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmployeeID = "0190f1a2-0000-7000-8000-0000000000aa"
	testEmail      = "barista@brewlane.test"
	testPassword   = "correct-horse-battery"
)

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if strings.EqualFold(e.Email, email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SetActive(ctx context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.IsActive = active
	f.employees[id] = e
	return nil
}

func (f *fakeEmployeeRepo) SetAvatarURL(ctx context.Context, id string, url string) error {
	return nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

type fakeJWTRepo struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newFakeJWTRepo() *fakeJWTRepo {
	return &fakeJWTRepo{revoked: make(map[string]bool)}
}

func (f *fakeJWTRepo) CreateRefreshToken(ctx context.Context, employeeID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	return nil
}

func (f *fakeJWTRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revoked[token], nil
}

func (f *fakeJWTRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[token] = true
	return nil
}

// fakeAttendanceService records force-logouts and serves a canned session.
type fakeAttendanceService struct {
	forceLogouts int
	session      attendance.SessionResponse
}

func (f *fakeAttendanceService) TimeIn(ctx context.Context) (attendance.LogResponse, error) {
	return attendance.LogResponse{}, nil
}

func (f *fakeAttendanceService) BreakStart(ctx context.Context) (attendance.LogResponse, error) {
	return attendance.LogResponse{}, nil
}

func (f *fakeAttendanceService) BreakEnd(ctx context.Context) (attendance.LogResponse, error) {
	return attendance.LogResponse{}, nil
}

func (f *fakeAttendanceService) TimeOut(ctx context.Context) (attendance.LogResponse, error) {
	return attendance.LogResponse{}, nil
}

func (f *fakeAttendanceService) ForceLogout(ctx context.Context) error {
	f.forceLogouts++
	return nil
}

func (f *fakeAttendanceService) MyLogs(ctx context.Context, filter attendance.LogFilter) (attendance.ListLogsResponse, error) {
	return attendance.ListLogsResponse{}, nil
}

func (f *fakeAttendanceService) ListLogs(ctx context.Context, employeeID string, filter attendance.LogFilter) (attendance.ListLogsResponse, error) {
	return attendance.ListLogsResponse{}, nil
}

func (f *fakeAttendanceService) CorrectTimeOut(ctx context.Context, req attendance.CorrectTimeOutRequest) (attendance.LogResponse, error) {
	return attendance.LogResponse{}, nil
}

func (f *fakeAttendanceService) CurrentSession(ctx context.Context) (attendance.SessionResponse, error) {
	return f.session, nil
}

func newTestAuthService(t *testing.T) (*AuthServiceImpl, *fakeEmployeeRepo, *fakeJWTRepo, *fakeAttendanceService, jwt.Service) {
	t.Helper()
	employees := newFakeEmployeeRepo()
	tokens := newFakeJWTRepo()
	attendanceSvc := &fakeAttendanceService{}
	jwtService := jwt.NewJWTService("test-secret", "1h", "24h")

	svc := &AuthServiceImpl{
		EmployeeRepository: employees,
		Service:            jwtService,
		JWTRepository:      tokens,
		attendanceService:  attendanceSvc,
	}
	return svc, employees, tokens, attendanceSvc, jwtService
}

func seedEmployee(t *testing.T, repo *fakeEmployeeRepo, active bool) employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashStr := string(hash)
	e := employee.Employee{
		ID:           testEmployeeID,
		FullName:     "Test Barista",
		Email:        testEmail,
		PasswordHash: &hashStr,
		Role:         employee.RoleStaff,
		IsActive:     active,
	}
	_, err = repo.Create(context.Background(), e)
	require.NoError(t, err)
	return e
}

func authContext(t *testing.T, jwtService jwt.Service, employeeID string) context.Context {
	t.Helper()
	accessToken, _, err := jwtService.GenerateAccessToken(employeeID, testEmail, employee.RoleStaff)
	require.NoError(t, err)
	token, err := jwtService.JWTAuth().Decode(accessToken)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, employees, _, _, _ := newTestAuthService(t)
	seedEmployee(t, employees, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    testEmail,
		Password: "not-the-password",
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@brewlane.test",
		Password: testPassword,
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	svc, employees, _, _, _ := newTestAuthService(t)
	seedEmployee(t, employees, false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    testEmail,
		Password: testPassword,
	}, auth.SessionTrackingRequest{})

	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestAuthService_Login_NoPasswordSet(t *testing.T) {
	svc, employees, _, _, _ := newTestAuthService(t)
	e := seedEmployee(t, employees, true)
	e.PasswordHash = nil
	_, err := employees.Create(context.Background(), e)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:    testEmail,
		Password: testPassword,
	}, auth.SessionTrackingRequest{})

	// Google-only accounts must not accept any password
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_RefreshToken_IssuesNewAccessToken(t *testing.T) {
	svc, employees, _, _, jwtService := newTestAuthService(t)
	seedEmployee(t, employees, true)

	refreshToken, _, err := jwtService.GenerateRefreshToken(testEmployeeID)
	require.NoError(t, err)

	resp, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, employees, _, _, jwtService := newTestAuthService(t)
	seedEmployee(t, employees, true)

	// An access token has type=access and must not pass as a refresh token
	accessToken, _, err := jwtService.GenerateAccessToken(testEmployeeID, testEmail, employee.RoleStaff)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: accessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_RefreshToken_RejectsRevoked(t *testing.T) {
	svc, employees, tokens, _, jwtService := newTestAuthService(t)
	seedEmployee(t, employees, true)

	refreshToken, _, err := jwtService.GenerateRefreshToken(testEmployeeID)
	require.NoError(t, err)
	require.NoError(t, tokens.RevokeRefreshToken(context.Background(), refreshToken))

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_RefreshToken_RejectsDeactivatedEmployee(t *testing.T) {
	svc, employees, _, _, jwtService := newTestAuthService(t)
	seedEmployee(t, employees, true)

	refreshToken, _, err := jwtService.GenerateRefreshToken(testEmployeeID)
	require.NoError(t, err)
	require.NoError(t, employees.SetActive(context.Background(), testEmployeeID, false))

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: refreshToken})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestAuthService_Logout_AlwaysSucceedsAndForcesAttendanceOut(t *testing.T) {
	svc, employees, tokens, attendanceSvc, jwtService := newTestAuthService(t)
	seedEmployee(t, employees, true)

	refreshToken, _, err := jwtService.GenerateRefreshToken(testEmployeeID)
	require.NoError(t, err)

	ctx := authContext(t, jwtService, testEmployeeID)
	require.NoError(t, svc.Logout(ctx, refreshToken))

	revoked, err := tokens.IsRefreshTokenRevoked(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Equal(t, 1, attendanceSvc.forceLogouts)
}

func TestAuthService_Logout_WithoutRefreshToken(t *testing.T) {
	svc, employees, _, attendanceSvc, jwtService := newTestAuthService(t)
	seedEmployee(t, employees, true)

	ctx := authContext(t, jwtService, testEmployeeID)
	require.NoError(t, svc.Logout(ctx, ""))
	assert.Equal(t, 1, attendanceSvc.forceLogouts)
}

func TestAuthService_Session_ResumesIdentityAndAttendance(t *testing.T) {
	svc, employees, _, attendanceSvc, jwtService := newTestAuthService(t)
	seedEmployee(t, employees, true)

	logID := "log-1"
	attendanceSvc.session = attendance.SessionResponse{
		EmployeeID:     testEmployeeID,
		Status:         attendance.StatusClockedIn,
		CurrentLogID:   &logID,
		ElapsedSeconds: 90,
		Elapsed:        "00:01:30",
	}

	ctx := authContext(t, jwtService, testEmployeeID)
	resp, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	assert.Equal(t, testEmail, resp.Email)
	assert.Equal(t, string(employee.RoleStaff), resp.Role)
	assert.Equal(t, attendance.StatusClockedIn, resp.Attendance.Status)
	assert.Equal(t, "00:01:30", resp.Attendance.Elapsed)
}

func TestAuthService_Session_MissingClaims(t *testing.T) {
	svc, employees, _, _, _ := newTestAuthService(t)
	seedEmployee(t, employees, true)

	_, err := svc.Session(context.Background())
	assert.ErrorIs(t, err, auth.ErrMissingSessionState)
}
