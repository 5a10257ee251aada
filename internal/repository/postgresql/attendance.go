package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/attendance"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.employee_id, a.status,
	a.time_in, a.break_start, a.break_end, a.time_out,
	a.timer_start, a.created_at, a.updated_at
`

func scanAttendanceLog(row pgx.Row) (attendance.AttendanceLog, error) {
	var log attendance.AttendanceLog
	err := row.Scan(
		&log.ID, &log.EmployeeID, &log.Status,
		&log.TimeIn, &log.BreakStart, &log.BreakEnd, &log.TimeOut,
		&log.TimerStart, &log.CreatedAt, &log.UpdatedAt,
	)
	return log, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, log attendance.AttendanceLog) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_logs (employee_id, status, time_in, timer_start)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.EmployeeID,
		log.Status,
		log.TimeIn,
		log.TimerStart,
	).Scan(&log.ID, &log.CreatedAt, &log.UpdatedAt)

	if err != nil {
		return attendance.AttendanceLog{}, fmt.Errorf("failed to create attendance log: %w", err)
	}

	return log, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_logs a
		WHERE a.id = $1
	`

	log, err := scanAttendanceLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, attendance.ErrLogNotFound
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to get attendance log: %w", err)
	}

	return log, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_logs a
		WHERE a.employee_id = $1
		  AND a.time_out IS NULL
		ORDER BY a.time_in DESC
		LIMIT 1
	`

	log, err := scanAttendanceLog(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceLog{}, attendance.ErrSessionNotFound
		}
		return attendance.AttendanceLog{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return log, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, filter attendance.LogFilter) ([]attendance.AttendanceLog, int64, error) {
	q := GetQuerier(ctx, a.db)

	// Build WHERE clause
	baseWhere := "a.employee_id = $1"
	args := []interface{}{employeeID}
	argIdx := 2

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.time_in >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.time_in < $%d::date + INTERVAL '1 day'", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total
	countQuery := "SELECT COUNT(*) FROM attendance_logs a WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance logs: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+attendanceColumns+`,
			e.full_name AS employee_name
		FROM attendance_logs a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.time_in %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance logs: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		var log attendance.AttendanceLog
		err := rows.Scan(
			&log.ID, &log.EmployeeID, &log.Status,
			&log.TimeIn, &log.BreakStart, &log.BreakEnd, &log.TimeOut,
			&log.TimerStart, &log.CreatedAt, &log.UpdatedAt,
			&log.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance log: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, total, nil
}

// StartBreak implements attendance.AttendanceRepository.
func (a *attendanceRepository) StartBreak(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_logs
		SET break_start = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, at, attendance.StatusOnBreak)
	if err != nil {
		return fmt.Errorf("failed to start break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}

	return nil
}

// EndBreak implements attendance.AttendanceRepository. The timer restarts
// from the break-end instant, discarding the paused stretch.
func (a *attendanceRepository) EndBreak(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_logs
		SET break_end = $2, timer_start = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, at, attendance.StatusClockedIn)
	if err != nil {
		return fmt.Errorf("failed to end break: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}

	return nil
}

// Close implements attendance.AttendanceRepository.
func (a *attendanceRepository) Close(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_logs
		SET time_out = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, at, attendance.StatusClockedOut)
	if err != nil {
		return fmt.Errorf("failed to close attendance log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}

	return nil
}

// SetTimeOut implements attendance.AttendanceRepository. Writes time_out
// only; the correction flow must not disturb any other column.
func (a *attendanceRepository) SetTimeOut(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_logs
		SET time_out = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to set time out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLogNotFound
	}

	return nil
}

// GetStaleOpenSessions implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetStaleOpenSessions(ctx context.Context, olderThan time.Duration) ([]attendance.AttendanceLog, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_logs a
		WHERE a.time_out IS NULL
		  AND a.time_in < $1
		ORDER BY a.time_in ASC
	`

	rows, err := q.Query(ctx, query, time.Now().UTC().Add(-olderThan))
	if err != nil {
		return nil, fmt.Errorf("failed to query stale open sessions: %w", err)
	}
	defer rows.Close()

	var logs []attendance.AttendanceLog
	for rows.Next() {
		log, err := scanAttendanceLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stale session: %w", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
