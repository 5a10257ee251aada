package attendance

import (
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/pkg/validator"
)

// LogFilter filters an employee's attendance history.
type LogFilter struct {
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
	SortOrder string
}

func (f *LogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if f.SortOrder != "" && !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "must be asc or desc"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CorrectTimeOutRequest is the manager-facing time-out correction: a "HH:MM"
// wall-clock input combined with a date (defaults to today in the display
// zone) overwrites only the targeted log's time_out.
type CorrectTimeOutRequest struct {
	LogID     string  `json:"-"`
	ClockTime string  `json:"time_out"`
	Date      *string `json:"date,omitempty"`
}

func (r *CorrectTimeOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LogID) {
		errs = append(errs, validator.ValidationError{Field: "log_id", Message: "log id is required"})
	}
	if validator.IsEmpty(r.ClockTime) {
		errs = append(errs, validator.ValidationError{Field: "time_out", Message: "time out is required"})
	} else if !validator.IsValidClockTime(r.ClockTime) {
		errs = append(errs, validator.ValidationError{Field: "time_out", Message: "must be in HH:MM format"})
	}
	if r.Date != nil && *r.Date != "" {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LogResponse is one attendance log formatted for display: timestamps as
// local strings in the target display zone (empty string when unset) plus
// the raw instants for clients that do their own math.
type LogResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Status       Status  `json:"status"`
	Date         string  `json:"date"`
	TimeIn       string  `json:"time_in"`
	BreakStart   string  `json:"break_start"`
	BreakEnd     string  `json:"break_end"`
	TimeOut      string  `json:"time_out"`
	// NeedsTimeOut invites the correction flow instead of a blank cell.
	NeedsTimeOut   bool       `json:"needs_time_out"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
	Elapsed        string     `json:"elapsed"`
	TimeInAt       time.Time  `json:"time_in_at"`
	BreakStartAt   *time.Time `json:"break_start_at,omitempty"`
	BreakEndAt     *time.Time `json:"break_end_at,omitempty"`
	TimeOutAt      *time.Time `json:"time_out_at,omitempty"`
}

type ListLogsResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Showing    string        `json:"showing"`
	Logs       []LogResponse `json:"logs"`
}

// SessionResponse is the resume payload: who is logged in, their current
// status, and the open log pointer if any.
type SessionResponse struct {
	EmployeeID     string  `json:"employee_id"`
	Status         Status  `json:"status"`
	CurrentLogID   *string `json:"current_log_id,omitempty"`
	ElapsedSeconds int64   `json:"elapsed_seconds"`
	Elapsed        string  `json:"elapsed"`
}
