package employee

import (
	"context"
	"io"

	"github.com/brewlane/cafe-backoffice-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName   string   `json:"full_name"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Role       Role     `json:"role"`
	Position   *string  `json:"position,omitempty"`
	HourlyWage *float64 `json:"hourly_wage,omitempty"`
	HireDate   *string  `json:"hire_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if !r.Role.Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin or staff"})
	}
	if r.HourlyWage != nil && *r.HourlyWage < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "must not be negative"})
	}
	if r.HireDate != nil && *r.HireDate != "" {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string   `json:"-"`
	FullName   *string  `json:"full_name,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Password   *string  `json:"password,omitempty"`
	Role       *Role    `json:"role,omitempty"`
	Position   *string  `json:"position,omitempty"`
	HourlyWage *float64 `json:"hourly_wage,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.Role != nil && !r.Role.Valid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin or staff"})
	}
	if r.HourlyWage != nil && *r.HourlyWage < 0 {
		errs = append(errs, validator.ValidationError{Field: "hourly_wage", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Name     *string
	Role     *Role
	Inactive bool
	Page     int
	Limit    int
}

type EmployeeResponse struct {
	ID         string   `json:"id"`
	FullName   string   `json:"full_name"`
	Email      string   `json:"email"`
	Role       Role     `json:"role"`
	Position   *string  `json:"position,omitempty"`
	HourlyWage *float64 `json:"hourly_wage,omitempty"`
	AvatarURL  *string  `json:"avatar_url,omitempty"`
	IsActive   bool     `json:"is_active"`
	HireDate   string   `json:"hire_date"`
	CreatedAt  string   `json:"created_at"`
}

func (e Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       e.Role,
		Position:   e.Position,
		HourlyWage: e.HourlyWage,
		AvatarURL:  e.AvatarURL,
		IsActive:   e.IsActive,
		HireDate:   e.HireDate.Format("2006-01-02"),
		CreatedAt:  e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

// EmployeeService defines business logic for employee account management.
type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)
	Deactivate(ctx context.Context, id string) error
	UploadAvatar(ctx context.Context, id string, file io.Reader, filename string) (EmployeeResponse, error)
}
