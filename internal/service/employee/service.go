package employee

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/employee"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/timezone"
	"github.com/brewlane/cafe-backoffice-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	fileService file.FileService
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository, fileService file.FileService) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
		fileService:        fileService,
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	hireDate := timezone.Today()
	if req.HireDate != nil && *req.HireDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *req.HireDate, timezone.DisplayZone())
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("invalid hire date %q: %w", *req.HireDate, err)
		}
		hireDate = parsed
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: &hashed,
		Role:         req.Role,
		Position:     req.Position,
		HourlyWage:   req.HourlyWage,
		IsActive:     true,
		HireDate:     hireDate,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return created.ToResponse(), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// The repository writes password_hash verbatim, so replace the
	// plaintext with its hash before it crosses that boundary.
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		req.Password = &hashed
	}

	if err := s.EmployeeRepository.Update(ctx, req.ID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return updated.ToResponse(), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return e.ToResponse(), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeesResponse, error) {
	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, e.ToResponse())
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	return employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Employees:  responses,
	}, nil
}

// Deactivate implements employee.EmployeeService. An admin cannot
// deactivate their own account.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err == nil {
		if callerID, ok := claims["employee_id"].(string); ok && callerID == id {
			return employee.ErrCannotDeactivateSelf
		}
	}

	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !e.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}

	return s.EmployeeRepository.SetActive(ctx, id, false)
}

// UploadAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, id string, f io.Reader, filename string) (employee.EmployeeResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, id); err != nil {
		return employee.EmployeeResponse{}, err
	}

	url, err := s.fileService.UploadAvatar(ctx, id, f, filename)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.EmployeeRepository.SetAvatarURL(ctx, id, url); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return updated.ToResponse(), nil
}
