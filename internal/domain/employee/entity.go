package employee

import (
	"time"
)

// Employee is both a staff record and a login principal.
type Employee struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash *string
	Role         Role
	Position     *string
	HourlyWage   *float64
	AvatarURL    *string
	GoogleID     *string
	IsActive     bool
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}
