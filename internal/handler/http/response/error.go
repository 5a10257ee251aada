package response

import (
	"errors"
	"net/http"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/attendance"
	"github.com/brewlane/cafe-backoffice-go/internal/domain/auth"
	"github.com/brewlane/cafe-backoffice-go/internal/domain/employee"
	"github.com/brewlane/cafe-backoffice-go/internal/domain/ingredient"
	"github.com/brewlane/cafe-backoffice-go/internal/domain/order"
	"github.com/brewlane/cafe-backoffice-go/internal/domain/product"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrMissingSessionState):
		Unauthorized(w, "No remembered session")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn),
		errors.Is(err, attendance.ErrNotClockedIn),
		errors.Is(err, attendance.ErrAlreadyOnBreak),
		errors.Is(err, attendance.ErrNotOnBreak),
		errors.Is(err, attendance.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrLogNotFound):
		NotFound(w, "Attendance log not found")
	case errors.Is(err, attendance.ErrSessionNotFound):
		NotFound(w, "No open attendance session")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")
	case errors.Is(err, employee.ErrCannotDeactivateSelf):
		BadRequest(w, "Cannot deactivate your own account", nil)
	case errors.Is(err, employee.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)

	// Product domain errors
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, product.ErrNameExists):
		Conflict(w, "Product name already exists")
	case errors.Is(err, product.ErrInvalidImage):
		BadRequest(w, err.Error(), nil)

	// Ingredient domain errors
	case errors.Is(err, ingredient.ErrIngredientNotFound):
		NotFound(w, "Ingredient not found")
	case errors.Is(err, ingredient.ErrNameExists):
		Conflict(w, "Ingredient name already exists")
	case errors.Is(err, ingredient.ErrInsufficientStock):
		Conflict(w, "Insufficient stock for adjustment")

	// Order domain errors
	case errors.Is(err, order.ErrOrderNotFound):
		NotFound(w, "Order not found")
	case errors.Is(err, order.ErrEmptyOrder):
		BadRequest(w, "Order has no items", nil)
	case errors.Is(err, order.ErrProductUnavailable):
		Conflict(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
