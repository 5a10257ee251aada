package order

import (
	"context"

	"github.com/brewlane/cafe-backoffice-go/internal/pkg/validator"
)

type CreateOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items"`
	Note  *string                  `json:"note,omitempty"`
}

func (r *CreateOrderRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Items) == 0 {
		errs = append(errs, validator.ValidationError{Field: "items", Message: "at least one item is required"})
	}
	for _, item := range r.Items {
		if !validator.IsValidUUID(item.ProductID) {
			errs = append(errs, validator.ValidationError{Field: "items.product_id", Message: "must be a valid uuid"})
		}
		if item.Quantity <= 0 {
			errs = append(errs, validator.ValidationError{Field: "items.quantity", Message: "must be positive"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OrderFilter struct {
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

func (f *OrderFilter) Validate() error {
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
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OrderItemResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName *string `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	EmployeeID   string              `json:"employee_id"`
	EmployeeName *string             `json:"employee_name,omitempty"`
	Total        float64             `json:"total"`
	Note         *string             `json:"note,omitempty"`
	CreatedAt    string              `json:"created_at"`
	Items        []OrderItemResponse `json:"items"`
}

type ListOrdersResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Orders     []OrderResponse `json:"orders"`
}

type OrderService interface {
	Create(ctx context.Context, req CreateOrderRequest) (OrderResponse, error)
	Get(ctx context.Context, id string) (OrderResponse, error)
	List(ctx context.Context, filter OrderFilter) (ListOrdersResponse, error)
}
