package ingredient

import (
	"context"

	"github.com/brewlane/cafe-backoffice-go/internal/pkg/validator"
)

type CreateIngredientRequest struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorder_level"`
}

var validUnits = []string{"kg", "g", "l", "ml", "pcs"}

func (r *CreateIngredientRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsInSlice(r.Unit, validUnits) {
		errs = append(errs, validator.ValidationError{Field: "unit", Message: "must be one of kg, g, l, ml, pcs"})
	}
	if r.Quantity < 0 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must not be negative"})
	}
	if r.ReorderLevel < 0 {
		errs = append(errs, validator.ValidationError{Field: "reorder_level", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateIngredientRequest struct {
	ID           string   `json:"-"`
	Name         *string  `json:"name,omitempty"`
	Unit         *string  `json:"unit,omitempty"`
	ReorderLevel *float64 `json:"reorder_level,omitempty"`
}

func (r *UpdateIngredientRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not be empty"})
	}
	if r.Unit != nil && !validator.IsInSlice(*r.Unit, validUnits) {
		errs = append(errs, validator.ValidationError{Field: "unit", Message: "must be one of kg, g, l, ml, pcs"})
	}
	if r.ReorderLevel != nil && *r.ReorderLevel < 0 {
		errs = append(errs, validator.ValidationError{Field: "reorder_level", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdjustStockRequest changes the quantity on hand by a signed delta.
// Negative deltas record consumption, positive deltas record restocks.
type AdjustStockRequest struct {
	ID    string  `json:"-"`
	Delta float64 `json:"delta"`
}

func (r *AdjustStockRequest) Validate() error {
	if r.Delta == 0 {
		return validator.ValidationErrors{
			{Field: "delta", Message: "must not be zero"},
		}
	}
	return nil
}

type IngredientResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Quantity     float64 `json:"quantity"`
	ReorderLevel float64 `json:"reorder_level"`
	LowStock     bool    `json:"low_stock"`
}

func (i Ingredient) ToResponse() IngredientResponse {
	return IngredientResponse{
		ID:           i.ID,
		Name:         i.Name,
		Unit:         i.Unit,
		Quantity:     i.Quantity,
		ReorderLevel: i.ReorderLevel,
		LowStock:     i.LowStock(),
	}
}

type IngredientService interface {
	Create(ctx context.Context, req CreateIngredientRequest) (IngredientResponse, error)
	Update(ctx context.Context, req UpdateIngredientRequest) (IngredientResponse, error)
	AdjustStock(ctx context.Context, req AdjustStockRequest) (IngredientResponse, error)
	Get(ctx context.Context, id string) (IngredientResponse, error)
	List(ctx context.Context) ([]IngredientResponse, error)
	Delete(ctx context.Context, id string) error
}
