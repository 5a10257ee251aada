package ingredient

import "context"

type IngredientRepository interface {
	Create(ctx context.Context, newIngredient Ingredient) (Ingredient, error)
	GetByID(ctx context.Context, id string) (Ingredient, error)
	Update(ctx context.Context, req UpdateIngredientRequest) error
	AdjustQuantity(ctx context.Context, id string, delta float64) (Ingredient, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Ingredient, error)
}
