package ingredient

import (
	"context"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/ingredient"
)

type IngredientServiceImpl struct {
	ingredient.IngredientRepository
}

func NewIngredientService(ingredientRepository ingredient.IngredientRepository) ingredient.IngredientService {
	return &IngredientServiceImpl{
		IngredientRepository: ingredientRepository,
	}
}

// Create implements ingredient.IngredientService.
func (s *IngredientServiceImpl) Create(ctx context.Context, req ingredient.CreateIngredientRequest) (ingredient.IngredientResponse, error) {
	if err := req.Validate(); err != nil {
		return ingredient.IngredientResponse{}, err
	}

	created, err := s.IngredientRepository.Create(ctx, ingredient.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderLevel: req.ReorderLevel,
	})
	if err != nil {
		return ingredient.IngredientResponse{}, err
	}

	return created.ToResponse(), nil
}

// Update implements ingredient.IngredientService.
func (s *IngredientServiceImpl) Update(ctx context.Context, req ingredient.UpdateIngredientRequest) (ingredient.IngredientResponse, error) {
	if err := req.Validate(); err != nil {
		return ingredient.IngredientResponse{}, err
	}

	if err := s.IngredientRepository.Update(ctx, req); err != nil {
		return ingredient.IngredientResponse{}, err
	}

	updated, err := s.IngredientRepository.GetByID(ctx, req.ID)
	if err != nil {
		return ingredient.IngredientResponse{}, err
	}

	return updated.ToResponse(), nil
}

// AdjustStock implements ingredient.IngredientService.
func (s *IngredientServiceImpl) AdjustStock(ctx context.Context, req ingredient.AdjustStockRequest) (ingredient.IngredientResponse, error) {
	if err := req.Validate(); err != nil {
		return ingredient.IngredientResponse{}, err
	}

	adjusted, err := s.IngredientRepository.AdjustQuantity(ctx, req.ID, req.Delta)
	if err != nil {
		return ingredient.IngredientResponse{}, err
	}

	return adjusted.ToResponse(), nil
}

// Get implements ingredient.IngredientService.
func (s *IngredientServiceImpl) Get(ctx context.Context, id string) (ingredient.IngredientResponse, error) {
	i, err := s.IngredientRepository.GetByID(ctx, id)
	if err != nil {
		return ingredient.IngredientResponse{}, err
	}
	return i.ToResponse(), nil
}

// List implements ingredient.IngredientService.
func (s *IngredientServiceImpl) List(ctx context.Context) ([]ingredient.IngredientResponse, error) {
	ingredients, err := s.IngredientRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]ingredient.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		responses = append(responses, i.ToResponse())
	}

	return responses, nil
}

// Delete implements ingredient.IngredientService.
func (s *IngredientServiceImpl) Delete(ctx context.Context, id string) error {
	return s.IngredientRepository.Delete(ctx, id)
}
