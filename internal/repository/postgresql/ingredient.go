package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/ingredient"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type ingredientRepository struct {
	db *database.DB
}

const ingredientColumns = `
	id, name, unit, quantity, reorder_level, created_at, updated_at
`

func scanIngredient(row pgx.Row) (ingredient.Ingredient, error) {
	var i ingredient.Ingredient
	err := row.Scan(
		&i.ID, &i.Name, &i.Unit, &i.Quantity, &i.ReorderLevel, &i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

// Create implements ingredient.IngredientRepository.
func (r *ingredientRepository) Create(ctx context.Context, newIngredient ingredient.Ingredient) (ingredient.Ingredient, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO ingredients (name, unit, quantity, reorder_level)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newIngredient.Name,
		newIngredient.Unit,
		newIngredient.Quantity,
		newIngredient.ReorderLevel,
	).Scan(&newIngredient.ID, &newIngredient.CreatedAt, &newIngredient.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ingredient.Ingredient{}, ingredient.ErrNameExists
		}
		return ingredient.Ingredient{}, fmt.Errorf("failed to create ingredient: %w", err)
	}

	return newIngredient, nil
}

// GetByID implements ingredient.IngredientRepository.
func (r *ingredientRepository) GetByID(ctx context.Context, id string) (ingredient.Ingredient, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`

	i, err := scanIngredient(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ingredient.Ingredient{}, ingredient.ErrIngredientNotFound
		}
		return ingredient.Ingredient{}, fmt.Errorf("failed to get ingredient: %w", err)
	}

	return i, nil
}

// Update implements ingredient.IngredientRepository.
func (r *ingredientRepository) Update(ctx context.Context, req ingredient.UpdateIngredientRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ingredients
		SET name          = COALESCE($2, name),
		    unit          = COALESCE($3, unit),
		    reorder_level = COALESCE($4, reorder_level),
		    updated_at    = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Name, req.Unit, req.ReorderLevel)
	if err != nil {
		if isUniqueViolation(err) {
			return ingredient.ErrNameExists
		}
		return fmt.Errorf("failed to update ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ingredient.ErrIngredientNotFound
	}

	return nil
}

// AdjustQuantity implements ingredient.IngredientRepository. The quantity
// check and the write happen in one statement so concurrent adjustments
// cannot drive stock negative.
func (r *ingredientRepository) AdjustQuantity(ctx context.Context, id string, delta float64) (ingredient.Ingredient, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ingredients
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING ` + ingredientColumns + `
	`

	i, err := scanIngredient(q.QueryRow(ctx, query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row missing or guard rejected: disambiguate for the caller.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return ingredient.Ingredient{}, getErr
			}
			return ingredient.Ingredient{}, ingredient.ErrInsufficientStock
		}
		return ingredient.Ingredient{}, fmt.Errorf("failed to adjust ingredient quantity: %w", err)
	}

	return i, nil
}

// Delete implements ingredient.IngredientRepository.
func (r *ingredientRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ingredient.ErrIngredientNotFound
	}

	return nil
}

// List implements ingredient.IngredientRepository.
func (r *ingredientRepository) List(ctx context.Context) ([]ingredient.Ingredient, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ingredientColumns + ` FROM ingredients ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []ingredient.Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, i)
	}

	return ingredients, nil
}

func NewIngredientRepository(db *database.DB) ingredient.IngredientRepository {
	return &ingredientRepository{db: db}
}
