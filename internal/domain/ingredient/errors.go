package ingredient

import "errors"

var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrNameExists         = errors.New("ingredient name already exists")
	ErrInsufficientStock  = errors.New("insufficient stock for adjustment")
)
