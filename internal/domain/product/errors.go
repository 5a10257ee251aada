package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNameExists      = errors.New("product name already exists")
	ErrInvalidImage    = errors.New("image must be a jpg, jpeg, png, or webp file")
)
