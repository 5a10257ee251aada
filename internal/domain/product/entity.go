package product

import (
	"time"
)

type Product struct {
	ID          string
	Name        string
	Category    string
	Price       float64
	Description *string
	ImageURL    *string
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
