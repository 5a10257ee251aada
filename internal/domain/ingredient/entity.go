package ingredient

import "time"

// Ingredient is a stock item tracked by the back office. Quantity is
// stored in the unit declared on the row (kg, l, pcs, ...).
type Ingredient struct {
	ID           string
	Name         string
	Unit         string
	Quantity     float64
	ReorderLevel float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock reports whether the ingredient has fallen to or below its
// reorder level.
func (i Ingredient) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}
