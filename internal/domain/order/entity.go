package order

import "time"

// Order is a completed sale recorded at the counter. Total is computed
// server-side from the catalog prices at creation time and never
// trusted from the client.
type Order struct {
	ID         string
	EmployeeID string
	Total      float64
	Note       *string
	CreatedAt  time.Time

	Items []OrderItem

	// EmployeeName is populated by list queries that join the
	// employees table.
	EmployeeName *string
}

// OrderItem is one line of an order. UnitPrice is the catalog price
// snapshotted when the order was created.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice float64

	ProductName *string
}

// Subtotal returns the line total for the item.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
