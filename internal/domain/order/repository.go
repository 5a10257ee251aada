package order

import "context"

type OrderRepository interface {
	// Create inserts the order and its items in one transaction and
	// returns the stored order with generated ids.
	Create(ctx context.Context, newOrder Order) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, filter OrderFilter) ([]Order, int64, error)
}
