package product

import "context"

type ProductRepository interface {
	Create(ctx context.Context, newProduct Product) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, id string, req UpdateProductRequest) error
	SetImageURL(ctx context.Context, id string, url string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
}
