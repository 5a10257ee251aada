package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/product"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type productRepository struct {
	db *database.DB
}

const productColumns = `
	id, name, category, price, description, image_url, is_available,
	created_at, updated_at
`

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Description, &p.ImageURL, &p.IsAvailable,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements product.ProductRepository.
func (r *productRepository) Create(ctx context.Context, newProduct product.Product) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO products (name, category, price, description, is_available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newProduct.Name,
		newProduct.Category,
		newProduct.Price,
		newProduct.Description,
		newProduct.IsAvailable,
	).Scan(&newProduct.ID, &newProduct.CreatedAt, &newProduct.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return product.Product{}, product.ErrNameExists
		}
		return product.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return newProduct, nil
}

// GetByID implements product.ProductRepository.
func (r *productRepository) GetByID(ctx context.Context, id string) (product.Product, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrProductNotFound
		}
		return product.Product{}, fmt.Errorf("failed to get product: %w", err)
	}

	return p, nil
}

// Update implements product.ProductRepository.
func (r *productRepository) Update(ctx context.Context, id string, req product.UpdateProductRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE products
		SET name         = COALESCE($2, name),
		    category     = COALESCE($3, category),
		    price        = COALESCE($4, price),
		    description  = COALESCE($5, description),
		    is_available = COALESCE($6, is_available),
		    updated_at   = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, req.Name, req.Category, req.Price, req.Description, req.IsAvailable)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrNameExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

// SetImageURL implements product.ProductRepository.
func (r *productRepository) SetImageURL(ctx context.Context, id string, url string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE products SET image_url = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, url)
	if err != nil {
		return fmt.Errorf("failed to set product image url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

// Delete implements product.ProductRepository.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

// List implements product.ProductRepository.
func (r *productRepository) List(ctx context.Context, filter product.ProductFilter) ([]product.Product, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if !filter.Unavailable {
		baseWhere += " AND is_available = true"
	}
	if filter.Category != nil && *filter.Category != "" {
		baseWhere += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Name != nil && *filter.Name != "" {
		baseWhere += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.Name+"%")
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM products WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+productColumns+`
		FROM products
		WHERE %s
		ORDER BY category ASC, name ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, total, nil
}

func NewProductRepository(db *database.DB) product.ProductRepository {
	return &productRepository{db: db}
}
