package product

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/product"
	"github.com/brewlane/cafe-backoffice-go/internal/service/file"
)

type ProductServiceImpl struct {
	product.ProductRepository
	fileService file.FileService
}

func NewProductService(productRepository product.ProductRepository, fileService file.FileService) product.ProductService {
	return &ProductServiceImpl{
		ProductRepository: productRepository,
		fileService:       fileService,
	}
}

// Create implements product.ProductService.
func (s *ProductServiceImpl) Create(ctx context.Context, req product.CreateProductRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}

	created, err := s.ProductRepository.Create(ctx, product.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		IsAvailable: true,
	})
	if err != nil {
		return product.ProductResponse{}, err
	}

	return created.ToResponse(), nil
}

// Update implements product.ProductService.
func (s *ProductServiceImpl) Update(ctx context.Context, req product.UpdateProductRequest) (product.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return product.ProductResponse{}, err
	}

	if err := s.ProductRepository.Update(ctx, req.ID, req); err != nil {
		return product.ProductResponse{}, err
	}

	updated, err := s.ProductRepository.GetByID(ctx, req.ID)
	if err != nil {
		return product.ProductResponse{}, err
	}

	return updated.ToResponse(), nil
}

// Get implements product.ProductService.
func (s *ProductServiceImpl) Get(ctx context.Context, id string) (product.ProductResponse, error) {
	p, err := s.ProductRepository.GetByID(ctx, id)
	if err != nil {
		return product.ProductResponse{}, err
	}
	return p.ToResponse(), nil
}

// List implements product.ProductService.
func (s *ProductServiceImpl) List(ctx context.Context, filter product.ProductFilter) (product.ListProductsResponse, error) {
	products, total, err := s.ProductRepository.List(ctx, filter)
	if err != nil {
		return product.ListProductsResponse{}, err
	}

	responses := make([]product.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, p.ToResponse())
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	return product.ListProductsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Products:   responses,
	}, nil
}

// Delete implements product.ProductService.
func (s *ProductServiceImpl) Delete(ctx context.Context, id string) error {
	return s.ProductRepository.Delete(ctx, id)
}

// UploadImage implements product.ProductService.
func (s *ProductServiceImpl) UploadImage(ctx context.Context, id string, f io.Reader, filename string) (product.ProductResponse, error) {
	if _, err := s.ProductRepository.GetByID(ctx, id); err != nil {
		return product.ProductResponse{}, err
	}

	url, err := s.fileService.UploadProductImage(ctx, id, f, filename)
	if err != nil {
		return product.ProductResponse{}, fmt.Errorf("failed to upload product image: %w", err)
	}

	if err := s.ProductRepository.SetImageURL(ctx, id, url); err != nil {
		return product.ProductResponse{}, err
	}

	updated, err := s.ProductRepository.GetByID(ctx, id)
	if err != nil {
		return product.ProductResponse{}, err
	}

	return updated.ToResponse(), nil
}
