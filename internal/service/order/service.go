package order

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/order"
	"github.com/brewlane/cafe-backoffice-go/internal/domain/product"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/timezone"
	"github.com/go-chi/jwtauth/v5"
)

type OrderServiceImpl struct {
	order.OrderRepository
	product.ProductRepository
}

func NewOrderService(orderRepository order.OrderRepository, productRepository product.ProductRepository) order.OrderService {
	return &OrderServiceImpl{
		OrderRepository:   orderRepository,
		ProductRepository: productRepository,
	}
}

// Create implements order.OrderService. The total is computed from catalog
// prices at creation time; client-supplied amounts are never trusted.
func (s *OrderServiceImpl) Create(ctx context.Context, req order.CreateOrderRequest) (order.OrderResponse, error) {
	if err := req.Validate(); err != nil {
		return order.OrderResponse{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return order.OrderResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return order.OrderResponse{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	newOrder := order.Order{
		EmployeeID: employeeID,
		Note:       req.Note,
	}

	for _, item := range req.Items {
		p, err := s.ProductRepository.GetByID(ctx, item.ProductID)
		if err != nil {
			return order.OrderResponse{}, err
		}
		if !p.IsAvailable {
			return order.OrderResponse{}, order.ErrProductUnavailable
		}

		orderItem := order.OrderItem{
			ProductID: p.ID,
			Quantity:  item.Quantity,
			UnitPrice: p.Price,
		}
		newOrder.Items = append(newOrder.Items, orderItem)
		newOrder.Total += orderItem.Subtotal()
	}

	created, err := s.OrderRepository.Create(ctx, newOrder)
	if err != nil {
		return order.OrderResponse{}, err
	}

	return s.toResponse(created), nil
}

// Get implements order.OrderService.
func (s *OrderServiceImpl) Get(ctx context.Context, id string) (order.OrderResponse, error) {
	ord, err := s.OrderRepository.GetByID(ctx, id)
	if err != nil {
		return order.OrderResponse{}, err
	}
	return s.toResponse(ord), nil
}

// List implements order.OrderService.
func (s *OrderServiceImpl) List(ctx context.Context, filter order.OrderFilter) (order.ListOrdersResponse, error) {
	if err := filter.Validate(); err != nil {
		return order.ListOrdersResponse{}, err
	}

	orders, total, err := s.OrderRepository.List(ctx, filter)
	if err != nil {
		return order.ListOrdersResponse{}, err
	}

	responses := make([]order.OrderResponse, 0, len(orders))
	for _, ord := range orders {
		responses = append(responses, s.toResponse(ord))
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	return order.ListOrdersResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Orders:     responses,
	}, nil
}

func (s *OrderServiceImpl) toResponse(ord order.Order) order.OrderResponse {
	items := make([]order.OrderItemResponse, 0, len(ord.Items))
	for _, item := range ord.Items {
		items = append(items, order.OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}

	return order.OrderResponse{
		ID:           ord.ID,
		EmployeeID:   ord.EmployeeID,
		EmployeeName: ord.EmployeeName,
		Total:        ord.Total,
		Note:         ord.Note,
		CreatedAt:    ord.CreatedAt.In(timezone.DisplayZone()).Format(time.DateTime),
		Items:        items,
	}
}
