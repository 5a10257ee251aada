package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/order"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type orderRepository struct {
	db *database.DB
}

// Create implements order.OrderRepository. The order row and its items are
// inserted in one transaction so a partial order can never be observed.
func (r *orderRepository) Create(ctx context.Context, newOrder order.Order) (order.Order, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		orderQuery := `
			INSERT INTO orders (employee_id, total, note)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`
		err := tx.QueryRow(ctx, orderQuery,
			newOrder.EmployeeID,
			newOrder.Total,
			newOrder.Note,
		).Scan(&newOrder.ID, &newOrder.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`
		for i := range newOrder.Items {
			item := &newOrder.Items[i]
			item.OrderID = newOrder.ID
			if err := tx.QueryRow(ctx, itemQuery,
				item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
			).Scan(&item.ID); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return order.Order{}, err
	}

	return newOrder, nil
}

// GetByID implements order.OrderRepository.
func (r *orderRepository) GetByID(ctx context.Context, id string) (order.Order, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT o.id, o.employee_id, o.total, o.note, o.created_at,
			   e.full_name AS employee_name
		FROM orders o
		LEFT JOIN employees e ON e.id = o.employee_id
		WHERE o.id = $1
	`

	var ord order.Order
	err := q.QueryRow(ctx, query, id).Scan(
		&ord.ID, &ord.EmployeeID, &ord.Total, &ord.Note, &ord.CreatedAt,
		&ord.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, order.ErrOrderNotFound
		}
		return order.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.itemsForOrders(ctx, []string{ord.ID})
	if err != nil {
		return order.Order{}, err
	}
	ord.Items = items[ord.ID]

	return ord, nil
}

// List implements order.OrderRepository.
func (r *orderRepository) List(ctx context.Context, filter order.OrderFilter) ([]order.Order, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND o.created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND o.created_at < $%d::date + INTERVAL '1 day'", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM orders o WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT o.id, o.employee_id, o.total, o.note, o.created_at,
			   e.full_name AS employee_name
		FROM orders o
		LEFT JOIN employees e ON e.id = o.employee_id
		WHERE %s
		ORDER BY o.created_at DESC
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
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	var ids []string
	for rows.Next() {
		var ord order.Order
		err := rows.Scan(
			&ord.ID, &ord.EmployeeID, &ord.Total, &ord.Note, &ord.CreatedAt,
			&ord.EmployeeName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, ord)
		ids = append(ids, ord.ID)
	}
	rows.Close()

	if len(ids) > 0 {
		itemsByOrder, err := r.itemsForOrders(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range orders {
			orders[i].Items = itemsByOrder[orders[i].ID]
		}
	}

	return orders, total, nil
}

// itemsForOrders loads items for a batch of orders in one query.
func (r *orderRepository) itemsForOrders(ctx context.Context, orderIDs []string) (map[string][]order.OrderItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price,
			   p.name AS product_name
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id ASC
	`

	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]order.OrderItem)
	for rows.Next() {
		var item order.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice,
			&item.ProductName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	return items, nil
}

func NewOrderRepository(db *database.DB) order.OrderRepository {
	return &orderRepository{db: db}
}
