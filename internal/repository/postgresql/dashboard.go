package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/dashboard"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

// GetSalesStats implements dashboard.DashboardRepository.
func (r *dashboardRepository) GetSalesStats(ctx context.Context, from, to time.Time) (dashboard.SalesStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`

	var stats dashboard.SalesStats
	if err := q.QueryRow(ctx, query, from, to).Scan(&stats.Revenue, &stats.Orders); err != nil {
		return dashboard.SalesStats{}, fmt.Errorf("failed to get sales stats: %w", err)
	}

	return stats, nil
}

// GetTopProducts implements dashboard.DashboardRepository.
func (r *dashboardRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]dashboard.TopProduct, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT i.product_id, p.name,
			   SUM(i.quantity) AS units_sold,
			   SUM(i.quantity * i.unit_price) AS revenue
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		JOIN products p ON p.id = i.product_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY i.product_id, p.name
		ORDER BY units_sold DESC
		LIMIT $3
	`

	rows, err := q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var top []dashboard.TopProduct
	for rows.Next() {
		var tp dashboard.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.UnitsSold, &tp.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		top = append(top, tp)
	}

	return top, nil
}

// CountClockedIn implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountClockedIn(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `SELECT COUNT(*) FROM attendance_logs WHERE time_out IS NULL`
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clocked-in employees: %w", err)
	}

	return count, nil
}

// CountLowStock implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountLowStock(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `SELECT COUNT(*) FROM ingredients WHERE quantity <= reorder_level`
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low-stock ingredients: %w", err)
	}

	return count, nil
}

// CountActiveEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountActiveEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	query := `SELECT COUNT(*) FROM employees WHERE is_active = true`
	if err := q.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}
