package dashboard

import (
	"context"
	"time"
)

// SalesStats combines revenue and order count for a window.
type SalesStats struct {
	Revenue float64
	Orders  int64
}

// DashboardRepository defines the aggregate queries behind the
// back-office summary.
type DashboardRepository interface {
	// GetSalesStats returns revenue and order count between from
	// (inclusive) and to (exclusive).
	GetSalesStats(ctx context.Context, from, to time.Time) (SalesStats, error)

	// GetTopProducts returns products ranked by units sold between
	// from and to, at most limit entries.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)

	// CountClockedIn returns the number of open attendance sessions.
	CountClockedIn(ctx context.Context) (int64, error)

	// CountLowStock returns ingredients at or below reorder level.
	CountLowStock(ctx context.Context) (int64, error)

	// CountActiveEmployees returns employees with is_active = true.
	CountActiveEmployees(ctx context.Context) (int64, error)
}
