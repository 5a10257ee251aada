package dashboard

import "context"

// DashboardService aggregates sales, staffing and stock figures for
// the back-office landing page.
type DashboardService interface {
	Summary(ctx context.Context) (SummaryResponse, error)
}
