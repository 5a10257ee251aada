package dashboard

import (
	"context"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/dashboard"
	"github.com/brewlane/cafe-backoffice-go/internal/pkg/timezone"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
}

func NewDashboardService(repo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
	}
}

const topProductLimit = 5

// Summary returns the combined back-office summary using parallel
// goroutines, one query each.
func (s *DashboardServiceImpl) Summary(ctx context.Context) (dashboard.SummaryResponse, error) {
	// Day boundaries follow the display zone, not server time.
	today := timezone.Today()
	tomorrow := today.AddDate(0, 0, 1)
	weekStart := today.AddDate(0, 0, -6)

	var (
		todayStats      dashboard.SalesStats
		weekStats       dashboard.SalesStats
		topProducts     []dashboard.TopProduct
		clockedIn       int64
		lowStock        int64
		activeEmployees int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		todayStats, err = s.GetSalesStats(gCtx, today.UTC(), tomorrow.UTC())
		return err
	})

	g.Go(func() error {
		var err error
		weekStats, err = s.GetSalesStats(gCtx, weekStart.UTC(), tomorrow.UTC())
		return err
	})

	g.Go(func() error {
		var err error
		topProducts, err = s.GetTopProducts(gCtx, weekStart.UTC(), tomorrow.UTC(), topProductLimit)
		return err
	})

	g.Go(func() error {
		var err error
		clockedIn, err = s.CountClockedIn(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		lowStock, err = s.CountLowStock(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		activeEmployees, err = s.CountActiveEmployees(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.SummaryResponse{}, err
	}

	if topProducts == nil {
		topProducts = []dashboard.TopProduct{}
	}

	return dashboard.SummaryResponse{
		TodaySales:      todayStats.Revenue,
		TodayOrders:     todayStats.Orders,
		WeekSales:       weekStats.Revenue,
		WeekOrders:      weekStats.Orders,
		TopProducts:     topProducts,
		ClockedInCount:  clockedIn,
		LowStockCount:   lowStock,
		ActiveEmployees: activeEmployees,
	}, nil
}
