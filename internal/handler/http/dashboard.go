package http

import (
	"net/http"

	"github.com/brewlane/cafe-backoffice-go/internal/domain/dashboard"
	"github.com/brewlane/cafe-backoffice-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// Summary returns combined back-office dashboard data
	Summary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Summary handles GET /dashboard
func (h *dashboardHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
