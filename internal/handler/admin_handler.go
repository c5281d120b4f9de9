package handler

import (
	"context"
	"net/http"
	"ui-market/internal/middleware"
	"ui-market/internal/service"
	"ui-market/internal/view"
)

// StatsServicer defines what the admin dashboard needs from the stats service.
type StatsServicer interface {
	Dashboard(ctx context.Context) (*service.DashboardStats, error)
}

// AdminHandler serves the administrator pages.
type AdminHandler struct {
	stats StatsServicer
	view  *view.View
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(stats StatsServicer, v *view.View) *AdminHandler {
	return &AdminHandler{stats: stats, view: v}
}

// statsHandler renders the catalog and sales dashboard.
func (h *AdminHandler) statsHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	stats, err := h.stats.Dashboard(r.Context())
	if err != nil {
		return serviceError(err, "Failed to compute statistics")
	}

	data := map[string]interface{}{
		"Stats":    stats,
		"UserInfo": middleware.GetUserInfo(r.Context()),
	}
	if err := h.view.Render(w, "stats.html", data); err != nil {
		return renderError(err, "stats page")
	}
	return nil
}
