package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/response"
)

const (
	topToursLimit = 5
	trendMonths   = 6
)

// DashboardHandler serves the aggregates on the dashboard home page.
type DashboardHandler struct {
	base
	Stats DashboardStore
	Now   func() time.Time
}

func NewDashboardHandler(stats DashboardStore, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{base: newBase(log, nil), Stats: stats, Now: time.Now}
}

func (h *DashboardHandler) Summary(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	s, err := h.Stats.Summary(ctx, h.Now().UTC())
	if err != nil {
		return h.fail(c, err, "summary")
	}
	return response.OK(c, s)
}

// TourStats lists the five published tours earning the most confirmed revenue.
func (h *DashboardHandler) TourStats(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	rows, err := h.Stats.TourStats(ctx, topToursLimit)
	if err != nil {
		return h.fail(c, err, "tour stats")
	}
	return response.OK(c, rows)
}

// Trends returns bookings and revenue for the last six months, oldest first.
func (h *DashboardHandler) Trends(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	rows, err := h.Stats.Trends(ctx, h.Now().UTC(), trendMonths)
	if err != nil {
		return h.fail(c, err, "trends")
	}
	return response.OK(c, rows)
}
