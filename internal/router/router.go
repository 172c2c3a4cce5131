// Package router registers every route on the echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mountaintravels/admin-dashboard/internal/config"
	"github.com/mountaintravels/admin-dashboard/internal/handler"
	"github.com/mountaintravels/admin-dashboard/internal/middleware"
	"github.com/mountaintravels/admin-dashboard/internal/web"
)

// Handlers bundles the API handlers built in main.
type Handlers struct {
	Profile   *handler.ProfileHandler
	Tours     *handler.TourHandler
	Bookings  *handler.BookingHandler
	Tickets   *handler.TicketHandler
	Inquiries *handler.InquiryHandler
	Feedback  *handler.FeedbackHandler
	Staff     *handler.StaffHandler
	Agents    *handler.AgentHandler
	Users     *handler.UserHandler
	Dashboard *handler.DashboardHandler
	Upload    *handler.UploadHandler
}

// RegisterRoutes exposes the probes and the uploaded files.
func RegisterRoutes(e *echo.Echo, uploads config.UploadConfig, ready map[string]handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(ready))
	e.Static(uploads.URLPrefix, uploads.Dir)
}

// RegisterAuth mounts /api/auth behind the login rate limiter.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/api/auth", limit)
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
	g.GET("/session", a.Session, middleware.RequireSession())
}

// RegisterPages mounts the HTML screens. PageGate (installed globally)
// handles the sign-in redirects.
func RegisterPages(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error { return c.Redirect(http.StatusFound, "/dashboard") })
	for _, p := range web.Pages {
		e.GET(p.Path, web.Handler(p, middleware.AdminName))
	}
}

// RegisterDashboard mounts the aggregate endpoints behind the Redis cache.
func RegisterDashboard(api *echo.Group, h *handler.DashboardHandler, cache config.CacheConfig, rdb *redis.Client) {
	g := api.Group("/dashboard", middleware.NewRedisCache(cache, rdb))
	g.GET("/summary", h.Summary)
	g.GET("/tour-stats", h.TourStats)
	g.GET("/trends", h.Trends)
}
