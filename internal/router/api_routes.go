package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/mountaintravels/admin-dashboard/internal/config"
	"github.com/mountaintravels/admin-dashboard/internal/middleware"
)

// publicAPI lists the /api routes customers reach without a session.
var publicAPI = []string{
	"POST /api/inquiries",
	"POST /api/feedback",
	"POST /api/support-tickets",
	"POST /api/user/tickets",
	"POST /api/users",
}

// RegisterAPI mounts every resource under /api. Writes drop the cached
// dashboard aggregates.
func RegisterAPI(e *echo.Echo, h Handlers, cache config.CacheConfig, rdb *redis.Client) {
	api := e.Group("/api",
		middleware.RequireSessionExcept(publicAPI...),
		middleware.InvalidateCache(cache, rdb),
	)

	api.GET("/admin/profile", h.Profile.Get)
	api.PUT("/admin/profile", h.Profile.Update)
	api.POST("/admin/avatar", h.Profile.Avatar)

	api.GET("/tours", h.Tours.List)
	api.POST("/tours", h.Tours.Create)
	api.GET("/tours/:id", h.Tours.Get)
	api.PUT("/tours/:id", h.Tours.Update)
	api.PATCH("/tours/:id/status", h.Tours.SetStatus)
	api.DELETE("/tours/:id", h.Tours.Delete)

	api.GET("/bookings", h.Bookings.List)
	api.POST("/bookings", h.Bookings.Create)
	api.GET("/bookings/summary", h.Bookings.Summary)
	api.GET("/bookings/:id", h.Bookings.Get)
	api.PUT("/bookings/:id", h.Bookings.Update)
	api.PUT("/bookings/:id/status", h.Bookings.SetStatus)
	api.PATCH("/bookings/:id/status", h.Bookings.SetStatus)
	api.POST("/bookings/:id/message", h.Bookings.Message)
	api.DELETE("/bookings/:id", h.Bookings.Delete)

	api.GET("/support-tickets", h.Tickets.List)
	api.POST("/support-tickets", h.Tickets.Create)
	api.POST("/user/tickets", h.Tickets.Create)
	api.POST("/support-tickets/assign", h.Tickets.Assign)
	api.POST("/support-tickets/responses", h.Tickets.Respond)
	api.GET("/support-tickets/:id", h.Tickets.Get)
	api.PUT("/support-tickets/:id", h.Tickets.Update)
	api.PATCH("/support-tickets/:id/status", h.Tickets.SetStatus)
	api.PATCH("/support-tickets/:id/priority", h.Tickets.SetPriority)
	api.DELETE("/support-tickets/:id", h.Tickets.Delete)

	api.GET("/inquiries", h.Inquiries.List)
	api.POST("/inquiries", h.Inquiries.Create)
	api.POST("/inquiries/response", h.Inquiries.Respond)
	api.GET("/inquiries/:id", h.Inquiries.Get)
	api.PATCH("/inquiries/:id/status", h.Inquiries.SetStatus)
	api.PATCH("/inquiries/:id/assign", h.Inquiries.Assign)
	api.DELETE("/inquiries/:id", h.Inquiries.Delete)

	api.GET("/feedback", h.Feedback.List)
	api.POST("/feedback", h.Feedback.Create)
	api.POST("/feedback/response", h.Feedback.Respond)
	api.GET("/feedback/:id", h.Feedback.Get)
	api.PUT("/feedback/:id", h.Feedback.Update)
	api.PATCH("/feedback/:id/status", h.Feedback.SetStatus)
	api.DELETE("/feedback/:id", h.Feedback.Delete)

	api.GET("/staff", h.Staff.List)
	api.POST("/staff", h.Staff.Create)
	api.GET("/staff/:id", h.Staff.Get)
	api.PUT("/staff/:id", h.Staff.Update)
	api.PATCH("/staff/:id/status", h.Staff.SetStatus)
	api.DELETE("/staff/:id", h.Staff.Delete)

	api.GET("/agents", h.Agents.List)
	api.POST("/agents", h.Agents.Create)
	api.GET("/agents/:id", h.Agents.Get)
	api.PUT("/agents/:id", h.Agents.Update)
	api.PATCH("/agents/:id/status", h.Agents.SetStatus)
	api.PATCH("/agents/:id/availability", h.Agents.SetAvailability)
	api.DELETE("/agents/:id", h.Agents.Delete)

	api.GET("/users", h.Users.List)
	api.POST("/users", h.Users.Create)
	api.GET("/users/:id", h.Users.Get)
	api.DELETE("/users/:id", h.Users.Delete)

	api.POST("/upload", h.Upload.Upload)

	RegisterDashboard(api, h.Dashboard, cache, rdb)
}
