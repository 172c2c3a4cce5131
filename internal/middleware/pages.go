package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

var protectedPages = []string{
	"/dashboard", "/support", "/tours", "/feedbacks", "/inquiries", "/bookings", "/settings", "/profile",
}

func isProtectedPage(path string) bool {
	for _, p := range protectedPages {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// PageGate redirects anonymous visitors of dashboard pages to /signin and
// signed-in visitors of /signin or /signup to /dashboard. API, upload and
// health paths are not pages and pass through untouched.
func PageGate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			authed := Authenticated(c)
			switch {
			case path == "/signin" || path == "/signup":
				if authed {
					return c.Redirect(http.StatusFound, "/dashboard")
				}
			case isProtectedPage(path):
				if !authed {
					return c.Redirect(http.StatusFound, "/signin")
				}
			}
			return next(c)
		}
	}
}
