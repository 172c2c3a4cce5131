package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/response"
	"github.com/mountaintravels/admin-dashboard/internal/utils"
)

// RevocationChecker reports whether a session id was logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Session reads the session token from the cookie (or a Bearer header for API
// clients) and, when it verifies and is not revoked, stores the admin identity
// in the context. It never rejects a request; RequireSession and PageGate
// decide what anonymous requests may do.
func Session(secret, cookieName string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c, cookieName)
			if raw == "" {
				return next(c)
			}
			claims, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return next(c)
			}
			if revoked != nil {
				ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
				gone, err := revoked.IsRevoked(ctx, claims.ID)
				cancel()
				// fail open on Redis errors: the token itself verified
				if err == nil && gone {
					return next(c)
				}
			}
			c.Set(ctxAdminID, claims.Subject)
			c.Set(ctxAdminName, claims.Name)
			c.Set(ctxSessionID, claims.ID)
			if claims.ExpiresAt != nil {
				c.Set(ctxSessionExp, claims.ExpiresAt.Time)
			}
			return next(c)
		}
	}
}

func tokenFrom(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// RequireSession rejects anonymous API requests with 401.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Authenticated(c) {
				return response.Fail(c, http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// RequireSessionExcept is RequireSession with a set of "METHOD path" routes
// (echo route paths, e.g. "POST /api/inquiries") that stay public.
func RequireSessionExcept(public ...string) echo.MiddlewareFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Authenticated(c) || open[c.Request().Method+" "+c.Path()] {
				return next(c)
			}
			return response.Fail(c, http.StatusUnauthorized, "authentication required")
		}
	}
}
