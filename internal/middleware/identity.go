package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Context keys set by Session.
const (
	ctxAdminID    = "admin_id"
	ctxAdminName  = "admin_name"
	ctxSessionID  = "session_id"
	ctxSessionExp = "session_exp"
)

// AdminID returns the authenticated admin's id, or "" for anonymous requests.
func AdminID(c echo.Context) string {
	s, _ := c.Get(ctxAdminID).(string)
	return s
}

// AdminName returns the display name carried in the session token.
func AdminName(c echo.Context) string {
	s, _ := c.Get(ctxAdminName).(string)
	return s
}

// SessionID returns the token id (jti) and expiry of the current session.
func SessionID(c echo.Context) (string, time.Time) {
	id, _ := c.Get(ctxSessionID).(string)
	exp, _ := c.Get(ctxSessionExp).(time.Time)
	return id, exp
}

// Authenticated reports whether Session accepted a token for this request.
func Authenticated(c echo.Context) bool {
	return AdminID(c) != ""
}

// userID keys rate limiting; anonymous clients share "guest".
func userID(c echo.Context) string {
	if id := AdminID(c); id != "" {
		return id
	}
	return "guest"
}
