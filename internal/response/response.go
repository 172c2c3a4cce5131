// Package response writes the JSON envelope shared by every API route:
// {"success": bool, "data": ..., "message": "...", "error": "..."}, plus
// "fields" on validation failures.
package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c echo.Context, data any, msg string) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Message: msg})
}

func Message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: msg})
}

func Fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: msg})
}

// Invalid is a 400 naming the request fields that failed validation.
func Invalid(c echo.Context, msg string, fields []string) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: msg, Fields: fields})
}

// ErrorHandler replaces echo's default so framework errors (unknown route,
// bad method, oversized body) use the envelope too.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	msg := "internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(status)
		}
	} else {
		c.Logger().Error(err)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = Fail(c, status, msg)
}
