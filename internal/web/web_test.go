package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryPageRenders(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = r
	for _, p := range Pages {
		e.GET(p.Path, Handler(p, func(echo.Context) string { return "Ayesha" }))
	}

	for _, path := range []string{"/signin", "/signup", "/dashboard", "/tours", "/tours/add", "/bookings", "/support", "/inquiries", "/feedbacks", "/settings", "/profile"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "Mountain Travels Pakistan", path)
	}
}

func TestRecordPageLoadsByID(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = r
	for _, p := range Pages {
		e.GET(p.Path, Handler(p, func(echo.Context) string { return "" }))
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tours/edit/65f0c0ffee0000000000abcd", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `/api/tours/65f0c0ffee0000000000abcd`)
	assert.Contains(t, rec.Body.String(), "Edit tour")
}
