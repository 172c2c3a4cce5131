package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mountaintravels/admin-dashboard/internal/config"
	"github.com/mountaintravels/admin-dashboard/internal/utils"
)

const testSecret = "test-secret"

type revokedSet map[string]bool

func (r revokedSet) IsRevoked(_ context.Context, jti string) (bool, error) { return r[jti], nil }

func newTestServer(revoked RevocationChecker) *echo.Echo {
	e := echo.New()
	e.Use(Session(testSecret, "mtp_session", revoked))
	e.Use(PageGate())
	ok := func(c echo.Context) error { return c.String(http.StatusOK, AdminID(c)) }
	e.GET("/", ok)
	e.GET("/signin", ok)
	e.GET("/dashboard", ok)
	e.GET("/tours/add", ok)
	api := e.Group("/api", RequireSessionExcept("POST /api/inquiries"))
	api.GET("/inquiries", ok)
	api.POST("/inquiries", ok)
	return e
}

func token(t *testing.T) utils.SessionToken {
	t.Helper()
	tok, err := utils.NewSessionToken(testSecret, "admin-1", "Ayesha", "a@example.com", time.Hour)
	require.NoError(t, err)
	return tok
}

func do(e *echo.Echo, method, path string, mod func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if mod != nil {
		mod(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPageGateAnonymous(t *testing.T) {
	e := newTestServer(nil)

	for _, p := range []string{"/dashboard", "/tours/add"} {
		rec := do(e, http.MethodGet, p, nil)
		assert.Equal(t, http.StatusFound, rec.Code, p)
		assert.Equal(t, "/signin", rec.Header().Get("Location"), p)
	}
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/signin", nil).Code)
}

func TestPageGateAuthenticated(t *testing.T) {
	e := newTestServer(nil)
	tok := token(t)
	withCookie := func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "mtp_session", Value: tok.Token}) }

	rec := do(e, http.MethodGet, "/signin", withCookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = do(e, http.MethodGet, "/dashboard", withCookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", rec.Body.String())
}

func TestAPIRequiresSession(t *testing.T) {
	e := newTestServer(nil)

	rec := do(e, http.MethodGet, "/api/inquiries", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"authentication required"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, do(e, http.MethodPost, "/api/inquiries", nil).Code)

	tok := token(t)
	rec = do(e, http.MethodGet, "/api/inquiries", func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionRejectsRevokedAndForeignTokens(t *testing.T) {
	tok := token(t)
	e := newTestServer(revokedSet{tok.ID: true})
	rec := do(e, http.MethodGet, "/api/inquiries", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "mtp_session", Value: tok.Token})
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	foreign, err := utils.NewSessionToken("other-secret", "admin-1", "x", "x@example.com", time.Hour)
	require.NoError(t, err)
	e = newTestServer(nil)
	rec = do(e, http.MethodGet, "/api/inquiries", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "mtp_session", Value: foreign.Token})
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRedisMiddlewaresPassThroughWithoutClient(t *testing.T) {
	e := echo.New()
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil))
	e.Use(NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil))
	e.Use(InvalidateCache(config.CacheConfig{Enabled: true}, nil))
	e.GET("/x", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	for i := 0; i < 3; i++ {
		rec := do(e, http.MethodGet, "/x", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
}

func TestRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/auth/login")

	assert.Equal(t, "rl:ip:10.0.0.7:route:POST /api/auth/login", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}, c))
	assert.Equal(t, "rl:user:guest", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}, c))
}
