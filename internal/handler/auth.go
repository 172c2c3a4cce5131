package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/config"
	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/middleware"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
	"github.com/mountaintravels/admin-dashboard/internal/utils"
)

// AuthHandler signs admins up, in and out.
type AuthHandler struct {
	base
	Cfg      config.AuthConfig
	Admins   AdminStore
	Sessions SessionStore
}

func NewAuthHandler(cfg config.AuthConfig, admins AdminStore, sessions SessionStore, log *logger.Logger) *AuthHandler {
	return &AuthHandler{base: newBase(log, nil), Cfg: cfg, Admins: admins, Sessions: sessions}
}

type signupReq struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginReq accepts the email under either key; the sign-in form posts "identifier".
type loginReq struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type sessionResp struct {
	Admin     *model.Admin `json:"admin"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Signup creates an admin account and signs it in.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "admin")
	}
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if errors.Is(err, utils.ErrPasswordTooShort) {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return h.fail(c, err, "admin")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	admin, err := h.Admins.Create(ctx, req.Name, req.Email, hash)
	if errors.Is(err, repository.ErrDuplicate) {
		return response.Fail(c, http.StatusConflict, "an account with this email already exists")
	}
	if err != nil {
		return h.fail(c, err, "admin")
	}
	tok, err := h.startSession(c, admin)
	if err != nil {
		return h.fail(c, err, "admin")
	}
	h.log.LogSecurity("SIGNUP", admin.Email)
	return response.Created(c, sessionResp{Admin: admin, ExpiresAt: tok.Exp}, "account created")
}

// Login verifies the credentials and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request body")
	}
	ident := strings.TrimSpace(req.Identifier)
	if ident == "" {
		ident = strings.TrimSpace(req.Email)
	}
	if ident == "" || req.Password == "" {
		return response.Fail(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	admin, err := h.Admins.GetByEmail(ctx, ident)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return h.fail(c, err, "admin")
	}
	// same answer for unknown email and wrong password
	if admin == nil || !utils.VerifyPassword(admin.PasswordHash, req.Password) {
		h.log.LogSecurity("LOGIN_FAILED", ident)
		return response.Fail(c, http.StatusUnauthorized, "invalid email or password")
	}
	tok, err := h.startSession(c, admin)
	if err != nil {
		return h.fail(c, err, "admin")
	}
	h.log.LogSecurity("LOGIN", admin.Email)
	return response.OK(c, sessionResp{Admin: admin, ExpiresAt: tok.Exp})
}

// Logout revokes the current token and clears the cookie. It succeeds for
// anonymous callers too.
func (h *AuthHandler) Logout(c echo.Context) error {
	if jti, exp := middleware.SessionID(c); jti != "" && h.Sessions != nil {
		ctx, cancel := storeCtx(c)
		defer cancel()
		if err := h.Sessions.Revoke(ctx, jti, exp); err != nil {
			h.log.Warn("AUTH", "revoke session: "+err.Error())
		}
	}
	c.SetCookie(h.cookie("", -1))
	return response.Message(c, "signed out")
}

// Session returns the signed-in admin.
func (h *AuthHandler) Session(c echo.Context) error {
	id, err := repository.ParseID(middleware.AdminID(c))
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "authentication required")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	admin, err := h.Admins.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return response.Fail(c, http.StatusUnauthorized, "authentication required")
	}
	if err != nil {
		return h.fail(c, err, "admin")
	}
	_, exp := middleware.SessionID(c)
	return response.OK(c, sessionResp{Admin: admin, ExpiresAt: exp})
}

func (h *AuthHandler) startSession(c echo.Context, a *model.Admin) (utils.SessionToken, error) {
	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, a.ID.Hex(), a.Name, a.Email, h.Cfg.SessionTTL)
	if err != nil {
		return tok, err
	}
	c.SetCookie(h.cookie(tok.Token, int(h.Cfg.SessionTTL/time.Second)))
	return tok, nil
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.Cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
