package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/config"
	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/middleware"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
	"github.com/mountaintravels/admin-dashboard/internal/storage"
	"github.com/mountaintravels/admin-dashboard/internal/utils"
)

// ProfileHandler lets the signed-in admin edit their own account.
type ProfileHandler struct {
	base
	Admins AdminStore
	Images ImageStore
	Cost   int
}

func NewProfileHandler(cfg config.AuthConfig, admins AdminStore, images ImageStore, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{base: newBase(log, nil), Admins: admins, Images: images, Cost: cfg.BcryptCost}
}

type profileReq struct {
	Name     *string `json:"name" validate:"omitempty,min=5,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := repository.ParseID(middleware.AdminID(c))
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "authentication required")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	admin, err := h.Admins.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err, "admin")
	}
	return response.OK(c, admin)
}

// Update changes name, email and/or password. Omitted fields are kept; a new
// password is re-hashed.
func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := repository.ParseID(middleware.AdminID(c))
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "authentication required")
	}
	var req profileReq
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "admin")
	}
	ch := repository.ProfileChange{}
	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		ch.Name = req.Name
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		ch.Email = req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password, h.Cost)
		if err != nil {
			return response.Fail(c, http.StatusBadRequest, err.Error())
		}
		ch.PasswordHash = &hash
	}
	if ch == (repository.ProfileChange{}) {
		return response.Fail(c, http.StatusBadRequest, "nothing to update")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()
	admin, err := h.Admins.UpdateProfile(ctx, id, ch)
	if errors.Is(err, repository.ErrDuplicate) {
		return response.Fail(c, http.StatusConflict, "email already in use")
	}
	if err != nil {
		return h.fail(c, err, "admin")
	}
	if ch.PasswordHash != nil {
		h.log.LogSecurity("PASSWORD_CHANGED", admin.Email)
	}
	return response.OK(c, admin)
}

// Avatar stores the multipart "avatar" image and saves its path on the admin.
func (h *ProfileHandler) Avatar(c echo.Context) error {
	id, err := repository.ParseID(middleware.AdminID(c))
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "authentication required")
	}
	fh, err := c.FormFile("avatar")
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "avatar file is required")
	}
	path, err := h.Images.SaveImage(fh, "avatars")
	if errors.Is(err, storage.ErrNotImage) || errors.Is(err, storage.ErrTooLarge) {
		return response.Fail(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return h.fail(c, err, "avatar")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()
	admin, err := h.Admins.UpdateProfile(ctx, id, repository.ProfileChange{Avatar: &path})
	if err != nil {
		return h.fail(c, err, "admin")
	}
	return response.OK(c, admin)
}
