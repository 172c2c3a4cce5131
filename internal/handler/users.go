package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/response"
)

// UserHandler manages customer records.
type UserHandler struct {
	base
	Users UserStore
}

func NewUserHandler(users UserStore, log *logger.Logger) *UserHandler {
	return &UserHandler{base: newBase(log, nil), Users: users}
}

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	rows, err := h.Users.List(ctx, listQuery(c))
	if err != nil {
		return h.fail(c, err, "user")
	}
	return response.OK(c, rows)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "user")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	u, err := h.Users.Get(ctx, id)
	if err != nil {
		return h.fail(c, err, "user")
	}
	return response.OK(c, u)
}

func (h *UserHandler) Create(c echo.Context) error {
	var u model.User
	if err := bindValid(c, &u); err != nil {
		return h.fail(c, err, "user")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Users.Create(ctx, &u); err != nil {
		return h.fail(c, err, "user")
	}
	return response.Created(c, u, "user created")
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "user")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Users.Delete(ctx, id); err != nil {
		return h.fail(c, err, "user")
	}
	return response.Message(c, "user deleted")
}
