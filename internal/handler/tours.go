package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/response"
)

type TourHandler struct {
	base
	Tours TourStore
}

func NewTourHandler(tours TourStore, log *logger.Logger) *TourHandler {
	return &TourHandler{base: newBase(log, nil), Tours: tours}
}

// List supports search, status, category and sortBy (title, price, -price,
// duration, createdAt).
func (h *TourHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	tours, err := h.Tours.List(ctx, listQuery(c))
	if err != nil {
		return h.fail(c, err, "tour")
	}
	return response.OK(c, tours)
}

func (h *TourHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "tour")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	t, err := h.Tours.Get(ctx, id)
	if err != nil {
		return h.fail(c, err, "tour")
	}
	return response.OK(c, t)
}

func (h *TourHandler) Create(c echo.Context) error {
	var t model.Tour
	if err := bindValid(c, &t); err != nil {
		return h.fail(c, err, "tour")
	}
	t.ApplyDefaults()

	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Tours.Create(ctx, &t); err != nil {
		return h.fail(c, err, "tour")
	}
	return response.Created(c, t, "tour created")
}

func (h *TourHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "tour")
	}
	var t model.Tour
	if err := bindValid(c, &t); err != nil {
		return h.fail(c, err, "tour")
	}
	t.ApplyDefaults()
	// a tour cannot list itself as related
	related := t.RelatedTours[:0]
	for _, r := range t.RelatedTours {
		if r != id {
			related = append(related, r)
		}
	}
	t.RelatedTours = related

	ctx, cancel := storeCtx(c)
	defer cancel()
	updated, err := h.Tours.Update(ctx, id, &t)
	if err != nil {
		return h.fail(c, err, "tour")
	}
	return response.OK(c, updated)
}

func (h *TourHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "tour")
	}
	status, err := bindEnum[model.TourStatus](c, "status")
	if err != nil {
		return h.fail(c, err, "tour")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	t, err := h.Tours.SetStatus(ctx, id, status)
	if err != nil {
		return h.fail(c, err, "tour")
	}
	return response.OK(c, t)
}

func (h *TourHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "tour")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Tours.Delete(ctx, id); err != nil {
		return h.fail(c, err, "tour")
	}
	return response.Message(c, "tour deleted")
}
