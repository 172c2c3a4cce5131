package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/queue"
	"github.com/mountaintravels/admin-dashboard/internal/response"
)

type BookingHandler struct {
	base
	Bookings BookingStore
}

func NewBookingHandler(bookings BookingStore, events queue.Publisher, log *logger.Logger) *BookingHandler {
	return &BookingHandler{base: newBase(log, events), Bookings: bookings}
}

func (h *BookingHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	rows, err := h.Bookings.List(ctx, listQuery(c))
	if err != nil {
		return h.fail(c, err, "booking")
	}
	return response.OK(c, rows)
}

func (h *BookingHandler) Summary(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	s, err := h.Bookings.Summary(ctx)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	return response.OK(c, s)
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	b, err := h.Bookings.Get(ctx, id)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	return response.OK(c, b)
}

func bindBooking(c echo.Context) (*model.Booking, error) {
	var b model.Booking
	if err := bindValid(c, &b); err != nil {
		return nil, err
	}
	if !b.DatesInOrder() {
		return nil, badRequest("endDate must not be before date")
	}
	b.ApplyDefaults()
	return &b, nil
}

func (h *BookingHandler) Create(c echo.Context) error {
	b, err := bindBooking(c)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Bookings.Create(ctx, b); err != nil {
		return h.fail(c, err, "booking")
	}
	return response.Created(c, b, "booking created")
}

func (h *BookingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	b, err := bindBooking(c)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	updated, err := h.Bookings.Update(ctx, id, b)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	return response.OK(c, updated)
}

// SetStatus moves a booking between pending, confirmed and cancelled and
// tells the customer about it.
func (h *BookingHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	status, err := bindEnum[model.BookingStatus](c, "status")
	if err != nil {
		return h.fail(c, err, "booking")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	b, err := h.Bookings.SetStatus(ctx, id, status)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	h.emit(ctx, queue.NewEvent(queue.BookingStatusChanged, b.ID.Hex(), map[string]string{
		"status":      string(b.Status),
		"email":       b.Email,
		"name":        b.Name,
		"packageName": b.PackageName,
	}))
	return response.OK(c, b)
}

type bookingMessageReq struct {
	Message string `json:"message" validate:"required"`
}

// Message sends a free-text note to the booking's customer via the events
// backend. Nothing is stored on the booking.
func (h *BookingHandler) Message(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	var req bookingMessageReq
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "booking")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	b, err := h.Bookings.Get(ctx, id)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	h.emit(ctx, queue.NewEvent(queue.BookingMessage, b.ID.Hex(), map[string]string{
		"email":   b.Email,
		"name":    b.Name,
		"persons": strconv.Itoa(b.Person),
		"message": req.Message,
	}))
	return response.Message(c, "message sent to "+b.Email)
}

func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "booking")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Bookings.Delete(ctx, id); err != nil {
		return h.fail(c, err, "booking")
	}
	return response.Message(c, "booking deleted")
}
