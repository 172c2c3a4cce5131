package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
)

type FeedbackHandler struct {
	base
	Feedback FeedbackStore
	Users    UserStore
}

func NewFeedbackHandler(feedback FeedbackStore, users UserStore, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{base: newBase(log, nil), Feedback: feedback, Users: users}
}

// List returns feedback newest first, filtered by category and status.
func (h *FeedbackHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	rows, err := h.Feedback.List(ctx, listQuery(c))
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	return response.OK(c, rows)
}

func (h *FeedbackHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	f, err := h.Feedback.Get(ctx, id)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	return response.OK(c, f)
}

// Create stores feedback from a known customer.
func (h *FeedbackHandler) Create(c echo.Context) error {
	var f model.Feedback
	if err := bindValid(c, &f); err != nil {
		return h.fail(c, err, "feedback")
	}
	f.Responses = nil
	f.ApplyDefaults()

	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.checkUser(ctx, f.User); err != nil {
		return h.fail(c, err, "user")
	}
	if err := h.Feedback.Create(ctx, &f); err != nil {
		return h.fail(c, err, "feedback")
	}
	return response.Created(c, f, "feedback received")
}

func (h *FeedbackHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	var f model.Feedback
	if err := bindValid(c, &f); err != nil {
		return h.fail(c, err, "feedback")
	}
	f.ApplyDefaults()
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.checkUser(ctx, f.User); err != nil {
		return h.fail(c, err, "user")
	}
	updated, err := h.Feedback.Update(ctx, id, &f)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	return response.OK(c, updated)
}

func (h *FeedbackHandler) checkUser(ctx context.Context, id primitive.ObjectID) error {
	ok, err := h.Users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (h *FeedbackHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	status, err := bindEnum[model.FeedbackStatus](c, "status")
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	f, err := h.Feedback.SetStatus(ctx, id, status)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	return response.OK(c, f)
}

// Respond appends a reply. respondedBy defaults to the signed-in admin.
func (h *FeedbackHandler) Respond(c echo.Context) error {
	var req responseBody
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "feedback")
	}
	id, err := repository.ParseID(req.FeedbackID)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	resp, err := req.toResponse(c)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	f, err := h.Feedback.AddResponse(ctx, id, resp)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	return response.Created(c, f, "response added")
}

func (h *FeedbackHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "feedback")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Feedback.Delete(ctx, id); err != nil {
		return h.fail(c, err, "feedback")
	}
	return response.Message(c, "feedback deleted")
}
