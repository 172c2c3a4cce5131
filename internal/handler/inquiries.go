package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/queue"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
)

type InquiryHandler struct {
	base
	Inquiries InquiryStore
	Agents    AgentStore
	Staff     StaffStore
}

func NewInquiryHandler(inquiries InquiryStore, agents AgentStore, staff StaffStore, events queue.Publisher, log *logger.Logger) *InquiryHandler {
	return &InquiryHandler{base: newBase(log, events), Inquiries: inquiries, Agents: agents, Staff: staff}
}

// List returns the flattened rows of the inquiries table.
func (h *InquiryHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	views, err := h.Inquiries.List(ctx, listQuery(c))
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	rows := make([]model.InquiryRow, 0, len(views))
	for _, v := range views {
		name := ""
		if v.Assignee != nil {
			name = v.Assignee.Name
		}
		rows = append(rows, v.Row(name))
	}
	return response.OK(c, rows)
}

func (h *InquiryHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	v, err := h.Inquiries.View(ctx, id)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	return response.OK(c, v)
}

// Create records a contact-form submission.
func (h *InquiryHandler) Create(c echo.Context) error {
	var q model.Inquiry
	if err := bindValid(c, &q); err != nil {
		return h.fail(c, err, "inquiry")
	}
	q.AssignedTo = nil
	q.Responses = nil
	q.ApplyDefaults()

	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Inquiries.Create(ctx, &q); err != nil {
		return h.fail(c, err, "inquiry")
	}
	return response.Created(c, q, "inquiry received")
}

func (h *InquiryHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	status, err := bindEnum[model.TicketStatus](c, "status")
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	q, err := h.Inquiries.SetStatus(ctx, id, status)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	return response.OK(c, q)
}

type assignInquiryReq struct {
	AssignedTo string `json:"assignedTo" validate:"required"`
}

// Assign routes the inquiry to an agent or a staff member.
func (h *InquiryHandler) Assign(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	var req assignInquiryReq
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "inquiry")
	}
	assignee, err := repository.ParseID(req.AssignedTo)
	if err != nil {
		return h.fail(c, err, "assignee")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()
	name, email, err := h.lookupAssignee(ctx, assignee)
	if err != nil {
		return h.fail(c, err, "assignee")
	}
	q, err := h.Inquiries.Assign(ctx, id, assignee)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	h.emit(ctx, queue.NewEvent(queue.InquiryAssigned, id.Hex(), map[string]string{
		"assigneeId":    assignee.Hex(),
		"assigneeName":  name,
		"assigneeEmail": email,
		"subject":       q.Subject,
	}))
	return response.OK(c, q.Row(name))
}

func (h *InquiryHandler) lookupAssignee(ctx context.Context, id primitive.ObjectID) (name, email string, err error) {
	a, err := h.Agents.Get(ctx, id)
	if err == nil {
		return a.Name, a.Email, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", "", err
	}
	s, err := h.Staff.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	return s.Name, s.Email, nil
}

// Respond appends a reply to the inquiry and notifies the sender.
func (h *InquiryHandler) Respond(c echo.Context) error {
	var req responseBody
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "inquiry")
	}
	id, err := repository.ParseID(req.InquiryID)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	resp, err := req.toResponse(c)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	q, err := h.Inquiries.AddResponse(ctx, id, resp)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	h.emit(ctx, queue.NewEvent(queue.InquiryResponded, id.Hex(), map[string]string{
		"email":   q.Email,
		"subject": q.Subject,
		"message": resp.Message,
	}))
	return response.Created(c, q, "response added")
}

func (h *InquiryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "inquiry")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Inquiries.Delete(ctx, id); err != nil {
		return h.fail(c, err, "inquiry")
	}
	return response.Message(c, "inquiry deleted")
}
