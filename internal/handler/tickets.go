package handler

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/queue"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
)

// TicketHandler serves support tickets, including the customer-facing
// submission alias and agent assignment.
type TicketHandler struct {
	base
	Tickets TicketStore
	Agents  AgentStore
	Users   UserStore
}

func NewTicketHandler(tickets TicketStore, agents AgentStore, users UserStore, events queue.Publisher, log *logger.Logger) *TicketHandler {
	return &TicketHandler{base: newBase(log, events), Tickets: tickets, Agents: agents, Users: users}
}

// List returns tickets newest first with customer and assignee joined.
func (h *TicketHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	rows, err := h.Tickets.List(ctx, listQuery(c))
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	return response.OK(c, rows)
}

func (h *TicketHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	t, err := h.Tickets.View(ctx, id)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	return response.OK(c, t)
}

// Create files a new ticket. A userId, when sent, must belong to a customer.
// Clients cannot pre-assign or pre-answer a ticket.
func (h *TicketHandler) Create(c echo.Context) error {
	var t model.SupportTicket
	if err := bindValid(c, &t); err != nil {
		return h.fail(c, err, "ticket")
	}
	t.AssignedTo = nil
	t.Responses = nil
	t.ApplyDefaults()

	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.checkUser(ctx, t.UserID); err != nil {
		return h.fail(c, err, "user")
	}
	if err := h.Tickets.Create(ctx, &t); err != nil {
		return h.fail(c, err, "ticket")
	}
	return response.Created(c, t, "ticket submitted")
}

func (h *TicketHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	var t model.SupportTicket
	if err := bindValid(c, &t); err != nil {
		return h.fail(c, err, "ticket")
	}
	t.ApplyDefaults()
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.checkUser(ctx, t.UserID); err != nil {
		return h.fail(c, err, "user")
	}
	updated, err := h.Tickets.Update(ctx, id, &t)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	return response.OK(c, updated)
}

// checkUser resolves an optional customer reference; unknown ids are ErrNotFound.
func (h *TicketHandler) checkUser(ctx context.Context, id *primitive.ObjectID) error {
	if id == nil {
		return nil
	}
	ok, err := h.Users.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (h *TicketHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	status, err := bindEnum[model.TicketStatus](c, "status")
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	t, err := h.Tickets.SetStatus(ctx, id, status)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	return response.OK(c, t)
}

func (h *TicketHandler) SetPriority(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	p, err := bindEnum[model.Priority](c, "priority")
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	t, err := h.Tickets.SetPriority(ctx, id, p)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	return response.OK(c, t)
}

type assignTicketReq struct {
	TicketID string `json:"ticketId" validate:"required"`
	AgentID  string `json:"agentId" validate:"required"`
}

// Assign hands a ticket to an agent who is available and active. The ticket
// is updated first, then moved from any previous agent's list to the new one.
func (h *TicketHandler) Assign(c echo.Context) error {
	var req assignTicketReq
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "ticket")
	}
	ticketID, err := repository.ParseID(req.TicketID)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	agentID, err := repository.ParseID(req.AgentID)
	if err != nil {
		return h.fail(c, err, "agent")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()
	agent, err := h.Agents.Get(ctx, agentID)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	if !agent.CanTakeTickets() {
		return h.fail(c, badRequest(fmt.Sprintf("agent %s is not available for new tickets", agent.Name)), "agent")
	}
	t, err := h.Tickets.Assign(ctx, ticketID, agentID)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	if err := h.Agents.ReleaseTicket(ctx, ticketID); err != nil {
		return h.fail(c, err, "agent")
	}
	if _, err := h.Agents.AddTicket(ctx, agentID, ticketID); err != nil {
		return h.fail(c, err, "agent")
	}
	h.emit(ctx, queue.NewEvent(queue.TicketAssigned, ticketID.Hex(), map[string]string{
		"agentId":    agentID.Hex(),
		"agentEmail": agent.Email,
		"subject":    t.Subject,
	}))
	return response.OK(c, t)
}

// Respond appends an admin reply to the ticket thread.
func (h *TicketHandler) Respond(c echo.Context) error {
	var req responseBody
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "ticket")
	}
	id, err := repository.ParseID(req.TicketID)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	resp, err := req.toResponse(c)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	t, err := h.Tickets.AddResponse(ctx, id, resp)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	h.emit(ctx, queue.NewEvent(queue.TicketResponded, id.Hex(), map[string]string{
		"subject": t.Subject,
		"message": resp.Message,
	}))
	return response.Created(c, t, "response added")
}

func (h *TicketHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "ticket")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Tickets.Delete(ctx, id); err != nil {
		return h.fail(c, err, "ticket")
	}
	if err := h.Agents.ReleaseTicket(ctx, id); err != nil {
		h.log.Warn("API", fmt.Sprintf("release deleted ticket %s: %v", id.Hex(), err))
	}
	return response.Message(c, "ticket deleted")
}
