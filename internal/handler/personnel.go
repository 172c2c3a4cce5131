package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
)

type StaffHandler struct {
	base
	Staff StaffStore
}

func NewStaffHandler(staff StaffStore, log *logger.Logger) *StaffHandler {
	return &StaffHandler{base: newBase(log, nil), Staff: staff}
}

// staffFail reports taken emails as 400, the way the staff form expects.
func (h *StaffHandler) staffFail(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return response.Fail(c, http.StatusBadRequest, "Email already exists")
	}
	return h.fail(c, err, "staff member")
}

func (h *StaffHandler) List(c echo.Context) error {
	ctx, cancel := storeCtx(c)
	defer cancel()
	rows, err := h.Staff.List(ctx, listQuery(c))
	if err != nil {
		return h.staffFail(c, err)
	}
	return response.OK(c, rows)
}

func (h *StaffHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.staffFail(c, err)
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	s, err := h.Staff.Get(ctx, id)
	if err != nil {
		return h.staffFail(c, err)
	}
	return response.OK(c, s)
}

func (h *StaffHandler) Create(c echo.Context) error {
	var s model.Staff
	if err := bindValid(c, &s); err != nil {
		return h.staffFail(c, err)
	}
	s.ApplyDefaults()
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Staff.Create(ctx, &s); err != nil {
		return h.staffFail(c, err)
	}
	return response.Created(c, s, "staff member added")
}

func (h *StaffHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.staffFail(c, err)
	}
	var s model.Staff
	if err := bindValid(c, &s); err != nil {
		return h.staffFail(c, err)
	}
	s.ApplyDefaults()
	ctx, cancel := storeCtx(c)
	defer cancel()
	updated, err := h.Staff.Update(ctx, id, &s)
	if err != nil {
		return h.staffFail(c, err)
	}
	return response.OK(c, updated)
}

func (h *StaffHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.staffFail(c, err)
	}
	status, err := bindEnum[model.Availability](c, "status")
	if err != nil {
		return h.staffFail(c, err)
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	s, err := h.Staff.SetStatus(ctx, id, status)
	if err != nil {
		return h.staffFail(c, err)
	}
	return response.OK(c, s)
}

func (h *StaffHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.staffFail(c, err)
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Staff.Delete(ctx, id); err != nil {
		return h.staffFail(c, err)
	}
	return response.Message(c, "staff member deleted")
}

type AgentHandler struct {
	base
	Agents AgentStore
}

func NewAgentHandler(agents AgentStore, log *logger.Logger) *AgentHandler {
	return &AgentHandler{base: newBase(log, nil), Agents: agents}
}

// List filters by search, status and available=true|false.
func (h *AgentHandler) List(c echo.Context) error {
	var available *bool
	if v, err := strconv.ParseBool(c.QueryParam("available")); err == nil {
		available = &v
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	rows, err := h.Agents.List(ctx, listQuery(c), available)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	return response.OK(c, rows)
}

func (h *AgentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	a, err := h.Agents.Get(ctx, id)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	return response.OK(c, a)
}

func (h *AgentHandler) Create(c echo.Context) error {
	var a model.Agent
	if err := bindValid(c, &a); err != nil {
		return h.fail(c, err, "agent")
	}
	a.AssignedTickets = nil
	a.ApplyDefaults()
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Agents.Create(ctx, &a); err != nil {
		return h.fail(c, err, "agent")
	}
	return response.Created(c, a, "agent added")
}

// Update replaces the profile. An omitted isAvailable keeps the stored value.
func (h *AgentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	var a model.Agent
	if err := bindValid(c, &a); err != nil {
		return h.fail(c, err, "agent")
	}
	if a.Status == "" {
		a.Status = model.AvailabilityActive
	}
	if a.Expertise == nil {
		a.Expertise = model.StringList{}
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	updated, err := h.Agents.Update(ctx, id, &a)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	return response.OK(c, updated)
}

func (h *AgentHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	status, err := bindEnum[model.Availability](c, "status")
	if err != nil {
		return h.fail(c, err, "agent")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	a, err := h.Agents.SetStatus(ctx, id, status)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	return response.OK(c, a)
}

type availabilityReq struct {
	IsAvailable *bool `json:"isAvailable" validate:"required"`
}

func (h *AgentHandler) SetAvailability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	var req availabilityReq
	if err := bindValid(c, &req); err != nil {
		return h.fail(c, err, "agent")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	a, err := h.Agents.SetAvailability(ctx, id, *req.IsAvailable)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	return response.OK(c, a)
}

func (h *AgentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.fail(c, err, "agent")
	}
	ctx, cancel := storeCtx(c)
	defer cancel()
	if err := h.Agents.Delete(ctx, id); err != nil {
		return h.fail(c, err, "agent")
	}
	return response.Message(c, "agent deleted")
}
