// Package handler holds the HTTP handlers behind /api. Handlers depend on the
// small store interfaces in stores.go; the router wires in the Mongo
// repositories.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/middleware"
	"github.com/mountaintravels/admin-dashboard/internal/model"
	"github.com/mountaintravels/admin-dashboard/internal/queue"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
	"github.com/mountaintravels/admin-dashboard/internal/validation"
)

const storeTimeout = 5 * time.Second

// badRequest is a handler-level 400 with a client-facing message.
type badRequest string

func (e badRequest) Error() string { return string(e) }

// base is embedded by every handler that talks to a store.
type base struct {
	log    *logger.Logger
	events queue.Publisher
}

func newBase(log *logger.Logger, events queue.Publisher) base {
	if events == nil {
		events = queue.Noop{}
	}
	return base{log: log, events: events}
}

func storeCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), storeTimeout)
}

// fail maps an error onto the response envelope. what names the resource for
// 404 messages ("tour", "booking", ...).
func (b base) fail(c echo.Context, err error, what string) error {
	var br badRequest
	var ve *validation.Error
	switch {
	case errors.As(err, &br):
		return response.Fail(c, http.StatusBadRequest, string(br))
	case errors.As(err, &ve):
		return response.Invalid(c, ve.Error(), ve.Fields())
	case errors.Is(err, repository.ErrInvalidID):
		return response.Fail(c, http.StatusBadRequest, "invalid id")
	case errors.Is(err, repository.ErrNotFound):
		return response.Fail(c, http.StatusNotFound, what+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return response.Fail(c, http.StatusConflict, what+" already exists")
	}
	b.log.Error("API", fmt.Sprintf("%s %s: %v", c.Request().Method, c.Path(), err))
	return response.Fail(c, http.StatusInternalServerError, "internal server error")
}

// emit publishes an event; broker failures are logged and never fail the request.
func (b base) emit(ctx context.Context, ev queue.Event) {
	if err := b.events.Publish(ctx, ev); err != nil {
		b.log.Warn("EVENTS", fmt.Sprintf("publish %s for %s failed: %v", ev.Type, ev.Subject, err))
		return
	}
	b.log.LogEvent("PUBLISH", ev.Type, ev.Subject)
}

func pathID(c echo.Context) (primitive.ObjectID, error) {
	return repository.ParseID(c.Param("id"))
}

// bindValid decodes the JSON body into dst and runs the struct validator.
func bindValid(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return err
	}
	return nil
}

// bindEnum decodes {"<field>": value} and checks value against the enum.
func bindEnum[T interface {
	~string
	Valid() bool
}](c echo.Context, field string) (T, error) {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return "", badRequest("invalid request body")
	}
	s, _ := body[field].(string)
	v := T(strings.TrimSpace(s))
	if !v.Valid() {
		return "", badRequest(fmt.Sprintf("invalid %s %q", field, s))
	}
	return v, nil
}

// listQuery reads the shared list parameters. A status or category of "all"
// means no filter.
func listQuery(c echo.Context) repository.ListQuery {
	filter := func(name string) string {
		v := strings.TrimSpace(c.QueryParam(name))
		if strings.EqualFold(v, "all") {
			return ""
		}
		return v
	}
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit < 0 {
		limit = 0
	}
	return repository.ListQuery{
		Search:   strings.TrimSpace(c.QueryParam("search")),
		SortBy:   strings.TrimSpace(c.QueryParam("sortBy")),
		Status:   filter("status"),
		Category: filter("category"),
		Priority: filter("priority"),
		Page:     page,
		Limit:    limit,
	}
}

// sessionAdmin is the responding admin's id, nil for anonymous callers.
func sessionAdmin(c echo.Context) *primitive.ObjectID {
	id, err := repository.ParseID(middleware.AdminID(c))
	if err != nil {
		return nil
	}
	return &id
}

// responseBody is the payload of the POST .../response(s) routes.
type responseBody struct {
	TicketID    string `json:"ticketId"`
	InquiryID   string `json:"inquiryId"`
	FeedbackID  string `json:"feedbackId"`
	Message     string `json:"message" validate:"required"`
	RespondedBy string `json:"respondedBy"`
}

// toResponse resolves who answered: an explicit respondedBy, else the session admin.
func (r responseBody) toResponse(c echo.Context) (model.Response, error) {
	by := sessionAdmin(c)
	if r.RespondedBy != "" {
		id, err := repository.ParseID(r.RespondedBy)
		if err != nil {
			return model.Response{}, err
		}
		by = &id
	}
	if strings.TrimSpace(r.Message) == "" {
		return model.Response{}, badRequest("message is required")
	}
	return model.NewResponse(r.Message, by), nil
}
