package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agenda/internal/application/dto"
	"agenda/internal/application/service"
	appErrors "agenda/internal/pkg/errors"
	"agenda/internal/pkg/logger"
)

// ReminderHandler exposes the reminder and event operations over HTTP. It
// is thin glue: all rules live in the service layer.
type ReminderHandler struct {
	reminderSvc service.ReminderService
	log         logger.Logger
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminderSvc service.ReminderService, log logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderSvc: reminderSvc,
		log:         log,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateReminder handles POST /reminders.
func (h *ReminderHandler) CreateReminder(c echo.Context) error {
	var req dto.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.Title == "" || req.When == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "title and when are required"})
	}

	resp, err := h.reminderSvc.AddReminder(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, appErrors.ErrUnparseableTime) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		h.log.Error("Failed to create reminder", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// ListReminders handles GET /reminders.
func (h *ReminderHandler) ListReminders(c echo.Context) error {
	reminders, err := h.reminderSvc.ListPendingReminders(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to list pending reminders", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
	return c.JSON(http.StatusOK, reminders)
}

// CancelReminder handles DELETE /reminders/:id.
func (h *ReminderHandler) CancelReminder(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid reminder id"})
	}

	if err := h.reminderSvc.CancelReminder(c.Request().Context(), uint(id)); err != nil {
		if errors.Is(err, appErrors.ErrReminderNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		h.log.Error(fmt.Sprintf("Failed to cancel reminder %d", id), err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateEvent handles POST /events.
func (h *ReminderHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.Title == "" || req.When == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "title and when are required"})
	}

	resp, err := h.reminderSvc.AddEvent(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, appErrors.ErrUnparseableTime) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		h.log.Error("Failed to create event", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// ListEvents handles GET /events. With ?days=N only events starting within
// the next N days are returned.
func (h *ReminderHandler) ListEvents(c echo.Context) error {
	ctx := c.Request().Context()

	if daysParam := c.QueryParam("days"); daysParam != "" {
		days, err := strconv.Atoi(daysParam)
		if err != nil || days <= 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "days must be a positive integer"})
		}
		events, err := h.reminderSvc.ListUpcomingEvents(ctx, days)
		if err != nil {
			h.log.Error("Failed to list upcoming events", err)
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: appErrors.ErrInternalServer.Error()})
		}
		return c.JSON(http.StatusOK, events)
	}

	events, err := h.reminderSvc.ListEvents(ctx)
	if err != nil {
		h.log.Error("Failed to list events", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
	return c.JSON(http.StatusOK, events)
}
