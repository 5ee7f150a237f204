package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/zaffaf/backend/internal/auth"
	"example.com/zaffaf/backend/internal/models"
	"example.com/zaffaf/backend/internal/notifications"
	"example.com/zaffaf/backend/internal/repository"
)

type ChecklistHandler struct {
	Checklist *repository.ChecklistRepository
	Hub       *notifications.Hub
}

// NewChecklistHandler создает обработчик свадебного чеклиста.
func NewChecklistHandler(checklist *repository.ChecklistRepository, hub *notifications.Hub) *ChecklistHandler {
	return &ChecklistHandler{Checklist: checklist, Hub: hub}
}

type ChecklistItemRequest struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=1000"`
	Status      string     `json:"status" validate:"required,oneof=todo in-progress completed"`
	Priority    string     `json:"priority" validate:"required,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
}

type ChecklistStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in-progress completed"`
}

type ChecklistResponse struct {
	Items []models.ChecklistItem `json:"items"`
	Count int                    `json:"count"`
}

// List возвращает задачи пользователя.
func (h *ChecklistHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	items, err := h.Checklist.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ChecklistResponse{Items: items, Count: len(items)})
}

// Add создает задачу.
func (h *ChecklistHandler) Add(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ChecklistItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	item, err := h.Checklist.Add(c.Request().Context(), userID, toChecklistInput(req))
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid item")
		}
		return serverError(c)
	}

	publishChecklistUpdate(h.Hub, userID, item.ID, "added")

	return c.JSON(http.StatusCreated, item)
}

// Update меняет задачу целиком.
func (h *ChecklistHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	var req ChecklistItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	item, err := h.Checklist.Update(c.Request().Context(), userID, itemID, toChecklistInput(req))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "item not found")
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "invalid item")
		}
		return serverError(c)
	}

	publishChecklistUpdate(h.Hub, userID, item.ID, "updated")

	return c.JSON(http.StatusOK, item)
}

// SetStatus меняет только статус задачи.
func (h *ChecklistHandler) SetStatus(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	var req ChecklistStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	item, err := h.Checklist.SetStatus(c.Request().Context(), userID, itemID, models.ChecklistStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "item not found")
		case errors.Is(err, repository.ErrInvalid):
			return badRequest(c, "invalid status")
		}
		return serverError(c)
	}

	publishChecklistUpdate(h.Hub, userID, item.ID, "status_changed")

	return c.JSON(http.StatusOK, item)
}

// Delete удаляет задачу.
func (h *ChecklistHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	if err := h.Checklist.Delete(c.Request().Context(), userID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "item not found")
		}
		return serverError(c)
	}

	publishChecklistUpdate(h.Hub, userID, itemID, "deleted")

	return c.NoContent(http.StatusNoContent)
}

func toChecklistInput(req ChecklistItemRequest) repository.ChecklistItemInput {
	return repository.ChecklistItemInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ChecklistStatus(req.Status),
		Priority:    models.ChecklistPriority(req.Priority),
		DueDate:     req.DueDate,
	}
}
