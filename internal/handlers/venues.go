package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/zaffaf/backend/internal/models"
	"example.com/zaffaf/backend/internal/repository"
	"example.com/zaffaf/backend/internal/venues"
)

type VenueHandler struct {
	Venues *venues.Service
}

// NewVenueHandler создает обработчик каталога заведений.
func NewVenueHandler(service *venues.Service) *VenueHandler {
	return &VenueHandler{Venues: service}
}

type VenueListResponse struct {
	Venues []models.Venue `json:"venues"`
	Count  int            `json:"count"`
}

// List возвращает агрегированный список свадебных залов.
func (h *VenueHandler) List(c echo.Context) error {
	list, err := h.Venues.List(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, VenueListResponse{Venues: list, Count: len(list)})
}

// GetByID возвращает карточку заведения.
func (h *VenueHandler) GetByID(c echo.Context) error {
	venueID := strings.TrimSpace(c.Param("id"))
	if venueID == "" {
		return badRequest(c, "venue id is required")
	}

	detail, err := h.Venues.GetByID(c.Request().Context(), venueID)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrFetchDisabled):
			return notFound(c, "venue not available")
		case errors.Is(err, repository.ErrNotFound):
			return notFound(c, "venue not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, detail)
}
