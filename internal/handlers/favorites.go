package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/zaffaf/backend/internal/auth"
	"example.com/zaffaf/backend/internal/models"
	"example.com/zaffaf/backend/internal/notifications"
	"example.com/zaffaf/backend/internal/repository"
)

type FavoriteHandler struct {
	Favorites *repository.FavoriteRepository
	Hub       *notifications.Hub
}

// NewFavoriteHandler создает обработчик избранного.
func NewFavoriteHandler(favorites *repository.FavoriteRepository, hub *notifications.Hub) *FavoriteHandler {
	return &FavoriteHandler{Favorites: favorites, Hub: hub}
}

// AddFavoriteRequest несет снимок карточки: список избранного должен
// работать и когда внешний API недоступен.
type AddFavoriteRequest struct {
	Name    string  `json:"name" validate:"required,max=300"`
	Address string  `json:"address" validate:"max=500"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=5"`
	Price   string  `json:"price" validate:"max=100"`
	Image   string  `json:"image" validate:"max=1000"`
	City    string  `json:"city" validate:"max=100"`
}

type FavoriteListResponse struct {
	Favorites []models.FavoriteVenue `json:"favorites"`
	Count     int                    `json:"count"`
}

type FavoriteStatusResponse struct {
	Favorite bool `json:"favorite"`
}

// List возвращает избранные заведения пользователя.
func (h *FavoriteHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	favorites, err := h.Favorites.List(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, FavoriteListResponse{Favorites: favorites, Count: len(favorites)})
}

// Add сохраняет заведение в избранное.
func (h *FavoriteHandler) Add(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	venueID := strings.TrimSpace(c.Param("venueId"))
	if venueID == "" {
		return badRequest(c, "venue id is required")
	}

	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	favorite := models.FavoriteVenue{
		UserID:  userID,
		VenueID: venueID,
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Rating:  req.Rating,
		Price:   req.Price,
		Image:   req.Image,
		City:    strings.TrimSpace(req.City),
	}

	created, err := h.Favorites.Add(c.Request().Context(), favorite)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return conflict(c, "venue already in favorites")
		}
		return serverError(c)
	}

	publishFavoriteUpdate(h.Hub, userID, created.VenueID, "added")

	return c.JSON(http.StatusCreated, created)
}

// Remove убирает заведение из избранного.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	venueID := strings.TrimSpace(c.Param("venueId"))
	if venueID == "" {
		return badRequest(c, "venue id is required")
	}

	if err := h.Favorites.Remove(c.Request().Context(), userID, venueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "favorite not found")
		}
		return serverError(c)
	}

	publishFavoriteUpdate(h.Hub, userID, venueID, "removed")

	return c.NoContent(http.StatusNoContent)
}

// Status сообщает, есть ли заведение в избранном.
func (h *FavoriteHandler) Status(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	venueID := strings.TrimSpace(c.Param("venueId"))
	if venueID == "" {
		return badRequest(c, "venue id is required")
	}

	exists, err := h.Favorites.Exists(c.Request().Context(), userID, venueID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, FavoriteStatusResponse{Favorite: exists})
}
