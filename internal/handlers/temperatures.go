package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/usimeon/BabyLog-sub001/internal/auth"
	"github.com/usimeon/BabyLog-sub001/internal/models"
	"github.com/usimeon/BabyLog-sub001/internal/notifications"
	"github.com/usimeon/BabyLog-sub001/internal/repository"
)

type TemperatureHandler struct {
	Temperatures *repository.TemperatureRepository
	Notifier     *notifications.Hub
}

// NewTemperatureHandler создает обработчик журнала температуры.
func NewTemperatureHandler(temperatures *repository.TemperatureRepository, notifier *notifications.Hub) *TemperatureHandler {
	return &TemperatureHandler{Temperatures: temperatures, Notifier: notifier}
}

type TemperatureRequest struct {
	TemperatureC float64 `json:"temperature_c" validate:"required,gte=30,lte=45"`
	Note         *string `json:"note" validate:"omitempty,max=500"`
	LoggedAt     string  `json:"logged_at"`
}

// List возвращает замеры температуры за день.
func (h *TemperatureHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	from, to, err := dayRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	temperatures, err := h.Temperatures.ListByRange(c.Request().Context(), userID, babyID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.TemperatureLog{"temperatures": temperatures})
}

// Create добавляет замер температуры.
func (h *TemperatureHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	var req TemperatureRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	loggedAt, err := parseLoggedAt(req.LoggedAt)
	if err != nil {
		return badRequest(c, err.Error())
	}

	temperature, err := h.Temperatures.Create(c.Request().Context(), userID, models.TemperatureLog{
		BabyID:       babyID,
		TemperatureC: req.TemperatureC,
		Note:         normalizeNote(req.Note),
		LoggedAt:     loggedAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.LogCreated(babyID, "temperature"))
	return c.JSON(http.StatusCreated, temperature)
}

// Delete удаляет замер температуры.
func (h *TemperatureHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tempID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid temperature id")
	}

	if err := h.Temperatures.Delete(c.Request().Context(), userID, tempID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "temperature log not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
