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

type GrowthHandler struct {
	Growth   *repository.GrowthRepository
	Notifier *notifications.Hub
}

// NewGrowthHandler создает обработчик журнала роста.
func NewGrowthHandler(growth *repository.GrowthRepository, notifier *notifications.Hub) *GrowthHandler {
	return &GrowthHandler{Growth: growth, Notifier: notifier}
}

type GrowthRequest struct {
	WeightKG            *float64 `json:"weight_kg" validate:"omitempty,gt=0,lte=50"`
	HeightCM            *float64 `json:"height_cm" validate:"omitempty,gt=0,lte=200"`
	HeadCircumferenceCM *float64 `json:"head_circumference_cm" validate:"omitempty,gt=0,lte=100"`
	LoggedAt            string   `json:"logged_at"`
}

// List возвращает записи роста за день.
func (h *GrowthHandler) List(c echo.Context) error {
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

	entries, err := h.Growth.ListByRange(c.Request().Context(), userID, babyID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.GrowthLog{"growth": entries})
}

// Create добавляет запись измерений роста.
func (h *GrowthHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	var req GrowthRequest
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

	entry, err := h.Growth.Create(c.Request().Context(), userID, models.GrowthLog{
		BabyID:              babyID,
		WeightKG:            req.WeightKG,
		HeightCM:            req.HeightCM,
		HeadCircumferenceCM: req.HeadCircumferenceCM,
		LoggedAt:            loggedAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "at least one measurement is required")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.LogCreated(babyID, "growth"))
	return c.JSON(http.StatusCreated, entry)
}

// Delete удаляет запись измерений роста.
func (h *GrowthHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	growthID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid growth id")
	}

	if err := h.Growth.Delete(c.Request().Context(), userID, growthID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "growth log not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
