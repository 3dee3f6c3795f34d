package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/usimeon/BabyLog-sub001/internal/auth"
	"github.com/usimeon/BabyLog-sub001/internal/models"
	"github.com/usimeon/BabyLog-sub001/internal/repository"
)

type SettingsHandler struct {
	Settings *repository.SettingsRepository
}

// NewSettingsHandler создает обработчик настроек алертов.
func NewSettingsHandler(settings *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

type AlertSettingsRequest struct {
	Enabled         bool    `json:"enabled"`
	FeedGapHours    float64 `json:"feed_gap_hours" validate:"gt=0,lte=48"`
	DiaperGapHours  float64 `json:"diaper_gap_hours" validate:"gt=0,lte=48"`
	FeverThresholdC float64 `json:"fever_threshold_c" validate:"gte=35,lte=43"`
	LowFeedsPerDay  int     `json:"low_feeds_per_day" validate:"gt=0,lte=30"`
}

// Get возвращает настройки алертов для ребенка.
func (h *SettingsHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	settings, err := h.Settings.GetAlertSettings(c.Request().Context(), userID, babyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, settings)
}

// Put сохраняет настройки алертов для ребенка.
func (h *SettingsHandler) Put(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	var req AlertSettingsRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	settings, err := h.Settings.UpsertAlertSettings(c.Request().Context(), userID, models.AlertSettings{
		BabyID:          babyID,
		Enabled:         req.Enabled,
		FeedGapHours:    req.FeedGapHours,
		DiaperGapHours:  req.DiaperGapHours,
		FeverThresholdC: req.FeverThresholdC,
		LowFeedsPerDay:  req.LowFeedsPerDay,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, settings)
}
