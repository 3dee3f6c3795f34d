package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/usimeon/BabyLog-sub001/internal/auth"
	"github.com/usimeon/BabyLog-sub001/internal/models"
	"github.com/usimeon/BabyLog-sub001/internal/notifications"
	"github.com/usimeon/BabyLog-sub001/internal/repository"
)

type FeedHandler struct {
	Feeds    *repository.FeedRepository
	Notifier *notifications.Hub
}

// NewFeedHandler создает обработчик журнала кормлений.
func NewFeedHandler(feeds *repository.FeedRepository, notifier *notifications.Hub) *FeedHandler {
	return &FeedHandler{Feeds: feeds, Notifier: notifier}
}

type FeedRequest struct {
	FeedType        string   `json:"feed_type" validate:"required"`
	AmountML        *float64 `json:"amount_ml" validate:"omitempty,gt=0"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	Note            *string  `json:"note" validate:"omitempty,max=500"`
	LoggedAt        string   `json:"logged_at"`
}

// List возвращает кормления за день.
func (h *FeedHandler) List(c echo.Context) error {
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

	feeds, err := h.Feeds.ListByRange(c.Request().Context(), userID, babyID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.FeedLog{"feeds": feeds})
}

// Create добавляет запись о кормлении.
func (h *FeedHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	var req FeedRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	feedType, ok := mapFeedType(req.FeedType)
	if !ok {
		return badRequest(c, "invalid feed_type")
	}

	loggedAt, err := parseLoggedAt(req.LoggedAt)
	if err != nil {
		return badRequest(c, err.Error())
	}

	feed, err := h.Feeds.Create(c.Request().Context(), userID, models.FeedLog{
		BabyID:          babyID,
		FeedType:        feedType,
		AmountML:        req.AmountML,
		DurationMinutes: req.DurationMinutes,
		Note:            normalizeNote(req.Note),
		LoggedAt:        loggedAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.LogCreated(babyID, "feed"))
	return c.JSON(http.StatusCreated, feed)
}

// Delete удаляет запись о кормлении.
func (h *FeedHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	feedID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid feed id")
	}

	if err := h.Feeds.Delete(c.Request().Context(), userID, feedID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "feed log not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func mapFeedType(value string) (models.FeedType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(models.FeedTypeBreast):
		return models.FeedTypeBreast, true
	case string(models.FeedTypeBottle):
		return models.FeedTypeBottle, true
	case string(models.FeedTypeSolid):
		return models.FeedTypeSolid, true
	default:
		return "", false
	}
}
