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

type MilestoneHandler struct {
	Milestones *repository.MilestoneRepository
	Notifier   *notifications.Hub
}

// NewMilestoneHandler создает обработчик вех развития.
func NewMilestoneHandler(milestones *repository.MilestoneRepository, notifier *notifications.Hub) *MilestoneHandler {
	return &MilestoneHandler{Milestones: milestones, Notifier: notifier}
}

type MilestoneRequest struct {
	Title      string  `json:"title" validate:"required,max=200"`
	Note       *string `json:"note" validate:"omitempty,max=500"`
	AchievedAt string  `json:"achieved_at"`
}

// List возвращает вехи за день.
func (h *MilestoneHandler) List(c echo.Context) error {
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

	milestones, err := h.Milestones.ListByRange(c.Request().Context(), userID, babyID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Milestone{"milestones": milestones})
}

// Create добавляет веху развития.
func (h *MilestoneHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	var req MilestoneRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return badRequest(c, "title is required")
	}

	achievedAt, err := parseLoggedAt(req.AchievedAt)
	if err != nil {
		return badRequest(c, "invalid achieved_at format")
	}

	milestone, err := h.Milestones.Create(c.Request().Context(), userID, models.Milestone{
		BabyID:     babyID,
		Title:      title,
		Note:       normalizeNote(req.Note),
		AchievedAt: achievedAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.Event{
		Type: notifications.EventMilestoneAdded,
		Data: map[string]interface{}{
			"baby_id": babyID,
			"title":   milestone.Title,
		},
	})
	return c.JSON(http.StatusCreated, milestone)
}

// Delete удаляет веху развития.
func (h *MilestoneHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	milestoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid milestone id")
	}

	if err := h.Milestones.Delete(c.Request().Context(), userID, milestoneID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "milestone not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
