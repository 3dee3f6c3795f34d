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

type DiaperHandler struct {
	Diapers  *repository.DiaperRepository
	Notifier *notifications.Hub
}

// NewDiaperHandler создает обработчик журнала подгузников.
func NewDiaperHandler(diapers *repository.DiaperRepository, notifier *notifications.Hub) *DiaperHandler {
	return &DiaperHandler{Diapers: diapers, Notifier: notifier}
}

type DiaperRequest struct {
	Pee      bool    `json:"pee"`
	Poop     bool    `json:"poop"`
	Size     *string `json:"size"`
	Note     *string `json:"note" validate:"omitempty,max=500"`
	LoggedAt string  `json:"logged_at"`
}

// List возвращает смены подгузников за день.
func (h *DiaperHandler) List(c echo.Context) error {
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

	diapers, err := h.Diapers.ListByRange(c.Request().Context(), userID, babyID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.DiaperLog{"diapers": diapers})
}

// Create добавляет запись о смене подгузника.
func (h *DiaperHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	var req DiaperRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	if !req.Pee && !req.Poop {
		return badRequest(c, "at least one of pee or poop is required")
	}

	var size *models.DiaperSize
	if req.Size != nil {
		value, ok := mapDiaperSize(*req.Size)
		if !ok {
			return badRequest(c, "invalid size")
		}
		size = &value
	}

	loggedAt, err := parseLoggedAt(req.LoggedAt)
	if err != nil {
		return badRequest(c, err.Error())
	}

	diaper, err := h.Diapers.Create(c.Request().Context(), userID, models.DiaperLog{
		BabyID:   babyID,
		Pee:      req.Pee,
		Poop:     req.Poop,
		Size:     size,
		Note:     normalizeNote(req.Note),
		LoggedAt: loggedAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.LogCreated(babyID, "diaper"))
	return c.JSON(http.StatusCreated, diaper)
}

// Delete удаляет запись о смене подгузника.
func (h *DiaperHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	diaperID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid diaper id")
	}

	if err := h.Diapers.Delete(c.Request().Context(), userID, diaperID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "diaper log not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func mapDiaperSize(value string) (models.DiaperSize, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(models.DiaperSizeSmall):
		return models.DiaperSizeSmall, true
	case string(models.DiaperSizeMedium):
		return models.DiaperSizeMedium, true
	case string(models.DiaperSizeLarge):
		return models.DiaperSizeLarge, true
	default:
		return "", false
	}
}
