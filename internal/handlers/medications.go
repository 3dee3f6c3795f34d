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

type MedicationHandler struct {
	Medications *repository.MedicationRepository
	Notifier    *notifications.Hub
}

// NewMedicationHandler создает обработчик журнала лекарств.
func NewMedicationHandler(medications *repository.MedicationRepository, notifier *notifications.Hub) *MedicationHandler {
	return &MedicationHandler{Medications: medications, Notifier: notifier}
}

type MedicationRequest struct {
	Name             string   `json:"name" validate:"required,max=200"`
	Dose             *string  `json:"dose" validate:"omitempty,max=100"`
	MinIntervalHours *float64 `json:"min_interval_hours" validate:"omitempty,gt=0,lte=168"`
	Note             *string  `json:"note" validate:"omitempty,max=500"`
	LoggedAt         string   `json:"logged_at"`
}

// List возвращает приемы лекарств за день.
func (h *MedicationHandler) List(c echo.Context) error {
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

	medications, err := h.Medications.ListByRange(c.Request().Context(), userID, babyID, from, to)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.MedicationLog{"medications": medications})
}

// Create добавляет запись о приеме лекарства.
func (h *MedicationHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	var req MedicationRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	loggedAt, err := parseLoggedAt(req.LoggedAt)
	if err != nil {
		return badRequest(c, err.Error())
	}

	medication, err := h.Medications.Create(c.Request().Context(), userID, models.MedicationLog{
		BabyID:           babyID,
		Name:             name,
		Dose:             normalizeNote(req.Dose),
		MinIntervalHours: req.MinIntervalHours,
		Note:             normalizeNote(req.Note),
		LoggedAt:         loggedAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.LogCreated(babyID, "medication"))
	return c.JSON(http.StatusCreated, medication)
}

// Delete удаляет запись о приеме лекарства.
func (h *MedicationHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	medicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid medication id")
	}

	if err := h.Medications.Delete(c.Request().Context(), userID, medicationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "medication log not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
