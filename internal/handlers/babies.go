package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/usimeon/BabyLog-sub001/internal/auth"
	"github.com/usimeon/BabyLog-sub001/internal/models"
	"github.com/usimeon/BabyLog-sub001/internal/repository"
)

const dateLayout = "2006-01-02"

type BabyHandler struct {
	Babies *repository.BabyRepository
}

// NewBabyHandler создает обработчик профилей детей.
func NewBabyHandler(babies *repository.BabyRepository) *BabyHandler {
	return &BabyHandler{Babies: babies}
}

type BabyRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	BirthDate string `json:"birth_date" validate:"required"`
}

type BabyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BirthDate string    `json:"birth_date"`
	AgeDays   int       `json:"age_days"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List возвращает список детей пользователя.
func (h *BabyHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babies, err := h.Babies.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]BabyResponse, 0, len(babies))
	for _, baby := range babies {
		response = append(response, toBabyResponse(baby))
	}

	return c.JSON(http.StatusOK, map[string][]BabyResponse{"babies": response})
}

// Create создает профиль ребенка.
func (h *BabyHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req BabyRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return badRequest(c, "invalid birth_date format")
	}
	if birthDate.After(time.Now().UTC()) {
		return badRequest(c, "birth_date cannot be in the future")
	}

	baby, err := h.Babies.Create(c.Request().Context(), userID, name, birthDate)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toBabyResponse(baby))
}

// Get возвращает профиль ребенка по идентификатору.
func (h *BabyHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	baby, err := h.Babies.GetByID(c.Request().Context(), userID, babyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toBabyResponse(baby))
}

// Update изменяет профиль ребенка.
func (h *BabyHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	var req BabyRequest
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

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return badRequest(c, "invalid birth_date format")
	}

	baby, err := h.Babies.Update(c.Request().Context(), userID, babyID, name, birthDate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toBabyResponse(baby))
}

// Delete удаляет профиль ребенка вместе с его журналами.
func (h *BabyHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	if err := h.Babies.Delete(c.Request().Context(), userID, babyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}

func ageInDays(birthDate, now time.Time) int {
	days := int(now.Sub(birthDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func toBabyResponse(baby models.Baby) BabyResponse {
	return BabyResponse{
		ID:        baby.ID,
		Name:      baby.Name,
		BirthDate: baby.BirthDate.Format(dateLayout),
		AgeDays:   ageInDays(baby.BirthDate, time.Now().UTC()),
		CreatedAt: baby.CreatedAt,
		UpdatedAt: baby.UpdatedAt,
	}
}
