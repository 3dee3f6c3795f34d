package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/usimeon/BabyLog-sub001/internal/ai"
	"github.com/usimeon/BabyLog-sub001/internal/auth"
	"github.com/usimeon/BabyLog-sub001/internal/models"
	"github.com/usimeon/BabyLog-sub001/internal/notifications"
	"github.com/usimeon/BabyLog-sub001/internal/repository"
	"github.com/usimeon/BabyLog-sub001/internal/suggest"
)

const aiRequestDailyInsights = "daily_insights"

type InsightsHandler struct {
	Babies       *repository.BabyRepository
	Summary      *repository.SummaryRepository
	Temperatures *repository.TemperatureRepository
	Medications  *repository.MedicationRepository
	Milestones   *repository.MilestoneRepository
	Insights     *repository.InsightRepository
	Service      *ai.Service
	Notifier     *notifications.Hub
	Provider     string
	Model        string
}

// NewInsightsHandler создает обработчик AI-инсайтов.
func NewInsightsHandler(
	babies *repository.BabyRepository,
	summary *repository.SummaryRepository,
	temperatures *repository.TemperatureRepository,
	medications *repository.MedicationRepository,
	milestones *repository.MilestoneRepository,
	insights *repository.InsightRepository,
	service *ai.Service,
	notifier *notifications.Hub,
	provider, model string,
) *InsightsHandler {
	return &InsightsHandler{
		Babies:       babies,
		Summary:      summary,
		Temperatures: temperatures,
		Medications:  medications,
		Milestones:   milestones,
		Insights:     insights,
		Service:      service,
		Notifier:     notifier,
		Provider:     provider,
		Model:        model,
	}
}

// Get возвращает инсайты за день: из кэша либо генерирует при его отсутствии.
func (h *InsightsHandler) Get(c echo.Context) error {
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
	date := from.Format(dateLayout)

	cached, err := h.cachedInsights(c.Request().Context(), userID, babyID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}
	if cached != nil {
		return c.JSON(http.StatusOK, cached)
	}

	baby, err := h.Babies.GetByID(c.Request().Context(), userID, babyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	response, err := h.generateInsights(c.Request().Context(), userID, baby, date, from, to)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, response)
}

// Generate запрашивает у модели инсайты за день и кэширует результат.
func (h *InsightsHandler) Generate(c echo.Context) error {
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

	from, to, err := dayRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	date := from.Format(dateLayout)

	response, err := h.generateInsights(c.Request().Context(), userID, baby, date, from, to)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, response)
}

// cachedInsights читает кэш инсайтов; nil означает отсутствие записи.
func (h *InsightsHandler) cachedInsights(ctx context.Context, userID, babyID uuid.UUID, date string) (*suggest.InsightsResponse, error) {
	payload, err := h.Insights.GetDaily(ctx, userID, babyID, date)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	var response suggest.InsightsResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return nil, err
	}

	response.Cached = true
	return &response, nil
}

// generateInsights собирает дневной снимок, вызывает модель и кэширует ответ.
func (h *InsightsHandler) generateInsights(ctx context.Context, userID uuid.UUID, baby models.Baby, date string, from, to time.Time) (*suggest.InsightsResponse, error) {
	input, err := h.buildInsightsInput(ctx, userID, baby, date, from, to)
	if err != nil {
		return nil, err
	}

	aiResponse, prompt, raw, err := h.Service.DailyInsights(ctx, input)
	h.logAIRequest(ctx, userID, baby.ID, prompt, aiResponse, raw, err)
	if err != nil {
		slog.Warn("daily insights generation failed",
			slog.String("baby_id", baby.ID.String()),
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	response := toInsightsResponse(aiResponse, date)

	payload, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}

	if err := h.Insights.SaveDaily(ctx, userID, baby.ID, date, payload); err != nil {
		return nil, err
	}

	h.Notifier.Publish(userID, notifications.InsightsReady(baby.ID, date, len(response.Suggestions)))

	slog.Info("daily insights generated",
		slog.String("baby_id", baby.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("count", len(response.Suggestions)))
	return &response, nil
}

func (h *InsightsHandler) buildInsightsInput(ctx context.Context, userID uuid.UUID, baby models.Baby, date string, from, to time.Time) (ai.DailyInsightsInput, error) {
	counts, err := h.Summary.DayCounts(ctx, userID, baby.ID, from, to)
	if err != nil {
		return ai.DailyInsightsInput{}, err
	}

	latestTemp, err := h.Temperatures.Latest(ctx, userID, baby.ID)
	if err != nil {
		return ai.DailyInsightsInput{}, err
	}

	medications, err := h.Medications.ListByRange(ctx, userID, baby.ID, from, to)
	if err != nil {
		return ai.DailyInsightsInput{}, err
	}

	milestones, err := h.Milestones.ListByRange(ctx, userID, baby.ID, from, to)
	if err != nil {
		return ai.DailyInsightsInput{}, err
	}

	now := time.Now().UTC()
	input := ai.DailyInsightsInput{
		Date:         date,
		BabyName:     baby.Name,
		AgeDays:      ageInDays(baby.BirthDate, now),
		FeedCount:    counts.FeedCount,
		TotalFeedML:  counts.TotalFeedML,
		DiaperCount:  counts.DiaperCount,
		WetDiapers:   counts.WetDiapers,
		DirtyDiapers: counts.DirtyDiapers,
	}

	if latestTemp != nil {
		input.LatestTempC = &latestTemp.TemperatureC
	}

	for _, medication := range medications {
		input.Medications = append(input.Medications, ai.MedicationSnapshot{
			Name:     medication.Name,
			Dose:     medication.Dose,
			HoursAgo: now.Sub(medication.LoggedAt).Hours(),
		})
	}

	for _, milestone := range milestones {
		input.MilestonesToday = append(input.MilestonesToday, milestone.Title)
	}

	return input, nil
}

func (h *InsightsHandler) logAIRequest(ctx context.Context, userID, babyID uuid.UUID, prompt string, response ai.InsightsResponse, raw []byte, err error) {
	responsePayload := []byte(nil)
	if err == nil {
		responsePayload, _ = json.Marshal(response)
	}

	log := repository.AIRequestLog{
		UserID:          userID,
		BabyID:          babyID,
		RequestType:     aiRequestDailyInsights,
		Provider:        h.Provider,
		Model:           h.Model,
		Prompt:          prompt,
		ResponsePayload: responsePayload,
		RawResponse:     string(raw),
		Success:         err == nil,
	}
	if err != nil {
		errMsg := err.Error()
		log.ErrorMessage = &errMsg
	}

	_ = h.Insights.LogRequest(ctx, log)
}

func toInsightsResponse(response ai.InsightsResponse, date string) suggest.InsightsResponse {
	suggestions := make([]suggest.Suggestion, 0, len(response.Suggestions))
	for _, item := range response.Suggestions {
		suggestions = append(suggestions, suggest.Suggestion{
			ID:     item.ID,
			Title:  item.Title,
			Detail: item.Detail,
			Source: suggest.SourceAI,
		})
	}

	return suggest.InsightsResponse{
		Date:        date,
		Cached:      false,
		Suggestions: suggestions,
	}
}
