package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/usimeon/BabyLog-sub001/internal/alerts"
	"github.com/usimeon/BabyLog-sub001/internal/auth"
	"github.com/usimeon/BabyLog-sub001/internal/models"
	"github.com/usimeon/BabyLog-sub001/internal/notifications"
	"github.com/usimeon/BabyLog-sub001/internal/repository"
	"github.com/usimeon/BabyLog-sub001/internal/suggest"
)

type SummaryHandler struct {
	Babies         *repository.BabyRepository
	Feeds          *repository.FeedRepository
	Diapers        *repository.DiaperRepository
	Temperatures   *repository.TemperatureRepository
	Medications    *repository.MedicationRepository
	Summary        *repository.SummaryRepository
	Settings       *repository.SettingsRepository
	InsightsLoader *InsightsHandler
	Notifier       *notifications.Hub
	MaxSuggestions int
}

// NewSummaryHandler создает обработчик дневной сводки.
func NewSummaryHandler(
	babies *repository.BabyRepository,
	feeds *repository.FeedRepository,
	diapers *repository.DiaperRepository,
	temperatures *repository.TemperatureRepository,
	medications *repository.MedicationRepository,
	summary *repository.SummaryRepository,
	settings *repository.SettingsRepository,
	insightsLoader *InsightsHandler,
	notifier *notifications.Hub,
	maxSuggestions int,
) *SummaryHandler {
	return &SummaryHandler{
		Babies:         babies,
		Feeds:          feeds,
		Diapers:        diapers,
		Temperatures:   temperatures,
		Medications:    medications,
		Summary:        summary,
		Settings:       settings,
		InsightsLoader: insightsLoader,
		Notifier:       notifier,
		MaxSuggestions: maxSuggestions,
	}
}

type SummaryCounts struct {
	FeedCount       int     `json:"feed_count"`
	TotalFeedML     float64 `json:"total_feed_ml"`
	DiaperCount     int     `json:"diaper_count"`
	WetDiapers      int     `json:"wet_diapers"`
	DirtyDiapers    int     `json:"dirty_diapers"`
	MedicationCount int     `json:"medication_count"`
	MilestoneCount  int     `json:"milestone_count"`
}

type TodaySummaryResponse struct {
	Date        string               `json:"date"`
	Baby        BabyResponse         `json:"baby"`
	Counts      SummaryCounts        `json:"counts"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
	Alerts      []alerts.Alert       `json:"alerts"`
}

// Today собирает дневную сводку: счетчики, советы и алерты.
func (h *SummaryHandler) Today(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	babyID, err := uuid.Parse(c.Param("babyId"))
	if err != nil {
		return badRequest(c, "invalid baby id")
	}

	ctx := c.Request().Context()

	baby, err := h.Babies.GetByID(ctx, userID, babyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "baby not found")
		}
		return serverError(c)
	}

	now := time.Now().UTC()
	dayStart := now.Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)
	date := dayStart.Format(dateLayout)

	counts, err := h.Summary.DayCounts(ctx, userID, babyID, dayStart, dayEnd)
	if err != nil {
		return serverError(c)
	}

	lastFeed, err := h.Feeds.Latest(ctx, userID, babyID)
	if err != nil {
		return serverError(c)
	}

	lastDiaper, err := h.Diapers.Latest(ctx, userID, babyID)
	if err != nil {
		return serverError(c)
	}

	latestTemp, err := h.Temperatures.Latest(ctx, userID, babyID)
	if err != nil {
		return serverError(c)
	}

	feedsInLast24h, err := h.Feeds.CountSince(ctx, userID, babyID, now.Add(-24*time.Hour))
	if err != nil {
		return serverError(c)
	}

	recentMedications, err := h.Medications.ListRecent(ctx, userID, babyID)
	if err != nil {
		return serverError(c)
	}

	settings, err := h.Settings.GetAlertSettings(ctx, userID, babyID)
	if err != nil {
		return serverError(c)
	}

	suggestions := h.buildSuggestions(c, userID, baby, date, dayStart, dayEnd, counts, lastFeed, latestTemp)
	alertList := h.evaluateAlerts(userID, babyID, settings, lastFeed, lastDiaper, latestTemp, feedsInLast24h, recentMedications, now)

	return c.JSON(http.StatusOK, TodaySummaryResponse{
		Date:        date,
		Baby:        toBabyResponse(baby),
		Counts:      toSummaryCounts(counts),
		Suggestions: suggestions,
		Alerts:      alertList,
	})
}

// buildSuggestions объединяет rule-based советы с AI-инсайтами. Ошибка AI
// деградирует сводку до rule-based советов, а не до ошибки запроса.
func (h *SummaryHandler) buildSuggestions(
	c echo.Context,
	userID uuid.UUID,
	baby models.Baby,
	date string,
	dayStart, dayEnd time.Time,
	counts repository.DayCounts,
	lastFeed *models.FeedLog,
	latestTemp *models.TemperatureLog,
) []suggest.Suggestion {
	snapshot := suggest.DaySnapshot{
		FeedCount:       counts.FeedCount,
		DiaperCount:     counts.DiaperCount,
		MedicationCount: counts.MedicationCount,
	}
	if latestTemp != nil {
		snapshot.LatestTemperatureC = &latestTemp.TemperatureC
	}
	if lastFeed != nil {
		loggedAt := lastFeed.LoggedAt
		snapshot.LastFeedAt = &loggedAt
	}

	rules := suggest.BuildRuleSuggestions(snapshot, suggest.DefaultRuleThresholds())

	ctx := c.Request().Context()
	aiResponse, err := h.InsightsLoader.cachedInsights(ctx, userID, baby.ID, date)
	if err != nil {
		aiResponse = nil
	}
	if aiResponse == nil {
		aiResponse, _ = h.InsightsLoader.generateInsights(ctx, userID, baby, date, dayStart, dayEnd)
	}

	return suggest.Merge(rules, aiResponse, h.MaxSuggestions)
}

func (h *SummaryHandler) evaluateAlerts(
	userID, babyID uuid.UUID,
	settings models.AlertSettings,
	lastFeed *models.FeedLog,
	lastDiaper *models.DiaperLog,
	latestTemp *models.TemperatureLog,
	feedsInLast24h int,
	medications []models.MedicationLog,
	now time.Time,
) []alerts.Alert {
	input := alerts.Input{
		FeedsInLast24h: feedsInLast24h,
	}
	if lastFeed != nil {
		loggedAt := lastFeed.LoggedAt
		input.LastFeedAt = &loggedAt
	}
	if lastDiaper != nil {
		loggedAt := lastDiaper.LoggedAt
		input.LastDiaperAt = &loggedAt
	}
	if latestTemp != nil {
		input.LatestTemperatureC = &latestTemp.TemperatureC
	}
	for _, medication := range medications {
		input.Medications = append(input.Medications, alerts.MedicationDose{
			Name:             medication.Name,
			At:               medication.LoggedAt,
			MinIntervalHours: medication.MinIntervalHours,
		})
	}

	thresholds := alerts.Thresholds{
		Enabled:         settings.Enabled,
		FeedGapHours:    settings.FeedGapHours,
		DiaperGapHours:  settings.DiaperGapHours,
		FeverThresholdC: settings.FeverThresholdC,
		LowFeedsPerDay:  settings.LowFeedsPerDay,
	}

	alertList := alerts.Evaluate(input, thresholds, now)
	for _, alert := range alertList {
		if alert.Level == alerts.LevelCritical {
			h.Notifier.Publish(userID, notifications.AlertRaised(babyID, string(alert.Level), alert.Message))
		}
	}

	return alertList
}

func toSummaryCounts(counts repository.DayCounts) SummaryCounts {
	return SummaryCounts{
		FeedCount:       counts.FeedCount,
		TotalFeedML:     counts.TotalFeedML,
		DiaperCount:     counts.DiaperCount,
		WetDiapers:      counts.WetDiapers,
		DirtyDiapers:    counts.DirtyDiapers,
		MedicationCount: counts.MedicationCount,
		MilestoneCount:  counts.MilestoneCount,
	}
}
