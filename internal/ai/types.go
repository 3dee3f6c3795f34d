package ai

// DailyInsightsInput is the day snapshot sent to the model. All values are
// already aggregated by the caller; the service performs no data access.
type DailyInsightsInput struct {
	Date            string               `json:"date"`
	BabyName        string               `json:"baby_name"`
	AgeDays         int                  `json:"age_days"`
	FeedCount       int                  `json:"feed_count"`
	TotalFeedML     float64              `json:"total_feed_ml,omitempty"`
	DiaperCount     int                  `json:"diaper_count"`
	WetDiapers      int                  `json:"wet_diapers"`
	DirtyDiapers    int                  `json:"dirty_diapers"`
	LatestTempC     *float64             `json:"latest_temperature_c,omitempty"`
	Medications     []MedicationSnapshot `json:"medications,omitempty"`
	MilestonesToday []string             `json:"milestones_today,omitempty"`
}

type MedicationSnapshot struct {
	Name     string  `json:"name"`
	Dose     *string `json:"dose,omitempty"`
	HoursAgo float64 `json:"hours_ago"`
}

// InsightSuggestion is one model-proposed suggestion before mapping into
// the merge pipeline.
type InsightSuggestion struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type InsightsResponse struct {
	Date        string              `json:"date"`
	Suggestions []InsightSuggestion `json:"suggestions"`
}
