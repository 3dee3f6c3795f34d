package suggest

import (
	"fmt"
	"time"
)

// DaySnapshot summarizes one calendar day of logs for rule evaluation.
// Optional readings are nil when nothing was logged.
type DaySnapshot struct {
	FeedCount          int
	DiaperCount        int
	LatestTemperatureC *float64
	LastFeedAt         *time.Time
	MedicationCount    int
}

type RuleThresholds struct {
	FeedTargetPerDay   int
	DiaperTargetPerDay int
	TempWatchC         float64
}

// DefaultRuleThresholds возвращает пороги rule-подсказок по умолчанию.
func DefaultRuleThresholds() RuleThresholds {
	return RuleThresholds{
		FeedTargetPerDay:   6,
		DiaperTargetPerDay: 4,
		TempWatchC:         37.5,
	}
}

// BuildRuleSuggestions строит детерминированные подсказки по дневной сводке.
//
// Suggestions are emitted in priority order; the merger relies on that order
// and never reorders them. No I/O, no clock reads.
func BuildRuleSuggestions(snap DaySnapshot, cfg RuleThresholds) []Suggestion {
	out := make([]Suggestion, 0, 4)

	if snap.LatestTemperatureC != nil && *snap.LatestTemperatureC >= cfg.TempWatchC {
		out = append(out, Suggestion{
			ID:     "temp-trend",
			Title:  "Temperature trend watch",
			Detail: fmt.Sprintf("Last reading was %.1f°C. Re-check in an hour and watch for fever signs.", *snap.LatestTemperatureC),
			Source: SourceRule,
		})
	}

	if snap.FeedCount < cfg.FeedTargetPerDay {
		out = append(out, Suggestion{
			ID:     "feed-count",
			Title:  "Feeding frequency",
			Detail: fmt.Sprintf("Only %d feeds logged so far against a target of %d. Consider offering a feed.", snap.FeedCount, cfg.FeedTargetPerDay),
			Source: SourceRule,
		})
	}

	if snap.DiaperCount < cfg.DiaperTargetPerDay {
		out = append(out, Suggestion{
			ID:     "diaper-count",
			Title:  "Diaper output check",
			Detail: fmt.Sprintf("%d diaper changes logged so far. Fewer wet diapers can signal low intake.", snap.DiaperCount),
			Source: SourceRule,
		})
	}

	if snap.MedicationCount > 0 {
		out = append(out, Suggestion{
			ID:     "med-review",
			Title:  "Medication log review",
			Detail: "Medication was given. Review doses and spacing before the next one.",
			Source: SourceRule,
		})
	}

	if len(out) == 0 {
		out = append(out, Suggestion{
			ID:     "routine-ok",
			Title:  "Routine on track",
			Detail: "Logs look on track. Keep recording feeds and diapers to spot changes early.",
			Source: SourceRule,
		})
	}

	return out
}
