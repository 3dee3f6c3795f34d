package alerts

import "time"

type Level string

const (
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Alert is a single threshold violation, computed fresh on every
// evaluation call.
type Alert struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Thresholds is the user-configurable smart alert configuration. It is
// passed in explicitly by the caller; the evaluator reads no ambient state.
type Thresholds struct {
	Enabled         bool
	FeedGapHours    float64
	DiaperGapHours  float64
	FeverThresholdC float64
	LowFeedsPerDay  int
}

// MedicationDose is one administration from the bounded recent history.
// MinIntervalHours is the minimum safe re-dosing interval declared on the
// entry, nil when none was recorded.
type MedicationDose struct {
	Name             string
	At               time.Time
	MinIntervalHours *float64
}

// Input carries the fully materialized data the evaluator inspects.
// Nil latest-log values skip the corresponding check; they are not errors.
// Medications must be sorted ascending by administration time.
type Input struct {
	LastFeedAt         *time.Time
	LastDiaperAt       *time.Time
	LatestTemperatureC *float64
	FeedsInLast24h     int
	Medications        []MedicationDose
}
