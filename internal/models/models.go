package models

import (
	"time"

	"github.com/google/uuid"
)

type FeedType string

type DiaperSize string

const (
	FeedTypeBreast FeedType = "breast"
	FeedTypeBottle FeedType = "bottle"
	FeedTypeSolid  FeedType = "solid"

	DiaperSizeSmall  DiaperSize = "small"
	DiaperSizeMedium DiaperSize = "medium"
	DiaperSizeLarge  DiaperSize = "large"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Baby struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FeedLog struct {
	ID              uuid.UUID `json:"id"`
	BabyID          uuid.UUID `json:"baby_id"`
	FeedType        FeedType  `json:"feed_type"`
	AmountML        *float64  `json:"amount_ml,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Note            *string   `json:"note,omitempty"`
	LoggedAt        time.Time `json:"logged_at"`
	CreatedAt       time.Time `json:"created_at"`
}

type DiaperLog struct {
	ID        uuid.UUID   `json:"id"`
	BabyID    uuid.UUID   `json:"baby_id"`
	Pee       bool        `json:"pee"`
	Poop      bool        `json:"poop"`
	Size      *DiaperSize `json:"size,omitempty"`
	Note      *string     `json:"note,omitempty"`
	LoggedAt  time.Time   `json:"logged_at"`
	CreatedAt time.Time   `json:"created_at"`
}

type TemperatureLog struct {
	ID           uuid.UUID `json:"id"`
	BabyID       uuid.UUID `json:"baby_id"`
	TemperatureC float64   `json:"temperature_c"`
	Note         *string   `json:"note,omitempty"`
	LoggedAt     time.Time `json:"logged_at"`
	CreatedAt    time.Time `json:"created_at"`
}

type GrowthLog struct {
	ID                  uuid.UUID `json:"id"`
	BabyID              uuid.UUID `json:"baby_id"`
	WeightKG            *float64  `json:"weight_kg,omitempty"`
	HeightCM            *float64  `json:"height_cm,omitempty"`
	HeadCircumferenceCM *float64  `json:"head_circumference_cm,omitempty"`
	LoggedAt            time.Time `json:"logged_at"`
	CreatedAt           time.Time `json:"created_at"`
}

type MedicationLog struct {
	ID               uuid.UUID `json:"id"`
	BabyID           uuid.UUID `json:"baby_id"`
	Name             string    `json:"name"`
	Dose             *string   `json:"dose,omitempty"`
	MinIntervalHours *float64  `json:"min_interval_hours,omitempty"`
	Note             *string   `json:"note,omitempty"`
	LoggedAt         time.Time `json:"logged_at"`
	CreatedAt        time.Time `json:"created_at"`
}

type Milestone struct {
	ID         uuid.UUID `json:"id"`
	BabyID     uuid.UUID `json:"baby_id"`
	Title      string    `json:"title"`
	Note       *string   `json:"note,omitempty"`
	AchievedAt time.Time `json:"achieved_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// AlertSettings holds the per-baby smart alert thresholds. Rows are created
// lazily; readers fall back to DefaultAlertSettings until a parent saves
// their own values.
type AlertSettings struct {
	BabyID          uuid.UUID `json:"baby_id"`
	Enabled         bool      `json:"enabled"`
	FeedGapHours    float64   `json:"feed_gap_hours"`
	DiaperGapHours  float64   `json:"diaper_gap_hours"`
	FeverThresholdC float64   `json:"fever_threshold_c"`
	LowFeedsPerDay  int       `json:"low_feeds_per_day"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultAlertSettings возвращает пороги, используемые до первой настройки.
func DefaultAlertSettings(babyID uuid.UUID) AlertSettings {
	return AlertSettings{
		BabyID:          babyID,
		Enabled:         true,
		FeedGapHours:    4,
		DiaperGapHours:  6,
		FeverThresholdC: 38.0,
		LowFeedsPerDay:  6,
	}
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
