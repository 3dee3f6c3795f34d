package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usimeon/BabyLog-sub001/internal/models"
)

type SettingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository создает репозиторий настроек алертов.
func NewSettingsRepository(db *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetAlertSettings возвращает настройки алертов, подставляя значения
// по умолчанию, пока пользователь ничего не сохранил.
func (r *SettingsRepository) GetAlertSettings(ctx context.Context, userID, babyID uuid.UUID) (models.AlertSettings, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return models.AlertSettings{}, err
	}

	var settings models.AlertSettings
	err := r.db.QueryRow(ctx,
		`SELECT baby_id, enabled, feed_gap_hours, diaper_gap_hours, fever_threshold_c, low_feeds_per_day, updated_at
		 FROM alert_settings
		 WHERE baby_id = $1`,
		babyID,
	).Scan(&settings.BabyID, &settings.Enabled, &settings.FeedGapHours, &settings.DiaperGapHours, &settings.FeverThresholdC, &settings.LowFeedsPerDay, &settings.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.DefaultAlertSettings(babyID), nil
		}
		return settings, err
	}

	return settings, nil
}

// UpsertAlertSettings сохраняет настройки алертов для ребенка.
func (r *SettingsRepository) UpsertAlertSettings(ctx context.Context, userID uuid.UUID, settings models.AlertSettings) (models.AlertSettings, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, settings.BabyID); err != nil {
		return models.AlertSettings{}, err
	}

	var out models.AlertSettings
	err := r.db.QueryRow(ctx,
		`INSERT INTO alert_settings (baby_id, enabled, feed_gap_hours, diaper_gap_hours, fever_threshold_c, low_feeds_per_day)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (baby_id) DO UPDATE
		 SET enabled = EXCLUDED.enabled,
		     feed_gap_hours = EXCLUDED.feed_gap_hours,
		     diaper_gap_hours = EXCLUDED.diaper_gap_hours,
		     fever_threshold_c = EXCLUDED.fever_threshold_c,
		     low_feeds_per_day = EXCLUDED.low_feeds_per_day,
		     updated_at = NOW()
		 RETURNING baby_id, enabled, feed_gap_hours, diaper_gap_hours, fever_threshold_c, low_feeds_per_day, updated_at`,
		settings.BabyID, settings.Enabled, settings.FeedGapHours, settings.DiaperGapHours, settings.FeverThresholdC, settings.LowFeedsPerDay,
	).Scan(&out.BabyID, &out.Enabled, &out.FeedGapHours, &out.DiaperGapHours, &out.FeverThresholdC, &out.LowFeedsPerDay, &out.UpdatedAt)
	if err != nil {
		return out, err
	}

	return out, nil
}
