package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usimeon/BabyLog-sub001/internal/models"
)

type GrowthRepository struct {
	db *pgxpool.Pool
}

// NewGrowthRepository создает репозиторий измерений роста.
func NewGrowthRepository(db *pgxpool.Pool) *GrowthRepository {
	return &GrowthRepository{db: db}
}

// Create добавляет измерение роста и веса.
func (r *GrowthRepository) Create(ctx context.Context, userID uuid.UUID, log models.GrowthLog) (models.GrowthLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, log.BabyID); err != nil {
		return models.GrowthLog{}, err
	}

	if log.WeightKG == nil && log.HeightCM == nil && log.HeadCircumferenceCM == nil {
		return models.GrowthLog{}, ErrInvalid
	}

	var out models.GrowthLog
	err := r.db.QueryRow(ctx,
		`INSERT INTO growth_logs (id, baby_id, weight_kg, height_cm, head_circumference_cm, logged_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, baby_id, weight_kg, height_cm, head_circumference_cm, logged_at, created_at`,
		uuid.New(), log.BabyID, log.WeightKG, log.HeightCM, log.HeadCircumferenceCM, log.LoggedAt,
	).Scan(&out.ID, &out.BabyID, &out.WeightKG, &out.HeightCM, &out.HeadCircumferenceCM, &out.LoggedAt, &out.CreatedAt)
	if err != nil {
		return out, err
	}

	return out, nil
}

// ListByRange возвращает измерения роста в интервале по убыванию.
func (r *GrowthRepository) ListByRange(ctx context.Context, userID, babyID uuid.UUID, from, to time.Time) ([]models.GrowthLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, baby_id, weight_kg, height_cm, head_circumference_cm, logged_at, created_at
		 FROM growth_logs
		 WHERE baby_id = $1 AND logged_at >= $2 AND logged_at < $3
		 ORDER BY logged_at DESC`,
		babyID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.GrowthLog, 0)
	for rows.Next() {
		var log models.GrowthLog
		if err := rows.Scan(&log.ID, &log.BabyID, &log.WeightKG, &log.HeightCM, &log.HeadCircumferenceCM, &log.LoggedAt, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Delete удаляет измерение роста.
func (r *GrowthRepository) Delete(ctx context.Context, userID, growthID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM growth_logs g
		 USING babies b
		 WHERE g.id = $1
		   AND g.baby_id = b.id
		   AND b.user_id = $2`,
		growthID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
