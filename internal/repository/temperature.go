package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usimeon/BabyLog-sub001/internal/models"
)

type TemperatureRepository struct {
	db *pgxpool.Pool
}

// NewTemperatureRepository создает репозиторий измерений температуры.
func NewTemperatureRepository(db *pgxpool.Pool) *TemperatureRepository {
	return &TemperatureRepository{db: db}
}

// Create добавляет измерение температуры.
func (r *TemperatureRepository) Create(ctx context.Context, userID uuid.UUID, log models.TemperatureLog) (models.TemperatureLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, log.BabyID); err != nil {
		return models.TemperatureLog{}, err
	}

	var out models.TemperatureLog
	err := r.db.QueryRow(ctx,
		`INSERT INTO temperature_logs (id, baby_id, temperature_c, note, logged_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, baby_id, temperature_c, note, logged_at, created_at`,
		uuid.New(), log.BabyID, log.TemperatureC, log.Note, log.LoggedAt,
	).Scan(&out.ID, &out.BabyID, &out.TemperatureC, &out.Note, &out.LoggedAt, &out.CreatedAt)
	if err != nil {
		return out, err
	}

	return out, nil
}

// ListByRange возвращает измерения в интервале по убыванию.
func (r *TemperatureRepository) ListByRange(ctx context.Context, userID, babyID uuid.UUID, from, to time.Time) ([]models.TemperatureLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, baby_id, temperature_c, note, logged_at, created_at
		 FROM temperature_logs
		 WHERE baby_id = $1 AND logged_at >= $2 AND logged_at < $3
		 ORDER BY logged_at DESC`,
		babyID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.TemperatureLog, 0)
	for rows.Next() {
		var log models.TemperatureLog
		if err := rows.Scan(&log.ID, &log.BabyID, &log.TemperatureC, &log.Note, &log.LoggedAt, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Latest возвращает последнее измерение или nil без истории.
func (r *TemperatureRepository) Latest(ctx context.Context, userID, babyID uuid.UUID) (*models.TemperatureLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	var log models.TemperatureLog
	err := r.db.QueryRow(ctx,
		`SELECT id, baby_id, temperature_c, note, logged_at, created_at
		 FROM temperature_logs
		 WHERE baby_id = $1
		 ORDER BY logged_at DESC
		 LIMIT 1`,
		babyID,
	).Scan(&log.ID, &log.BabyID, &log.TemperatureC, &log.Note, &log.LoggedAt, &log.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &log, nil
}

// Delete удаляет измерение температуры.
func (r *TemperatureRepository) Delete(ctx context.Context, userID, tempID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM temperature_logs t
		 USING babies b
		 WHERE t.id = $1
		   AND t.baby_id = b.id
		   AND b.user_id = $2`,
		tempID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
