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

type FeedRepository struct {
	db *pgxpool.Pool
}

// NewFeedRepository создает репозиторий кормлений.
func NewFeedRepository(db *pgxpool.Pool) *FeedRepository {
	return &FeedRepository{db: db}
}

// Create добавляет запись о кормлении.
func (r *FeedRepository) Create(ctx context.Context, userID uuid.UUID, log models.FeedLog) (models.FeedLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, log.BabyID); err != nil {
		return models.FeedLog{}, err
	}

	var out models.FeedLog
	err := r.db.QueryRow(ctx,
		`INSERT INTO feed_logs (id, baby_id, feed_type, amount_ml, duration_minutes, note, logged_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, baby_id, feed_type, amount_ml, duration_minutes, note, logged_at, created_at`,
		uuid.New(), log.BabyID, log.FeedType, log.AmountML, log.DurationMinutes, log.Note, log.LoggedAt,
	).Scan(&out.ID, &out.BabyID, &out.FeedType, &out.AmountML, &out.DurationMinutes, &out.Note, &out.LoggedAt, &out.CreatedAt)
	if err != nil {
		return out, err
	}

	return out, nil
}

// ListByRange возвращает кормления в интервале времени по убыванию.
func (r *FeedRepository) ListByRange(ctx context.Context, userID, babyID uuid.UUID, from, to time.Time) ([]models.FeedLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, baby_id, feed_type, amount_ml, duration_minutes, note, logged_at, created_at
		 FROM feed_logs
		 WHERE baby_id = $1 AND logged_at >= $2 AND logged_at < $3
		 ORDER BY logged_at DESC`,
		babyID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.FeedLog, 0)
	for rows.Next() {
		var log models.FeedLog
		if err := rows.Scan(&log.ID, &log.BabyID, &log.FeedType, &log.AmountML, &log.DurationMinutes, &log.Note, &log.LoggedAt, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Latest возвращает последнее кормление или nil без истории.
func (r *FeedRepository) Latest(ctx context.Context, userID, babyID uuid.UUID) (*models.FeedLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	var log models.FeedLog
	err := r.db.QueryRow(ctx,
		`SELECT id, baby_id, feed_type, amount_ml, duration_minutes, note, logged_at, created_at
		 FROM feed_logs
		 WHERE baby_id = $1
		 ORDER BY logged_at DESC
		 LIMIT 1`,
		babyID,
	).Scan(&log.ID, &log.BabyID, &log.FeedType, &log.AmountML, &log.DurationMinutes, &log.Note, &log.LoggedAt, &log.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &log, nil
}

// CountSince возвращает количество кормлений с указанного момента.
func (r *FeedRepository) CountSince(ctx context.Context, userID, babyID uuid.UUID, since time.Time) (int, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return 0, err
	}

	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM feed_logs
		 WHERE baby_id = $1 AND logged_at >= $2`,
		babyID, since,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Delete удаляет запись о кормлении.
func (r *FeedRepository) Delete(ctx context.Context, userID, feedID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM feed_logs f
		 USING babies b
		 WHERE f.id = $1
		   AND f.baby_id = b.id
		   AND b.user_id = $2`,
		feedID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
