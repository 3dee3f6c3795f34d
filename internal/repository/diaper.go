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

type DiaperRepository struct {
	db *pgxpool.Pool
}

// NewDiaperRepository создает репозиторий смен подгузников.
func NewDiaperRepository(db *pgxpool.Pool) *DiaperRepository {
	return &DiaperRepository{db: db}
}

// Create добавляет запись о смене подгузника.
func (r *DiaperRepository) Create(ctx context.Context, userID uuid.UUID, log models.DiaperLog) (models.DiaperLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, log.BabyID); err != nil {
		return models.DiaperLog{}, err
	}

	var out models.DiaperLog
	err := r.db.QueryRow(ctx,
		`INSERT INTO diaper_logs (id, baby_id, pee, poop, size, note, logged_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, baby_id, pee, poop, size, note, logged_at, created_at`,
		uuid.New(), log.BabyID, log.Pee, log.Poop, log.Size, log.Note, log.LoggedAt,
	).Scan(&out.ID, &out.BabyID, &out.Pee, &out.Poop, &out.Size, &out.Note, &out.LoggedAt, &out.CreatedAt)
	if err != nil {
		return out, err
	}

	return out, nil
}

// ListByRange возвращает смены подгузников в интервале по убыванию.
func (r *DiaperRepository) ListByRange(ctx context.Context, userID, babyID uuid.UUID, from, to time.Time) ([]models.DiaperLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, baby_id, pee, poop, size, note, logged_at, created_at
		 FROM diaper_logs
		 WHERE baby_id = $1 AND logged_at >= $2 AND logged_at < $3
		 ORDER BY logged_at DESC`,
		babyID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]models.DiaperLog, 0)
	for rows.Next() {
		var log models.DiaperLog
		if err := rows.Scan(&log.ID, &log.BabyID, &log.Pee, &log.Poop, &log.Size, &log.Note, &log.LoggedAt, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

// Latest возвращает последнюю смену подгузника или nil без истории.
func (r *DiaperRepository) Latest(ctx context.Context, userID, babyID uuid.UUID) (*models.DiaperLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	var log models.DiaperLog
	err := r.db.QueryRow(ctx,
		`SELECT id, baby_id, pee, poop, size, note, logged_at, created_at
		 FROM diaper_logs
		 WHERE baby_id = $1
		 ORDER BY logged_at DESC
		 LIMIT 1`,
		babyID,
	).Scan(&log.ID, &log.BabyID, &log.Pee, &log.Poop, &log.Size, &log.Note, &log.LoggedAt, &log.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &log, nil
}

// Delete удаляет запись о смене подгузника.
func (r *DiaperRepository) Delete(ctx context.Context, userID, diaperID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM diaper_logs d
		 USING babies b
		 WHERE d.id = $1
		   AND d.baby_id = b.id
		   AND b.user_id = $2`,
		diaperID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
