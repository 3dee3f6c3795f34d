package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InsightRepository struct {
	db *pgxpool.Pool
}

type AIRequestLog struct {
	UserID          uuid.UUID
	BabyID          uuid.UUID
	RequestType     string
	Provider        string
	Model           string
	Prompt          string
	ResponsePayload []byte
	RawResponse     string
	Success         bool
	ErrorMessage    *string
}

// NewInsightRepository создает репозиторий для AI-инсайтов.
func NewInsightRepository(db *pgxpool.Pool) *InsightRepository {
	return &InsightRepository{db: db}
}

// LogRequest сохраняет лог AI-запроса.
func (r *InsightRepository) LogRequest(ctx context.Context, log AIRequestLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO ai_requests
		 (user_id, baby_id, request_type, provider, model, prompt, response_payload, raw_response, success, error_message)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::jsonb, $8, $9, $10)`,
		log.UserID,
		log.BabyID,
		log.RequestType,
		log.Provider,
		log.Model,
		log.Prompt,
		string(log.ResponsePayload),
		log.RawResponse,
		log.Success,
		log.ErrorMessage,
	)
	return err
}

// GetDaily возвращает закэшированные инсайты за день или nil, если их нет.
func (r *InsightRepository) GetDaily(ctx context.Context, userID, babyID uuid.UUID, date string) ([]byte, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	var payload []byte
	err := r.db.QueryRow(ctx,
		`SELECT payload FROM daily_insights WHERE baby_id = $1 AND insight_date = $2`,
		babyID, date,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return payload, nil
}

// SaveDaily сохраняет инсайты за день, перезаписывая предыдущую версию.
func (r *InsightRepository) SaveDaily(ctx context.Context, userID, babyID uuid.UUID, date string, payload []byte) error {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return err
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO daily_insights (baby_id, insight_date, payload)
		 VALUES ($1, $2, $3::jsonb)
		 ON CONFLICT (baby_id, insight_date) DO UPDATE
		 SET payload = EXCLUDED.payload, updated_at = NOW()`,
		babyID, date, string(payload),
	)
	return err
}
