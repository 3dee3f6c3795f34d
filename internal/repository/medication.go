package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usimeon/BabyLog-sub001/internal/models"
)

// Bounded window the spacing evaluation looks at.
const recentMedicationLimit = 20

type MedicationRepository struct {
	db *pgxpool.Pool
}

// NewMedicationRepository создает репозиторий приемов лекарств.
func NewMedicationRepository(db *pgxpool.Pool) *MedicationRepository {
	return &MedicationRepository{db: db}
}

// Create добавляет запись о приеме лекарства.
func (r *MedicationRepository) Create(ctx context.Context, userID uuid.UUID, log models.MedicationLog) (models.MedicationLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, log.BabyID); err != nil {
		return models.MedicationLog{}, err
	}

	var out models.MedicationLog
	err := r.db.QueryRow(ctx,
		`INSERT INTO medication_logs (id, baby_id, name, dose, min_interval_hours, note, logged_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, baby_id, name, dose, min_interval_hours, note, logged_at, created_at`,
		uuid.New(), log.BabyID, log.Name, log.Dose, log.MinIntervalHours, log.Note, log.LoggedAt,
	).Scan(&out.ID, &out.BabyID, &out.Name, &out.Dose, &out.MinIntervalHours, &out.Note, &out.LoggedAt, &out.CreatedAt)
	if err != nil {
		return out, err
	}

	return out, nil
}

// ListByRange возвращает приемы лекарств в интервале по убыванию.
func (r *MedicationRepository) ListByRange(ctx context.Context, userID, babyID uuid.UUID, from, to time.Time) ([]models.MedicationLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, baby_id, name, dose, min_interval_hours, note, logged_at, created_at
		 FROM medication_logs
		 WHERE baby_id = $1 AND logged_at >= $2 AND logged_at < $3
		 ORDER BY logged_at DESC`,
		babyID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMedicationLogs(rows)
}

// ListRecent возвращает последние приемы лекарств по возрастанию времени,
// ограниченные окном для проверки интервалов.
func (r *MedicationRepository) ListRecent(ctx context.Context, userID, babyID uuid.UUID) ([]models.MedicationLog, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, baby_id, name, dose, min_interval_hours, note, logged_at, created_at
		 FROM (
			SELECT id, baby_id, name, dose, min_interval_hours, note, logged_at, created_at
			FROM medication_logs
			WHERE baby_id = $1
			ORDER BY logged_at DESC
			LIMIT $2
		 ) recent
		 ORDER BY logged_at ASC`,
		babyID, recentMedicationLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMedicationLogs(rows)
}

// Delete удаляет запись о приеме лекарства.
func (r *MedicationRepository) Delete(ctx context.Context, userID, medicationID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM medication_logs m
		 USING babies b
		 WHERE m.id = $1
		   AND m.baby_id = b.id
		   AND b.user_id = $2`,
		medicationID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func collectMedicationLogs(rows pgx.Rows) ([]models.MedicationLog, error) {
	logs := make([]models.MedicationLog, 0)
	for rows.Next() {
		var log models.MedicationLog
		if err := rows.Scan(&log.ID, &log.BabyID, &log.Name, &log.Dose, &log.MinIntervalHours, &log.Note, &log.LoggedAt, &log.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
