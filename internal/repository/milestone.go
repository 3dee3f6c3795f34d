package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usimeon/BabyLog-sub001/internal/models"
)

type MilestoneRepository struct {
	db *pgxpool.Pool
}

// NewMilestoneRepository создает репозиторий вех развития.
func NewMilestoneRepository(db *pgxpool.Pool) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

// Create добавляет веху развития.
func (r *MilestoneRepository) Create(ctx context.Context, userID uuid.UUID, milestone models.Milestone) (models.Milestone, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, milestone.BabyID); err != nil {
		return models.Milestone{}, err
	}

	var out models.Milestone
	err := r.db.QueryRow(ctx,
		`INSERT INTO milestones (id, baby_id, title, note, achieved_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, baby_id, title, note, achieved_at, created_at`,
		uuid.New(), milestone.BabyID, milestone.Title, milestone.Note, milestone.AchievedAt,
	).Scan(&out.ID, &out.BabyID, &out.Title, &out.Note, &out.AchievedAt, &out.CreatedAt)
	if err != nil {
		return out, err
	}

	return out, nil
}

// ListByRange возвращает вехи в интервале по убыванию.
func (r *MilestoneRepository) ListByRange(ctx context.Context, userID, babyID uuid.UUID, from, to time.Time) ([]models.Milestone, error) {
	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, baby_id, title, note, achieved_at, created_at
		 FROM milestones
		 WHERE baby_id = $1 AND achieved_at >= $2 AND achieved_at < $3
		 ORDER BY achieved_at DESC`,
		babyID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	milestones := make([]models.Milestone, 0)
	for rows.Next() {
		var milestone models.Milestone
		if err := rows.Scan(&milestone.ID, &milestone.BabyID, &milestone.Title, &milestone.Note, &milestone.AchievedAt, &milestone.CreatedAt); err != nil {
			return nil, err
		}
		milestones = append(milestones, milestone)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return milestones, nil
}

// Delete удаляет веху развития.
func (r *MilestoneRepository) Delete(ctx context.Context, userID, milestoneID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM milestones m
		 USING babies b
		 WHERE m.id = $1
		   AND m.baby_id = b.id
		   AND b.user_id = $2`,
		milestoneID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
