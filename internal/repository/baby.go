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

type BabyRepository struct {
	db *pgxpool.Pool
}

// NewBabyRepository создает репозиторий профилей детей.
func NewBabyRepository(db *pgxpool.Pool) *BabyRepository {
	return &BabyRepository{db: db}
}

// Create создает профиль ребенка.
func (r *BabyRepository) Create(ctx context.Context, userID uuid.UUID, name string, birthDate time.Time) (models.Baby, error) {
	var baby models.Baby

	err := r.db.QueryRow(ctx,
		`INSERT INTO babies (id, user_id, name, birth_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, name, birth_date, created_at, updated_at`,
		uuid.New(), userID, name, birthDate,
	).Scan(&baby.ID, &baby.UserID, &baby.Name, &baby.BirthDate, &baby.CreatedAt, &baby.UpdatedAt)
	if err != nil {
		return baby, err
	}

	return baby, nil
}

// ListByUser возвращает профили детей пользователя.
func (r *BabyRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Baby, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, birth_date, created_at, updated_at
		 FROM babies
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	babies := make([]models.Baby, 0)
	for rows.Next() {
		var baby models.Baby
		if err := rows.Scan(&baby.ID, &baby.UserID, &baby.Name, &baby.BirthDate, &baby.CreatedAt, &baby.UpdatedAt); err != nil {
			return nil, err
		}
		babies = append(babies, baby)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return babies, nil
}

// GetByID возвращает профиль ребенка пользователя.
func (r *BabyRepository) GetByID(ctx context.Context, userID, babyID uuid.UUID) (models.Baby, error) {
	var baby models.Baby

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, birth_date, created_at, updated_at
		 FROM babies
		 WHERE id = $1 AND user_id = $2`,
		babyID, userID,
	).Scan(&baby.ID, &baby.UserID, &baby.Name, &baby.BirthDate, &baby.CreatedAt, &baby.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return baby, ErrNotFound
		}
		return baby, err
	}

	return baby, nil
}

// Update изменяет имя и дату рождения.
func (r *BabyRepository) Update(ctx context.Context, userID, babyID uuid.UUID, name string, birthDate time.Time) (models.Baby, error) {
	var baby models.Baby

	err := r.db.QueryRow(ctx,
		`UPDATE babies
		 SET name = $3, birth_date = $4, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, birth_date, created_at, updated_at`,
		babyID, userID, name, birthDate,
	).Scan(&baby.ID, &baby.UserID, &baby.Name, &baby.BirthDate, &baby.CreatedAt, &baby.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return baby, ErrNotFound
		}
		return baby, err
	}

	return baby, nil
}

// Delete удаляет профиль ребенка вместе с логами.
func (r *BabyRepository) Delete(ctx context.Context, userID, babyID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM babies
		 WHERE id = $1 AND user_id = $2`,
		babyID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ensureBabyOwned проверяет принадлежность ребенка пользователю.
func ensureBabyOwned(ctx context.Context, db *pgxpool.Pool, userID, babyID uuid.UUID) error {
	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM babies WHERE id = $1 AND user_id = $2
		 )`,
		babyID, userID,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		return ErrNotFound
	}

	return nil
}
