package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SummaryRepository struct {
	db *pgxpool.Pool
}

type DayCounts struct {
	FeedCount       int
	TotalFeedML     float64
	DiaperCount     int
	WetDiapers      int
	DirtyDiapers    int
	MedicationCount int
	MilestoneCount  int
}

// NewSummaryRepository создает репозиторий дневной сводки.
func NewSummaryRepository(db *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// DayCounts возвращает агрегаты по записям ребенка за интервал [from, to).
func (r *SummaryRepository) DayCounts(ctx context.Context, userID, babyID uuid.UUID, from, to time.Time) (DayCounts, error) {
	var counts DayCounts

	if err := ensureBabyOwned(ctx, r.db, userID, babyID); err != nil {
		return counts, err
	}

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) AS feed_count,
		        COALESCE(SUM(amount_ml), 0) AS total_feed_ml
		 FROM feed_logs
		 WHERE baby_id = $1 AND logged_at >= $2 AND logged_at < $3`,
		babyID, from, to,
	).Scan(&counts.FeedCount, &counts.TotalFeedML)
	if err != nil {
		return counts, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) AS diaper_count,
		        COUNT(*) FILTER (WHERE pee) AS wet_diapers,
		        COUNT(*) FILTER (WHERE poop) AS dirty_diapers
		 FROM diaper_logs
		 WHERE baby_id = $1 AND logged_at >= $2 AND logged_at < $3`,
		babyID, from, to,
	).Scan(&counts.DiaperCount, &counts.WetDiapers, &counts.DirtyDiapers)
	if err != nil {
		return counts, err
	}

	err = r.db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM medication_logs WHERE baby_id = $1 AND logged_at >= $2 AND logged_at < $3),
		        (SELECT COUNT(*) FROM milestones WHERE baby_id = $1 AND achieved_at >= $2 AND achieved_at < $3)`,
		babyID, from, to,
	).Scan(&counts.MedicationCount, &counts.MilestoneCount)
	if err != nil {
		return counts, err
	}

	return counts, nil
}
