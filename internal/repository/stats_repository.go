package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// StatsRepository computes the admin headline counters.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// AdminStats returns the counters in one round trip.
func (r *StatsRepository) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	const query = `SELECT
	(SELECT COUNT(*) FROM rooms) AS rooms,
	(SELECT COUNT(*) FROM users WHERE role = 'TEACHER') AS teachers,
	(SELECT COUNT(*) FROM classes) AS classes,
	(SELECT COUNT(*) FROM wishes) AS wishes,
	(SELECT COALESCE(SUM(capacity), 0) FROM rooms) AS total_capacity`
	var stats models.AdminStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}
	return &stats, nil
}
