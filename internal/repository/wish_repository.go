package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// WishRepository provides persistence for teacher wishes (desiderata).
type WishRepository struct {
	db *sqlx.DB
}

// NewWishRepository creates a new WishRepository.
func NewWishRepository(db *sqlx.DB) *WishRepository {
	return &WishRepository{db: db}
}

// ListByTeacher returns a teacher's wishes in weekly order.
func (r *WishRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.WishDetail, error) {
	const query = `SELECT w.id, w.teacher_id, w.teaching_unit_id, w.weekday, w.time_slot, w.created_at, tu.code AS ue_code, tu.name AS ue_name
FROM wishes w JOIN teaching_units tu ON tu.id = w.teaching_unit_id
WHERE w.teacher_id = $1
ORDER BY array_position(ARRAY['Lundi','Mardi','Mercredi','Jeudi','Vendredi','Samedi'], w.weekday), w.time_slot, w.id`
	wishes := make([]models.WishDetail, 0)
	if err := r.db.SelectContext(ctx, &wishes, query, teacherID); err != nil {
		return nil, fmt.Errorf("list wishes: %w", err)
	}
	return wishes, nil
}

// Create inserts a wish. Duplicates are allowed.
func (r *WishRepository) Create(ctx context.Context, wish *models.Wish) error {
	const query = `INSERT INTO wishes (teacher_id, teaching_unit_id, weekday, time_slot) VALUES (:teacher_id, :teaching_unit_id, :weekday, :time_slot) RETURNING id, created_at`
	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, wish)
	if err != nil {
		return fmt.Errorf("create wish: %w", translate(err))
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&wish.ID, &wish.CreatedAt); err != nil {
			return fmt.Errorf("scan wish: %w", err)
		}
	}
	return rows.Err()
}

// FindByID returns a wish. Returns sql.ErrNoRows when absent.
func (r *WishRepository) FindByID(ctx context.Context, id int64) (*models.Wish, error) {
	var wish models.Wish
	if err := r.db.GetContext(ctx, &wish, `SELECT id, teacher_id, teaching_unit_id, weekday, time_slot, created_at FROM wishes WHERE id = $1`, id); err != nil {
		return nil, notFoundOr(err, "find wish")
	}
	return &wish, nil
}

// Delete removes a wish. Returns sql.ErrNoRows when absent.
func (r *WishRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "wishes", id)
}

// CountByTeacher returns the number of wishes a teacher submitted.
func (r *WishRepository) CountByTeacher(ctx context.Context, teacherID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM wishes WHERE teacher_id = $1`, teacherID); err != nil {
		return 0, fmt.Errorf("count wishes: %w", err)
	}
	return count, nil
}
