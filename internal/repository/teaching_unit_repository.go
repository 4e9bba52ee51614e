package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const teachingUnitColumns = `id, code, name, teacher_id, created_at`

// TeachingUnitRepository provides persistence for teaching units (UE).
type TeachingUnitRepository struct {
	db *sqlx.DB
}

// NewTeachingUnitRepository creates a new TeachingUnitRepository.
func NewTeachingUnitRepository(db *sqlx.DB) *TeachingUnitRepository {
	return &TeachingUnitRepository{db: db}
}

// ListByTeacher returns the units owned by a teacher.
func (r *TeachingUnitRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeachingUnit, error) {
	units := make([]models.TeachingUnit, 0)
	query := `SELECT ` + teachingUnitColumns + ` FROM teaching_units WHERE teacher_id = $1 ORDER BY code ASC`
	if err := r.db.SelectContext(ctx, &units, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teaching units: %w", err)
	}
	return units, nil
}

// FindByID returns a unit. Returns sql.ErrNoRows when absent.
func (r *TeachingUnitRepository) FindByID(ctx context.Context, id int64) (*models.TeachingUnit, error) {
	return r.find(ctx, r.db, id, "")
}

// FindForShare reads a unit inside a transaction and blocks concurrent edits of it until commit.
func (r *TeachingUnitRepository) FindForShare(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.TeachingUnit, error) {
	return r.find(ctx, exec, id, " FOR SHARE")
}

func (r *TeachingUnitRepository) find(ctx context.Context, q sqlx.QueryerContext, id int64, lock string) (*models.TeachingUnit, error) {
	var unit models.TeachingUnit
	if err := sqlx.GetContext(ctx, q, &unit, `SELECT `+teachingUnitColumns+` FROM teaching_units WHERE id = $1`+lock, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find teaching unit: %w", err)
	}
	return &unit, nil
}

// Create inserts a unit. A duplicate code yields ErrDuplicate.
func (r *TeachingUnitRepository) Create(ctx context.Context, exec sqlx.ExtContext, unit *models.TeachingUnit) error {
	const query = `INSERT INTO teaching_units (code, name, teacher_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	if err := exec.QueryRowxContext(ctx, query, unit.Code, unit.Name, unit.TeacherID).Scan(&unit.ID, &unit.CreatedAt); err != nil {
		return fmt.Errorf("create teaching unit: %w", translate(err))
	}
	return nil
}
