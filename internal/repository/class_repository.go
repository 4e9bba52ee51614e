package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const classColumns = `id, name, headcount, field_of_study, department, created_at, updated_at`

// ClassRepository provides persistence for student cohorts.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns every class ordered by name.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	classes := make([]models.Class, 0)
	if err := r.db.SelectContext(ctx, &classes, `SELECT `+classColumns+` FROM classes ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID returns a class. Returns sql.ErrNoRows when absent.
func (r *ClassRepository) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	return r.find(ctx, r.db, id, "")
}

// FindForShare reads a class inside a transaction and blocks concurrent edits of it until commit.
func (r *ClassRepository) FindForShare(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Class, error) {
	return r.find(ctx, exec, id, " FOR SHARE")
}

func (r *ClassRepository) find(ctx context.Context, q sqlx.QueryerContext, id int64, lock string) (*models.Class, error) {
	var class models.Class
	if err := sqlx.GetContext(ctx, q, &class, `SELECT `+classColumns+` FROM classes WHERE id = $1`+lock, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// Create inserts a class. A duplicate name yields ErrDuplicate.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	const query = `INSERT INTO classes (name, headcount, field_of_study, department) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	if err := r.db.QueryRowxContext(ctx, query, class.Name, class.Headcount, class.FieldOfStudy, class.Department).
		Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt); err != nil {
		return fmt.Errorf("create class: %w", translate(err))
	}
	return nil
}

// Update overwrites a class. Returns sql.ErrNoRows when absent.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	const query = `UPDATE classes SET name = $2, headcount = $3, field_of_study = $4, department = $5, updated_at = NOW() WHERE id = $1 RETURNING created_at, updated_at`
	if err := r.db.QueryRowxContext(ctx, query, class.ID, class.Name, class.Headcount, class.FieldOfStudy, class.Department).
		Scan(&class.CreatedAt, &class.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update class: %w", translate(err))
	}
	return nil
}

// Delete removes a class. Sessions or students referencing it yield ErrForeignKey.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "classes", id)
}
