package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const resourceDetailSelect = `SELECT r.id, r.name, r.category, r.file_type, r.mime_type, r.storage_ref, r.size_bytes, r.teacher_id, r.teaching_unit_id, r.uploaded_at,
	tu.code AS ue_code, tu.name AS ue_name
FROM resources r JOIN teaching_units tu ON tu.id = r.teaching_unit_id`

// ResourceRepository persists course material metadata.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Create inserts resource metadata.
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) error {
	const query = `INSERT INTO resources (name, category, file_type, mime_type, storage_ref, size_bytes, teacher_id, teaching_unit_id)
VALUES (:name, :category, :file_type, :mime_type, :storage_ref, :size_bytes, :teacher_id, :teaching_unit_id) RETURNING id, uploaded_at`
	rows, err := sqlx.NamedQueryContext(ctx, r.db, query, res)
	if err != nil {
		return fmt.Errorf("create resource: %w", translate(err))
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&res.ID, &res.UploadedAt); err != nil {
			return fmt.Errorf("scan resource: %w", err)
		}
	}
	return rows.Err()
}

// FindByID returns a resource with its unit. Returns sql.ErrNoRows when absent.
func (r *ResourceRepository) FindByID(ctx context.Context, id int64) (*models.ResourceDetail, error) {
	var res models.ResourceDetail
	if err := r.db.GetContext(ctx, &res, resourceDetailSelect+` WHERE r.id = $1`, id); err != nil {
		return nil, notFoundOr(err, "find resource")
	}
	return &res, nil
}

// ListByTeacher returns a teacher's uploads, newest first.
func (r *ResourceRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.ResourceDetail, error) {
	items := make([]models.ResourceDetail, 0)
	if err := r.db.SelectContext(ctx, &items, resourceDetailSelect+` WHERE r.teacher_id = $1 ORDER BY r.uploaded_at DESC, r.id DESC`, teacherID); err != nil {
		return nil, fmt.Errorf("list resources by teacher: %w", err)
	}
	return items, nil
}

// RecentForClass returns the latest uploads of units that have sessions with the class.
func (r *ResourceRepository) RecentForClass(ctx context.Context, classID int64, limit int) ([]models.ResourceDetail, error) {
	query := resourceDetailSelect + ` WHERE EXISTS (SELECT 1 FROM sessions s WHERE s.teaching_unit_id = r.teaching_unit_id AND s.class_id = $1)
ORDER BY r.uploaded_at DESC, r.id DESC LIMIT $2`
	items := make([]models.ResourceDetail, 0)
	if err := r.db.SelectContext(ctx, &items, query, classID, limit); err != nil {
		return nil, fmt.Errorf("list recent resources: %w", err)
	}
	return items, nil
}

// Delete removes resource metadata. Returns sql.ErrNoRows when absent.
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "resources", id)
}
