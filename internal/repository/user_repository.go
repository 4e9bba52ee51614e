package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const userColumns = `id, full_name, email, password_hash, role, department, specialty, student_number, class_id, created_at, updated_at`

// UserRepository provides database access for teacher, student and admin accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1 LIMIT 1`, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1 LIMIT 1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// ListByRole returns users of a role ordered by name.
func (r *UserRepository) ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY full_name ASC`, role); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// ListStudents returns students with their class name.
func (r *UserRepository) ListStudents(ctx context.Context) ([]models.StudentDetail, error) {
	const query = `SELECT u.id, u.full_name, u.email, u.password_hash, u.role, u.department, u.specialty, u.student_number, u.class_id, u.created_at, u.updated_at, c.name AS class_name
FROM users u LEFT JOIN classes c ON c.id = u.class_id
WHERE u.role = 'STUDENT' ORDER BY u.full_name ASC`
	students := make([]models.StudentDetail, 0)
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

const insertUser = `INSERT INTO users (full_name, email, password_hash, role, department, specialty, student_number, class_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Create inserts a user. A duplicate email or student number yields ErrDuplicate,
// an unknown class ErrForeignKey.
func (r *UserRepository) Create(ctx context.Context, exec sqlx.ExtContext, user *models.User) error {
	row := exec.QueryRowxContext(ctx, insertUser+` RETURNING id, created_at, updated_at`, userInsertArgs(user)...)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

// CreateIfAbsent inserts the user unless the email is taken and reports
// whether a row was written.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	row := r.db.QueryRowxContext(ctx, insertUser+` ON CONFLICT (email) DO NOTHING RETURNING id, created_at, updated_at`, userInsertArgs(user)...)
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("create user if absent: %w", translate(err))
	}
	return true, nil
}

func userInsertArgs(user *models.User) []interface{} {
	return []interface{}{user.FullName, user.Email, user.PasswordHash, user.Role,
		user.Department, user.Specialty, user.StudentNumber, user.ClassID}
}

// UpdateProfile overwrites the profile of a user of the given role; the
// password hash is only replaced when non-empty.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	const query = `UPDATE users SET full_name = $2, email = $3, department = $4, specialty = $5,
	password_hash = COALESCE(NULLIF($6, ''), password_hash), updated_at = NOW()
WHERE id = $1 AND role = $7 RETURNING created_at, updated_at`
	err := r.db.QueryRowxContext(ctx, query, user.ID, user.FullName, user.Email, user.Department, user.Specialty, user.PasswordHash, user.Role).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update user: %w", translate(err))
	}
	return nil
}

// DeleteTeacherCascade removes a teacher together with their units, the
// sessions and wishes of those units and their resources. It must run inside
// a transaction; the storage references of deleted resources are returned.
func (r *UserRepository) DeleteTeacherCascade(ctx context.Context, exec sqlx.ExtContext, teacherID int64) ([]string, error) {
	const ownedUnits = `SELECT id FROM teaching_units WHERE teacher_id = $1`

	refs := make([]string, 0)
	if err := sqlx.SelectContext(ctx, exec, &refs,
		`DELETE FROM resources WHERE teacher_id = $1 OR teaching_unit_id IN (`+ownedUnits+`) RETURNING storage_ref`, teacherID); err != nil {
		return nil, fmt.Errorf("delete teacher resources: %w", err)
	}
	steps := []struct{ name, stmt string }{
		{"sessions", `DELETE FROM sessions WHERE teaching_unit_id IN (` + ownedUnits + `)`},
		{"wishes", `DELETE FROM wishes WHERE teacher_id = $1 OR teaching_unit_id IN (` + ownedUnits + `)`},
		{"teaching units", `DELETE FROM teaching_units WHERE teacher_id = $1`},
	}
	for _, step := range steps {
		if _, err := exec.ExecContext(ctx, step.stmt, teacherID); err != nil {
			return nil, fmt.Errorf("delete teacher %s: %w", step.name, err)
		}
	}

	res, err := exec.ExecContext(ctx, `DELETE FROM users WHERE id = $1 AND role = 'TEACHER'`, teacherID)
	if err != nil {
		return nil, fmt.Errorf("delete teacher: %w", translate(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("delete teacher rows affected: %w", err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return refs, nil
}
