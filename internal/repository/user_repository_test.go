package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var userRowColumns = []string{"id", "full_name", "email", "password_hash", "role", "department", "specialty", "student_number", "class_id", "created_at", "updated_at"}

func TestFindByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(1, "Alice Martin", "alice@univ.test", "hash", string(models.RoleTeacher), "Informatique", "Algo", nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1 LIMIT 1")).
		WithArgs("alice@univ.test").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "alice@univ.test")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Nil(t, user.ClassID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), db, &models.User{FullName: "Bob", Email: "bob@univ.test", Role: models.RoleStudent})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsentInsertsMissingAccount(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("(?s)"+regexp.QuoteMeta("INSERT INTO users")+".*"+regexp.QuoteMeta("ON CONFLICT (email) DO NOTHING RETURNING id, created_at, updated_at")).
		WithArgs("Admin", "admin@univ.test", sqlmock.AnyArg(), "ADMIN", "", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

	user := &models.User{FullName: "Admin", Email: "admin@univ.test", PasswordHash: "hash", Role: models.RoleAdmin}
	created, err := repo.CreateIfAbsent(context.Background(), user)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAbsentSkipsExistingEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (email) DO NOTHING")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

	user := &models.User{FullName: "Admin", Email: "admin@univ.test", PasswordHash: "hash", Role: models.RoleAdmin}
	created, err := repo.CreateIfAbsent(context.Background(), user)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Zero(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTeacherCascade(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("DELETE FROM resources").WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"storage_ref"}).AddRow("resources/4/a.pdf"))
	mock.ExpectExec("DELETE FROM sessions").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM wishes").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM teaching_units").WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $1 AND role = 'TEACHER'")).WithArgs(int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))

	refs, err := repo.DeleteTeacherCascade(context.Background(), db, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"resources/4/a.pdf"}, refs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTeacherCascadeMissingTeacher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("DELETE FROM resources").WillReturnRows(sqlmock.NewRows([]string{"storage_ref"}))
	mock.ExpectExec("DELETE FROM sessions").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM wishes").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM teaching_units").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.DeleteTeacherCascade(context.Background(), db, 4)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
