package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

func TestTeachingUnitCreateDuplicateCode(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTeachingUnitRepository(db)

	mock.ExpectQuery("INSERT INTO teaching_units").
		WithArgs("INF101", "Algorithmique", int64(10)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "teaching_units_code_key"})

	err := repo.Create(context.Background(), db, &models.TeachingUnit{Code: "INF101", Name: "Algorithmique", TeacherID: 10})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NotErrorIs(t, err, ErrSlotTaken)
}

func TestTeachingUnitFindForShareMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTeachingUnitRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM teaching_units WHERE id = $1 FOR SHARE")).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindForShare(context.Background(), db, 7)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
