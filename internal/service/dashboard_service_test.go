package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type dashboardSessionsStub struct {
	byTeacher map[int64][]models.SessionDetail
	next      map[int64]*models.SessionDetail
	calls     int
}

func (s *dashboardSessionsStub) ListByTeacher(_ context.Context, teacherID int64) ([]models.SessionDetail, error) {
	s.calls++
	return s.byTeacher[teacherID], nil
}

func (s *dashboardSessionsStub) NextForClass(_ context.Context, classID int64) (*models.SessionDetail, error) {
	return s.next[classID], nil
}

type wishCounterStub map[int64]int

func (w wishCounterStub) CountByTeacher(_ context.Context, teacherID int64) (int, error) {
	return w[teacherID], nil
}

type userFinderStub map[int64]models.User

func (u userFinderStub) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := u[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

type statsStub struct {
	stats models.AdminStats
	calls int
}

func (s *statsStub) AdminStats(context.Context) (*models.AdminStats, error) {
	s.calls++
	cp := s.stats
	return &cp, nil
}

func dashSession(id int64, day models.Weekday, date string, classID int64, className string) models.SessionDetail {
	d, _ := time.Parse("2006-01-02", date)
	return models.SessionDetail{
		Session:   models.Session{ID: id, Weekday: day, TimeSlot: models.Slot0800, Date: d, ClassID: classID},
		ClassName: className,
	}
}

func TestDashboardServiceTeacher(t *testing.T) {
	sessions := &dashboardSessionsStub{byTeacher: map[int64][]models.SessionDetail{
		10: {
			dashSession(3, models.Wednesday, "2025-10-22", 2, "M1"),
			dashSession(2, models.Monday, "2025-10-13", 1, "L1"),
			dashSession(1, models.Monday, "2025-10-06", 1, "L1"),
		},
	}}
	units := &unitRepoStub{units: map[int64]models.TeachingUnit{
		1: {ID: 1, TeacherID: 10},
		2: {ID: 2, TeacherID: 10},
	}}
	cacheRepo := &cacheRepoStub{}
	svc := NewDashboardService(DashboardServiceDeps{
		Sessions: sessions,
		Units:    units,
		Wishes:   wishCounterStub{10: 3},
		Cache:    NewCacheService(cacheRepo, nil, time.Minute, nil, true),
	}, zap.NewNop())

	dash, err := svc.Teacher(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 6, dash.TotalHours)
	assert.Equal(t, 3, dash.WishesCount)
	assert.Equal(t, 75, dash.WishProgress)
	require.NotNil(t, dash.NextSession)
	assert.Equal(t, int64(1), dash.NextSession.ID)
	require.Len(t, dash.UpcomingSessions, 3)
	assert.Equal(t, int64(3), dash.UpcomingSessions[2].ID)
	require.Len(t, dash.Classes, 2)
	assert.Equal(t, "M1", dash.Classes[0].Name)

	require.Len(t, dash.WeeklyStats, 6)
	assert.Equal(t, models.DayLoad{Name: "Lun", Hours: 4}, dash.WeeklyStats[0])
	assert.Equal(t, models.DayLoad{Name: "Mer", Hours: 2}, dash.WeeklyStats[2])
	assert.Equal(t, models.DayLoad{Name: "Sam", Hours: 0}, dash.WeeklyStats[5])

	_, err = svc.Teacher(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.calls, "second call is served from cache")
}

func TestDashboardServiceTeacherWithoutUnits(t *testing.T) {
	svc := NewDashboardService(DashboardServiceDeps{
		Sessions: &dashboardSessionsStub{},
		Units:    &unitRepoStub{units: map[int64]models.TeachingUnit{}},
		Wishes:   wishCounterStub{10: 4},
	}, nil)

	dash, err := svc.Teacher(context.Background(), 10)
	require.NoError(t, err)
	assert.Zero(t, dash.WishProgress)
	assert.Nil(t, dash.NextSession)
	assert.NotNil(t, dash.UpcomingSessions)
	assert.Empty(t, dash.UpcomingSessions)
}

func TestWishProgressCapsAtHundred(t *testing.T) {
	assert.Equal(t, 100, wishProgress(9, 2))
	assert.Equal(t, 50, wishProgress(1, 1))
	assert.Equal(t, 17, wishProgress(1, 3))
	assert.Equal(t, 0, wishProgress(5, 0))
}

func TestDashboardServiceStudent(t *testing.T) {
	classID := int64(2)
	next := dashSession(7, models.Tuesday, "2025-10-07", classID, "M1")
	resources := newResourceFixture(t, ResourceConfig{})
	svc := NewDashboardService(DashboardServiceDeps{
		Sessions:  &dashboardSessionsStub{next: map[int64]*models.SessionDetail{classID: &next}},
		Users:     userFinderStub{20: {ID: 20, Role: models.RoleStudent, ClassID: &classID}, 21: {ID: 21, Role: models.RoleStudent}, 10: {ID: 10, Role: models.RoleTeacher}},
		Resources: resources.svc,
	}, zap.NewNop())
	ctx := context.Background()

	dash, err := svc.Student(ctx, 20)
	require.NoError(t, err)
	require.NotNil(t, dash.NextSession)
	assert.Equal(t, int64(7), dash.NextSession.ID)
	assert.Empty(t, dash.RecentResources)

	_, err = svc.Student(ctx, 21)
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(err), "student without class")
	_, err = svc.Student(ctx, 10)
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(err))
	_, err = svc.Student(ctx, 99)
	assert.Equal(t, appErrors.ErrNotFound.Code, errCode(err))
}

func TestDashboardServiceStatsCached(t *testing.T) {
	stats := &statsStub{stats: models.AdminStats{Rooms: 4, Teachers: 3, Classes: 2, Wishes: 9, TotalCapacity: 180}}
	cacheRepo := &cacheRepoStub{}
	svc := NewDashboardService(DashboardServiceDeps{Stats: stats, Cache: NewCacheService(cacheRepo, nil, time.Minute, nil, true)}, nil)
	ctx := context.Background()

	first, err := svc.Stats(ctx)
	require.NoError(t, err)
	second, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, stats.calls)

	NewCacheService(cacheRepo, nil, time.Minute, nil, true).Invalidate(ctx, dashboardKeyPattern)
	_, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.calls)
}
