package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

const (
	upcomingSessionsLimit = 5
	recentResourcesLimit  = 5
)

type dashboardSessionReader interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.SessionDetail, error)
	NextForClass(ctx context.Context, classID int64) (*models.SessionDetail, error)
}

type dashboardUnitReader interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeachingUnit, error)
}

type dashboardWishCounter interface {
	CountByTeacher(ctx context.Context, teacherID int64) (int, error)
}

type dashboardUserReader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type recentResourceReader interface {
	RecentForClass(ctx context.Context, classID int64, limit int) ([]models.ResourceDetail, error)
}

type statsReader interface {
	AdminStats(ctx context.Context) (*models.AdminStats, error)
}

// DashboardServiceDeps groups the read models used by the dashboards.
type DashboardServiceDeps struct {
	Sessions  dashboardSessionReader
	Units     dashboardUnitReader
	Wishes    dashboardWishCounter
	Users     dashboardUserReader
	Resources recentResourceReader
	Stats     statsReader
	Cache     *CacheService
}

// DashboardService composes the read-only portal summaries.
type DashboardService struct {
	sessions  dashboardSessionReader
	units     dashboardUnitReader
	wishes    dashboardWishCounter
	users     dashboardUserReader
	resources recentResourceReader
	stats     statsReader
	cache     *CacheService
	logger    *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(deps DashboardServiceDeps, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		sessions:  deps.Sessions,
		units:     deps.Units,
		wishes:    deps.Wishes,
		users:     deps.Users,
		resources: deps.Resources,
		stats:     deps.Stats,
		cache:     deps.Cache,
		logger:    logger,
	}
}

// Teacher builds the teacher portal dashboard.
func (s *DashboardService) Teacher(ctx context.Context, teacherID int64) (*models.TeacherDashboard, error) {
	key := fmt.Sprintf(teacherDashboardKey, teacherID)
	var cached models.TeacherDashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	sessions, err := s.sessions.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "session", "list")
	}
	units, err := s.units.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "teaching unit", "list")
	}
	wishes, err := s.wishes.CountByTeacher(ctx, teacherID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "wish", "count")
	}

	byDate := append([]models.SessionDetail(nil), sessions...)
	sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].Date.Before(byDate[j].Date) })

	dashboard := &models.TeacherDashboard{
		WeeklyStats:      weeklyLoad(sessions),
		UpcomingSessions: firstSessions(byDate, upcomingSessionsLimit),
		Classes:          distinctClasses(sessions),
		WishProgress:     wishProgress(wishes, len(units)),
		TotalHours:       len(sessions) * models.SlotHours,
		WishesCount:      wishes,
	}
	if len(byDate) > 0 {
		next := byDate[0]
		dashboard.NextSession = &next
	}

	s.cache.Set(ctx, key, dashboard)
	return dashboard, nil
}

// Student builds the student portal dashboard. Students without a class get NOT_FOUND.
func (s *DashboardService) Student(ctx context.Context, studentID int64) (*models.StudentDashboard, error) {
	key := fmt.Sprintf(studentDashboardKey, studentID)
	var cached models.StudentDashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	student, err := s.users.FindByID(ctx, studentID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "student", "load")
	}
	if student.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if student.ClassID == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student has no class")
	}

	next, err := s.sessions.NextForClass(ctx, *student.ClassID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "session", "load")
	}
	resources, err := s.resources.RecentForClass(ctx, *student.ClassID, recentResourcesLimit)
	if err != nil {
		return nil, err
	}

	dashboard := &models.StudentDashboard{NextSession: next, RecentResources: resources}
	s.cache.Set(ctx, key, dashboard)
	return dashboard, nil
}

// Stats returns the admin headline counters.
func (s *DashboardService) Stats(ctx context.Context) (*models.AdminStats, error) {
	var cached models.AdminStats
	if s.cache.Get(ctx, adminStatsKey, &cached) {
		return &cached, nil
	}
	stats, err := s.stats.AdminStats(ctx)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "stats", "load")
	}
	s.cache.Set(ctx, adminStatsKey, stats)
	return stats, nil
}

func weeklyLoad(sessions []models.SessionDetail) []models.DayLoad {
	counts := make(map[models.Weekday]int, len(models.Weekdays))
	for _, session := range sessions {
		counts[session.Weekday]++
	}
	load := make([]models.DayLoad, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		load = append(load, models.DayLoad{Name: day.Short(), Hours: counts[day] * models.SlotHours})
	}
	return load
}

func firstSessions(sessions []models.SessionDetail, limit int) []models.SessionDetail {
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return append(make([]models.SessionDetail, 0, len(sessions)), sessions...)
}

func distinctClasses(sessions []models.SessionDetail) []models.Class {
	seen := make(map[int64]struct{})
	classes := make([]models.Class, 0)
	for _, session := range sessions {
		if _, ok := seen[session.ClassID]; ok {
			continue
		}
		seen[session.ClassID] = struct{}{}
		classes = append(classes, models.Class{ID: session.ClassID, Name: session.ClassName, Headcount: session.ClassHeadcount})
	}
	return classes
}

// wishProgress expects two wishes per unit and caps at 100%.
func wishProgress(wishes, units int) int {
	if units == 0 {
		return 0
	}
	progress := int(math.Round(float64(wishes) / float64(units*2) * 100))
	if progress > 100 {
		return 100
	}
	return progress
}
