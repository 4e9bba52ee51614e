package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type wishRepository interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.WishDetail, error)
	Create(ctx context.Context, wish *models.Wish) error
	FindByID(ctx context.Context, id int64) (*models.Wish, error)
	Delete(ctx context.Context, id int64) error
}

type unitFinder interface {
	FindByID(ctx context.Context, id int64) (*models.TeachingUnit, error)
}

// WishService records teachers' preferred slots. Wishes are advisory: they
// never block scheduling and duplicates are accepted.
type WishService struct {
	repo      wishRepository
	units     unitFinder
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewWishService constructs a WishService.
func NewWishService(repo wishRepository, units unitFinder, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *WishService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WishService{repo: repo, units: units, cache: cache, validator: validate, logger: logger}
}

// ListForTeacher returns a teacher's wishes with their unit.
func (s *WishService) ListForTeacher(ctx context.Context, teacherID int64) ([]models.WishDetail, error) {
	wishes, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "wish", "list")
	}
	return wishes, nil
}

// Create submits a wish for one of the teacher's units.
func (s *WishService) Create(ctx context.Context, actor Actor, req dto.WishRequest) (*models.Wish, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid wish payload")
	}
	weekday, err := models.ParseWeekday(req.Weekday)
	if err != nil {
		return nil, validationError(err, "invalid weekday")
	}
	slot, err := models.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return nil, validationError(err, "invalid time slot")
	}
	teacherID := req.TeacherID.Int64()
	if !actor.canActFor(teacherID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot submit wishes for another teacher")
	}

	unit, err := s.units.FindByID(ctx, req.TeachingUnitID.Int64())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("teaching unit %d does not exist", req.TeachingUnitID.Int64()))
		}
		return nil, mapStoreError(s.logger, err, "teaching unit", "load")
	}
	if unit.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teaching unit belongs to another teacher")
	}

	wish := &models.Wish{TeacherID: teacherID, TeachingUnitID: unit.ID, Weekday: weekday, TimeSlot: slot}
	if err := s.repo.Create(ctx, wish); err != nil {
		return nil, mapStoreError(s.logger, err, "wish", "create")
	}
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return wish, nil
}

// Delete withdraws a wish.
func (s *WishService) Delete(ctx context.Context, actor Actor, id int64) error {
	wish, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(s.logger, err, "wish", "load")
	}
	if !actor.canActFor(wish.TeacherID) {
		return appErrors.Clone(appErrors.ErrForbidden, "wish belongs to another teacher")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(s.logger, err, "wish", "delete")
	}
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return nil
}
