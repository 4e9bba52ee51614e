package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const defaultDepartment = "Informatique"

type classRepository interface {
	List(ctx context.Context) ([]models.Class, error)
	FindByID(ctx context.Context, id int64) (*models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
}

// ClassService manages student cohorts.
type ClassService struct {
	repo      classRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService.
func NewClassService(repo classRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every class ordered by name.
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "class", "list")
	}
	return classes, nil
}

// Get returns a class by id.
func (s *ClassService) Get(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "class", "load")
	}
	return class, nil
}

// Create adds a class.
func (s *ClassService) Create(ctx context.Context, req dto.ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class := classFromRequest(req)
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, mapStoreError(s.logger, err, "class", "create")
	}
	s.cache.Invalidate(ctx, adminStatsKey)
	return class, nil
}

// Update replaces a class's attributes.
func (s *ClassService) Update(ctx context.Context, id int64, req dto.ClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid class payload")
	}
	class := classFromRequest(req)
	class.ID = id
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, mapStoreError(s.logger, err, "class", "update")
	}
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return class, nil
}

// Delete removes a class with no sessions and no enrolled students.
func (s *ClassService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(s.logger, err, "class", "delete")
	}
	s.cache.Invalidate(ctx, adminStatsKey)
	return nil
}

func classFromRequest(req dto.ClassRequest) *models.Class {
	department := strings.TrimSpace(req.Department)
	if department == "" {
		department = defaultDepartment
	}
	return &models.Class{
		Name:         strings.TrimSpace(req.Name),
		Headcount:    req.Headcount,
		FieldOfStudy: strings.TrimSpace(req.FieldOfStudy),
		Department:   department,
	}
}
