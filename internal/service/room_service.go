package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
)

type roomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id int64) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id int64) error
}

// RoomService manages the room catalogue.
type RoomService struct {
	repo      roomRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService.
func NewRoomService(repo roomRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns every room ordered by name.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "room", "list")
	}
	return rooms, nil
}

// Get returns a room by id.
func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "room", "load")
	}
	return room, nil
}

// Create adds a room.
func (s *RoomService) Create(ctx context.Context, req dto.RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid room payload")
	}
	room := roomFromRequest(req)
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, mapStoreError(s.logger, err, "room", "create")
	}
	s.cache.Invalidate(ctx, adminStatsKey)
	return room, nil
}

// Update replaces a room's attributes. Existing sessions are not re-checked
// against a reduced capacity.
func (s *RoomService) Update(ctx context.Context, id int64, req dto.RoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid room payload")
	}
	room := roomFromRequest(req)
	room.ID = id
	if err := s.repo.Update(ctx, room); err != nil {
		return nil, mapStoreError(s.logger, err, "room", "update")
	}
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return room, nil
}

// Delete removes a room that no session uses.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(s.logger, err, "room", "delete")
	}
	s.cache.Invalidate(ctx, adminStatsKey)
	return nil
}

func roomFromRequest(req dto.RoomRequest) *models.Room {
	return &models.Room{
		Name:       strings.TrimSpace(req.Name),
		Capacity:   req.Capacity,
		Building:   strings.TrimSpace(req.Building),
		Department: strings.TrimSpace(req.Department),
	}
}
