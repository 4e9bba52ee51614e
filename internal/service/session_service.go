package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type sessionStore interface {
	LockSlot(ctx context.Context, exec sqlx.ExtContext, key models.SlotKey) error
	LockTeacherTime(ctx context.Context, exec sqlx.ExtContext, key models.TeacherTimeKey) error
	ListBySlot(ctx context.Context, exec sqlx.ExtContext, key models.SlotKey) ([]models.Session, error)
	ListAtTime(ctx context.Context, exec sqlx.ExtContext, weekday models.Weekday, slot models.TimeSlot) ([]models.SessionDetail, error)
	FindForUpdate(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Session, error)
	FindDetail(ctx context.Context, id int64) (*models.SessionDetail, error)
	Create(ctx context.Context, exec sqlx.ExtContext, session *models.Session) error
	Update(ctx context.Context, exec sqlx.ExtContext, session *models.Session) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.SessionDetail, error)
	ListByClass(ctx context.Context, classID int64) ([]models.SessionDetail, error)
}

type sessionRoomReader interface {
	FindForShare(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Room, error)
}

type sessionClassReader interface {
	FindForShare(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Class, error)
}

type sessionUnitReader interface {
	FindForShare(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.TeachingUnit, error)
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error
}

// SessionConfig carries the scheduling options.
type SessionConfig struct {
	AcademicYear            string
	EnforceTeacherConflicts bool
	EnforceDateWeekday      bool
}

// SessionService schedules sessions while keeping every room slot single-booked
// and every class inside its room.
type SessionService struct {
	sessions  sessionStore
	rooms     sessionRoomReader
	classes   sessionClassReader
	units     sessionUnitReader
	tx        txRunner
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    SessionConfig
}

// SessionServiceDeps groups the collaborators of SessionService.
type SessionServiceDeps struct {
	Sessions sessionStore
	Rooms    sessionRoomReader
	Classes  sessionClassReader
	Units    sessionUnitReader
	Tx       txRunner
	Cache    *CacheService
	Metrics  *MetricsService
}

// NewSessionService constructs the scheduling service.
func NewSessionService(deps SessionServiceDeps, validate *validator.Validate, logger *zap.Logger, cfg SessionConfig) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AcademicYear == "" {
		cfg.AcademicYear = "2025/2026"
	}
	return &SessionService{
		sessions:  deps.Sessions,
		rooms:     deps.Rooms,
		classes:   deps.Classes,
		units:     deps.Units,
		tx:        deps.Tx,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		validator: validate,
		logger:    logger,
		config:    cfg,
	}
}

// Create schedules a new session.
func (s *SessionService) Create(ctx context.Context, actor Actor, req dto.SessionRequest) (*models.SessionDetail, error) {
	input, err := s.parse(req)
	if err != nil {
		s.metrics.RecordSchedulingOutcome("create", outcomeOf(err))
		return nil, err
	}

	session := models.Session{
		TeachingUnitID: input.TeachingUnitID,
		ClassID:        input.ClassID,
		RoomID:         input.RoomID,
		Weekday:        input.Weekday,
		TimeSlot:       input.TimeSlot,
		Date:           input.Date,
		AcademicYear:   s.config.AcademicYear,
	}

	start := time.Now()
	err = s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if err := s.sessions.LockSlot(ctx, exec, input.Slot()); err != nil {
			return s.internal(err, "failed to lock room slot")
		}
		if err := s.checkPlacement(ctx, exec, actor, input, 0); err != nil {
			return err
		}
		if err := s.sessions.Create(ctx, exec, &session); err != nil {
			return s.storeError(err, "failed to create session")
		}
		return nil
	})
	err = s.txError(err, "failed to create session")
	s.metrics.ObserveDBQuery("session_create", time.Since(start))
	s.metrics.RecordSchedulingOutcome("create", outcomeOf(err))
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, dashboardKeyPattern)
	s.logger.Info("session scheduled",
		zap.Int64("session_id", session.ID),
		zap.String("slot", input.Slot().LockKey()),
		zap.Int64("actor_id", actor.UserID),
	)
	return s.detail(ctx, session), nil
}

// Update moves or edits an existing session in place.
func (s *SessionService) Update(ctx context.Context, actor Actor, id int64, req dto.SessionRequest) (*models.SessionDetail, error) {
	input, err := s.parse(req)
	if err != nil {
		s.metrics.RecordSchedulingOutcome("update", outcomeOf(err))
		return nil, err
	}

	var session models.Session
	start := time.Now()
	err = s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		existing, err := s.findForUpdate(ctx, exec, actor, id)
		if err != nil {
			return err
		}
		if err := s.sessions.LockSlot(ctx, exec, input.Slot()); err != nil {
			return s.internal(err, "failed to lock room slot")
		}
		if err := s.checkPlacement(ctx, exec, actor, input, existing.ID); err != nil {
			return err
		}

		session = *existing
		session.TeachingUnitID = input.TeachingUnitID
		session.ClassID = input.ClassID
		session.RoomID = input.RoomID
		session.Weekday = input.Weekday
		session.TimeSlot = input.TimeSlot
		session.Date = input.Date
		if err := s.sessions.Update(ctx, exec, &session); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "session not found")
			}
			return s.storeError(err, "failed to update session")
		}
		return nil
	})
	err = s.txError(err, "failed to update session")
	s.metrics.ObserveDBQuery("session_update", time.Since(start))
	s.metrics.RecordSchedulingOutcome("update", outcomeOf(err))
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return s.detail(ctx, session), nil
}

// Delete removes a session permanently.
func (s *SessionService) Delete(ctx context.Context, actor Actor, id int64) error {
	start := time.Now()
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if _, err := s.findForUpdate(ctx, exec, actor, id); err != nil {
			return err
		}
		if err := s.sessions.Delete(ctx, exec, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "session not found")
			}
			return s.internal(err, "failed to delete session")
		}
		return nil
	})
	err = s.txError(err, "failed to delete session")
	s.metrics.ObserveDBQuery("session_delete", time.Since(start))
	s.metrics.RecordSchedulingOutcome("delete", outcomeOf(err))
	if err != nil {
		return err
	}
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return nil
}

// Get returns a single session with its display fields.
func (s *SessionService) Get(ctx context.Context, id int64) (*models.SessionDetail, error) {
	session, err := s.sessions.FindDetail(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, s.internal(err, "failed to load session")
	}
	return session, nil
}

// ListForTeacher returns the sessions of every unit the teacher owns, latest date first.
func (s *SessionService) ListForTeacher(ctx context.Context, teacherID int64) ([]models.SessionDetail, error) {
	sessions, err := s.sessions.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, s.internal(err, "failed to list sessions")
	}
	return sessions, nil
}

// ListForClass returns the weekly timetable of a class.
func (s *SessionService) ListForClass(ctx context.Context, classID int64) ([]models.SessionDetail, error) {
	sessions, err := s.sessions.ListByClass(ctx, classID)
	if err != nil {
		return nil, s.internal(err, "failed to list sessions")
	}
	return sessions, nil
}

func (s *SessionService) parse(req dto.SessionRequest) (models.SessionInput, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.SessionInput{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	weekday, err := models.ParseWeekday(req.Weekday)
	if err != nil {
		return models.SessionInput{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid weekday")
	}
	slot, err := models.ParseTimeSlot(req.TimeSlot)
	if err != nil {
		return models.SessionInput{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time slot")
	}
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return models.SessionInput{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid date")
	}
	return models.SessionInput{
		TeachingUnitID: req.TeachingUnitID.Int64(),
		ClassID:        req.ClassID.Int64(),
		RoomID:         req.RoomID.Int64(),
		Weekday:        weekday,
		TimeSlot:       slot,
		Date:           date,
	}, nil
}

func (s *SessionService) findForUpdate(ctx context.Context, exec sqlx.ExtContext, actor Actor, id int64) (*models.Session, error) {
	existing, err := s.sessions.FindForUpdate(ctx, exec, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, s.internal(err, "failed to load session")
	}
	if actor.Role == models.RoleAdmin {
		return existing, nil
	}
	unit, err := s.units.FindForShare(ctx, exec, existing.TeachingUnitID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, s.internal(err, "failed to load teaching unit")
	}
	if !actor.canManageUnit(unit) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "session belongs to another teacher")
	}
	return existing, nil
}

// checkPlacement runs with the room slot lock held. Room, class and unit rows
// are share-locked so their capacity, headcount and owner cannot change under
// us. The teacher rule adds a second advisory lock on the teacher's slot.
func (s *SessionService) checkPlacement(ctx context.Context, exec sqlx.ExtContext, actor Actor, input models.SessionInput, excludeID int64) error {
	unit, err := s.units.FindForShare(ctx, exec, input.TeachingUnitID)
	if err != nil {
		return s.referenceError(err, "teaching unit", input.TeachingUnitID)
	}
	if !actor.canManageUnit(unit) {
		return appErrors.Clone(appErrors.ErrForbidden, "teaching unit belongs to another teacher")
	}
	class, err := s.classes.FindForShare(ctx, exec, input.ClassID)
	if err != nil {
		return s.referenceError(err, "class", input.ClassID)
	}
	room, err := s.rooms.FindForShare(ctx, exec, input.RoomID)
	if err != nil {
		return s.referenceError(err, "room", input.RoomID)
	}

	if s.config.EnforceDateWeekday && !DateMatchesWeekday(input.Date, input.Weekday) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("date %s is not a %s", input.Date.Format("2006-01-02"), input.Weekday))
	}

	if WouldExceedCapacity(class.Headcount, room.Capacity) {
		appErr := appErrors.Clone(appErrors.ErrCapacityExceeded, fmt.Sprintf("room too small (%d seats)", room.Capacity))
		return appErrors.WithDetails(appErr, map[string]interface{}{
			"room_capacity":   room.Capacity,
			"class_headcount": class.Headcount,
		})
	}

	occupants, err := s.sessions.ListBySlot(ctx, exec, input.Slot())
	if err != nil {
		return s.internal(err, "failed to check room availability")
	}
	if WouldCollide(occupants, input.Slot(), excludeID) {
		return appErrors.Clone(appErrors.ErrRoomOccupied, "room already occupied")
	}

	if s.config.EnforceTeacherConflicts {
		// Taken after the room slot lock, never before.
		teacherKey := models.TeacherTimeKey{TeacherID: unit.TeacherID, Weekday: input.Weekday, TimeSlot: input.TimeSlot}
		if err := s.sessions.LockTeacherTime(ctx, exec, teacherKey); err != nil {
			return s.internal(err, "failed to lock teacher slot")
		}
		concurrent, err := s.sessions.ListAtTime(ctx, exec, input.Weekday, input.TimeSlot)
		if err != nil {
			return s.internal(err, "failed to check teacher availability")
		}
		if TeacherDoubleBooked(concurrent, unit.TeacherID, excludeID) {
			return appErrors.Clone(appErrors.ErrTeacherUnavailable, "teacher already teaching at this time")
		}
	}
	return nil
}

func (s *SessionService) detail(ctx context.Context, session models.Session) *models.SessionDetail {
	detail, err := s.sessions.FindDetail(ctx, session.ID)
	if err != nil {
		s.logger.Warn("failed to load session detail", zap.Int64("session_id", session.ID), zap.Error(err))
		return &models.SessionDetail{Session: session}
	}
	return detail
}

func (s *SessionService) referenceError(err error, what string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s %d does not exist", what, id))
	}
	return s.internal(err, "failed to load "+what)
}

func (s *SessionService) storeError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrSlotTaken):
		return appErrors.Clone(appErrors.ErrRoomOccupied, "room already occupied")
	case errors.Is(err, repository.ErrForeignKey):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "referenced record does not exist")
	}
	return s.internal(err, message)
}

// txError passes typed errors through and wraps raw ones such as commit failures.
func (s *SessionService) txError(err error, message string) error {
	var appErr *appErrors.Error
	if err == nil || errors.As(err, &appErr) {
		return err
	}
	return s.internal(err, message)
}

func (s *SessionService) internal(err error, message string) error {
	s.logger.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	return appErrors.FromError(err).Code
}
