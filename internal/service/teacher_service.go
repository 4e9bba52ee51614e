package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
)

// PurgeJobType identifies jobs that delete a stored resource file.
const PurgeJobType = "resource.purge"

type teacherUserRepository interface {
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, exec sqlx.ExtContext, user *models.User) error
	UpdateProfile(ctx context.Context, user *models.User) error
	DeleteTeacherCascade(ctx context.Context, exec sqlx.ExtContext, teacherID int64) ([]string, error)
}

type teachingUnitRepository interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeachingUnit, error)
	Create(ctx context.Context, exec sqlx.ExtContext, unit *models.TeachingUnit) error
}

type roomLister interface {
	List(ctx context.Context) ([]models.Room, error)
}

type classLister interface {
	List(ctx context.Context) ([]models.Class, error)
}

type purgeEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// TeacherServiceDeps groups the collaborators of TeacherService.
type TeacherServiceDeps struct {
	Users   teacherUserRepository
	Units   teachingUnitRepository
	Rooms   roomLister
	Classes classLister
	Tx      txRunner
	Purger  purgeEnqueuer
	Cache   *CacheService
}

// TeacherService manages teacher accounts and their teaching units.
type TeacherService struct {
	users           teacherUserRepository
	units           teachingUnitRepository
	rooms           roomLister
	classes         classLister
	tx              txRunner
	purger          purgeEnqueuer
	cache           *CacheService
	validator       *validator.Validate
	logger          *zap.Logger
	defaultPassword string
}

// NewTeacherService constructs a TeacherService. defaultPassword is used when
// an account is created without one.
func NewTeacherService(deps TeacherServiceDeps, validate *validator.Validate, logger *zap.Logger, defaultPassword string) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{
		users:           deps.Users,
		units:           deps.Units,
		rooms:           deps.Rooms,
		classes:         deps.Classes,
		tx:              deps.Tx,
		purger:          deps.Purger,
		cache:           deps.Cache,
		validator:       validate,
		logger:          logger,
		defaultPassword: defaultPassword,
	}
}

// List returns every teacher ordered by name.
func (s *TeacherService) List(ctx context.Context) ([]models.User, error) {
	teachers, err := s.users.ListByRole(ctx, models.RoleTeacher)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "teacher", "list")
	}
	return teachers, nil
}

// Create registers a teacher and, when UECode is set, their first teaching unit.
func (s *TeacherService) Create(ctx context.Context, req dto.TeacherRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	password := req.Password
	if password == "" {
		password = s.defaultPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	teacher := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         models.RoleTeacher,
		Department:   strings.TrimSpace(req.Department),
		Specialty:    strings.TrimSpace(req.Specialty),
	}
	code := strings.TrimSpace(req.UECode)

	err = s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if err := s.users.Create(ctx, exec, teacher); err != nil {
			return mapStoreError(s.logger, err, "teacher", "create")
		}
		if code == "" {
			return nil
		}
		name := teacher.Specialty
		if name == "" {
			name = code
		}
		unit := &models.TeachingUnit{Code: code, Name: name, TeacherID: teacher.ID}
		if err := s.units.Create(ctx, exec, unit); err != nil {
			return mapStoreError(s.logger, err, "teaching unit", "create")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, adminStatsKey)
	return teacher, nil
}

// Update changes a teacher's profile. An empty password keeps the current one.
func (s *TeacherService) Update(ctx context.Context, id int64, req dto.TeacherRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teacher payload")
	}
	teacher, err := s.findTeacher(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher.FullName = strings.TrimSpace(req.FullName)
	teacher.Email = NormalizeEmail(req.Email)
	teacher.Department = strings.TrimSpace(req.Department)
	teacher.Specialty = strings.TrimSpace(req.Specialty)
	teacher.PasswordHash = ""
	if req.Password != "" {
		if teacher.PasswordHash, err = HashPassword(req.Password); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
	}
	if err := s.users.UpdateProfile(ctx, teacher); err != nil {
		return nil, mapStoreError(s.logger, err, "teacher", "update")
	}
	teacher.PasswordHash = ""
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return teacher, nil
}

// Delete removes a teacher together with their units, the sessions and wishes
// attached to them and their uploaded resources. Stored files are purged in
// the background once the transaction commits.
func (s *TeacherService) Delete(ctx context.Context, id int64) error {
	var refs []string
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		var err error
		refs, err = s.users.DeleteTeacherCascade(ctx, exec, id)
		if err != nil {
			return mapStoreError(s.logger, err, "teacher", "delete")
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, ref := range refs {
		enqueuePurge(s.purger, s.logger, ref)
	}
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	s.logger.Info("teacher deleted", zap.Int64("teacher_id", id), zap.Int("purged_files", len(refs)))
	return nil
}

// ListUnits returns the teaching units a teacher owns.
func (s *TeacherService) ListUnits(ctx context.Context, teacherID int64) ([]models.TeachingUnit, error) {
	units, err := s.units.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "teaching unit", "list")
	}
	return units, nil
}

// CreateUnit adds a teaching unit to an existing teacher.
func (s *TeacherService) CreateUnit(ctx context.Context, req dto.TeachingUnitRequest) (*models.TeachingUnit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid teaching unit payload")
	}
	if _, err := s.findTeacher(ctx, req.TeacherID.Int64()); err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrNotFound.Code {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("teacher %d does not exist", req.TeacherID.Int64()))
		}
		return nil, err
	}

	unit := &models.TeachingUnit{
		Code:      strings.TrimSpace(req.Code),
		Name:      strings.TrimSpace(req.Name),
		TeacherID: req.TeacherID.Int64(),
	}
	err := s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		if err := s.units.Create(ctx, exec, unit); err != nil {
			return mapStoreError(s.logger, err, "teaching unit", "create")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return unit, nil
}

// FormData returns the pickers of the scheduling form: the teacher's units
// and every room and class.
func (s *TeacherService) FormData(ctx context.Context, teacherID int64) (*models.TeacherFormData, error) {
	units, err := s.ListUnits(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "room", "list")
	}
	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "class", "list")
	}
	return &models.TeacherFormData{TeachingUnits: units, Rooms: rooms, Classes: classes}, nil
}

func (s *TeacherService) findTeacher(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "teacher", "load")
	}
	if user.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return user, nil
}

// enqueuePurge schedules deletion of a stored file. A full queue only leaves
// an orphaned file behind, so it is logged rather than returned.
func enqueuePurge(purger purgeEnqueuer, logger *zap.Logger, ref string) {
	if purger == nil || ref == "" {
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: PurgeJobType, Payload: ref, Enqueued: time.Now()}
	if err := purger.Enqueue(job); err != nil {
		logger.Warn("failed to enqueue file purge", zap.String("ref", ref), zap.Error(err))
	}
}
