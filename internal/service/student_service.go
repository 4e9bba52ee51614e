package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type studentRepository interface {
	ListStudents(ctx context.Context) ([]models.StudentDetail, error)
	Create(ctx context.Context, exec sqlx.ExtContext, user *models.User) error
}

// StudentService handles student self-registration and listing.
type StudentService struct {
	repo      studentRepository
	tx        txRunner
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, tx txRunner, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, tx: tx, validator: validate, logger: logger}
}

// Register creates a student account bound to a class.
func (s *StudentService) Register(ctx context.Context, req dto.StudentRegistrationRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid registration payload")
	}
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	classID := req.ClassID.Int64()
	student := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        NormalizeEmail(req.Email),
		PasswordHash: hash,
		Role:         models.RoleStudent,
		ClassID:      &classID,
	}
	if number := strings.TrimSpace(req.StudentNumber); number != "" {
		student.StudentNumber = &number
	}

	err = s.tx.WithinTx(ctx, func(exec sqlx.ExtContext) error {
		return s.repo.Create(ctx, exec, student)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrForeignKey):
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("class %d does not exist", classID))
		case errors.Is(err, repository.ErrDuplicate):
			return nil, appErrors.Clone(appErrors.ErrConflict, "email or student number already registered")
		}
		return nil, mapStoreError(s.logger, err, "student", "register")
	}
	student.PasswordHash = ""
	return student, nil
}

// List returns every student with their class name.
func (s *StudentService) List(ctx context.Context) ([]models.StudentDetail, error) {
	students, err := s.repo.ListStudents(ctx)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "student", "list")
	}
	return students, nil
}
