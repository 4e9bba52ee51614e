package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

type adminAccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)
}

// AdminAccount describes the operator account provisioned at startup.
type AdminAccount struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	FullName string `validate:"required"`
}

// UserService handles account management that sits outside the portals.
type UserService struct {
	repo      adminAccountRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo adminAccountRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// EnsureAdmin creates the administrator account unless its email is already
// registered. An existing admin is left untouched, including its password.
func (s *UserService) EnsureAdmin(ctx context.Context, account AdminAccount) (bool, error) {
	account.Email = NormalizeEmail(account.Email)
	if err := s.validator.Struct(account); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin account")
	}

	hash, err := HashPassword(account.Password)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	user := &models.User{
		FullName:     account.FullName,
		Email:        account.Email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	created, err := s.repo.CreateIfAbsent(ctx, user)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin account")
	}
	if created {
		s.logger.Info("admin account created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))
		return true, nil
	}

	existing, err := s.repo.FindByEmail(ctx, account.Email)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin account")
	}
	if existing.Role != models.RoleAdmin {
		return false, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s is registered as %s", account.Email, existing.Role))
	}
	return false, nil
}
