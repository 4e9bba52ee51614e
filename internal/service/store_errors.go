package service

import (
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/repository"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

// mapStoreError converts repository failures on entity into API errors. Unknown
// failures are logged and reported as INTERNAL_ERROR without leaking the cause.
func mapStoreError(logger *zap.Logger, err error, entity, action string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Clone(appErrors.ErrConflict, entity+" already exists")
	case errors.Is(err, repository.ErrForeignKey):
		return appErrors.Clone(appErrors.ErrConflict, entity+" is still referenced")
	}
	message := "failed to " + action + " " + entity
	logger.Error(message, zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
