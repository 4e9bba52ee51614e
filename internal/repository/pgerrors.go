package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors translated from Postgres constraint violations.
var (
	ErrDuplicate  = errors.New("repository: duplicate value")
	ErrForeignKey = errors.New("repository: foreign key violation")
	ErrSlotTaken  = errors.New("repository: room slot already taken")
)

const (
	pgUniqueViolation     pq.ErrorCode = "23505"
	pgForeignKeyViolation pq.ErrorCode = "23503"

	sessionSlotConstraint = "sessions_room_slot_key"
)

// translate maps driver errors to the sentinels above, leaving other errors intact.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pgUniqueViolation:
		if pqErr.Constraint == sessionSlotConstraint {
			return fmt.Errorf("%w (%s)", ErrSlotTaken, pqErr.Constraint)
		}
		return fmt.Errorf("%w (%s)", ErrDuplicate, pqErr.Constraint)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s)", ErrForeignKey, pqErr.Constraint)
	}
	return err
}
