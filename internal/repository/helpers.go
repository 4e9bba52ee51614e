package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

func notFoundOr(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sql.ErrNoRows
	}
	return fmt.Errorf("%s: %w", op, err)
}
