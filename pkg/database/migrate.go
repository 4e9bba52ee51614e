package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type migration struct {
	name string
	stmt string
}

// Statements are idempotent so Migrate can run on every boot.
var migrations = []migration{
	{"create_classes", `CREATE TABLE IF NOT EXISTS classes (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		headcount INTEGER NOT NULL CHECK (headcount > 0),
		field_of_study TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT 'Informatique',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`},
	{"create_users", `CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('ADMIN','TEACHER','STUDENT')),
		department TEXT NOT NULL DEFAULT '',
		specialty TEXT NOT NULL DEFAULT '',
		student_number TEXT UNIQUE,
		class_id BIGINT REFERENCES classes(id) ON DELETE RESTRICT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`},
	{"create_rooms", `CREATE TABLE IF NOT EXISTS rooms (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		capacity INTEGER NOT NULL CHECK (capacity > 0),
		building TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`},
	{"create_teaching_units", `CREATE TABLE IF NOT EXISTS teaching_units (
		id BIGSERIAL PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		teacher_id BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`},
	{"create_sessions", `CREATE TABLE IF NOT EXISTS sessions (
		id BIGSERIAL PRIMARY KEY,
		teaching_unit_id BIGINT NOT NULL REFERENCES teaching_units(id) ON DELETE RESTRICT,
		class_id BIGINT NOT NULL REFERENCES classes(id) ON DELETE RESTRICT,
		room_id BIGINT NOT NULL REFERENCES rooms(id) ON DELETE RESTRICT,
		weekday TEXT NOT NULL,
		time_slot TEXT NOT NULL,
		date DATE NOT NULL,
		academic_year TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`},
	{"sessions_room_slot_unique", `CREATE UNIQUE INDEX IF NOT EXISTS sessions_room_slot_key ON sessions (room_id, weekday, time_slot)`},
	{"sessions_class_idx", `CREATE INDEX IF NOT EXISTS sessions_class_idx ON sessions (class_id)`},
	{"sessions_unit_idx", `CREATE INDEX IF NOT EXISTS sessions_unit_idx ON sessions (teaching_unit_id)`},
	{"create_wishes", `CREATE TABLE IF NOT EXISTS wishes (
		id BIGSERIAL PRIMARY KEY,
		teacher_id BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		teaching_unit_id BIGINT NOT NULL REFERENCES teaching_units(id) ON DELETE RESTRICT,
		weekday TEXT NOT NULL,
		time_slot TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`},
	{"create_resources", `CREATE TABLE IF NOT EXISTS resources (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'Cours',
		file_type TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		storage_ref TEXT NOT NULL,
		size_bytes BIGINT NOT NULL,
		teacher_id BIGINT NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		teaching_unit_id BIGINT NOT NULL REFERENCES teaching_units(id) ON DELETE RESTRICT,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`},
	{"resources_unit_idx", `CREATE INDEX IF NOT EXISTS resources_unit_idx ON resources (teaching_unit_id, uploaded_at DESC)`},
}

// Migrate applies the schema inside a single transaction.
func Migrate(ctx context.Context, db *sqlx.DB, logger *zap.Logger) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, m := range migrations {
		if _, err = tx.ExecContext(ctx, m.stmt); err != nil {
			return fmt.Errorf("migration %s: %w", m.name, err)
		}
		logger.Debug("migration applied", zap.String("name", m.name))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	logger.Info("schema up to date", zap.Int("statements", len(migrations)))
	return nil
}
