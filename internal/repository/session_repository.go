package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const sessionColumns = `id, teaching_unit_id, class_id, room_id, weekday, time_slot, date, academic_year, created_at, updated_at`

const sessionDetailSelect = `SELECT s.id, s.teaching_unit_id, s.class_id, s.room_id, s.weekday, s.time_slot, s.date, s.academic_year, s.created_at, s.updated_at,
	tu.code AS ue_code, tu.name AS ue_name, tu.teacher_id, u.full_name AS teacher_name,
	c.name AS class_name, c.headcount AS class_headcount,
	r.name AS room_name, r.capacity AS room_capacity, r.building AS room_building
FROM sessions s
JOIN teaching_units tu ON tu.id = s.teaching_unit_id
JOIN users u ON u.id = tu.teacher_id
JOIN classes c ON c.id = s.class_id
JOIN rooms r ON r.id = s.room_id`

const weekdayOrder = `array_position(ARRAY['Lundi','Mardi','Mercredi','Jeudi','Vendredi','Samedi'], s.weekday)`

// SessionRepository provides persistence for scheduled sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// LockSlot takes a transaction-scoped advisory lock on the slot. Callers must
// hold an open transaction; the lock is released on commit or rollback.
func (r *SessionRepository) LockSlot(ctx context.Context, exec sqlx.ExtContext, key models.SlotKey) error {
	return advisoryLock(ctx, exec, key.LockKey())
}

// LockTeacherTime locks the teacher's weekly slot across all rooms. Callers
// that also lock a room slot must take the room lock first.
func (r *SessionRepository) LockTeacherTime(ctx context.Context, exec sqlx.ExtContext, key models.TeacherTimeKey) error {
	return advisoryLock(ctx, exec, key.LockKey())
}

func advisoryLock(ctx context.Context, exec sqlx.ExtContext, key string) error {
	if _, err := exec.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock %s: %w", key, err)
	}
	return nil
}

// ListBySlot returns the sessions occupying the slot.
func (r *SessionRepository) ListBySlot(ctx context.Context, exec sqlx.ExtContext, key models.SlotKey) ([]models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE room_id = $1 AND weekday = $2 AND time_slot = $3`
	var sessions []models.Session
	if err := sqlx.SelectContext(ctx, exec, &sessions, query, key.RoomID, key.Weekday, key.TimeSlot); err != nil {
		return nil, fmt.Errorf("list sessions by slot: %w", err)
	}
	return sessions, nil
}

// ListAtTime returns the sessions held in any room at weekday/slot.
func (r *SessionRepository) ListAtTime(ctx context.Context, exec sqlx.ExtContext, weekday models.Weekday, slot models.TimeSlot) ([]models.SessionDetail, error) {
	query := sessionDetailSelect + ` WHERE s.weekday = $1 AND s.time_slot = $2`
	var sessions []models.SessionDetail
	if err := sqlx.SelectContext(ctx, exec, &sessions, query, weekday, slot); err != nil {
		return nil, fmt.Errorf("list sessions at time: %w", err)
	}
	return sessions, nil
}

// FindForUpdate loads a session and row-locks it. Returns sql.ErrNoRows when absent.
func (r *SessionRepository) FindForUpdate(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 FOR UPDATE`
	var session models.Session
	if err := sqlx.GetContext(ctx, exec, &session, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find session for update: %w", err)
	}
	return &session, nil
}

// FindDetail returns a session with its display fields.
func (r *SessionRepository) FindDetail(ctx context.Context, id int64) (*models.SessionDetail, error) {
	var session models.SessionDetail
	if err := r.db.GetContext(ctx, &session, sessionDetailSelect+` WHERE s.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find session detail: %w", err)
	}
	return &session, nil
}

// Create inserts a session and fills its generated fields.
func (r *SessionRepository) Create(ctx context.Context, exec sqlx.ExtContext, session *models.Session) error {
	const query = `INSERT INTO sessions (teaching_unit_id, class_id, room_id, weekday, time_slot, date, academic_year)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	row := exec.QueryRowxContext(ctx, query, session.TeachingUnitID, session.ClassID, session.RoomID,
		session.Weekday, session.TimeSlot, session.Date, session.AcademicYear)
	if err := row.Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
		return fmt.Errorf("create session: %w", translate(err))
	}
	return nil
}

// Update overwrites the mutable fields of a session.
func (r *SessionRepository) Update(ctx context.Context, exec sqlx.ExtContext, session *models.Session) error {
	const query = `UPDATE sessions SET teaching_unit_id = $2, class_id = $3, room_id = $4, weekday = $5, time_slot = $6, date = $7, updated_at = NOW()
WHERE id = $1 RETURNING updated_at`
	row := exec.QueryRowxContext(ctx, query, session.ID, session.TeachingUnitID, session.ClassID, session.RoomID,
		session.Weekday, session.TimeSlot, session.Date)
	if err := row.Scan(&session.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update session: %w", translate(err))
	}
	return nil
}

// Delete removes a session. Returns sql.ErrNoRows when nothing was deleted.
func (r *SessionRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByTeacher returns the sessions of every unit owned by the teacher, newest date first.
func (r *SessionRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.SessionDetail, error) {
	query := sessionDetailSelect + ` WHERE tu.teacher_id = $1 ORDER BY s.date DESC, s.id DESC`
	sessions := make([]models.SessionDetail, 0)
	if err := r.db.SelectContext(ctx, &sessions, query, teacherID); err != nil {
		return nil, fmt.Errorf("list sessions by teacher: %w", err)
	}
	return sessions, nil
}

// ListByClass returns the sessions of a class in weekly order.
func (r *SessionRepository) ListByClass(ctx context.Context, classID int64) ([]models.SessionDetail, error) {
	query := sessionDetailSelect + ` WHERE s.class_id = $1 ORDER BY ` + weekdayOrder + `, s.time_slot, s.id`
	sessions := make([]models.SessionDetail, 0)
	if err := r.db.SelectContext(ctx, &sessions, query, classID); err != nil {
		return nil, fmt.Errorf("list sessions by class: %w", err)
	}
	return sessions, nil
}

// NextForClass returns the earliest dated session of the class, or nil.
func (r *SessionRepository) NextForClass(ctx context.Context, classID int64) (*models.SessionDetail, error) {
	var session models.SessionDetail
	err := r.db.GetContext(ctx, &session, sessionDetailSelect+` WHERE s.class_id = $1 ORDER BY s.date ASC, s.id ASC LIMIT 1`, classID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("next session for class: %w", err)
	}
	return &session, nil
}
