package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const roomColumns = `id, name, capacity, building, department, created_at, updated_at`

// RoomRepository provides persistence for rooms.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new RoomRepository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// List returns every room ordered by name.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	rooms := make([]models.Room, 0)
	if err := r.db.SelectContext(ctx, &rooms, `SELECT `+roomColumns+` FROM rooms ORDER BY name ASC`); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// FindByID returns a room. Returns sql.ErrNoRows when absent.
func (r *RoomRepository) FindByID(ctx context.Context, id int64) (*models.Room, error) {
	return r.find(ctx, r.db, id, "")
}

// FindForShare reads a room inside a transaction and blocks concurrent edits of it until commit.
func (r *RoomRepository) FindForShare(ctx context.Context, exec sqlx.ExtContext, id int64) (*models.Room, error) {
	return r.find(ctx, exec, id, " FOR SHARE")
}

func (r *RoomRepository) find(ctx context.Context, q sqlx.QueryerContext, id int64, lock string) (*models.Room, error) {
	var room models.Room
	if err := sqlx.GetContext(ctx, q, &room, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`+lock, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find room: %w", err)
	}
	return &room, nil
}

// Create inserts a room.
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	const query = `INSERT INTO rooms (name, capacity, building, department) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	if err := r.db.QueryRowxContext(ctx, query, room.Name, room.Capacity, room.Building, room.Department).
		Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return fmt.Errorf("create room: %w", translate(err))
	}
	return nil
}

// Update overwrites a room. Returns sql.ErrNoRows when absent.
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	const query = `UPDATE rooms SET name = $2, capacity = $3, building = $4, department = $5, updated_at = NOW() WHERE id = $1 RETURNING created_at, updated_at`
	if err := r.db.QueryRowxContext(ctx, query, room.ID, room.Name, room.Capacity, room.Building, room.Department).
		Scan(&room.CreatedAt, &room.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("update room: %w", translate(err))
	}
	return nil
}

// Delete removes a room. Sessions referencing it make this fail with ErrForeignKey.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, "rooms", id)
}

func deleteByID(ctx context.Context, exec sqlx.ExecerContext, table string, id int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, translate(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s rows affected: %w", table, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
