package models

import "time"

// TeachingUnit (UE) is a course owned by exactly one teacher.
type TeachingUnit struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"nom"`
	TeacherID int64     `db:"teacher_id" json:"enseignantId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
