package models

import "time"

// Room is a bookable teaching room.
type Room struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"nom"`
	Capacity   int       `db:"capacity" json:"capacite"`
	Building   string    `db:"building" json:"batiment"`
	Department string    `db:"department" json:"departement"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
