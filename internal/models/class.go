package models

import "time"

// Class represents a student cohort.
type Class struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"nom"`
	Headcount    int       `db:"headcount" json:"effectif"`
	FieldOfStudy string    `db:"field_of_study" json:"filiere"`
	Department   string    `db:"department" json:"departement"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
