package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleTeacher UserRole = "TEACHER"
	RoleStudent UserRole = "STUDENT"
)

// User represents an account stored in the users table. Teachers and students
// share the table; ClassID and StudentNumber are only set for students.
type User struct {
	ID            int64     `db:"id" json:"id"`
	FullName      string    `db:"full_name" json:"nom"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Role          UserRole  `db:"role" json:"role"`
	Department    string    `db:"department" json:"departement"`
	Specialty     string    `db:"specialty" json:"specialite"`
	StudentNumber *string   `db:"student_number" json:"matricule,omitempty"`
	ClassID       *int64    `db:"class_id" json:"classeId,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// StudentDetail extends a student with the name of their class.
type StudentDetail struct {
	User
	ClassName *string `db:"class_name" json:"classeNom,omitempty"`
}
