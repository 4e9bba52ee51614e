package service

import "github.com/noah-isme/uni-timetable-api/internal/models"

// Actor identifies the authenticated caller of a mutating operation.
type Actor struct {
	UserID int64
	Role   models.UserRole
}

// canManageUnit reports whether the actor may schedule or publish material for unit.
func (a Actor) canManageUnit(unit *models.TeachingUnit) bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleTeacher:
		return unit != nil && unit.TeacherID == a.UserID
	}
	return false
}

// canActFor reports whether the actor may act on behalf of teacherID.
func (a Actor) canActFor(teacherID int64) bool {
	return a.Role == models.RoleAdmin || (a.Role == models.RoleTeacher && a.UserID == teacherID)
}
