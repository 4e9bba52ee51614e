package service

import (
	"time"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// WouldExceedCapacity reports whether a class of classHeadcount students does
// not fit in a room seating roomCapacity. A class exactly filling the room fits.
func WouldExceedCapacity(classHeadcount, roomCapacity int) bool {
	return classHeadcount > roomCapacity
}

// WouldCollide reports whether a session other than excludeID already holds slot.
// Pass excludeID = 0 on create.
func WouldCollide(occupants []models.Session, slot models.SlotKey, excludeID int64) bool {
	for _, occupant := range occupants {
		if excludeID != 0 && occupant.ID == excludeID {
			continue
		}
		if occupant.Slot() == slot {
			return true
		}
	}
	return false
}

// TeacherDoubleBooked reports whether teacherID already teaches in one of the
// sessions happening at the same weekday and slot, ignoring excludeID.
func TeacherDoubleBooked(concurrent []models.SessionDetail, teacherID, excludeID int64) bool {
	for _, session := range concurrent {
		if excludeID != 0 && session.ID == excludeID {
			continue
		}
		if session.TeacherID == teacherID {
			return true
		}
	}
	return false
}

// DateMatchesWeekday reports whether date falls on weekday.
func DateMatchesWeekday(date time.Time, weekday models.Weekday) bool {
	return weekday.Index() >= 0 && date.Weekday() == weekday.Time()
}
