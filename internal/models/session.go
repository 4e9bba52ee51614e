package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is one of the six teaching days. Values are stored and returned in
// their French form.
type Weekday string

const (
	Monday    Weekday = "Lundi"
	Tuesday   Weekday = "Mardi"
	Wednesday Weekday = "Mercredi"
	Thursday  Weekday = "Jeudi"
	Friday    Weekday = "Vendredi"
	Saturday  Weekday = "Samedi"
)

// Weekdays lists the teaching days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var weekdayAliases = map[string]Weekday{
	"lundi": Monday, "monday": Monday,
	"mardi": Tuesday, "tuesday": Tuesday,
	"mercredi": Wednesday, "wednesday": Wednesday,
	"jeudi": Thursday, "thursday": Thursday,
	"vendredi": Friday, "friday": Friday,
	"samedi": Saturday, "saturday": Saturday,
}

// ParseWeekday accepts French or English day names in any case.
func ParseWeekday(raw string) (Weekday, error) {
	if day, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return day, nil
	}
	return "", fmt.Errorf("invalid weekday %q", raw)
}

// Index returns the position of d in Weekdays, or -1.
func (d Weekday) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i
		}
	}
	return -1
}

// Short returns the three letter label used by dashboards (Lun, Mar, ...).
func (d Weekday) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d[:3])
}

// Time returns the time.Weekday equivalent.
func (d Weekday) Time() time.Weekday {
	return time.Weekday(d.Index() + 1)
}

// TimeSlot is one of the fixed two-hour teaching slots.
type TimeSlot string

const (
	Slot0800 TimeSlot = "08:00-10:00"
	Slot1000 TimeSlot = "10:00-12:00"
	Slot1300 TimeSlot = "13:00-15:00"
	Slot1500 TimeSlot = "15:00-17:00"
	Slot1700 TimeSlot = "17:00-19:00"
)

// TimeSlots lists the slots in chronological order.
var TimeSlots = []TimeSlot{Slot0800, Slot1000, Slot1300, Slot1500, Slot1700}

// SlotHours is the length of every slot.
const SlotHours = 2

// ParseTimeSlot accepts "08:00-10:00" as well as "08:00 - 10:00".
func ParseTimeSlot(raw string) (TimeSlot, error) {
	normalised := TimeSlot(strings.Join(strings.Fields(raw), ""))
	for _, slot := range TimeSlots {
		if slot == normalised {
			return slot, nil
		}
	}
	return "", fmt.Errorf("invalid time slot %q", raw)
}

// Index returns the position of s in TimeSlots, or -1.
func (s TimeSlot) Index() int {
	for i, slot := range TimeSlots {
		if slot == s {
			return i
		}
	}
	return -1
}

// SlotKey identifies a room occupancy: at most one session may hold it.
type SlotKey struct {
	RoomID   int64
	Weekday  Weekday
	TimeSlot TimeSlot
}

// LockKey is the string hashed into the advisory lock guarding the slot.
func (k SlotKey) LockKey() string {
	return fmt.Sprintf("room:%d|%s|%s", k.RoomID, k.Weekday, k.TimeSlot)
}

// TeacherTimeKey identifies a teacher at one weekly slot, in any room.
type TeacherTimeKey struct {
	TeacherID int64
	Weekday   Weekday
	TimeSlot  TimeSlot
}

// LockKey is the string hashed into the advisory lock guarding the teacher's slot.
func (k TeacherTimeKey) LockKey() string {
	return fmt.Sprintf("teacher:%d|%s|%s", k.TeacherID, k.Weekday, k.TimeSlot)
}

// Session is one scheduled occurrence of a teaching unit.
type Session struct {
	ID             int64     `db:"id" json:"id"`
	TeachingUnitID int64     `db:"teaching_unit_id" json:"ueId"`
	ClassID        int64     `db:"class_id" json:"classeId"`
	RoomID         int64     `db:"room_id" json:"salleId"`
	Weekday        Weekday   `db:"weekday" json:"jour"`
	TimeSlot       TimeSlot  `db:"time_slot" json:"plageHoraire"`
	Date           time.Time `db:"date" json:"date"`
	AcademicYear   string    `db:"academic_year" json:"anneeAcad"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// Slot returns the occupancy key of the session.
func (s Session) Slot() SlotKey {
	return SlotKey{RoomID: s.RoomID, Weekday: s.Weekday, TimeSlot: s.TimeSlot}
}

// SessionDetail extends Session with the display fields of its unit, teacher,
// class and room.
type SessionDetail struct {
	Session
	UECode         string `db:"ue_code" json:"ueCode"`
	UEName         string `db:"ue_name" json:"ueNom"`
	TeacherID      int64  `db:"teacher_id" json:"enseignantId"`
	TeacherName    string `db:"teacher_name" json:"enseignantNom"`
	ClassName      string `db:"class_name" json:"classeNom"`
	ClassHeadcount int    `db:"class_headcount" json:"effectif"`
	RoomName       string `db:"room_name" json:"salleNom"`
	RoomCapacity   int    `db:"room_capacity" json:"capacite"`
	RoomBuilding   string `db:"room_building" json:"batiment"`
}

// SessionInput carries the validated fields of a create or update.
type SessionInput struct {
	TeachingUnitID int64
	ClassID        int64
	RoomID         int64
	Weekday        Weekday
	TimeSlot       TimeSlot
	Date           time.Time
}

// Slot returns the occupancy key the input would take.
func (in SessionInput) Slot() SlotKey {
	return SlotKey{RoomID: in.RoomID, Weekday: in.Weekday, TimeSlot: in.TimeSlot}
}
