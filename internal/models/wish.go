package models

import "time"

// Wish (desiderata) is a teacher's preferred slot for one of their units.
type Wish struct {
	ID             int64     `db:"id" json:"id"`
	TeacherID      int64     `db:"teacher_id" json:"enseignantId"`
	TeachingUnitID int64     `db:"teaching_unit_id" json:"ueId"`
	Weekday        Weekday   `db:"weekday" json:"jour"`
	TimeSlot       TimeSlot  `db:"time_slot" json:"plageHoraire"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// WishDetail adds the unit code and name.
type WishDetail struct {
	Wish
	UECode string `db:"ue_code" json:"ueCode"`
	UEName string `db:"ue_name" json:"ueNom"`
}
