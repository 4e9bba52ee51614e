package dto

// SessionRequest is the body of session create and update calls.
type SessionRequest struct {
	TeachingUnitID FlexInt `json:"ueId" validate:"required,gt=0"`
	ClassID        FlexInt `json:"classeId" validate:"required,gt=0"`
	RoomID         FlexInt `json:"salleId" validate:"required,gt=0"`
	Weekday        string  `json:"jour" validate:"required"`
	TimeSlot       string  `json:"plageHoraire" validate:"required"`
	Date           string  `json:"date" validate:"required"`
}
