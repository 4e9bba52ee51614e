package dto

// RoomRequest creates or updates a room.
type RoomRequest struct {
	Name       string `json:"nom" validate:"required,max=100"`
	Capacity   int    `json:"capacite" validate:"required,gt=0"`
	Building   string `json:"batiment" validate:"max=100"`
	Department string `json:"departement" validate:"max=100"`
}

// ClassRequest creates or updates a class.
type ClassRequest struct {
	Name         string `json:"nom" validate:"required,max=100"`
	Headcount    int    `json:"effectif" validate:"required,gt=0"`
	FieldOfStudy string `json:"filiere" validate:"max=100"`
	Department   string `json:"departement" validate:"max=100"`
}

// TeacherRequest creates or updates a teacher. UECode optionally creates the
// teacher's first teaching unit; Password falls back to the configured default
// on create and is left unchanged on update when empty.
type TeacherRequest struct {
	FullName   string `json:"nom" validate:"required,max=150"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"departement" validate:"max=100"`
	Specialty  string `json:"specialite" validate:"max=100"`
	UECode     string `json:"ueCode" validate:"max=30"`
	Password   string `json:"password" validate:"omitempty,min=6"`
}

// TeachingUnitRequest creates a teaching unit for a teacher.
type TeachingUnitRequest struct {
	Code      string  `json:"code" validate:"required,max=30"`
	Name      string  `json:"nom" validate:"required,max=150"`
	TeacherID FlexInt `json:"teacherId" validate:"required,gt=0"`
}

// StudentRegistrationRequest is the self-registration payload.
type StudentRegistrationRequest struct {
	FullName      string  `json:"nom" validate:"required,max=150"`
	Email         string  `json:"email" validate:"required,email"`
	StudentNumber string  `json:"matricule" validate:"max=50"`
	ClassID       FlexInt `json:"classeId" validate:"required,gt=0"`
	Password      string  `json:"password" validate:"required,min=6"`
}

// WishRequest submits a preferred slot.
type WishRequest struct {
	TeacherID      FlexInt `json:"teacherId" validate:"required,gt=0"`
	TeachingUnitID FlexInt `json:"ueId" validate:"required,gt=0"`
	Weekday        string  `json:"jour" validate:"required"`
	TimeSlot       string  `json:"plageHoraire" validate:"required"`
}

// ResourceUpload is the metadata part of a multipart upload.
type ResourceUpload struct {
	Name           string `validate:"required,max=200"`
	Category       string `validate:"max=50"`
	TeacherID      int64  `validate:"required,gt=0"`
	TeachingUnitID int64  `validate:"required,gt=0"`
	FileName       string `validate:"required"`
	MimeType       string `validate:"required"`
	Size           int64  `validate:"gt=0"`
}
