package models

import (
	"fmt"
	"time"
)

// Resource is the metadata of an uploaded course file. StorageRef points at
// the file in the storage backend and is never exposed directly.
type Resource struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"nom"`
	Category       string    `db:"category" json:"categorie"`
	FileType       string    `db:"file_type" json:"type"`
	MimeType       string    `db:"mime_type" json:"mimeType"`
	StorageRef     string    `db:"storage_ref" json:"-"`
	SizeBytes      int64     `db:"size_bytes" json:"tailleOctets"`
	TeacherID      int64     `db:"teacher_id" json:"teacherId"`
	TeachingUnitID int64     `db:"teaching_unit_id" json:"ueId"`
	UploadedAt     time.Time `db:"uploaded_at" json:"date"`
}

// DisplaySize renders the size the way the portals show it, e.g. "12.50 KB".
func (r Resource) DisplaySize() string {
	return fmt.Sprintf("%.2f KB", float64(r.SizeBytes)/1024)
}

// ResourceDetail adds the unit name and a short-lived download link.
type ResourceDetail struct {
	Resource
	UECode      string     `db:"ue_code" json:"ueCode"`
	UEName      string     `db:"ue_name" json:"ueNom"`
	Size        string     `db:"-" json:"taille"`
	DownloadURL string     `db:"-" json:"downloadUrl,omitempty"`
	ExpiresAt   *time.Time `db:"-" json:"downloadExpiresAt,omitempty"`
}
