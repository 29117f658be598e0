package dto

import "github.com/Sannith-Hack/NCC-Air-Wing/internal/app/models"

// AdminRecordsResponse is the full snapshot the admin console works from.
// Every mutation is followed by a fresh snapshot fetch.
type AdminRecordsResponse struct {
	Students      []models.Student               `json:"students"`
	NccDetails    []models.NccDetailWithStudent  `json:"nccDetails"`
	Experiences   []models.ExperienceWithStudent `json:"experiences"`
	Achievements  []models.Achievement           `json:"achievements"`
	Announcements []models.Announcement          `json:"announcements"`
	Gallery       []models.GalleryItem           `json:"gallery"`
}

// AdminMutationRequest carries the edited fields of a record as a loose
// column/value map. Unknown columns are rejected by the per-kind whitelist.
type AdminMutationRequest struct {
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// AdminCreateResponse is returned after a generic create
type AdminCreateResponse struct {
	ID int64 `json:"id"`
}

// AdminMutationResponse pairs a mutation result with the fresh snapshot the
// console re-renders from.
type AdminMutationResponse struct {
	ID      int64                 `json:"id,omitempty"`
	Records *AdminRecordsResponse `json:"records"`
}

// UploadResponse returns the public URL of a stored image
type UploadResponse struct {
	URL string `json:"url"`
}
