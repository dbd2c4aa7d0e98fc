package dto

import (
	"time"

	"github.com/unipub/pubmeta-api/internal/models"
)

// Institute is the transfer shape of an institute entity. The owning
// faculty is flattened to its identifier.
type Institute struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FacultyID   string    `json:"faculty_id"`
	FacultyName string    `json:"faculty_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InstituteFromModel projects a persisted institute into its transfer shape.
func InstituteFromModel(m models.Institute) Institute {
	return Institute{
		ID:        m.ID,
		Name:      m.Name,
		FacultyID: m.FacultyID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// InstituteFromDetail projects the joined detail row, carrying the owning
// faculty name along.
func InstituteFromDetail(m models.InstituteDetail) Institute {
	out := InstituteFromModel(m.Institute)
	out.FacultyName = m.FacultyName
	return out
}

// ToModel rebuilds an entity from the transfer shape. The faculty
// reference stays an identifier; resolving it is the caller's job.
func (d Institute) ToModel() models.Institute {
	return models.Institute{
		ID:        d.ID,
		Name:      d.Name,
		FacultyID: d.FacultyID,
	}
}
