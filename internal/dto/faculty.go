package dto

import (
	"time"

	"github.com/unipub/pubmeta-api/internal/models"
)

// Faculty is the transfer shape of a faculty entity.
type Faculty struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FacultyFromModel projects a persisted faculty into its transfer shape.
func FacultyFromModel(m models.Faculty) Faculty {
	return Faculty{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FacultiesFromModels maps a result set into transfer objects.
func FacultiesFromModels(list []models.Faculty) []Faculty {
	out := make([]Faculty, 0, len(list))
	for _, m := range list {
		out = append(out, FacultyFromModel(m))
	}
	return out
}

// ToModel rebuilds an entity from the transfer shape.
func (d Faculty) ToModel() models.Faculty {
	return models.Faculty{
		ID:   d.ID,
		Name: d.Name,
	}
}
