package dto

import (
	"time"

	"github.com/unipub/pubmeta-api/internal/models"
)

// Division is the transfer shape of a division entity. The owning
// institute is flattened to its identifier.
type Division struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	InstituteID   string    `json:"institute_id"`
	InstituteName string    `json:"institute_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DivisionFromModel projects a persisted division into its transfer shape.
func DivisionFromModel(m models.Division) Division {
	return Division{
		ID:          m.ID,
		Name:        m.Name,
		InstituteID: m.InstituteID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// DivisionFromDetail projects the joined detail row, carrying the owning
// institute name along.
func DivisionFromDetail(m models.DivisionDetail) Division {
	out := DivisionFromModel(m.Division)
	out.InstituteName = m.InstituteName
	return out
}

// DivisionsFromModels maps a plain result set into transfer objects.
func DivisionsFromModels(list []models.Division) []Division {
	out := make([]Division, 0, len(list))
	for _, m := range list {
		out = append(out, DivisionFromModel(m))
	}
	return out
}

// ToModel rebuilds an entity from the transfer shape. The institute
// reference stays an identifier; resolving it is the caller's job.
func (d Division) ToModel() models.Division {
	return models.Division{
		ID:          d.ID,
		Name:        d.Name,
		InstituteID: d.InstituteID,
	}
}
