package dto

import (
	"time"

	"github.com/unipub/pubmeta-api/internal/models"
)

// Publication is the transfer shape of a publication entity. Journal and
// division links are flattened to identifiers.
type Publication struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Authors    string    `json:"authors"`
	Year       int       `json:"year"`
	JournalID  *string   `json:"journal_id,omitempty"`
	DivisionID *string   `json:"division_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PublicationFromModel projects a persisted publication into its transfer shape.
func PublicationFromModel(m models.Publication) Publication {
	return Publication{
		ID:         m.ID,
		Title:      m.Title,
		Authors:    m.Authors,
		Year:       m.Year,
		JournalID:  m.JournalID,
		DivisionID: m.DivisionID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// PublicationsFromModels maps a result set into transfer objects.
func PublicationsFromModels(list []models.Publication) []Publication {
	out := make([]Publication, 0, len(list))
	for _, m := range list {
		out = append(out, PublicationFromModel(m))
	}
	return out
}

// ToModel rebuilds an entity from the transfer shape. References stay
// identifiers; resolving them is the caller's job.
func (d Publication) ToModel() models.Publication {
	return models.Publication{
		ID:         d.ID,
		Title:      d.Title,
		Authors:    d.Authors,
		Year:       d.Year,
		JournalID:  d.JournalID,
		DivisionID: d.DivisionID,
	}
}
