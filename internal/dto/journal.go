package dto

import (
	"time"

	"github.com/unipub/pubmeta-api/internal/models"
)

// Journal is the transfer shape of a journal entity.
type Journal struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ISSN      string    `json:"issn"`
	EISSN     *string   `json:"eissn,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalFromModel projects a persisted journal into its transfer shape.
func JournalFromModel(m models.Journal) Journal {
	return Journal{
		ID:        m.ID,
		Title:     m.Title,
		ISSN:      m.ISSN,
		EISSN:     m.EISSN,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// JournalsFromModels maps a result set into transfer objects.
func JournalsFromModels(list []models.Journal) []Journal {
	out := make([]Journal, 0, len(list))
	for _, m := range list {
		out = append(out, JournalFromModel(m))
	}
	return out
}

// ToModel rebuilds an entity from the transfer shape. Timestamps are left
// for the repository to assign; the identifier is carried as-is and may be
// empty for new rows.
func (d Journal) ToModel() models.Journal {
	return models.Journal{
		ID:    d.ID,
		Title: d.Title,
		ISSN:  d.ISSN,
		EISSN: d.EISSN,
	}
}
