package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/unipub/pubmeta-api/internal/models"
)

func TestDivisionFromDetailCarriesInstituteName(t *testing.T) {
	detail := models.DivisionDetail{
		Division:      models.Division{ID: "d1", Name: "Databases", InstituteID: "i1"},
		InstituteName: "Institute of Informatics",
	}

	out := DivisionFromDetail(detail)
	assert.Equal(t, "d1", out.ID)
	assert.Equal(t, "i1", out.InstituteID)
	assert.Equal(t, "Institute of Informatics", out.InstituteName)

	// The owning institute stays an identifier on the way back; the joined
	// name is response-only decoration.
	back := out.ToModel()
	assert.Equal(t, "i1", back.InstituteID)
	assert.Equal(t, "Databases", back.Name)
}

func TestPublicationMappingKeepsOptionalLinks(t *testing.T) {
	journalID := "j1"
	model := models.Publication{ID: "p1", Title: "On Generic Repositories", Authors: "Doe, J.", Year: 2024, JournalID: &journalID}

	out := PublicationFromModel(model)
	assert.Equal(t, &journalID, out.JournalID)
	assert.Nil(t, out.DivisionID)

	back := out.ToModel()
	assert.Equal(t, &journalID, back.JournalID)
	assert.Nil(t, back.DivisionID)
}
