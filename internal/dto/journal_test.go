package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipub/pubmeta-api/internal/models"
)

func TestJournalMappingPreservesIdentifiers(t *testing.T) {
	eissn := "1432-0525"
	now := time.Now()
	model := models.Journal{
		ID:        "j1",
		Title:     "Acta Informatica",
		ISSN:      "0001-5903",
		EISSN:     &eissn,
		CreatedAt: now,
		UpdatedAt: now,
	}

	out := JournalFromModel(model)
	assert.Equal(t, model.ID, out.ID)
	assert.Equal(t, model.Title, out.Title)
	assert.Equal(t, model.ISSN, out.ISSN)
	require.NotNil(t, out.EISSN)
	assert.Equal(t, eissn, *out.EISSN)

	back := out.ToModel()
	assert.Equal(t, model.ID, back.ID)
	assert.Equal(t, model.Title, back.Title)
	assert.Equal(t, model.ISSN, back.ISSN)
	require.NotNil(t, back.EISSN)
	assert.Equal(t, eissn, *back.EISSN)
	// Timestamps are repository concerns and are not carried back.
	assert.True(t, back.CreatedAt.IsZero())
	assert.True(t, back.UpdatedAt.IsZero())
}

func TestJournalMappingNilEISSN(t *testing.T) {
	out := JournalFromModel(models.Journal{ID: "j1", Title: "No eISSN", ISSN: "1111-2222"})
	assert.Nil(t, out.EISSN)
	assert.Nil(t, out.ToModel().EISSN)
}

func TestJournalsFromModelsEmpty(t *testing.T) {
	out := JournalsFromModels(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
