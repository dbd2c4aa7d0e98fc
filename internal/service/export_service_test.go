package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unipub/pubmeta-api/internal/models"
	appErrors "github.com/unipub/pubmeta-api/pkg/errors"
)

type mockJournalCatalogue struct {
	journals []models.Journal
	lastMax  int
}

func (m *mockJournalCatalogue) ListAll(ctx context.Context, limit int) ([]models.Journal, error) {
	m.lastMax = limit
	return m.journals, nil
}

func TestExportServiceCSV(t *testing.T) {
	eissn := "1432-0525"
	catalogue := &mockJournalCatalogue{journals: []models.Journal{
		{ID: "j1", Title: "Acta Informatica", ISSN: "0001-5903", EISSN: &eissn},
		{ID: "j2", Title: "No eISSN Journal", ISSN: "1111-2222"},
	}}
	service := NewExportService(catalogue, 100, zap.NewNop())

	result, err := service.JournalCatalogue(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "journals.csv", result.Filename)
	assert.Equal(t, 100, catalogue.lastMax)

	out := string(result.Content)
	assert.True(t, strings.HasPrefix(out, "Title,ISSN,eISSN"))
	assert.Contains(t, out, "Acta Informatica,0001-5903,1432-0525")
	assert.Contains(t, out, "No eISSN Journal,1111-2222,")
}

func TestExportServiceDefaultFormatIsCSV(t *testing.T) {
	service := NewExportService(&mockJournalCatalogue{}, 0, zap.NewNop())

	result, err := service.JournalCatalogue(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
}

func TestExportServicePDF(t *testing.T) {
	catalogue := &mockJournalCatalogue{journals: []models.Journal{
		{ID: "j1", Title: "Acta Informatica", ISSN: "0001-5903"},
	}}
	service := NewExportService(catalogue, 100, zap.NewNop())

	result, err := service.JournalCatalogue(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "journals.pdf", result.Filename)
	require.True(t, len(result.Content) > 4)
	assert.Equal(t, "%PDF", string(result.Content[:4]))
}

func TestExportServiceUnknownFormat(t *testing.T) {
	service := NewExportService(&mockJournalCatalogue{}, 100, zap.NewNop())

	_, err := service.JournalCatalogue(context.Background(), "xlsx")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
