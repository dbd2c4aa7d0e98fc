package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	content, err := exporter.Render(Dataset{
		Headers: []string{"Title", "ISSN", "eISSN"},
		Rows: []map[string]string{
			{"Title": "Acta Informatica", "ISSN": "0001-5903", "eISSN": "1432-0525"},
			{"Title": "No eISSN Journal", "ISSN": "1111-2222"},
		},
	})
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, "Title,ISSN,eISSN")
	assert.Contains(t, out, "Acta Informatica,0001-5903,1432-0525")
	assert.Contains(t, out, "No eISSN Journal,1111-2222,")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	content, err := exporter.Render(Dataset{
		Headers: []string{"Title", "ISSN"},
		Rows: []map[string]string{
			{"Title": "Acta Informatica", "ISSN": "0001-5903"},
		},
	}, "Journal Catalogue")
	require.NoError(t, err)
	assert.True(t, len(content) > 0)
	assert.Equal(t, "%PDF", string(content[:4]))
}
