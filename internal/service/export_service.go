package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/unipub/pubmeta-api/internal/models"
	appErrors "github.com/unipub/pubmeta-api/pkg/errors"
	"github.com/unipub/pubmeta-api/pkg/export"
)

type journalCatalogue interface {
	ListAll(ctx context.Context, limit int) ([]models.Journal, error)
}

// ExportResult carries rendered export bytes with serving metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the journal catalogue into downloadable formats.
type ExportService struct {
	journals journalCatalogue
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	maxRows  int
	logger   *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(journals journalCatalogue, maxRows int, logger *zap.Logger) *ExportService {
	if maxRows <= 0 {
		maxRows = 5000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		journals: journals,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		maxRows:  maxRows,
		logger:   logger,
	}
}

// JournalCatalogue renders the full journal list as CSV or PDF.
func (s *ExportService) JournalCatalogue(ctx context.Context, format string) (*ExportResult, error) {
	journals, err := s.journals.ListAll(ctx, s.maxRows)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load journal catalogue")
	}

	data := export.Dataset{
		Headers: []string{"Title", "ISSN", "eISSN"},
		Rows:    make([]map[string]string, 0, len(journals)),
	}
	for _, j := range journals {
		eissn := ""
		if j.EISSN != nil {
			eissn = *j.EISSN
		}
		data.Rows = append(data.Rows, map[string]string{
			"Title": j.Title,
			"ISSN":  j.ISSN,
			"eISSN": eissn,
		})
	}

	switch strings.ToLower(format) {
	case "", "csv":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "journals.csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(data, "Journal Catalogue")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "journals.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
