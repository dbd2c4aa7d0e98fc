package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unipub/pubmeta-api/internal/dto"
	"github.com/unipub/pubmeta-api/internal/models"
	appErrors "github.com/unipub/pubmeta-api/pkg/errors"
)

type publicationRepository interface {
	List(ctx context.Context, filter models.PublicationFilter) ([]models.Publication, int, error)
	FindByID(ctx context.Context, id string) (*models.Publication, error)
	SearchByTitle(ctx context.Context, fragment string) ([]models.Publication, error)
	Create(ctx context.Context, publication *models.Publication) error
	Update(ctx context.Context, publication *models.Publication) error
	Delete(ctx context.Context, id string) error
}

type journalResolver interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type divisionResolver interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// CreatePublicationRequest captures fields for registering publications.
type CreatePublicationRequest struct {
	Title      string  `json:"title" validate:"required"`
	Authors    string  `json:"authors" validate:"required"`
	Year       int     `json:"year" validate:"required,gte=1500"`
	JournalID  *string `json:"journal_id,omitempty"`
	DivisionID *string `json:"division_id,omitempty"`
}

// UpdatePublicationRequest carries the full publication state for updates.
type UpdatePublicationRequest struct {
	Title      string  `json:"title" validate:"required"`
	Authors    string  `json:"authors" validate:"required"`
	Year       int     `json:"year" validate:"required,gte=1500"`
	JournalID  *string `json:"journal_id,omitempty"`
	DivisionID *string `json:"division_id,omitempty"`
}

// PublicationService handles publication workflows. Journal and division
// links are optional but must resolve when present.
type PublicationService struct {
	repo      publicationRepository
	journals  journalResolver
	divisions divisionResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPublicationService creates a new publication service.
func NewPublicationService(repo publicationRepository, journals journalResolver, divisions divisionResolver, validate *validator.Validate, logger *zap.Logger) *PublicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicationService{repo: repo, journals: journals, divisions: divisions, validator: validate, logger: logger}
}

// List returns paginated publications.
func (s *PublicationService) List(ctx context.Context, filter models.PublicationFilter) ([]dto.Publication, *models.Pagination, error) {
	publications, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list publications")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return dto.PublicationsFromModels(publications), pagination, nil
}

// Get returns a publication by identifier.
func (s *PublicationService) Get(ctx context.Context, id string) (*dto.Publication, error) {
	publication, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "publication not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load publication")
	}
	out := dto.PublicationFromModel(*publication)
	return &out, nil
}

// Search returns publications whose title contains the fragment.
func (s *PublicationService) Search(ctx context.Context, fragment string) ([]dto.Publication, error) {
	publications, err := s.repo.SearchByTitle(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search publications")
	}
	return dto.PublicationsFromModels(publications), nil
}

// Create registers a new publication after resolving any provided links.
func (s *PublicationService) Create(ctx context.Context, req CreatePublicationRequest) (*dto.Publication, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid publication payload")
	}

	if err := s.resolveLinks(ctx, req.JournalID, req.DivisionID); err != nil {
		return nil, err
	}

	publication := &models.Publication{
		Title:      strings.TrimSpace(req.Title),
		Authors:    strings.TrimSpace(req.Authors),
		Year:       req.Year,
		JournalID:  req.JournalID,
		DivisionID: req.DivisionID,
	}
	if err := s.repo.Create(ctx, publication); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create publication")
	}

	out := dto.PublicationFromModel(*publication)
	return &out, nil
}

// Update overwrites an existing publication with the full provided state.
func (s *PublicationService) Update(ctx context.Context, id string, req UpdatePublicationRequest) (*dto.Publication, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid publication payload")
	}

	publication, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "publication not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load publication")
	}

	if err := s.resolveLinks(ctx, req.JournalID, req.DivisionID); err != nil {
		return nil, err
	}

	publication.Title = strings.TrimSpace(req.Title)
	publication.Authors = strings.TrimSpace(req.Authors)
	publication.Year = req.Year
	publication.JournalID = req.JournalID
	publication.DivisionID = req.DivisionID

	if err := s.repo.Update(ctx, publication); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update publication")
	}

	out := dto.PublicationFromModel(*publication)
	return &out, nil
}

// Delete removes a publication. Deleting a missing publication succeeds.
func (s *PublicationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete publication")
	}
	return nil
}

func (s *PublicationService) resolveLinks(ctx context.Context, journalID, divisionID *string) error {
	if journalID != nil && *journalID != "" {
		ok, err := s.journals.Exists(ctx, *journalID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve journal")
		}
		if !ok {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "referenced journal does not exist")
		}
	}
	if divisionID != nil && *divisionID != "" {
		ok, err := s.divisions.Exists(ctx, *divisionID)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve division")
		}
		if !ok {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "referenced division does not exist")
		}
	}
	return nil
}
