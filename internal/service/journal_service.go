package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unipub/pubmeta-api/internal/dto"
	"github.com/unipub/pubmeta-api/internal/models"
	appErrors "github.com/unipub/pubmeta-api/pkg/errors"
)

type journalRepository interface {
	List(ctx context.Context, filter models.JournalFilter) ([]models.Journal, int, error)
	FindByID(ctx context.Context, id string) (*models.Journal, error)
	FindByISSN(ctx context.Context, issn string) (*models.Journal, error)
	FindByEISSN(ctx context.Context, eissn string) (*models.Journal, error)
	SearchByTitle(ctx context.Context, fragment string) ([]models.Journal, error)
	ExistsByISSN(ctx context.Context, issn string, excludeID string) (bool, error)
	Create(ctx context.Context, journal *models.Journal) error
	Update(ctx context.Context, journal *models.Journal) error
	Delete(ctx context.Context, id string) error
}

// CreateJournalRequest captures fields for registering journals.
type CreateJournalRequest struct {
	Title string  `json:"title" validate:"required"`
	ISSN  string  `json:"issn" validate:"required"`
	EISSN *string `json:"eissn,omitempty"`
}

// UpdateJournalRequest carries the full journal state for updates.
type UpdateJournalRequest struct {
	Title string  `json:"title" validate:"required"`
	ISSN  string  `json:"issn" validate:"required"`
	EISSN *string `json:"eissn,omitempty"`
}

// journalListPayload is the cached shape for list responses.
type journalListPayload struct {
	Items []dto.Journal `json:"items"`
	Total int           `json:"total"`
}

// JournalService handles journal catalogue workflows.
type JournalService struct {
	repo      journalRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewJournalService creates a new journal service.
func NewJournalService(repo journalRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *JournalService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns paginated journals, read through the response cache when enabled.
func (s *JournalService) List(ctx context.Context, filter models.JournalFilter) ([]dto.Journal, *models.Pagination, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}

	key := fmt.Sprintf("journals:list:%s:%d:%d:%s:%s", strings.ToLower(filter.Search), page, size, filter.SortBy, filter.SortOrder)
	var cached journalListPayload
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: cached.Total}
		return cached.Items, pagination, nil
	}

	journals, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list journals")
	}

	items := dto.JournalsFromModels(journals)
	_ = s.cache.Set(ctx, key, journalListPayload{Items: items, Total: total}, 0)

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return items, pagination, nil
}

// Get returns a journal by identifier.
func (s *JournalService) Get(ctx context.Context, id string) (*dto.Journal, error) {
	journal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "journal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load journal")
	}
	out := dto.JournalFromModel(*journal)
	return &out, nil
}

// GetByISSN returns a journal by its print ISSN.
func (s *JournalService) GetByISSN(ctx context.Context, issn string) (*dto.Journal, error) {
	journal, err := s.repo.FindByISSN(ctx, strings.TrimSpace(issn))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "journal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load journal")
	}
	out := dto.JournalFromModel(*journal)
	return &out, nil
}

// GetByEISSN returns a journal by its electronic ISSN.
func (s *JournalService) GetByEISSN(ctx context.Context, eissn string) (*dto.Journal, error) {
	journal, err := s.repo.FindByEISSN(ctx, strings.TrimSpace(eissn))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "journal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load journal")
	}
	out := dto.JournalFromModel(*journal)
	return &out, nil
}

// Search returns journals whose title contains the fragment. An empty
// result is not an error.
func (s *JournalService) Search(ctx context.Context, fragment string) ([]dto.Journal, error) {
	journals, err := s.repo.SearchByTitle(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search journals")
	}
	return dto.JournalsFromModels(journals), nil
}

// Create registers a new journal ensuring ISSN uniqueness.
func (s *JournalService) Create(ctx context.Context, req CreateJournalRequest) (*dto.Journal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid journal payload")
	}

	req.ISSN = strings.TrimSpace(req.ISSN)

	exists, err := s.repo.ExistsByISSN(ctx, req.ISSN, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check journal issn")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "journal issn already registered")
	}

	journal := &models.Journal{
		Title: req.Title,
		ISSN:  req.ISSN,
		EISSN: req.EISSN,
	}

	if err := s.repo.Create(ctx, journal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create journal")
	}

	_ = s.cache.Invalidate(ctx, "journals:*")

	out := dto.JournalFromModel(*journal)
	return &out, nil
}

// Update overwrites an existing journal with the full provided state.
func (s *JournalService) Update(ctx context.Context, id string, req UpdateJournalRequest) (*dto.Journal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid journal payload")
	}

	journal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "journal not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load journal")
	}

	req.ISSN = strings.TrimSpace(req.ISSN)

	exists, err := s.repo.ExistsByISSN(ctx, req.ISSN, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check journal issn")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "journal issn already registered")
	}

	journal.Title = req.Title
	journal.ISSN = req.ISSN
	journal.EISSN = req.EISSN

	if err := s.repo.Update(ctx, journal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update journal")
	}

	_ = s.cache.Invalidate(ctx, "journals:*")

	out := dto.JournalFromModel(*journal)
	return &out, nil
}

// Delete removes a journal. Deleting a missing journal succeeds.
func (s *JournalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete journal")
	}
	_ = s.cache.Invalidate(ctx, "journals:*")
	return nil
}
