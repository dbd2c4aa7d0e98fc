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

type divisionRepository interface {
	List(ctx context.Context, filter models.DivisionFilter) ([]models.Division, int, error)
	FindByID(ctx context.Context, id string) (*models.Division, error)
	FindDetailByID(ctx context.Context, id string) (*models.DivisionDetail, error)
	ListByInstitute(ctx context.Context, instituteID string) ([]models.Division, error)
	SearchByName(ctx context.Context, fragment string) ([]models.Division, error)
	Create(ctx context.Context, division *models.Division) error
	Update(ctx context.Context, division *models.Division) error
	Delete(ctx context.Context, id string) error
}

type instituteResolver interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// CreateDivisionRequest captures fields for creating divisions.
type CreateDivisionRequest struct {
	Name        string `json:"name" validate:"required"`
	InstituteID string `json:"institute_id" validate:"required"`
}

// UpdateDivisionRequest carries the full division state for updates.
type UpdateDivisionRequest struct {
	Name        string `json:"name" validate:"required"`
	InstituteID string `json:"institute_id" validate:"required"`
}

// DivisionService handles division workflows. A division cannot exist
// without a resolvable institute.
type DivisionService struct {
	repo       divisionRepository
	institutes instituteResolver
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewDivisionService creates a new division service.
func NewDivisionService(repo divisionRepository, institutes instituteResolver, validate *validator.Validate, logger *zap.Logger) *DivisionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DivisionService{repo: repo, institutes: institutes, validator: validate, logger: logger}
}

// List returns paginated divisions.
func (s *DivisionService) List(ctx context.Context, filter models.DivisionFilter) ([]dto.Division, *models.Pagination, error) {
	divisions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list divisions")
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
	return dto.DivisionsFromModels(divisions), pagination, nil
}

// Get returns a division by identifier with its institute name resolved.
func (s *DivisionService) Get(ctx context.Context, id string) (*dto.Division, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "division not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load division")
	}
	out := dto.DivisionFromDetail(*detail)
	return &out, nil
}

// ListByInstitute returns divisions scoped to the owning institute. An
// institute without divisions yields an empty list.
func (s *DivisionService) ListByInstitute(ctx context.Context, instituteID string) ([]dto.Division, error) {
	divisions, err := s.repo.ListByInstitute(ctx, instituteID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list divisions")
	}
	return dto.DivisionsFromModels(divisions), nil
}

// Search returns divisions whose name contains the fragment.
func (s *DivisionService) Search(ctx context.Context, fragment string) ([]dto.Division, error) {
	divisions, err := s.repo.SearchByName(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search divisions")
	}
	return dto.DivisionsFromModels(divisions), nil
}

// Create adds a new division after resolving the owning institute. The
// request fails before any row is written when the institute is unknown.
func (s *DivisionService) Create(ctx context.Context, req CreateDivisionRequest) (*dto.Division, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid division payload")
	}

	ok, err := s.institutes.Exists(ctx, req.InstituteID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve institute")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "referenced institute does not exist")
	}

	division := &models.Division{
		Name:        strings.TrimSpace(req.Name),
		InstituteID: req.InstituteID,
	}
	if err := s.repo.Create(ctx, division); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create division")
	}

	out := dto.DivisionFromModel(*division)
	return &out, nil
}

// Update overwrites an existing division with the full provided state.
// A changed institute reference must resolve.
func (s *DivisionService) Update(ctx context.Context, id string, req UpdateDivisionRequest) (*dto.Division, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid division payload")
	}

	division, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "division not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load division")
	}

	ok, err := s.institutes.Exists(ctx, req.InstituteID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve institute")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "referenced institute does not exist")
	}

	division.Name = strings.TrimSpace(req.Name)
	division.InstituteID = req.InstituteID

	if err := s.repo.Update(ctx, division); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update division")
	}

	out := dto.DivisionFromModel(*division)
	return &out, nil
}

// Delete removes a division. Deleting a missing division succeeds.
func (s *DivisionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete division")
	}
	return nil
}
