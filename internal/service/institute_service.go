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

type instituteRepository interface {
	List(ctx context.Context, filter models.InstituteFilter) ([]models.Institute, int, error)
	FindByID(ctx context.Context, id string) (*models.Institute, error)
	FindDetailByID(ctx context.Context, id string) (*models.InstituteDetail, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]models.Institute, error)
	SearchByName(ctx context.Context, fragment string) ([]models.Institute, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, institute *models.Institute) error
	Update(ctx context.Context, institute *models.Institute) error
	Delete(ctx context.Context, id string) error
}

type facultyResolver interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// CreateInstituteRequest captures fields for creating institutes.
type CreateInstituteRequest struct {
	Name      string `json:"name" validate:"required"`
	FacultyID string `json:"faculty_id" validate:"required"`
}

// UpdateInstituteRequest carries the full institute state for updates.
type UpdateInstituteRequest struct {
	Name      string `json:"name" validate:"required"`
	FacultyID string `json:"faculty_id" validate:"required"`
}

// InstituteService handles institute workflows. An institute cannot exist
// without a resolvable faculty.
type InstituteService struct {
	repo      instituteRepository
	faculties facultyResolver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewInstituteService creates a new institute service.
func NewInstituteService(repo instituteRepository, faculties facultyResolver, validate *validator.Validate, logger *zap.Logger) *InstituteService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstituteService{repo: repo, faculties: faculties, validator: validate, logger: logger}
}

// List returns paginated institutes.
func (s *InstituteService) List(ctx context.Context, filter models.InstituteFilter) ([]dto.Institute, *models.Pagination, error) {
	institutes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list institutes")
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

	items := make([]dto.Institute, 0, len(institutes))
	for _, m := range institutes {
		items = append(items, dto.InstituteFromModel(m))
	}
	return items, pagination, nil
}

// Get returns an institute by identifier with its faculty name resolved.
func (s *InstituteService) Get(ctx context.Context, id string) (*dto.Institute, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "institute not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load institute")
	}
	out := dto.InstituteFromDetail(*detail)
	return &out, nil
}

// ListByFaculty returns institutes scoped to the owning faculty. An
// unknown faculty yields an empty list, not an error.
func (s *InstituteService) ListByFaculty(ctx context.Context, facultyID string) ([]dto.Institute, error) {
	institutes, err := s.repo.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list institutes")
	}
	items := make([]dto.Institute, 0, len(institutes))
	for _, m := range institutes {
		items = append(items, dto.InstituteFromModel(m))
	}
	return items, nil
}

// Search returns institutes whose name contains the fragment.
func (s *InstituteService) Search(ctx context.Context, fragment string) ([]dto.Institute, error) {
	institutes, err := s.repo.SearchByName(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search institutes")
	}
	items := make([]dto.Institute, 0, len(institutes))
	for _, m := range institutes {
		items = append(items, dto.InstituteFromModel(m))
	}
	return items, nil
}

// Create adds a new institute after resolving the owning faculty.
func (s *InstituteService) Create(ctx context.Context, req CreateInstituteRequest) (*dto.Institute, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid institute payload")
	}

	ok, err := s.faculties.Exists(ctx, req.FacultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve faculty")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "referenced faculty does not exist")
	}

	institute := &models.Institute{
		Name:      strings.TrimSpace(req.Name),
		FacultyID: req.FacultyID,
	}
	if err := s.repo.Create(ctx, institute); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create institute")
	}

	out := dto.InstituteFromModel(*institute)
	return &out, nil
}

// Update overwrites an existing institute with the full provided state.
// A changed faculty reference must resolve.
func (s *InstituteService) Update(ctx context.Context, id string, req UpdateInstituteRequest) (*dto.Institute, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid institute payload")
	}

	institute, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "institute not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load institute")
	}

	ok, err := s.faculties.Exists(ctx, req.FacultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve faculty")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "referenced faculty does not exist")
	}

	institute.Name = strings.TrimSpace(req.Name)
	institute.FacultyID = req.FacultyID

	if err := s.repo.Update(ctx, institute); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update institute")
	}

	out := dto.InstituteFromModel(*institute)
	return &out, nil
}

// Delete removes an institute. Deleting a missing institute succeeds.
func (s *InstituteService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete institute")
	}
	return nil
}
