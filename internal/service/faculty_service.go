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

type facultyRepository interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]models.Faculty, int, error)
	FindByID(ctx context.Context, id string) (*models.Faculty, error)
	SearchByName(ctx context.Context, fragment string) ([]models.Faculty, error)
	Create(ctx context.Context, faculty *models.Faculty) error
	Update(ctx context.Context, faculty *models.Faculty) error
	Delete(ctx context.Context, id string) error
}

// CreateFacultyRequest captures fields for creating faculties.
type CreateFacultyRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateFacultyRequest carries the full faculty state for updates.
type UpdateFacultyRequest struct {
	Name string `json:"name" validate:"required"`
}

// FacultyService handles faculty workflows.
type FacultyService struct {
	repo      facultyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService creates a new faculty service.
func NewFacultyService(repo facultyRepository, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{repo: repo, validator: validate, logger: logger}
}

// List returns paginated faculties.
func (s *FacultyService) List(ctx context.Context, filter models.FacultyFilter) ([]dto.Faculty, *models.Pagination, error) {
	faculties, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculties")
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
	return dto.FacultiesFromModels(faculties), pagination, nil
}

// Get returns a faculty by identifier.
func (s *FacultyService) Get(ctx context.Context, id string) (*dto.Faculty, error) {
	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	out := dto.FacultyFromModel(*faculty)
	return &out, nil
}

// Search returns faculties whose name contains the fragment.
func (s *FacultyService) Search(ctx context.Context, fragment string) ([]dto.Faculty, error) {
	faculties, err := s.repo.SearchByName(ctx, strings.TrimSpace(fragment))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search faculties")
	}
	return dto.FacultiesFromModels(faculties), nil
}

// Create adds a new faculty.
func (s *FacultyService) Create(ctx context.Context, req CreateFacultyRequest) (*dto.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	faculty := &models.Faculty{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Create(ctx, faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}

	out := dto.FacultyFromModel(*faculty)
	return &out, nil
}

// Update overwrites an existing faculty with the full provided state.
func (s *FacultyService) Update(ctx context.Context, id string, req UpdateFacultyRequest) (*dto.Faculty, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}

	faculty.Name = strings.TrimSpace(req.Name)

	if err := s.repo.Update(ctx, faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update faculty")
	}

	out := dto.FacultyFromModel(*faculty)
	return &out, nil
}

// Delete removes a faculty. Deleting a missing faculty succeeds.
func (s *FacultyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete faculty")
	}
	return nil
}
