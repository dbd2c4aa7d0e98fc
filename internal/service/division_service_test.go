package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unipub/pubmeta-api/internal/models"
	appErrors "github.com/unipub/pubmeta-api/pkg/errors"
)

type mockDivisionRepo struct {
	items          map[string]*models.Division
	instituteNames map[string]string
	listResult     []models.Division
	listTotal      int
	deleted        []string
}

func (m *mockDivisionRepo) List(ctx context.Context, filter models.DivisionFilter) ([]models.Division, int, error) {
	return m.listResult, m.listTotal, nil
}

func (m *mockDivisionRepo) FindByID(ctx context.Context, id string) (*models.Division, error) {
	if division, ok := m.items[id]; ok {
		cp := *division
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDivisionRepo) FindDetailByID(ctx context.Context, id string) (*models.DivisionDetail, error) {
	if division, ok := m.items[id]; ok {
		return &models.DivisionDetail{Division: *division, InstituteName: m.instituteNames[division.InstituteID]}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDivisionRepo) ListByInstitute(ctx context.Context, instituteID string) ([]models.Division, error) {
	var out []models.Division
	for _, division := range m.items {
		if division.InstituteID == instituteID {
			out = append(out, *division)
		}
	}
	return out, nil
}

func (m *mockDivisionRepo) SearchByName(ctx context.Context, fragment string) ([]models.Division, error) {
	return m.listResult, nil
}

func (m *mockDivisionRepo) Create(ctx context.Context, division *models.Division) error {
	if m.items == nil {
		m.items = make(map[string]*models.Division)
	}
	if division.ID == "" {
		division.ID = "generated"
	}
	cp := *division
	m.items[division.ID] = &cp
	return nil
}

func (m *mockDivisionRepo) Update(ctx context.Context, division *models.Division) error {
	cp := *division
	m.items[division.ID] = &cp
	return nil
}

func (m *mockDivisionRepo) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

type mockInstituteResolver struct {
	known map[string]bool
	err   error
}

func (m *mockInstituteResolver) Exists(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.known[id], nil
}

func TestDivisionServiceCreate(t *testing.T) {
	repo := &mockDivisionRepo{}
	resolver := &mockInstituteResolver{known: map[string]bool{"i1": true}}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	division, err := service.Create(context.Background(), CreateDivisionRequest{
		Name:        "Databases",
		InstituteID: "i1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Databases", division.Name)
	assert.Equal(t, "i1", division.InstituteID)
	assert.Len(t, repo.items, 1)
}

func TestDivisionServiceCreateUnknownInstitute(t *testing.T) {
	repo := &mockDivisionRepo{}
	resolver := &mockInstituteResolver{known: map[string]bool{}}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateDivisionRequest{
		Name:        "Databases",
		InstituteID: "ghost",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusPreconditionFailed, appErrors.FromError(err).Status)
	assert.Empty(t, repo.items)
}

func TestDivisionServiceCreateMissingFields(t *testing.T) {
	repo := &mockDivisionRepo{}
	resolver := &mockInstituteResolver{known: map[string]bool{"i1": true}}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	_, err := service.Create(context.Background(), CreateDivisionRequest{Name: "No Institute"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Empty(t, repo.items)
}

func TestDivisionServiceUpdateUnknownInstitute(t *testing.T) {
	repo := &mockDivisionRepo{items: map[string]*models.Division{
		"d1": {ID: "d1", Name: "Databases", InstituteID: "i1"},
	}}
	resolver := &mockInstituteResolver{known: map[string]bool{"i1": true}}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	_, err := service.Update(context.Background(), "d1", UpdateDivisionRequest{
		Name:        "Databases",
		InstituteID: "ghost",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusPreconditionFailed, appErrors.FromError(err).Status)
	assert.Equal(t, "i1", repo.items["d1"].InstituteID)
}

func TestDivisionServiceUpdate(t *testing.T) {
	repo := &mockDivisionRepo{items: map[string]*models.Division{
		"d1": {ID: "d1", Name: "Databases", InstituteID: "i1"},
	}}
	resolver := &mockInstituteResolver{known: map[string]bool{"i1": true, "i2": true}}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	division, err := service.Update(context.Background(), "d1", UpdateDivisionRequest{
		Name:        "Data Engineering",
		InstituteID: "i2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Data Engineering", division.Name)
	assert.Equal(t, "i2", repo.items["d1"].InstituteID)
}

func TestDivisionServiceGetResolvesInstituteName(t *testing.T) {
	repo := &mockDivisionRepo{
		items:          map[string]*models.Division{"d1": {ID: "d1", Name: "Databases", InstituteID: "i1"}},
		instituteNames: map[string]string{"i1": "Institute of Informatics"},
	}
	resolver := &mockInstituteResolver{}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	division, err := service.Get(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "Institute of Informatics", division.InstituteName)
}

func TestDivisionServiceGetNotFound(t *testing.T) {
	repo := &mockDivisionRepo{}
	resolver := &mockInstituteResolver{}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	_, err := service.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestDivisionServiceDeleteIdempotent(t *testing.T) {
	repo := &mockDivisionRepo{items: map[string]*models.Division{"d1": {ID: "d1"}}}
	resolver := &mockInstituteResolver{}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	require.NoError(t, service.Delete(context.Background(), "d1"))
	require.NoError(t, service.Delete(context.Background(), "d1"))
	assert.Equal(t, []string{"d1", "d1"}, repo.deleted)
}

func TestDivisionServiceListByInstitute(t *testing.T) {
	repo := &mockDivisionRepo{items: map[string]*models.Division{
		"d1": {ID: "d1", Name: "Databases", InstituteID: "i1"},
		"d2": {ID: "d2", Name: "Networks", InstituteID: "i2"},
	}}
	resolver := &mockInstituteResolver{}
	service := NewDivisionService(repo, resolver, validator.New(), zap.NewNop())

	divisions, err := service.ListByInstitute(context.Background(), "i1")
	require.NoError(t, err)
	require.Len(t, divisions, 1)
	assert.Equal(t, "d1", divisions[0].ID)
}
