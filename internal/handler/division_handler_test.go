package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unipub/pubmeta-api/internal/dto"
	"github.com/unipub/pubmeta-api/internal/models"
	"github.com/unipub/pubmeta-api/internal/service"
	appErrors "github.com/unipub/pubmeta-api/pkg/errors"
)

type divisionServiceMock struct {
	listResp     []dto.Division
	getResp      *dto.Division
	getErr       error
	searchResp   []dto.Division
	createResp   *dto.Division
	createErr    error
	updateResp   *dto.Division
	updateErr    error
	deleteErr    error
	lastFilter   models.DivisionFilter
	deleteCalled bool
}

func (m *divisionServiceMock) List(ctx context.Context, filter models.DivisionFilter) ([]dto.Division, *models.Pagination, error) {
	m.lastFilter = filter
	return m.listResp, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(m.listResp)}, nil
}

func (m *divisionServiceMock) Get(ctx context.Context, id string) (*dto.Division, error) {
	return m.getResp, m.getErr
}

func (m *divisionServiceMock) Search(ctx context.Context, fragment string) ([]dto.Division, error) {
	return m.searchResp, nil
}

func (m *divisionServiceMock) Create(ctx context.Context, req service.CreateDivisionRequest) (*dto.Division, error) {
	return m.createResp, m.createErr
}

func (m *divisionServiceMock) Update(ctx context.Context, id string, req service.UpdateDivisionRequest) (*dto.Division, error) {
	return m.updateResp, m.updateErr
}

func (m *divisionServiceMock) Delete(ctx context.Context, id string) error {
	m.deleteCalled = true
	return m.deleteErr
}

func TestDivisionHandlerListFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &divisionServiceMock{listResp: []dto.Division{{ID: "d1", Name: "Databases"}}}
	handler := NewDivisionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/divisions?institute_id=i1&search=data", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "i1", mockSvc.lastFilter.InstituteID)
	assert.Equal(t, "data", mockSvc.lastFilter.Search)
}

func TestDivisionHandlerCreatePreconditionFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &divisionServiceMock{createErr: appErrors.Clone(appErrors.ErrPreconditionFailed, "referenced institute does not exist")}
	handler := NewDivisionHandler(mockSvc)

	payload, _ := json.Marshal(service.CreateDivisionRequest{Name: "Databases", InstituteID: "ghost"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/divisions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestDivisionHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDivisionHandler(&divisionServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/divisions", bytes.NewBufferString(`not json`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDivisionHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &divisionServiceMock{createResp: &dto.Division{ID: "d1", Name: "Databases", InstituteID: "i1"}}
	handler := NewDivisionHandler(mockSvc)

	payload, _ := json.Marshal(service.CreateDivisionRequest{Name: "Databases", InstituteID: "i1"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/divisions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestDivisionHandlerUpdatePreconditionFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &divisionServiceMock{updateErr: appErrors.Clone(appErrors.ErrPreconditionFailed, "referenced institute does not exist")}
	handler := NewDivisionHandler(mockSvc)

	payload, _ := json.Marshal(service.UpdateDivisionRequest{Name: "Databases", InstituteID: "ghost"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/divisions/d1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "d1"}}

	handler.Update(c)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestDivisionHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &divisionServiceMock{}
	handler := NewDivisionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/divisions/d1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "d1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.deleteCalled)
}

func TestDivisionHandlerSearch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &divisionServiceMock{searchResp: []dto.Division{{ID: "d1", Name: "Databases"}}}
	handler := NewDivisionHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/divisions/like/data", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "text", Value: "data"}}

	handler.Search(c)
	require.Equal(t, http.StatusOK, w.Code)
}
