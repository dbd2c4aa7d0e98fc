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

type journalServiceMock struct {
	listResp     []dto.Journal
	listErr      error
	getResp      *dto.Journal
	getErr       error
	searchResp   []dto.Journal
	createResp   *dto.Journal
	createErr    error
	updateResp   *dto.Journal
	updateErr    error
	deleteErr    error
	lastFilter   models.JournalFilter
	deleteCalled bool
}

func (m *journalServiceMock) List(ctx context.Context, filter models.JournalFilter) ([]dto.Journal, *models.Pagination, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, nil, m.listErr
	}
	return m.listResp, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(m.listResp)}, nil
}

func (m *journalServiceMock) Get(ctx context.Context, id string) (*dto.Journal, error) {
	return m.getResp, m.getErr
}

func (m *journalServiceMock) GetByISSN(ctx context.Context, issn string) (*dto.Journal, error) {
	return m.getResp, m.getErr
}

func (m *journalServiceMock) GetByEISSN(ctx context.Context, eissn string) (*dto.Journal, error) {
	return m.getResp, m.getErr
}

func (m *journalServiceMock) Search(ctx context.Context, fragment string) ([]dto.Journal, error) {
	return m.searchResp, nil
}

func (m *journalServiceMock) Create(ctx context.Context, req service.CreateJournalRequest) (*dto.Journal, error) {
	return m.createResp, m.createErr
}

func (m *journalServiceMock) Update(ctx context.Context, id string, req service.UpdateJournalRequest) (*dto.Journal, error) {
	return m.updateResp, m.updateErr
}

func (m *journalServiceMock) Delete(ctx context.Context, id string) error {
	m.deleteCalled = true
	return m.deleteErr
}

type journalExportMock struct {
	result *service.ExportResult
	err    error
}

func (m *journalExportMock) JournalCatalogue(ctx context.Context, format string) (*service.ExportResult, error) {
	return m.result, m.err
}

func TestJournalHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &journalServiceMock{listResp: []dto.Journal{{ID: "j1", Title: "Acta Informatica"}}}
	handler := NewJournalHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/journals?search=acta&page=2&limit=5", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acta", mockSvc.lastFilter.Search)
	assert.Equal(t, 2, mockSvc.lastFilter.Page)
	assert.Equal(t, 5, mockSvc.lastFilter.PageSize)
}

func TestJournalHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &journalServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "journal not found")}
	handler := NewJournalHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/journals/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestJournalHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewJournalHandler(&journalServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/journals", bytes.NewBufferString(`{"title":"broken"`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJournalHandlerCreateEmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewJournalHandler(&journalServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/journals", nil)
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJournalHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &journalServiceMock{createResp: &dto.Journal{ID: "j1", Title: "Acta Informatica", ISSN: "0001-5903"}}
	handler := NewJournalHandler(mockSvc, nil)

	payload, _ := json.Marshal(service.CreateJournalRequest{Title: "Acta Informatica", ISSN: "0001-5903"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/journals", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestJournalHandlerCreateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &journalServiceMock{createErr: appErrors.Clone(appErrors.ErrConflict, "journal issn already registered")}
	handler := NewJournalHandler(mockSvc, nil)

	payload, _ := json.Marshal(service.CreateJournalRequest{Title: "Acta Informatica", ISSN: "0001-5903"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/journals", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestJournalHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &journalServiceMock{}
	handler := NewJournalHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/journals/j1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "j1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, mockSvc.deleteCalled)
}

func TestJournalHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exports := &journalExportMock{result: &service.ExportResult{
		Content:     []byte("Title,ISSN,eISSN\n"),
		ContentType: "text/csv",
		Filename:    "journals.csv",
	}}
	handler := NewJournalHandler(&journalServiceMock{}, exports)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/journals/export?format=csv", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "journals.csv")
}

func TestJournalHandlerExportDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewJournalHandler(&journalServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/journals/export", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
