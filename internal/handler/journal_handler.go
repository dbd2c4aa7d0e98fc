package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unipub/pubmeta-api/internal/dto"
	"github.com/unipub/pubmeta-api/internal/models"
	"github.com/unipub/pubmeta-api/internal/service"
	appErrors "github.com/unipub/pubmeta-api/pkg/errors"
	"github.com/unipub/pubmeta-api/pkg/response"
)

type journalService interface {
	List(ctx context.Context, filter models.JournalFilter) ([]dto.Journal, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.Journal, error)
	GetByISSN(ctx context.Context, issn string) (*dto.Journal, error)
	GetByEISSN(ctx context.Context, eissn string) (*dto.Journal, error)
	Search(ctx context.Context, fragment string) ([]dto.Journal, error)
	Create(ctx context.Context, req service.CreateJournalRequest) (*dto.Journal, error)
	Update(ctx context.Context, id string, req service.UpdateJournalRequest) (*dto.Journal, error)
	Delete(ctx context.Context, id string) error
}

type journalExportService interface {
	JournalCatalogue(ctx context.Context, format string) (*service.ExportResult, error)
}

// JournalHandler handles journal endpoints.
type JournalHandler struct {
	service journalService
	exports journalExportService
}

// NewJournalHandler constructs a journal handler. The export service may be
// nil when exports are disabled.
func NewJournalHandler(svc journalService, exports journalExportService) *JournalHandler {
	return &JournalHandler{service: svc, exports: exports}
}

// List godoc
// @Summary List journals
// @Tags Journals
// @Produce json
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /journals [get]
func (h *JournalHandler) List(c *gin.Context) {
	var filter models.JournalFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	journals, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, journals, pagination)
}

// Get godoc
// @Summary Get journal by id
// @Tags Journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 200 {object} response.Envelope
// @Router /journals/{id} [get]
func (h *JournalHandler) Get(c *gin.Context) {
	journal, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, journal, nil)
}

// GetByISSN godoc
// @Summary Get journal by print ISSN
// @Tags Journals
// @Produce json
// @Param issn path string true "Print ISSN"
// @Success 200 {object} response.Envelope
// @Router /journals/issn/{issn} [get]
func (h *JournalHandler) GetByISSN(c *gin.Context) {
	journal, err := h.service.GetByISSN(c.Request.Context(), c.Param("issn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, journal, nil)
}

// GetByEISSN godoc
// @Summary Get journal by electronic ISSN
// @Tags Journals
// @Produce json
// @Param eissn path string true "Electronic ISSN"
// @Success 200 {object} response.Envelope
// @Router /journals/eissn/{eissn} [get]
func (h *JournalHandler) GetByEISSN(c *gin.Context) {
	journal, err := h.service.GetByEISSN(c.Request.Context(), c.Param("eissn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, journal, nil)
}

// Search godoc
// @Summary Search journals by title fragment
// @Tags Journals
// @Produce json
// @Param text path string true "Title fragment"
// @Success 200 {object} response.Envelope
// @Router /journals/like/{text} [get]
func (h *JournalHandler) Search(c *gin.Context) {
	journals, err := h.service.Search(c.Request.Context(), c.Param("text"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, journals, nil)
}

// Export godoc
// @Summary Export the journal catalogue
// @Tags Journals
// @Produce text/csv
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Router /journals/export [get]
func (h *JournalHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	result, err := h.exports.JournalCatalogue(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// Create godoc
// @Summary Register journal
// @Tags Journals
// @Accept json
// @Produce json
// @Param payload body service.CreateJournalRequest true "Journal payload"
// @Success 201 {object} response.Envelope
// @Router /journals [post]
func (h *JournalHandler) Create(c *gin.Context) {
	var req service.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	journal, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, journal)
}

// Update godoc
// @Summary Update journal
// @Tags Journals
// @Accept json
// @Produce json
// @Param id path string true "Journal ID"
// @Param payload body service.UpdateJournalRequest true "Journal payload"
// @Success 200 {object} response.Envelope
// @Router /journals/{id} [put]
func (h *JournalHandler) Update(c *gin.Context) {
	var req service.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	journal, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, journal, nil)
}

// Delete godoc
// @Summary Delete journal
// @Tags Journals
// @Produce json
// @Param id path string true "Journal ID"
// @Success 204
// @Router /journals/{id} [delete]
func (h *JournalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
