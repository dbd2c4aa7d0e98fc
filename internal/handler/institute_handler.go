package handler

import (
	"context"
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

type instituteService interface {
	List(ctx context.Context, filter models.InstituteFilter) ([]dto.Institute, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.Institute, error)
	Search(ctx context.Context, fragment string) ([]dto.Institute, error)
	Create(ctx context.Context, req service.CreateInstituteRequest) (*dto.Institute, error)
	Update(ctx context.Context, id string, req service.UpdateInstituteRequest) (*dto.Institute, error)
	Delete(ctx context.Context, id string) error
}

type instituteDivisionService interface {
	ListByInstitute(ctx context.Context, instituteID string) ([]dto.Division, error)
}

// InstituteHandler handles institute endpoints.
type InstituteHandler struct {
	service   instituteService
	divisions instituteDivisionService
}

// NewInstituteHandler constructs an institute handler.
func NewInstituteHandler(svc instituteService, divisions instituteDivisionService) *InstituteHandler {
	return &InstituteHandler{service: svc, divisions: divisions}
}

// List godoc
// @Summary List institutes
// @Tags Institutes
// @Produce json
// @Param faculty_id query string false "Filter by faculty"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /institutes [get]
func (h *InstituteHandler) List(c *gin.Context) {
	var filter models.InstituteFilter
	filter.FacultyID = c.Query("faculty_id")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	institutes, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, institutes, pagination)
}

// Get godoc
// @Summary Get institute by id
// @Tags Institutes
// @Produce json
// @Param id path string true "Institute ID"
// @Success 200 {object} response.Envelope
// @Router /institutes/{id} [get]
func (h *InstituteHandler) Get(c *gin.Context) {
	institute, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, institute, nil)
}

// Search godoc
// @Summary Search institutes by name fragment
// @Tags Institutes
// @Produce json
// @Param text path string true "Name fragment"
// @Success 200 {object} response.Envelope
// @Router /institutes/like/{text} [get]
func (h *InstituteHandler) Search(c *gin.Context) {
	institutes, err := h.service.Search(c.Request.Context(), c.Param("text"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, institutes, nil)
}

// ListDivisions godoc
// @Summary List divisions in an institute
// @Tags Institutes
// @Produce json
// @Param id path string true "Institute ID"
// @Success 200 {object} response.Envelope
// @Router /institutes/{id}/divisions [get]
func (h *InstituteHandler) ListDivisions(c *gin.Context) {
	divisions, err := h.divisions.ListByInstitute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, divisions, nil)
}

// Create godoc
// @Summary Create institute
// @Tags Institutes
// @Accept json
// @Produce json
// @Param payload body service.CreateInstituteRequest true "Institute payload"
// @Success 201 {object} response.Envelope
// @Router /institutes [post]
func (h *InstituteHandler) Create(c *gin.Context) {
	var req service.CreateInstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	institute, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, institute)
}

// Update godoc
// @Summary Update institute
// @Tags Institutes
// @Accept json
// @Produce json
// @Param id path string true "Institute ID"
// @Param payload body service.UpdateInstituteRequest true "Institute payload"
// @Success 200 {object} response.Envelope
// @Router /institutes/{id} [put]
func (h *InstituteHandler) Update(c *gin.Context) {
	var req service.UpdateInstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	institute, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, institute, nil)
}

// Delete godoc
// @Summary Delete institute
// @Tags Institutes
// @Produce json
// @Param id path string true "Institute ID"
// @Success 204
// @Router /institutes/{id} [delete]
func (h *InstituteHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
