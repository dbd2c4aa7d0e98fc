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

type facultyService interface {
	List(ctx context.Context, filter models.FacultyFilter) ([]dto.Faculty, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.Faculty, error)
	Search(ctx context.Context, fragment string) ([]dto.Faculty, error)
	Create(ctx context.Context, req service.CreateFacultyRequest) (*dto.Faculty, error)
	Update(ctx context.Context, id string, req service.UpdateFacultyRequest) (*dto.Faculty, error)
	Delete(ctx context.Context, id string) error
}

type facultyInstituteService interface {
	ListByFaculty(ctx context.Context, facultyID string) ([]dto.Institute, error)
}

// FacultyHandler handles faculty endpoints.
type FacultyHandler struct {
	service    facultyService
	institutes facultyInstituteService
}

// NewFacultyHandler constructs a faculty handler.
func NewFacultyHandler(svc facultyService, institutes facultyInstituteService) *FacultyHandler {
	return &FacultyHandler{service: svc, institutes: institutes}
}

// List godoc
// @Summary List faculties
// @Tags Faculties
// @Produce json
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /faculties [get]
func (h *FacultyHandler) List(c *gin.Context) {
	var filter models.FacultyFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	faculties, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculties, pagination)
}

// Get godoc
// @Summary Get faculty by id
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /faculties/{id} [get]
func (h *FacultyHandler) Get(c *gin.Context) {
	faculty, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, nil)
}

// Search godoc
// @Summary Search faculties by name fragment
// @Tags Faculties
// @Produce json
// @Param text path string true "Name fragment"
// @Success 200 {object} response.Envelope
// @Router /faculties/like/{text} [get]
func (h *FacultyHandler) Search(c *gin.Context) {
	faculties, err := h.service.Search(c.Request.Context(), c.Param("text"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculties, nil)
}

// ListInstitutes godoc
// @Summary List institutes in a faculty
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /faculties/{id}/institutes [get]
func (h *FacultyHandler) ListInstitutes(c *gin.Context) {
	institutes, err := h.institutes.ListByFaculty(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, institutes, nil)
}

// Create godoc
// @Summary Create faculty
// @Tags Faculties
// @Accept json
// @Produce json
// @Param payload body service.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Router /faculties [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req service.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	faculty, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, faculty)
}

// Update godoc
// @Summary Update faculty
// @Tags Faculties
// @Accept json
// @Produce json
// @Param id path string true "Faculty ID"
// @Param payload body service.UpdateFacultyRequest true "Faculty payload"
// @Success 200 {object} response.Envelope
// @Router /faculties/{id} [put]
func (h *FacultyHandler) Update(c *gin.Context) {
	var req service.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	faculty, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, nil)
}

// Delete godoc
// @Summary Delete faculty
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 204
// @Router /faculties/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
