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

type publicationService interface {
	List(ctx context.Context, filter models.PublicationFilter) ([]dto.Publication, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.Publication, error)
	Search(ctx context.Context, fragment string) ([]dto.Publication, error)
	Create(ctx context.Context, req service.CreatePublicationRequest) (*dto.Publication, error)
	Update(ctx context.Context, id string, req service.UpdatePublicationRequest) (*dto.Publication, error)
	Delete(ctx context.Context, id string) error
}

// PublicationHandler handles publication endpoints.
type PublicationHandler struct {
	service publicationService
}

// NewPublicationHandler constructs a publication handler.
func NewPublicationHandler(svc publicationService) *PublicationHandler {
	return &PublicationHandler{service: svc}
}

// List godoc
// @Summary List publications
// @Tags Publications
// @Produce json
// @Param journal_id query string false "Filter by journal"
// @Param division_id query string false "Filter by division"
// @Param year query int false "Filter by year"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /publications [get]
func (h *PublicationHandler) List(c *gin.Context) {
	var filter models.PublicationFilter
	filter.JournalID = c.Query("journal_id")
	filter.DivisionID = c.Query("division_id")
	if year, err := strconv.Atoi(c.Query("year")); err == nil {
		filter.Year = year
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	publications, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, publications, pagination)
}

// Get godoc
// @Summary Get publication by id
// @Tags Publications
// @Produce json
// @Param id path string true "Publication ID"
// @Success 200 {object} response.Envelope
// @Router /publications/{id} [get]
func (h *PublicationHandler) Get(c *gin.Context) {
	publication, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, publication, nil)
}

// Search godoc
// @Summary Search publications by title fragment
// @Tags Publications
// @Produce json
// @Param text path string true "Title fragment"
// @Success 200 {object} response.Envelope
// @Router /publications/like/{text} [get]
func (h *PublicationHandler) Search(c *gin.Context) {
	publications, err := h.service.Search(c.Request.Context(), c.Param("text"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, publications, nil)
}

// Create godoc
// @Summary Register publication
// @Tags Publications
// @Accept json
// @Produce json
// @Param payload body service.CreatePublicationRequest true "Publication payload"
// @Success 201 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /publications [post]
func (h *PublicationHandler) Create(c *gin.Context) {
	var req service.CreatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	publication, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, publication)
}

// Update godoc
// @Summary Update publication
// @Tags Publications
// @Accept json
// @Produce json
// @Param id path string true "Publication ID"
// @Param payload body service.UpdatePublicationRequest true "Publication payload"
// @Success 200 {object} response.Envelope
// @Router /publications/{id} [put]
func (h *PublicationHandler) Update(c *gin.Context) {
	var req service.UpdatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	publication, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, publication, nil)
}

// Delete godoc
// @Summary Delete publication
// @Tags Publications
// @Produce json
// @Param id path string true "Publication ID"
// @Success 204
// @Router /publications/{id} [delete]
func (h *PublicationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
