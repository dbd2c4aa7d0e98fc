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

type divisionService interface {
	List(ctx context.Context, filter models.DivisionFilter) ([]dto.Division, *models.Pagination, error)
	Get(ctx context.Context, id string) (*dto.Division, error)
	Search(ctx context.Context, fragment string) ([]dto.Division, error)
	Create(ctx context.Context, req service.CreateDivisionRequest) (*dto.Division, error)
	Update(ctx context.Context, id string, req service.UpdateDivisionRequest) (*dto.Division, error)
	Delete(ctx context.Context, id string) error
}

// DivisionHandler handles division endpoints.
type DivisionHandler struct {
	service divisionService
}

// NewDivisionHandler constructs a division handler.
func NewDivisionHandler(svc divisionService) *DivisionHandler {
	return &DivisionHandler{service: svc}
}

// List godoc
// @Summary List divisions
// @Tags Divisions
// @Produce json
// @Param institute_id query string false "Filter by institute"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /divisions [get]
func (h *DivisionHandler) List(c *gin.Context) {
	var filter models.DivisionFilter
	filter.InstituteID = c.Query("institute_id")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	divisions, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, divisions, pagination)
}

// Get godoc
// @Summary Get division by id
// @Tags Divisions
// @Produce json
// @Param id path string true "Division ID"
// @Success 200 {object} response.Envelope
// @Router /divisions/{id} [get]
func (h *DivisionHandler) Get(c *gin.Context) {
	division, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, division, nil)
}

// Search godoc
// @Summary Search divisions by name fragment
// @Tags Divisions
// @Produce json
// @Param text path string true "Name fragment"
// @Success 200 {object} response.Envelope
// @Router /divisions/like/{text} [get]
func (h *DivisionHandler) Search(c *gin.Context) {
	divisions, err := h.service.Search(c.Request.Context(), c.Param("text"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, divisions, nil)
}

// Create godoc
// @Summary Create division
// @Tags Divisions
// @Accept json
// @Produce json
// @Param payload body service.CreateDivisionRequest true "Division payload"
// @Success 201 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /divisions [post]
func (h *DivisionHandler) Create(c *gin.Context) {
	var req service.CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	division, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, division)
}

// Update godoc
// @Summary Update division
// @Tags Divisions
// @Accept json
// @Produce json
// @Param id path string true "Division ID"
// @Param payload body service.UpdateDivisionRequest true "Division payload"
// @Success 200 {object} response.Envelope
// @Router /divisions/{id} [put]
func (h *DivisionHandler) Update(c *gin.Context) {
	var req service.UpdateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	division, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, division, nil)
}

// Delete godoc
// @Summary Delete division
// @Tags Divisions
// @Produce json
// @Param id path string true "Division ID"
// @Success 204
// @Router /divisions/{id} [delete]
func (h *DivisionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
