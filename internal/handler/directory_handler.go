package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mocalumni/alumni-api/internal/models"
	"github.com/mocalumni/alumni-api/internal/service"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
	"github.com/mocalumni/alumni-api/pkg/response"
)

// DirectoryHandler serves the public read surface of the directory.
type DirectoryHandler struct {
	service *service.DirectoryService
}

// NewDirectoryHandler creates a new handler.
func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: svc}
}

// List godoc
// @Summary Search the alumni directory
// @Tags Directory
// @Produce json
// @Param search query string false "Substring match on name, email, college and major"
// @Param year query int false "Exact graduation year"
// @Param college query string false "Substring match on current college"
// @Param major query string false "Substring match on college major"
// @Param sortBy query string false "Sort field" default(full_name)
// @Param sortOrder query string false "asc or desc" default(asc)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/alumni [get]
func (h *DirectoryHandler) List(c *gin.Context) {
	filter := models.AlumniFilter{
		Search:    c.Query("search"),
		College:   c.Query("college"),
		Major:     c.Query("major"),
		SortBy:    c.DefaultQuery("sortBy", "full_name"),
		SortOrder: c.DefaultQuery("sortOrder", "asc"),
	}

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be numeric"))
			return
		}
		filter.Year = &year
	}

	records, err := h.service.Query(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"alumni": records, "count": len(records)})
}

// Get godoc
// @Summary Fetch a single alumni record
// @Tags Directory
// @Produce json
// @Param id path int true "Alumni id"
// @Success 200 {object} models.AlumniRecord
// @Failure 404 {object} map[string]string
// @Router /api/alumni/{id} [get]
func (h *DirectoryHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, record)
}

// Filters godoc
// @Summary List distinct filter options
// @Tags Directory
// @Produce json
// @Success 200 {object} models.FilterOptions
// @Failure 500 {object} map[string]string
// @Router /api/filters [get]
func (h *DirectoryHandler) Filters(c *gin.Context) {
	options, err := h.service.FilterOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, options)
}
