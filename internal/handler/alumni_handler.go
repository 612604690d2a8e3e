package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mocalumni/alumni-api/internal/models"
	"github.com/mocalumni/alumni-api/internal/service"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
	"github.com/mocalumni/alumni-api/pkg/response"
)

// AlumniHandler wires the admin CRUD endpoints to the alumni service.
type AlumniHandler struct {
	service *service.AlumniService
}

// NewAlumniHandler creates a new handler.
func NewAlumniHandler(svc *service.AlumniService) *AlumniHandler {
	return &AlumniHandler{service: svc}
}

// Create godoc
// @Summary Add an alumni record
// @Tags Alumni
// @Accept json
// @Produce json
// @Param payload body models.AlumniInput true "Alumni payload"
// @Success 201 {object} models.AlumniRecord
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/alumni [post]
func (h *AlumniHandler) Create(c *gin.Context) {
	var input models.AlumniInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid alumni payload"))
		return
	}

	record, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// Update godoc
// @Summary Update an alumni record
// @Tags Alumni
// @Accept json
// @Produce json
// @Param id path int true "Alumni id"
// @Param payload body models.AlumniInput true "Alumni payload"
// @Success 200 {object} models.AlumniRecord
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/alumni/{id} [put]
func (h *AlumniHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input models.AlumniInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid alumni payload"))
		return
	}

	record, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, record)
}

// Delete godoc
// @Summary Delete an alumni record
// @Tags Alumni
// @Produce json
// @Param id path int true "Alumni id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/alumni/{id} [delete]
func (h *AlumniHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "alumni deleted successfully")
}
