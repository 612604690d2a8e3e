package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mocalumni/alumni-api/internal/models"
	"github.com/mocalumni/alumni-api/internal/service"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
	"github.com/mocalumni/alumni-api/pkg/response"
)

// SubmissionHandler wires the submission lifecycle endpoints.
type SubmissionHandler struct {
	service *service.SubmissionService
}

// NewSubmissionHandler creates a new handler.
func NewSubmissionHandler(svc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: svc}
}

// Submit godoc
// @Summary Submit a directory entry for review
// @Description Publicly callable; the entry waits in the review queue until an admin approves or rejects it
// @Tags Submissions
// @Accept json
// @Produce json
// @Param payload body models.AlumniInput true "Submission payload"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} map[string]string
// @Router /api/submit-alumni [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var input models.AlumniInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid submission payload"))
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"submission_id": sub.ID})
}

// ListPending godoc
// @Summary List submissions awaiting review
// @Tags Submissions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /api/pending-submissions [get]
func (h *SubmissionHandler) ListPending(c *gin.Context) {
	subs, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"submissions": subs, "count": len(subs)})
}

// Approve godoc
// @Summary Approve a pending submission
// @Description Converts the submission into a published alumni record
// @Tags Submissions
// @Produce json
// @Param id path int true "Submission id"
// @Success 201 {object} models.AlumniRecord
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/approve-submission/{id} [post]
func (h *SubmissionHandler) Approve(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	record, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// Reject godoc
// @Summary Reject a pending submission
// @Tags Submissions
// @Produce json
// @Param id path int true "Submission id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/reject-submission/{id} [delete]
func (h *SubmissionHandler) Reject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Reject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "submission rejected")
}
