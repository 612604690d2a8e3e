package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mocalumni/alumni-api/internal/models"
	"github.com/mocalumni/alumni-api/internal/service"
)

type stubSubmissionRepo struct {
	subs   []models.PendingSubmission
	nextID int64
}

func (s *stubSubmissionRepo) Create(_ context.Context, sub *models.PendingSubmission) error {
	s.nextID++
	sub.ID = s.nextID
	sub.SubmittedAt = time.Now().UTC()
	s.subs = append(s.subs, *sub)
	return nil
}

func (s *stubSubmissionRepo) List(_ context.Context) ([]models.PendingSubmission, error) {
	return s.subs, nil
}

func (s *stubSubmissionRepo) Delete(_ context.Context, id int64) error {
	for i, sub := range s.subs {
		if sub.ID == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (s *stubSubmissionRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, sub := range s.subs {
		if sub.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubSubmissionRepo) Approve(ctx context.Context, id int64) (*models.AlumniRecord, error) {
	for _, sub := range s.subs {
		if sub.ID == id {
			if err := s.Delete(ctx, id); err != nil {
				return nil, err
			}
			return &models.AlumniRecord{ID: 100 + sub.ID, FullName: sub.FullName, Email: sub.Email, YearGraduated: sub.YearGraduated, CurrentCollege: sub.CurrentCollege, CollegeMajor: sub.CollegeMajor}, nil
		}
	}
	return nil, sql.ErrNoRows
}

type stubEmailChecker struct{}

func (stubEmailChecker) EmailExists(context.Context, string, int64) (bool, error) {
	return false, nil
}

func newSubmissionRouter(repo *stubSubmissionRepo) *gin.Engine {
	svc := service.NewSubmissionService(repo, stubEmailChecker{}, nil, service.NewValidator(), zap.NewNop())
	h := NewSubmissionHandler(svc)
	r := gin.New()
	r.POST("/api/submit-alumni", h.Submit)
	r.GET("/api/pending-submissions", h.ListPending)
	r.POST("/api/approve-submission/:id", h.Approve)
	r.DELETE("/api/reject-submission/:id", h.Reject)
	return r
}

const submissionPayload = `{"full_name":"Sarah Johnson","email":"sarah.j@email.com","year_graduated":2022,"current_college":"Stanford University","college_major":"Computer Science"}`

func TestSubmissionHandlerSubmit(t *testing.T) {
	repo := &stubSubmissionRepo{}
	r := newSubmissionRouter(repo)

	w := performRequest(r, http.MethodPost, "/api/submit-alumni", submissionPayload)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["submission_id"])
	require.Len(t, repo.subs, 1)
	assert.Equal(t, "Sarah Johnson", repo.subs[0].FullName)
}

func TestSubmissionHandlerSubmitInvalidPayload(t *testing.T) {
	r := newSubmissionRouter(&stubSubmissionRepo{})

	w := performRequest(r, http.MethodPost, "/api/submit-alumni", `{"email":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["error"])
}

func TestSubmissionHandlerSubmitDuplicate(t *testing.T) {
	r := newSubmissionRouter(&stubSubmissionRepo{})

	w := performRequest(r, http.MethodPost, "/api/submit-alumni", submissionPayload)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(r, http.MethodPost, "/api/submit-alumni", submissionPayload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "email already exists", body["error"])
}

func TestSubmissionHandlerListPending(t *testing.T) {
	repo := &stubSubmissionRepo{}
	r := newSubmissionRouter(repo)

	performRequest(r, http.MethodPost, "/api/submit-alumni", submissionPayload)
	w := performRequest(r, http.MethodGet, "/api/pending-submissions", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Len(t, body["submissions"], 1)
}

func TestSubmissionHandlerApprove(t *testing.T) {
	repo := &stubSubmissionRepo{}
	r := newSubmissionRouter(repo)

	performRequest(r, http.MethodPost, "/api/submit-alumni", submissionPayload)
	w := performRequest(r, http.MethodPost, "/api/approve-submission/1", "")

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "sarah.j@email.com", body["email"])
	assert.Empty(t, repo.subs)
}

func TestSubmissionHandlerApproveMissing(t *testing.T) {
	r := newSubmissionRouter(&stubSubmissionRepo{})

	w := performRequest(r, http.MethodPost, "/api/approve-submission/42", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "submission not found", body["error"])
}

func TestSubmissionHandlerReject(t *testing.T) {
	repo := &stubSubmissionRepo{}
	r := newSubmissionRouter(repo)

	performRequest(r, http.MethodPost, "/api/submit-alumni", submissionPayload)
	w := performRequest(r, http.MethodDelete, "/api/reject-submission/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "submission rejected", body["message"])
	assert.Empty(t, repo.subs)

	w = performRequest(r, http.MethodDelete, "/api/reject-submission/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
