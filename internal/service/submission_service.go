package service

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

type submissionRepository interface {
	Create(ctx context.Context, sub *models.PendingSubmission) error
	List(ctx context.Context) ([]models.PendingSubmission, error)
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string) (bool, error)
	Approve(ctx context.Context, id int64) (*models.AlumniRecord, error)
}

type alumniEmailChecker interface {
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}

// SubmissionService owns the pending-submission lifecycle:
// pending -> approved (converted into an alumni record) or rejected
// (discarded). Both outcomes are terminal.
type SubmissionService struct {
	repo      submissionRepository
	alumni    alumniEmailChecker
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubmissionService constructs the submission service.
func NewSubmissionService(repo submissionRepository, alumni alumniEmailChecker, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *SubmissionService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{repo: repo, alumni: alumni, cache: cache, validator: validate, logger: logger}
}

// Submit accepts a public self-submission into the pending queue. The
// email must be unused across both the published directory and the queue.
func (s *SubmissionService) Submit(ctx context.Context, input models.AlumniInput) (*models.PendingSubmission, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, invalidFieldsMessage(err))
	}

	inAlumni, err := s.alumni.EmailExists(ctx, input.Email, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if inAlumni {
		return nil, appErrors.ErrDuplicateEmail
	}

	inPending, err := s.repo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if inPending {
		return nil, appErrors.ErrDuplicateEmail
	}

	sub := &models.PendingSubmission{
		FullName:       input.FullName,
		Email:          input.Email,
		YearGraduated:  input.YearGraduated,
		CurrentCollege: input.CurrentCollege,
		CollegeMajor:   input.CollegeMajor,
		SecondMajor:    input.SecondMajor,
		Profession:     input.Profession,
		LinkedinURL:    input.LinkedinURL,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, normalizeRepoError(err, "failed to create submission")
	}

	s.logger.Info("submission received", zap.Int64("submission_id", sub.ID))
	return sub, nil
}

// ListPending returns all pending submissions, newest first.
func (s *SubmissionService) ListPending(ctx context.Context) ([]models.PendingSubmission, error) {
	subs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list submissions")
	}
	return subs, nil
}

// Approve converts the pending submission into a published alumni record.
// The conversion is atomic; a second approve or reject of the same id
// observes NotFound with no side effect.
func (s *SubmissionService) Approve(ctx context.Context, id int64) (*models.AlumniRecord, error) {
	record, err := s.repo.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, normalizeRepoError(err, "failed to approve submission")
	}

	if err := s.cache.Invalidate(ctx, directoryCachePattern); err != nil {
		s.logger.Warn("failed to invalidate directory cache", zap.Error(err))
	}

	s.logger.Info("submission approved", zap.Int64("submission_id", id), zap.Int64("alumni_id", record.ID))
	return record, nil
}

// Reject discards the pending submission.
func (s *SubmissionService) Reject(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject submission")
	}

	s.logger.Info("submission rejected", zap.Int64("submission_id", id))
	return nil
}

// NewValidator builds a validator that reports fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func invalidFieldsMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return "missing or invalid fields: " + strings.Join(fields, ", ")
	}
	return "invalid payload"
}

// normalizeRepoError keeps typed repository errors (duplicate email) intact
// and wraps everything else as internal.
func normalizeRepoError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
