package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

type alumniRepository interface {
	FindByID(ctx context.Context, id int64) (*models.AlumniRecord, error)
	Create(ctx context.Context, record *models.AlumniRecord) error
	Update(ctx context.Context, record *models.AlumniRecord) error
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
}

// AlumniService handles admin create/update/delete on the published
// directory. Validation rules match public submissions.
type AlumniService struct {
	repo      alumniRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAlumniService constructs the alumni admin CRUD service.
func NewAlumniService(repo alumniRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AlumniService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlumniService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Create adds a record directly to the published directory.
func (s *AlumniService) Create(ctx context.Context, input models.AlumniInput) (*models.AlumniRecord, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, invalidFieldsMessage(err))
	}

	exists, err := s.repo.EmailExists(ctx, input.Email, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if exists {
		return nil, appErrors.ErrDuplicateEmail
	}

	record := &models.AlumniRecord{}
	applyInput(record, input)
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, normalizeRepoError(err, "failed to create alumni")
	}

	s.invalidateListings(ctx)
	return record, nil
}

// Update replaces the writable fields of an existing record. The record's
// own id is excluded from the email-uniqueness check, so keeping the same
// email never counts as a duplicate.
func (s *AlumniService) Update(ctx context.Context, id int64, input models.AlumniInput) (*models.AlumniRecord, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, invalidFieldsMessage(err))
	}

	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alumni not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumni")
	}

	exists, err := s.repo.EmailExists(ctx, input.Email, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate email")
	}
	if exists {
		return nil, appErrors.ErrDuplicateEmail
	}

	applyInput(record, input)
	if err := s.repo.Update(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alumni not found")
		}
		return nil, normalizeRepoError(err, "failed to update alumni")
	}

	s.invalidateListings(ctx)
	return record, nil
}

// Delete removes a record from the published directory.
func (s *AlumniService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "alumni not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete alumni")
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *AlumniService) invalidateListings(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, directoryCachePattern); err != nil {
		s.logger.Warn("failed to invalidate directory cache", zap.Error(err))
	}
}

func applyInput(record *models.AlumniRecord, input models.AlumniInput) {
	record.FullName = input.FullName
	record.Email = input.Email
	record.YearGraduated = input.YearGraduated
	record.CurrentCollege = input.CurrentCollege
	record.CollegeMajor = input.CollegeMajor
	record.SecondMajor = input.SecondMajor
	record.Profession = input.Profession
	record.LinkedinURL = input.LinkedinURL
}
