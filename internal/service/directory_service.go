package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

type directoryRepository interface {
	List(ctx context.Context, filter models.AlumniFilter) ([]models.AlumniRecord, error)
	FindByID(ctx context.Context, id int64) (*models.AlumniRecord, error)
	FilterOptions(ctx context.Context) (*models.FilterOptions, error)
}

const directoryCachePattern = "alumni:list:*"

// DirectoryService is the public read surface over the published directory.
type DirectoryService struct {
	repo   directoryRepository
	cache  *CacheService
	logger *zap.Logger
}

// NewDirectoryService constructs the directory service.
func NewDirectoryService(repo directoryRepository, cache *CacheService, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{repo: repo, cache: cache, logger: logger}
}

// Query returns alumni matching all supplied filters. Listings may be
// served from cache when the directory cache is enabled.
func (s *DirectoryService) Query(ctx context.Context, filter models.AlumniFilter) ([]models.AlumniRecord, error) {
	key := listCacheKey(filter)

	var cached []models.AlumniRecord
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query alumni")
	}

	if err := s.cache.Set(ctx, key, records, 0); err != nil {
		s.logger.Warn("failed to cache directory listing", zap.Error(err))
	}

	return records, nil
}

// Get returns a single alumni record.
func (s *DirectoryService) Get(ctx context.Context, id int64) (*models.AlumniRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "alumni not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumni")
	}
	return record, nil
}

// FilterOptions returns the distinct filter values. Always computed from
// the live collection, never cached.
func (s *DirectoryService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	options, err := s.repo.FilterOptions(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load filter options")
	}
	return options, nil
}

func listCacheKey(filter models.AlumniFilter) string {
	year := ""
	if filter.Year != nil {
		year = fmt.Sprintf("%d", *filter.Year)
	}
	return fmt.Sprintf("alumni:list:%s|%s|%s|%s|%s|%s",
		filter.Search, year, filter.College, filter.Major, filter.SortBy, filter.SortOrder)
}
