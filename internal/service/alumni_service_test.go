package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

type mockAlumniRepo struct {
	records map[int64]*models.AlumniRecord
	nextID  int64
}

func newMockAlumniRepo() *mockAlumniRepo {
	return &mockAlumniRepo{records: map[int64]*models.AlumniRecord{}}
}

func (m *mockAlumniRepo) FindByID(_ context.Context, id int64) (*models.AlumniRecord, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *record
	return &copied, nil
}

func (m *mockAlumniRepo) Create(_ context.Context, record *models.AlumniRecord) error {
	m.nextID++
	record.ID = m.nextID
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now
	copied := *record
	m.records[record.ID] = &copied
	return nil
}

func (m *mockAlumniRepo) Update(_ context.Context, record *models.AlumniRecord) error {
	if _, ok := m.records[record.ID]; !ok {
		return sql.ErrNoRows
	}
	record.UpdatedAt = time.Now().UTC()
	copied := *record
	m.records[record.ID] = &copied
	return nil
}

func (m *mockAlumniRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.records[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.records, id)
	return nil
}

func (m *mockAlumniRepo) EmailExists(_ context.Context, email string, excludeID int64) (bool, error) {
	for id, record := range m.records {
		if id == excludeID {
			continue
		}
		if strings.EqualFold(record.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func newTestAlumniService(repo *mockAlumniRepo) *AlumniService {
	return NewAlumniService(repo, nil, NewValidator(), zap.NewNop())
}

func TestAlumniServiceCreate(t *testing.T) {
	repo := newMockAlumniRepo()
	svc := newTestAlumniService(repo)

	record, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), record.ID)
	assert.Equal(t, "Sarah Johnson", record.FullName)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestAlumniServiceCreateDuplicateEmail(t *testing.T) {
	repo := newMockAlumniRepo()
	svc := newTestAlumniService(repo)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Email = "SARAH.J@email.com"
	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, appErrors.ErrDuplicateEmail)
}

func TestAlumniServiceCreateInvalidInput(t *testing.T) {
	svc := newTestAlumniService(newMockAlumniRepo())

	input := validInput()
	input.YearGraduated = 1776
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "year_graduated")
}

func TestAlumniServiceUpdateKeepsOwnEmail(t *testing.T) {
	repo := newMockAlumniRepo()
	svc := newTestAlumniService(repo)

	record, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.FullName = "Sarah Johnson-Lee"
	updated, err := svc.Update(context.Background(), record.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Johnson-Lee", updated.FullName)
	assert.Equal(t, record.Email, updated.Email)
}

func TestAlumniServiceUpdateDuplicateOfOtherRecord(t *testing.T) {
	repo := newMockAlumniRepo()
	svc := newTestAlumniService(repo)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	other := validInput()
	other.Email = "mike.chen@email.com"
	second, err := svc.Create(context.Background(), other)
	require.NoError(t, err)

	input := validInput()
	_, err = svc.Update(context.Background(), second.ID, input)
	assert.ErrorIs(t, err, appErrors.ErrDuplicateEmail)
}

func TestAlumniServiceUpdateNotFound(t *testing.T) {
	svc := newTestAlumniService(newMockAlumniRepo())

	_, err := svc.Update(context.Background(), 99, validInput())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAlumniServiceDelete(t *testing.T) {
	repo := newMockAlumniRepo()
	svc := newTestAlumniService(repo)

	record, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), record.ID))
	assert.Empty(t, repo.records)

	err = svc.Delete(context.Background(), record.ID)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAlumniServiceWritesInvalidateDirectoryCache(t *testing.T) {
	repo := newMockAlumniRepo()
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewAlumniService(repo, cache, NewValidator(), zap.NewNop())

	require.NoError(t, cache.Set(context.Background(), "alumni:list:|||||", []string{"stale"}, 0))

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Empty(t, cacheRepo.entries)
	assert.Contains(t, cacheRepo.deletes, "alumni:list:*")
}
