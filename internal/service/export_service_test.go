package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

type mockExportRepo struct {
	records []models.AlumniRecord
}

func (m *mockExportRepo) List(_ context.Context, _ models.AlumniFilter) ([]models.AlumniRecord, error) {
	return m.records, nil
}

func TestExportServiceRenderCSV(t *testing.T) {
	repo := &mockExportRepo{records: sampleRecords()}
	svc := NewExportService(repo, nil, nil, zap.NewNop())

	result, err := svc.Render(context.Background(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Content)
	assert.Contains(t, body, "Full Name")
	assert.Contains(t, body, "mike.chen@email.com")
	assert.Contains(t, body, "sarah.j@email.com")
}

func TestExportServiceRenderPDF(t *testing.T) {
	repo := &mockExportRepo{records: sampleRecords()}
	svc := NewExportService(repo, nil, nil, zap.NewNop())

	result, err := svc.Render(context.Background(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	require.NotEmpty(t, result.Content)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportServiceRenderUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&mockExportRepo{}, nil, nil, zap.NewNop())

	_, err := svc.Render(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
