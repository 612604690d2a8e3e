package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
	"github.com/mocalumni/alumni-api/pkg/export"
)

type exportAlumniRepository interface {
	List(ctx context.Context, filter models.AlumniFilter) ([]models.AlumniRecord, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFormat enumerates supported download formats.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportResult carries a rendered directory download.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the full published directory as a download.
type ExportService struct {
	alumni exportAlumniRepository
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(alumni exportAlumniRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{alumni: alumni, csv: csv, pdf: pdf, logger: logger}
}

// Render builds the directory dataset and renders it in the requested format.
func (s *ExportService) Render(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	if format != FormatCSV && format != FormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	records, err := s.alumni.List(ctx, models.AlumniFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load alumni")
	}

	dataset := alumniDataset(records)
	stamp := time.Now().UTC().Format("20060102")

	switch format {
	case FormatPDF:
		content, err := s.pdf.Render(dataset, "Alumni Directory")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: fmt.Sprintf("alumni-%s.pdf", stamp)}, nil
	default:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: fmt.Sprintf("alumni-%s.csv", stamp)}, nil
	}
}

func alumniDataset(records []models.AlumniRecord) export.Dataset {
	headers := []string{"ID", "Full Name", "Email", "Year", "College", "Major", "Second Major", "Profession", "LinkedIn"}
	rows := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, map[string]string{
			"ID":           strconv.FormatInt(rec.ID, 10),
			"Full Name":    rec.FullName,
			"Email":        rec.Email,
			"Year":         strconv.Itoa(rec.YearGraduated),
			"College":      rec.CurrentCollege,
			"Major":        rec.CollegeMajor,
			"Second Major": deref(rec.SecondMajor),
			"Profession":   deref(rec.Profession),
			"LinkedIn":     deref(rec.LinkedinURL),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
