package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

const alumniColumns = `id, full_name, email, year_graduated, current_college, college_major, second_major, profession, linkedin_url, created_at, updated_at`

// AlumniRepository provides database access to the published directory.
type AlumniRepository struct {
	db *sqlx.DB
}

// NewAlumniRepository creates a new instance of AlumniRepository.
func NewAlumniRepository(db *sqlx.DB) *AlumniRepository {
	return &AlumniRepository{db: db}
}

// List returns alumni matching the filter, sorted per the filter's sort
// settings. String sorts compare case-insensitively; ties break on id so
// the order is stable.
func (r *AlumniRepository) List(ctx context.Context, filter models.AlumniFilter) ([]models.AlumniRecord, error) {
	baseQuery := "SELECT " + alumniColumns + " FROM alumni WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		idx := len(args) + 1
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d OR LOWER(current_college) LIKE $%d OR LOWER(college_major) LIKE $%d)", idx, idx, idx, idx))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Year != nil {
		conditions = append(conditions, fmt.Sprintf("year_graduated = $%d", len(args)+1))
		args = append(args, *filter.Year)
	}
	if filter.College != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(current_college) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.College)+"%")
	}
	if filter.Major != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(college_major) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Major)+"%")
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]string{
		"full_name":       "LOWER(full_name)",
		"email":           "LOWER(email)",
		"year_graduated":  "year_graduated",
		"current_college": "LOWER(current_college)",
		"college_major":   "LOWER(college_major)",
		"created_at":      "created_at",
	}
	sortExpr, ok := allowedSorts[filter.SortBy]
	if !ok {
		sortExpr = allowedSorts["full_name"]
	}

	sortOrder := strings.ToUpper(filter.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf("%s ORDER BY %s %s, id ASC", baseQuery, sortExpr, sortOrder)

	records := []models.AlumniRecord{}
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list alumni: %w", err)
	}
	return records, nil
}

// FindByID returns an alumni record by identifier.
func (r *AlumniRepository) FindByID(ctx context.Context, id int64) (*models.AlumniRecord, error) {
	query := "SELECT " + alumniColumns + " FROM alumni WHERE id = $1 LIMIT 1"
	var record models.AlumniRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find alumni by id: %w", err)
	}
	return &record, nil
}

// Create inserts a new alumni record, assigning a store-generated id.
func (r *AlumniRepository) Create(ctx context.Context, record *models.AlumniRecord) error {
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	const query = `INSERT INTO alumni (full_name, email, year_graduated, current_college, college_major, second_major, profession, linkedin_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		record.FullName, record.Email, record.YearGraduated, record.CurrentCollege, record.CollegeMajor,
		record.SecondMajor, record.Profession, record.LinkedinURL, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return appErrors.ErrDuplicateEmail
		}
		return fmt.Errorf("create alumni: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an alumni record and touches
// updated_at. Returns sql.ErrNoRows when the id does not exist.
func (r *AlumniRepository) Update(ctx context.Context, record *models.AlumniRecord) error {
	record.UpdatedAt = time.Now().UTC()

	const query = `UPDATE alumni SET full_name = $2, email = $3, year_graduated = $4, current_college = $5, college_major = $6, second_major = $7, profession = $8, linkedin_url = $9, updated_at = $10 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		record.ID, record.FullName, record.Email, record.YearGraduated, record.CurrentCollege,
		record.CollegeMajor, record.SecondMajor, record.Profession, record.LinkedinURL, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return appErrors.ErrDuplicateEmail
		}
		return fmt.Errorf("update alumni: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update alumni rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an alumni record. Returns sql.ErrNoRows when absent.
func (r *AlumniRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM alumni WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete alumni: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete alumni rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// EmailExists reports whether any alumni record other than excludeID uses
// the email, compared case-insensitively. Pass excludeID 0 to check all.
func (r *AlumniRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM alumni WHERE LOWER(email) = LOWER($1) AND id <> $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, excludeID); err != nil {
		return false, fmt.Errorf("check alumni email: %w", err)
	}
	return exists, nil
}

// FilterOptions computes the distinct filter values from the live table.
func (r *AlumniRepository) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	options := &models.FilterOptions{
		Years:    []int{},
		Colleges: []string{},
		Majors:   []string{},
	}

	if err := r.db.SelectContext(ctx, &options.Years, `SELECT DISTINCT year_graduated FROM alumni ORDER BY year_graduated DESC`); err != nil {
		return nil, fmt.Errorf("distinct years: %w", err)
	}
	if err := r.db.SelectContext(ctx, &options.Colleges, `SELECT DISTINCT current_college FROM alumni ORDER BY current_college ASC`); err != nil {
		return nil, fmt.Errorf("distinct colleges: %w", err)
	}
	if err := r.db.SelectContext(ctx, &options.Majors, `SELECT DISTINCT college_major FROM alumni ORDER BY college_major ASC`); err != nil {
		return nil, fmt.Errorf("distinct majors: %w", err)
	}

	return options, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
