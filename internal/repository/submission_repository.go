package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mocalumni/alumni-api/internal/models"
	appErrors "github.com/mocalumni/alumni-api/pkg/errors"
)

const submissionColumns = `id, full_name, email, year_graduated, current_college, college_major, second_major, profession, linkedin_url, submitted_at`

// SubmissionRepository provides database access to pending submissions.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a new pending submission, assigning a store-generated id.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.PendingSubmission) error {
	sub.SubmittedAt = time.Now().UTC()

	const query = `INSERT INTO pending_submissions (full_name, email, year_graduated, current_college, college_major, second_major, profession, linkedin_url, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		sub.FullName, sub.Email, sub.YearGraduated, sub.CurrentCollege, sub.CollegeMajor,
		sub.SecondMajor, sub.Profession, sub.LinkedinURL, sub.SubmittedAt,
	).Scan(&sub.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return appErrors.ErrDuplicateEmail
		}
		return fmt.Errorf("create pending submission: %w", err)
	}
	return nil
}

// List returns all pending submissions, newest first.
func (r *SubmissionRepository) List(ctx context.Context) ([]models.PendingSubmission, error) {
	query := "SELECT " + submissionColumns + " FROM pending_submissions ORDER BY submitted_at DESC, id DESC"
	subs := []models.PendingSubmission{}
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("list pending submissions: %w", err)
	}
	return subs, nil
}

// Delete discards a pending submission. Returns sql.ErrNoRows when absent.
func (r *SubmissionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM pending_submissions WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete pending submission: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pending submission rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// EmailExists reports whether a pending submission uses the email,
// compared case-insensitively.
func (r *SubmissionRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM pending_submissions WHERE LOWER(email) = LOWER($1))`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check pending submission email: %w", err)
	}
	return exists, nil
}

// Approve converts a pending submission into a new alumni record inside a
// single transaction. The row lock on the pending row is the serialization
// point: a concurrent approve or reject of the same id blocks until this
// transaction commits and then observes sql.ErrNoRows.
func (r *SubmissionRepository) Approve(ctx context.Context, id int64) (*models.AlumniRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin approve: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var sub models.PendingSubmission
	selectQuery := "SELECT " + submissionColumns + " FROM pending_submissions WHERE id = $1 FOR UPDATE"
	if err := tx.GetContext(ctx, &sub, selectQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("lock pending submission: %w", err)
	}

	now := time.Now().UTC()
	record := &models.AlumniRecord{
		FullName:       sub.FullName,
		Email:          sub.Email,
		YearGraduated:  sub.YearGraduated,
		CurrentCollege: sub.CurrentCollege,
		CollegeMajor:   sub.CollegeMajor,
		SecondMajor:    sub.SecondMajor,
		Profession:     sub.Profession,
		LinkedinURL:    sub.LinkedinURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	const insertQuery = `INSERT INTO alumni (full_name, email, year_graduated, current_college, college_major, second_major, profession, linkedin_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err = tx.QueryRowxContext(ctx, insertQuery,
		record.FullName, record.Email, record.YearGraduated, record.CurrentCollege, record.CollegeMajor,
		record.SecondMajor, record.Profession, record.LinkedinURL, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, appErrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert approved alumni: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pending_submissions WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("remove pending submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approve: %w", err)
	}
	return record, nil
}
