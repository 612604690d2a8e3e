package models

import "time"

// PendingSubmission is a self-submitted directory entry awaiting admin
// review. Presence in the pending collection is the "pending" state; an
// approved submission is converted into a fresh AlumniRecord and removed,
// a rejected one is simply removed.
type PendingSubmission struct {
	ID             int64     `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Email          string    `db:"email" json:"email"`
	YearGraduated  int       `db:"year_graduated" json:"year_graduated"`
	CurrentCollege string    `db:"current_college" json:"current_college"`
	CollegeMajor   string    `db:"college_major" json:"college_major"`
	SecondMajor    *string   `db:"second_major" json:"second_major"`
	Profession     *string   `db:"profession" json:"profession"`
	LinkedinURL    *string   `db:"linkedin_url" json:"linkedin_url"`
	SubmittedAt    time.Time `db:"submitted_at" json:"submitted_at"`
}
