package models

import "time"

// AlumniRecord represents a published, searchable directory entry.
type AlumniRecord struct {
	ID             int64     `db:"id" json:"id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Email          string    `db:"email" json:"email"`
	YearGraduated  int       `db:"year_graduated" json:"year_graduated"`
	CurrentCollege string    `db:"current_college" json:"current_college"`
	CollegeMajor   string    `db:"college_major" json:"college_major"`
	SecondMajor    *string   `db:"second_major" json:"second_major"`
	Profession     *string   `db:"profession" json:"profession"`
	LinkedinURL    *string   `db:"linkedin_url" json:"linkedin_url"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// AlumniInput carries the writable fields of an alumni record. The same
// payload is accepted from public submissions and admin create/update.
type AlumniInput struct {
	FullName       string  `json:"full_name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	YearGraduated  int     `json:"year_graduated" validate:"required,gte=1900,lte=2100"`
	CurrentCollege string  `json:"current_college" validate:"required"`
	CollegeMajor   string  `json:"college_major" validate:"required"`
	SecondMajor    *string `json:"second_major"`
	Profession     *string `json:"profession"`
	LinkedinURL    *string `json:"linkedin_url" validate:"omitempty,url"`
}

// AlumniFilter captures the public directory query parameters.
type AlumniFilter struct {
	Search    string
	Year      *int
	College   string
	Major     string
	SortBy    string
	SortOrder string
}

// FilterOptions lists the distinct values usable as directory filters,
// computed live from the alumni collection.
type FilterOptions struct {
	Years    []int    `json:"years"`
	Colleges []string `json:"colleges"`
	Majors   []string `json:"majors"`
}
