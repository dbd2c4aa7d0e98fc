package models

import "time"

// Institute represents a research institute owned by a faculty.
type Institute struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// InstituteDetail extends Institute with the owning faculty name for responses.
type InstituteDetail struct {
	Institute
	FacultyName string `db:"faculty_name" json:"faculty_name"`
}

// InstituteFilter captures supported filters for listing institutes.
type InstituteFilter struct {
	FacultyID string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
