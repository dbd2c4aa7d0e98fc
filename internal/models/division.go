package models

import "time"

// Division represents a research division owned by an institute.
type Division struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	InstituteID string    `db:"institute_id" json:"institute_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// DivisionDetail extends Division with the owning institute name for responses.
type DivisionDetail struct {
	Division
	InstituteName string `db:"institute_name" json:"institute_name"`
}

// DivisionFilter captures supported filters for listing divisions.
type DivisionFilter struct {
	InstituteID string
	Search      string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
