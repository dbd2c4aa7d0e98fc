package models

import "time"

// Publication represents a published work registered against the catalogue.
// Journal and division links are optional; when present they must resolve.
type Publication struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Authors    string    `db:"authors" json:"authors"`
	Year       int       `db:"year" json:"year"`
	JournalID  *string   `db:"journal_id" json:"journal_id,omitempty"`
	DivisionID *string   `db:"division_id" json:"division_id,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// PublicationFilter captures supported filters for listing publications.
type PublicationFilter struct {
	JournalID  string
	DivisionID string
	Year       int
	Search     string
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
