package models

import "time"

// Journal represents an academic journal and its identifying metadata.
// The electronic ISSN is optional; print ISSN is unique within the store.
type Journal struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	ISSN      string    `db:"issn" json:"issn"`
	EISSN     *string   `db:"eissn" json:"eissn,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// JournalFilter captures supported filters for listing journals.
type JournalFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
