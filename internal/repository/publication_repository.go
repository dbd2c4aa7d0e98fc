package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/unipub/pubmeta-api/internal/models"
)

// PublicationRepository handles persistence for publications.
type PublicationRepository struct {
	db *sqlx.DB
}

// NewPublicationRepository creates a new repository instance.
func NewPublicationRepository(db *sqlx.DB) *PublicationRepository {
	return &PublicationRepository{db: db}
}

// List returns publications matching filters with a total count.
func (r *PublicationRepository) List(ctx context.Context, filter models.PublicationFilter) ([]models.Publication, int, error) {
	base := "FROM publications WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.JournalID != "" {
		conditions = append(conditions, fmt.Sprintf("journal_id = $%d", len(args)+1))
		args = append(args, filter.JournalID)
	}
	if filter.DivisionID != "" {
		conditions = append(conditions, fmt.Sprintf("division_id = $%d", len(args)+1))
		args = append(args, filter.DivisionID)
	}
	if filter.Year != 0 {
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, filter.Year)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(authors) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]bool{
		"title":      true,
		"year":       true,
		"created_at": true,
		"updated_at": true,
	}
	sortBy, order := normalizeSort(filter.SortBy, allowedSorts, filter.SortOrder)
	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT id, title, authors, year, journal_id, division_id, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var publications []models.Publication
	if err := r.db.SelectContext(ctx, &publications, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list publications: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count publications: %w", err)
	}

	return publications, total, nil
}

// FindByID returns a publication by id.
func (r *PublicationRepository) FindByID(ctx context.Context, id string) (*models.Publication, error) {
	const query = `SELECT id, title, authors, year, journal_id, division_id, created_at, updated_at FROM publications WHERE id = $1`
	var publication models.Publication
	if err := r.db.GetContext(ctx, &publication, query, id); err != nil {
		return nil, err
	}
	return &publication, nil
}

// SearchByTitle returns publications whose title contains the given fragment.
func (r *PublicationRepository) SearchByTitle(ctx context.Context, fragment string) ([]models.Publication, error) {
	const query = `SELECT id, title, authors, year, journal_id, division_id, created_at, updated_at FROM publications WHERE LOWER(title) LIKE $1 ORDER BY title ASC`
	var publications []models.Publication
	if err := r.db.SelectContext(ctx, &publications, query, "%"+strings.ToLower(fragment)+"%"); err != nil {
		return nil, fmt.Errorf("search publications: %w", err)
	}
	return publications, nil
}

// Create persists a new publication.
func (r *PublicationRepository) Create(ctx context.Context, publication *models.Publication) error {
	if publication.ID == "" {
		publication.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if publication.CreatedAt.IsZero() {
		publication.CreatedAt = now
	}
	publication.UpdatedAt = now

	const query = `INSERT INTO publications (id, title, authors, year, journal_id, division_id, created_at, updated_at) VALUES (:id, :title, :authors, :year, :journal_id, :division_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, publication); err != nil {
		return fmt.Errorf("create publication: %w", err)
	}
	return nil
}

// Update modifies a publication.
func (r *PublicationRepository) Update(ctx context.Context, publication *models.Publication) error {
	publication.UpdatedAt = time.Now().UTC()
	const query = `UPDATE publications SET title = :title, authors = :authors, year = :year, journal_id = :journal_id, division_id = :division_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, publication); err != nil {
		return fmt.Errorf("update publication: %w", err)
	}
	return nil
}

// Delete removes a publication record. Deleting a missing row is not an error.
func (r *PublicationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM publications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete publication: %w", err)
	}
	return nil
}
