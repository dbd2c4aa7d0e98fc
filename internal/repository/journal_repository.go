package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/unipub/pubmeta-api/internal/models"
)

// JournalRepository handles persistence for journals.
type JournalRepository struct {
	db *sqlx.DB
}

// NewJournalRepository creates a new repository instance.
func NewJournalRepository(db *sqlx.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// List returns journals matching filters with a total count.
func (r *JournalRepository) List(ctx context.Context, filter models.JournalFilter) ([]models.Journal, int, error) {
	base := "FROM journals WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR issn LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]bool{
		"title":      true,
		"issn":       true,
		"created_at": true,
		"updated_at": true,
	}
	sortBy, order := normalizeSort(filter.SortBy, allowedSorts, filter.SortOrder)
	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT id, title, issn, eissn, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var journals []models.Journal
	if err := r.db.SelectContext(ctx, &journals, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list journals: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count journals: %w", err)
	}

	return journals, total, nil
}

// FindByID returns a journal by id.
func (r *JournalRepository) FindByID(ctx context.Context, id string) (*models.Journal, error) {
	const query = `SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE id = $1`
	var journal models.Journal
	if err := r.db.GetContext(ctx, &journal, query, id); err != nil {
		return nil, err
	}
	return &journal, nil
}

// FindByISSN returns the journal carrying the given print ISSN.
func (r *JournalRepository) FindByISSN(ctx context.Context, issn string) (*models.Journal, error) {
	const query = `SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE issn = $1 LIMIT 1`
	var journal models.Journal
	if err := r.db.GetContext(ctx, &journal, query, issn); err != nil {
		return nil, err
	}
	return &journal, nil
}

// FindByEISSN returns the journal carrying the given electronic ISSN.
func (r *JournalRepository) FindByEISSN(ctx context.Context, eissn string) (*models.Journal, error) {
	const query = `SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE eissn = $1 LIMIT 1`
	var journal models.Journal
	if err := r.db.GetContext(ctx, &journal, query, eissn); err != nil {
		return nil, err
	}
	return &journal, nil
}

// SearchByTitle returns journals whose title contains the given fragment.
func (r *JournalRepository) SearchByTitle(ctx context.Context, fragment string) ([]models.Journal, error) {
	const query = `SELECT id, title, issn, eissn, created_at, updated_at FROM journals WHERE LOWER(title) LIKE $1 ORDER BY title ASC`
	var journals []models.Journal
	if err := r.db.SelectContext(ctx, &journals, query, "%"+strings.ToLower(fragment)+"%"); err != nil {
		return nil, fmt.Errorf("search journals: %w", err)
	}
	return journals, nil
}

// ListAll returns the journal catalogue up to limit rows, ordered by title.
func (r *JournalRepository) ListAll(ctx context.Context, limit int) ([]models.Journal, error) {
	if limit <= 0 {
		limit = 5000
	}
	query := fmt.Sprintf("SELECT id, title, issn, eissn, created_at, updated_at FROM journals ORDER BY title ASC LIMIT %d", limit)
	var journals []models.Journal
	if err := r.db.SelectContext(ctx, &journals, query); err != nil {
		return nil, fmt.Errorf("list all journals: %w", err)
	}
	return journals, nil
}

// ExistsByISSN checks uniqueness of the print ISSN.
func (r *JournalRepository) ExistsByISSN(ctx context.Context, issn string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM journals WHERE issn = $1"
	args := []interface{}{issn}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}

	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check journal issn: %w", err)
	}
	return true, nil
}

// Exists reports whether a journal row exists for the id.
func (r *JournalRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM journals WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check journal: %w", err)
	}
	return true, nil
}

// Create persists a new journal.
func (r *JournalRepository) Create(ctx context.Context, journal *models.Journal) error {
	if journal.ID == "" {
		journal.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if journal.CreatedAt.IsZero() {
		journal.CreatedAt = now
	}
	journal.UpdatedAt = now

	const query = `INSERT INTO journals (id, title, issn, eissn, created_at, updated_at) VALUES (:id, :title, :issn, :eissn, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, journal); err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	return nil
}

// Update modifies a journal.
func (r *JournalRepository) Update(ctx context.Context, journal *models.Journal) error {
	journal.UpdatedAt = time.Now().UTC()
	const query = `UPDATE journals SET title = :title, issn = :issn, eissn = :eissn, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, journal); err != nil {
		return fmt.Errorf("update journal: %w", err)
	}
	return nil
}

// Delete removes a journal record. Deleting a missing row is not an error.
func (r *JournalRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	return nil
}
