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

// DivisionRepository handles persistence for divisions.
type DivisionRepository struct {
	db *sqlx.DB
}

// NewDivisionRepository creates a new repository instance.
func NewDivisionRepository(db *sqlx.DB) *DivisionRepository {
	return &DivisionRepository{db: db}
}

// List returns divisions matching filters with a total count.
func (r *DivisionRepository) List(ctx context.Context, filter models.DivisionFilter) ([]models.Division, int, error) {
	base := "FROM divisions WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.InstituteID != "" {
		conditions = append(conditions, fmt.Sprintf("institute_id = $%d", len(args)+1))
		args = append(args, filter.InstituteID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]bool{
		"name":       true,
		"created_at": true,
		"updated_at": true,
	}
	sortBy, order := normalizeSort(filter.SortBy, allowedSorts, filter.SortOrder)
	_, size, offset := normalizePage(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT id, name, institute_id, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var divisions []models.Division
	if err := r.db.SelectContext(ctx, &divisions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list divisions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count divisions: %w", err)
	}

	return divisions, total, nil
}

// FindByID returns a division by id.
func (r *DivisionRepository) FindByID(ctx context.Context, id string) (*models.Division, error) {
	const query = `SELECT id, name, institute_id, created_at, updated_at FROM divisions WHERE id = $1`
	var division models.Division
	if err := r.db.GetContext(ctx, &division, query, id); err != nil {
		return nil, err
	}
	return &division, nil
}

// FindDetailByID returns a division joined with its owning institute name.
func (r *DivisionRepository) FindDetailByID(ctx context.Context, id string) (*models.DivisionDetail, error) {
	const query = `SELECT d.id, d.name, d.institute_id, d.created_at, d.updated_at, i.name AS institute_name
		FROM divisions d JOIN institutes i ON i.id = d.institute_id WHERE d.id = $1`
	var detail models.DivisionDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListByInstitute returns divisions owned by the given institute.
func (r *DivisionRepository) ListByInstitute(ctx context.Context, instituteID string) ([]models.Division, error) {
	const query = `SELECT id, name, institute_id, created_at, updated_at FROM divisions WHERE institute_id = $1 ORDER BY name ASC`
	var divisions []models.Division
	if err := r.db.SelectContext(ctx, &divisions, query, instituteID); err != nil {
		return nil, fmt.Errorf("list divisions by institute: %w", err)
	}
	return divisions, nil
}

// SearchByName returns divisions whose name contains the given fragment.
func (r *DivisionRepository) SearchByName(ctx context.Context, fragment string) ([]models.Division, error) {
	const query = `SELECT id, name, institute_id, created_at, updated_at FROM divisions WHERE LOWER(name) LIKE $1 ORDER BY name ASC`
	var divisions []models.Division
	if err := r.db.SelectContext(ctx, &divisions, query, "%"+strings.ToLower(fragment)+"%"); err != nil {
		return nil, fmt.Errorf("search divisions: %w", err)
	}
	return divisions, nil
}

// Exists reports whether a division row exists for the id.
func (r *DivisionRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM divisions WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check division: %w", err)
	}
	return true, nil
}

// Create persists a new division.
func (r *DivisionRepository) Create(ctx context.Context, division *models.Division) error {
	if division.ID == "" {
		division.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if division.CreatedAt.IsZero() {
		division.CreatedAt = now
	}
	division.UpdatedAt = now

	const query = `INSERT INTO divisions (id, name, institute_id, created_at, updated_at) VALUES (:id, :name, :institute_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, division); err != nil {
		return fmt.Errorf("create division: %w", err)
	}
	return nil
}

// Update modifies a division.
func (r *DivisionRepository) Update(ctx context.Context, division *models.Division) error {
	division.UpdatedAt = time.Now().UTC()
	const query = `UPDATE divisions SET name = :name, institute_id = :institute_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, division); err != nil {
		return fmt.Errorf("update division: %w", err)
	}
	return nil
}

// Delete removes a division record. Deleting a missing row is not an error.
func (r *DivisionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM divisions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete division: %w", err)
	}
	return nil
}
