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

// InstituteRepository handles persistence for institutes.
type InstituteRepository struct {
	db *sqlx.DB
}

// NewInstituteRepository creates a new repository instance.
func NewInstituteRepository(db *sqlx.DB) *InstituteRepository {
	return &InstituteRepository{db: db}
}

// List returns institutes matching filters with a total count.
func (r *InstituteRepository) List(ctx context.Context, filter models.InstituteFilter) ([]models.Institute, int, error) {
	base := "FROM institutes WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.FacultyID != "" {
		conditions = append(conditions, fmt.Sprintf("faculty_id = $%d", len(args)+1))
		args = append(args, filter.FacultyID)
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

	query := fmt.Sprintf("SELECT id, name, faculty_id, created_at, updated_at %s ORDER BY %s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var institutes []models.Institute
	if err := r.db.SelectContext(ctx, &institutes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list institutes: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count institutes: %w", err)
	}

	return institutes, total, nil
}

// FindByID returns an institute by id.
func (r *InstituteRepository) FindByID(ctx context.Context, id string) (*models.Institute, error) {
	const query = `SELECT id, name, faculty_id, created_at, updated_at FROM institutes WHERE id = $1`
	var institute models.Institute
	if err := r.db.GetContext(ctx, &institute, query, id); err != nil {
		return nil, err
	}
	return &institute, nil
}

// FindDetailByID returns an institute joined with its owning faculty name.
func (r *InstituteRepository) FindDetailByID(ctx context.Context, id string) (*models.InstituteDetail, error) {
	const query = `SELECT i.id, i.name, i.faculty_id, i.created_at, i.updated_at, f.name AS faculty_name
		FROM institutes i JOIN faculties f ON f.id = i.faculty_id WHERE i.id = $1`
	var detail models.InstituteDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListByFaculty returns institutes owned by the given faculty.
func (r *InstituteRepository) ListByFaculty(ctx context.Context, facultyID string) ([]models.Institute, error) {
	const query = `SELECT id, name, faculty_id, created_at, updated_at FROM institutes WHERE faculty_id = $1 ORDER BY name ASC`
	var institutes []models.Institute
	if err := r.db.SelectContext(ctx, &institutes, query, facultyID); err != nil {
		return nil, fmt.Errorf("list institutes by faculty: %w", err)
	}
	return institutes, nil
}

// SearchByName returns institutes whose name contains the given fragment.
func (r *InstituteRepository) SearchByName(ctx context.Context, fragment string) ([]models.Institute, error) {
	const query = `SELECT id, name, faculty_id, created_at, updated_at FROM institutes WHERE LOWER(name) LIKE $1 ORDER BY name ASC`
	var institutes []models.Institute
	if err := r.db.SelectContext(ctx, &institutes, query, "%"+strings.ToLower(fragment)+"%"); err != nil {
		return nil, fmt.Errorf("search institutes: %w", err)
	}
	return institutes, nil
}

// Exists reports whether an institute row exists for the id.
func (r *InstituteRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM institutes WHERE id = $1 LIMIT 1`, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check institute: %w", err)
	}
	return true, nil
}

// Create persists a new institute.
func (r *InstituteRepository) Create(ctx context.Context, institute *models.Institute) error {
	if institute.ID == "" {
		institute.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if institute.CreatedAt.IsZero() {
		institute.CreatedAt = now
	}
	institute.UpdatedAt = now

	const query = `INSERT INTO institutes (id, name, faculty_id, created_at, updated_at) VALUES (:id, :name, :faculty_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, institute); err != nil {
		return fmt.Errorf("create institute: %w", err)
	}
	return nil
}

// Update modifies an institute.
func (r *InstituteRepository) Update(ctx context.Context, institute *models.Institute) error {
	institute.UpdatedAt = time.Now().UTC()
	const query = `UPDATE institutes SET name = :name, faculty_id = :faculty_id, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, institute); err != nil {
		return fmt.Errorf("update institute: %w", err)
	}
	return nil
}

// Delete removes an institute record. Deleting a missing row is not an error.
func (r *InstituteRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM institutes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete institute: %w", err)
	}
	return nil
}
